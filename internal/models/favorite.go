package models

// Favorite is the row stored in the favorites table.
type Favorite struct {
	FavoriteID    string `db:"favorite_id"`
	OwnerID       string `db:"owner_id"`
	AccountNumber string `db:"account_number"`
	Alias         string `db:"alias"`
	AuditFields
}
