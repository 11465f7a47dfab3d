package domain

// MaxAliasLength bounds the alias a caller may give a favorite account.
const MaxAliasLength = 50

// Favorite is a destination account saved by an owner under an alias.
type Favorite struct {
	FavoriteID    string `json:"favoriteID"`
	OwnerID       string `json:"ownerID"`
	AccountNumber string `json:"accountNumber"`
	Alias         string `json:"alias"`
	AuditFields
}
