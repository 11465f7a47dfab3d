package dto

import (
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// AddFavoriteRequest saves a destination account for the caller.
type AddFavoriteRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required,account_number"`
	Alias         string `json:"alias" binding:"max=50"`
}

// UpdateFavoriteRequest renames a favorite.
type UpdateFavoriteRequest struct {
	Alias string `json:"alias" binding:"required,max=50"`
}

// FavoriteResponse defines the data returned for a favorite.
type FavoriteResponse struct {
	FavoriteID    string    `json:"favoriteID"`
	AccountNumber string    `json:"accountNumber"`
	Alias         string    `json:"alias"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToFavoriteResponse converts a domain.Favorite to FavoriteResponse DTO
func ToFavoriteResponse(f *domain.Favorite) FavoriteResponse {
	return FavoriteResponse{
		FavoriteID:    f.FavoriteID,
		AccountNumber: f.AccountNumber,
		Alias:         f.Alias,
		CreatedAt:     f.CreatedAt,
		LastUpdatedAt: f.LastUpdatedAt,
	}
}

// ToListFavoriteResponse converts a slice of domain.Favorite to DTOs
func ToListFavoriteResponse(favorites []domain.Favorite) []FavoriteResponse {
	res := make([]FavoriteResponse, len(favorites))
	for i, f := range favorites {
		res[i] = ToFavoriteResponse(&f)
	}
	return res
}

// FavoriteCheckResponse reports whether an account is among the caller's favorites.
type FavoriteCheckResponse struct {
	IsFavorite bool              `json:"isFavorite"`
	Favorite   *FavoriteResponse `json:"favorite"`
}

func ToFavoriteCheckResponse(f *domain.Favorite, found bool) FavoriteCheckResponse {
	if !found || f == nil {
		return FavoriteCheckResponse{}
	}
	res := ToFavoriteResponse(f)
	return FavoriteCheckResponse{IsFavorite: true, Favorite: &res}
}
