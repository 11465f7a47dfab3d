package services

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
)

// FavoriteSvcFacade defines operations over the caller's saved destination accounts
type FavoriteSvcFacade interface {
	AddFavorite(ctx context.Context, caller domain.Caller, req dto.AddFavoriteRequest) (*domain.Favorite, error)
	ListFavorites(ctx context.Context, caller domain.Caller) ([]domain.Favorite, error)
	// SearchFavorites matches the query against alias and account number, ignoring case.
	SearchFavorites(ctx context.Context, caller domain.Caller, query string) ([]domain.Favorite, error)
	// IsFavorite reports whether the caller saved the account, returning the favorite when so.
	IsFavorite(ctx context.Context, caller domain.Caller, accountNumber string) (*domain.Favorite, bool, error)
	UpdateFavorite(ctx context.Context, caller domain.Caller, favoriteID string, req dto.UpdateFavoriteRequest) (*domain.Favorite, error)
	RemoveFavorite(ctx context.Context, caller domain.Caller, favoriteID string) error
}
