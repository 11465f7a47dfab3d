package repositories

import (
	"context"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

// FavoriteReader defines read operations for saved favorite accounts
type FavoriteReader interface {
	FindFavoriteByID(ctx context.Context, favoriteID string) (*domain.Favorite, error)
	FindFavoriteByAlias(ctx context.Context, ownerID string, alias string) (*domain.Favorite, error)
	FindFavoriteByAccountNumber(ctx context.Context, ownerID string, accountNumber string) (*domain.Favorite, error)
	ListFavoritesByOwner(ctx context.Context, ownerID string) ([]domain.Favorite, error)
	// SearchFavorites lists the owner's favorites whose alias or account number contains term, ignoring case.
	SearchFavorites(ctx context.Context, ownerID string, term string) ([]domain.Favorite, error)
}

// FavoriteWriter defines write operations for saved favorite accounts
type FavoriteWriter interface {
	// SaveFavorite persists a new favorite. Returns ErrDuplicate when the owner already saved the account or alias.
	SaveFavorite(ctx context.Context, favorite domain.Favorite) error
	UpdateFavorite(ctx context.Context, favorite domain.Favorite) error
	DeleteFavorite(ctx context.Context, favoriteID string) error
}

// FavoriteRepositoryFacade combines all favorite-related repository interfaces
type FavoriteRepositoryFacade interface {
	FavoriteReader
	FavoriteWriter
}
