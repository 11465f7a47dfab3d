package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bank_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger_app/internal/dto"
)

type favoriteService struct {
	BaseService
	favoriteRepo portsrepo.FavoriteRepositoryFacade
	accountRepo  portsrepo.AccountReader
}

// NewFavoriteService creates a new FavoriteService.
func NewFavoriteService(favoriteRepo portsrepo.FavoriteRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.FavoriteSvcFacade {
	return &favoriteService{
		BaseService:  newBaseService(),
		favoriteRepo: favoriteRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.FavoriteSvcFacade = (*favoriteService)(nil)

// AddFavorite saves an account under an alias. The alias defaults to the account number.
func (s *favoriteService) AddFavorite(ctx context.Context, caller domain.Caller, req dto.AddFavoriteRequest) (*domain.Favorite, error) {
	target, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrNotFound, req.AccountNumber)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", req.AccountNumber, err)
	}
	if caller.Owns(*target) {
		return nil, fmt.Errorf("%w: an account can not be its own favorite", apperrors.ErrValidation)
	}
	if target.IsVault() {
		return nil, fmt.Errorf("%w: the vault account can not be a favorite", apperrors.ErrValidation)
	}

	alias := strings.TrimSpace(req.Alias)
	if alias == "" {
		alias = target.AccountNumber
	}
	if err := validateAlias(alias); err != nil {
		return nil, err
	}

	now := s.Now()
	favorite := domain.Favorite{
		FavoriteID:    uuid.NewString(),
		OwnerID:       caller.OwnerID,
		AccountNumber: target.AccountNumber,
		Alias:         alias,
		AuditFields:   auditFields(now, caller.OwnerID),
	}
	if err := s.favoriteRepo.SaveFavorite(ctx, favorite); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save favorite", slog.String("owner_id", caller.OwnerID))
		return nil, fmt.Errorf("failed to save favorite: %w", err)
	}

	s.LogInfo(ctx, "Favorite added", slog.String("favorite_id", favorite.FavoriteID), slog.String("alias", alias))
	return &favorite, nil
}

func (s *favoriteService) ListFavorites(ctx context.Context, caller domain.Caller) ([]domain.Favorite, error) {
	favorites, err := s.favoriteRepo.ListFavoritesByOwner(ctx, caller.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

func (s *favoriteService) SearchFavorites(ctx context.Context, caller domain.Caller, query string) ([]domain.Favorite, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return nil, fmt.Errorf("%w: a search term is required", apperrors.ErrValidation)
	}
	favorites, err := s.favoriteRepo.SearchFavorites(ctx, caller.OwnerID, term)
	if err != nil {
		return nil, fmt.Errorf("failed to search favorites: %w", err)
	}
	return favorites, nil
}

func (s *favoriteService) IsFavorite(ctx context.Context, caller domain.Caller, accountNumber string) (*domain.Favorite, bool, error) {
	favorite, err := s.favoriteRepo.FindFavoriteByAccountNumber(ctx, caller.OwnerID, accountNumber)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to check favorite for account %s: %w", accountNumber, err)
	}
	return favorite, true, nil
}

func (s *favoriteService) UpdateFavorite(ctx context.Context, caller domain.Caller, favoriteID string, req dto.UpdateFavoriteRequest) (*domain.Favorite, error) {
	favorite, err := s.ownedFavorite(ctx, caller, favoriteID)
	if err != nil {
		return nil, err
	}

	alias := strings.TrimSpace(req.Alias)
	if err := validateAlias(alias); err != nil {
		return nil, err
	}
	if alias == favorite.Alias {
		return favorite, nil
	}

	favorite.Alias = alias
	favorite.LastUpdatedAt = s.Now()
	favorite.LastUpdatedBy = caller.OwnerID
	if err := s.favoriteRepo.UpdateFavorite(ctx, *favorite); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update favorite: %w", err)
	}
	return favorite, nil
}

func (s *favoriteService) RemoveFavorite(ctx context.Context, caller domain.Caller, favoriteID string) error {
	if _, err := s.ownedFavorite(ctx, caller, favoriteID); err != nil {
		return err
	}
	if err := s.favoriteRepo.DeleteFavorite(ctx, favoriteID); err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	s.LogInfo(ctx, "Favorite removed", slog.String("favorite_id", favoriteID))
	return nil
}

// ownedFavorite hides favorites of other owners behind ErrNotFound.
func (s *favoriteService) ownedFavorite(ctx context.Context, caller domain.Caller, favoriteID string) (*domain.Favorite, error) {
	favorite, err := s.favoriteRepo.FindFavoriteByID(ctx, favoriteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: favorite %s not found", apperrors.ErrNotFound, favoriteID)
		}
		return nil, fmt.Errorf("failed to find favorite %s: %w", favoriteID, err)
	}
	if favorite.OwnerID != caller.OwnerID {
		return nil, fmt.Errorf("%w: favorite %s not found", apperrors.ErrNotFound, favoriteID)
	}
	return favorite, nil
}

func validateAlias(alias string) error {
	if alias == "" {
		return fmt.Errorf("%w: alias is required", apperrors.ErrValidation)
	}
	if len([]rune(alias)) > domain.MaxAliasLength {
		return fmt.Errorf("%w: alias must be at most %d characters", apperrors.ErrValidation, domain.MaxAliasLength)
	}
	return nil
}
