package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
)

func (s *Store) FindProductByID(_ context.Context, productID string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	product, ok := s.products[productID]
	if !ok {
		return nil, fmt.Errorf("%w: product %s", apperrors.ErrNotFound, productID)
	}
	return &product, nil
}

func (s *Store) ListProducts(_ context.Context, activeOnly bool) ([]domain.Product, error) {
	s.mu.RLock()
	products := make([]domain.Product, 0, len(s.products))
	for _, product := range s.products {
		if activeOnly && !product.IsActive {
			continue
		}
		products = append(products, product)
	}
	s.mu.RUnlock()

	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

func (s *Store) FindFavoriteByID(_ context.Context, favoriteID string) (*domain.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	favorite, ok := s.favorites[favoriteID]
	if !ok {
		return nil, fmt.Errorf("%w: favorite %s", apperrors.ErrNotFound, favoriteID)
	}
	return &favorite, nil
}

func (s *Store) FindFavoriteByAlias(_ context.Context, ownerID string, alias string) (*domain.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, favorite := range s.favorites {
		if favorite.OwnerID == ownerID && favorite.Alias == alias {
			return &favorite, nil
		}
	}
	return nil, fmt.Errorf("%w: favorite '%s'", apperrors.ErrNotFound, alias)
}

func (s *Store) FindFavoriteByAccountNumber(_ context.Context, ownerID string, accountNumber string) (*domain.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, favorite := range s.favorites {
		if favorite.OwnerID == ownerID && favorite.AccountNumber == accountNumber {
			return &favorite, nil
		}
	}
	return nil, fmt.Errorf("%w: favorite for account %s", apperrors.ErrNotFound, accountNumber)
}

func (s *Store) SearchFavorites(ctx context.Context, ownerID string, term string) ([]domain.Favorite, error) {
	favorites, err := s.ListFavoritesByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	matches := make([]domain.Favorite, 0)
	for _, favorite := range favorites {
		if strings.Contains(strings.ToLower(favorite.Alias), term) || strings.Contains(favorite.AccountNumber, term) {
			matches = append(matches, favorite)
		}
	}
	return matches, nil
}

func (s *Store) ListFavoritesByOwner(_ context.Context, ownerID string) ([]domain.Favorite, error) {
	s.mu.RLock()
	favorites := make([]domain.Favorite, 0)
	for _, favorite := range s.favorites {
		if favorite.OwnerID == ownerID {
			favorites = append(favorites, favorite)
		}
	}
	s.mu.RUnlock()

	sort.Slice(favorites, func(i, j int) bool { return favorites[i].Alias < favorites[j].Alias })
	return favorites, nil
}

func (s *Store) SaveFavorite(_ context.Context, favorite domain.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.favorites {
		if existing.OwnerID != favorite.OwnerID {
			continue
		}
		if existing.AccountNumber == favorite.AccountNumber {
			return fmt.Errorf("%w: account %s is already a favorite", apperrors.ErrDuplicate, favorite.AccountNumber)
		}
		if existing.Alias == favorite.Alias {
			return fmt.Errorf("%w: alias '%s' is already used", apperrors.ErrDuplicate, favorite.Alias)
		}
	}
	s.favorites[favorite.FavoriteID] = favorite
	return nil
}

func (s *Store) UpdateFavorite(_ context.Context, favorite domain.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.favorites[favorite.FavoriteID]; !ok {
		return fmt.Errorf("%w: favorite %s", apperrors.ErrNotFound, favorite.FavoriteID)
	}
	for id, existing := range s.favorites {
		if id != favorite.FavoriteID && existing.OwnerID == favorite.OwnerID && existing.Alias == favorite.Alias {
			return fmt.Errorf("%w: alias '%s' is already used", apperrors.ErrDuplicate, favorite.Alias)
		}
	}
	s.favorites[favorite.FavoriteID] = favorite
	return nil
}

func (s *Store) DeleteFavorite(_ context.Context, favoriteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.favorites[favoriteID]; !ok {
		return fmt.Errorf("%w: favorite %s", apperrors.ErrNotFound, favoriteID)
	}
	delete(s.favorites, favoriteID)
	return nil
}
