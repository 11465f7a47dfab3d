package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/bank_ledger_app/internal/apperrors"
	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
	"github.com/SscSPs/bank_ledger_app/internal/models"
	"github.com/SscSPs/bank_ledger_app/internal/utils/mapping"
)

const (
	productColumns  = `product_id, name, description, product_type, price, is_active, created_at, created_by, last_updated_at, last_updated_by`
	favoriteColumns = `favorite_id, owner_id, account_number, alias, created_at, created_by, last_updated_at, last_updated_by`
)

// PgxProductRepository reads the product catalog.
type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool) *PgxProductRepository {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductReader = (*PgxProductRepository)(nil)

func scanProduct(row pgx.Row) (domain.Product, error) {
	var m models.Product
	err := row.Scan(&m.ProductID, &m.Name, &m.Description, &m.Type, &m.Price, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		return domain.Product{}, err
	}
	return mapping.ToDomainProduct(m), nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1;`
	product, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		return nil, translateError(err, "failed to find product %s", productID)
	}
	return &product, nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context, activeOnly bool) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ($1 = FALSE OR is_active) ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating product rows: %w", err)
	}
	return products, nil
}

// PgxFavoriteRepository stores the favorite accounts of each owner.
type PgxFavoriteRepository struct {
	BaseRepository
}

func newPgxFavoriteRepository(pool *pgxpool.Pool) *PgxFavoriteRepository {
	return &PgxFavoriteRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FavoriteRepositoryFacade = (*PgxFavoriteRepository)(nil)

func scanFavorite(row pgx.Row) (domain.Favorite, error) {
	var m models.Favorite
	err := row.Scan(&m.FavoriteID, &m.OwnerID, &m.AccountNumber, &m.Alias,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy)
	if err != nil {
		return domain.Favorite{}, err
	}
	return mapping.ToDomainFavorite(m), nil
}

func (r *PgxFavoriteRepository) FindFavoriteByID(ctx context.Context, favoriteID string) (*domain.Favorite, error) {
	query := `SELECT ` + favoriteColumns + ` FROM favorites WHERE favorite_id = $1;`
	favorite, err := scanFavorite(r.Pool.QueryRow(ctx, query, favoriteID))
	if err != nil {
		return nil, translateError(err, "failed to find favorite %s", favoriteID)
	}
	return &favorite, nil
}

func (r *PgxFavoriteRepository) FindFavoriteByAlias(ctx context.Context, ownerID string, alias string) (*domain.Favorite, error) {
	query := `SELECT ` + favoriteColumns + ` FROM favorites WHERE owner_id = $1 AND alias = $2;`
	favorite, err := scanFavorite(r.Pool.QueryRow(ctx, query, ownerID, alias))
	if err != nil {
		return nil, translateError(err, "failed to find favorite '%s'", alias)
	}
	return &favorite, nil
}

func (r *PgxFavoriteRepository) FindFavoriteByAccountNumber(ctx context.Context, ownerID string, accountNumber string) (*domain.Favorite, error) {
	query := `SELECT ` + favoriteColumns + ` FROM favorites WHERE owner_id = $1 AND account_number = $2;`
	favorite, err := scanFavorite(r.Pool.QueryRow(ctx, query, ownerID, accountNumber))
	if err != nil {
		return nil, translateError(err, "failed to find favorite for account %s", accountNumber)
	}
	return &favorite, nil
}

func (r *PgxFavoriteRepository) ListFavoritesByOwner(ctx context.Context, ownerID string) ([]domain.Favorite, error) {
	query := `SELECT ` + favoriteColumns + ` FROM favorites WHERE owner_id = $1 ORDER BY alias;`
	return r.queryFavorites(ctx, query, ownerID)
}

// likeEscaper makes a search term match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *PgxFavoriteRepository) SearchFavorites(ctx context.Context, ownerID string, term string) ([]domain.Favorite, error) {
	query := `
		SELECT ` + favoriteColumns + `
		FROM favorites
		WHERE owner_id = $1 AND (alias ILIKE $2 OR account_number ILIKE $2)
		ORDER BY alias;
	`
	return r.queryFavorites(ctx, query, ownerID, "%"+likeEscaper.Replace(term)+"%")
}

func (r *PgxFavoriteRepository) queryFavorites(ctx context.Context, query string, args ...any) ([]domain.Favorite, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]domain.Favorite, 0)
	for rows.Next() {
		favorite, err := scanFavorite(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan favorite row: %w", err)
		}
		favorites = append(favorites, favorite)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating favorite rows: %w", err)
	}
	return favorites, nil
}

func (r *PgxFavoriteRepository) SaveFavorite(ctx context.Context, favorite domain.Favorite) error {
	m := mapping.ToModelFavorite(favorite)
	query := `INSERT INTO favorites (` + favoriteColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.Pool.Exec(ctx, query, m.FavoriteID, m.OwnerID, m.AccountNumber, m.Alias,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)
	if err != nil {
		return translateError(err, "failed to save favorite %s", m.FavoriteID)
	}
	return nil
}

func (r *PgxFavoriteRepository) UpdateFavorite(ctx context.Context, favorite domain.Favorite) error {
	query := `
		UPDATE favorites
		SET alias = $2, last_updated_at = $3, last_updated_by = $4
		WHERE favorite_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, favorite.FavoriteID, favorite.Alias, favorite.LastUpdatedAt, favorite.LastUpdatedBy)
	if err != nil {
		return translateError(err, "failed to update favorite %s", favorite.FavoriteID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: favorite %s", apperrors.ErrNotFound, favorite.FavoriteID)
	}
	return nil
}

func (r *PgxFavoriteRepository) DeleteFavorite(ctx context.Context, favoriteID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM favorites WHERE favorite_id = $1;`, favoriteID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite %s: %w", favoriteID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: favorite %s", apperrors.ErrNotFound, favoriteID)
	}
	return nil
}
