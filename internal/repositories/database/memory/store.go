// Package memory provides an in-process implementation of every repository port.
// It backs the service when no database is configured and in tests.
package memory

import (
	"sync"

	"github.com/SscSPs/bank_ledger_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
)

// Store keeps accounts, the ledger log, the catalog and favorites in maps.
type Store struct {
	mu           sync.RWMutex
	accounts     map[string]domain.Account
	transactions map[string]storedTransaction
	products     map[string]domain.Product
	favorites    map[string]domain.Favorite
	nextSeq      int64

	locks *keyedLocker
}

// storedTransaction remembers insertion order to break timestamp ties.
type storedTransaction struct {
	domain.Transaction
	seq int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]domain.Account),
		transactions: make(map[string]storedTransaction),
		products:     make(map[string]domain.Product),
		favorites:    make(map[string]domain.Favorite),
		locks:        newKeyedLocker(),
	}
}

var (
	_ portsrepo.AccountRepositoryFacade     = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.LedgerTxRunner              = (*Store)(nil)
	_ portsrepo.ProductReader               = (*Store)(nil)
	_ portsrepo.FavoriteRepositoryFacade    = (*Store)(nil)
	_ portsrepo.ReportingRepository         = (*Store)(nil)
)

// NewRepositoryProvider exposes the store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     store,
		TransactionRepo: store,
		LedgerTx:        store,
		ProductRepo:     store,
		FavoriteRepo:    store,
		ReportingRepo:   store,
	}
}

// AddProduct seeds the catalog. The catalog has no write port.
func (s *Store) AddProduct(product domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ProductID] = product
}
