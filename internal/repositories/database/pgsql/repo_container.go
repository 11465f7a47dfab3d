package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/bank_ledger_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     newPgxAccountRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		LedgerTx:        newPgxLedgerTxRunner(dbPool),
		ProductRepo:     newPgxProductRepository(dbPool),
		FavoriteRepo:    newPgxFavoriteRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
	}
}
