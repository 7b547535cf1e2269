package pgsql

import (
	portsrepo "github.com/SscSPs/returns_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/returns_management_app/internal/platform/resilience"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every repository on one pool. All of them share the store guard.
func NewRepositoryProvider(dbPool *pgxpool.Pool, guard *resilience.StoreGuard) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ReturnRepo:        newPgxReturnRepository(dbPool, guard),
		PurchaseOrderRepo: newPgxPurchaseOrderRepository(dbPool, guard),
		SupplierRepo:      newPgxSupplierRepository(dbPool, guard),
	}
}
