package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/returns_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/returns_management_app/internal/models"
	"github.com/SscSPs/returns_management_app/internal/platform/resilience"
	"github.com/SscSPs/returns_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxSupplierRepository struct {
	BaseRepository
}

func newPgxSupplierRepository(pool *pgxpool.Pool, guard *resilience.StoreGuard) *PgxSupplierRepository {
	return &PgxSupplierRepository{BaseRepository: BaseRepository{Pool: pool, guard: guard}}
}

var _ portsrepo.SupplierRepositoryFacade = (*PgxSupplierRepository)(nil)

// FindSupplierByID retrieves a supplier by its ID.
func (r *PgxSupplierRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `
		SELECT supplier_id, name, balance, created_at, created_by, last_updated_at, last_updated_by
		FROM suppliers
		WHERE supplier_id = $1;`

	var m models.Supplier
	err := r.guarded(ctx, func(ctx context.Context) error {
		err := r.Pool.QueryRow(ctx, query, supplierID).Scan(
			&m.SupplierID, &m.Name, &m.Balance,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("supplier", supplierID)
		}
		if err != nil {
			return fmt.Errorf("failed to find supplier %s: %w", supplierID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	supplier := mapping.ToDomainSupplier(m)
	return &supplier, nil
}

// AdjustSupplierBalance moves the balance in a single statement so concurrent deltas add up.
func (r *PgxSupplierRepository) AdjustSupplierBalance(ctx context.Context, supplierID string, delta decimal.Decimal, userID string) error {
	query := `
		UPDATE suppliers
		SET balance = balance + $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE supplier_id = $1;`

	return r.guarded(ctx, func(ctx context.Context) error {
		tag, err := r.Pool.Exec(ctx, query, supplierID, delta, userID)
		if err != nil {
			return fmt.Errorf("failed to adjust balance of supplier %s: %w", supplierID, err)
		}
		if tag.RowsAffected() == 0 {
			return notFound("supplier", supplierID)
		}
		return nil
	})
}
