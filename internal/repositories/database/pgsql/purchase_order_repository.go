package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/returns_management_app/internal/apperrors"
	"github.com/SscSPs/returns_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/returns_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/returns_management_app/internal/models"
	"github.com/SscSPs/returns_management_app/internal/platform/resilience"
	"github.com/SscSPs/returns_management_app/internal/repositories/database/pgsql/payload"
	"github.com/SscSPs/returns_management_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxPurchaseOrderRepository struct {
	BaseRepository
}

func newPgxPurchaseOrderRepository(pool *pgxpool.Pool, guard *resilience.StoreGuard) *PgxPurchaseOrderRepository {
	return &PgxPurchaseOrderRepository{BaseRepository: BaseRepository{Pool: pool, guard: guard}}
}

var _ portsrepo.PurchaseOrderRepositoryFacade = (*PgxPurchaseOrderRepository)(nil)

// FindPurchaseOrderByID retrieves an order and decodes its items column.
func (r *PgxPurchaseOrderRepository) FindPurchaseOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error) {
	query := `
		SELECT purchase_order_id, supplier_id, items, subtotal, tax_rate, tax_amount, total_amount,
			paid_amount, remaining_amount, total_returned_amount, version,
			created_at, created_by, last_updated_at, last_updated_by
		FROM purchase_orders
		WHERE purchase_order_id = $1;`

	var m models.PurchaseOrder
	err := r.guarded(ctx, func(ctx context.Context) error {
		var taxRate decimal.NullDecimal
		err := r.Pool.QueryRow(ctx, query, orderID).Scan(
			&m.PurchaseOrderID, &m.SupplierID, &m.Items,
			&m.Subtotal, &taxRate, &m.TaxAmount, &m.TotalAmount,
			&m.PaidAmount, &m.RemainingAmount, &m.TotalReturnedAmount, &m.Version,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		)
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("purchase order", orderID)
		}
		if err != nil {
			return fmt.Errorf("failed to find purchase order %s: %w", orderID, err)
		}
		if taxRate.Valid {
			m.TaxRate = &taxRate.Decimal
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order := mapping.ToDomainPurchaseOrder(m)
	order.Items = payload.DecodePurchaseOrderItems(m.Items)
	return &order, nil
}

// lockVersion reads the stored items and version under a row lock and checks the version.
func lockVersion(ctx context.Context, tx pgx.Tx, orderID string, expectedVersion int) ([]byte, error) {
	var items []byte
	var version int
	err := tx.QueryRow(ctx,
		`SELECT items, version FROM purchase_orders WHERE purchase_order_id = $1 FOR UPDATE;`,
		orderID,
	).Scan(&items, &version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("purchase order", orderID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock purchase order %s: %w", orderID, err)
	}
	if version != expectedVersion {
		return nil, fmt.Errorf("%w: purchase order %s is at version %d, expected %d",
			apperrors.ErrConflict, orderID, version, expectedVersion)
	}
	return items, nil
}

// ApplyPurchaseOrderAdjustment merges recomputed items into the stored payload and writes the
// recomputed financials. Only the fields the adjustment owns are touched.
func (r *PgxPurchaseOrderRepository) ApplyPurchaseOrderAdjustment(ctx context.Context, orderID string, expectedVersion int, adj domain.PurchaseOrderAdjustment, userID string) (int, error) {
	query := `
		UPDATE purchase_orders SET
			items = $2, subtotal = $3, tax_rate = $4, tax_amount = $5, total_amount = $6,
			remaining_amount = $7, total_returned_amount = $8,
			version = version + 1, last_updated_at = NOW(), last_updated_by = $9
		WHERE purchase_order_id = $1
		RETURNING version;`

	var newVersion int
	err := r.guarded(ctx, func(ctx context.Context) error {
		return r.inTx(ctx, func(tx pgx.Tx) error {
			prev, err := lockVersion(ctx, tx, orderID, expectedVersion)
			if err != nil {
				return err
			}
			merged, err := payload.EncodePurchaseOrderItems(prev, adj.Items)
			if err != nil {
				return fmt.Errorf("failed to encode items of purchase order %s: %w", orderID, err)
			}

			err = tx.QueryRow(ctx, query,
				orderID, merged, adj.Subtotal, nullDecimal(adj.TaxRate), adj.TaxAmount, adj.TotalAmount,
				adj.RemainingAmount, adj.TotalReturnedAmount, userID,
			).Scan(&newVersion)
			if err != nil {
				return fmt.Errorf("failed to update purchase order %s: %w", orderID, err)
			}
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return newVersion, nil
}

// RestorePurchaseOrder writes a snapshot back verbatim, raw items payload included.
func (r *PgxPurchaseOrderRepository) RestorePurchaseOrder(ctx context.Context, snapshot domain.PurchaseOrder, expectedVersion int, userID string) error {
	query := `
		UPDATE purchase_orders SET
			items = $2, subtotal = $3, tax_rate = $4, tax_amount = $5, total_amount = $6,
			paid_amount = $7, remaining_amount = $8, total_returned_amount = $9,
			version = version + 1, last_updated_at = NOW(), last_updated_by = $10
		WHERE purchase_order_id = $1;`

	return r.guarded(ctx, func(ctx context.Context) error {
		return r.inTx(ctx, func(tx pgx.Tx) error {
			if _, err := lockVersion(ctx, tx, snapshot.ID, expectedVersion); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, query,
				snapshot.ID, []byte(snapshot.ItemsPayload), snapshot.Subtotal, nullDecimal(snapshot.TaxRate),
				snapshot.TaxAmount, snapshot.TotalAmount, snapshot.PaidAmount, snapshot.RemainingAmount,
				snapshot.TotalReturnedAmount, userID,
			)
			if err != nil {
				return fmt.Errorf("failed to restore purchase order %s: %w", snapshot.ID, err)
			}
			return nil
		})
	})
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
