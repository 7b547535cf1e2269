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
)

const returnColumns = `return_id, return_type, status, reason, purchase_id, supplier_id, expense_id,
	is_manual, manual_reference, manual_date, manual_supplier_id,
	total_amount, base_amount, tax_amount, remaining_amount, items,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxReturnRepository struct {
	BaseRepository
}

func newPgxReturnRepository(pool *pgxpool.Pool, guard *resilience.StoreGuard) *PgxReturnRepository {
	return &PgxReturnRepository{BaseRepository: BaseRepository{Pool: pool, guard: guard}}
}

var _ portsrepo.ReturnRepositoryFacade = (*PgxReturnRepository)(nil)

func scanReturn(row pgx.Row) (*domain.ReturnRecord, error) {
	var m models.ReturnRecord
	err := row.Scan(
		&m.ReturnID, &m.ReturnType, &m.Status, &m.Reason,
		&m.PurchaseID, &m.SupplierID, &m.ExpenseID,
		&m.IsManual, &m.ManualReference, &m.ManualDate, &m.ManualSupplierID,
		&m.TotalAmount, &m.BaseAmount, &m.TaxAmount, &m.RemainingAmount, &m.Items,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}

	record := mapping.ToDomainReturn(m)
	decoded := payload.DecodeReturnItems(m.Items, record.AffectsPurchaseOrder())
	record.Items = decoded.Items
	record.Notes = decoded.Notes
	record.Metadata = decoded.Metadata
	return &record, nil
}

func encodeReturn(record domain.ReturnRecord) (models.ReturnRecord, error) {
	m := mapping.ToModelReturn(record)
	items, err := payload.EncodeReturnItems(record.Items, record.Notes, record.Metadata)
	if err != nil {
		return m, fmt.Errorf("failed to encode items of return %s: %w", record.ID, err)
	}
	m.Items = items
	return m, nil
}

// FindReturnByID retrieves a return by its ID.
func (r *PgxReturnRepository) FindReturnByID(ctx context.Context, returnID string) (*domain.ReturnRecord, error) {
	query := `SELECT ` + returnColumns + ` FROM returns WHERE return_id = $1;`

	var record *domain.ReturnRecord
	err := r.guarded(ctx, func(ctx context.Context) error {
		var err error
		record, err = scanReturn(r.Pool.QueryRow(ctx, query, returnID))
		if errors.Is(err, pgx.ErrNoRows) {
			return notFound("return", returnID)
		}
		if err != nil {
			return fmt.Errorf("failed to find return %s: %w", returnID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// ListReturnsByPurchaseID retrieves all returns pointing at a purchase order, newest first.
func (r *PgxReturnRepository) ListReturnsByPurchaseID(ctx context.Context, purchaseID string) ([]domain.ReturnRecord, error) {
	query := `SELECT ` + returnColumns + `
		FROM returns
		WHERE purchase_id = $1
		ORDER BY created_at DESC NULLS LAST, return_id;`

	var records []domain.ReturnRecord
	err := r.guarded(ctx, func(ctx context.Context) error {
		rows, err := r.Pool.Query(ctx, query, purchaseID)
		if err != nil {
			return fmt.Errorf("failed to query returns for purchase order %s: %w", purchaseID, err)
		}
		defer rows.Close()

		records = make([]domain.ReturnRecord, 0)
		for rows.Next() {
			record, err := scanReturn(rows)
			if err != nil {
				return fmt.Errorf("failed to scan return row: %w", err)
			}
			records = append(records, *record)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("error iterating return rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// GetReturnStatusSummary groups returns by status.
func (r *PgxReturnRepository) GetReturnStatusSummary(ctx context.Context) ([]domain.ReturnStatusSummary, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM returns
		GROUP BY status
		ORDER BY status;`

	var counts []models.ReturnStatusCount
	err := r.guarded(ctx, func(ctx context.Context) error {
		rows, err := r.Pool.Query(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to query return status summary: %w", err)
		}
		defer rows.Close()

		counts = make([]models.ReturnStatusCount, 0)
		for rows.Next() {
			var c models.ReturnStatusCount
			if err := rows.Scan(&c.Status, &c.Count, &c.TotalAmount); err != nil {
				return fmt.Errorf("failed to scan return status row: %w", err)
			}
			counts = append(counts, c)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainStatusSummary(counts), nil
}

// SaveReturn inserts a new return.
func (r *PgxReturnRepository) SaveReturn(ctx context.Context, record domain.ReturnRecord) error {
	m, err := encodeReturn(record)
	if err != nil {
		return err
	}

	query := `INSERT INTO returns (` + returnColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);`

	return r.guarded(ctx, func(ctx context.Context) error {
		_, err := r.Pool.Exec(ctx, query,
			m.ReturnID, m.ReturnType, m.Status, m.Reason,
			m.PurchaseID, m.SupplierID, m.ExpenseID,
			m.IsManual, m.ManualReference, m.ManualDate, m.ManualSupplierID,
			m.TotalAmount, m.BaseAmount, m.TaxAmount, m.RemainingAmount, m.Items,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: return with ID %s already exists", apperrors.ErrDuplicate, m.ReturnID)
		}
		if err != nil {
			return fmt.Errorf("failed to save return %s: %w", m.ReturnID, err)
		}
		return nil
	})
}

// UpdateReturn overwrites every column of an existing return.
func (r *PgxReturnRepository) UpdateReturn(ctx context.Context, record domain.ReturnRecord) error {
	m, err := encodeReturn(record)
	if err != nil {
		return err
	}

	query := `
		UPDATE returns SET
			return_type = $2, status = $3, reason = $4,
			purchase_id = $5, supplier_id = $6, expense_id = $7,
			is_manual = $8, manual_reference = $9, manual_date = $10, manual_supplier_id = $11,
			total_amount = $12, base_amount = $13, tax_amount = $14, remaining_amount = $15, items = $16,
			created_at = $17, created_by = $18, last_updated_at = $19, last_updated_by = $20
		WHERE return_id = $1;`

	return r.guarded(ctx, func(ctx context.Context) error {
		tag, err := r.Pool.Exec(ctx, query,
			m.ReturnID, m.ReturnType, m.Status, m.Reason,
			m.PurchaseID, m.SupplierID, m.ExpenseID,
			m.IsManual, m.ManualReference, m.ManualDate, m.ManualSupplierID,
			m.TotalAmount, m.BaseAmount, m.TaxAmount, m.RemainingAmount, m.Items,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to update return %s: %w", m.ReturnID, err)
		}
		if tag.RowsAffected() == 0 {
			return notFound("return", m.ReturnID)
		}
		return nil
	})
}

// DeleteReturn removes a return by ID.
func (r *PgxReturnRepository) DeleteReturn(ctx context.Context, returnID string) error {
	return r.guarded(ctx, func(ctx context.Context) error {
		tag, err := r.Pool.Exec(ctx, `DELETE FROM returns WHERE return_id = $1;`, returnID)
		if err != nil {
			return fmt.Errorf("failed to delete return %s: %w", returnID, err)
		}
		if tag.RowsAffected() == 0 {
			return notFound("return", returnID)
		}
		return nil
	})
}
