package repositories

import (
	"context"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
)

// ReturnReader defines read operations for return records
type ReturnReader interface {
	// FindReturnByID retrieves a return by its unique identifier.
	FindReturnByID(ctx context.Context, returnID string) (*domain.ReturnRecord, error)

	// ListReturnsByPurchaseID retrieves every return linked to a purchase order, in any status.
	ListReturnsByPurchaseID(ctx context.Context, purchaseID string) ([]domain.ReturnRecord, error)

	// GetReturnStatusSummary counts returns and sums their totals per status.
	GetReturnStatusSummary(ctx context.Context) ([]domain.ReturnStatusSummary, error)
}

// ReturnWriter defines write operations for return records
type ReturnWriter interface {
	// SaveReturn persists a new return.
	SaveReturn(ctx context.Context, record domain.ReturnRecord) error

	// UpdateReturn overwrites an existing return, items included.
	UpdateReturn(ctx context.Context, record domain.ReturnRecord) error

	// DeleteReturn removes a return.
	DeleteReturn(ctx context.Context, returnID string) error
}

// ReturnRepositoryFacade combines all return-related repository interfaces
type ReturnRepositoryFacade interface {
	ReturnReader
	ReturnWriter
}
