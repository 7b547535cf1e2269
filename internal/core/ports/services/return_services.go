package services

import (
	"context"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
)

// ReturnReaderSvc defines read operations for returns
type ReturnReaderSvc interface {
	// GetReturn retrieves a single return.
	GetReturn(ctx context.Context, returnID string) (*domain.ReturnRecord, error)

	// ListReturnsByPurchaseOrder lists every return filed against an order.
	ListReturnsByPurchaseOrder(ctx context.Context, orderID string) ([]domain.ReturnRecord, error)

	// GetStatusSummary counts returns per status.
	GetStatusSummary(ctx context.Context) ([]domain.ReturnStatusSummary, error)
}

// ReturnWriterSvc defines the mutations of returns. Each one re-reconciles the affected
// purchase orders and rolls back its partial effects on failure.
type ReturnWriterSvc interface {
	// SubmitReturn creates the return when record.ID is empty and updates it otherwise.
	SubmitReturn(ctx context.Context, session domain.Session, record domain.ReturnRecord) (*domain.ReturnRecord, error)

	// ChangeReturnStatus moves a return through its lifecycle.
	ChangeReturnStatus(ctx context.Context, session domain.Session, returnID string, status domain.ReturnStatus) error

	// DeleteReturn removes a return and undoes its effects.
	DeleteReturn(ctx context.Context, session domain.Session, returnID string) error
}

// ReturnSvcFacade combines all return-related service interfaces
type ReturnSvcFacade interface {
	ReturnReaderSvc
	ReturnWriterSvc
}
