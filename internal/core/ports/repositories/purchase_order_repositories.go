package repositories

import (
	"context"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
)

// PurchaseOrderReader defines read operations for purchase orders
type PurchaseOrderReader interface {
	// FindPurchaseOrderByID retrieves an order with its items decoded into canonical form.
	FindPurchaseOrderByID(ctx context.Context, orderID string) (*domain.PurchaseOrder, error)
}

// PurchaseOrderWriter defines write operations for purchase orders
type PurchaseOrderWriter interface {
	// ApplyPurchaseOrderAdjustment writes recomputed items and financials if the stored version
	// still equals expectedVersion, and returns the new version. A stale version yields
	// apperrors.ErrConflict.
	ApplyPurchaseOrderAdjustment(ctx context.Context, orderID string, expectedVersion int, adj domain.PurchaseOrderAdjustment, userID string) (int, error)

	// RestorePurchaseOrder puts back a snapshot taken before a mutation: the raw items payload,
	// financial fields and paid amount. It only applies while the stored version equals
	// expectedVersion.
	RestorePurchaseOrder(ctx context.Context, snapshot domain.PurchaseOrder, expectedVersion int, userID string) error
}

// PurchaseOrderRepositoryFacade combines all purchase-order repository interfaces
type PurchaseOrderRepositoryFacade interface {
	PurchaseOrderReader
	PurchaseOrderWriter
}
