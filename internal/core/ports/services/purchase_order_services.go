package services

import (
	"context"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
)

// PurchaseOrderSvcFacade exposes the return-derived view of purchase orders
type PurchaseOrderSvcFacade interface {
	// GetReturnedItems returns the per-line summary of completed returns, ordered by item id.
	GetReturnedItems(ctx context.Context, orderID string) ([]domain.ReturnedItemSummary, error)

	// PreviewAdjustment computes the adjustment the next reconciliation would write, without
	// writing it. Nil means there is nothing to adjust.
	PreviewAdjustment(ctx context.Context, orderID string) (*domain.PurchaseOrderAdjustment, error)
}
