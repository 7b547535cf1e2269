package repositories

import (
	"context"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SupplierRepositoryFacade defines the supplier operations return handling needs
type SupplierRepositoryFacade interface {
	// FindSupplierByID retrieves a supplier by its unique identifier.
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)

	// AdjustSupplierBalance adds delta (which may be negative) to the supplier's balance.
	AdjustSupplierBalance(ctx context.Context, supplierID string, delta decimal.Decimal, userID string) error
}
