package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields records who created and last changed a stored purchase order or supplier.
// Return records carry their own nullable creation time instead.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// Supplier is a vendor whose balance moves with purchase returns.
type Supplier struct {
	SupplierID string          `json:"supplierID"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	AuditFields
}
