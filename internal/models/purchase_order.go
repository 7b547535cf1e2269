package models

import (
	"github.com/shopspring/decimal"
)

// PurchaseOrder is a row of the purchase_orders table.
type PurchaseOrder struct {
	PurchaseOrderID     string           `db:"purchase_order_id"`
	SupplierID          string           `db:"supplier_id"`
	Items               []byte           `db:"items"` // jsonb, written back merged
	Subtotal            decimal.Decimal  `db:"subtotal"`
	TaxRate             *decimal.Decimal `db:"tax_rate"` // Nullable, percent
	TaxAmount           decimal.Decimal  `db:"tax_amount"`
	TotalAmount         decimal.Decimal  `db:"total_amount"`
	PaidAmount          decimal.Decimal  `db:"paid_amount"`
	RemainingAmount     decimal.Decimal  `db:"remaining_amount"`
	TotalReturnedAmount decimal.Decimal  `db:"total_returned_amount"`
	Version             int              `db:"version"`
	AuditFields
}
