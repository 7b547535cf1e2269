package models

import "github.com/shopspring/decimal"

// Supplier is a row of the suppliers table.
type Supplier struct {
	SupplierID string          `db:"supplier_id"`
	Name       string          `db:"name"`
	Balance    decimal.Decimal `db:"balance"`
	AuditFields
}
