package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnRecord is a row of the returns table. Items, notes and metadata live in the items jsonb column.
type ReturnRecord struct {
	ReturnID   string `db:"return_id"`
	ReturnType string `db:"return_type"`
	Status     string `db:"status"`
	Reason     string `db:"reason"`

	PurchaseID *string `db:"purchase_id"` // Nullable
	SupplierID *string `db:"supplier_id"` // Nullable
	ExpenseID  *string `db:"expense_id"`  // Nullable

	IsManual         bool       `db:"is_manual"`
	ManualReference  *string    `db:"manual_reference"`
	ManualDate       *time.Time `db:"manual_date"`
	ManualSupplierID *string    `db:"manual_supplier_id"`

	TotalAmount     decimal.Decimal `db:"total_amount"`
	BaseAmount      decimal.Decimal `db:"base_amount"`
	TaxAmount       decimal.Decimal `db:"tax_amount"`
	RemainingAmount decimal.Decimal `db:"remaining_amount"`

	Items []byte `db:"items"`

	CreatedAt     *time.Time `db:"created_at"`
	CreatedBy     string     `db:"created_by"`
	LastUpdatedAt time.Time  `db:"last_updated_at"`
	LastUpdatedBy string     `db:"last_updated_by"`
}

// ReturnStatusCount is one row of the per-status summary query.
type ReturnStatusCount struct {
	Status      string          `db:"status"`
	Count       int             `db:"count"`
	TotalAmount decimal.Decimal `db:"total_amount"`
}
