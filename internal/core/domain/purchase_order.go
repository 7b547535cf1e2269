package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItem is one ordered line of a purchase order.
type PurchaseOrderItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"` // ordered quantity, never changed by returns
	UnitPrice   decimal.Decimal `json:"unitPrice"`

	ReturnedQuantity    decimal.Decimal `json:"returnedQuantity"`
	RemainingQuantity   decimal.Decimal `json:"remainingQuantity"`
	TotalReturnedAmount decimal.Decimal `json:"totalReturnedAmount"`
}

// PurchaseOrder is the aggregate root for purchasing.
type PurchaseOrder struct {
	ID         string              `json:"id"`
	SupplierID string              `json:"supplierId"`
	Items      []PurchaseOrderItem `json:"items"`

	Subtotal        decimal.Decimal  `json:"subtotal"`
	TaxRate         *decimal.Decimal `json:"taxRate,omitempty"` // percent
	TaxAmount       decimal.Decimal  `json:"taxAmount"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
	PaidAmount      decimal.Decimal  `json:"paidAmount"`
	RemainingAmount decimal.Decimal  `json:"remainingAmount"`

	TotalReturnedAmount decimal.Decimal `json:"totalReturnedAmount"`

	// Version is bumped on every write and checked on reconciliation writes.
	Version int `json:"version"`

	// ItemsPayload is the items column exactly as stored. Only the store boundary reads it.
	ItemsPayload json.RawMessage `json:"-"`

	AuditFields
}

// ReturnHistoryEntry is one completed return's contribution to an order line.
type ReturnHistoryEntry struct {
	ReturnID  string          `json:"returnId"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
}

// ReturnedItemSummary is the per-source-item view of all completed returns. Never persisted.
type ReturnedItemSummary struct {
	SourceItemID  string               `json:"sourceItemId"`
	Description   string               `json:"description"`
	TotalQuantity decimal.Decimal      `json:"totalQuantity"`
	TotalAmount   decimal.Decimal      `json:"totalAmount"`
	History       []ReturnHistoryEntry `json:"history"` // newest first
}

// PurchaseOrderAdjustment is the recomputed state of an order after applying completed returns.
type PurchaseOrderAdjustment struct {
	Items               []PurchaseOrderItem `json:"items"`
	Subtotal            decimal.Decimal     `json:"subtotal"`
	TaxRate             *decimal.Decimal    `json:"taxRate,omitempty"`
	TaxAmount           decimal.Decimal     `json:"taxAmount"`
	TotalAmount         decimal.Decimal     `json:"totalAmount"`
	RemainingAmount     decimal.Decimal     `json:"remainingAmount"`
	TotalReturnedAmount decimal.Decimal     `json:"totalReturnedAmount"`
}
