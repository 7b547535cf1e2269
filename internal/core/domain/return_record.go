package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReturnType says what a return is filed against.
type ReturnType string

const (
	PurchaseReturn ReturnType = "PURCHASE"
	ExpenseReturn  ReturnType = "EXPENSE"
)

// IsValid reports whether t is a known return type.
func (t ReturnType) IsValid() bool {
	return t == PurchaseReturn || t == ExpenseReturn
}

// ReturnStatus is the lifecycle state of a return request.
type ReturnStatus string

const (
	ReturnPending   ReturnStatus = "PENDING"
	ReturnApproved  ReturnStatus = "APPROVED"
	ReturnRejected  ReturnStatus = "REJECTED"
	ReturnCompleted ReturnStatus = "COMPLETED"
)

// IsValid reports whether s is a known status.
func (s ReturnStatus) IsValid() bool {
	switch s {
	case ReturnPending, ReturnApproved, ReturnRejected, ReturnCompleted:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s ReturnStatus) IsTerminal() bool {
	return s == ReturnRejected || s == ReturnCompleted
}

// CanTransitionTo checks if the status can move to target.
func (s ReturnStatus) CanTransitionTo(target ReturnStatus) bool {
	switch s {
	case ReturnPending:
		return target == ReturnApproved || target == ReturnRejected
	case ReturnApproved:
		return target == ReturnCompleted
	}
	return false
}

// ReturnItem is one returned line.
type ReturnItem struct {
	ID string `json:"id"`
	// SourceItemID references the PurchaseOrderItem this line reduces. Empty for ad-hoc lines.
	SourceItemID     string           `json:"sourceItemId,omitempty"`
	Description      string           `json:"description"`
	Quantity         decimal.Decimal  `json:"quantity"`
	UnitPrice        decimal.Decimal  `json:"unitPrice"`
	Total            decimal.Decimal  `json:"total"`
	OriginalQuantity *decimal.Decimal `json:"originalQuantity,omitempty"` // quantity available when the line was picked
}

// RecomputeTotal sets Total from Quantity and UnitPrice. Stored totals are never trusted.
func (i *ReturnItem) RecomputeTotal() {
	i.Total = RoundMoney(i.Quantity.Mul(i.UnitPrice))
}

// ReturnRecord is one return request.
type ReturnRecord struct {
	ID     string       `json:"id"`
	Type   ReturnType   `json:"type"`
	Status ReturnStatus `json:"status"`
	Reason string       `json:"reason"`
	Notes  *string      `json:"notes,omitempty"`

	PurchaseID string `json:"purchaseId,omitempty"`
	SupplierID string `json:"supplierId,omitempty"`
	ExpenseID  string `json:"expenseId,omitempty"`

	IsManual         bool       `json:"isManual"`
	ManualReference  string     `json:"manualReference,omitempty"`
	ManualDate       *time.Time `json:"manualDate,omitempty"`
	ManualSupplierID string     `json:"manualSupplierId,omitempty"`

	TotalAmount     decimal.Decimal `json:"totalAmount"`
	BaseAmount      decimal.Decimal `json:"baseAmount"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`

	Items    []ReturnItem   `json:"items"`
	Metadata map[string]any `json:"metadata,omitempty"`

	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	CreatedBy     string     `json:"createdBy"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
	LastUpdatedBy string     `json:"lastUpdatedBy"`
}

// IsCompleted reports whether the record counts towards purchase-order quantities.
func (r *ReturnRecord) IsCompleted() bool {
	return r.Status == ReturnCompleted
}

// AffectsPurchaseOrder reports whether the record is tied to a stored purchase order.
func (r *ReturnRecord) AffectsPurchaseOrder() bool {
	return r.Type == PurchaseReturn && !r.IsManual && r.PurchaseID != ""
}

// BalanceSupplierID returns the supplier whose balance this return moves, or "".
func (r *ReturnRecord) BalanceSupplierID() string {
	if r.Type != PurchaseReturn {
		return ""
	}
	if r.IsManual {
		return r.ManualSupplierID
	}
	return r.SupplierID
}

// Clone returns a deep copy so snapshots are not aliased by later edits.
func (r ReturnRecord) Clone() ReturnRecord {
	c := r
	if r.Items != nil {
		c.Items = make([]ReturnItem, len(r.Items))
		copy(c.Items, r.Items)
	}
	if r.Metadata != nil {
		c.Metadata = make(map[string]any, len(r.Metadata))
		for k, v := range r.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}

// ReturnStatusSummary aggregates returns by status.
type ReturnStatusSummary struct {
	Status      ReturnStatus    `json:"status"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}
