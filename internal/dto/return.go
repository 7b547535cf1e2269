package dto

import (
	"time"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReturnItemRequest is one returned line as sent by clients.
type ReturnItemRequest struct {
	ID               string           `json:"id"`
	SourceItemID     string           `json:"sourceItemId"`
	Description      string           `json:"description"`
	Quantity         decimal.Decimal  `json:"quantity" swaggertype:"string" example:"2"`
	UnitPrice        decimal.Decimal  `json:"unitPrice" swaggertype:"string" example:"12.50"`
	OriginalQuantity *decimal.Decimal `json:"originalQuantity,omitempty" swaggertype:"string"`
}

// SubmitReturnRequest defines the data needed to create or update a return.
// Amounts are validated by the service so every rule reports the same way.
type SubmitReturnRequest struct {
	Type   string  `json:"type" binding:"required,returntype" example:"PURCHASE"`
	Reason string  `json:"reason" binding:"required"`
	Notes  *string `json:"notes,omitempty"`

	PurchaseID string `json:"purchaseId,omitempty"`
	SupplierID string `json:"supplierId,omitempty"`
	ExpenseID  string `json:"expenseId,omitempty"`

	IsManual         bool       `json:"isManual"`
	ManualReference  string     `json:"manualReference,omitempty"`
	ManualDate       *time.Time `json:"manualDate,omitempty"`
	ManualSupplierID string     `json:"manualSupplierId,omitempty"`

	TotalAmount     decimal.Decimal `json:"totalAmount" swaggertype:"string" example:"25.00"`
	BaseAmount      decimal.Decimal `json:"baseAmount" swaggertype:"string"`
	TaxAmount       decimal.Decimal `json:"taxAmount" swaggertype:"string"`
	RemainingAmount decimal.Decimal `json:"remainingAmount" swaggertype:"string"`

	Items    []ReturnItemRequest `json:"items" binding:"dive"`
	Metadata map[string]any      `json:"metadata,omitempty"`
}

// ToDomain builds the record the service validates. An empty id asks for a new return.
func (r SubmitReturnRequest) ToDomain(returnID string) domain.ReturnRecord {
	items := make([]domain.ReturnItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = domain.ReturnItem{
			ID:               item.ID,
			SourceItemID:     item.SourceItemID,
			Description:      item.Description,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			OriginalQuantity: item.OriginalQuantity,
		}
	}
	return domain.ReturnRecord{
		ID:               returnID,
		Type:             domain.ReturnType(r.Type),
		Reason:           r.Reason,
		Notes:            r.Notes,
		PurchaseID:       r.PurchaseID,
		SupplierID:       r.SupplierID,
		ExpenseID:        r.ExpenseID,
		IsManual:         r.IsManual,
		ManualReference:  r.ManualReference,
		ManualDate:       r.ManualDate,
		ManualSupplierID: r.ManualSupplierID,
		TotalAmount:      r.TotalAmount,
		BaseAmount:       r.BaseAmount,
		TaxAmount:        r.TaxAmount,
		RemainingAmount:  r.RemainingAmount,
		Items:            items,
		Metadata:         r.Metadata,
	}
}

// ChangeReturnStatusRequest moves a return to a new status.
type ChangeReturnStatusRequest struct {
	Status string `json:"status" binding:"required,returnstatus" example:"COMPLETED"`
}

// ReturnItemResponse is one returned line.
type ReturnItemResponse struct {
	ID               string           `json:"id"`
	SourceItemID     string           `json:"sourceItemId,omitempty"`
	Description      string           `json:"description"`
	Quantity         decimal.Decimal  `json:"quantity" swaggertype:"string"`
	UnitPrice        decimal.Decimal  `json:"unitPrice" swaggertype:"string"`
	Total            decimal.Decimal  `json:"total" swaggertype:"string"`
	OriginalQuantity *decimal.Decimal `json:"originalQuantity,omitempty" swaggertype:"string"`
}

// ReturnResponse defines the data returned for a return.
type ReturnResponse struct {
	ID     string  `json:"id"`
	Type   string  `json:"type"`
	Status string  `json:"status"`
	Reason string  `json:"reason"`
	Notes  *string `json:"notes,omitempty"`

	PurchaseID string `json:"purchaseId,omitempty"`
	SupplierID string `json:"supplierId,omitempty"`
	ExpenseID  string `json:"expenseId,omitempty"`

	IsManual         bool       `json:"isManual"`
	ManualReference  string     `json:"manualReference,omitempty"`
	ManualDate       *time.Time `json:"manualDate,omitempty"`
	ManualSupplierID string     `json:"manualSupplierId,omitempty"`

	TotalAmount     decimal.Decimal `json:"totalAmount" swaggertype:"string"`
	BaseAmount      decimal.Decimal `json:"baseAmount" swaggertype:"string"`
	TaxAmount       decimal.Decimal `json:"taxAmount" swaggertype:"string"`
	RemainingAmount decimal.Decimal `json:"remainingAmount" swaggertype:"string"`

	Items    []ReturnItemResponse `json:"items"`
	Metadata map[string]any       `json:"metadata,omitempty"`

	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	CreatedBy     string     `json:"createdBy"`
	LastUpdatedAt time.Time  `json:"lastUpdatedAt"`
	LastUpdatedBy string     `json:"lastUpdatedBy"`
}

// ToReturnResponse converts a domain ReturnRecord to its response DTO.
func ToReturnResponse(r *domain.ReturnRecord) ReturnResponse {
	items := make([]ReturnItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = ReturnItemResponse{
			ID:               item.ID,
			SourceItemID:     item.SourceItemID,
			Description:      item.Description,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			Total:            item.Total,
			OriginalQuantity: item.OriginalQuantity,
		}
	}
	return ReturnResponse{
		ID:               r.ID,
		Type:             string(r.Type),
		Status:           string(r.Status),
		Reason:           r.Reason,
		Notes:            r.Notes,
		PurchaseID:       r.PurchaseID,
		SupplierID:       r.SupplierID,
		ExpenseID:        r.ExpenseID,
		IsManual:         r.IsManual,
		ManualReference:  r.ManualReference,
		ManualDate:       r.ManualDate,
		ManualSupplierID: r.ManualSupplierID,
		TotalAmount:      r.TotalAmount,
		BaseAmount:       r.BaseAmount,
		TaxAmount:        r.TaxAmount,
		RemainingAmount:  r.RemainingAmount,
		Items:            items,
		Metadata:         r.Metadata,
		CreatedAt:        r.CreatedAt,
		CreatedBy:        r.CreatedBy,
		LastUpdatedAt:    r.LastUpdatedAt,
		LastUpdatedBy:    r.LastUpdatedBy,
	}
}

// ListReturnsResponse wraps a list of returns.
type ListReturnsResponse struct {
	Returns []ReturnResponse `json:"returns"`
}

// ToListReturnsResponse converts a slice of domain returns.
func ToListReturnsResponse(records []domain.ReturnRecord) ListReturnsResponse {
	res := make([]ReturnResponse, len(records))
	for i := range records {
		res[i] = ToReturnResponse(&records[i])
	}
	return ListReturnsResponse{Returns: res}
}

// ReturnStatusCountResponse is the count and total of one status.
type ReturnStatusCountResponse struct {
	Status      string          `json:"status"`
	Count       int             `json:"count"`
	TotalAmount decimal.Decimal `json:"totalAmount" swaggertype:"string"`
}

// ReturnStatusSummaryResponse lists counts for every status that has returns.
type ReturnStatusSummaryResponse struct {
	Statuses []ReturnStatusCountResponse `json:"statuses"`
}

// ToReturnStatusSummaryResponse converts the domain summary.
func ToReturnStatusSummaryResponse(summary []domain.ReturnStatusSummary) ReturnStatusSummaryResponse {
	res := make([]ReturnStatusCountResponse, len(summary))
	for i, s := range summary {
		res[i] = ReturnStatusCountResponse{Status: string(s.Status), Count: s.Count, TotalAmount: s.TotalAmount}
	}
	return ReturnStatusSummaryResponse{Statuses: res}
}
