package dto

import (
	"time"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReturnHistoryEntryResponse is one completed return's share of an order line.
type ReturnHistoryEntryResponse struct {
	ReturnID  string          `json:"returnId"`
	Quantity  decimal.Decimal `json:"quantity" swaggertype:"string"`
	UnitPrice decimal.Decimal `json:"unitPrice" swaggertype:"string"`
	Total     decimal.Decimal `json:"total" swaggertype:"string"`
	CreatedAt *time.Time      `json:"createdAt,omitempty"`
}

// ReturnedItemResponse summarises completed returns of one order line.
type ReturnedItemResponse struct {
	SourceItemID  string                       `json:"sourceItemId"`
	Description   string                       `json:"description"`
	TotalQuantity decimal.Decimal              `json:"totalQuantity" swaggertype:"string"`
	TotalAmount   decimal.Decimal              `json:"totalAmount" swaggertype:"string"`
	History       []ReturnHistoryEntryResponse `json:"history"`
}

// ReturnedItemsResponse lists the returned lines of an order.
type ReturnedItemsResponse struct {
	PurchaseOrderID string                 `json:"purchaseOrderId"`
	Items           []ReturnedItemResponse `json:"items"`
}

// ToReturnedItemsResponse converts the per-line summaries of an order.
func ToReturnedItemsResponse(orderID string, summaries []domain.ReturnedItemSummary) ReturnedItemsResponse {
	items := make([]ReturnedItemResponse, len(summaries))
	for i, s := range summaries {
		history := make([]ReturnHistoryEntryResponse, len(s.History))
		for j, h := range s.History {
			history[j] = ReturnHistoryEntryResponse{
				ReturnID:  h.ReturnID,
				Quantity:  h.Quantity,
				UnitPrice: h.UnitPrice,
				Total:     h.Total,
				CreatedAt: h.CreatedAt,
			}
		}
		items[i] = ReturnedItemResponse{
			SourceItemID:  s.SourceItemID,
			Description:   s.Description,
			TotalQuantity: s.TotalQuantity,
			TotalAmount:   s.TotalAmount,
			History:       history,
		}
	}
	return ReturnedItemsResponse{PurchaseOrderID: orderID, Items: items}
}

// PurchaseOrderItemResponse is an order line as the next reconciliation would write it.
type PurchaseOrderItemResponse struct {
	ID                  string          `json:"id"`
	Description         string          `json:"description"`
	Quantity            decimal.Decimal `json:"quantity" swaggertype:"string"`
	UnitPrice           decimal.Decimal `json:"unitPrice" swaggertype:"string"`
	ReturnedQuantity    decimal.Decimal `json:"returnedQuantity" swaggertype:"string"`
	RemainingQuantity   decimal.Decimal `json:"remainingQuantity" swaggertype:"string"`
	TotalReturnedAmount decimal.Decimal `json:"totalReturnedAmount" swaggertype:"string"`
}

// AdjustmentPreviewResponse shows what reconciling an order would write. Changed is false
// when the order already matches its completed returns.
type AdjustmentPreviewResponse struct {
	PurchaseOrderID     string                      `json:"purchaseOrderId"`
	Changed             bool                        `json:"changed"`
	Items               []PurchaseOrderItemResponse `json:"items,omitempty"`
	Subtotal            *decimal.Decimal            `json:"subtotal,omitempty" swaggertype:"string"`
	TaxRate             *decimal.Decimal            `json:"taxRate,omitempty" swaggertype:"string"`
	TaxAmount           *decimal.Decimal            `json:"taxAmount,omitempty" swaggertype:"string"`
	TotalAmount         *decimal.Decimal            `json:"totalAmount,omitempty" swaggertype:"string"`
	RemainingAmount     *decimal.Decimal            `json:"remainingAmount,omitempty" swaggertype:"string"`
	TotalReturnedAmount *decimal.Decimal            `json:"totalReturnedAmount,omitempty" swaggertype:"string"`
}

// ToAdjustmentPreviewResponse converts a possibly nil adjustment.
func ToAdjustmentPreviewResponse(orderID string, adj *domain.PurchaseOrderAdjustment) AdjustmentPreviewResponse {
	res := AdjustmentPreviewResponse{PurchaseOrderID: orderID}
	if adj == nil {
		return res
	}
	res.Changed = true
	res.Items = make([]PurchaseOrderItemResponse, len(adj.Items))
	for i, item := range adj.Items {
		res.Items[i] = PurchaseOrderItemResponse{
			ID:                  item.ID,
			Description:         item.Description,
			Quantity:            item.Quantity,
			UnitPrice:           item.UnitPrice,
			ReturnedQuantity:    item.ReturnedQuantity,
			RemainingQuantity:   item.RemainingQuantity,
			TotalReturnedAmount: item.TotalReturnedAmount,
		}
	}
	res.Subtotal = &adj.Subtotal
	res.TaxRate = adj.TaxRate
	res.TaxAmount = &adj.TaxAmount
	res.TotalAmount = &adj.TotalAmount
	res.RemainingAmount = &adj.RemainingAmount
	res.TotalReturnedAmount = &adj.TotalReturnedAmount
	return res
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
