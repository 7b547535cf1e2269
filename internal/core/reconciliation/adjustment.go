package reconciliation

import (
	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BuildPurchaseOrderAdjustment recomputes an order's lines and financials from the returned
// item summaries. It returns nil when the order has no lines and there are no summaries;
// callers must skip the write in that case.
//
// PaidAmount is read but never changed.
func BuildPurchaseOrderAdjustment(order domain.PurchaseOrder, summaries map[string]domain.ReturnedItemSummary) *domain.PurchaseOrderAdjustment {
	if len(order.Items) == 0 && len(summaries) == 0 {
		return nil
	}

	items := make([]domain.PurchaseOrderItem, 0, len(order.Items)+len(summaries))
	matched := make(map[string]bool, len(order.Items))
	subtotal := decimal.Zero
	totalReturned := decimal.Zero

	for _, line := range order.Items {
		summary, ok := summaries[line.ID]
		returnedQty := decimal.Zero
		returnedAmount := decimal.Zero
		if ok {
			matched[line.ID] = true
			returnedQty = summary.TotalQuantity
			returnedAmount = summary.TotalAmount
		}

		remaining := domain.NonNegative(line.Quantity.Sub(returnedQty))
		// Over-returns still show their money, but the line never reports more
		// returned units than were ordered.
		if returnedQty.GreaterThan(line.Quantity) {
			returnedQty = line.Quantity
		}

		subtotal = subtotal.Add(domain.RoundMoney(remaining.Mul(line.UnitPrice)))
		totalReturned = totalReturned.Add(returnedAmount)

		items = append(items, domain.PurchaseOrderItem{
			ID:                  line.ID,
			Description:         line.Description,
			Quantity:            line.Quantity,
			UnitPrice:           line.UnitPrice,
			ReturnedQuantity:    returnedQty,
			RemainingQuantity:   remaining,
			TotalReturnedAmount: returnedAmount,
		})
	}

	// Returns against lines that are no longer on the order: keep them visible as fully
	// returned lines. They add nothing to the subtotal.
	for _, sourceID := range SortedSourceIDs(summaries) {
		if matched[sourceID] {
			continue
		}
		summary := summaries[sourceID]
		unitPrice := decimal.Zero
		if len(summary.History) > 0 {
			unitPrice = summary.History[0].UnitPrice
		}
		totalReturned = totalReturned.Add(summary.TotalAmount)
		items = append(items, domain.PurchaseOrderItem{
			ID:                  sourceID,
			Description:         summary.Description,
			Quantity:            summary.TotalQuantity,
			UnitPrice:           unitPrice,
			ReturnedQuantity:    summary.TotalQuantity,
			RemainingQuantity:   decimal.Zero,
			TotalReturnedAmount: summary.TotalAmount,
		})
	}

	taxAmount, taxRate := resolveTax(order, subtotal)
	totalAmount := domain.RoundMoney(subtotal.Add(taxAmount))

	return &domain.PurchaseOrderAdjustment{
		Items:               items,
		Subtotal:            domain.RoundMoney(subtotal),
		TaxRate:             taxRate,
		TaxAmount:           taxAmount,
		TotalAmount:         totalAmount,
		RemainingAmount:     domain.NonNegative(domain.RoundMoney(totalAmount.Sub(order.PaidAmount))),
		TotalReturnedAmount: domain.RoundMoney(totalReturned),
	}
}

// resolveTax picks the tax for the new subtotal: a declared rate wins, then the ratio of the
// stored tax to the stored subtotal, and otherwise the stored tax is kept as is. The ratio is
// never reported as a rate, so the next run derives it again from the amounts it wrote.
func resolveTax(order domain.PurchaseOrder, subtotal decimal.Decimal) (decimal.Decimal, *decimal.Decimal) {
	if order.TaxRate != nil && order.TaxRate.IsPositive() {
		rate := *order.TaxRate
		return domain.RoundMoney(domain.Percent(subtotal, rate)), &rate
	}
	if order.Subtotal.IsPositive() && order.TaxAmount.IsPositive() {
		ratio := order.TaxAmount.Div(order.Subtotal)
		return domain.RoundMoney(subtotal.Mul(ratio)), order.TaxRate
	}
	return order.TaxAmount, order.TaxRate
}
