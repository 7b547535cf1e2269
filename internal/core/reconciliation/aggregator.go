// Package reconciliation keeps purchase-order quantities and financials consistent with the
// completed returns filed against the order. Everything here is pure computation over
// canonical domain values; loading and storing happens elsewhere.
package reconciliation

import (
	"sort"
	"time"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// historyLine is a history entry plus the keys needed for a total ordering.
type historyLine struct {
	entry       domain.ReturnHistoryEntry
	description string
	line        int
}

type itemAccumulator struct {
	quantity decimal.Decimal
	amount   decimal.Decimal
	lines    []historyLine
}

// AggregateReturnedItems groups the completed returns of one purchase order by source item.
// Records in any other status and lines without a source item id are ignored. Quantities are
// accumulated at three decimals and amounts at two, rounding on every step, so the totals do
// not depend on the order of records.
func AggregateReturnedItems(records []domain.ReturnRecord) map[string]domain.ReturnedItemSummary {
	acc := make(map[string]*itemAccumulator)

	for _, rec := range records {
		if !rec.IsCompleted() {
			continue
		}
		for i, item := range rec.Items {
			if item.SourceItemID == "" {
				continue
			}
			a, ok := acc[item.SourceItemID]
			if !ok {
				a = &itemAccumulator{quantity: decimal.Zero, amount: decimal.Zero}
				acc[item.SourceItemID] = a
			}

			qty := domain.RoundQuantity(item.Quantity)
			amount := domain.RoundMoney(item.Quantity.Mul(item.UnitPrice))
			a.quantity = domain.RoundQuantity(a.quantity.Add(qty))
			a.amount = domain.RoundMoney(a.amount.Add(amount))
			a.lines = append(a.lines, historyLine{
				entry: domain.ReturnHistoryEntry{
					ReturnID:  rec.ID,
					Quantity:  qty,
					UnitPrice: item.UnitPrice,
					Total:     amount,
					CreatedAt: rec.CreatedAt,
				},
				description: item.Description,
				line:        i,
			})
		}
	}

	summaries := make(map[string]domain.ReturnedItemSummary, len(acc))
	for sourceID, a := range acc {
		sortNewestFirst(a.lines)

		history := make([]domain.ReturnHistoryEntry, len(a.lines))
		description := ""
		for i, l := range a.lines {
			history[i] = l.entry
			if description == "" {
				description = l.description
			}
		}

		summaries[sourceID] = domain.ReturnedItemSummary{
			SourceItemID:  sourceID,
			Description:   description,
			TotalQuantity: a.quantity,
			TotalAmount:   a.amount,
			History:       history,
		}
	}
	return summaries
}

// SortedSourceIDs returns the keys of summaries in ascending order.
func SortedSourceIDs(summaries map[string]domain.ReturnedItemSummary) []string {
	ids := make([]string, 0, len(summaries))
	for id := range summaries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// sortNewestFirst orders by creation time descending. A missing time counts as the epoch.
// Ties fall back to return id and line position.
func sortNewestFirst(lines []historyLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		ti, tj := createdUnix(lines[i].entry.CreatedAt), createdUnix(lines[j].entry.CreatedAt)
		if ti != tj {
			return ti > tj
		}
		if lines[i].entry.ReturnID != lines[j].entry.ReturnID {
			return lines[i].entry.ReturnID < lines[j].entry.ReturnID
		}
		return lines[i].line < lines[j].line
	})
}

func createdUnix(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixNano()
}
