package reconciliation_test

import (
	"testing"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/SscSPs/returns_management_app/internal/core/reconciliation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderLine(id, qty, price string) domain.PurchaseOrderItem {
	return domain.PurchaseOrderItem{ID: id, Description: "line " + id, Quantity: dec(qty), UnitPrice: dec(price)}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, context ...string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), context)
}

func assertFinancialIdentity(t *testing.T, order domain.PurchaseOrder, adj *domain.PurchaseOrderAdjustment) {
	t.Helper()
	assert.True(t, adj.TotalAmount.Equal(adj.Subtotal.Add(adj.TaxAmount).Round(2)), "total = round(subtotal + tax)")
	wantRemaining := adj.TotalAmount.Sub(order.PaidAmount).Round(2)
	if wantRemaining.IsNegative() {
		wantRemaining = decimal.Zero
	}
	assert.True(t, adj.RemainingAmount.Equal(wantRemaining), "remaining = max(0, round(total - paid))")
}

func assertConservation(t *testing.T, adj *domain.PurchaseOrderAdjustment) {
	t.Helper()
	for _, item := range adj.Items {
		assert.False(t, item.RemainingQuantity.IsNegative(), "remaining for %s", item.ID)
		assert.False(t, item.ReturnedQuantity.GreaterThan(item.Quantity), "returned for %s", item.ID)
		assert.True(t, item.RemainingQuantity.Add(item.ReturnedQuantity).Equal(item.Quantity), "conservation for %s", item.ID)
	}
}

func TestBuildPurchaseOrderAdjustment_NoOp(t *testing.T) {
	adj := reconciliation.BuildPurchaseOrderAdjustment(domain.PurchaseOrder{ID: "po-1"}, nil)
	assert.Nil(t, adj)

	adj = reconciliation.BuildPurchaseOrderAdjustment(domain.PurchaseOrder{ID: "po-1"}, map[string]domain.ReturnedItemSummary{})
	assert.Nil(t, adj)
}

func TestBuildPurchaseOrderAdjustment_SingleFullReturn(t *testing.T) {
	order := domain.PurchaseOrder{
		ID:          "po-1",
		Items:       []domain.PurchaseOrderItem{orderLine("A", "10", "5")},
		Subtotal:    dec("50"),
		TotalAmount: dec("50"),
		PaidAmount:  dec("20"),
	}
	summaries := reconciliation.AggregateReturnedItems([]domain.ReturnRecord{
		completedReturn("r-1", nil, line("A", "10", "5")),
	})

	adj := reconciliation.BuildPurchaseOrderAdjustment(order, summaries)
	require.NotNil(t, adj)

	require.Len(t, adj.Items, 1)
	assertDecimal(t, "0", adj.Items[0].RemainingQuantity)
	assertDecimal(t, "10", adj.Items[0].ReturnedQuantity)
	assertDecimal(t, "10", adj.Items[0].Quantity, "ordered quantity is kept")
	assertDecimal(t, "50", adj.Items[0].TotalReturnedAmount)
	assertDecimal(t, "0", adj.Subtotal)
	assertDecimal(t, "0", adj.TaxAmount)
	assertDecimal(t, "0", adj.TotalAmount)
	assertDecimal(t, "0", adj.RemainingAmount)
	assertDecimal(t, "50", adj.TotalReturnedAmount)
	assertFinancialIdentity(t, order, adj)
	assertConservation(t, adj)
}

func TestBuildPurchaseOrderAdjustment_ProportionalTax(t *testing.T) {
	order := domain.PurchaseOrder{
		ID: "po-1",
		Items: []domain.PurchaseOrderItem{
			orderLine("A", "10", "60"),
			orderLine("B", "20", "20"),
		},
		Subtotal:    dec("1000"),
		TaxAmount:   dec("150"),
		TotalAmount: dec("1150"),
		PaidAmount:  dec("500"),
	}
	summaries := reconciliation.AggregateReturnedItems([]domain.ReturnRecord{
		completedReturn("r-1", nil, line("B", "10", "20")),
	})

	adj := reconciliation.BuildPurchaseOrderAdjustment(order, summaries)
	require.NotNil(t, adj)

	assertDecimal(t, "800", adj.Subtotal)
	assertDecimal(t, "120", adj.TaxAmount)
	assertDecimal(t, "920", adj.TotalAmount)
	assertDecimal(t, "420", adj.RemainingAmount)
	assert.Nil(t, adj.TaxRate, "a ratio is not stored as a declared rate")
	assertFinancialIdentity(t, order, adj)
	assertConservation(t, adj)
}

// applyAdjustment returns the order as it is stored after adj is written.
func applyAdjustment(order domain.PurchaseOrder, adj *domain.PurchaseOrderAdjustment) domain.PurchaseOrder {
	order.Items = adj.Items
	order.Subtotal = adj.Subtotal
	order.TaxRate = adj.TaxRate
	order.TaxAmount = adj.TaxAmount
	order.TotalAmount = adj.TotalAmount
	order.RemainingAmount = adj.RemainingAmount
	order.TotalReturnedAmount = adj.TotalReturnedAmount
	return order
}

func TestBuildPurchaseOrderAdjustment_RerunIsStable(t *testing.T) {
	testCases := []struct {
		name    string
		returns []domain.ReturnRecord
		tax     string
		total   string
	}{
		{name: "no returns", tax: "10000", total: "40000"},
		{
			name:    "one unit returned",
			returns: []domain.ReturnRecord{completedReturn("r-1", nil, line("A", "1", "10000"))},
			tax:     "6666.67",
			total:   "26666.67",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			order := domain.PurchaseOrder{
				ID:          "po-1",
				Items:       []domain.PurchaseOrderItem{orderLine("A", "3", "10000")},
				Subtotal:    dec("30000"),
				TaxAmount:   dec("10000"),
				TotalAmount: dec("40000"),
			}
			summaries := reconciliation.AggregateReturnedItems(tc.returns)

			first := reconciliation.BuildPurchaseOrderAdjustment(order, summaries)
			require.NotNil(t, first)
			assertDecimal(t, tc.tax, first.TaxAmount)
			assertDecimal(t, tc.total, first.TotalAmount)

			stored := applyAdjustment(order, first)
			for run := 2; run <= 3; run++ {
				next := reconciliation.BuildPurchaseOrderAdjustment(stored, summaries)
				require.NotNil(t, next)
				assertDecimal(t, tc.tax, next.TaxAmount, "run", tc.name)
				assertDecimal(t, tc.total, next.TotalAmount, "run", tc.name)
				assert.Nil(t, next.TaxRate)
				assertFinancialIdentity(t, stored, next)
				stored = applyAdjustment(stored, next)
			}
		})
	}
}

func TestBuildPurchaseOrderAdjustment_ExplicitRate(t *testing.T) {
	rate := dec("10")
	order := domain.PurchaseOrder{
		ID:        "po-1",
		Items:     []domain.PurchaseOrderItem{orderLine("A", "3", "33.33")},
		Subtotal:  dec("99.99"),
		TaxRate:   &rate,
		TaxAmount: dec("999"), // ignored when a rate is declared
	}
	summaries := reconciliation.AggregateReturnedItems([]domain.ReturnRecord{
		completedReturn("r-1", nil, line("A", "1", "33.33")),
	})

	adj := reconciliation.BuildPurchaseOrderAdjustment(order, summaries)
	require.NotNil(t, adj)

	assertDecimal(t, "66.66", adj.Subtotal)
	assertDecimal(t, "6.67", adj.TaxAmount)
	assertDecimal(t, "73.33", adj.TotalAmount)
	assertFinancialIdentity(t, order, adj)
}

func TestBuildPurchaseOrderAdjustment_TaxKeptWhenNoRatio(t *testing.T) {
	order := domain.PurchaseOrder{
		ID:        "po-1",
		Items:     []domain.PurchaseOrderItem{orderLine("A", "2", "10")},
		TaxAmount: dec("7.5"),
	}

	adj := reconciliation.BuildPurchaseOrderAdjustment(order, nil)
	require.NotNil(t, adj)

	assertDecimal(t, "20", adj.Subtotal)
	assertDecimal(t, "7.5", adj.TaxAmount)
	assertDecimal(t, "27.5", adj.TotalAmount)
	assert.Nil(t, adj.TaxRate)
}

func TestBuildPurchaseOrderAdjustment_ReturnAgainstRemovedLine(t *testing.T) {
	order := domain.PurchaseOrder{
		ID:       "po-1",
		Items:    []domain.PurchaseOrderItem{orderLine("A", "4", "25")},
		Subtotal: dec("100"),
	}
	summaries := reconciliation.AggregateReturnedItems([]domain.ReturnRecord{
		completedReturn("r-1", nil, line("X", "3", "10")),
	})

	adj := reconciliation.BuildPurchaseOrderAdjustment(order, summaries)
	require.NotNil(t, adj)

	require.Len(t, adj.Items, 2)
	synth := adj.Items[1]
	assert.Equal(t, "X", synth.ID)
	assert.Equal(t, "item X", synth.Description)
	assertDecimal(t, "0", synth.RemainingQuantity)
	assertDecimal(t, "3", synth.ReturnedQuantity)
	assertDecimal(t, "30", synth.TotalReturnedAmount)
	assertDecimal(t, "10", synth.UnitPrice)

	assertDecimal(t, "100", adj.Subtotal, "synthesized line adds nothing")
	assertDecimal(t, "30", adj.TotalReturnedAmount)
	assertConservation(t, adj)
}

func TestBuildPurchaseOrderAdjustment_PendingReturnIgnored(t *testing.T) {
	order := domain.PurchaseOrder{
		ID:    "po-1",
		Items: []domain.PurchaseOrderItem{orderLine("A", "10", "2")},
	}
	pending := completedReturn("r-1", nil, line("A", "5", "2"))
	pending.Status = domain.ReturnPending

	adj := reconciliation.BuildPurchaseOrderAdjustment(order, reconciliation.AggregateReturnedItems([]domain.ReturnRecord{pending}))
	require.NotNil(t, adj)

	assertDecimal(t, "10", adj.Items[0].RemainingQuantity)
	assertDecimal(t, "0", adj.Items[0].ReturnedQuantity)
	assertDecimal(t, "20", adj.Subtotal)
}

func TestBuildPurchaseOrderAdjustment_OverReturnCapped(t *testing.T) {
	order := domain.PurchaseOrder{
		ID:    "po-1",
		Items: []domain.PurchaseOrderItem{orderLine("A", "2", "5")},
	}
	summaries := reconciliation.AggregateReturnedItems([]domain.ReturnRecord{
		completedReturn("r-1", nil, line("A", "2", "5")),
		completedReturn("r-2", nil, line("A", "1", "5")),
	})

	adj := reconciliation.BuildPurchaseOrderAdjustment(order, summaries)
	require.NotNil(t, adj)

	assertDecimal(t, "0", adj.Items[0].RemainingQuantity)
	assertDecimal(t, "2", adj.Items[0].ReturnedQuantity)
	assertDecimal(t, "15", adj.Items[0].TotalReturnedAmount)
	assertConservation(t, adj)
}

func TestBuildPurchaseOrderAdjustment_MissingPriceDefaultsToZero(t *testing.T) {
	order := domain.PurchaseOrder{
		ID:    "po-1",
		Items: []domain.PurchaseOrderItem{{ID: "A", Quantity: dec("3")}},
	}

	adj := reconciliation.BuildPurchaseOrderAdjustment(order, nil)
	require.NotNil(t, adj)
	assertDecimal(t, "0", adj.Subtotal)
	assertDecimal(t, "3", adj.Items[0].RemainingQuantity)
}

func TestBuildPurchaseOrderAdjustment_PaidExceedsTotal(t *testing.T) {
	order := domain.PurchaseOrder{
		ID:         "po-1",
		Items:      []domain.PurchaseOrderItem{orderLine("A", "1", "10")},
		PaidAmount: dec("25"),
	}

	adj := reconciliation.BuildPurchaseOrderAdjustment(order, nil)
	require.NotNil(t, adj)
	assertDecimal(t, "0", adj.RemainingAmount)
	assertFinancialIdentity(t, order, adj)
}
