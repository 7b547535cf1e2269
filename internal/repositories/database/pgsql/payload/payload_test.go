package payload_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
	"github.com/SscSPs/returns_management_app/internal/core/reconciliation"
	"github.com/SscSPs/returns_management_app/internal/repositories/database/pgsql/payload"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, context ...string) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), context)
}

func TestDecodeReturnItems_LegacyKeys(t *testing.T) {
	raw := []byte(`[
		{"id": "A", "itemName": "Widget", "returnedQuantity": "2.5", "price": 4},
		{"id": "B", "name": "Bolt", "returned_quantity": 3, "unit_price": "1.10", "original_quantity": 10},
		{"id": "C", "description": "Nut"}
	]`)

	got := payload.DecodeReturnItems(raw, true)

	require.Len(t, got.Items, 3)
	a := got.Items[0]
	assert.Equal(t, "Widget", a.Description)
	assert.Equal(t, "A", a.SourceItemID, "linked lines without a source id use their own id")
	assertDecimal(t, "2.5", a.Quantity)
	assertDecimal(t, "4", a.UnitPrice)
	assertDecimal(t, "10", a.Total)

	b := got.Items[1]
	assert.Equal(t, "Bolt", b.Description)
	assertDecimal(t, "3", b.Quantity)
	assertDecimal(t, "1.10", b.UnitPrice)
	assertDecimal(t, "3.3", b.Total)
	require.NotNil(t, b.OriginalQuantity)
	assertDecimal(t, "10", *b.OriginalQuantity)

	c := got.Items[2]
	assertDecimal(t, "0", c.Quantity)
	assertDecimal(t, "0", c.UnitPrice)
	assertDecimal(t, "0", c.Total)
	assert.Nil(t, got.Notes)
	assert.Nil(t, got.Metadata)
}

func TestDecodeReturnItems_QuantityKeyPriority(t *testing.T) {
	raw := []byte(`[{"id": "A", "quantity": 1, "returnedQuantity": 9, "unitPrice": 2, "price": 7}]`)

	got := payload.DecodeReturnItems(raw, false)

	require.Len(t, got.Items, 1)
	assertDecimal(t, "1", got.Items[0].Quantity)
	assertDecimal(t, "2", got.Items[0].UnitPrice)
	assert.Empty(t, got.Items[0].SourceItemID, "unlinked returns have no implicit source")
}

func TestDecodeReturnItems_ObjectFormWithNotesAndMetadata(t *testing.T) {
	raw := []byte(`{
		"items": [{"id": "x1", "sourceItemId": "", "description": "Freight", "quantity": 1, "unitPrice": 50, "total": 999}],
		"notes": "called supplier",
		"metadata": {"rma": "R-77"}
	}`)

	got := payload.DecodeReturnItems(raw, true)

	require.Len(t, got.Items, 1)
	assert.Empty(t, got.Items[0].SourceItemID, "an explicit empty source id is an ad-hoc line")
	assertDecimal(t, "50", got.Items[0].Total, "stored totals are recomputed")
	require.NotNil(t, got.Notes)
	assert.Equal(t, "called supplier", *got.Notes)
	assert.Equal(t, map[string]any{"rma": "R-77"}, got.Metadata)
}

func TestDecodeReturnItems_MalformedYieldsEmpty(t *testing.T) {
	for _, raw := range []string{`{"items": 5`, `"just a string"`, `[1, 2]`} {
		got := payload.DecodeReturnItems([]byte(raw), true)
		assert.Empty(t, got.Items, raw)
		assert.Nil(t, got.Notes, raw)
		assert.Nil(t, got.Metadata, raw)
	}
	assert.Empty(t, payload.DecodeReturnItems(nil, true).Items)
}

func TestEncodeReturnItems_RoundTrip(t *testing.T) {
	orig := dec("12")
	notes := "boxed"
	items := []domain.ReturnItem{
		{ID: "A", SourceItemID: "A", Description: "Widget", Quantity: dec("2"), UnitPrice: dec("3.335"), OriginalQuantity: &orig},
		{ID: "m-1", Description: "Freight", Quantity: dec("1"), UnitPrice: dec("20")},
	}

	raw, err := payload.EncodeReturnItems(items, &notes, map[string]any{"channel": "email"})
	require.NoError(t, err)

	got := payload.DecodeReturnItems(raw, true)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "A", got.Items[0].SourceItemID)
	assert.Empty(t, got.Items[1].SourceItemID)
	assertDecimal(t, "6.67", got.Items[0].Total)
	require.NotNil(t, got.Items[0].OriginalQuantity)
	assertDecimal(t, "12", *got.Items[0].OriginalQuantity)
	require.NotNil(t, got.Notes)
	assert.Equal(t, "boxed", *got.Notes)
	assert.Equal(t, "email", got.Metadata["channel"])
}

func TestReturnItems_IDOnlyLinkedLinesReachAggregation(t *testing.T) {
	idOnly := []byte(`[{"id": "A", "description": "widget", "quantity": 4, "unitPrice": 25}]`)
	prepared := []domain.ReturnItem{
		{ID: "A", SourceItemID: "A", Description: "widget", Quantity: dec("4"), UnitPrice: dec("25")},
	}
	encoded, err := payload.EncodeReturnItems(prepared, nil, nil)
	require.NoError(t, err)

	for name, raw := range map[string][]byte{"stored without source key": idOnly, "encoded": encoded} {
		decoded := payload.DecodeReturnItems(raw, true)
		require.Len(t, decoded.Items, 1, name)
		assert.Equal(t, "A", decoded.Items[0].SourceItemID, name)

		record := domain.ReturnRecord{
			ID:         "r-1",
			Type:       domain.PurchaseReturn,
			Status:     domain.ReturnCompleted,
			PurchaseID: "po-1",
			Items:      decoded.Items,
		}
		summaries := reconciliation.AggregateReturnedItems([]domain.ReturnRecord{record})
		require.Contains(t, summaries, "A", name)
		assertDecimal(t, "4", summaries["A"].TotalQuantity, name)
		assertDecimal(t, "100", summaries["A"].TotalAmount, name)
	}
}

func TestDecodePurchaseOrderItems_KeyVariants(t *testing.T) {
	raw := []byte(`[
		{"itemId": 7, "name": "Cable", "qty": "4", "cost": 2.5},
		{"item_id": "B", "item_name": "Plug", "item_quantity": 3, "unit_cost": "1"},
		{"id": "C", "count": 2, "unit_price": 6},
		{"description": "no id", "original_quantity": 1, "price": 9}
	]`)

	items := payload.DecodePurchaseOrderItems(raw)

	require.Len(t, items, 4)
	assert.Equal(t, "7", items[0].ID)
	assert.Equal(t, "Cable", items[0].Description)
	assertDecimal(t, "4", items[0].Quantity)
	assertDecimal(t, "2.5", items[0].UnitPrice)
	assertDecimal(t, "4", items[0].RemainingQuantity)

	assert.Equal(t, "B", items[1].ID)
	assertDecimal(t, "3", items[1].Quantity)
	assertDecimal(t, "1", items[1].UnitPrice)

	assertDecimal(t, "2", items[2].Quantity)
	assertDecimal(t, "6", items[2].UnitPrice)

	assert.Equal(t, "line-4", items[3].ID)
	assertDecimal(t, "1", items[3].Quantity)
	assertDecimal(t, "9", items[3].UnitPrice)
}

func TestDecodePurchaseOrderItems_Malformed(t *testing.T) {
	assert.Empty(t, payload.DecodePurchaseOrderItems([]byte(`not json`)))
	assert.Empty(t, payload.DecodePurchaseOrderItems(nil))
}

func TestEncodePurchaseOrderItems_MergesOntoPrevious(t *testing.T) {
	prev := []byte(`[{"id": "A", "name": "Cable", "qty": 10, "cost": 5, "sku": "CB-1", "warehouse": {"bin": "4F"}}]`)
	items := []domain.PurchaseOrderItem{
		{ID: "A", Description: "Cable", Quantity: dec("10"), UnitPrice: dec("5"),
			ReturnedQuantity: dec("3"), RemainingQuantity: dec("7"), TotalReturnedAmount: dec("15")},
		{ID: "X", Description: "item X", Quantity: dec("2"), UnitPrice: dec("4"),
			ReturnedQuantity: dec("2"), RemainingQuantity: dec("0"), TotalReturnedAmount: dec("8")},
	}

	raw, err := payload.EncodePurchaseOrderItems(prev, items)
	require.NoError(t, err)

	var written []map[string]any
	require.NoError(t, json.Unmarshal(raw, &written))
	require.Len(t, written, 2)

	a := written[0]
	assert.Equal(t, "CB-1", a["sku"], "unknown keys survive")
	assert.Equal(t, map[string]any{"bin": "4F"}, a["warehouse"])
	assert.Equal(t, float64(10), a["qty"], "legacy aliases are left alone")
	assert.Equal(t, float64(5), a["cost"])
	assert.Equal(t, float64(10), a["quantity"])
	assert.Equal(t, float64(5), a["unitPrice"])
	assert.Equal(t, float64(5), a["unit_price"])
	assert.Equal(t, float64(3), a["returnedQuantity"])
	assert.Equal(t, float64(3), a["returned_quantity"])
	assert.Equal(t, float64(7), a["remainingQuantity"])
	assert.Equal(t, float64(7), a["remaining_quantity"])
	assert.Equal(t, float64(15), a["totalReturnedAmount"])
	assert.Equal(t, float64(15), a["total_returned_amount"])

	x := written[1]
	assert.Equal(t, "X", x["id"])
	assert.Equal(t, float64(0), x["remaining_quantity"])
	assert.Equal(t, float64(8), x["totalReturnedAmount"])

	decoded := payload.DecodePurchaseOrderItems(raw)
	require.Len(t, decoded, 2)
	assertDecimal(t, "10", decoded[0].Quantity, "ordered quantity is stable across writes")
	assertDecimal(t, "7", decoded[0].RemainingQuantity)
}

func TestEncodePurchaseOrderItems_KeepsEnvelope(t *testing.T) {
	prev := []byte(`{"currency": "EUR", "items": [{"id": "A", "quantity": 1, "unitPrice": 2}]}`)
	items := []domain.PurchaseOrderItem{{ID: "A", Quantity: dec("1"), UnitPrice: dec("2"), RemainingQuantity: dec("1")}}

	raw, err := payload.EncodePurchaseOrderItems(prev, items)
	require.NoError(t, err)

	var written map[string]any
	require.NoError(t, json.Unmarshal(raw, &written))
	assert.Equal(t, "EUR", written["currency"])
	require.Len(t, written["items"], 1)
}
