package payload

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
)

var (
	orderIDKeys          = []string{"id", "itemId", "item_id"}
	orderDescriptionKeys = []string{"description", "name", "itemName", "item_name"}
	orderQuantityKeys    = []string{"quantity", "qty", "item_quantity", "count", "originalQuantity", "original_quantity"}
	orderPriceKeys       = []string{"unitPrice", "unit_price", "price", "cost", "unit_cost"}
	orderReturnedKeys    = []string{"returnedQuantity", "returned_quantity"}
	orderRemainingKeys   = []string{"remainingQuantity", "remaining_quantity"}
	orderReturnedAmtKeys = []string{"totalReturnedAmount", "total_returned_amount"}
)

// lineID resolves the id of a stored order line. Lines stored without one are named by
// position so they can still be matched when the payload is written back.
func lineID(obj object, index int) string {
	if id, ok := obj.firstString(orderIDKeys...); ok {
		return id
	}
	return fmt.Sprintf("line-%d", index+1)
}

// DecodePurchaseOrderItems reads a stored order items payload. A payload that does not parse
// yields no items.
func DecodePurchaseOrderItems(raw []byte) []domain.PurchaseOrderItem {
	objects, _, ok := splitItems(raw)
	if !ok {
		return []domain.PurchaseOrderItem{}
	}

	items := make([]domain.PurchaseOrderItem, 0, len(objects))
	for i, obj := range objects {
		if obj == nil {
			continue
		}
		item := domain.PurchaseOrderItem{
			ID:                  lineID(obj, i),
			Quantity:            obj.decimalOrZero(orderQuantityKeys...),
			UnitPrice:           obj.decimalOrZero(orderPriceKeys...),
			ReturnedQuantity:    obj.decimalOrZero(orderReturnedKeys...),
			TotalReturnedAmount: obj.decimalOrZero(orderReturnedAmtKeys...),
		}
		item.Description, _ = obj.firstString(orderDescriptionKeys...)
		if remaining, ok := obj.firstDecimal(orderRemainingKeys...); ok {
			item.RemainingQuantity = remaining
		} else {
			item.RemainingQuantity = domain.NonNegative(item.Quantity.Sub(item.ReturnedQuantity))
		}
		items = append(items, item)
	}
	return items
}

// EncodePurchaseOrderItems writes items back over the previous payload. Each line is merged
// onto the stored object with the same id, so keys this package does not know about survive,
// and legacy aliases such as qty or cost are left as they were. Every canonical field is
// written in both camelCase and snake_case. The payload keeps its previous shape: a bare
// array, or an object whose items key is replaced.
func EncodePurchaseOrderItems(prevRaw []byte, items []domain.PurchaseOrderItem) ([]byte, error) {
	prevObjects, envelope, ok := splitItems(prevRaw)
	if !ok {
		prevObjects, envelope = nil, nil
	}

	byID := make(map[string]object, len(prevObjects))
	for i, obj := range prevObjects {
		if obj != nil {
			byID[lineID(obj, i)] = obj
		}
	}

	out := make([]object, 0, len(items))
	for _, item := range items {
		merged := object{}
		for k, v := range byID[item.ID] {
			merged[k] = v
		}
		merged.setString(item.ID, "id")
		merged.setString(item.Description, "description")
		merged.setDecimal(item.Quantity, "quantity")
		merged.setDecimal(item.UnitPrice, "unitPrice", "unit_price")
		merged.setDecimal(item.ReturnedQuantity, orderReturnedKeys...)
		merged.setDecimal(item.RemainingQuantity, orderRemainingKeys...)
		merged.setDecimal(item.TotalReturnedAmount, orderReturnedAmtKeys...)
		out = append(out, merged)
	}

	var doc any = out
	if envelope != nil {
		encodedItems, err := json.Marshal(out)
		if err != nil {
			return nil, fmt.Errorf("failed to encode purchase order items: %w", err)
		}
		envelope["items"] = encodedItems
		doc = envelope
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode purchase order items: %w", err)
	}
	return encoded, nil
}
