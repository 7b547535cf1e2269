package payload

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/returns_management_app/internal/core/domain"
)

var (
	returnSourceIDKeys    = []string{"sourceItemId", "source_item_id"}
	returnDescriptionKeys = []string{"description", "itemName", "item_name", "name"}
	returnQuantityKeys    = []string{"quantity", "returnedQuantity", "returned_quantity"}
	returnPriceKeys       = []string{"unitPrice", "unit_price", "price"}
	originalQuantityKeys  = []string{"originalQuantity", "original_quantity"}
)

// ReturnPayload is the decoded content of a return's items column.
type ReturnPayload struct {
	Items    []domain.ReturnItem
	Notes    *string
	Metadata map[string]any
}

// DecodeReturnItems reads a stored return payload. linked says the return points at a stored
// purchase order, in which case a line without an explicit source id is taken to reference
// the order line with its own id. A payload that does not parse yields no items.
func DecodeReturnItems(raw []byte, linked bool) ReturnPayload {
	objects, envelope, ok := splitItems(raw)
	if !ok {
		return ReturnPayload{Items: []domain.ReturnItem{}}
	}

	out := ReturnPayload{Items: make([]domain.ReturnItem, 0, len(objects))}
	for _, obj := range objects {
		if obj == nil {
			continue
		}
		item := domain.ReturnItem{
			Quantity:  obj.decimalOrZero(returnQuantityKeys...),
			UnitPrice: obj.decimalOrZero(returnPriceKeys...),
		}
		item.ID, _ = obj.firstString("id")
		item.Description, _ = obj.firstString(returnDescriptionKeys...)
		if obj.hasAny(returnSourceIDKeys...) {
			item.SourceItemID, _ = obj.firstString(returnSourceIDKeys...)
		} else if linked {
			item.SourceItemID = item.ID
		}
		if q, ok := obj.firstDecimal(originalQuantityKeys...); ok {
			item.OriginalQuantity = &q
		}
		item.RecomputeTotal()
		out.Items = append(out.Items, item)
	}

	if envelope != nil {
		if notes, ok := envelope.firstString("notes"); ok {
			out.Notes = &notes
		}
		if rawMeta, ok := envelope["metadata"]; ok {
			var meta map[string]any
			if err := json.Unmarshal(rawMeta, &meta); err == nil && meta != nil {
				out.Metadata = meta
			}
		}
	}
	return out
}

// EncodeReturnItems writes the canonical object form. Every line carries an explicit
// sourceItemId, empty for ad-hoc lines, so decoding it again is exact.
func EncodeReturnItems(items []domain.ReturnItem, notes *string, metadata map[string]any) ([]byte, error) {
	encodedItems := make([]object, 0, len(items))
	for _, item := range items {
		item.RecomputeTotal()
		obj := object{}
		obj.setString(item.ID, "id")
		obj.setString(item.SourceItemID, "sourceItemId")
		obj.setString(item.Description, "description")
		obj.setDecimal(item.Quantity, "quantity")
		obj.setDecimal(item.UnitPrice, "unitPrice")
		obj.setDecimal(item.Total, "total")
		if item.OriginalQuantity != nil {
			obj.setDecimal(*item.OriginalQuantity, "originalQuantity")
		}
		encodedItems = append(encodedItems, obj)
	}

	doc := map[string]any{"items": encodedItems}
	if notes != nil {
		doc["notes"] = *notes
	}
	if len(metadata) > 0 {
		doc["metadata"] = metadata
	}

	encoded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode return items: %w", err)
	}
	return encoded, nil
}
