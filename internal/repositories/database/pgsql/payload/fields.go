// Package payload converts the JSON item payloads stored in the returns and purchase_orders
// tables to and from canonical domain values. Rows written over several schema revisions
// use different key names; all of that tolerance lives here.
package payload

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// object is one stored JSON object with its values kept verbatim.
type object map[string]json.RawMessage

// decodeValue parses a raw JSON value keeping numbers exact.
func decodeValue(raw json.RawMessage) (any, bool) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	return v, true
}

// firstDecimal returns the first key holding a number or a numeric string.
func (o object) firstDecimal(keys ...string) (decimal.Decimal, bool) {
	for _, key := range keys {
		raw, ok := o[key]
		if !ok {
			continue
		}
		v, ok := decodeValue(raw)
		if !ok {
			continue
		}
		switch n := v.(type) {
		case json.Number:
			if d, err := decimal.NewFromString(n.String()); err == nil {
				return d, true
			}
		case string:
			if d, err := decimal.NewFromString(strings.TrimSpace(n)); err == nil {
				return d, true
			}
		}
	}
	return decimal.Zero, false
}

// decimalOrZero is firstDecimal with a zero default.
func (o object) decimalOrZero(keys ...string) decimal.Decimal {
	d, _ := o.firstDecimal(keys...)
	return d
}

// firstString returns the first key holding a non-empty string or a number.
func (o object) firstString(keys ...string) (string, bool) {
	for _, key := range keys {
		raw, ok := o[key]
		if !ok {
			continue
		}
		v, ok := decodeValue(raw)
		if !ok {
			continue
		}
		switch s := v.(type) {
		case string:
			if s = strings.TrimSpace(s); s != "" {
				return s, true
			}
		case json.Number:
			return s.String(), true
		}
	}
	return "", false
}

// hasAny reports whether any of the keys is present, whatever its value.
func (o object) hasAny(keys ...string) bool {
	for _, key := range keys {
		if _, ok := o[key]; ok {
			return true
		}
	}
	return false
}

func (o object) setString(value string, keys ...string) {
	encoded, _ := json.Marshal(value)
	for _, key := range keys {
		o[key] = encoded
	}
}

// setDecimal writes d as a bare JSON number under every key.
func (o object) setDecimal(d decimal.Decimal, keys ...string) {
	encoded := json.RawMessage(d.String())
	for _, key := range keys {
		o[key] = encoded
	}
}

// splitItems accepts either a bare array of objects or an object with an items array.
// The envelope is returned when the payload was an object.
func splitItems(raw []byte) ([]object, object, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil, true
	}

	if trimmed[0] == '[' {
		var items []object
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, nil, false
		}
		return items, nil, true
	}

	var envelope object
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, nil, false
	}
	var items []object
	if rawItems, ok := envelope["items"]; ok && !bytes.Equal(bytes.TrimSpace(rawItems), []byte("null")) {
		if err := json.Unmarshal(rawItems, &items); err != nil {
			return nil, nil, false
		}
	}
	return items, envelope, true
}
