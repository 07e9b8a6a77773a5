package moneymarket

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// jsonObjectWriter writes a JSON object whose keys keep their insertion
// order, enriched records list their inputs before the computed values.
// The zero value is an empty object.
type jsonObjectWriter struct {
	buf bytes.Buffer
	err error
}

// Append writes key with the JSON encoding of value, a zero value included.
// Infinite and NaN floats are written as null.
func (w *jsonObjectWriter) Append(key string, value any) {
	if w.err != nil {
		return
	}
	data, err := json.Marshal(finite(value))
	if err != nil {
		w.err = fmt.Errorf("cannot marshal %q: %w", key, err)
		return
	}
	name, _ := json.Marshal(key)

	if w.buf.Len() == 0 {
		w.buf.WriteByte('{')
	} else {
		w.buf.WriteByte(',')
	}
	w.buf.Write(name)
	w.buf.WriteByte(':')
	w.buf.Write(data)
}

// Optional writes key only when value is neither nil nor its type's zero
// value.
func (w *jsonObjectWriter) Optional(key string, value any) {
	if v := reflect.ValueOf(value); v.IsValid() && !v.IsZero() {
		w.Append(key, value)
	}
}

// MarshalJSON returns the object, or the first marshal error.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	if w.buf.Len() == 0 {
		return []byte("{}"), nil
	}
	return append(bytes.Clone(w.buf.Bytes()), '}'), nil
}

// finite maps a non finite float to nil, JSON has no representation for it.
func finite(value any) any {
	if v, ok := value.(float64); ok && (math.IsInf(v, 0) || math.IsNaN(v)) {
		return nil
	}
	return value
}
