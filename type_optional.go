package moneymarket

import (
	"bytes"
	"encoding/json"
)

// Optional holds a value that may be absent.
//
// Absence and zero are distinct: Some(0) is present. In JSON an absent field and
// a null both decode to an absent Optional, and an absent Optional is omitted
// by `omitzero` or written as null.
type Optional[T any] struct {
	value T
	ok    bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] { return Optional[T]{value: v, ok: true} }

// None returns an absent Optional.
func None[T any]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

// Present reports whether o holds a value.
func (o Optional[T]) Present() bool { return o.ok }

// IsZero reports whether o is absent, it lets `omitzero` skip absent values.
func (o Optional[T]) IsZero() bool { return !o.ok }

// Or returns the value if present, fallback otherwise.
func (o Optional[T]) Or(fallback T) T {
	if o.ok {
		return o.value
	}
	return fallback
}

// Else returns o if present, other otherwise.
func (o Optional[T]) Else(other Optional[T]) Optional[T] {
	if o.ok {
		return o
	}
	return other
}

// MarshalJSON writes the value, or null when absent or not a finite number.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte("null"), nil
	}
	return json.Marshal(finite(o.value))
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}
