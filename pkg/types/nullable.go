package types

import (
	"bytes"
	"encoding/json"
)

// Nullable tracks whether a field was explicitly present in a partial update.
// Set with a nil Value means "clear the column"; an unset Nullable leaves it untouched.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Some returns a Nullable carrying v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns a Nullable that explicitly clears the field.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	if bytes.Equal(trimmed, []byte("null")) {
		n.Set = true
		n.Value = nil
		return nil
	}

	var parsed T
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return err
	}
	n.Set = true
	n.Value = &parsed
	return nil
}

// ColumnValue returns the value to persist: nil for an explicit null.
func (n Nullable[T]) ColumnValue() any {
	if n.Value == nil {
		return nil
	}
	return *n.Value
}
