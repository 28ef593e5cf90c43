package types

import (
	"encoding/json"
	"testing"
)

func TestNullableUnmarshal(t *testing.T) {
	type payload struct {
		MaximumStock Nullable[int]    `json:"maximum_stock"`
		Notes        Nullable[string] `json:"notes"`
	}

	var got payload
	if err := json.Unmarshal([]byte(`{"maximum_stock": 500}`), &got); err != nil {
		t.Fatalf("unmarshal value: %v", err)
	}
	if !got.MaximumStock.Set || got.MaximumStock.Value == nil || *got.MaximumStock.Value != 500 {
		t.Fatalf("expected set value 500, got %+v", got.MaximumStock)
	}
	if got.Notes.Set {
		t.Fatalf("absent field should not be set")
	}

	got = payload{}
	if err := json.Unmarshal([]byte(`{"maximum_stock": null}`), &got); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !got.MaximumStock.Set || got.MaximumStock.Value != nil {
		t.Fatalf("expected null to be set but nil, got %+v", got.MaximumStock)
	}
	if got.MaximumStock.ColumnValue() != nil {
		t.Fatalf("null should persist as nil")
	}

	if err := json.Unmarshal([]byte(`{"maximum_stock": "lots"}`), &got); err == nil {
		t.Fatal("expected type mismatch to fail")
	}
}

func TestNullableConstructors(t *testing.T) {
	some := Some("aisle 4")
	if !some.Set || some.ColumnValue() != "aisle 4" {
		t.Fatalf("unexpected Some result %+v", some)
	}
	null := Null[int]()
	if !null.Set || null.Value != nil {
		t.Fatalf("unexpected Null result %+v", null)
	}
}
