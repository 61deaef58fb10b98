package utils

import "testing"

func TestToJSON(t *testing.T) {
	got := ToJSON(map[string]int{"a": 1})
	if got != `{"a":1}` {
		t.Fatalf("unexpected json: %s", got)
	}
}

func TestIsValidJSON(t *testing.T) {
	if !IsValidJSON(`{"zoom":1.5,"grid":true}`) {
		t.Fatalf("expected valid json")
	}
	if IsValidJSON(`{zoom:}`) {
		t.Fatalf("expected invalid json")
	}
}
