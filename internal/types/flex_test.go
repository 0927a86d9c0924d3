package types

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestFlexListSingleValue(t *testing.T) {
	var ids FlexList[string]
	if err := json.Unmarshal([]byte(`"abc"`), &ids); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "abc" {
		t.Errorf("Expected [abc], got %v", ids)
	}
}

func TestFlexListArray(t *testing.T) {
	var ids FlexList[string]
	if err := json.Unmarshal([]byte(`["a","b"]`), &ids); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("Expected [a b], got %v", ids)
	}
}

func TestFlexUint64StringAndNumber(t *testing.T) {
	var n FlexUint64
	if err := json.Unmarshal([]byte(`7`), &n); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if n.Uint64() != 7 {
		t.Errorf("Expected 7, got %d", n)
	}

	if err := json.Unmarshal([]byte(`"12"`), &n); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if n.Uint64() != 12 {
		t.Errorf("Expected 12, got %d", n)
	}

	if err := json.Unmarshal([]byte(`"nope"`), &n); err == nil {
		t.Error("Expected error for non-numeric string")
	}
}

func TestDomainErrorMatching(t *testing.T) {
	err := Conflict("A tag with this name already exists")
	if !errors.Is(err, ErrConflict) {
		t.Error("Expected conflict error to match ErrConflict")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("Conflict error must not match ErrNotFound")
	}

	var domainErr *DomainError
	if !errors.As(err, &domainErr) {
		t.Fatal("Expected a *DomainError")
	}
	if domainErr.HTTPStatus() != 409 {
		t.Errorf("Expected 409, got %d", domainErr.HTTPStatus())
	}
}
