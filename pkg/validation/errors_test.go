package validation

import (
	"errors"
	"testing"
)

func TestViolationsAccumulate(t *testing.T) {
	var v Violations
	if err := v.Err(); err != nil {
		t.Fatalf("empty violations should yield nil, got %v", err)
	}

	v.Add("minors", KindConsistency, "minors exceeds children_count")
	v.Add("mobile", KindFormat, "mobile must match 69XXXXXXXX")
	v.Collect("vat", ValidateVAT("123456789"))
	v.Collect("vat", nil)

	err := v.Err()
	if err == nil {
		t.Fatal("expected accumulated error")
	}
	var got *Violations
	if !errors.As(err, &got) {
		t.Fatalf("expected *Violations, got %T", err)
	}
	if len(got.All()) != 3 {
		t.Fatalf("expected 3 violations, got %d", len(got.All()))
	}

	fields := got.Fields()
	if len(fields["vat"]) != 1 || len(fields["minors"]) != 1 || len(fields["mobile"]) != 1 {
		t.Fatalf("unexpected field map: %v", fields)
	}
}

func TestConflictError(t *testing.T) {
	err := Conflict("amka", "AMKA already registered")
	var fe FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FieldError, got %T", err)
	}
	if fe.Kind != KindConflict || fe.Field != "amka" {
		t.Fatalf("unexpected error: %+v", fe)
	}
}
