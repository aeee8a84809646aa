package person

import (
	"errors"
	"testing"

	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/validation"
)

func validPerson() models.Person {
	return models.Person{
		LastName:  "Παπαδόπουλος",
		FirstName: "Γιώργος",
	}
}

func fieldsOf(t *testing.T, err error) map[string][]string {
	t.Helper()
	var v *validation.Violations
	if !errors.As(err, &v) {
		t.Fatalf("expected violations, got %v", err)
	}
	return v.Fields()
}

func TestValidateRequiresNames(t *testing.T) {
	err := Validate(models.Person{})
	fields := fieldsOf(t, err)
	if _, ok := fields["last_name"]; !ok {
		t.Error("expected last_name violation")
	}
	if _, ok := fields["first_name"]; !ok {
		t.Error("expected first_name violation")
	}
}

func TestValidateChildCounters(t *testing.T) {
	p := validPerson()
	p.ChildrenCount = 2
	p.Minors = 3
	fields := fieldsOf(t, Validate(p))
	if _, ok := fields["minors"]; !ok {
		t.Error("expected minors violation when minors exceed children_count")
	}

	p = validPerson()
	p.ChildrenCount = 0
	p.Students = 1
	fields = fieldsOf(t, Validate(p))
	if _, ok := fields["children_count"]; !ok {
		t.Error("expected children_count violation when counters set without children")
	}

	p = validPerson()
	p.ChildrenCount = 3
	p.Minors = 2
	p.Students = 1
	if err := Validate(p); err != nil {
		t.Errorf("expected consistent counters to pass, got %v", err)
	}
}

func TestValidateBodyMeasurements(t *testing.T) {
	weight := 500.0
	p := validPerson()
	p.WeightKg = &weight
	fields := fieldsOf(t, Validate(p))
	if _, ok := fields["weight_kg"]; !ok {
		t.Error("expected weight_kg violation")
	}

	height := 1.78
	weight = 82
	p = validPerson()
	p.WeightKg = &weight
	p.HeightM = &height
	if err := Validate(p); err != nil {
		t.Errorf("expected plausible measurements to pass, got %v", err)
	}
}

func TestNormalizeUppercasesNames(t *testing.T) {
	p := validPerson()
	p.LastName = "Παπαδόπουλος"
	p.FirstName = "γιώργος"
	p.IDCard = "ΑΒ123456"

	normalized := normalize(p)
	if normalized.LastName != "ΠΑΠΑΔΟΠΟΥΛΟΣ" {
		t.Errorf("expected tonos-free uppercase last name, got %q", normalized.LastName)
	}
	if normalized.FirstName != "ΓΙΩΡΓΟΣ" {
		t.Errorf("expected tonos-free uppercase first name, got %q", normalized.FirstName)
	}
	if normalized.IDCard != validation.NormalizeIDCard("ΑΒ123456") {
		t.Errorf("expected canonical id card, got %q", normalized.IDCard)
	}
}
