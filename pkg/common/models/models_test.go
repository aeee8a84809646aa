package models

import (
	"testing"
	"time"
)

func fl(v float64) *float64 { return &v }

func TestBMI(t *testing.T) {
	p := Person{WeightKg: fl(80), HeightM: fl(1.8)}
	bmi := p.BMI()
	if bmi == nil {
		t.Fatal("expected a bmi")
	}
	if *bmi != 24.7 {
		t.Errorf("bmi = %v, want 24.7", *bmi)
	}

	if (Person{WeightKg: fl(80)}).BMI() != nil {
		t.Error("bmi without height must be nil")
	}
	if (Person{HeightM: fl(1.8)}).BMI() != nil {
		t.Error("bmi without weight must be nil")
	}
	if (Person{WeightKg: fl(80), HeightM: fl(0)}).BMI() != nil {
		t.Error("bmi with zero height must be nil")
	}
}

func TestBMICategory(t *testing.T) {
	cases := []struct {
		weight float64
		want   string
	}{
		{50, BMIUnderweight},  // 15.4
		{70, BMINormal},       // 21.6
		{90, BMIOverweight},   // 27.8
		{105, BMIObese1},      // 32.4
		{120, BMIObese2},      // 37.0
		{140, BMIObese3},      // 43.2
	}
	for _, tc := range cases {
		p := Person{WeightKg: fl(tc.weight), HeightM: fl(1.8)}
		if got := p.BMICategory(); got != tc.want {
			t.Errorf("category(%v kg) = %q, want %q (bmi %v)", tc.weight, got, tc.want, *p.BMI())
		}
	}
	if got := (Person{}).BMICategory(); got != "" {
		t.Errorf("category without measurements = %q, want empty", got)
	}
}

func TestDaysOpen(t *testing.T) {
	created := time.Date(2026, time.January, 10, 14, 30, 0, 0, time.UTC)
	today := time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC)

	open := Request{CreatedAt: created}
	if got := open.DaysOpen(today); got != 10 {
		t.Errorf("days open = %d, want 10", got)
	}

	closed := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	done := Request{CreatedAt: created, ClosedDate: &closed}
	if got := done.DaysOpen(today); got != 5 {
		t.Errorf("days open after close = %d, want 5", got)
	}
}

func TestIsOverdue(t *testing.T) {
	today := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	due := today.AddDate(0, 0, -1)

	open := RequestStatus{}
	closed := RequestStatus{IsClosed: true}

	r := Request{DueDate: &due}
	if !r.IsOverdue(today, open) {
		t.Error("open request past due must be overdue")
	}
	if r.IsOverdue(today, closed) {
		t.Error("closed request is never overdue")
	}
	if (Request{}).IsOverdue(today, open) {
		t.Error("request without due date is never overdue")
	}

	futureDue := today.AddDate(0, 0, 5)
	if (Request{DueDate: &futureDue}).IsOverdue(today, open) {
		t.Error("request due in the future is not overdue")
	}
}

func TestEstimatedDurationDays(t *testing.T) {
	d10, d30 := 10, 30
	r := Request{Tags: []RequestTag{
		{Name: "a", EstimatedDurationDays: &d10},
		{Name: "b"},
		{Name: "c", EstimatedDurationDays: &d30},
	}}
	got := r.EstimatedDurationDays()
	if got == nil || *got != 30 {
		t.Errorf("estimated duration = %v, want 30", got)
	}
	if (Request{}).EstimatedDurationDays() != nil {
		t.Error("no tags means no estimate")
	}
}

func TestAge(t *testing.T) {
	today := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	year := 1960
	p := Person{BirthYear: &year}
	if got := p.Age(today); got == nil || *got != 66 {
		t.Errorf("age = %v, want 66", got)
	}
	if (Person{}).Age(today) != nil {
		t.Error("age without birth year must be nil")
	}
}
