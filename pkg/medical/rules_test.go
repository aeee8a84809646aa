package medical

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/validation"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestKepaBucket(t *testing.T) {
	today := date(2026, time.March, 1)

	cases := []struct {
		name   string
		expiry time.Time
		want   string
	}{
		{"expired yesterday", date(2026, time.February, 28), KepaExpired},
		{"expires today", today, KepaCritical},
		{"expires in 120 days", today.AddDate(0, 0, 120), KepaCritical},
		{"expires in 121 days", today.AddDate(0, 0, 121), KepaUpcoming},
		{"expires in 180 days", today.AddDate(0, 0, 180), KepaUpcoming},
		{"expires in 181 days", today.AddDate(0, 0, 181), KepaOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expiry := tc.expiry
			if got := KepaBucket(true, &expiry, today); got != tc.want {
				t.Errorf("KepaBucket(%s) = %q, want %q", expiry.Format("2006-01-02"), got, tc.want)
			}
		})
	}

	if got := KepaBucket(false, &today, today); got != KepaNotListed {
		t.Errorf("bucket without kepa check = %q, want empty", got)
	}
	if got := KepaBucket(true, nil, today); got != KepaNotListed {
		t.Errorf("bucket without expiry = %q, want empty", got)
	}
}

func TestValidateHistory(t *testing.T) {
	pct := 67

	if err := ValidateHistory(models.MedicalHistory{CertifiedDisability: true}); err == nil {
		t.Error("certified disability without percentage should be rejected")
	}

	expiry := date(2026, time.June, 1)
	ok := models.MedicalHistory{
		Disability:           true,
		CertifiedDisability:  true,
		DisabilityPercentage: &pct,
		KepaCheck:            true,
		KepaExpiry:           &expiry,
	}
	if err := ValidateHistory(ok); err != nil {
		t.Errorf("valid history rejected: %v", err)
	}

	if err := ValidateHistory(models.MedicalHistory{KepaCheck: true}); err == nil {
		t.Error("kepa check without expiry should be rejected")
	}

	over := 150
	if err := ValidateHistory(normalizeHistory(models.MedicalHistory{DisabilityPercentage: &over})); err == nil {
		t.Error("percentage over 100 should be rejected")
	}
}

func TestNormalizeHistorySetsDisability(t *testing.T) {
	pct := 50
	h := normalizeHistory(models.MedicalHistory{DisabilityPercentage: &pct})
	if !h.Disability {
		t.Error("a recorded percentage must imply disability")
	}
}

func TestValidateNeoplasm(t *testing.T) {
	base := models.Neoplasm{ICD10CodeID: uuid.New()}

	if err := ValidateNeoplasm(base); err != nil {
		t.Errorf("valid neoplasm rejected: %v", err)
	}

	surgical := base
	surgical.Surgery = true
	err := ValidateNeoplasm(surgical)
	if err == nil {
		t.Fatal("surgery without hospital should be rejected")
	}
	v, ok := err.(*validation.Violations)
	if !ok {
		t.Fatalf("expected violations, got %T", err)
	}
	if _, present := v.Fields()["surgery_hospital"]; !present {
		t.Errorf("violation should name surgery_hospital, got %v", v.Fields())
	}

	surgical.SurgeryHospital = "Papageorgiou General Hospital"
	if err := ValidateNeoplasm(surgical); err != nil {
		t.Errorf("surgery with hospital rejected: %v", err)
	}

	if err := ValidateNeoplasm(models.Neoplasm{}); err == nil {
		t.Error("missing icd10 code should be rejected")
	}
}

func TestValidateTherapy(t *testing.T) {
	today := date(2026, time.March, 1)

	past := today.AddDate(0, -1, 0)
	ok := models.Therapy{TherapyType: models.TherapyChemotherapy, StartDate: &past}
	if err := ValidateTherapy(ok, today); err != nil {
		t.Errorf("valid therapy rejected: %v", err)
	}

	future := today.AddDate(0, 0, 1)
	if err := ValidateTherapy(models.Therapy{TherapyType: models.TherapyRadiotherapy, StartDate: &future}, today); err == nil {
		t.Error("future start date should be rejected")
	}

	startsToday := models.Therapy{TherapyType: models.TherapyImmunotherapy, StartDate: &today}
	if err := ValidateTherapy(startsToday, today); err != nil {
		t.Errorf("therapy starting today rejected: %v", err)
	}

	if err := ValidateTherapy(models.Therapy{TherapyType: "bloodletting"}, today); err == nil {
		t.Error("unknown therapy type should be rejected")
	}
}

func TestCheckCategoryCap(t *testing.T) {
	for siblings := 0; siblings < neoplasmCategoryCap; siblings++ {
		if err := checkCategoryCap(siblings); err != nil {
			t.Errorf("%d siblings should leave room under the cap, got %v", siblings, err)
		}
	}

	err := checkCategoryCap(neoplasmCategoryCap)
	if err == nil {
		t.Fatal("a full category must reject another neoplasm")
	}
	fields := err.(*validation.Violations).Fields()
	if _, ok := fields["icd10_category_id"]; !ok {
		t.Errorf("expected an icd10_category_id violation, got %v", fields)
	}
}

func TestCategoryChanged(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	if categoryChanged(&a, nil) {
		t.Error("clearing the category needs no cap check")
	}
	if categoryChanged(&a, &a) {
		t.Error("keeping the category needs no cap check")
	}
	if !categoryChanged(&a, &b) {
		t.Error("moving between categories must trigger the cap check")
	}
	if !categoryChanged(nil, &b) {
		t.Error("assigning a category for the first time must trigger the cap check")
	}
}
