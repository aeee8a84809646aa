package medical

import (
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/validation"
)

// KEPA expiry buckets at the 120 and 180 day boundaries.
const (
	KepaExpired   = "expired"
	KepaCritical  = "expires_within_120_days"
	KepaUpcoming  = "expires_within_180_days"
	KepaOK        = "ok"
	KepaNotListed = ""
)

// KepaBucket classifies a KEPA certification expiry against today.
// Returns the empty string when the person has no KEPA check on file.
func KepaBucket(kepaCheck bool, expiry *time.Time, today time.Time) string {
	if !kepaCheck || expiry == nil {
		return KepaNotListed
	}
	days := int(expiry.Sub(today).Hours() / 24)
	switch {
	case days < 0:
		return KepaExpired
	case days <= 120:
		return KepaCritical
	case days <= 180:
		return KepaUpcoming
	default:
		return KepaOK
	}
}

// ValidateHistory enforces the disability/KEPA companion-field rules.
// disability_percentage implies disability itself, which normalizeHistory
// sets rather than rejecting.
func ValidateHistory(h models.MedicalHistory) error {
	var v validation.Violations
	if h.CertifiedDisability && h.DisabilityPercentage == nil {
		v.Add("disability_percentage", validation.KindConsistency, "certified disability requires a percentage")
	}
	if h.DisabilityPercentage != nil {
		if *h.DisabilityPercentage < 0 || *h.DisabilityPercentage > 100 {
			v.Add("disability_percentage", validation.KindConsistency, "percentage must be between 0 and 100")
		}
	}
	if h.KepaCheck && h.KepaExpiry == nil {
		v.Add("kepa_expiry", validation.KindConsistency, "kepa check requires an expiry date")
	}
	return v.Err()
}

func normalizeHistory(h models.MedicalHistory) models.MedicalHistory {
	if h.DisabilityPercentage != nil {
		h.Disability = true
	}
	return h
}

// neoplasmCategoryCap is the most neoplasms a person may carry within a
// single ICD-10 category.
const neoplasmCategoryCap = 4

// checkCategoryCap rejects a save that would push the number of
// neoplasms in one (person, category) pair past the cap. siblings counts
// the person's other neoplasms already in the target category.
func checkCategoryCap(siblings int) error {
	if siblings >= neoplasmCategoryCap {
		var v validation.Violations
		v.Add("icd10_category_id", validation.KindCapacity, "at most 4 neoplasms per icd10 category")
		return v.Err()
	}
	return nil
}

// categoryChanged reports whether a save moves the neoplasm into a
// different, non-nil category, which is when the cap must be re-checked.
func categoryChanged(current, target *uuid.UUID) bool {
	if target == nil {
		return false
	}
	return current == nil || *current != *target
}

func ValidateNeoplasm(n models.Neoplasm) error {
	var v validation.Violations
	if n.ICD10CodeID == uuid.Nil {
		v.Add("icd10_code_id", validation.KindConsistency, "icd10 code is required")
	}
	if n.Surgery && n.SurgeryHospital == "" {
		v.Add("surgery_hospital", validation.KindConsistency, "surgery requires the hospital where it was performed")
	}
	return v.Err()
}

var therapyTypes = map[string]bool{
	models.TherapyChemotherapy:  true,
	models.TherapyRadiotherapy:  true,
	models.TherapyHormone:       true,
	models.TherapyTargeted:      true,
	models.TherapyImmunotherapy: true,
	models.TherapyGene:          true,
	models.TherapyAlternative:   true,
	models.TherapyStemCell:      true,
	models.TherapyOther:         true,
}

func ValidateTherapy(t models.Therapy, today time.Time) error {
	var v validation.Violations
	if !therapyTypes[t.TherapyType] {
		v.Add("therapy_type", validation.KindConsistency, "unknown therapy type")
	}
	if t.StartDate != nil && t.StartDate.After(today) {
		v.Add("start_date", validation.KindDate, "start date must not be in the future")
	}
	return v.Err()
}
