package workflow

import (
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/validation"
)

// TransitionClosedDate applies the closed-status rule on every save:
// entering a closed status stamps today unless a closed date is already
// on record, staying closed preserves it, and leaving a closed status
// clears it.
func TransitionClosedDate(status models.RequestStatus, recorded *time.Time, today time.Time) *time.Time {
	if !status.IsClosed {
		return nil
	}
	if recorded != nil {
		return recorded
	}
	return &today
}

// DerivePrimaryCategory picks the most frequent category among the
// attached tags. Ties resolve to the category seen first in tag order,
// which keeps the result deterministic for a given tag list.
func DerivePrimaryCategory(tags []models.RequestTag) string {
	if len(tags) == 0 {
		return ""
	}

	counts := make(map[string]int, len(tags))
	var order []string
	for _, tag := range tags {
		if tag.Category == "" {
			continue
		}
		if counts[tag.Category] == 0 {
			order = append(order, tag.Category)
		}
		counts[tag.Category]++
	}

	best := ""
	bestCount := 0
	for _, category := range order {
		if counts[category] > bestCount {
			best = category
			bestCount = counts[category]
		}
	}
	return best
}

var communicationMethods = map[string]bool{
	"": true,
	models.CommunicationForm:       true,
	models.CommunicationPhone:      true,
	models.CommunicationMobileUnit: true,
}

var contactPersonTypes = map[string]bool{
	"": true,
	models.ContactedByBeneficiary: true,
	models.ContactedByCaregiver:   true,
	models.ContactedByReferral:    true,
}

func ValidateRequest(r models.Request) error {
	var v validation.Violations
	if r.PersonID == uuid.Nil {
		v.Add("person_id", validation.KindConsistency, "person is required")
	}
	if r.StatusID == uuid.Nil {
		v.Add("status_id", validation.KindConsistency, "status is required")
	}
	if !communicationMethods[r.CommunicationMethod] {
		v.Add("communication_method", validation.KindConsistency, "unknown communication method")
	}
	if !contactPersonTypes[r.ContactPersonType] {
		v.Add("contact_person_type", validation.KindConsistency, "unknown contact person type")
	}
	if r.Priority != 0 && (r.Priority < models.PriorityHigh || r.Priority > models.PriorityLow) {
		v.Add("priority", validation.KindConsistency, "priority must be 1 (high) to 3 (low)")
	}
	if r.PrimaryCategory != "" && !models.ValidTagCategory(r.PrimaryCategory) {
		v.Add("primary_category", validation.KindConsistency, "unknown category")
	}
	return v.Err()
}

var actionTypes = map[string]bool{
	models.ActionCall:     true,
	models.ActionEmail:    true,
	models.ActionReferral: true,
}

var referralTypes = map[string]bool{
	models.ReferralExternalOrg:  true,
	models.ReferralInternalDept: true,
	models.ReferralSpecialist:   true,
}

var directions = map[string]bool{
	models.DirectionFrom: true,
	models.DirectionTo:   true,
}

var actionContactTypes = map[string]bool{
	models.ContactPatient:      true,
	models.ContactCaregiver:    true,
	models.ContactOrganization: true,
}

// ValidateAction enforces the companion-field rules of the three action
// modes: calls and emails carry a direction and a contact type,
// referrals carry a referral type, organization contacts name an
// organization (linked or manual), and follow-ups carry a date.
func ValidateAction(a models.Action) error {
	var v validation.Violations
	if a.RequestID == uuid.Nil {
		v.Add("request_id", validation.KindConsistency, "request is required")
	}
	if !actionTypes[a.ActionType] {
		v.Add("action_type", validation.KindConsistency, "unknown action type")
	}
	if a.Direction != "" && !directions[a.Direction] {
		v.Add("direction", validation.KindConsistency, "unknown direction")
	}
	if a.ContactType != "" && !actionContactTypes[a.ContactType] {
		v.Add("contact_type", validation.KindConsistency, "unknown contact type")
	}
	if a.ActionType == models.ActionCall || a.ActionType == models.ActionEmail {
		if a.Direction == "" {
			v.Add("direction", validation.KindConsistency, "calls and emails require a direction")
		}
		if a.ContactType == "" {
			v.Add("contact_type", validation.KindConsistency, "calls and emails require a contact type")
		}
	}
	if a.ActionType == models.ActionReferral {
		if a.ReferralType == "" {
			v.Add("referral_type", validation.KindConsistency, "referral requires a referral type")
		} else if !referralTypes[a.ReferralType] {
			v.Add("referral_type", validation.KindConsistency, "unknown referral type")
		}
	}
	if a.ContactType == models.ContactOrganization && a.ExternalOrgID == nil && a.ManualOrgName == "" {
		v.Add("external_org_id", validation.KindConsistency, "organization contact requires a linked or manually named organization")
	}
	if a.ContactID != nil && a.ExternalOrgID == nil {
		v.Add("contact_id", validation.KindConsistency, "a linked contact requires the organization it belongs to")
	}
	if a.RequiresFollowUp && a.FollowUpDate == nil {
		v.Add("follow_up_date", validation.KindConsistency, "follow-up requires a date")
	}
	if a.ActionDate.IsZero() {
		v.Add("action_date", validation.KindDate, "action date is required")
	}
	return v.Err()
}
