package workflow

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/validation"
)

func tag(category string) models.RequestTag {
	return models.RequestTag{ID: uuid.New(), Name: category + "-" + uuid.NewString()[:8], Category: category}
}

func TestDerivePrimaryCategory(t *testing.T) {
	cases := []struct {
		name string
		tags []models.RequestTag
		want string
	}{
		{"empty", nil, ""},
		{"single", []models.RequestTag{tag(models.TagCategoryKepa)}, models.TagCategoryKepa},
		{
			"majority wins",
			[]models.RequestTag{
				tag(models.TagCategoryBenefits),
				tag(models.TagCategoryMedical),
				tag(models.TagCategoryMedical),
			},
			models.TagCategoryMedical,
		},
		{
			"tie resolves to first encountered",
			[]models.RequestTag{
				tag(models.TagCategoryWork),
				tag(models.TagCategoryFinancial),
				tag(models.TagCategoryFinancial),
				tag(models.TagCategoryWork),
			},
			models.TagCategoryWork,
		},
		{
			"uncategorized tags are ignored",
			[]models.RequestTag{
				{ID: uuid.New(), Name: "misc"},
				tag(models.TagCategoryTransport),
			},
			models.TagCategoryTransport,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DerivePrimaryCategory(tc.tags); got != tc.want {
				t.Errorf("DerivePrimaryCategory = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValidateRequest(t *testing.T) {
	valid := models.Request{
		PersonID:            uuid.New(),
		StatusID:            uuid.New(),
		CommunicationMethod: models.CommunicationPhone,
		ContactPersonType:   models.ContactedByBeneficiary,
		Priority:            models.PriorityHigh,
	}
	if err := ValidateRequest(valid); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}

	err := ValidateRequest(models.Request{Priority: 9, CommunicationMethod: "telegraph"})
	if err == nil {
		t.Fatal("expected violations")
	}
	v := err.(*validation.Violations)
	fields := v.Fields()
	for _, field := range []string{"person_id", "status_id", "communication_method", "priority"} {
		if _, ok := fields[field]; !ok {
			t.Errorf("expected a violation on %s, got %v", field, fields)
		}
	}
}

func TestValidateAction(t *testing.T) {
	base := models.Action{
		RequestID:   uuid.New(),
		ActionType:  models.ActionCall,
		Direction:   models.DirectionFrom,
		ContactType: models.ContactPatient,
		ActionDate:  time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := ValidateAction(base); err != nil {
		t.Errorf("valid call rejected: %v", err)
	}

	referral := base
	referral.ActionType = models.ActionReferral
	if err := ValidateAction(referral); err == nil {
		t.Error("referral without referral type should be rejected")
	}
	referral.ReferralType = models.ReferralExternalOrg
	if err := ValidateAction(referral); err != nil {
		t.Errorf("complete referral rejected: %v", err)
	}

	orgContact := base
	orgContact.ContactType = models.ContactOrganization
	if err := ValidateAction(orgContact); err == nil {
		t.Error("organization contact without any organization should be rejected")
	}
	orgContact.ManualOrgName = "KEP Kalamarias"
	if err := ValidateAction(orgContact); err != nil {
		t.Errorf("manual organization rejected: %v", err)
	}

	followUp := base
	followUp.RequiresFollowUp = true
	if err := ValidateAction(followUp); err == nil {
		t.Error("follow-up without a date should be rejected")
	}
	date := base.ActionDate.AddDate(0, 0, 14)
	followUp.FollowUpDate = &date
	if err := ValidateAction(followUp); err != nil {
		t.Errorf("follow-up with date rejected: %v", err)
	}

	orphanContact := base
	contactID := uuid.New()
	orphanContact.ContactID = &contactID
	if err := ValidateAction(orphanContact); err == nil {
		t.Error("linked contact without organization should be rejected")
	}
}

func TestValidateActionCallsAndEmailsNeedDirectionAndContactType(t *testing.T) {
	for _, actionType := range []string{models.ActionCall, models.ActionEmail} {
		bare := models.Action{
			RequestID:  uuid.New(),
			ActionType: actionType,
			ActionDate: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		}
		err := ValidateAction(bare)
		if err == nil {
			t.Fatalf("%s with no direction and no contact type was accepted", actionType)
		}
		fields := err.(*validation.Violations).Fields()
		if _, ok := fields["direction"]; !ok {
			t.Errorf("%s: expected a direction violation, got %v", actionType, fields)
		}
		if _, ok := fields["contact_type"]; !ok {
			t.Errorf("%s: expected a contact_type violation, got %v", actionType, fields)
		}
	}

	referral := models.Action{
		RequestID:    uuid.New(),
		ActionType:   models.ActionReferral,
		ReferralType: models.ReferralInternalDept,
		ActionDate:   time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := ValidateAction(referral); err != nil {
		t.Errorf("referral without direction should pass, got %v", err)
	}

	badDirection := models.Action{
		RequestID:   uuid.New(),
		ActionType:  models.ActionEmail,
		Direction:   "sideways",
		ContactType: models.ContactCaregiver,
		ActionDate:  time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	err := ValidateAction(badDirection)
	if err == nil {
		t.Fatal("unknown direction was accepted")
	}
	if _, ok := err.(*validation.Violations).Fields()["direction"]; !ok {
		t.Error("expected a direction violation for an unknown value")
	}

	badContact := models.Action{
		RequestID:   uuid.New(),
		ActionType:  models.ActionCall,
		Direction:   models.DirectionTo,
		ContactType: "stranger",
		ActionDate:  time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
	}
	err = ValidateAction(badContact)
	if err == nil {
		t.Fatal("unknown contact type was accepted")
	}
	if _, ok := err.(*validation.Violations).Fields()["contact_type"]; !ok {
		t.Error("expected a contact_type violation for an unknown value")
	}
}

func TestTransitionClosedDate(t *testing.T) {
	closed := models.RequestStatus{IsClosed: true}
	open := models.RequestStatus{}
	today := time.Date(2026, time.April, 10, 0, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)

	if got := TransitionClosedDate(closed, nil, today); got == nil || !got.Equal(today) {
		t.Errorf("entering a closed status must stamp today, got %v", got)
	}
	if got := TransitionClosedDate(closed, &earlier, today); got == nil || !got.Equal(earlier) {
		t.Errorf("an already-closed request must keep its closed date, got %v", got)
	}
	if got := TransitionClosedDate(open, &earlier, today); got != nil {
		t.Errorf("reopening must clear the closed date, got %v", got)
	}
	if got := TransitionClosedDate(open, nil, today); got != nil {
		t.Errorf("an open request carries no closed date, got %v", got)
	}
}
