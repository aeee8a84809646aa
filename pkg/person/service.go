package person

import (
	"context"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/clock"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/kafka"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/validation"
)

type Service struct {
	repo   *Repository
	events *kafka.Producer
	clock  clock.Clock
}

func NewService(repo *Repository, events *kafka.Producer, clk clock.Clock) *Service {
	if clk == nil {
		clk = clock.System()
	}
	return &Service{repo: repo, events: events, clock: clk}
}

// Validate runs every cross-field rule on a beneficiary and reports all
// violations at once.
func Validate(p models.Person) error {
	var v validation.Violations

	if p.LastName == "" {
		v.Add("last_name", validation.KindConsistency, "last name is required")
	}
	if p.FirstName == "" {
		v.Add("first_name", validation.KindConsistency, "first name is required")
	}

	if p.ChildrenCount < 0 {
		v.Add("children_count", validation.KindConsistency, "children_count cannot be negative")
	}
	if p.Minors < 0 || p.Students < 0 || p.NoMilitaryService < 0 {
		v.Add("children_count", validation.KindConsistency, "child counters cannot be negative")
	}
	if p.ChildrenCount == 0 && (p.Minors > 0 || p.Students > 0 || p.NoMilitaryService > 0) {
		v.Add("children_count", validation.KindConsistency, "child counters must be zero when there are no children")
	}
	if p.Minors > p.ChildrenCount {
		v.Add("minors", validation.KindConsistency, "minors exceeds children_count")
	}
	if p.Students > p.ChildrenCount {
		v.Add("students", validation.KindConsistency, "students exceeds children_count")
	}
	if p.NoMilitaryService > p.ChildrenCount {
		v.Add("no_military_service", validation.KindConsistency, "no_military_service exceeds children_count")
	}

	v.Collect("vat", validation.ValidateVAT(p.VAT))
	v.Collect("amka", validation.ValidateAMKA(p.AMKA))
	v.Collect("id_card", validation.ValidateIDCard(p.IDCard))
	v.Collect("mobile", validation.ValidateMobile(p.Mobile))
	v.Collect("landline", validation.ValidateLandline(p.Landline))
	v.Collect("postal_code", validation.ValidatePostalCode(p.PostalCode))

	if p.WeightKg != nil && (*p.WeightKg < 20 || *p.WeightKg > 300) {
		v.Add("weight_kg", validation.KindConsistency, "weight must be between 20 and 300 kg")
	}
	if p.HeightM != nil && (*p.HeightM < 0.5 || *p.HeightM > 2.5) {
		v.Add("height_m", validation.KindConsistency, "height must be between 0.5 and 2.5 m")
	}

	return v.Err()
}

// normalize uppercases names tonos-free and canonicalizes identifiers
// before they reach storage.
func normalize(p models.Person) models.Person {
	p.LastName = validation.UpperNoTone(p.LastName)
	p.FirstName = validation.UpperNoTone(p.FirstName)
	p.FatherName = validation.UpperNoTone(p.FatherName)
	p.MotherName = validation.UpperNoTone(p.MotherName)
	if p.IDCard != "" {
		p.IDCard = validation.NormalizeIDCard(p.IDCard)
	}
	return p
}

func (s *Service) Create(ctx context.Context, p models.Person, actor string) (models.Person, error) {
	p = normalize(p)
	if err := Validate(p); err != nil {
		return models.Person{}, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return models.Person{}, err
	}
	s.publish(ctx, "person_created", created.ID, actor, map[string]interface{}{
		"registration_number": created.RegistrationNumber,
	})
	return created, nil
}

func (s *Service) Update(ctx context.Context, p models.Person, actor string) (models.Person, error) {
	p = normalize(p)
	if err := Validate(p); err != nil {
		return models.Person{}, err
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return models.Person{}, err
	}
	s.publish(ctx, "person_updated", updated.ID, actor, nil)
	return updated, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (models.Person, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, search string, limit int) ([]models.Person, error) {
	return s.repo.List(ctx, search, limit)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID, actor string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "person_deleted", id, actor, nil)
	return nil
}

// View is the read projection handed to the presentation layer: the
// person plus the derived fields.
type View struct {
	models.Person
	BMI         *float64 `json:"bmi,omitempty"`
	BMICategory string   `json:"bmi_category,omitempty"`
	Age         *int     `json:"age,omitempty"`
}

func (s *Service) Project(p models.Person) View {
	return View{
		Person:      p,
		BMI:         p.BMI(),
		BMICategory: p.BMICategory(),
		Age:         p.Age(clock.Today(s.clock)),
	}
}

func (s *Service) SaveContact(ctx context.Context, c models.ContactPerson, actor string) (models.ContactPerson, error) {
	var v validation.Violations
	v.Collect("mobile", validation.ValidateMobile(c.Mobile))
	v.Collect("landline", validation.ValidateLandline(c.Landline))
	v.Collect("postal_code", validation.ValidatePostalCode(c.PostalCode))
	if err := v.Err(); err != nil {
		return models.ContactPerson{}, err
	}

	if _, err := s.repo.Get(ctx, c.PersonID); err != nil {
		return models.ContactPerson{}, err
	}
	saved, err := s.repo.SaveContact(ctx, c)
	if err != nil {
		return models.ContactPerson{}, err
	}
	s.publish(ctx, "contact_saved", saved.PersonID, actor, map[string]interface{}{
		"contact_id": saved.ID.String(),
		"is_primary": saved.IsPrimary,
	})
	return saved, nil
}

func (s *Service) ListContacts(ctx context.Context, personID uuid.UUID) ([]models.ContactPerson, error) {
	return s.repo.ListContacts(ctx, personID)
}

func (s *Service) GetContact(ctx context.Context, id uuid.UUID) (models.ContactPerson, error) {
	return s.repo.GetContact(ctx, id)
}

func (s *Service) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteContact(ctx, id)
}

func (s *Service) publish(ctx context.Context, eventType string, personID uuid.UUID, actor string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	_ = s.events.PublishEvent(ctx, eventType, "person", personID.String(), actor, data)
}
