package medical

import (
	"context"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/clock"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/kafka"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
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

// HistoryView decorates the stored history with the derived KEPA bucket.
type HistoryView struct {
	models.MedicalHistory
	KepaBucket string `json:"kepa_bucket,omitempty"`
}

func (s *Service) projectHistory(h models.MedicalHistory) HistoryView {
	return HistoryView{
		MedicalHistory: h,
		KepaBucket:     KepaBucket(h.KepaCheck, h.KepaExpiry, clock.Today(s.clock)),
	}
}

func (s *Service) SaveHistory(ctx context.Context, h models.MedicalHistory, actor string) (HistoryView, error) {
	h = normalizeHistory(h)
	if err := ValidateHistory(h); err != nil {
		return HistoryView{}, err
	}
	saved, err := s.repo.UpsertHistory(ctx, h)
	if err != nil {
		return HistoryView{}, err
	}
	s.publish(ctx, "medical_history.saved", "medical_history", saved.ID, actor, map[string]interface{}{
		"person_id": saved.PersonID.String(),
	})
	return s.projectHistory(saved), nil
}

func (s *Service) GetHistory(ctx context.Context, personID uuid.UUID) (HistoryView, error) {
	h, err := s.repo.GetHistoryByPerson(ctx, personID)
	if err != nil {
		return HistoryView{}, err
	}
	return s.projectHistory(h), nil
}

func (s *Service) CreateNeoplasm(ctx context.Context, n models.Neoplasm, actor string) (models.Neoplasm, error) {
	if err := ValidateNeoplasm(n); err != nil {
		return models.Neoplasm{}, err
	}
	created, err := s.repo.CreateNeoplasm(ctx, n)
	if err != nil {
		return models.Neoplasm{}, err
	}
	s.publish(ctx, "neoplasm.created", "neoplasm", created.ID, actor, map[string]interface{}{
		"person_id": created.PersonID.String(),
	})
	return created, nil
}

func (s *Service) UpdateNeoplasm(ctx context.Context, n models.Neoplasm, actor string) (models.Neoplasm, error) {
	if err := ValidateNeoplasm(n); err != nil {
		return models.Neoplasm{}, err
	}
	updated, err := s.repo.UpdateNeoplasm(ctx, n)
	if err != nil {
		return models.Neoplasm{}, err
	}
	s.publish(ctx, "neoplasm.updated", "neoplasm", updated.ID, actor, nil)
	return updated, nil
}

func (s *Service) GetNeoplasm(ctx context.Context, id uuid.UUID) (models.Neoplasm, error) {
	return s.repo.GetNeoplasm(ctx, id)
}

func (s *Service) ListNeoplasms(ctx context.Context, personID uuid.UUID) ([]models.Neoplasm, error) {
	return s.repo.ListNeoplasms(ctx, personID)
}

func (s *Service) DeleteNeoplasm(ctx context.Context, id uuid.UUID, actor string) error {
	if err := s.repo.DeleteNeoplasm(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "neoplasm.deleted", "neoplasm", id, actor, nil)
	return nil
}

func (s *Service) CreateTherapy(ctx context.Context, t models.Therapy, actor string) (models.Therapy, error) {
	if err := ValidateTherapy(t, clock.Today(s.clock)); err != nil {
		return models.Therapy{}, err
	}
	created, err := s.repo.CreateTherapy(ctx, t)
	if err != nil {
		return models.Therapy{}, err
	}
	s.publish(ctx, "therapy.created", "therapy", created.ID, actor, map[string]interface{}{
		"neoplasm_id":  created.NeoplasmID.String(),
		"therapy_type": created.TherapyType,
	})
	return created, nil
}

func (s *Service) UpdateTherapy(ctx context.Context, t models.Therapy, actor string) (models.Therapy, error) {
	if err := ValidateTherapy(t, clock.Today(s.clock)); err != nil {
		return models.Therapy{}, err
	}
	updated, err := s.repo.UpdateTherapy(ctx, t)
	if err != nil {
		return models.Therapy{}, err
	}
	s.publish(ctx, "therapy.updated", "therapy", updated.ID, actor, nil)
	return updated, nil
}

func (s *Service) ListTherapies(ctx context.Context, neoplasmID uuid.UUID) ([]models.Therapy, error) {
	return s.repo.ListTherapies(ctx, neoplasmID)
}

func (s *Service) DeleteTherapy(ctx context.Context, id uuid.UUID, actor string) error {
	if err := s.repo.DeleteTherapy(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "therapy.deleted", "therapy", id, actor, nil)
	return nil
}

func (s *Service) SaveComorbidity(ctx context.Context, c models.Comorbidity, actor string) (models.Comorbidity, error) {
	saved, err := s.repo.UpsertComorbidity(ctx, c)
	if err != nil {
		return models.Comorbidity{}, err
	}
	s.publish(ctx, "comorbidity.saved", "comorbidity", saved.ID, actor, map[string]interface{}{
		"person_id": saved.PersonID.String(),
	})
	return saved, nil
}

func (s *Service) GetComorbidity(ctx context.Context, personID uuid.UUID) (models.Comorbidity, error) {
	return s.repo.GetComorbidityByPerson(ctx, personID)
}

func (s *Service) publish(ctx context.Context, eventType, entity string, id uuid.UUID, actor string, data map[string]interface{}) {
	if s.events == nil {
		return
	}
	_ = s.events.PublishEvent(ctx, eventType, entity, id.String(), actor, data)
}
