package documents

import (
	"context"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/clock"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/kafka"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/validation"
)

// Service records document and attachment metadata. Binary content lives
// in external file storage; what storage reports back (StoredFile) fills
// in any metadata the caller left blank.
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

func applyStoredFile(path *string, filename *string, size **int64, stored *models.StoredFile) {
	if stored == nil {
		return
	}
	if *path == "" {
		*path = stored.Path
	}
	if *filename == "" {
		*filename = stored.Filename
	}
	if *size == nil {
		s := stored.Size
		*size = &s
	}
}

func (s *Service) SaveDocumentType(ctx context.Context, dt models.DocumentType) (models.DocumentType, error) {
	if dt.Name == "" {
		var v validation.Violations
		v.Add("name", validation.KindConsistency, "name is required")
		return models.DocumentType{}, v.Err()
	}
	return s.repo.SaveDocumentType(ctx, dt)
}

func (s *Service) ListDocumentTypes(ctx context.Context) ([]models.DocumentType, error) {
	return s.repo.ListDocumentTypes(ctx)
}

func (s *Service) DeleteDocumentType(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteDocumentType(ctx, id)
}

func (s *Service) CreateDocument(ctx context.Context, d models.Document, stored *models.StoredFile, actor string) (models.Document, error) {
	applyStoredFile(&d.StoragePath, &d.OriginalFilename, &d.FileSize, stored)

	var v validation.Violations
	if d.PersonID == nil && d.RequestID == nil {
		v.Add("person_id", validation.KindConsistency, "document must be linked to a person or a request")
	}
	if d.StoragePath == "" {
		v.Add("storage_path", validation.KindConsistency, "storage path is required")
	}
	if err := v.Err(); err != nil {
		return models.Document{}, err
	}

	created, err := s.repo.CreateDocument(ctx, d)
	if err != nil {
		return models.Document{}, err
	}
	s.publish(ctx, "document.created", created.ID, actor)
	return created, nil
}

func (s *Service) UpdateDocument(ctx context.Context, d models.Document, actor string) (models.Document, error) {
	updated, err := s.repo.UpdateDocument(ctx, d)
	if err != nil {
		return models.Document{}, err
	}
	s.publish(ctx, "document.updated", updated.ID, actor)
	return updated, nil
}

// VerifyDocument marks the document as checked by the acting user.
func (s *Service) VerifyDocument(ctx context.Context, id uuid.UUID, verifiedBy *uuid.UUID, actor string) (models.Document, error) {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return models.Document{}, err
	}
	now := s.clock.Now().UTC()
	doc.IsVerified = true
	doc.VerifiedBy = verifiedBy
	doc.VerifiedAt = &now
	verified, err := s.repo.UpdateDocument(ctx, doc)
	if err != nil {
		return models.Document{}, err
	}
	s.publish(ctx, "document.verified", verified.ID, actor)
	return verified, nil
}

func (s *Service) GetDocument(ctx context.Context, id uuid.UUID) (models.Document, error) {
	return s.repo.GetDocument(ctx, id)
}

func (s *Service) ListDocumentsByPerson(ctx context.Context, personID uuid.UUID) ([]models.Document, error) {
	return s.repo.ListDocumentsByPerson(ctx, personID)
}

func (s *Service) ListDocumentsByRequest(ctx context.Context, requestID uuid.UUID) ([]models.Document, error) {
	return s.repo.ListDocumentsByRequest(ctx, requestID)
}

func (s *Service) DeleteDocument(ctx context.Context, id uuid.UUID, actor string) error {
	if err := s.repo.DeleteDocument(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, "document.deleted", id, actor)
	return nil
}

func (s *Service) AddRequestAttachment(ctx context.Context, a models.RequestAttachment, stored *models.StoredFile) (models.RequestAttachment, error) {
	applyStoredFile(&a.StoragePath, &a.OriginalFilename, &a.FileSize, stored)
	if a.StoragePath == "" {
		var v validation.Violations
		v.Add("storage_path", validation.KindConsistency, "storage path is required")
		return models.RequestAttachment{}, v.Err()
	}
	return s.repo.CreateRequestAttachment(ctx, a)
}

func (s *Service) ListRequestAttachments(ctx context.Context, requestID uuid.UUID) ([]models.RequestAttachment, error) {
	return s.repo.ListRequestAttachments(ctx, requestID)
}

func (s *Service) DeleteRequestAttachment(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteRequestAttachment(ctx, id)
}

func (s *Service) AddActionAttachment(ctx context.Context, a models.ActionAttachment, stored *models.StoredFile) (models.ActionAttachment, error) {
	applyStoredFile(&a.StoragePath, &a.OriginalFilename, &a.FileSize, stored)
	if a.StoragePath == "" {
		var v validation.Violations
		v.Add("storage_path", validation.KindConsistency, "storage path is required")
		return models.ActionAttachment{}, v.Err()
	}
	return s.repo.CreateActionAttachment(ctx, a)
}

func (s *Service) ListActionAttachments(ctx context.Context, actionID uuid.UUID) ([]models.ActionAttachment, error) {
	return s.repo.ListActionAttachments(ctx, actionID)
}

func (s *Service) DeleteActionAttachment(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteActionAttachment(ctx, id)
}

func (s *Service) publish(ctx context.Context, eventType string, id uuid.UUID, actor string) {
	if s.events == nil {
		return
	}
	_ = s.events.PublishEvent(ctx, eventType, "document", id.String(), actor, nil)
}
