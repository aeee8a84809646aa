package documents

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"gorm.io/gorm"
)

var (
	ErrDocumentNotFound     = errors.New("document not found")
	ErrDocumentTypeNotFound = errors.New("document type not found")
	ErrAttachmentNotFound   = errors.New("attachment not found")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type documentTypeModel struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                  string    `gorm:"not null;uniqueIndex"`
	Description           string
	IsRequiredForRequests bool
}

func (documentTypeModel) TableName() string { return "document_types" }

type documentModel struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Title          string
	Description    string
	DocumentTypeID *uuid.UUID `gorm:"type:uuid;index"`

	PersonID  *uuid.UUID `gorm:"type:uuid;index"`
	RequestID *uuid.UUID `gorm:"type:uuid;index"`

	StoragePath      string
	OriginalFilename string
	FileSize         *int64

	UploadedBy *uuid.UUID `gorm:"type:uuid"`

	IsVerified bool
	VerifiedBy *uuid.UUID `gorm:"type:uuid"`
	VerifiedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (documentModel) TableName() string { return "documents" }

type requestAttachmentModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	RequestID        uuid.UUID `gorm:"type:uuid;index"`
	StoragePath      string
	OriginalFilename string
	FileSize         *int64
	Description      string
	UploadedBy       *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time
}

func (requestAttachmentModel) TableName() string { return "request_attachments" }

type actionAttachmentModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	ActionID         uuid.UUID `gorm:"type:uuid;index"`
	StoragePath      string
	OriginalFilename string
	FileSize         *int64
	Description      string
	CreatedAt        time.Time
}

func (actionAttachmentModel) TableName() string { return "action_attachments" }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&documentTypeModel{}, &documentModel{}, &requestAttachmentModel{}, &actionAttachmentModel{})
}

// --- Document types ---

func (r *Repository) SaveDocumentType(ctx context.Context, dt models.DocumentType) (models.DocumentType, error) {
	row := documentTypeModel(dt)
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return models.DocumentType{}, err
		}
		return models.DocumentType(row), nil
	}
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return models.DocumentType{}, err
	}
	return models.DocumentType(row), nil
}

func (r *Repository) ListDocumentTypes(ctx context.Context) ([]models.DocumentType, error) {
	var rows []documentTypeModel
	if err := r.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	types := make([]models.DocumentType, 0, len(rows))
	for _, row := range rows {
		types = append(types, models.DocumentType(row))
	}
	return types, nil
}

func (r *Repository) DeleteDocumentType(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&documentTypeModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentTypeNotFound
	}
	return nil
}

// --- Documents ---

func (r *Repository) CreateDocument(ctx context.Context, d models.Document) (models.Document, error) {
	row := documentModel(d)
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Document{}, err
	}
	return models.Document(row), nil
}

func (r *Repository) UpdateDocument(ctx context.Context, d models.Document) (models.Document, error) {
	var existing documentModel
	if err := r.db.WithContext(ctx).First(&existing, "id = ?", d.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Document{}, ErrDocumentNotFound
		}
		return models.Document{}, err
	}
	row := documentModel(d)
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return models.Document{}, err
	}
	return models.Document(row), nil
}

func (r *Repository) GetDocument(ctx context.Context, id uuid.UUID) (models.Document, error) {
	var row documentModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Document{}, ErrDocumentNotFound
		}
		return models.Document{}, err
	}
	return models.Document(row), nil
}

func (r *Repository) ListDocumentsByPerson(ctx context.Context, personID uuid.UUID) ([]models.Document, error) {
	return r.listDocuments(ctx, "person_id = ?", personID)
}

func (r *Repository) ListDocumentsByRequest(ctx context.Context, requestID uuid.UUID) ([]models.Document, error) {
	return r.listDocuments(ctx, "request_id = ?", requestID)
}

func (r *Repository) listDocuments(ctx context.Context, cond string, arg interface{}) ([]models.Document, error) {
	var rows []documentModel
	if err := r.db.WithContext(ctx).Where(cond, arg).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	docs := make([]models.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, models.Document(row))
	}
	return docs, nil
}

func (r *Repository) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&documentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

// --- Attachments ---

func (r *Repository) CreateRequestAttachment(ctx context.Context, a models.RequestAttachment) (models.RequestAttachment, error) {
	row := requestAttachmentModel(a)
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.RequestAttachment{}, err
	}
	return models.RequestAttachment(row), nil
}

func (r *Repository) ListRequestAttachments(ctx context.Context, requestID uuid.UUID) ([]models.RequestAttachment, error) {
	var rows []requestAttachmentModel
	if err := r.db.WithContext(ctx).Where("request_id = ?", requestID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	attachments := make([]models.RequestAttachment, 0, len(rows))
	for _, row := range rows {
		attachments = append(attachments, models.RequestAttachment(row))
	}
	return attachments, nil
}

func (r *Repository) DeleteRequestAttachment(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&requestAttachmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}

func (r *Repository) CreateActionAttachment(ctx context.Context, a models.ActionAttachment) (models.ActionAttachment, error) {
	row := actionAttachmentModel(a)
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	row.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.ActionAttachment{}, err
	}
	return models.ActionAttachment(row), nil
}

func (r *Repository) ListActionAttachments(ctx context.Context, actionID uuid.UUID) ([]models.ActionAttachment, error) {
	var rows []actionAttachmentModel
	if err := r.db.WithContext(ctx).Where("action_id = ?", actionID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	attachments := make([]models.ActionAttachment, 0, len(rows))
	for _, row := range rows {
		attachments = append(attachments, models.ActionAttachment(row))
	}
	return attachments, nil
}

func (r *Repository) DeleteActionAttachment(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&actionAttachmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAttachmentNotFound
	}
	return nil
}
