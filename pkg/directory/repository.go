package directory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"gorm.io/gorm"
)

var (
	ErrCenterNotFound       = errors.New("center not found")
	ErrOrganizationNotFound = errors.New("external organization not found")
	ErrContactNotFound      = errors.New("contact not found")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type centerModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"not null;uniqueIndex"`
	Code           string
	Address        string
	MunicipalityID *uuid.UUID `gorm:"type:uuid"`
	Phone          string
	Email          string
	IsActive       bool `gorm:"default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (centerModel) TableName() string { return "centers" }

type externalOrganizationModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"not null;index"`
	OrgType        string    `gorm:"index"`
	Address        string
	MunicipalityID *uuid.UUID `gorm:"type:uuid"`
	Phone          string
	Email          string
	Website        string
	IsActive       bool `gorm:"default:true"`
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (externalOrganizationModel) TableName() string { return "external_organizations" }

type contactModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;index"`
	Name           string    `gorm:"not null"`
	Position       string
	Department     string
	Phone          string
	Mobile         string
	Email          string
	IsPrimary      bool `gorm:"index"`
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (contactModel) TableName() string { return "contacts" }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&centerModel{}, &externalOrganizationModel{}, &contactModel{})
}

// --- Centers ---

func (r *Repository) SaveCenter(ctx context.Context, c models.Center) (models.Center, error) {
	row := centerModel(c)
	now := time.Now().UTC()
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
		row.CreatedAt = now
		row.UpdatedAt = now
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return models.Center{}, err
		}
		return models.Center(row), nil
	}

	var existing centerModel
	if err := r.db.WithContext(ctx).First(&existing, "id = ?", row.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Center{}, ErrCenterNotFound
		}
		return models.Center{}, err
	}
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = now
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return models.Center{}, err
	}
	return models.Center(row), nil
}

func (r *Repository) GetCenter(ctx context.Context, id uuid.UUID) (models.Center, error) {
	var row centerModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Center{}, ErrCenterNotFound
		}
		return models.Center{}, err
	}
	return models.Center(row), nil
}

func (r *Repository) ListCenters(ctx context.Context, includeInactive bool) ([]models.Center, error) {
	query := r.db.WithContext(ctx)
	if !includeInactive {
		query = query.Where("is_active")
	}
	var rows []centerModel
	if err := query.Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	centers := make([]models.Center, 0, len(rows))
	for _, row := range rows {
		centers = append(centers, models.Center(row))
	}
	return centers, nil
}

func (r *Repository) DeleteCenter(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&centerModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCenterNotFound
	}
	return nil
}

// --- External organizations ---

func (r *Repository) SaveOrganization(ctx context.Context, org models.ExternalOrganization) (models.ExternalOrganization, error) {
	row := externalOrganizationModel(org)
	now := time.Now().UTC()
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
		row.CreatedAt = now
		row.UpdatedAt = now
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return models.ExternalOrganization{}, err
		}
		return models.ExternalOrganization(row), nil
	}

	var existing externalOrganizationModel
	if err := r.db.WithContext(ctx).First(&existing, "id = ?", row.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ExternalOrganization{}, ErrOrganizationNotFound
		}
		return models.ExternalOrganization{}, err
	}
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = now
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return models.ExternalOrganization{}, err
	}
	return models.ExternalOrganization(row), nil
}

func (r *Repository) GetOrganization(ctx context.Context, id uuid.UUID) (models.ExternalOrganization, error) {
	var row externalOrganizationModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ExternalOrganization{}, ErrOrganizationNotFound
		}
		return models.ExternalOrganization{}, err
	}
	return models.ExternalOrganization(row), nil
}

func (r *Repository) ListOrganizations(ctx context.Context, orgType string, includeInactive bool) ([]models.ExternalOrganization, error) {
	query := r.db.WithContext(ctx)
	if !includeInactive {
		query = query.Where("is_active")
	}
	if orgType != "" {
		query = query.Where("org_type = ?", orgType)
	}
	var rows []externalOrganizationModel
	if err := query.Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}
	orgs := make([]models.ExternalOrganization, 0, len(rows))
	for _, row := range rows {
		orgs = append(orgs, models.ExternalOrganization(row))
	}
	return orgs, nil
}

// DeleteOrganization removes the organization and its contacts.
func (r *Repository) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&contactModel{}, "organization_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&externalOrganizationModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrOrganizationNotFound
		}
		return nil
	})
}

// --- Contacts ---

// SaveContact persists the contact and, when it is marked primary,
// demotes every other primary contact of the organization in the same
// transaction so exactly one remains.
func (r *Repository) SaveContact(ctx context.Context, c models.Contact) (models.Contact, error) {
	row := contactModel(c)
	now := time.Now().UTC()
	creating := row.ID == uuid.Nil
	if creating {
		row.ID = uuid.New()
		row.CreatedAt = now
	} else {
		var existing contactModel
		if err := r.db.WithContext(ctx).First(&existing, "id = ?", row.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Contact{}, ErrContactNotFound
			}
			return models.Contact{}, err
		}
		row.OrganizationID = existing.OrganizationID
		row.CreatedAt = existing.CreatedAt
	}
	row.UpdatedAt = now

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if row.IsPrimary {
			if err := tx.Model(&contactModel{}).
				Where("organization_id = ? AND id <> ? AND is_primary", row.OrganizationID, row.ID).
				UpdateColumn("is_primary", false).Error; err != nil {
				return err
			}
		}
		if creating {
			return tx.Create(&row).Error
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		return models.Contact{}, err
	}
	return models.Contact(row), nil
}

func (r *Repository) GetContact(ctx context.Context, id uuid.UUID) (models.Contact, error) {
	var row contactModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Contact{}, ErrContactNotFound
		}
		return models.Contact{}, err
	}
	return models.Contact(row), nil
}

func (r *Repository) ListContacts(ctx context.Context, organizationID uuid.UUID) ([]models.Contact, error) {
	var rows []contactModel
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("is_primary DESC, name").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	contacts := make([]models.Contact, 0, len(rows))
	for _, row := range rows {
		contacts = append(contacts, models.Contact(row))
	}
	return contacts, nil
}

func (r *Repository) DeleteContact(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&contactModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}
