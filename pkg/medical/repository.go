package medical

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/database"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrHistoryNotFound     = errors.New("medical history not found")
	ErrNeoplasmNotFound    = errors.New("neoplasm not found")
	ErrTherapyNotFound     = errors.New("therapy not found")
	ErrComorbidityNotFound = errors.New("comorbidity not found")
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type medicalHistoryModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PersonID uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	Disability           bool
	CertifiedDisability  bool
	DisabilityPercentage *int

	KepaCheck  bool `gorm:"index"`
	KepaExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (medicalHistoryModel) TableName() string { return "medical_histories" }

type neoplasmModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PersonID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uniq_neoplasm_person_category_code"`

	ICD10CategoryID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:uniq_neoplasm_person_category_code"`
	ICD10SubcategoryID *uuid.UUID `gorm:"type:uuid"`
	ICD10CodeID        uuid.UUID  `gorm:"type:uuid;uniqueIndex:uniq_neoplasm_person_category_code"`

	Localization       string
	Metastasis         bool
	Surgery            bool
	SurgeryHospital    string
	ScheduledTreatment string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (neoplasmModel) TableName() string { return "neoplasms" }

type therapyModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	NeoplasmID   uuid.UUID `gorm:"type:uuid;index"`
	TherapyType  string    `gorm:"not null"`
	HospitalName string
	StartDate    *time.Time
	Notes        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (therapyModel) TableName() string { return "therapies" }

type comorbidityModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PersonID uuid.UUID `gorm:"type:uuid;uniqueIndex"`

	ArterialDisease       bool
	CardiovascularDisease bool
	COPD                  bool
	Diabetes              bool
	PsychiatricDisorder   bool
	MobilityIssues        bool
	Nephropathy           bool

	OtherConditions string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (comorbidityModel) TableName() string { return "comorbidities" }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&medicalHistoryModel{}, &neoplasmModel{}, &therapyModel{}, &comorbidityModel{})
}

// --- Medical history (one per person) ---

func (r *Repository) UpsertHistory(ctx context.Context, h models.MedicalHistory) (models.MedicalHistory, error) {
	var row medicalHistoryModel
	err := r.db.WithContext(ctx).First(&row, "person_id = ?", h.PersonID).Error
	now := time.Now().UTC()
	switch {
	case err == nil:
		row.Disability = h.Disability
		row.CertifiedDisability = h.CertifiedDisability
		row.DisabilityPercentage = h.DisabilityPercentage
		row.KepaCheck = h.KepaCheck
		row.KepaExpiry = h.KepaExpiry
		row.UpdatedAt = now
		if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
			return models.MedicalHistory{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = medicalHistoryModel{
			ID:                   uuid.New(),
			PersonID:             h.PersonID,
			Disability:           h.Disability,
			CertifiedDisability:  h.CertifiedDisability,
			DisabilityPercentage: h.DisabilityPercentage,
			KepaCheck:            h.KepaCheck,
			KepaExpiry:           h.KepaExpiry,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return models.MedicalHistory{}, err
		}
	default:
		return models.MedicalHistory{}, err
	}
	return models.MedicalHistory(row), nil
}

func (r *Repository) GetHistoryByPerson(ctx context.Context, personID uuid.UUID) (models.MedicalHistory, error) {
	var row medicalHistoryModel
	if err := r.db.WithContext(ctx).First(&row, "person_id = ?", personID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.MedicalHistory{}, ErrHistoryNotFound
		}
		return models.MedicalHistory{}, err
	}
	return models.MedicalHistory(row), nil
}

// --- Neoplasms ---

// CreateNeoplasm enforces the per-category cap inside the insert
// transaction: the count query locks the person's existing rows in the
// category so two concurrent inserts cannot both observe room under the
// cap.
func (r *Repository) CreateNeoplasm(ctx context.Context, n models.Neoplasm) (models.Neoplasm, error) {
	row := neoplasmModel(n)
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if row.ICD10CategoryID != nil {
			siblings, err := lockCategorySiblings(tx, row.PersonID, *row.ICD10CategoryID, row.ID)
			if err != nil {
				return err
			}
			if err := checkCategoryCap(siblings); err != nil {
				return err
			}
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		if _, ok := database.ConflictField(err, "person_category_code"); ok {
			return models.Neoplasm{}, validation.Conflict("icd10_code_id", "neoplasm with this category and code already recorded")
		}
		return models.Neoplasm{}, err
	}
	return models.Neoplasm(row), nil
}

// UpdateNeoplasm re-checks the per-category cap when the update moves
// the neoplasm into a different category, under the same row lock as
// CreateNeoplasm.
func (r *Repository) UpdateNeoplasm(ctx context.Context, n models.Neoplasm) (models.Neoplasm, error) {
	var row neoplasmModel
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing neoplasmModel
		if err := tx.First(&existing, "id = ?", n.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNeoplasmNotFound
			}
			return err
		}

		row = neoplasmModel(n)
		row.PersonID = existing.PersonID
		row.CreatedAt = existing.CreatedAt
		row.UpdatedAt = time.Now().UTC()

		if categoryChanged(existing.ICD10CategoryID, row.ICD10CategoryID) {
			siblings, err := lockCategorySiblings(tx, row.PersonID, *row.ICD10CategoryID, row.ID)
			if err != nil {
				return err
			}
			if err := checkCategoryCap(siblings); err != nil {
				return err
			}
		}
		return tx.Save(&row).Error
	})
	if err != nil {
		if _, ok := database.ConflictField(err, "person_category_code"); ok {
			return models.Neoplasm{}, validation.Conflict("icd10_code_id", "neoplasm with this category and code already recorded")
		}
		return models.Neoplasm{}, err
	}
	return models.Neoplasm(row), nil
}

// lockCategorySiblings counts the person's other neoplasms in the target
// category, locking them so concurrent saves cannot both observe room
// under the cap.
func lockCategorySiblings(tx *gorm.DB, personID, categoryID, selfID uuid.UUID) (int, error) {
	var siblings []neoplasmModel
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("person_id = ? AND icd10_category_id = ? AND id <> ?", personID, categoryID, selfID).
		Find(&siblings).Error
	if err != nil {
		return 0, err
	}
	return len(siblings), nil
}

func (r *Repository) GetNeoplasm(ctx context.Context, id uuid.UUID) (models.Neoplasm, error) {
	var row neoplasmModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Neoplasm{}, ErrNeoplasmNotFound
		}
		return models.Neoplasm{}, err
	}
	return models.Neoplasm(row), nil
}

func (r *Repository) ListNeoplasms(ctx context.Context, personID uuid.UUID) ([]models.Neoplasm, error) {
	var rows []neoplasmModel
	if err := r.db.WithContext(ctx).Where("person_id = ?", personID).Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	neoplasms := make([]models.Neoplasm, 0, len(rows))
	for _, row := range rows {
		neoplasms = append(neoplasms, models.Neoplasm(row))
	}
	return neoplasms, nil
}

// DeleteNeoplasm removes the neoplasm together with its therapies.
func (r *Repository) DeleteNeoplasm(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&therapyModel{}, "neoplasm_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&neoplasmModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNeoplasmNotFound
		}
		return nil
	})
}

// --- Therapies ---

func (r *Repository) CreateTherapy(ctx context.Context, t models.Therapy) (models.Therapy, error) {
	var neoplasm neoplasmModel
	if err := r.db.WithContext(ctx).First(&neoplasm, "id = ?", t.NeoplasmID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Therapy{}, ErrNeoplasmNotFound
		}
		return models.Therapy{}, err
	}

	row := therapyModel(t)
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	row.CreatedAt = now
	row.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Therapy{}, err
	}
	return models.Therapy(row), nil
}

func (r *Repository) UpdateTherapy(ctx context.Context, t models.Therapy) (models.Therapy, error) {
	var existing therapyModel
	if err := r.db.WithContext(ctx).First(&existing, "id = ?", t.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Therapy{}, ErrTherapyNotFound
		}
		return models.Therapy{}, err
	}

	row := therapyModel(t)
	row.NeoplasmID = existing.NeoplasmID
	row.CreatedAt = existing.CreatedAt
	row.UpdatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
		return models.Therapy{}, err
	}
	return models.Therapy(row), nil
}

func (r *Repository) GetTherapy(ctx context.Context, id uuid.UUID) (models.Therapy, error) {
	var row therapyModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Therapy{}, ErrTherapyNotFound
		}
		return models.Therapy{}, err
	}
	return models.Therapy(row), nil
}

func (r *Repository) ListTherapies(ctx context.Context, neoplasmID uuid.UUID) ([]models.Therapy, error) {
	var rows []therapyModel
	if err := r.db.WithContext(ctx).Where("neoplasm_id = ?", neoplasmID).Order("start_date NULLS LAST, created_at").Find(&rows).Error; err != nil {
		return nil, err
	}
	therapies := make([]models.Therapy, 0, len(rows))
	for _, row := range rows {
		therapies = append(therapies, models.Therapy(row))
	}
	return therapies, nil
}

func (r *Repository) DeleteTherapy(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&therapyModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTherapyNotFound
	}
	return nil
}

// --- Comorbidities ---

func (r *Repository) UpsertComorbidity(ctx context.Context, c models.Comorbidity) (models.Comorbidity, error) {
	var row comorbidityModel
	err := r.db.WithContext(ctx).First(&row, "person_id = ?", c.PersonID).Error
	now := time.Now().UTC()
	switch {
	case err == nil:
		id, createdAt := row.ID, row.CreatedAt
		row = comorbidityModel(c)
		row.ID = id
		row.CreatedAt = createdAt
		row.UpdatedAt = now
		if err := r.db.WithContext(ctx).Save(&row).Error; err != nil {
			return models.Comorbidity{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = comorbidityModel(c)
		row.ID = uuid.New()
		row.CreatedAt = now
		row.UpdatedAt = now
		if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
			return models.Comorbidity{}, err
		}
	default:
		return models.Comorbidity{}, err
	}
	return models.Comorbidity(row), nil
}

func (r *Repository) GetComorbidityByPerson(ctx context.Context, personID uuid.UUID) (models.Comorbidity, error) {
	var row comorbidityModel
	if err := r.db.WithContext(ctx).First(&row, "person_id = ?", personID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Comorbidity{}, ErrComorbidityNotFound
		}
		return models.Comorbidity{}, err
	}
	return models.Comorbidity(row), nil
}

// kepaRow joins a KEPA-checked medical history with its person for the
// expiry report.
type kepaRow struct {
	PersonID           uuid.UUID
	RegistrationNumber int
	LastName           string
	FirstName          string
	AMKA               *string
	Mobile             string
	KepaExpiry         *time.Time
}

func (r *Repository) ListKepaRows(ctx context.Context) ([]kepaRow, error) {
	var rows []kepaRow
	err := r.db.WithContext(ctx).
		Table("medical_histories").
		Select(`people.id AS person_id,
			people.registration_number,
			people.last_name,
			people.first_name,
			people.amka,
			people.mobile,
			medical_histories.kepa_expiry`).
		Joins("JOIN people ON people.id = medical_histories.person_id").
		Where("medical_histories.kepa_check").
		Order("medical_histories.kepa_expiry NULLS FIRST").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
