package person

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/database"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/validation"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("person not found")
	ErrContactNotFound = errors.New("contact person not found")
)

const registrationRetries = 3

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type personModel struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	LastName   string `gorm:"index:idx_people_name"`
	FirstName  string `gorm:"index:idx_people_name"`
	FatherName string
	MotherName string

	BirthYear     *int
	Gender        string
	MaritalStatus string

	ChildrenCount     int
	Minors            int
	Students          int
	NoMilitaryService int

	Nationality string
	Citizenship string

	VAT    *string `gorm:"column:vat;uniqueIndex:uniq_people_vat"`
	AMKA   *string `gorm:"column:amka;uniqueIndex:uniq_people_amka"`
	IDCard *string `gorm:"uniqueIndex:uniq_people_id_card"`

	Landline string
	Mobile   string
	Email    string

	Address        string
	City           string
	PostalCode     string
	MunicipalityID *uuid.UUID `gorm:"type:uuid"`
	RegionalUnitID *uuid.UUID `gorm:"type:uuid"`
	RegionID       *uuid.UUID `gorm:"type:uuid"`

	WeightKg *float64
	HeightM  *float64

	CenterID           *uuid.UUID `gorm:"type:uuid;index"`
	RegistrationNumber int        `gorm:"uniqueIndex:uniq_people_registration_number"`
	KnowledgeSource    string

	InsuranceStatus     string
	InsuranceProviderID *uuid.UUID `gorm:"type:uuid"`
	SpecialFunds        string
	WidowPension        bool
	DisabilityPension   bool

	EmploymentStatusID           *uuid.UUID `gorm:"type:uuid"`
	UnemploymentCard             bool
	UnemploymentRegistrationDate *time.Time
	Profession                   string
	Specialization               string
	EmploymentType               string
	EmployerName                 string
	EmployerLegalForm            string
	HireDate                     *time.Time
	WorkSchedule                 string
	ContractType                 string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (personModel) TableName() string { return "people" }

type contactPersonModel struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PersonID uuid.UUID `gorm:"type:uuid;index"`

	LastName  string
	FirstName string
	Relation  string

	Landline string
	Mobile   string
	Email    string

	Address        string
	City           string
	PostalCode     string
	MunicipalityID *uuid.UUID `gorm:"type:uuid"`

	IsPrimary bool `gorm:"index"`
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (contactPersonModel) TableName() string { return "contact_people" }

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&personModel{}, &contactPersonModel{})
}

// Create persists a new beneficiary. A missing registration number is
// allocated as max+1 inside the insert transaction; the unique index
// backs it up, and an allocation that loses the race is retried with a
// fresh number.
func (r *Repository) Create(ctx context.Context, p models.Person) (models.Person, error) {
	m := toPersonModel(p)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	autoNumber := m.RegistrationNumber == 0
	var err error
	for attempt := 0; attempt < registrationRetries; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if m.RegistrationNumber == 0 {
				var max int
				if scanErr := tx.Model(&personModel{}).
					Select("COALESCE(MAX(registration_number), 0)").
					Scan(&max).Error; scanErr != nil {
					return scanErr
				}
				m.RegistrationNumber = max + 1
			}
			return tx.Create(&m).Error
		})
		if err == nil {
			return mapPersonModel(m), nil
		}
		if field, ok := database.ConflictField(err, "vat", "amka", "id_card", "registration_number"); ok {
			if field == "registration_number" && autoNumber {
				m.RegistrationNumber = 0
				continue
			}
			return models.Person{}, validation.Conflict(field, "value already registered")
		}
		return models.Person{}, err
	}
	return models.Person{}, err
}

func (r *Repository) Update(ctx context.Context, p models.Person) (models.Person, error) {
	existing, err := r.getModel(ctx, p.ID)
	if err != nil {
		return models.Person{}, err
	}

	m := toPersonModel(p)
	m.RegistrationNumber = existing.RegistrationNumber
	if p.RegistrationNumber != 0 {
		m.RegistrationNumber = p.RegistrationNumber
	}
	m.CreatedAt = existing.CreatedAt
	m.UpdatedAt = time.Now().UTC()

	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		if field, ok := database.ConflictField(err, "vat", "amka", "id_card", "registration_number"); ok {
			return models.Person{}, validation.Conflict(field, "value already registered")
		}
		return models.Person{}, err
	}
	return mapPersonModel(m), nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (models.Person, error) {
	m, err := r.getModel(ctx, id)
	if err != nil {
		return models.Person{}, err
	}
	return mapPersonModel(m), nil
}

func (r *Repository) getModel(ctx context.Context, id uuid.UUID) (personModel, error) {
	var m personModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return personModel{}, ErrNotFound
	}
	return m, err
}

func (r *Repository) List(ctx context.Context, search string, limit int) ([]models.Person, error) {
	if limit <= 0 {
		limit = 50
	}
	query := r.db.WithContext(ctx).Model(&personModel{}).
		Order("last_name, first_name").
		Limit(limit)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(
			"last_name LIKE ? OR first_name LIKE ? OR amka LIKE ? OR vat LIKE ?",
			pattern, pattern, pattern, pattern,
		)
	}

	var rows []personModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]models.Person, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPersonModel(row))
	}
	return out, nil
}

// Delete removes the beneficiary and every owned record: contacts,
// medical cluster, requests with their actions and attachments, and
// documents. All of it happens in one transaction.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m personModel
		if err := tx.Where("id = ?", id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		statements := []string{
			"DELETE FROM contact_people WHERE person_id = ?",
			"DELETE FROM therapies WHERE neoplasm_id IN (SELECT id FROM neoplasms WHERE person_id = ?)",
			"DELETE FROM neoplasms WHERE person_id = ?",
			"DELETE FROM medical_histories WHERE person_id = ?",
			"DELETE FROM comorbidities WHERE person_id = ?",
			"DELETE FROM action_attachments WHERE action_id IN (SELECT id FROM actions WHERE person_id = ?)",
			"DELETE FROM actions WHERE person_id = ?",
			"DELETE FROM request_attachments WHERE request_id IN (SELECT id FROM requests WHERE person_id = ?)",
			"DELETE FROM request_tag_assignments WHERE request_id IN (SELECT id FROM requests WHERE person_id = ?)",
			"DELETE FROM requests WHERE person_id = ?",
			"DELETE FROM documents WHERE person_id = ?",
		}
		for _, stmt := range statements {
			if err := tx.Exec(stmt, id).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&m).Error
	})
}

// SaveContact persists a contact person. When the contact is flagged
// primary, every other primary for the same beneficiary is cleared in
// the same transaction so concurrent writers cannot leave two primaries.
func (r *Repository) SaveContact(ctx context.Context, c models.ContactPerson) (models.ContactPerson, error) {
	m := toContactModel(c)
	isNew := m.ID == uuid.Nil
	if isNew {
		m.ID = uuid.New()
		m.CreatedAt = time.Now().UTC()
	} else {
		var existing contactPersonModel
		err := r.db.WithContext(ctx).Where("id = ?", m.ID).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ContactPerson{}, ErrContactNotFound
		}
		if err != nil {
			return models.ContactPerson{}, err
		}
		m.CreatedAt = existing.CreatedAt
	}
	m.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if m.IsPrimary {
			if err := tx.Model(&contactPersonModel{}).
				Where("person_id = ? AND id <> ?", m.PersonID, m.ID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(&m).Error
	})
	if err != nil {
		return models.ContactPerson{}, err
	}
	return mapContactModel(m), nil
}

func (r *Repository) ListContacts(ctx context.Context, personID uuid.UUID) ([]models.ContactPerson, error) {
	var rows []contactPersonModel
	err := r.db.WithContext(ctx).
		Where("person_id = ?", personID).
		Order("is_primary DESC, last_name, first_name").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]models.ContactPerson, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapContactModel(row))
	}
	return out, nil
}

func (r *Repository) GetContact(ctx context.Context, id uuid.UUID) (models.ContactPerson, error) {
	var m contactPersonModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ContactPerson{}, ErrContactNotFound
	}
	if err != nil {
		return models.ContactPerson{}, err
	}
	return mapContactModel(m), nil
}

func (r *Repository) DeleteContact(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&contactPersonModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactNotFound
	}
	return nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toPersonModel(p models.Person) personModel {
	return personModel{
		ID:                           p.ID,
		LastName:                     p.LastName,
		FirstName:                    p.FirstName,
		FatherName:                   p.FatherName,
		MotherName:                   p.MotherName,
		BirthYear:                    p.BirthYear,
		Gender:                       p.Gender,
		MaritalStatus:                p.MaritalStatus,
		ChildrenCount:                p.ChildrenCount,
		Minors:                       p.Minors,
		Students:                     p.Students,
		NoMilitaryService:            p.NoMilitaryService,
		Nationality:                  p.Nationality,
		Citizenship:                  p.Citizenship,
		VAT:                          optionalString(p.VAT),
		AMKA:                         optionalString(p.AMKA),
		IDCard:                       optionalString(p.IDCard),
		Landline:                     p.Landline,
		Mobile:                       p.Mobile,
		Email:                        p.Email,
		Address:                      p.Address,
		City:                         p.City,
		PostalCode:                   p.PostalCode,
		MunicipalityID:               p.MunicipalityID,
		RegionalUnitID:               p.RegionalUnitID,
		RegionID:                     p.RegionID,
		WeightKg:                     p.WeightKg,
		HeightM:                      p.HeightM,
		CenterID:                     p.CenterID,
		RegistrationNumber:           p.RegistrationNumber,
		KnowledgeSource:              p.KnowledgeSource,
		InsuranceStatus:              p.InsuranceStatus,
		InsuranceProviderID:          p.InsuranceProviderID,
		SpecialFunds:                 p.SpecialFunds,
		WidowPension:                 p.WidowPension,
		DisabilityPension:            p.DisabilityPension,
		EmploymentStatusID:           p.EmploymentStatusID,
		UnemploymentCard:             p.UnemploymentCard,
		UnemploymentRegistrationDate: p.UnemploymentRegistrationDate,
		Profession:                   p.Profession,
		Specialization:               p.Specialization,
		EmploymentType:               p.EmploymentType,
		EmployerName:                 p.EmployerName,
		EmployerLegalForm:            p.EmployerLegalForm,
		HireDate:                     p.HireDate,
		WorkSchedule:                 p.WorkSchedule,
		ContractType:                 p.ContractType,
		CreatedAt:                    p.CreatedAt,
		UpdatedAt:                    p.UpdatedAt,
	}
}

func mapPersonModel(m personModel) models.Person {
	return models.Person{
		ID:                           m.ID,
		LastName:                     m.LastName,
		FirstName:                    m.FirstName,
		FatherName:                   m.FatherName,
		MotherName:                   m.MotherName,
		BirthYear:                    m.BirthYear,
		Gender:                       m.Gender,
		MaritalStatus:                m.MaritalStatus,
		ChildrenCount:                m.ChildrenCount,
		Minors:                       m.Minors,
		Students:                     m.Students,
		NoMilitaryService:            m.NoMilitaryService,
		Nationality:                  m.Nationality,
		Citizenship:                  m.Citizenship,
		VAT:                          stringValue(m.VAT),
		AMKA:                         stringValue(m.AMKA),
		IDCard:                       stringValue(m.IDCard),
		Landline:                     m.Landline,
		Mobile:                       m.Mobile,
		Email:                        m.Email,
		Address:                      m.Address,
		City:                         m.City,
		PostalCode:                   m.PostalCode,
		MunicipalityID:               m.MunicipalityID,
		RegionalUnitID:               m.RegionalUnitID,
		RegionID:                     m.RegionID,
		WeightKg:                     m.WeightKg,
		HeightM:                      m.HeightM,
		CenterID:                     m.CenterID,
		RegistrationNumber:           m.RegistrationNumber,
		KnowledgeSource:              m.KnowledgeSource,
		InsuranceStatus:              m.InsuranceStatus,
		InsuranceProviderID:          m.InsuranceProviderID,
		SpecialFunds:                 m.SpecialFunds,
		WidowPension:                 m.WidowPension,
		DisabilityPension:            m.DisabilityPension,
		EmploymentStatusID:           m.EmploymentStatusID,
		UnemploymentCard:             m.UnemploymentCard,
		UnemploymentRegistrationDate: m.UnemploymentRegistrationDate,
		Profession:                   m.Profession,
		Specialization:               m.Specialization,
		EmploymentType:               m.EmploymentType,
		EmployerName:                 m.EmployerName,
		EmployerLegalForm:            m.EmployerLegalForm,
		HireDate:                     m.HireDate,
		WorkSchedule:                 m.WorkSchedule,
		ContractType:                 m.ContractType,
		CreatedAt:                    m.CreatedAt,
		UpdatedAt:                    m.UpdatedAt,
	}
}

func toContactModel(c models.ContactPerson) contactPersonModel {
	return contactPersonModel{
		ID:             c.ID,
		PersonID:       c.PersonID,
		LastName:       c.LastName,
		FirstName:      c.FirstName,
		Relation:       c.Relation,
		Landline:       c.Landline,
		Mobile:         c.Mobile,
		Email:          c.Email,
		Address:        c.Address,
		City:           c.City,
		PostalCode:     c.PostalCode,
		MunicipalityID: c.MunicipalityID,
		IsPrimary:      c.IsPrimary,
		Notes:          c.Notes,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func mapContactModel(m contactPersonModel) models.ContactPerson {
	return models.ContactPerson{
		ID:             m.ID,
		PersonID:       m.PersonID,
		LastName:       m.LastName,
		FirstName:      m.FirstName,
		Relation:       m.Relation,
		Landline:       m.Landline,
		Mobile:         m.Mobile,
		Email:          m.Email,
		Address:        m.Address,
		City:           m.City,
		PostalCode:     m.PostalCode,
		MunicipalityID: m.MunicipalityID,
		IsPrimary:      m.IsPrimary,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}
