package lookups

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("lookup entity not found")

// lookupColumns is the shared column set of every lookup table.
type lookupColumns struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;uniqueIndex"`
	NameEN    string
	Code      string
	IsActive  bool `gorm:"default:true"`
	SortOrder int
}

func toLookup(c lookupColumns) models.Lookup {
	return models.Lookup{
		ID:        c.ID,
		Name:      c.Name,
		NameEN:    c.NameEN,
		Code:      c.Code,
		IsActive:  c.IsActive,
		SortOrder: c.SortOrder,
	}
}

func fromLookup(l models.Lookup) lookupColumns {
	return lookupColumns{
		ID:        l.ID,
		Name:      l.Name,
		NameEN:    l.NameEN,
		Code:      l.Code,
		IsActive:  l.IsActive,
		SortOrder: l.SortOrder,
	}
}

type requestStatusModel struct {
	lookupColumns
	IsClosed       bool
	IsPending      bool
	RequiresAction bool
	ColorCode      string
}

func (requestStatusModel) TableName() string { return "request_statuses" }

type requestCategoryModel struct {
	lookupColumns
	Description string
}

func (requestCategoryModel) TableName() string { return "request_categories" }

type requestTypeModel struct {
	lookupColumns
	CategoryID            *uuid.UUID `gorm:"type:uuid;index"`
	Description           string
	RequiresDocuments     bool
	EstimatedDurationDays *int
	IsUrgent              bool
	PriorityLevel         int
}

func (requestTypeModel) TableName() string { return "request_types" }

type requestTagModel struct {
	ID                      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                    string    `gorm:"not null;uniqueIndex"`
	Category                string    `gorm:"not null;index"`
	Description             string
	IsActive                bool `gorm:"default:true"`
	EstimatedDurationDays   *int
	RequiresDocuments       bool
	RequiresExternalContact bool
}

func (requestTagModel) TableName() string { return "request_tags" }

type insuranceProviderModel struct {
	lookupColumns
	ProviderType string
	ContactPhone string
	ContactEmail string
	Website      string
}

func (insuranceProviderModel) TableName() string { return "insurance_providers" }

type employmentStatusModel struct {
	lookupColumns
	AffectsInsurance bool
	IsUnemployed     bool
	IsRetired        bool
}

func (employmentStatusModel) TableName() string { return "employment_statuses" }

type therapyTypeModel struct {
	lookupColumns
	TherapyCategory         string
	RequiresHospitalization bool
	TypicalDurationWeeks    *int
}

func (therapyTypeModel) TableName() string { return "therapy_types" }

type hospitalModel struct {
	lookupColumns
	HospitalType    string
	MunicipalityID  *uuid.UUID `gorm:"type:uuid;index"`
	Address         string
	Phone           string
	Website         string
	HasOncology     bool
	HasRadiotherapy bool
	HasChemotherapy bool
	HasSurgery      bool
}

func (hospitalModel) TableName() string { return "hospitals" }

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&requestStatusModel{},
		&requestCategoryModel{},
		&requestTypeModel{},
		&requestTagModel{},
		&insuranceProviderModel{},
		&employmentStatusModel{},
		&therapyTypeModel{},
		&hospitalModel{},
	)
}

// lookupQuery applies the shared ordering and active filter.
func lookupQuery(db *gorm.DB, includeInactive bool) *gorm.DB {
	if !includeInactive {
		db = db.Where("is_active")
	}
	return db.Order("sort_order, name")
}

// --- Request statuses ---

func (r *Repository) ListRequestStatuses(ctx context.Context, includeInactive bool) ([]models.RequestStatus, error) {
	var rows []requestStatusModel
	if err := lookupQuery(r.db.WithContext(ctx), includeInactive).Find(&rows).Error; err != nil {
		return nil, err
	}
	statuses := make([]models.RequestStatus, 0, len(rows))
	for _, row := range rows {
		statuses = append(statuses, mapRequestStatus(row))
	}
	return statuses, nil
}

func (r *Repository) GetRequestStatus(ctx context.Context, id uuid.UUID) (models.RequestStatus, error) {
	var row requestStatusModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return models.RequestStatus{}, mapLookupErr(err)
	}
	return mapRequestStatus(row), nil
}

func (r *Repository) SaveRequestStatus(ctx context.Context, status models.RequestStatus) (models.RequestStatus, error) {
	row := requestStatusModel{
		lookupColumns:  fromLookup(status.Lookup),
		IsClosed:       status.IsClosed,
		IsPending:      status.IsPending,
		RequiresAction: status.RequiresAction,
		ColorCode:      status.ColorCode,
	}
	if err := r.save(ctx, &row.ID, &row); err != nil {
		return models.RequestStatus{}, err
	}
	return mapRequestStatus(row), nil
}

func (r *Repository) DeleteRequestStatus(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, &requestStatusModel{}, id)
}

func (r *Repository) GetOrCreateRequestStatus(ctx context.Context, status models.RequestStatus) (models.RequestStatus, error) {
	var row requestStatusModel
	err := r.db.WithContext(ctx).First(&row, "name = ?", status.Name).Error
	if err == nil {
		return mapRequestStatus(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RequestStatus{}, err
	}
	return r.SaveRequestStatus(ctx, status)
}

func mapRequestStatus(row requestStatusModel) models.RequestStatus {
	return models.RequestStatus{
		Lookup:         toLookup(row.lookupColumns),
		IsClosed:       row.IsClosed,
		IsPending:      row.IsPending,
		RequiresAction: row.RequiresAction,
		ColorCode:      row.ColorCode,
	}
}

// --- Request categories ---

func (r *Repository) ListRequestCategories(ctx context.Context, includeInactive bool) ([]models.RequestCategory, error) {
	var rows []requestCategoryModel
	if err := lookupQuery(r.db.WithContext(ctx), includeInactive).Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]models.RequestCategory, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, models.RequestCategory{Lookup: toLookup(row.lookupColumns), Description: row.Description})
	}
	return categories, nil
}

func (r *Repository) SaveRequestCategory(ctx context.Context, category models.RequestCategory) (models.RequestCategory, error) {
	row := requestCategoryModel{lookupColumns: fromLookup(category.Lookup), Description: category.Description}
	if err := r.save(ctx, &row.ID, &row); err != nil {
		return models.RequestCategory{}, err
	}
	return models.RequestCategory{Lookup: toLookup(row.lookupColumns), Description: row.Description}, nil
}

func (r *Repository) DeleteRequestCategory(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, &requestCategoryModel{}, id)
}

func (r *Repository) GetOrCreateRequestCategory(ctx context.Context, category models.RequestCategory) (models.RequestCategory, error) {
	var row requestCategoryModel
	err := r.db.WithContext(ctx).First(&row, "name = ?", category.Name).Error
	if err == nil {
		return models.RequestCategory{Lookup: toLookup(row.lookupColumns), Description: row.Description}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RequestCategory{}, err
	}
	return r.SaveRequestCategory(ctx, category)
}

// --- Request types ---

func (r *Repository) ListRequestTypes(ctx context.Context, includeInactive bool) ([]models.RequestType, error) {
	var rows []requestTypeModel
	if err := lookupQuery(r.db.WithContext(ctx), includeInactive).Find(&rows).Error; err != nil {
		return nil, err
	}
	types := make([]models.RequestType, 0, len(rows))
	for _, row := range rows {
		types = append(types, mapRequestType(row))
	}
	return types, nil
}

func (r *Repository) GetRequestType(ctx context.Context, id uuid.UUID) (models.RequestType, error) {
	var row requestTypeModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return models.RequestType{}, mapLookupErr(err)
	}
	return mapRequestType(row), nil
}

func (r *Repository) SaveRequestType(ctx context.Context, requestType models.RequestType) (models.RequestType, error) {
	row := requestTypeModel{
		lookupColumns:         fromLookup(requestType.Lookup),
		CategoryID:            requestType.CategoryID,
		Description:           requestType.Description,
		RequiresDocuments:     requestType.RequiresDocuments,
		EstimatedDurationDays: requestType.EstimatedDurationDays,
		IsUrgent:              requestType.IsUrgent,
		PriorityLevel:         requestType.PriorityLevel,
	}
	if err := r.save(ctx, &row.ID, &row); err != nil {
		return models.RequestType{}, err
	}
	return mapRequestType(row), nil
}

func (r *Repository) DeleteRequestType(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, &requestTypeModel{}, id)
}

func (r *Repository) GetOrCreateRequestType(ctx context.Context, requestType models.RequestType) (models.RequestType, error) {
	var row requestTypeModel
	err := r.db.WithContext(ctx).First(&row, "name = ?", requestType.Name).Error
	if err == nil {
		return mapRequestType(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RequestType{}, err
	}
	return r.SaveRequestType(ctx, requestType)
}

func mapRequestType(row requestTypeModel) models.RequestType {
	return models.RequestType{
		Lookup:                toLookup(row.lookupColumns),
		CategoryID:            row.CategoryID,
		Description:           row.Description,
		RequiresDocuments:     row.RequiresDocuments,
		EstimatedDurationDays: row.EstimatedDurationDays,
		IsUrgent:              row.IsUrgent,
		PriorityLevel:         row.PriorityLevel,
	}
}

// --- Request tags ---

func (r *Repository) ListRequestTags(ctx context.Context, includeInactive bool) ([]models.RequestTag, error) {
	var rows []requestTagModel
	query := r.db.WithContext(ctx)
	if !includeInactive {
		query = query.Where("is_active")
	}
	if err := query.Order("category, name").Find(&rows).Error; err != nil {
		return nil, err
	}
	tags := make([]models.RequestTag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, models.RequestTag(row))
	}
	return tags, nil
}

func (r *Repository) GetRequestTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.RequestTag, error) {
	if len(ids) == 0 {
		return []models.RequestTag{}, nil
	}
	var rows []requestTagModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	tags := make([]models.RequestTag, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, models.RequestTag(row))
	}
	return tags, nil
}

func (r *Repository) SaveRequestTag(ctx context.Context, tag models.RequestTag) (models.RequestTag, error) {
	row := requestTagModel(tag)
	if err := r.save(ctx, &row.ID, &row); err != nil {
		return models.RequestTag{}, err
	}
	return models.RequestTag(row), nil
}

func (r *Repository) DeleteRequestTag(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, &requestTagModel{}, id)
}

func (r *Repository) GetOrCreateRequestTag(ctx context.Context, tag models.RequestTag) (models.RequestTag, error) {
	var row requestTagModel
	err := r.db.WithContext(ctx).First(&row, "name = ?", tag.Name).Error
	if err == nil {
		return models.RequestTag(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RequestTag{}, err
	}
	return r.SaveRequestTag(ctx, tag)
}

// --- Insurance providers ---

func (r *Repository) ListInsuranceProviders(ctx context.Context, includeInactive bool) ([]models.InsuranceProvider, error) {
	var rows []insuranceProviderModel
	if err := lookupQuery(r.db.WithContext(ctx), includeInactive).Find(&rows).Error; err != nil {
		return nil, err
	}
	providers := make([]models.InsuranceProvider, 0, len(rows))
	for _, row := range rows {
		providers = append(providers, mapInsuranceProvider(row))
	}
	return providers, nil
}

func (r *Repository) SaveInsuranceProvider(ctx context.Context, provider models.InsuranceProvider) (models.InsuranceProvider, error) {
	row := insuranceProviderModel{
		lookupColumns: fromLookup(provider.Lookup),
		ProviderType:  provider.ProviderType,
		ContactPhone:  provider.ContactPhone,
		ContactEmail:  provider.ContactEmail,
		Website:       provider.Website,
	}
	if err := r.save(ctx, &row.ID, &row); err != nil {
		return models.InsuranceProvider{}, err
	}
	return mapInsuranceProvider(row), nil
}

func (r *Repository) DeleteInsuranceProvider(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, &insuranceProviderModel{}, id)
}

func (r *Repository) GetOrCreateInsuranceProvider(ctx context.Context, provider models.InsuranceProvider) (models.InsuranceProvider, error) {
	var row insuranceProviderModel
	err := r.db.WithContext(ctx).First(&row, "name = ?", provider.Name).Error
	if err == nil {
		return mapInsuranceProvider(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.InsuranceProvider{}, err
	}
	return r.SaveInsuranceProvider(ctx, provider)
}

func mapInsuranceProvider(row insuranceProviderModel) models.InsuranceProvider {
	return models.InsuranceProvider{
		Lookup:       toLookup(row.lookupColumns),
		ProviderType: row.ProviderType,
		ContactPhone: row.ContactPhone,
		ContactEmail: row.ContactEmail,
		Website:      row.Website,
	}
}

// --- Employment statuses ---

func (r *Repository) ListEmploymentStatuses(ctx context.Context, includeInactive bool) ([]models.EmploymentStatus, error) {
	var rows []employmentStatusModel
	if err := lookupQuery(r.db.WithContext(ctx), includeInactive).Find(&rows).Error; err != nil {
		return nil, err
	}
	statuses := make([]models.EmploymentStatus, 0, len(rows))
	for _, row := range rows {
		statuses = append(statuses, mapEmploymentStatus(row))
	}
	return statuses, nil
}

func (r *Repository) SaveEmploymentStatus(ctx context.Context, status models.EmploymentStatus) (models.EmploymentStatus, error) {
	row := employmentStatusModel{
		lookupColumns:    fromLookup(status.Lookup),
		AffectsInsurance: status.AffectsInsurance,
		IsUnemployed:     status.IsUnemployed,
		IsRetired:        status.IsRetired,
	}
	if err := r.save(ctx, &row.ID, &row); err != nil {
		return models.EmploymentStatus{}, err
	}
	return mapEmploymentStatus(row), nil
}

func (r *Repository) DeleteEmploymentStatus(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, &employmentStatusModel{}, id)
}

func (r *Repository) GetOrCreateEmploymentStatus(ctx context.Context, status models.EmploymentStatus) (models.EmploymentStatus, error) {
	var row employmentStatusModel
	err := r.db.WithContext(ctx).First(&row, "name = ?", status.Name).Error
	if err == nil {
		return mapEmploymentStatus(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.EmploymentStatus{}, err
	}
	return r.SaveEmploymentStatus(ctx, status)
}

func mapEmploymentStatus(row employmentStatusModel) models.EmploymentStatus {
	return models.EmploymentStatus{
		Lookup:           toLookup(row.lookupColumns),
		AffectsInsurance: row.AffectsInsurance,
		IsUnemployed:     row.IsUnemployed,
		IsRetired:        row.IsRetired,
	}
}

// --- Therapy types ---

func (r *Repository) ListTherapyTypes(ctx context.Context, includeInactive bool) ([]models.TherapyTypeLookup, error) {
	var rows []therapyTypeModel
	if err := lookupQuery(r.db.WithContext(ctx), includeInactive).Find(&rows).Error; err != nil {
		return nil, err
	}
	types := make([]models.TherapyTypeLookup, 0, len(rows))
	for _, row := range rows {
		types = append(types, mapTherapyType(row))
	}
	return types, nil
}

func (r *Repository) SaveTherapyType(ctx context.Context, therapyType models.TherapyTypeLookup) (models.TherapyTypeLookup, error) {
	row := therapyTypeModel{
		lookupColumns:           fromLookup(therapyType.Lookup),
		TherapyCategory:         therapyType.TherapyCategory,
		RequiresHospitalization: therapyType.RequiresHospitalization,
		TypicalDurationWeeks:    therapyType.TypicalDurationWeeks,
	}
	if err := r.save(ctx, &row.ID, &row); err != nil {
		return models.TherapyTypeLookup{}, err
	}
	return mapTherapyType(row), nil
}

func (r *Repository) DeleteTherapyType(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, &therapyTypeModel{}, id)
}

func (r *Repository) GetOrCreateTherapyType(ctx context.Context, therapyType models.TherapyTypeLookup) (models.TherapyTypeLookup, error) {
	var row therapyTypeModel
	err := r.db.WithContext(ctx).First(&row, "name = ?", therapyType.Name).Error
	if err == nil {
		return mapTherapyType(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.TherapyTypeLookup{}, err
	}
	return r.SaveTherapyType(ctx, therapyType)
}

func mapTherapyType(row therapyTypeModel) models.TherapyTypeLookup {
	return models.TherapyTypeLookup{
		Lookup:                  toLookup(row.lookupColumns),
		TherapyCategory:         row.TherapyCategory,
		RequiresHospitalization: row.RequiresHospitalization,
		TypicalDurationWeeks:    row.TypicalDurationWeeks,
	}
}

// --- Hospitals ---

func (r *Repository) ListHospitals(ctx context.Context, includeInactive bool) ([]models.Hospital, error) {
	var rows []hospitalModel
	if err := lookupQuery(r.db.WithContext(ctx), includeInactive).Find(&rows).Error; err != nil {
		return nil, err
	}
	hospitals := make([]models.Hospital, 0, len(rows))
	for _, row := range rows {
		hospitals = append(hospitals, mapHospital(row))
	}
	return hospitals, nil
}

func (r *Repository) SaveHospital(ctx context.Context, hospital models.Hospital) (models.Hospital, error) {
	row := hospitalModel{
		lookupColumns:   fromLookup(hospital.Lookup),
		HospitalType:    hospital.HospitalType,
		MunicipalityID:  hospital.MunicipalityID,
		Address:         hospital.Address,
		Phone:           hospital.Phone,
		Website:         hospital.Website,
		HasOncology:     hospital.HasOncology,
		HasRadiotherapy: hospital.HasRadiotherapy,
		HasChemotherapy: hospital.HasChemotherapy,
		HasSurgery:      hospital.HasSurgery,
	}
	if err := r.save(ctx, &row.ID, &row); err != nil {
		return models.Hospital{}, err
	}
	return mapHospital(row), nil
}

func (r *Repository) DeleteHospital(ctx context.Context, id uuid.UUID) error {
	return r.delete(ctx, &hospitalModel{}, id)
}

func (r *Repository) GetOrCreateHospital(ctx context.Context, hospital models.Hospital) (models.Hospital, error) {
	var row hospitalModel
	err := r.db.WithContext(ctx).First(&row, "name = ?", hospital.Name).Error
	if err == nil {
		return mapHospital(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Hospital{}, err
	}
	return r.SaveHospital(ctx, hospital)
}

func mapHospital(row hospitalModel) models.Hospital {
	return models.Hospital{
		Lookup:          toLookup(row.lookupColumns),
		HospitalType:    row.HospitalType,
		MunicipalityID:  row.MunicipalityID,
		Address:         row.Address,
		Phone:           row.Phone,
		Website:         row.Website,
		HasOncology:     row.HasOncology,
		HasRadiotherapy: row.HasRadiotherapy,
		HasChemotherapy: row.HasChemotherapy,
		HasSurgery:      row.HasSurgery,
	}
}

// --- shared plumbing ---

// save creates when the row has no ID yet, otherwise replaces the row.
func (r *Repository) save(ctx context.Context, id *uuid.UUID, row interface{}) error {
	if *id == uuid.Nil {
		*id = uuid.New()
		return r.db.WithContext(ctx).Create(row).Error
	}
	result := r.db.WithContext(ctx).Save(row)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

func (r *Repository) delete(ctx context.Context, model interface{}, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func mapLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
