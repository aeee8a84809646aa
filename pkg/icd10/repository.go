package icd10

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("icd10 entity not found")

type categoryModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CodeRange       string    `gorm:"not null;uniqueIndex"`
	Name            string    `gorm:"not null"`
	NameEN          string
	Description     string
	IsCancerRelated bool
	SortOrder       int
}

func (categoryModel) TableName() string { return "icd10_categories" }

type subcategoryModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID     uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_subcategory_category_name"`
	Name           string    `gorm:"not null;uniqueIndex:idx_subcategory_category_name"`
	Description    string
	CodeRangeStart string
	CodeRangeEnd   string
	SortOrder      int
}

func (subcategoryModel) TableName() string { return "icd10_subcategories" }

type codeModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code          string    `gorm:"not null;uniqueIndex"`
	Label         string    `gorm:"not null"`
	CategoryID    uuid.UUID `gorm:"type:uuid;not null;index"`
	SubcategoryID *uuid.UUID `gorm:"type:uuid;index"`
	IsActive      bool
	IsCommon      bool
	Notes         string
}

func (codeModel) TableName() string { return "icd10_codes" }

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&categoryModel{}, &subcategoryModel{}, &codeModel{})
}

func (r *Repository) ListCategories(ctx context.Context) ([]models.ICD10Category, error) {
	var rows []categoryModel
	if err := r.db.WithContext(ctx).Order("sort_order, code_range").Find(&rows).Error; err != nil {
		return nil, err
	}
	categories := make([]models.ICD10Category, 0, len(rows))
	for _, row := range rows {
		categories = append(categories, models.ICD10Category(row))
	}
	return categories, nil
}

func (r *Repository) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]models.ICD10Subcategory, error) {
	var rows []subcategoryModel
	if err := r.db.WithContext(ctx).Where("category_id = ?", categoryID).Order("sort_order, name").Find(&rows).Error; err != nil {
		return nil, err
	}
	subcategories := make([]models.ICD10Subcategory, 0, len(rows))
	for _, row := range rows {
		subcategories = append(subcategories, models.ICD10Subcategory(row))
	}
	return subcategories, nil
}

// ListCodes returns active codes under a category, optionally narrowed to
// a subcategory. Common codes sort first so dropdowns show them on top.
func (r *Repository) ListCodes(ctx context.Context, categoryID uuid.UUID, subcategoryID *uuid.UUID) ([]models.ICD10Code, error) {
	query := r.db.WithContext(ctx).Where("category_id = ? AND is_active", categoryID)
	if subcategoryID != nil {
		query = query.Where("subcategory_id = ?", *subcategoryID)
	}
	var rows []codeModel
	if err := query.Order("is_common DESC, code").Find(&rows).Error; err != nil {
		return nil, err
	}
	return mapCodes(rows), nil
}

func (r *Repository) SearchCodes(ctx context.Context, term string, limit int) ([]models.ICD10Code, error) {
	pattern := "%" + term + "%"
	var rows []codeModel
	err := r.db.WithContext(ctx).
		Where("is_active AND (code ILIKE ? OR label ILIKE ?)", pattern, pattern).
		Order("is_common DESC, code").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return mapCodes(rows), nil
}

func (r *Repository) GetCode(ctx context.Context, id uuid.UUID) (models.ICD10Code, error) {
	var row codeModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ICD10Code{}, ErrNotFound
		}
		return models.ICD10Code{}, err
	}
	return models.ICD10Code(row), nil
}

func (r *Repository) GetCategory(ctx context.Context, id uuid.UUID) (models.ICD10Category, error) {
	var row categoryModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ICD10Category{}, ErrNotFound
		}
		return models.ICD10Category{}, err
	}
	return models.ICD10Category(row), nil
}

// GetOrCreateCategory keys on the code range so the loader can re-run
// without duplicating rows.
func (r *Repository) GetOrCreateCategory(ctx context.Context, category models.ICD10Category) (models.ICD10Category, error) {
	var row categoryModel
	err := r.db.WithContext(ctx).First(&row, "code_range = ?", category.CodeRange).Error
	if err == nil {
		return models.ICD10Category(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ICD10Category{}, err
	}

	category.ID = uuid.New()
	row = categoryModel(category)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.ICD10Category{}, err
	}
	return models.ICD10Category(row), nil
}

func (r *Repository) GetOrCreateSubcategory(ctx context.Context, subcategory models.ICD10Subcategory) (models.ICD10Subcategory, error) {
	var row subcategoryModel
	err := r.db.WithContext(ctx).First(&row, "category_id = ? AND name = ?", subcategory.CategoryID, subcategory.Name).Error
	if err == nil {
		return models.ICD10Subcategory(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ICD10Subcategory{}, err
	}

	subcategory.ID = uuid.New()
	row = subcategoryModel(subcategory)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.ICD10Subcategory{}, err
	}
	return models.ICD10Subcategory(row), nil
}

// GetOrCreateCode keys on the ICD-10 code itself. Existing rows get their
// label and flags refreshed so loader re-runs pick up catalog corrections.
func (r *Repository) GetOrCreateCode(ctx context.Context, code models.ICD10Code) (models.ICD10Code, error) {
	var row codeModel
	err := r.db.WithContext(ctx).First(&row, "code = ?", code.Code).Error
	if err == nil {
		row.Label = code.Label
		row.IsCommon = code.IsCommon
		row.IsActive = code.IsActive
		row.Notes = code.Notes
		if saveErr := r.db.WithContext(ctx).Save(&row).Error; saveErr != nil {
			return models.ICD10Code{}, saveErr
		}
		return models.ICD10Code(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ICD10Code{}, err
	}

	code.ID = uuid.New()
	row = codeModel(code)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.ICD10Code{}, err
	}
	return models.ICD10Code(row), nil
}

func (r *Repository) Counts(ctx context.Context) (categories, subcategories, codes int64, err error) {
	if err = r.db.WithContext(ctx).Model(&categoryModel{}).Count(&categories).Error; err != nil {
		return
	}
	if err = r.db.WithContext(ctx).Model(&subcategoryModel{}).Count(&subcategories).Error; err != nil {
		return
	}
	err = r.db.WithContext(ctx).Model(&codeModel{}).Count(&codes).Error
	return
}

func mapCodes(rows []codeModel) []models.ICD10Code {
	codes := make([]models.ICD10Code, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, models.ICD10Code(row))
	}
	return codes
}
