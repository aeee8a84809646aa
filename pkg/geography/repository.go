package geography

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("geography entity not found")

type regionModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;uniqueIndex"`
	Code      string    `gorm:"uniqueIndex"`
	SortOrder int
}

func (regionModel) TableName() string { return "regions" }

type regionalUnitModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	RegionID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_unit_region_name"`
	Name      string    `gorm:"not null;uniqueIndex:idx_unit_region_name"`
	SortOrder int
}

func (regionalUnitModel) TableName() string { return "regional_units" }

type municipalityModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	RegionalUnitID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_municipality_unit_name"`
	Name           string    `gorm:"not null;uniqueIndex:idx_municipality_unit_name"`
	SortOrder      int
}

func (municipalityModel) TableName() string { return "municipalities" }

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&regionModel{}, &regionalUnitModel{}, &municipalityModel{})
}

func (r *Repository) ListRegions(ctx context.Context) ([]models.Region, error) {
	var rows []regionModel
	if err := r.db.WithContext(ctx).Order("sort_order, name").Find(&rows).Error; err != nil {
		return nil, err
	}
	regions := make([]models.Region, 0, len(rows))
	for _, row := range rows {
		regions = append(regions, models.Region(row))
	}
	return regions, nil
}

func (r *Repository) ListRegionalUnits(ctx context.Context, regionID uuid.UUID) ([]models.RegionalUnit, error) {
	var rows []regionalUnitModel
	if err := r.db.WithContext(ctx).Where("region_id = ?", regionID).Order("sort_order, name").Find(&rows).Error; err != nil {
		return nil, err
	}
	units := make([]models.RegionalUnit, 0, len(rows))
	for _, row := range rows {
		units = append(units, models.RegionalUnit(row))
	}
	return units, nil
}

func (r *Repository) ListMunicipalities(ctx context.Context, regionalUnitID uuid.UUID) ([]models.Municipality, error) {
	var rows []municipalityModel
	if err := r.db.WithContext(ctx).Where("regional_unit_id = ?", regionalUnitID).Order("sort_order, name").Find(&rows).Error; err != nil {
		return nil, err
	}
	municipalities := make([]models.Municipality, 0, len(rows))
	for _, row := range rows {
		municipalities = append(municipalities, models.Municipality(row))
	}
	return municipalities, nil
}

func (r *Repository) GetMunicipality(ctx context.Context, id uuid.UUID) (models.Municipality, error) {
	var row municipalityModel
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Municipality{}, ErrNotFound
		}
		return models.Municipality{}, err
	}
	return models.Municipality(row), nil
}

// GetOrCreateRegion is used by the bulk loader: lookups by name so a
// re-run of the loader is idempotent.
func (r *Repository) GetOrCreateRegion(ctx context.Context, region models.Region) (models.Region, error) {
	var row regionModel
	err := r.db.WithContext(ctx).First(&row, "name = ?", region.Name).Error
	if err == nil {
		return models.Region(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Region{}, err
	}

	row = regionModel{
		ID:        uuid.New(),
		Name:      region.Name,
		Code:      region.Code,
		SortOrder: region.SortOrder,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Region{}, err
	}
	return models.Region(row), nil
}

func (r *Repository) GetOrCreateRegionalUnit(ctx context.Context, unit models.RegionalUnit) (models.RegionalUnit, error) {
	var row regionalUnitModel
	err := r.db.WithContext(ctx).First(&row, "region_id = ? AND name = ?", unit.RegionID, unit.Name).Error
	if err == nil {
		return models.RegionalUnit(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RegionalUnit{}, err
	}

	row = regionalUnitModel{
		ID:        uuid.New(),
		RegionID:  unit.RegionID,
		Name:      unit.Name,
		SortOrder: unit.SortOrder,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.RegionalUnit{}, err
	}
	return models.RegionalUnit(row), nil
}

func (r *Repository) GetOrCreateMunicipality(ctx context.Context, municipality models.Municipality) (models.Municipality, error) {
	var row municipalityModel
	err := r.db.WithContext(ctx).First(&row, "regional_unit_id = ? AND name = ?", municipality.RegionalUnitID, municipality.Name).Error
	if err == nil {
		return models.Municipality(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Municipality{}, err
	}

	row = municipalityModel{
		ID:             uuid.New(),
		RegionalUnitID: municipality.RegionalUnitID,
		Name:           municipality.Name,
		SortOrder:      municipality.SortOrder,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return models.Municipality{}, err
	}
	return models.Municipality(row), nil
}

// Counts returns the number of rows per level, used by the loader to
// report what a populate run produced.
func (r *Repository) Counts(ctx context.Context) (regions, units, municipalities int64, err error) {
	if err = r.db.WithContext(ctx).Model(&regionModel{}).Count(&regions).Error; err != nil {
		return
	}
	if err = r.db.WithContext(ctx).Model(&regionalUnitModel{}).Count(&units).Error; err != nil {
		return
	}
	err = r.db.WithContext(ctx).Model(&municipalityModel{}).Count(&municipalities).Error
	return
}
