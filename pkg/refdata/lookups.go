package refdata

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/inab-certh/K3-ticket-management-system/pkg/common/logger"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/lookups"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Catalog is the YAML seed file for every named lookup table.
type Catalog struct {
	RequestStatuses    []catalogStatus     `yaml:"request_statuses"`
	RequestCategories  []catalogCategory   `yaml:"request_categories"`
	RequestTypes       []catalogType       `yaml:"request_types"`
	RequestTags        []catalogTag        `yaml:"request_tags"`
	InsuranceProviders []catalogProvider   `yaml:"insurance_providers"`
	EmploymentStatuses []catalogEmployment `yaml:"employment_statuses"`
	TherapyTypes       []catalogTherapy    `yaml:"therapy_types"`
	Hospitals          []catalogHospital   `yaml:"hospitals"`
}

type catalogStatus struct {
	Name           string `yaml:"name"`
	NameEN         string `yaml:"name_en"`
	IsClosed       bool   `yaml:"is_closed"`
	IsPending      bool   `yaml:"is_pending"`
	RequiresAction bool   `yaml:"requires_action"`
	ColorCode      string `yaml:"color_code"`
}

type catalogCategory struct {
	Name        string `yaml:"name"`
	NameEN      string `yaml:"name_en"`
	Description string `yaml:"description"`
}

type catalogType struct {
	Name                  string `yaml:"name"`
	NameEN                string `yaml:"name_en"`
	Description           string `yaml:"description"`
	RequiresDocuments     bool   `yaml:"requires_documents"`
	EstimatedDurationDays *int   `yaml:"estimated_duration_days"`
	IsUrgent              bool   `yaml:"is_urgent"`
	PriorityLevel         int    `yaml:"priority_level"`
}

type catalogTag struct {
	Name                    string `yaml:"name"`
	Category                string `yaml:"category"`
	Description             string `yaml:"description"`
	EstimatedDurationDays   *int   `yaml:"estimated_duration_days"`
	RequiresDocuments       bool   `yaml:"requires_documents"`
	RequiresExternalContact bool   `yaml:"requires_external_contact"`
}

type catalogProvider struct {
	Name         string `yaml:"name"`
	NameEN       string `yaml:"name_en"`
	ProviderType string `yaml:"provider_type"`
	ContactPhone string `yaml:"contact_phone"`
	Website      string `yaml:"website"`
}

type catalogEmployment struct {
	Name             string `yaml:"name"`
	NameEN           string `yaml:"name_en"`
	AffectsInsurance bool   `yaml:"affects_insurance"`
	IsUnemployed     bool   `yaml:"is_unemployed"`
	IsRetired        bool   `yaml:"is_retired"`
}

type catalogTherapy struct {
	Name                    string `yaml:"name"`
	NameEN                  string `yaml:"name_en"`
	TherapyCategory         string `yaml:"therapy_category"`
	RequiresHospitalization bool   `yaml:"requires_hospitalization"`
	TypicalDurationWeeks    *int   `yaml:"typical_duration_weeks"`
}

type catalogHospital struct {
	Name            string `yaml:"name"`
	HospitalType    string `yaml:"hospital_type"`
	Address         string `yaml:"address"`
	Phone           string `yaml:"phone"`
	HasOncology     bool   `yaml:"has_oncology"`
	HasRadiotherapy bool   `yaml:"has_radiotherapy"`
	HasChemotherapy bool   `yaml:"has_chemotherapy"`
	HasSurgery      bool   `yaml:"has_surgery"`
}

// ParseCatalog decodes a YAML seed catalog.
func ParseCatalog(r io.Reader) (Catalog, error) {
	var catalog Catalog
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&catalog); err != nil {
		return Catalog{}, fmt.Errorf("parse lookup catalog: %w", err)
	}
	return catalog, nil
}

// LoadCatalog reads the catalog at path, falling back to the built-in
// defaults when the file does not exist.
func LoadCatalog(path string) (Catalog, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		logger.Log.WithField("path", path).Info("lookup catalog not found, using built-in defaults")
		return DefaultCatalog(), nil
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("open lookup catalog: %w", err)
	}
	defer f.Close()
	return ParseCatalog(f)
}

// PopulateLookups upserts every catalog entry by name. Row failures are
// logged and skipped.
func PopulateLookups(ctx context.Context, repo *lookups.Repository, catalog Catalog) (loaded, failed int) {
	record := func(table, name string, err error) {
		if err != nil {
			logger.Log.WithError(err).WithFields(logrus.Fields{
				"table": table,
				"name":  name,
			}).Warn("skipping lookup row")
			failed++
			return
		}
		loaded++
	}

	for i, s := range catalog.RequestStatuses {
		_, err := repo.GetOrCreateRequestStatus(ctx, models.RequestStatus{
			Lookup:         lookupOf(s.Name, s.NameEN, i),
			IsClosed:       s.IsClosed,
			IsPending:      s.IsPending,
			RequiresAction: s.RequiresAction,
			ColorCode:      s.ColorCode,
		})
		record("request_statuses", s.Name, err)
	}
	for i, c := range catalog.RequestCategories {
		_, err := repo.GetOrCreateRequestCategory(ctx, models.RequestCategory{
			Lookup:      lookupOf(c.Name, c.NameEN, i),
			Description: c.Description,
		})
		record("request_categories", c.Name, err)
	}
	for i, t := range catalog.RequestTypes {
		_, err := repo.GetOrCreateRequestType(ctx, models.RequestType{
			Lookup:                lookupOf(t.Name, t.NameEN, i),
			Description:           t.Description,
			RequiresDocuments:     t.RequiresDocuments,
			EstimatedDurationDays: t.EstimatedDurationDays,
			IsUrgent:              t.IsUrgent,
			PriorityLevel:         t.PriorityLevel,
		})
		record("request_types", t.Name, err)
	}
	for _, t := range catalog.RequestTags {
		_, err := repo.GetOrCreateRequestTag(ctx, models.RequestTag{
			Name:                    t.Name,
			Category:                t.Category,
			Description:             t.Description,
			IsActive:                true,
			EstimatedDurationDays:   t.EstimatedDurationDays,
			RequiresDocuments:       t.RequiresDocuments,
			RequiresExternalContact: t.RequiresExternalContact,
		})
		record("request_tags", t.Name, err)
	}
	for i, p := range catalog.InsuranceProviders {
		_, err := repo.GetOrCreateInsuranceProvider(ctx, models.InsuranceProvider{
			Lookup:       lookupOf(p.Name, p.NameEN, i),
			ProviderType: p.ProviderType,
			ContactPhone: p.ContactPhone,
			Website:      p.Website,
		})
		record("insurance_providers", p.Name, err)
	}
	for i, e := range catalog.EmploymentStatuses {
		_, err := repo.GetOrCreateEmploymentStatus(ctx, models.EmploymentStatus{
			Lookup:           lookupOf(e.Name, e.NameEN, i),
			AffectsInsurance: e.AffectsInsurance,
			IsUnemployed:     e.IsUnemployed,
			IsRetired:        e.IsRetired,
		})
		record("employment_statuses", e.Name, err)
	}
	for i, t := range catalog.TherapyTypes {
		_, err := repo.GetOrCreateTherapyType(ctx, models.TherapyTypeLookup{
			Lookup:                  lookupOf(t.Name, t.NameEN, i),
			TherapyCategory:         t.TherapyCategory,
			RequiresHospitalization: t.RequiresHospitalization,
			TypicalDurationWeeks:    t.TypicalDurationWeeks,
		})
		record("therapy_types", t.Name, err)
	}
	for i, h := range catalog.Hospitals {
		_, err := repo.GetOrCreateHospital(ctx, models.Hospital{
			Lookup:          lookupOf(h.Name, "", i),
			HospitalType:    h.HospitalType,
			Address:         h.Address,
			Phone:           h.Phone,
			HasOncology:     h.HasOncology,
			HasRadiotherapy: h.HasRadiotherapy,
			HasChemotherapy: h.HasChemotherapy,
			HasSurgery:      h.HasSurgery,
		})
		record("hospitals", h.Name, err)
	}
	return loaded, failed
}

func lookupOf(name, nameEN string, sortOrder int) models.Lookup {
	return models.Lookup{
		Name:      name,
		NameEN:    nameEN,
		IsActive:  true,
		SortOrder: sortOrder,
	}
}
