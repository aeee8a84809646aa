package directory

import (
	"context"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/validation"
)

var orgTypes = map[string]bool{
	"": true,
	models.OrgTypeHospital:      true,
	models.OrgTypeMunicipality:  true,
	models.OrgTypeSocialService: true,
	models.OrgTypeInsurance:     true,
	models.OrgTypeMinistry:      true,
	models.OrgTypeKEP:           true,
	models.OrgTypeOther:         true,
}

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) SaveCenter(ctx context.Context, c models.Center) (models.Center, error) {
	var v validation.Violations
	if c.Name == "" {
		v.Add("name", validation.KindConsistency, "name is required")
	}
	v.Collect("phone", validation.ValidateLandline(c.Phone))
	if err := v.Err(); err != nil {
		return models.Center{}, err
	}
	return s.repo.SaveCenter(ctx, c)
}

func (s *Service) GetCenter(ctx context.Context, id uuid.UUID) (models.Center, error) {
	return s.repo.GetCenter(ctx, id)
}

func (s *Service) ListCenters(ctx context.Context, includeInactive bool) ([]models.Center, error) {
	return s.repo.ListCenters(ctx, includeInactive)
}

func (s *Service) DeleteCenter(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCenter(ctx, id)
}

func (s *Service) SaveOrganization(ctx context.Context, org models.ExternalOrganization) (models.ExternalOrganization, error) {
	var v validation.Violations
	if org.Name == "" {
		v.Add("name", validation.KindConsistency, "name is required")
	}
	if !orgTypes[org.OrgType] {
		v.Add("org_type", validation.KindConsistency, "unknown organization type")
	}
	if err := v.Err(); err != nil {
		return models.ExternalOrganization{}, err
	}
	return s.repo.SaveOrganization(ctx, org)
}

func (s *Service) GetOrganization(ctx context.Context, id uuid.UUID) (models.ExternalOrganization, error) {
	return s.repo.GetOrganization(ctx, id)
}

func (s *Service) ListOrganizations(ctx context.Context, orgType string, includeInactive bool) ([]models.ExternalOrganization, error) {
	return s.repo.ListOrganizations(ctx, orgType, includeInactive)
}

func (s *Service) DeleteOrganization(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteOrganization(ctx, id)
}

func (s *Service) SaveContact(ctx context.Context, c models.Contact) (models.Contact, error) {
	var v validation.Violations
	if c.Name == "" {
		v.Add("name", validation.KindConsistency, "name is required")
	}
	if c.ID == uuid.Nil && c.OrganizationID == uuid.Nil {
		v.Add("organization_id", validation.KindConsistency, "organization is required")
	}
	v.Collect("mobile", validation.ValidateMobile(c.Mobile))
	if err := v.Err(); err != nil {
		return models.Contact{}, err
	}
	return s.repo.SaveContact(ctx, c)
}

func (s *Service) GetContact(ctx context.Context, id uuid.UUID) (models.Contact, error) {
	return s.repo.GetContact(ctx, id)
}

func (s *Service) ListContacts(ctx context.Context, organizationID uuid.UUID) ([]models.Contact, error) {
	return s.repo.ListContacts(ctx, organizationID)
}

func (s *Service) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteContact(ctx, id)
}
