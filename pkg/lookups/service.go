package lookups

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/database"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/inab-certh/K3-ticket-management-system/pkg/validation"
	"github.com/redis/go-redis/v9"
)

// Service caches each active-only lookup list in Redis and drops the
// cache on every curation write. Curation endpoints always read the
// database directly so admins see inactive rows.
type Service struct {
	repo     *Repository
	cache    *redis.Client
	cacheTTL time.Duration
}

func NewService(repo *Repository, cache *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func cacheKey(table string) string {
	return fmt.Sprintf("lookups:%s:active", table)
}

func (s *Service) invalidate(ctx context.Context, table string) {
	database.InvalidateCache(ctx, s.cache, cacheKey(table))
}

func validateLookup(name string) error {
	var v validation.Violations
	if name == "" {
		v.Add("name", validation.KindConsistency, "name is required")
	}
	return v.Err()
}

// --- Request statuses ---

func (s *Service) ListRequestStatuses(ctx context.Context, includeInactive bool) ([]models.RequestStatus, error) {
	if includeInactive {
		return s.repo.ListRequestStatuses(ctx, true)
	}
	return database.CachedJSON(ctx, s.cache, cacheKey("request_statuses"), s.cacheTTL, func(ctx context.Context) ([]models.RequestStatus, error) {
		return s.repo.ListRequestStatuses(ctx, false)
	})
}

func (s *Service) GetRequestStatus(ctx context.Context, id uuid.UUID) (models.RequestStatus, error) {
	return s.repo.GetRequestStatus(ctx, id)
}

func (s *Service) SaveRequestStatus(ctx context.Context, status models.RequestStatus) (models.RequestStatus, error) {
	if err := validateLookup(status.Name); err != nil {
		return models.RequestStatus{}, err
	}
	saved, err := s.repo.SaveRequestStatus(ctx, status)
	if err != nil {
		return models.RequestStatus{}, err
	}
	s.invalidate(ctx, "request_statuses")
	return saved, nil
}

func (s *Service) DeleteRequestStatus(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRequestStatus(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "request_statuses")
	return nil
}

// --- Request categories ---

func (s *Service) ListRequestCategories(ctx context.Context, includeInactive bool) ([]models.RequestCategory, error) {
	if includeInactive {
		return s.repo.ListRequestCategories(ctx, true)
	}
	return database.CachedJSON(ctx, s.cache, cacheKey("request_categories"), s.cacheTTL, func(ctx context.Context) ([]models.RequestCategory, error) {
		return s.repo.ListRequestCategories(ctx, false)
	})
}

func (s *Service) SaveRequestCategory(ctx context.Context, category models.RequestCategory) (models.RequestCategory, error) {
	if err := validateLookup(category.Name); err != nil {
		return models.RequestCategory{}, err
	}
	saved, err := s.repo.SaveRequestCategory(ctx, category)
	if err != nil {
		return models.RequestCategory{}, err
	}
	s.invalidate(ctx, "request_categories")
	return saved, nil
}

func (s *Service) DeleteRequestCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRequestCategory(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "request_categories")
	return nil
}

// --- Request types ---

func (s *Service) ListRequestTypes(ctx context.Context, includeInactive bool) ([]models.RequestType, error) {
	if includeInactive {
		return s.repo.ListRequestTypes(ctx, true)
	}
	return database.CachedJSON(ctx, s.cache, cacheKey("request_types"), s.cacheTTL, func(ctx context.Context) ([]models.RequestType, error) {
		return s.repo.ListRequestTypes(ctx, false)
	})
}

func (s *Service) GetRequestType(ctx context.Context, id uuid.UUID) (models.RequestType, error) {
	return s.repo.GetRequestType(ctx, id)
}

func (s *Service) SaveRequestType(ctx context.Context, requestType models.RequestType) (models.RequestType, error) {
	if err := validateLookup(requestType.Name); err != nil {
		return models.RequestType{}, err
	}
	saved, err := s.repo.SaveRequestType(ctx, requestType)
	if err != nil {
		return models.RequestType{}, err
	}
	s.invalidate(ctx, "request_types")
	return saved, nil
}

func (s *Service) DeleteRequestType(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRequestType(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "request_types")
	return nil
}

// --- Request tags ---

func (s *Service) ListRequestTags(ctx context.Context, includeInactive bool) ([]models.RequestTag, error) {
	if includeInactive {
		return s.repo.ListRequestTags(ctx, true)
	}
	return database.CachedJSON(ctx, s.cache, cacheKey("request_tags"), s.cacheTTL, func(ctx context.Context) ([]models.RequestTag, error) {
		return s.repo.ListRequestTags(ctx, false)
	})
}

func (s *Service) SaveRequestTag(ctx context.Context, tag models.RequestTag) (models.RequestTag, error) {
	var v validation.Violations
	if tag.Name == "" {
		v.Add("name", validation.KindConsistency, "name is required")
	}
	if !models.ValidTagCategory(tag.Category) {
		v.Add("category", validation.KindConsistency, "unknown tag category")
	}
	if err := v.Err(); err != nil {
		return models.RequestTag{}, err
	}
	saved, err := s.repo.SaveRequestTag(ctx, tag)
	if err != nil {
		return models.RequestTag{}, err
	}
	s.invalidate(ctx, "request_tags")
	return saved, nil
}

func (s *Service) DeleteRequestTag(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRequestTag(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "request_tags")
	return nil
}

// --- Insurance providers ---

func (s *Service) ListInsuranceProviders(ctx context.Context, includeInactive bool) ([]models.InsuranceProvider, error) {
	if includeInactive {
		return s.repo.ListInsuranceProviders(ctx, true)
	}
	return database.CachedJSON(ctx, s.cache, cacheKey("insurance_providers"), s.cacheTTL, func(ctx context.Context) ([]models.InsuranceProvider, error) {
		return s.repo.ListInsuranceProviders(ctx, false)
	})
}

func (s *Service) SaveInsuranceProvider(ctx context.Context, provider models.InsuranceProvider) (models.InsuranceProvider, error) {
	if err := validateLookup(provider.Name); err != nil {
		return models.InsuranceProvider{}, err
	}
	saved, err := s.repo.SaveInsuranceProvider(ctx, provider)
	if err != nil {
		return models.InsuranceProvider{}, err
	}
	s.invalidate(ctx, "insurance_providers")
	return saved, nil
}

func (s *Service) DeleteInsuranceProvider(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteInsuranceProvider(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "insurance_providers")
	return nil
}

// --- Employment statuses ---

func (s *Service) ListEmploymentStatuses(ctx context.Context, includeInactive bool) ([]models.EmploymentStatus, error) {
	if includeInactive {
		return s.repo.ListEmploymentStatuses(ctx, true)
	}
	return database.CachedJSON(ctx, s.cache, cacheKey("employment_statuses"), s.cacheTTL, func(ctx context.Context) ([]models.EmploymentStatus, error) {
		return s.repo.ListEmploymentStatuses(ctx, false)
	})
}

func (s *Service) SaveEmploymentStatus(ctx context.Context, status models.EmploymentStatus) (models.EmploymentStatus, error) {
	if err := validateLookup(status.Name); err != nil {
		return models.EmploymentStatus{}, err
	}
	saved, err := s.repo.SaveEmploymentStatus(ctx, status)
	if err != nil {
		return models.EmploymentStatus{}, err
	}
	s.invalidate(ctx, "employment_statuses")
	return saved, nil
}

func (s *Service) DeleteEmploymentStatus(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteEmploymentStatus(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "employment_statuses")
	return nil
}

// --- Therapy types ---

func (s *Service) ListTherapyTypes(ctx context.Context, includeInactive bool) ([]models.TherapyTypeLookup, error) {
	if includeInactive {
		return s.repo.ListTherapyTypes(ctx, true)
	}
	return database.CachedJSON(ctx, s.cache, cacheKey("therapy_types"), s.cacheTTL, func(ctx context.Context) ([]models.TherapyTypeLookup, error) {
		return s.repo.ListTherapyTypes(ctx, false)
	})
}

func (s *Service) SaveTherapyType(ctx context.Context, therapyType models.TherapyTypeLookup) (models.TherapyTypeLookup, error) {
	if err := validateLookup(therapyType.Name); err != nil {
		return models.TherapyTypeLookup{}, err
	}
	saved, err := s.repo.SaveTherapyType(ctx, therapyType)
	if err != nil {
		return models.TherapyTypeLookup{}, err
	}
	s.invalidate(ctx, "therapy_types")
	return saved, nil
}

func (s *Service) DeleteTherapyType(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteTherapyType(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "therapy_types")
	return nil
}

// --- Hospitals ---

func (s *Service) ListHospitals(ctx context.Context, includeInactive bool) ([]models.Hospital, error) {
	if includeInactive {
		return s.repo.ListHospitals(ctx, true)
	}
	return database.CachedJSON(ctx, s.cache, cacheKey("hospitals"), s.cacheTTL, func(ctx context.Context) ([]models.Hospital, error) {
		return s.repo.ListHospitals(ctx, false)
	})
}

func (s *Service) SaveHospital(ctx context.Context, hospital models.Hospital) (models.Hospital, error) {
	var v validation.Violations
	if hospital.Name == "" {
		v.Add("name", validation.KindConsistency, "name is required")
	}
	v.Collect("phone", validation.ValidateLandline(hospital.Phone))
	if err := v.Err(); err != nil {
		return models.Hospital{}, err
	}
	saved, err := s.repo.SaveHospital(ctx, hospital)
	if err != nil {
		return models.Hospital{}, err
	}
	s.invalidate(ctx, "hospitals")
	return saved, nil
}

func (s *Service) DeleteHospital(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteHospital(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, "hospitals")
	return nil
}
