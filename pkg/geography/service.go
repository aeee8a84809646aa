package geography

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/database"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/redis/go-redis/v9"
)

// Service serves the three-level dropdown hierarchy. Lists are cached in
// Redis because they change only through the loader.
type Service struct {
	repo     *Repository
	cache    *redis.Client
	cacheTTL time.Duration
}

func NewService(repo *Repository, cache *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (s *Service) ListRegions(ctx context.Context) ([]models.Region, error) {
	return database.CachedJSON(ctx, s.cache, "geo:regions", s.cacheTTL, s.repo.ListRegions)
}

func (s *Service) ListRegionalUnits(ctx context.Context, regionID uuid.UUID) ([]models.RegionalUnit, error) {
	key := fmt.Sprintf("geo:units:%s", regionID)
	return database.CachedJSON(ctx, s.cache, key, s.cacheTTL, func(ctx context.Context) ([]models.RegionalUnit, error) {
		return s.repo.ListRegionalUnits(ctx, regionID)
	})
}

func (s *Service) ListMunicipalities(ctx context.Context, regionalUnitID uuid.UUID) ([]models.Municipality, error) {
	key := fmt.Sprintf("geo:municipalities:%s", regionalUnitID)
	return database.CachedJSON(ctx, s.cache, key, s.cacheTTL, func(ctx context.Context) ([]models.Municipality, error) {
		return s.repo.ListMunicipalities(ctx, regionalUnitID)
	})
}

func (s *Service) GetMunicipality(ctx context.Context, id uuid.UUID) (models.Municipality, error) {
	return s.repo.GetMunicipality(ctx, id)
}
