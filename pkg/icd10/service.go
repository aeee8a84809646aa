package icd10

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/database"
	"github.com/inab-certh/K3-ticket-management-system/pkg/common/models"
	"github.com/redis/go-redis/v9"
)

type Service struct {
	repo     *Repository
	cache    *redis.Client
	cacheTTL time.Duration
}

func NewService(repo *Repository, cache *redis.Client, cacheTTL time.Duration) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func (s *Service) ListCategories(ctx context.Context) ([]models.ICD10Category, error) {
	return database.CachedJSON(ctx, s.cache, "icd10:categories", s.cacheTTL, s.repo.ListCategories)
}

func (s *Service) ListSubcategories(ctx context.Context, categoryID uuid.UUID) ([]models.ICD10Subcategory, error) {
	key := fmt.Sprintf("icd10:subcategories:%s", categoryID)
	return database.CachedJSON(ctx, s.cache, key, s.cacheTTL, func(ctx context.Context) ([]models.ICD10Subcategory, error) {
		return s.repo.ListSubcategories(ctx, categoryID)
	})
}

func (s *Service) ListCodes(ctx context.Context, categoryID uuid.UUID, subcategoryID *uuid.UUID) ([]models.ICD10Code, error) {
	key := fmt.Sprintf("icd10:codes:%s", categoryID)
	if subcategoryID != nil {
		key = fmt.Sprintf("icd10:codes:%s:%s", categoryID, *subcategoryID)
	}
	return database.CachedJSON(ctx, s.cache, key, s.cacheTTL, func(ctx context.Context) ([]models.ICD10Code, error) {
		return s.repo.ListCodes(ctx, categoryID, subcategoryID)
	})
}

// SearchCodes goes straight to the database: the term space is too wide
// to cache usefully.
func (s *Service) SearchCodes(ctx context.Context, term string, limit int) ([]models.ICD10Code, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []models.ICD10Code{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	return s.repo.SearchCodes(ctx, term, limit)
}

func (s *Service) GetCode(ctx context.Context, id uuid.UUID) (models.ICD10Code, error) {
	return s.repo.GetCode(ctx, id)
}

func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (models.ICD10Category, error) {
	return s.repo.GetCategory(ctx, id)
}
