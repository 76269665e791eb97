// Package catalog holds the application service for shared category
// reference data, with a cache-aside layer in front of the store.
package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domaincatalog "github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/infrastructure/cache"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
)

// DefaultCategoryTTL bounds staleness for cached category lists. Global
// category changes made by another replica become visible within one TTL.
const DefaultCategoryTTL = 5 * time.Minute

// CategoryService serves category reads through the cache and writes through
// to the store. Cache failures are logged and absorbed; the store remains
// the source of truth.
type CategoryService struct {
	store domaincatalog.CategoryStore
	cache cache.Cache
	ttl   time.Duration
}

// NewCategoryService creates a category service with cache-aside reads
func NewCategoryService(store domaincatalog.CategoryStore, c cache.Cache) *CategoryService {
	return &CategoryService{
		store: store,
		cache: c,
		ttl:   DefaultCategoryTTL,
	}
}

func categoryListKey(tenantID uuid.UUID) string {
	return "categories:tenant:" + tenantID.String()
}

// ListForTenant returns global categories plus the tenant's own, served from
// cache when possible
func (s *CategoryService) ListForTenant(ctx context.Context, tenantID uuid.UUID) ([]domaincatalog.Category, error) {
	key := categoryListKey(tenantID)

	if raw, ok, err := s.cache.Get(ctx, key); err != nil {
		logger.L(ctx).Warn("category cache read failed", zap.Error(err))
	} else if ok {
		var cached []domaincatalog.Category
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
		logger.L(ctx).Warn("category cache entry malformed, dropping", zap.String("key", key))
		_ = s.cache.Delete(ctx, key)
	}

	categories, err := s.store.ListCategoriesForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(categories); err == nil {
		if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
			logger.L(ctx).Warn("category cache write failed", zap.Error(err))
		}
	}
	return categories, nil
}

// Get returns one category by id
func (s *CategoryService) Get(ctx context.Context, id uuid.UUID) (*domaincatalog.Category, error) {
	return s.store.GetCategory(ctx, id)
}

// Create creates a category and invalidates the authoring tenant's cached
// list. Global creates become visible to other tenants within one TTL.
func (s *CategoryService) Create(ctx context.Context, payload domaincatalog.CategoryPayload) (*domaincatalog.Category, error) {
	c, err := s.store.CreateCategory(ctx, payload)
	if err != nil {
		return nil, err
	}
	if payload.CreatedBy != nil {
		s.invalidate(ctx, *payload.CreatedBy)
	}
	return c, nil
}

// Delete removes a category and invalidates the owning tenant's cached list
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		// Missing rows fall through to the store delete, which reports
		// (false, nil) without touching the cache.
		return s.store.DeleteCategory(ctx, id)
	}
	deleted, err := s.store.DeleteCategory(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted && c.CreatedBy != nil {
		s.invalidate(ctx, *c.CreatedBy)
	}
	return deleted, nil
}

func (s *CategoryService) invalidate(ctx context.Context, tenantID uuid.UUID) {
	if err := s.cache.Delete(ctx, categoryListKey(tenantID)); err != nil {
		logger.L(ctx).Warn("category cache invalidation failed",
			zap.String("tenant_id", tenantID.String()),
			zap.Error(err),
		)
	}
}
