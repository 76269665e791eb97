package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domaincatalog "github.com/vendorhub/backend/internal/domain/catalog"
	"github.com/vendorhub/backend/internal/infrastructure/cache"
	"github.com/vendorhub/backend/internal/infrastructure/persistence/memstore"
)

// failingCache always errors, to prove the store stays authoritative
type failingCache struct{}

func (failingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}
func (failingCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return errors.New("cache down")
}
func (failingCache) Delete(ctx context.Context, key string) error {
	return errors.New("cache down")
}

func TestListForTenant_ServesSecondReadFromCache(t *testing.T) {
	store := memstore.New()
	svc := NewCategoryService(store, cache.NewMemory())
	ctx := context.Background()
	tenantID := uuid.New()

	created, err := store.CreateCategory(ctx, domaincatalog.CategoryPayload{Name: "Beverages", IsGlobal: true})
	require.NoError(t, err)

	first, err := svc.ListForTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Mutate the store behind the service's back; the cached list still
	// serves the old view until the TTL or an invalidation.
	_, err = store.DeleteCategory(ctx, created.ID)
	require.NoError(t, err)

	second, err := svc.ListForTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestCreate_InvalidatesAuthorTenant(t *testing.T) {
	store := memstore.New()
	svc := NewCategoryService(store, cache.NewMemory())
	ctx := context.Background()
	tenantID := uuid.New()

	first, err := svc.ListForTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Empty(t, first)

	_, err = svc.Create(ctx, domaincatalog.CategoryPayload{Name: "House Blend", CreatedBy: &tenantID})
	require.NoError(t, err)

	second, err := svc.ListForTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestDelete_InvalidatesOwnerTenant(t *testing.T) {
	store := memstore.New()
	svc := NewCategoryService(store, cache.NewMemory())
	ctx := context.Background()
	tenantID := uuid.New()

	created, err := svc.Create(ctx, domaincatalog.CategoryPayload{Name: "House Blend", CreatedBy: &tenantID})
	require.NoError(t, err)

	listed, err := svc.ListForTenant(ctx, tenantID)
	require.NoError(t, err)
	require.Len(t, listed, 1)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	after, err := svc.ListForTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestDelete_MissingCategory(t *testing.T) {
	svc := NewCategoryService(memstore.New(), cache.NewMemory())

	deleted, err := svc.Delete(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestListForTenant_CacheFailureFallsThroughToStore(t *testing.T) {
	store := memstore.New()
	svc := NewCategoryService(store, failingCache{})
	ctx := context.Background()
	tenantID := uuid.New()

	_, err := store.CreateCategory(ctx, domaincatalog.CategoryPayload{Name: "Beverages", IsGlobal: true})
	require.NoError(t, err)

	got, err := svc.ListForTenant(ctx, tenantID)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
