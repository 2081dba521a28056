package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type brokenCacheRepo struct{}

func (brokenCacheRepo) Get(context.Context, string, interface{}) error {
	return errors.New("redis: connection refused")
}

func (brokenCacheRepo) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("redis: connection refused")
}

func (brokenCacheRepo) DeleteByPattern(context.Context, string) error {
	return errors.New("redis: connection refused")
}

func TestCacheServiceMissIsNotAnError(t *testing.T) {
	metrics := NewMetricsService()
	cache := NewCacheService(newMemCacheRepo(), metrics, time.Minute, zap.NewNop(), true)

	var courses []string
	hit, err := cache.Get(context.Background(), cacheKeyPublicCourses, &courses)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(context.Background(), cacheKeyPublicCourses, []string{"Tally"}, 0))
	hit, err = cache.Get(context.Background(), cacheKeyPublicCourses, &courses)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"Tally"}, courses)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.CacheHits)
	assert.Equal(t, uint64(1), snapshot.CacheMisses)
}

func TestCacheServiceDisabledIsNoop(t *testing.T) {
	repo := newMemCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, nil, false)

	require.NoError(t, cache.Set(context.Background(), "k", 1, time.Minute))
	assert.Empty(t, repo.entries)

	var nilCache *CacheService
	hit, err := nilCache.Get(context.Background(), "k", new(int))
	require.NoError(t, err)
	assert.False(t, hit)
	nilCache.InvalidateCatalog(context.Background())
}

func TestCacheServiceInvalidationHelpers(t *testing.T) {
	repo := newMemCacheRepo()
	cache := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, cacheKeyAdminStats, 1, 0))
	require.NoError(t, cache.Set(ctx, cacheKeyPublicCourses, 1, 0))
	require.NoError(t, cache.Set(ctx, certificateCacheKey("RITE-AB12C"), 1, 0))
	require.NoError(t, cache.Set(ctx, certificateCacheKey("RITE-ZZ999"), 1, 0))

	cache.InvalidateCertificate(ctx, "RITE-AB12C")
	assert.NotContains(t, repo.entries, certificateCacheKey("RITE-AB12C"))
	assert.Contains(t, repo.entries, certificateCacheKey("RITE-ZZ999"))
	assert.NotContains(t, repo.entries, cacheKeyAdminStats)
	assert.Contains(t, repo.entries, cacheKeyPublicCourses)

	cache.InvalidateCatalog(ctx)
	assert.NotContains(t, repo.entries, cacheKeyPublicCourses)
	assert.NotContains(t, repo.entries, certificateCacheKey("RITE-ZZ999"))
}

func TestCacheServiceBackendFailureSurfacesToCaller(t *testing.T) {
	cache := NewCacheService(brokenCacheRepo{}, NewMetricsService(), time.Minute, zap.NewNop(), true)

	hit, err := cache.Get(context.Background(), cacheKeyAdminStats, new(int))
	assert.Error(t, err)
	assert.False(t, hit)
	assert.Error(t, cache.Set(context.Background(), cacheKeyAdminStats, 1, 0))
	assert.Error(t, cache.Invalidate(context.Background(), cacheKeyAdminStats))
}
