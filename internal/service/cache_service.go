package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/rite-edu-api/pkg/errors"
)

// Cache keys shared by the services that read or invalidate them.
const (
	cacheKeyAdminStats        = "dash:admin:stats"
	cacheKeyPublicCourses     = "courses:public"
	cacheKeyCertificatePrefix = "cert:verify:"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheService fronts the Redis cache for dashboard counters, the public course
// catalog and certificate verification. A disabled or nil service is a no-op.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get decodes the cached entry into dest and reports whether it was found.
// A miss is not an error.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	hit := err == nil
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit, time.Since(start))
	}
	if err == nil || errors.Is(err, appErrors.ErrCacheMiss) {
		return hit, nil
	}
	s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	return false, err
}

// Set stores the value under key. A non-positive ttl falls back to the default.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	if s.metrics != nil {
		s.metrics.ObserveCacheWrite(time.Since(start))
	}
	if err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
	return err
}

// Invalidate removes cached values matching the key or glob pattern.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	return nil
}

// InvalidateAdminStats drops the cached admin dashboard counters.
func (s *CacheService) InvalidateAdminStats(ctx context.Context) {
	_ = s.Invalidate(ctx, cacheKeyAdminStats)
}

// InvalidateCatalog drops the public course list, every cached certificate
// verification (they embed course titles) and the counters that include course
// totals and revenue.
func (s *CacheService) InvalidateCatalog(ctx context.Context) {
	_ = s.Invalidate(ctx, cacheKeyPublicCourses)
	_ = s.Invalidate(ctx, cacheKeyCertificatePrefix+"*")
	s.InvalidateAdminStats(ctx)
}

// InvalidateCertificate drops one cached verification result and the counters.
func (s *CacheService) InvalidateCertificate(ctx context.Context, certificateID string) {
	if certificateID != "" {
		_ = s.Invalidate(ctx, certificateCacheKey(certificateID))
	}
	s.InvalidateAdminStats(ctx)
}

func certificateCacheKey(certificateID string) string {
	return cacheKeyCertificatePrefix + certificateID
}
