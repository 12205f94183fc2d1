package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type cacheMetrics interface {
	RecordCacheLookup(hit bool)
}

// CacheService fronts Redis for rendered timetable views. All methods are
// best-effort: cache failures degrade to recomputation, never to errors.
type CacheService struct {
	store   cacheStore
	metrics cacheMetrics
	enabled bool
	ttl     time.Duration
	logger  *zap.Logger
}

// NewCacheService instantiates CacheService. A nil store or enabled=false
// turns every operation into a no-op.
func NewCacheService(store cacheStore, enabled bool, ttl time.Duration, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CacheService{store: store, enabled: enabled && store != nil, ttl: ttl, logger: logger}
}

// WithMetrics attaches a hit/miss recorder. Returns the receiver for chaining.
func (s *CacheService) WithMetrics(metrics cacheMetrics) *CacheService {
	s.metrics = metrics
	return s
}

// Enabled reports whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled
}

// Get loads a cached view into dest. Returns false on miss or error.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) bool {
	if !s.Enabled() {
		return false
	}
	if err := s.store.Get(ctx, key, dest); err != nil {
		if s.metrics != nil {
			s.metrics.RecordCacheLookup(false)
		}
		return false
	}
	if s.metrics != nil {
		s.metrics.RecordCacheLookup(true)
	}
	return true
}

// Set stores a rendered view under key with the configured TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) {
	if !s.Enabled() {
		return
	}
	if err := s.store.Set(ctx, key, value, s.ttl); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateAll drops every cached timetable view. Called after schedule
// writes; a write can affect views of any parity and window, so the whole
// namespace goes.
func (s *CacheService) InvalidateAll(ctx context.Context) {
	if !s.Enabled() {
		return
	}
	if err := s.store.DeleteByPattern(ctx, "timetable:*"); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Error(err))
	}
}
