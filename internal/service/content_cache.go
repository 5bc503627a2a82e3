package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"topic-quiz/internal/domain"
	"topic-quiz/internal/logger"

	"go.uber.org/zap"
)

// jsonCache stores JSON encoded values in a domain.Cache. Failures are
// logged and treated as misses; a nil cache disables it.
type jsonCache struct {
	cache domain.Cache
	ttl   time.Duration
}

func (c jsonCache) get(ctx context.Context, key string, v any) bool {
	if c.cache == nil {
		return false
	}
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Content cache read failed", zap.Error(err), zap.String("key", key))
		}
		return false
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		logger.Get().Warn("Discarding malformed cache entry", zap.Error(err), zap.String("key", key))
		return false
	}
	return true
}

func (c jsonCache) set(ctx context.Context, key string, v any) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		logger.Get().Warn("Failed to marshal cache entry", zap.Error(err), zap.String("key", key))
		return
	}
	if err := c.cache.Set(ctx, key, string(data), c.ttl); err != nil {
		logger.Get().Warn("Content cache write failed", zap.Error(err), zap.String("key", key))
	}
}
