package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/yourorg/buildbid/internal/model"
)

// StatsCache is a Redis-backed read-through cache for bid request
// aggregates. A nil client disables caching and every lookup misses.
type StatsCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewStatsCache creates a new stats cache. client may be nil.
func NewStatsCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *StatsCache {
	return &StatsCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *StatsCache) key(requestID string) string {
	return "bid_request_stats:" + requestID
}

// Get returns the cached stats for a request, or nil on a miss.
// Cache failures are logged and treated as misses.
func (c *StatsCache) Get(ctx context.Context, requestID string) (*model.BidRequestStats, error) {
	if c.client == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, c.key(requestID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		c.logger.Warn("failed to read stats cache", zap.Error(err), zap.String("bid_request_id", requestID))
		return nil, nil
	}

	var stats model.BidRequestStats
	if err := json.Unmarshal(data, &stats); err != nil {
		c.logger.Warn("failed to decode cached stats", zap.Error(err), zap.String("bid_request_id", requestID))
		return nil, nil
	}

	return &stats, nil
}

// Set stores the stats for a request
func (c *StatsCache) Set(ctx context.Context, requestID string, stats model.BidRequestStats) {
	if c.client == nil {
		return
	}

	data, err := json.Marshal(stats)
	if err != nil {
		c.logger.Warn("failed to encode stats for cache", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, c.key(requestID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to write stats cache", zap.Error(err), zap.String("bid_request_id", requestID))
	}
}

// Invalidate drops the cached stats for a request. Called after a new bid
// lands so the next read recomputes.
func (c *StatsCache) Invalidate(ctx context.Context, requestID string) {
	if c.client == nil {
		return
	}

	if err := c.client.Del(ctx, c.key(requestID)).Err(); err != nil {
		c.logger.Warn("failed to invalidate stats cache", zap.Error(err), zap.String("bid_request_id", requestID))
	}
}
