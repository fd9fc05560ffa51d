// Package cache puts a Redis read-through layer in front of the puzzle
// store. Redis trouble is logged and counted but never returned to callers.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vytor/sense/internal/logger"
	"github.com/vytor/sense/internal/metrics"
	"github.com/vytor/sense/internal/models"
	"github.com/vytor/sense/internal/repository"
)

const keyPrefix = "sense:puzzle:"

var _ repository.PuzzleRepository = (*PuzzleCache)(nil)

type PuzzleCache struct {
	inner   repository.PuzzleRepository
	client  *redis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

// NewPuzzleCache wraps inner. A zero ttl stores entries without expiry.
func NewPuzzleCache(inner repository.PuzzleRepository, client *redis.Client, ttl time.Duration, m *metrics.Metrics) *PuzzleCache {
	return &PuzzleCache{inner: inner, client: client, ttl: ttl, metrics: m}
}

// Key returns the Redis key for a puzzle date.
func Key(date string) string {
	return keyPrefix + date
}

func (c *PuzzleCache) Get(ctx context.Context, date string) (*models.Puzzle, error) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_cache")

	raw, err := c.client.Get(ctx, Key(date)).Bytes()
	switch {
	case err == nil:
		var p models.Puzzle
		if err := json.Unmarshal(raw, &p); err == nil {
			c.metrics.ObserveCacheLookup("hit")
			log.Debug("cache hit: date=%s", date)
			return &p, nil
		}
		log.Warn("discarding undecodable cache entry: date=%s", date)
		c.metrics.ObserveCacheLookup("error")
	case errors.Is(err, redis.Nil):
		c.metrics.ObserveCacheLookup("miss")
		log.Debug("cache miss: date=%s", date)
	default:
		c.metrics.ObserveCacheLookup("error")
		log.Warn("cache read failed, falling back to store: %v", err)
	}

	p, err := c.inner.Get(ctx, date)
	if err != nil || p == nil {
		return p, err
	}
	c.store(ctx, *p)
	return p, nil
}

func (c *PuzzleCache) ListRecent(ctx context.Context, limit int) ([]models.Puzzle, error) {
	return c.inner.ListRecent(ctx, limit)
}

func (c *PuzzleCache) Upsert(ctx context.Context, puzzle models.Puzzle) error {
	if err := c.inner.Upsert(ctx, puzzle); err != nil {
		return err
	}
	c.invalidate(ctx, puzzle.Date)
	return nil
}

func (c *PuzzleCache) UpsertBatch(ctx context.Context, puzzles []models.Puzzle) error {
	if err := c.inner.UpsertBatch(ctx, puzzles); err != nil {
		return err
	}
	dates := make([]string, len(puzzles))
	for i, p := range puzzles {
		dates[i] = p.Date
	}
	c.invalidate(ctx, dates...)
	return nil
}

func (c *PuzzleCache) store(ctx context.Context, p models.Puzzle) {
	log := logger.FromContext(ctx).WithPrefix("puzzle_cache")
	b, err := json.Marshal(p)
	if err != nil {
		log.Warn("failed to encode puzzle for cache: %v", err)
		return
	}
	if err := c.client.Set(ctx, Key(p.Date), b, c.ttl).Err(); err != nil {
		log.Warn("cache write failed: date=%s: %v", p.Date, err)
	}
}

func (c *PuzzleCache) invalidate(ctx context.Context, dates ...string) {
	if len(dates) == 0 {
		return
	}
	keys := make([]string, len(dates))
	for i, d := range dates {
		keys[i] = Key(d)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.FromContext(ctx).WithPrefix("puzzle_cache").Warn("cache invalidation failed: %v", err)
	}
}

// NewClient builds a Redis client and checks it with a ping.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
