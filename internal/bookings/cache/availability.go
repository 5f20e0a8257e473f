package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quickcourt/pkg/logger"
	"quickcourt/pkg/model"

	"github.com/redis/go-redis/v9"
)

// AvailabilityCache keeps computed slot grids in Redis for a short TTL.
// It is strictly best-effort: a nil client or any Redis error degrades to a
// cache miss, and the reservation coordinator never consults it.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func (c *AvailabilityCache) Enabled() bool {
	return c != nil && c.client != nil
}

func key(courtID, date string, slotMinutes int) string {
	return fmt.Sprintf("availability:%s:%s:%d", courtID, date, slotMinutes)
}

func (c *AvailabilityCache) Get(ctx context.Context, courtID, date string, slotMinutes int) ([]model.Slot, bool) {
	if !c.Enabled() {
		return nil, false
	}

	data, err := c.client.Get(ctx, key(courtID, date, slotMinutes)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Availability cache read failed", "court_id", courtID, "date", date, "error", err)
		}
		return nil, false
	}

	var slots []model.Slot
	if err := json.Unmarshal(data, &slots); err != nil {
		c.log.Warn("Availability cache entry corrupt, dropping", "court_id", courtID, "date", date, "error", err)
		return nil, false
	}

	return slots, true
}

func (c *AvailabilityCache) Set(ctx context.Context, courtID, date string, slotMinutes int, slots []model.Slot) {
	if !c.Enabled() {
		return
	}

	data, err := json.Marshal(slots)
	if err != nil {
		c.log.Warn("Failed to encode availability for cache", "court_id", courtID, "date", date, "error", err)
		return
	}

	if err := c.client.Set(ctx, key(courtID, date, slotMinutes), data, c.ttl).Err(); err != nil {
		c.log.Warn("Availability cache write failed", "court_id", courtID, "date", date, "error", err)
	}
}

// Invalidate drops every cached grid for the court and date, across all slot
// durations. Called after each successful create or cancel so new bookings
// become visible immediately.
func (c *AvailabilityCache) Invalidate(ctx context.Context, courtID, date string) {
	if !c.Enabled() {
		return
	}

	pattern := fmt.Sprintf("availability:%s:%s:*", courtID, date)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("Availability cache invalidation failed", "key", iter.Val(), "error", err)
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("Availability cache scan failed", "pattern", pattern, "error", err)
	}
}
