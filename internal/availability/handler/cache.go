package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"lamsa/pkg/logger"
	"lamsa/pkg/model"
)

// slotCache is a short-TTL cache in front of the engine. The engine
// itself stays pure; staleness after a new booking is acceptable
// because the commit path re-validates. A nil client disables caching.
type slotCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func newSlotCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *slotCache {
	return &slotCache{client: client, ttl: ttl, log: log}
}

func (c *slotCache) key(q *model.SlotQuery) string {
	return fmt.Sprintf("slots:%s:%s:%s:%d:%s", q.ProviderID, q.Date, q.ServiceID, q.GranularityMin, q.RequesterGender)
}

func (c *slotCache) get(ctx context.Context, q *model.SlotQuery) *model.DaySchedule {
	if c.client == nil {
		return nil
	}

	raw, err := c.client.Get(ctx, c.key(q)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Slot cache read failed", "key", c.key(q), "error", err)
		}
		return nil
	}

	var day model.DaySchedule
	if err := json.Unmarshal(raw, &day); err != nil {
		c.log.Warn("Slot cache entry corrupted, ignoring", "key", c.key(q), "error", err)
		return nil
	}
	return &day
}

func (c *slotCache) set(ctx context.Context, q *model.SlotQuery, day *model.DaySchedule) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(day)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.key(q), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Slot cache write failed", "key", c.key(q), "error", err)
	}
}
