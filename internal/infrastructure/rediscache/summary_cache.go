package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zyra-app/zyra-change-service/internal/domain"
)

// SummaryCache keeps per-merchant pending/applied counts so the dashboard does
// not hit Postgres on every poll. Every status transition invalidates the key.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSummaryCache(addr, password string, db int, ttl time.Duration) *SummaryCache {
	return &SummaryCache{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func summaryKey(merchantID string) string {
	return fmt.Sprintf("change-summary:%s", merchantID)
}

// Get returns (nil, nil) on a cache miss.
func (c *SummaryCache) Get(ctx context.Context, merchantID string) (*domain.ChangeSummary, error) {
	raw, err := c.client.Get(ctx, summaryKey(merchantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var summary domain.ChangeSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *SummaryCache) Set(ctx context.Context, merchantID string, summary domain.ChangeSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, summaryKey(merchantID), raw, c.ttl).Err()
}

func (c *SummaryCache) Invalidate(ctx context.Context, merchantID string) error {
	return c.client.Del(ctx, summaryKey(merchantID)).Err()
}
