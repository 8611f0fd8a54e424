package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const viewKeyPrefix = "listing:view:"

// ViewDeduplicator помнит недавние просмотры в Redis, чтобы повторные
// запросы не доходили до базы. Окончательную уникальность обеспечивает база.
type ViewDeduplicator struct {
	client *redis.Client
	ttl    time.Duration
}

func NewViewDeduplicator(client *redis.Client, ttl time.Duration) *ViewDeduplicator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &ViewDeduplicator{client: client, ttl: ttl}
}

// FirstSeen возвращает true, если пара (объявление, зритель) не встречалась в пределах ttl.
func (d *ViewDeduplicator) FirstSeen(ctx context.Context, listingID uuid.UUID, viewerKey string) (bool, error) {
	ok, err := d.client.SetNX(ctx, viewKey(listingID, viewerKey), 1, d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

// Release удаляет отметку одного зрителя.
func (d *ViewDeduplicator) Release(ctx context.Context, listingID uuid.UUID, viewerKey string) error {
	if err := d.client.Del(ctx, viewKey(listingID, viewerKey)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Forget удаляет все отметки о просмотрах объявления.
func (d *ViewDeduplicator) Forget(ctx context.Context, listingID uuid.UUID) error {
	iter := d.client.Scan(ctx, 0, viewKeyPrefix+listingID.String()+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return d.client.Del(ctx, keys...).Err()
}

func viewKey(listingID uuid.UUID, viewerKey string) string {
	return viewKeyPrefix + listingID.String() + ":" + viewerKey
}
