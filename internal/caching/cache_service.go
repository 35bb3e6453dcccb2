package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"beanmart/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService caches hot inventory-item reads. Entries are invalidated on
// every quantity change, so a miss is always safe and an error never fails
// the calling operation.
type CacheService interface {
	GetItem(ctx context.Context, itemID uuid.UUID) (*models.InventoryItem, error)
	SetItem(ctx context.Context, item *models.InventoryItem, ttl time.Duration) error
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func itemKey(itemID uuid.UUID) string {
	return fmt.Sprintf("item:%s", itemID.String())
}

func (s *redisCacheService) GetItem(ctx context.Context, itemID uuid.UUID) (*models.InventoryItem, error) {
	data, err := s.client.Get(ctx, itemKey(itemID)).Result()
	if err == redis.Nil {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, err
	}

	var item models.InventoryItem
	if err := json.Unmarshal([]byte(data), &item); err != nil {
		return nil, fmt.Errorf("unmarshal cached item: %w", err)
	}
	return &item, nil
}

func (s *redisCacheService) SetItem(ctx context.Context, item *models.InventoryItem, ttl time.Duration) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("marshal item for cache: %w", err)
	}
	return s.client.Set(ctx, itemKey(item.ID), data, ttl).Err()
}

func (s *redisCacheService) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return s.client.Del(ctx, itemKey(itemID)).Err()
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
