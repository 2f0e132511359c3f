package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ValkeyClient caches the service-catalog listing so the storefront's hottest
// read does not hit the database on every page load.
type ValkeyClient struct {
	client *redis.Client
	ttl    time.Duration
}

type Config struct {
	Addr     string
	Password string
	TTLSec   int
}

func NewValkeyClient(cfg Config) (*ValkeyClient, error) {
	if cfg.TTLSec == 0 {
		cfg.TTLSec = 60
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
	}

	return &ValkeyClient{
		client: rdb,
		ttl:    time.Duration(cfg.TTLSec) * time.Second,
	}, nil
}

// Keys carry every parameter that shapes the payload; a page cached for one
// pageSize must never be served for another.
func servicesListKey(category string, pageSize int) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("services:list:%s:%d", category, pageSize)
}

// GetServicesListRaw returns the cached listing as raw JSON to avoid an
// unmarshal/marshal round trip on cache hits.
func (v *ValkeyClient) GetServicesListRaw(ctx context.Context, category string, pageSize int) ([]byte, error) {
	raw, err := v.client.Get(ctx, servicesListKey(category, pageSize)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("services list not in cache")
		}
		return nil, fmt.Errorf("cache lookup error: %w", err)
	}
	return raw, nil
}

func (v *ValkeyClient) SetServicesList(ctx context.Context, category string, pageSize int, services interface{}) error {
	payload, err := json.Marshal(services)
	if err != nil {
		return fmt.Errorf("failed to marshal services list: %w", err)
	}
	return v.client.Set(ctx, servicesListKey(category, pageSize), payload, v.ttl).Err()
}

// InvalidateServicesList drops every cached listing page. Called after an
// admin adds a listing so stale pages never outlive one admin write.
func (v *ValkeyClient) InvalidateServicesList(ctx context.Context) error {
	iter := v.client.Scan(ctx, 0, "services:list:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := v.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to delete cache key %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

func (v *ValkeyClient) Close() error {
	return v.client.Close()
}
