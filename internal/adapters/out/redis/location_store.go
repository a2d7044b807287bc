// Package redis caches the latest position reported by each courier.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "dispatch:courier:location:"

	// DefaultTTL bounds how long a position stays usable without a fresh ping.
	DefaultTTL = 12 * time.Hour
)

type cachedLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LocationStore implements ports.LocationStore on Redis strings holding JSON.
type LocationStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLocationStore connects to redisURL, in the form redis://[:password@]host[:port][/db].
// A non-positive ttl means DefaultTTL.
func NewLocationStore(redisURL string, ttl time.Duration) (*LocationStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &LocationStore{client: redis.NewClient(opts), ttl: ttl}, nil
}

func (s *LocationStore) Save(ctx context.Context, courierID kernel.UUID, location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}

	payload, err := json.Marshal(cachedLocation{Lat: location.Lat(), Lng: location.Lng()})
	if err != nil {
		return err
	}

	if err = s.client.Set(ctx, key(courierID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache location of courier %s: %w", courierID, err)
	}
	return nil
}

// Get returns nil, nil when nothing is cached for the courier.
func (s *LocationStore) Get(ctx context.Context, courierID kernel.UUID) (*kernel.Location, error) {
	raw, err := s.client.Get(ctx, key(courierID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read location of courier %s: %w", courierID, err)
	}

	var cached cachedLocation
	if err = json.Unmarshal(raw, &cached); err != nil {
		return nil, fmt.Errorf("corrupt cached location of courier %s: %w", courierID, err)
	}

	loc, err := kernel.NewLocation(cached.Lat, cached.Lng)
	if err != nil {
		return nil, err
	}
	return &loc, nil
}

// Ping checks if Redis is reachable.
func (s *LocationStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *LocationStore) Close() error {
	return s.client.Close()
}

func key(courierID kernel.UUID) string {
	return keyPrefix + courierID.String()
}
