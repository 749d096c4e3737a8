// Package cache keeps read-through copies of rides in Redis. The store stays
// authoritative; an entry is dropped whenever the ride's inventory changes.
//
// Each ride lives in a hash holding the snapshot and its version. Invalidate
// drops the snapshot but keeps the committed version as a floor, so a reader
// that loaded an older row before the write cannot put it back.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/srgjo27/carpool_booking/internal/core/domain"
	"github.com/srgjo27/carpool_booking/internal/core/ports"
)

const (
	fieldVersion = "version"
	fieldData    = "data"
)

// KEYS[1] ride key; ARGV version, payload, ttl ms.
var setScript = redis.NewScript(`
local cur = tonumber(redis.call('HGET', KEYS[1], 'version') or '0')
if cur > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'version', ARGV[1], 'data', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// KEYS[1] ride key; ARGV version, ttl ms.
var invalidateScript = redis.NewScript(`
local cur = tonumber(redis.call('HGET', KEYS[1], 'version') or '0')
if cur >= tonumber(ARGV[1]) then
	return 0
end
redis.call('HDEL', KEYS[1], 'data')
redis.call('HSET', KEYS[1], 'version', ARGV[1])
redis.call('PEXPIRE', KEYS[1], ARGV[2])
return 1
`)

type RideCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRideCache(client *redis.Client, ttl time.Duration) *RideCache {
	return &RideCache{client: client, ttl: ttl}
}

func rideKey(rideID uuid.UUID) string {
	return fmt.Sprintf("ride:%s", rideID.String())
}

func (c *RideCache) Get(ctx context.Context, rideID uuid.UUID) (*domain.Ride, error) {
	raw, err := c.client.HGet(ctx, rideKey(rideID), fieldData).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ports.ErrCacheMiss
		}
		return nil, fmt.Errorf("get cached ride: %w", err)
	}

	var ride domain.Ride
	if err := json.Unmarshal(raw, &ride); err != nil {
		return nil, fmt.Errorf("decode cached ride: %w", err)
	}
	return &ride, nil
}

// Set stores the snapshot unless a newer version was already committed.
func (c *RideCache) Set(ctx context.Context, ride *domain.Ride) error {
	raw, err := json.Marshal(ride)
	if err != nil {
		return fmt.Errorf("encode ride: %w", err)
	}

	err = setScript.Run(ctx, c.client, []string{rideKey(ride.ID)}, ride.Version, string(raw), c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("cache ride: %w", err)
	}
	return nil
}

func (c *RideCache) Invalidate(ctx context.Context, rideID uuid.UUID, version int) error {
	err := invalidateScript.Run(ctx, c.client, []string{rideKey(rideID)}, version, c.ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("invalidate ride: %w", err)
	}
	return nil
}
