package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Lease is a best-effort cross-replica guard around the oracle call. It only
// reduces duplicate oracle spend when several replicas hit the same
// un-materialized property at once; exactly-once persistence is enforced by
// the store's batch guard regardless of lease behavior.
type Lease interface {
	// Acquire returns true if this caller may generate for the property.
	Acquire(ctx context.Context, propertyID uuid.UUID) (bool, error)
	// Release frees the lease early; the TTL is the backstop.
	Release(ctx context.Context, propertyID uuid.UUID)
}

// RedisLease implements Lease with SET NX + TTL.
type RedisLease struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisLease(client *redis.Client, ttl time.Duration) *RedisLease {
	return &RedisLease{client: client, ttl: ttl}
}

func (l *RedisLease) Acquire(ctx context.Context, propertyID uuid.UUID) (bool, error) {
	return l.client.SetNX(ctx, leaseKey(propertyID), "1", l.ttl).Result()
}

func (l *RedisLease) Release(ctx context.Context, propertyID uuid.UUID) {
	l.client.Del(ctx, leaseKey(propertyID))
}

func leaseKey(propertyID uuid.UUID) string {
	return "rentcheck:materialize:" + propertyID.String()
}

// NoopLease always grants; used when redis is not configured.
type NoopLease struct{}

func (NoopLease) Acquire(context.Context, uuid.UUID) (bool, error) { return true, nil }
func (NoopLease) Release(context.Context, uuid.UUID)               {}

var (
	_ Lease = (*RedisLease)(nil)
	_ Lease = NoopLease{}
)
