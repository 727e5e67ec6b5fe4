package locker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var (
	// ErrLocked is returned when another holder owns the key.
	ErrLocked = errors.New("locker: key is locked")
	// ErrLockLost is returned by Refresh when the lease expired and may be held by someone else.
	ErrLockLost = errors.New("locker: lock lost")
	ErrLocker   = errors.New("locker: backend error")
)

// Lease is a held lock. Refresh extends it by the locker TTL.
type Lease interface {
	Refresh(ctx context.Context) error
	Release(ctx context.Context) error
}

// RedisLocker hands out short-lived exclusive locks backed by Redis.
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	prefix string
}

func NewRedisLocker(rdb *redis.Client, prefix string, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		prefix: prefix,
	}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (Lease, error) {
	lock, err := l.client.Obtain(ctx, l.prefix+key, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", ErrLocked, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: obtain %s: %v", ErrLocker, key, err)
	}
	return &redisLease{lock: lock, key: key, ttl: l.ttl}, nil
}

type redisLease struct {
	lock *redislock.Lock
	key  string
	ttl  time.Duration
}

func (r *redisLease) Refresh(ctx context.Context) error {
	err := r.lock.Refresh(ctx, r.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return fmt.Errorf("%w: %s", ErrLockLost, r.key)
	}
	if err != nil {
		return fmt.Errorf("%w: refresh %s: %v", ErrLocker, r.key, err)
	}
	return nil
}

func (r *redisLease) Release(ctx context.Context) error {
	if err := r.lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return fmt.Errorf("%w: release %s: %v", ErrLocker, r.key, err)
	}
	return nil
}

// NoopLocker always grants the lock. Used when Redis is disabled.
type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, string) (Lease, error) {
	return noopLease{}, nil
}

type noopLease struct{}

func (noopLease) Refresh(context.Context) error { return nil }
func (noopLease) Release(context.Context) error { return nil }
