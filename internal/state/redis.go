package state

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	convKeyPrefix = "conv:"
	refKeyPrefix  = "convref:"
)

// RedisStore mirrors MemoryStore on Redis, for deployments where the bot runs
// behind a restarting supervisor. Expiry is delegated to key TTLs, so the
// sweeper has nothing to do here.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Get(ctx context.Context, phone string) (*Entry, error) {
	raw, err := s.rdb.Get(ctx, convKeyPrefix+phone).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *RedisStore) Put(ctx context.Context, phone string, e Entry) error {
	// Drop a stale ref index left by the entry being overwritten.
	if old, err := s.Get(ctx, phone); err == nil && old != nil && old.PaymentRef != "" && old.PaymentRef != e.PaymentRef {
		s.rdb.Del(ctx, refKeyPrefix+old.PaymentRef)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, convKeyPrefix+phone, raw, s.ttl).Err(); err != nil {
		return err
	}
	if e.PaymentRef != "" {
		return s.rdb.Set(ctx, refKeyPrefix+e.PaymentRef, phone, s.ttl).Err()
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, phone string) error {
	e, err := s.Get(ctx, phone)
	if err != nil {
		return err
	}
	if e != nil && e.PaymentRef != "" {
		s.rdb.Del(ctx, refKeyPrefix+e.PaymentRef)
	}
	return s.rdb.Del(ctx, convKeyPrefix+phone).Err()
}

func (s *RedisStore) FindByPaymentRef(ctx context.Context, ref string) (string, *Entry, error) {
	phone, err := s.rdb.Get(ctx, refKeyPrefix+ref).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	e, err := s.Get(ctx, phone)
	if err != nil {
		return "", nil, err
	}
	if e == nil {
		// Entry expired ahead of its index key.
		s.rdb.Del(ctx, refKeyPrefix+ref)
		return "", nil, nil
	}
	return phone, e, nil
}
