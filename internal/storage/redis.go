package storage

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/nikmy/fleetsync/pkg/errors"
	"github.com/nikmy/fleetsync/pkg/logger"
)

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	Timeout  time.Duration `yaml:"timeout"`
}

type redisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

func newRedisStore(ctx context.Context, cfg RedisConfig, log logger.Logger) (*redisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		ReadTimeout: cfg.Timeout,
	})

	err := rdb.Ping(ctx).Err()
	if err != nil {
		_ = rdb.Close()
		return nil, errors.WrapFail(err, "ping redis")
	}

	s := newRedisWith(rdb, cfg.Prefix, log)
	s.close = rdb.Close
	return s, nil
}

func newRedisWith(rdb redisCmdable, prefix string, log logger.Logger) *redisStore {
	return &redisStore{
		rdb:    rdb,
		prefix: prefix,
		close:  func() error { return nil },
		log:    log.With("redis_storage"),
	}
}

// redisStore keeps every key as a plain string value without expiration.
type redisStore struct {
	rdb    redisCmdable
	prefix string
	close  func() error
	log    logger.Logger
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.WrapFailf(err, "get %s from redis", key)
	}
	return value, nil
}

func (s *redisStore) Put(ctx context.Context, key string, value []byte) error {
	s.log.Debugf("saving %d bytes to %s", len(value), s.prefix+key)
	err := s.rdb.Set(ctx, s.prefix+key, value, 0).Err()
	return errors.WrapFailf(err, "set %s in redis", key)
}

func (s *redisStore) Close(context.Context) error {
	return errors.WrapFail(s.close(), "close redis client")
}
