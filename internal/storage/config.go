package storage

import (
	"context"

	"github.com/nikmy/fleetsync/pkg/errors"
	"github.com/nikmy/fleetsync/pkg/logger"
)

type Driver string

const (
	DriverFile   Driver = "file"
	DriverRedis  Driver = "redis"
	DriverMemory Driver = "memory"
)

type Config struct {
	Driver Driver `yaml:"driver"`

	Dir string `yaml:"dir"`

	Redis RedisConfig `yaml:"redis"`
}

func New(ctx context.Context, log logger.Logger, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverFile, "":
		s, err := newFileStore(cfg.Dir, log)
		if err != nil {
			return nil, errors.WrapFail(err, "init file store")
		}
		return s, nil
	case DriverRedis:
		s, err := newRedisStore(ctx, cfg.Redis, log)
		if err != nil {
			return nil, errors.WrapFail(err, "init redis store")
		}
		return s, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
