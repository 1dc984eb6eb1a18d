package remote

import (
	"context"
	"time"

	"github.com/nikmy/fleetsync/pkg/errors"
	"github.com/nikmy/fleetsync/pkg/logger"
)

// Row is a record in its remote shape, keyed by column names.
// The primary key is always exposed as "id".
type Row map[string]any

const ColumnID = "id"

// Client talks to named tables of a remote tabular store. Every error it
// returns is a *Failure.
type Client interface {
	List(ctx context.Context, table string) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) (Row, error)
	Update(ctx context.Context, table string, id string, row Row) (Row, error)
	Delete(ctx context.Context, table string, id string) error

	Close(ctx context.Context) error
}

type Driver string

const (
	DriverNone     Driver = ""
	DriverMongo    Driver = "mongo"
	DriverPostgres Driver = "postgres"
)

type Config struct {
	Driver   Driver         `yaml:"driver"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Postgres PostgresConfig `yaml:"postgres"`
}

type MongoConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`

	Database string `yaml:"database"`

	Auth struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"auth"`

	Pool struct {
		MinSize uint64 `yaml:"minSize"`
		MaxSize uint64 `yaml:"maxSize"`
	} `yaml:"pool"`
}

type PostgresConfig struct {
	DSN      string        `yaml:"dsn"`
	Timeout  time.Duration `yaml:"timeout"`
	MaxConns int32         `yaml:"maxConns"`
}

// New connects to the configured driver. DriverNone yields a nil client and
// no error: every collection then runs local-only.
func New(ctx context.Context, log logger.Logger, cfg Config) (Client, error) {
	switch cfg.Driver {
	case DriverNone:
		return nil, nil
	case DriverMongo:
		c, err := newMongo(ctx, log, cfg.Mongo)
		if err != nil {
			return nil, errors.WrapFail(err, "init mongo client")
		}
		return c, nil
	case DriverPostgres:
		c, err := newPostgres(ctx, log, cfg.Postgres)
		if err != nil {
			return nil, errors.WrapFail(err, "init postgres client")
		}
		return c, nil
	default:
		return nil, errors.Errorf("unknown remote driver %q", cfg.Driver)
	}
}
