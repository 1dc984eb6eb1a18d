// Package puller periodically reloads remote-backed collections so that
// changes made by other clients of the remote store show up.
package puller

import (
	"context"
	"time"

	"github.com/nikmy/fleetsync/internal/fleet"
	"github.com/nikmy/fleetsync/pkg/errors"
	"github.com/nikmy/fleetsync/pkg/logger"
	"github.com/nikmy/fleetsync/pkg/tools/await"
)

type Config struct {
	// Interval between two refreshes, zero disables them.
	Interval time.Duration `yaml:"interval"`
}

func NewPuller(log logger.Logger, cfg Config, collections ...collection) Puller {
	return &puller{
		cfg:         cfg,
		log:         log.With("puller"),
		collections: collections,
	}
}

// FromRegistry pulls every remote-backed collection of r.
func FromRegistry(log logger.Logger, cfg Config, r *fleet.Registry) Puller {
	remote := r.Remote()

	collections := make([]collection, 0, len(remote))
	for _, c := range remote {
		collections = append(collections, c)
	}
	return NewPuller(log, cfg, collections...)
}

type puller struct {
	cfg         Config
	log         logger.Logger
	collections []collection
}

func (p *puller) DoWork(ctx context.Context) error {
	errs := make([]error, 0, len(p.collections))
	for _, c := range p.collections {
		err := c.Refresh(ctx)
		if err != nil {
			errs = append(errs, errors.WrapFailf(err, "refresh %s", c.Kind()))
		}
	}

	return errors.Join(errs)
}

// Run blocks until ctx is done.
func (p *puller) Run(ctx context.Context) {
	if p.cfg.Interval <= 0 || len(p.collections) == 0 {
		p.log.Infof("periodic refresh is disabled")
		return
	}

	tick := await.Tick(p.cfg.Interval)
	defer tick.Stop()

	for tick.Await(ctx) {
		err := p.DoWork(ctx)
		if err != nil {
			p.log.Warn(err)
		}
	}
}
