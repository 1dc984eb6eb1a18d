package puller

import (
	"context"

	"github.com/nikmy/fleetsync/internal/fleet"
)

type Puller interface {
	DoWork(ctx context.Context) error
	Run(ctx context.Context)
}

type collection interface {
	Kind() fleet.Kind
	Refresh(ctx context.Context) error
}
