package api

import (
	"context"

	"github.com/nikmy/fleetsync/internal/fleet"
)

type Server interface {
	Serve(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type registry interface {
	Collection(kind fleet.Kind) (fleet.Collection, bool)
}
