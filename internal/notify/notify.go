package notify

import (
	"context"

	"github.com/nikmy/fleetsync/pkg/errors"
	"github.com/nikmy/fleetsync/pkg/logger"
)

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

type Notification struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

func Success(description string) Notification {
	return Notification{Title: "Success", Description: description, Variant: VariantDefault}
}

func Failure(description string) Notification {
	return Notification{Title: "Error", Description: description, Variant: VariantDestructive}
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Func adapts a plain function to Notifier.
type Func func(ctx context.Context, n Notification)

func (f Func) Notify(ctx context.Context, n Notification) {
	f(ctx, n)
}

var Discard Notifier = Func(func(context.Context, Notification) {})

func Log(log logger.Logger) Notifier {
	log = log.With("notifications")
	return Func(func(_ context.Context, n Notification) {
		if n.Variant == VariantDestructive {
			log.Warn(errors.Errorf("%s: %s", n.Title, n.Description))
			return
		}
		log.Infof("%s: %s", n.Title, n.Description)
	})
}

// Multi delivers every notification to each non-nil sink in order.
func Multi(sinks ...Notifier) Notifier {
	active := make([]Notifier, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			active = append(active, s)
		}
	}

	return Func(func(ctx context.Context, n Notification) {
		for _, s := range active {
			s.Notify(ctx, n)
		}
	})
}
