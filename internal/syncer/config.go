package syncer

import (
	"github.com/nikmy/fleetsync/internal/entity"
	"github.com/nikmy/fleetsync/internal/notify"
	"github.com/nikmy/fleetsync/internal/remote"
	"github.com/nikmy/fleetsync/internal/shape"
	"github.com/nikmy/fleetsync/internal/storage"
	"github.com/nikmy/fleetsync/internal/validate"
)

// Config describes one collection. It is read once by New and never changes.
type Config[T entity.Indexed] struct {
	// Name is the human-readable entity name used in notifications.
	Name string

	StorageKey string

	// Remote requests the remote-backed mode. It only takes effect when
	// Table is set and a remote client is available.
	Remote bool
	Table  string

	Validator   validate.Validator
	Transformer shape.Transformer

	OnAdd    func(created T)
	OnUpdate func(id string, patch entity.Fields)
	OnDelete func(id string)
}

type Deps struct {
	Store    storage.Store
	Remote   remote.Client
	Notifier notify.Notifier
}

type Mode int

const (
	ModeLocal Mode = iota
	ModeRemote
)

func (m Mode) String() string {
	if m == ModeRemote {
		return "remote"
	}
	return "local"
}
