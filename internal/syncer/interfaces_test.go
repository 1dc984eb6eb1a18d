package syncer

import (
	"github.com/nikmy/fleetsync/internal/notify"
	"github.com/nikmy/fleetsync/internal/remote"
)

//go:generate mockgen -source=interfaces_test.go -destination=mocks_test.go -package=syncer

type remoteClient interface {
	remote.Client
}

type notifier interface {
	notify.Notifier
}
