package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikmy/fleetsync/internal/api"
	"github.com/nikmy/fleetsync/internal/fleet"
	"github.com/nikmy/fleetsync/internal/notify"
	"github.com/nikmy/fleetsync/internal/puller"
	"github.com/nikmy/fleetsync/internal/remote"
	"github.com/nikmy/fleetsync/internal/storage"
	"github.com/nikmy/fleetsync/internal/syncer"
	"github.com/nikmy/fleetsync/pkg/errors"
	"github.com/nikmy/fleetsync/pkg/logger"
)

func main() {
	cfg, err := loadConfig(parseFlags())
	if err != nil {
		stdlog.Panic(errors.WrapFail(err, "load config"))
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		stdlog.Panic(errors.WrapFail(err, "init logger"))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGABRT)
	defer cancel()

	store, err := storage.New(ctx, log, cfg.Storage)
	if err != nil {
		log.Panic(errors.WrapFail(err, "init local storage"))
	}

	remoteClient, err := remote.New(ctx, log, cfg.Remote)
	if err != nil {
		log.Panic(errors.WrapFail(err, "init remote client"))
	}

	tg, err := notify.Telegram(ctx, log, cfg.Telegram)
	if err != nil {
		log.Panic(errors.WrapFail(err, "init telegram notifier"))
	}

	registry := fleet.NewRegistry(ctx, log, cfg.Collections, syncer.Deps{
		Store:    store,
		Remote:   remoteClient,
		Notifier: notify.Multi(notify.Log(log), tg),
	})

	go puller.FromRegistry(log, cfg.Refresh, registry).Run(ctx)

	server := api.NewServer(cfg.HTTP, log, registry)

	stopped := make(chan struct{})
	context.AfterFunc(ctx, func() {
		stdlog.Println("Graceful shutdown...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		err := shutdown(shutdownCtx, server, remoteClient, store)
		if err != nil {
			log.Error(err)
		}
		stopped <- struct{}{}
	})

	go func() {
		err := server.Serve(ctx)
		if err != nil && ctx.Err() == nil {
			log.Error(errors.WrapFail(err, "serve http"))
			cancel()
		}
	}()
	stdlog.Println("Service has been started")

	<-stopped
	stdlog.Println("Shutdown complete")
}

func shutdown(ctx context.Context, server api.Server, remoteClient remote.Client, store storage.Store) error {
	var errs []error

	err := server.Shutdown(ctx)
	if err != nil {
		errs = append(errs, err)
	}

	if remoteClient != nil {
		err = remoteClient.Close(ctx)
		if err != nil {
			errs = append(errs, errors.WrapFail(err, "close remote client"))
		}
	}

	err = store.Close(ctx)
	if err != nil {
		errs = append(errs, errors.WrapFail(err, "close local storage"))
	}

	return errors.Join(errs)
}
