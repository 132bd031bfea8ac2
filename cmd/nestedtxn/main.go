package main

import (
	"context"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikmy/nestedtxn/internal/api"
	"github.com/nikmy/nestedtxn/internal/ledger"
	"github.com/nikmy/nestedtxn/internal/postgres"
	"github.com/nikmy/nestedtxn/pkg/errors"
	"github.com/nikmy/nestedtxn/pkg/logger"
	"github.com/nikmy/nestedtxn/pkg/txn"
)

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		stdlog.Panic(errors.WrapFail(err, "parse flags"))
	}

	cfg, err := loadConfig(f)
	if err != nil {
		stdlog.Panic(errors.WrapFail(err, "load config"))
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		stdlog.Panic(errors.WrapFail(err, "init logger"))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGABRT)
	defer cancel()

	conn, err := postgres.Connect(ctx, cfg.Postgres)
	if err != nil {
		stdlog.Panic(err)
	}
	defer func() {
		log.Error(conn.Close(context.Background()))
	}()

	l := ledger.New(log, conn, txn.NewRegistry(log))
	err = l.Migrate(ctx)
	if err != nil {
		log.Error(errors.WrapFail(err, "migrate ledger schema"))
		return
	}

	srv := api.NewServer(cfg.API, log, l)

	stopped := make(chan struct{})
	context.AfterFunc(ctx, func() {
		stdlog.Println("Graceful shutdown...")
		log.Error(srv.Shutdown(context.Background()))
		close(stopped)
	})

	stdlog.Println("Serving on", cfg.API.HTTP.Addr)
	err = srv.Serve(ctx)
	if err != nil && ctx.Err() == nil {
		log.Error(errors.WrapFail(err, "serve http"))
		return
	}

	<-stopped
	stdlog.Println("Shutdown complete")
}
