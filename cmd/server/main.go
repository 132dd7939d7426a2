package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/fieldmap-io/fieldmap/internal/bootstrap"
	"github.com/fieldmap-io/fieldmap/internal/config"
	"github.com/fieldmap-io/fieldmap/internal/infra/cache"
	"github.com/fieldmap-io/fieldmap/internal/infra/db"
	"github.com/fieldmap-io/fieldmap/internal/modules/handler"
	"github.com/fieldmap-io/fieldmap/internal/modules/service"
	"github.com/fieldmap-io/fieldmap/internal/router"
	"github.com/fieldmap-io/fieldmap/internal/telemetry"
)

func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer func() { _ = log.Sync() }()

	tp, err := telemetry.SetupTracing(cfg)
	if err != nil {
		log.Fatal("telemetry setup failed", zap.Error(err))
	}

	d := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)
	if tp != nil {
		if err := db.RegisterOpenTelemetryPlugin(d); err != nil {
			log.Warn("db tracing plugin failed", zap.Error(err))
		}
		if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
			log.Warn("redis tracing plugin failed", zap.Error(err))
		}
	}

	if err := bootstrap.Seed(context.Background(), inj); err != nil {
		log.Fatal("account seed failed", zap.Error(err))
	}

	r := router.NewRouter(router.RouterDeps{
		Config:          cfg,
		Log:             log,
		AuthService:     do.MustInvoke[service.AuthService](inj),
		AuthHandler:     do.MustInvoke[*handler.AuthHandler](inj),
		UserHandler:     do.MustInvoke[*handler.UserHandler](inj),
		ProjectHandler:  do.MustInvoke[*handler.ProjectHandler](inj),
		LayerHandler:    do.MustInvoke[*handler.LayerHandler](inj),
		AssetHandler:    do.MustInvoke[*handler.AssetHandler](inj),
		PhotoHandler:    do.MustInvoke[*handler.PhotoHandler](inj),
		GeometryHandler: do.MustInvoke[*handler.GeometryHandler](inj),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", zap.String("addr", cfg.HTTP.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown failed", zap.Error(err))
		}
		return cache.Close(rdb)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server stopped")
}
