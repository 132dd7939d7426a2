package bootstrap

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fieldmap-io/fieldmap/internal/config"
	"github.com/fieldmap-io/fieldmap/internal/infra/cache"
	"github.com/fieldmap-io/fieldmap/internal/infra/db"
	"github.com/fieldmap-io/fieldmap/internal/infra/logger"
	"github.com/fieldmap-io/fieldmap/internal/modules/handler"
	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/repo"
	"github.com/fieldmap-io/fieldmap/internal/modules/service"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		if cfg.Database.AutoMigrate {
			if err := d.AutoMigrate(
				&model.User{},
				&model.Project{},
				&model.Layer{},
				&model.Asset{},
				&model.Photo{},
			); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg)
	})
	do.Provide(inj, func(i *do.Injector) (*cache.Sessions, error) {
		return cache.NewSessions(do.MustInvoke[*redis.Client](i)), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.LayerRepo, error) {
		return repo.NewLayerRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.AssetRepo, error) {
		return repo.NewAssetRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.PhotoRepo, error) {
		return repo.NewPhotoRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.UserService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewUserService(
			do.MustInvoke[repo.UserRepo](i),
			cfg.Auth.PasswordPepper,
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AuthService, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return service.NewAuthService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*cache.Sessions](i),
			service.TokenConfig{
				Secret: cfg.Auth.TokenSecret,
				Issuer: cfg.Auth.TokenIssuer,
				TTL:    cfg.Auth.TokenTTL,
			},
			cfg.Auth.PasswordPepper,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(do.MustInvoke[repo.ProjectRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.LayerService, error) {
		return service.NewLayerService(do.MustInvoke[repo.LayerRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AssetService, error) {
		return service.NewAssetService(do.MustInvoke[repo.AssetRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.PhotoService, error) {
		return service.NewPhotoService(do.MustInvoke[repo.PhotoRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.GeometryService, error) {
		return service.NewGeometryService(), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.AuthHandler, error) {
		return handler.NewAuthHandler(
			do.MustInvoke[service.AuthService](i),
			do.MustInvoke[service.UserService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.UserHandler, error) {
		return handler.NewUserHandler(do.MustInvoke[service.UserService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(do.MustInvoke[service.ProjectService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.LayerHandler, error) {
		return handler.NewLayerHandler(do.MustInvoke[service.LayerService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AssetHandler, error) {
		return handler.NewAssetHandler(do.MustInvoke[service.AssetService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.PhotoHandler, error) {
		return handler.NewPhotoHandler(do.MustInvoke[service.PhotoService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.GeometryHandler, error) {
		return handler.NewGeometryHandler(do.MustInvoke[service.GeometryService](i)), nil
	})

	return inj
}

// Seed runs the account bootstrap against the built container.
func Seed(ctx context.Context, inj *do.Injector) error {
	return EnsureDefaultAccounts(
		ctx,
		do.MustInvoke[service.UserService](inj),
		do.MustInvoke[*config.Config](inj),
		do.MustInvoke[*zap.Logger](inj),
	)
}
