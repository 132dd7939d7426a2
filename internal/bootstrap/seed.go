package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/fieldmap-io/fieldmap/internal/config"
	"github.com/fieldmap-io/fieldmap/internal/modules/model"
	"github.com/fieldmap-io/fieldmap/internal/modules/service"
)

// SeedAccount is one entry of the optional seed accounts file.
type SeedAccount struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Role     string `yaml:"role"`
}

// LoadSeedAccounts reads extra accounts from a YAML file:
//
//	accounts:
//	  - email: inspector@fieldmap.local
//	    password: changeme
//	    role: user
func LoadSeedAccounts(path string) ([]SeedAccount, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var doc struct {
		Accounts []SeedAccount `yaml:"accounts"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	return doc.Accounts, nil
}

// EnsureDefaultAccounts creates the configured admin and surveyor accounts
// when the service starts, plus any accounts from the seed file. Existing
// emails are left untouched, so the seed is idempotent across restarts.
func EnsureDefaultAccounts(ctx context.Context, users service.UserService, cfg *config.Config, log *zap.Logger) error {
	if !cfg.Seed.Enabled {
		return nil
	}

	accounts := []SeedAccount{
		{Email: cfg.Seed.AdminEmail, Password: cfg.Seed.AdminPassword, Name: "Admin", Role: model.RoleAdmin},
		{Email: cfg.Seed.UserEmail, Password: cfg.Seed.UserPassword, Name: "Surveyor", Role: model.RoleUser},
	}

	if cfg.Seed.File != "" {
		extra, err := LoadSeedAccounts(cfg.Seed.File)
		if err != nil {
			return err
		}
		accounts = append(accounts, extra...)
	}

	for _, a := range accounts {
		if a.Email == "" || a.Password == "" {
			continue
		}
		u, err := users.Create(ctx, service.CreateUserInput{
			Email:    a.Email,
			Password: a.Password,
			Name:     a.Name,
			Role:     a.Role,
		})
		switch {
		case err == nil:
			log.Sugar().Infow("seed account created", "email", a.Email, "role", u.Role)
		case errors.Is(err, service.ErrEmailTaken):
			// already seeded
		default:
			return fmt.Errorf("seed account %s: %w", a.Email, err)
		}
	}
	return nil
}
