package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:"app"`
	HTTP      HTTP      `mapstructure:"http"`
	Database  Database  `mapstructure:"database"`
	Redis     Redis     `mapstructure:"redis"`
	Auth      Auth      `mapstructure:"auth"`
	Seed      Seed      `mapstructure:"seed"`
	Telemetry Telemetry `mapstructure:"telemetry"`
	Log       Log       `mapstructure:"log"`
}

type App struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type HTTP struct {
	Addr string `mapstructure:"addr"`
}

type Database struct {
	// Path of the embedded SQLite file. ":memory:" is accepted for tests.
	Path        string `mapstructure:"path"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type Redis struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	PoolSize  int    `mapstructure:"pool_size"`
	EnableTLS bool   `mapstructure:"enable_tls"`
}

type Auth struct {
	TokenSecret string        `mapstructure:"token_secret"`
	TokenIssuer string        `mapstructure:"token_issuer"`
	TokenTTL    time.Duration `mapstructure:"token_ttl"`
	// Server-side pepper mixed into every password hash.
	PasswordPepper string `mapstructure:"password_pepper"`
}

// Seed controls the development/test account bootstrap. Disable in any real
// deployment.
type Seed struct {
	Enabled bool `mapstructure:"enabled"`
	// Optional YAML file with extra accounts; see bootstrap.LoadSeedAccounts.
	File string `mapstructure:"file"`

	AdminEmail    string `mapstructure:"admin_email"`
	AdminPassword string `mapstructure:"admin_password"`
	UserEmail     string `mapstructure:"user_email"`
	UserPassword  string `mapstructure:"user_password"`
}

type Telemetry struct {
	Enabled      bool    `mapstructure:"enabled"`
	OtlpEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

type Log struct {
	Level string `mapstructure:"level"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "fieldmap")
	v.SetDefault("app.env", "development")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("database.path", "fieldmap.db")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.password", "")
	v.SetDefault("auth.token_secret", "")
	v.SetDefault("auth.token_issuer", "fieldmap")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("auth.password_pepper", "")
	v.SetDefault("seed.enabled", true)
	v.SetDefault("seed.admin_email", "admin@fieldmap.local")
	v.SetDefault("seed.admin_password", "admin123")
	v.SetDefault("seed.user_email", "surveyor@fieldmap.local")
	v.SetDefault("seed.user_password", "survey123")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.sample_ratio", 1.0)
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")

	v.SetEnvPrefix("FIELDMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Auth.TokenSecret == "" {
		if cfg.App.Env == "production" {
			return nil, errors.New("auth.token_secret is required in production")
		}
		// Token signing needs a non-empty secret even in development.
		cfg.Auth.TokenSecret = "fieldmap-dev-secret"
	}
	return cfg, nil
}
