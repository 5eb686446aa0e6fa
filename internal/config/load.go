package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable the service reads,
// e.g. WALLETUSER_AUTH_USER_JWT_SECRET for auth.user_jwt_secret.
const EnvPrefix = "WALLETUSER"

// Load configuration from environment variables and optionally a .env file and a
// config.yaml in the working directory. Environment variables take precedence over
// values from config files. Returns a populated Config or an error if loading or
// validation fails.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct-level rules plus the cross-section rules that depend on
// the selected store driver.
func Validate(cfg *Config) error {
	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch cfg.Store.Driver {
	case "postgres":
		if cfg.Database.URL == "" {
			return fmt.Errorf("config validation failed: database.url is required for the postgres store")
		}
	case "redis":
		if cfg.Redis.Addr == "" {
			return fmt.Errorf("config validation failed: redis.addr is required for the redis store")
		}
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("server.idle_timeout_seconds", 60)
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost:5000",
		"http://localhost:3000",
		"http://localhost:3001",
	})
	v.SetDefault("server.dev_mode", false)

	v.SetDefault("store.driver", "postgres")

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_minutes", 5)
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key_prefix", "walletuser")

	v.SetDefault("auth.token_lifetime_minutes", 24*60)
	v.SetDefault("auth.reset_token_lifetime_minutes", 60)
	v.SetDefault("auth.bcrypt_cost", 10)

	v.SetDefault("mail.driver", "log")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.from", "no-reply@localhost.localdomain")
	v.SetDefault("mail.reset_url", "http://localhost:3000/reset-password")
}

// bindEnvs registers keys that have no default so AutomaticEnv can see them
// during Unmarshal.
func bindEnvs(v *viper.Viper) {
	for _, key := range []string{
		"database.url",
		"redis.password",
		"auth.user_jwt_secret",
		"auth.admin_jwt_secret",
		"mail.host",
		"mail.username",
		"mail.password",
	} {
		// BindEnv only fails when called without a key.
		_ = v.BindEnv(key)
	}
}
