package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/wallet-user-api/internal/config"
	"github.com/phrazzld/wallet-user-api/internal/mail"
	"github.com/phrazzld/wallet-user-api/internal/platform/postgres"
	"github.com/phrazzld/wallet-user-api/internal/platform/redis"
	"github.com/phrazzld/wallet-user-api/internal/service"
	"github.com/phrazzld/wallet-user-api/internal/service/auth"
	"github.com/phrazzld/wallet-user-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	userStore store.UserStore

	tokens      auth.TokenService
	hasher      auth.PasswordHasher
	mailer      mail.Sender
	userService service.UserService

	// closers release store handles at shutdown, in reverse order.
	closers []func() error
}

// newApplication creates a new application instance with all dependencies initialized.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.tokens, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("token service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes,
		"reset_token_lifetime_minutes", cfg.Auth.ResetTokenLifetimeMinutes)

	app.hasher = auth.NewBcryptHasher(cfg.Auth.BCryptCost)

	app.mailer, err = mail.New(cfg.Mail, cfg.Auth.ResetTokenLifetimeMinutes, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mail sender: %w", err)
	}

	if err := app.openStore(ctx); err != nil {
		return nil, err
	}

	app.userService = service.NewUserService(app.userStore, app.hasher, app.tokens, app.mailer, logger)
	return app, nil
}

// openStore connects the configured store driver.
func (app *application) openStore(ctx context.Context) error {
	switch app.config.Store.Driver {
	case "postgres":
		db, err := postgres.Open(ctx, app.config.Database)
		if err != nil {
			return err
		}
		app.closers = append(app.closers, db.Close)

		if app.config.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, db, "up", app.logger); err != nil {
				app.cleanup()
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
		}

		app.userStore = postgres.NewPostgresUserStore(db, app.logger)
		app.logger.Info("postgres user store ready")

	case "redis":
		client, err := redis.Open(ctx, app.config.Redis)
		if err != nil {
			return err
		}
		app.closers = append(app.closers, client.Close)

		app.userStore = redis.NewRedisUserStore(client, app.config.Redis.KeyPrefix, app.logger)
		app.logger.Info("redis user store ready", "key_prefix", app.config.Redis.KeyPrefix)

	default:
		return fmt.Errorf("unknown store driver %q", app.config.Store.Driver)
	}

	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			app.logger.Error("failed to release resource", "error", err)
		}
	}
	app.closers = nil
}
