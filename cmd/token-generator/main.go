// Command token-generator mints access tokens and password hashes for operators.
//
// It reads the same configuration as the server (config.yaml, .env and
// WALLETUSER_* variables), so tokens it prints verify against a running server.
//
//	token-generator -audience admin
//	token-generator -audience user -user 6f1c...
//	token-generator -hash-password 's3cret-pass1'
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/phrazzld/wallet-user-api/internal/config"
	"github.com/phrazzld/wallet-user-api/internal/service/auth"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg.Auth, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.AuthConfig, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token-generator", flag.ContinueOnError)
	fs.SetOutput(out)
	audience := fs.String("audience", string(auth.AudienceAdmin), "token audience: admin or user")
	userID := fs.String("user", "", "user id to embed in the token (random when empty)")
	password := fs.String("hash-password", "", "print the bcrypt hash of this password instead of a token")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *password != "" {
		hash, err := auth.NewBcryptHasher(cfg.BCryptCost).Hash(*password)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, hash)
		return err
	}

	aud := auth.Audience(*audience)
	if !aud.Valid() {
		return fmt.Errorf("unknown audience %q", *audience)
	}

	id := uuid.New()
	if *userID != "" {
		parsed, err := uuid.Parse(*userID)
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		id = parsed
	}

	tokens, err := auth.NewTokenService(cfg)
	if err != nil {
		return err
	}
	token, err := tokens.Sign(ctx, id, aud)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
