package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/phrazzld/wallet-user-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(redisAddr string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:                0,
			LogLevel:            "error",
			ReadTimeoutSeconds:  5,
			WriteTimeoutSeconds: 5,
			IdleTimeoutSeconds:  5,
			AllowedOrigins:      []string{"http://localhost:3000"},
			DevMode:             true,
		},
		Store: config.StoreConfig{Driver: "redis"},
		Redis: config.RedisConfig{Addr: redisAddr, KeyPrefix: "apptest"},
		Auth: config.AuthConfig{
			UserJWTSecret:             "user-secret-that-is-long-enough-for-testing",
			AdminJWTSecret:            "admin-secret-that-is-long-enough-for-testing",
			TokenLifetimeMinutes:      60,
			ResetTokenLifetimeMinutes: 15,
			BCryptCost:                4,
		},
		Mail: config.MailConfig{
			Driver:   "log",
			From:     "no-reply@example.com",
			ResetURL: "http://localhost:3000/reset-password",
		},
	}
}

func newTestApp(t *testing.T) (*application, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	app, err := newApplication(context.Background(), testConfig(mr.Addr()), logger)
	require.NoError(t, err)
	t.Cleanup(app.cleanup)
	return app, mr
}

func TestNewApplication_UnknownStoreDriver(t *testing.T) {
	cfg := testConfig("")
	cfg.Store.Driver = "mongo"

	_, err := newApplication(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestNewApplication_UnreachableRedis(t *testing.T) {
	cfg := testConfig("127.0.0.1:1")

	_, err := newApplication(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.Error(t, err)
}

func TestRouter(t *testing.T) {
	app, mr := newTestApp(t)
	srv := httptest.NewServer(app.setupRouter())
	t.Cleanup(srv.Close)

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/health")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
		assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
	})

	t.Run("swagger ui", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/docs/doc.json")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "/api/v1/user/reset-password")
	})

	t.Run("unknown route", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/api/v2/whatever")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var env map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		assert.Equal(t, "NOT_FOUND", env["message"])
		assert.Nil(t, env["data"])
	})

	t.Run("create user persists to redis", func(t *testing.T) {
		payload, _ := json.Marshal(map[string]string{"name": "A", "email": "a@b.com"})
		resp, err := http.Post(srv.URL+"/api/v1/user", "application/json", bytes.NewReader(payload))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, mr.Exists("apptest:user:email:a@b.com"))
	})

	t.Run("cors preflight", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/v1/user", nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()

		assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	})
}

func TestStartHTTPServer_GracefulShutdown(t *testing.T) {
	app, _ := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.startHTTPServer(ctx, http.NotFoundHandler()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Nil(t, app.closers, "resources should be released on shutdown")
}
