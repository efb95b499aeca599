package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/drawwire/drawwire-server/internal/auth"
	"github.com/drawwire/drawwire-server/internal/config"
	"github.com/drawwire/drawwire-server/internal/core"
	"github.com/drawwire/drawwire-server/internal/store"
	"github.com/drawwire/drawwire-server/internal/store/sqlite"
)

// createTestStore creates an in-memory SQLite store with schema applied.
func createTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	return st
}

// createTestAuthService creates an auth service for testing.
func createTestAuthService(t *testing.T, st store.Store, jwtSecret string) *auth.Service {
	t.Helper()

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte(jwtSecret),
		Issuer:   "test",
		Audience: "test",
		TTL:      24 * time.Hour,
	}

	return auth.NewService(st, jwtConfig)
}

// stubPredictor returns a canned recognizer result or error.
type stubPredictor struct {
	result map[string]any
	err    error
}

func (p stubPredictor) Predict(_ context.Context, _ string) (map[string]any, error) {
	return p.result, p.err
}

type testEnv struct {
	ts    *httptest.Server
	store store.Store
	auth  *auth.Service
}

// startTestServer wires a full server around an in-memory store and the
// given predictor. The hub run loop is stopped on test cleanup.
func startTestServer(t *testing.T, predictor Predictor) *testEnv {
	t.Helper()

	logger := zerolog.Nop()

	st := createTestStore(t)
	authService := createTestAuthService(t, st, "test-secret")

	hub := core.NewHub(core.NewRegistry(), &logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := NewServer(hub, authService, st, predictor, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
		UploadsDir:        t.TempDir(),
	}, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, store: st, auth: authService}
}
