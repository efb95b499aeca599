package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/drawwire/drawwire-server/internal/store/sqlite"
)

func newTestAuthService(t *testing.T) *Service {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	jwtConfig := &JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      24 * time.Hour,
	}

	return NewService(st, jwtConfig)
}

func TestRegister_RejectsInvalidUsername(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "ab", "password123"); !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}

	// Should be validated after trimming whitespace.
	if _, err := svc.Register(ctx, " ab ", "password123"); !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}

	if _, err := svc.Register(ctx, strings.Repeat("x", 33), "password123"); !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
}

func TestRegister_RejectsInvalidPassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "abc", "12345"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestRegister_RejectsDuplicateUsername(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "password123"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	// The stored username is trimmed, so the padded variant collides too.
	if _, err := svc.Register(ctx, " alice ", "password123"); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestLoginRoundTrip(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "password123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Login(ctx, "alice", "password123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	if claims.Username != "alice" || claims.IsGuest {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestLogin_RejectsWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "password123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, err := svc.Login(ctx, "alice", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(ctx, "nobody", "password123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestCreateGuestUser(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	token, sessionID, err := svc.CreateGuestUser(ctx)
	if err != nil {
		t.Fatalf("create guest: %v", err)
	}
	if sessionID == "" {
		t.Fatal("empty guest session id")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate guest token: %v", err)
	}
	if !claims.IsGuest {
		t.Fatal("guest token not marked as guest")
	}
	if !strings.HasPrefix(claims.Username, "guest_") {
		t.Fatalf("guest username = %q", claims.Username)
	}
}

func TestValidateToken_RejectsForeignSecret(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.Register(ctx, "alice", "password123")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	other := NewService(nil, &JWTConfig{
		Secret:   []byte("different-secret"),
		Issuer:   "test",
		Audience: "test",
		TTL:      time.Hour,
	})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("token validated with wrong secret")
	}
}
