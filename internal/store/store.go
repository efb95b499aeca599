package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// User represents a registered or guest user. Users only label whiteboard
// sessions with a stable identity; the relay itself is fully anonymous.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsGuest      bool
	SessionID    string // guest session tracking
	CreatedAt    time.Time
}

// Capture statuses.
const (
	CaptureStatusOK    = "ok"
	CaptureStatusError = "error"
)

// Capture is the durable trace of one scene-capture request: the saved
// image and the outcome of the recognizer call.
type Capture struct {
	ID        int64
	Filename  string
	UserID    *int64 // nil for anonymous captures
	Status    string
	Result    string // recognizer JSON on success, error text otherwise
	CreatedAt time.Time
}

// UserStore persists users.
type UserStore interface {
	CreateUser(ctx context.Context, username, passwordHash string) (*User, error)
	CreateGuestUser(ctx context.Context, sessionID string) (*User, error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

// CaptureStore persists capture records.
type CaptureStore interface {
	SaveCapture(ctx context.Context, capture *Capture) error
	ListCaptures(ctx context.Context, limit int) ([]*Capture, error)
}

// Store is the full persistence interface.
type Store interface {
	UserStore
	CaptureStore

	Close() error
}
