package board

import "time"

// Config controls how the client connects and how much history it keeps.
type Config struct {
	URL              string // ws:// or wss:// endpoint
	Token            string // optional JWT to label the session
	HandshakeTimeout time.Duration
	WriteTimeout     time.Duration

	// HistoryLimit bounds the undo stack. Zero means DefaultHistoryLimit;
	// the stack is never unbounded.
	HistoryLimit int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		WriteTimeout:     10 * time.Second,
		HistoryLimit:     DefaultHistoryLimit,
	}
}
