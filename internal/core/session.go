package core

// Session is one live whiteboard connection as seen by the core layer.
// UserID is a stable external identity and stays empty for anonymous
// sessions; the relay never depends on it.
type Session struct {
	ID       string
	UserID   string
	Commands chan *Command
	Events   chan *Event
}

// NewSession constructs a session with initialized channels.
func NewSession(id, userID string) *Session {
	return &Session{
		ID:       id,
		UserID:   userID,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 8),
	}
}
