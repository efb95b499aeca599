package core

// Error codes surfaced to clients in protocol error replies.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidMessage = "invalid_message"
)
