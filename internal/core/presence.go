package core

// Presence tracks the global count of connected sessions. The count is a
// process statistic, not room-scoped, and is never persisted.
type Presence struct {
	count int
}

// Increment records a new connection and returns the updated count.
func (p *Presence) Increment() int {
	p.count++
	return p.count
}

// DecrementFloored records a disconnect and returns the updated count.
// The count never goes below zero so duplicate or late disconnect
// notifications are absorbed.
func (p *Presence) DecrementFloored() int {
	if p.count > 0 {
		p.count--
	}
	return p.count
}

// Count returns the current number of connected sessions.
func (p *Presence) Count() int {
	return p.count
}
