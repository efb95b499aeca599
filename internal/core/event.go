package core

// EventKind is a notification the core emits to sessions.
type EventKind int

const (
	// EventSession tells a freshly connected session its id and default
	// room. Unicast, sent exactly once after connect.
	EventSession EventKind = iota
	// EventRoomJoined acknowledges a room switch. Unicast to the
	// requesting session only, never broadcast to the room.
	EventRoomJoined
	// EventUserCount carries the global presence count. Broadcast to
	// every connected session after each connect and disconnect.
	EventUserCount
	// EventDraw delivers a drawing event to the other members of the
	// sender's room.
	EventDraw
	// EventClear delivers a scene wipe to the other members of the
	// initiator's room.
	EventClear
)

// Event is sent to sessions to describe what happened in the system.
type Event struct {
	Kind      EventKind
	SessionID string // EventSession
	Room      string // EventSession, EventRoomJoined
	Count     int    // EventUserCount
	Draw      *Draw  // EventDraw
	Initiator string // EventClear
}
