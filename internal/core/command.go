package core

// CommandKind describes what the session wants to do.
type CommandKind int

const (
	// CommandJoinRoom moves the session into another room.
	CommandJoinRoom CommandKind = iota
	// CommandDraw relays a drawing event to the session's room.
	CommandDraw
	// CommandClear relays a scene wipe to the session's room.
	CommandClear

	// commandAttach and commandDetach are issued by the hub itself when a
	// session registers or unregisters, so lifecycle transitions flow
	// through the same ordered channel as everything else.
	commandAttach
	commandDetach
)

// Command represents an action requested by a session.
type Command struct {
	Kind CommandKind
	Room string // CommandJoinRoom target
	Draw *Draw  // CommandDraw payload
}
