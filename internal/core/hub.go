package core

import (
	"context"

	"github.com/rs/zerolog"
)

// Hub owns the room registry and the presence counter and serializes every
// mutation of them. Sessions register, issue commands, and receive events;
// the run loop handles one command at a time, so neither structure needs
// locking.
type Hub struct {
	registry *Registry
	presence Presence
	log      zerolog.Logger

	commands chan sessionCommand
}

type sessionCommand struct {
	sess *Session
	cmd  *Command
}

// NewHub constructs a hub around an injected registry. A nil logger
// disables logging.
func NewHub(registry *Registry, logger *zerolog.Logger) *Hub {
	if registry == nil {
		registry = NewRegistry()
	}
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Hub{
		registry: registry,
		log:      l,
		commands: make(chan sessionCommand, 64),
	}
}

// RegisterSession attaches a session and starts pumping its commands into
// the run loop. The attach is enqueued before the pump starts, so a
// session's lifecycle transitions and commands stay ordered relative to
// each other.
func (h *Hub) RegisterSession(s *Session) {
	h.commands <- sessionCommand{sess: s, cmd: &Command{Kind: commandAttach}}
	go func() {
		for cmd := range s.Commands {
			h.commands <- sessionCommand{sess: s, cmd: cmd}
		}
	}()
}

// UnregisterSession detaches a session. Duplicate detaches are absorbed.
func (h *Hub) UnregisterSession(s *Session) {
	h.commands <- sessionCommand{sess: s, cmd: &Command{Kind: commandDetach}}
}

// Run processes commands until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case sc := <-h.commands:
			h.handle(sc.sess, sc.cmd)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handle(s *Session, cmd *Command) {
	switch cmd.Kind {
	case commandAttach:
		h.attach(s)
	case commandDetach:
		h.detach(s)
	case CommandJoinRoom:
		h.joinRoom(s, cmd.Room)
	case CommandDraw:
		h.relayDraw(s, cmd.Draw)
	case CommandClear:
		h.relayClear(s)
	}
}

// attach puts the session into its private default room, named after the
// session itself, and announces the new presence count to everyone.
func (h *Hub) attach(s *Session) {
	h.registry.SetRoom(s, s.ID)
	count := h.presence.Increment()
	h.deliver(s, &Event{Kind: EventSession, SessionID: s.ID, Room: s.ID})
	h.broadcastCount(count)
	h.log.Info().Str("session_id", s.ID).Int("users", count).Msg("session connected")
}

func (h *Hub) detach(s *Session) {
	if !h.registry.RemoveSession(s.ID) {
		// Duplicate or late disconnect.
		return
	}
	count := h.presence.DecrementFloored()
	h.broadcastCount(count)
	h.log.Info().Str("session_id", s.ID).Int("users", count).Msg("session disconnected")
}

// joinRoom moves the session and acknowledges to the requester only.
// Joining the room the session is already in is a no-op: no registry
// mutation, no ack.
func (h *Hub) joinRoom(s *Session, roomID string) {
	if roomID == "" {
		return
	}
	current, ok := h.registry.Room(s.ID)
	if !ok {
		// Unregistered session; nothing to move.
		return
	}
	if current == roomID {
		return
	}
	h.registry.SetRoom(s, roomID)
	h.deliver(s, &Event{Kind: EventRoomJoined, Room: roomID})
	h.log.Debug().Str("session_id", s.ID).Str("room", roomID).Msg("session joined room")
}

// relayDraw stamps the sender id over whatever the client supplied and
// forwards the event to every other member of the sender's room.
func (h *Hub) relayDraw(s *Session, draw *Draw) {
	if draw == nil {
		return
	}
	roomID, ok := h.registry.Room(s.ID)
	if !ok {
		// Draw from a session with no room; drop silently.
		return
	}
	draw.Sender = s.ID
	h.relayToOthers(roomID, s.ID, &Event{Kind: EventDraw, Room: roomID, Draw: draw})
}

// relayClear forwards a scene wipe, stamped with the initiating session id,
// to the other members of the initiator's room.
func (h *Hub) relayClear(s *Session) {
	roomID, ok := h.registry.Room(s.ID)
	if !ok {
		return
	}
	h.relayToOthers(roomID, s.ID, &Event{Kind: EventClear, Room: roomID, Initiator: s.ID})
}

func (h *Hub) relayToOthers(roomID, senderID string, ev *Event) {
	h.registry.EachMember(roomID, func(member *Session) {
		if member.ID == senderID {
			return
		}
		h.deliver(member, ev)
	})
}

func (h *Hub) broadcastCount(count int) {
	ev := &Event{Kind: EventUserCount, Count: count}
	h.registry.EachSession(func(s *Session) {
		h.deliver(s, ev)
	})
}

// deliver is fire-and-forget: slow consumers lose events rather than stall
// the run loop.
func (h *Hub) deliver(s *Session, ev *Event) {
	select {
	case s.Events <- ev:
	default:
	}
}
