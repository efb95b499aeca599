package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

const (
	ProtocolVersion = 1

	InboundTypeJoin  = "join"
	InboundTypeDraw  = "draw"
	InboundTypeClear = "clear"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"

	EventSession    = "session"
	EventRoomJoined = "room_joined"
	EventUserCount  = "user_count"
	EventDraw       = "draw"
	EventClear      = "clear"
)

// Draw payload kinds.
const (
	DrawKindPath   = "path"
	DrawKindObject = "object"
)

// JoinData requests to move the session into a room.
type JoinData struct {
	Room string `json:"room"`
}

// DrawData is a drawing event. Kind selects the variant: "path" carries a
// single stroke (geometry is opaque to the server), "object" carries a
// serialized whole-scene snapshot. Sender is stamped server-side on relay;
// any client-supplied value is discarded.
type DrawData struct {
	Kind     string          `json:"kind"`
	Path     json.RawMessage `json:"path,omitempty"`
	Color    string          `json:"color,omitempty"`
	Width    float64         `json:"width,omitempty"`
	Snapshot string          `json:"snapshot,omitempty"`
	Sender   string          `json:"sender,omitempty"`
}

// ClearData is a scene wipe. Initiator is stamped server-side on relay.
type ClearData struct {
	Initiator string `json:"initiator,omitempty"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// EventSessionData tells a session its server-assigned identity and the
// private room it starts in.
type EventSessionData struct {
	SessionID string `json:"sessionId"`
	Room      string `json:"roomId"`
}

// EventRoomJoinedData acknowledges a successful room switch.
type EventRoomJoinedData struct {
	Room string `json:"roomId"`
}

// EventUserCountData carries the global presence count.
type EventUserCountData struct {
	Count int `json:"count"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
