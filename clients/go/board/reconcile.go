package board

import (
	"context"
	"encoding/json"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/drawwire/drawwire-server/internal/proto"
)

// outbound mirrors the server envelope with raw payload data so each event
// can be decoded by its own type.
type outbound struct {
	Type  string          `json:"type"`
	Event string          `json:"event,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error *proto.Error    `json:"error,omitempty"`
}

func readOutbound(ctx context.Context, conn *websocket.Conn, out *outbound) error {
	return wsjson.Read(ctx, conn, out)
}

// handle reconciles one server event into the local scene, then fires the
// matching callback. Remote edits are applied without touching the undo
// stack; remote clears push the current snapshot first so the wiped scene
// can still be recovered locally.
func (c *Client) handle(out outbound) {
	if out.Type == proto.OutboundTypeError {
		c.dispatcher.fireError(FromProtocolError(out.Error))
		return
	}

	switch out.Event {
	case proto.EventSession:
		var data proto.EventSessionData
		if err := json.Unmarshal(out.Data, &data); err != nil {
			c.dispatcher.fireError(WrapError(ErrorSerialization, "unmarshal session event", err))
			return
		}
		c.mu.Lock()
		c.sessionID = data.SessionID
		c.roomID = data.Room
		c.mu.Unlock()
		c.dispatcher.fireSession(SessionEvent{SessionID: data.SessionID, Room: data.Room})

	case proto.EventRoomJoined:
		var data proto.EventRoomJoinedData
		if err := json.Unmarshal(out.Data, &data); err != nil {
			c.dispatcher.fireError(WrapError(ErrorSerialization, "unmarshal room_joined event", err))
			return
		}
		c.mu.Lock()
		c.roomID = data.Room
		c.mu.Unlock()
		c.dispatcher.fireRoomJoined(RoomJoinedEvent{Room: data.Room})

	case proto.EventUserCount:
		var data proto.EventUserCountData
		if err := json.Unmarshal(out.Data, &data); err != nil {
			c.dispatcher.fireError(WrapError(ErrorSerialization, "unmarshal user_count event", err))
			return
		}
		c.dispatcher.fireUserCount(data.Count)

	case proto.EventDraw:
		var data proto.DrawData
		if err := json.Unmarshal(out.Data, &data); err != nil {
			c.dispatcher.fireError(WrapError(ErrorSerialization, "unmarshal draw event", err))
			return
		}
		c.applyRemoteDraw(data)

	case proto.EventClear:
		var data proto.ClearData
		if err := json.Unmarshal(out.Data, &data); err != nil {
			c.dispatcher.fireError(WrapError(ErrorSerialization, "unmarshal clear event", err))
			return
		}
		c.applyRemoteClear(data)
	}
}

func (c *Client) applyRemoteDraw(data proto.DrawData) {
	c.mu.Lock()
	if data.Sender == c.sessionID {
		// Own echo; the server shouldn't send these, but the sender
		// check is the contract either way.
		c.mu.Unlock()
		return
	}

	switch data.Kind {
	case proto.DrawKindPath:
		c.scene.AddStroke(Stroke{Path: data.Path, Color: data.Color, Width: data.Width})
	case proto.DrawKindObject:
		if err := c.scene.Restore(data.Snapshot); err != nil {
			c.mu.Unlock()
			c.dispatcher.fireError(WrapError(ErrorSerialization, "restore remote scene", err))
			return
		}
	default:
		c.mu.Unlock()
		c.dispatcher.fireError(WrapError(ErrorProtocol, "unknown draw kind: "+data.Kind, nil))
		return
	}
	c.mu.Unlock()

	c.dispatcher.fireDraw(DrawEvent{
		Kind:     data.Kind,
		Path:     data.Path,
		Color:    data.Color,
		Width:    data.Width,
		Snapshot: data.Snapshot,
		Sender:   data.Sender,
	})
}

func (c *Client) applyRemoteClear(data proto.ClearData) {
	c.mu.Lock()
	if data.Initiator == c.sessionID {
		c.mu.Unlock()
		return
	}
	if snap, err := c.scene.Snapshot(); err == nil {
		c.history.Push(snap)
	}
	c.scene.Reset()
	c.mu.Unlock()

	c.dispatcher.fireClear(ClearEvent{Initiator: data.Initiator})
}
