// Package board is the Go client for the drawwire whiteboard server. It
// keeps a local scene consistent across local edits and remote events, with
// linear local-only undo/redo: a user's undo never undoes another
// participant's stroke.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"sync"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/drawwire/drawwire-server/internal/proto"
)

// Client connects to a whiteboard room and reconciles local and remote
// edits into one scene.
type Client struct {
	cfg        Config
	logger     Logger
	conn       *websocket.Conn
	writeCh    chan proto.Inbound
	dispatcher Dispatcher

	mu        sync.Mutex
	connected bool
	cancel    context.CancelFunc
	sessionID string
	roomID    string
	scene     *Scene
	history   *History
}

// NewClient constructs a client with the provided config. Use
// DefaultConfig() as a starting point.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:     cfg,
		logger:  noopLogger{},
		writeCh: make(chan proto.Inbound, 16),
		scene:   NewScene(),
		history: NewHistory(cfg.HistoryLimit),
	}
}

// SetLogger overrides the logger (optional).
func (c *Client) SetLogger(l Logger) {
	if l != nil {
		c.logger = l
	}
}

// OnSession registers a callback for the session identity event.
func (c *Client) OnSession(fn func(SessionEvent)) { c.dispatcher.SetOnSession(fn) }

// OnRoomJoined registers a callback for room switch acks.
func (c *Client) OnRoomJoined(fn func(RoomJoinedEvent)) { c.dispatcher.SetOnRoomJoined(fn) }

// OnUserCount registers a callback for presence updates.
func (c *Client) OnUserCount(fn func(int)) { c.dispatcher.SetOnUserCount(fn) }

// OnDraw registers a callback for remote drawing events.
func (c *Client) OnDraw(fn func(DrawEvent)) { c.dispatcher.SetOnDraw(fn) }

// OnClear registers a callback for remote scene wipes.
func (c *Client) OnClear(fn func(ClearEvent)) { c.dispatcher.SetOnClear(fn) }

// OnError registers a callback for errors.
func (c *Client) OnError(fn func(error)) { c.dispatcher.SetOnError(fn) }

// Connect dials the server and starts the internal loops. The session
// identity arrives asynchronously via OnSession.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.connected {
		c.mu.Unlock()
		return ErrAlreadyConnected
	}
	c.mu.Unlock()

	if c.cfg.URL == "" {
		return errors.New("empty URL")
	}
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return err
	}
	if c.cfg.Token != "" {
		q := u.Query()
		q.Set("token", c.cfg.Token)
		u.RawQuery = q.Encode()
	}

	dialCtx := ctx
	if c.cfg.HandshakeTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, c.cfg.HandshakeTimeout)
		defer cancel()
	}

	ws, _, err := websocket.Dial(dialCtx, u.String(), nil)
	if err != nil {
		return WrapError(ErrorConnection, "dial failed", err)
	}
	c.conn = ws

	runCtx, cancel := context.WithCancel(context.Background())
	c.mu.Lock()
	c.cancel = cancel
	c.connected = true
	c.mu.Unlock()

	go c.readLoop(runCtx)
	go c.writeLoop(runCtx)
	return nil
}

// Join moves the session into a room. Joining the current room is silently
// absorbed by the server.
func (c *Client) Join(ctx context.Context, room string) error {
	return c.send(ctx, proto.InboundTypeJoin, proto.JoinData{Room: room})
}

// DrawPath applies one local stroke and broadcasts it. The pre-mutation
// snapshot goes onto the undo stack; the redo stack is invalidated.
func (c *Client) DrawPath(ctx context.Context, path json.RawMessage, color string, width float64) error {
	c.mu.Lock()
	snap, err := c.scene.Snapshot()
	if err != nil {
		c.mu.Unlock()
		return WrapError(ErrorSerialization, "snapshot scene", err)
	}
	c.history.Push(snap)
	c.scene.AddStroke(Stroke{Path: path, Color: color, Width: width})
	c.mu.Unlock()

	return c.send(ctx, proto.InboundTypeDraw, proto.DrawData{
		Kind:  proto.DrawKindPath,
		Path:  path,
		Color: color,
		Width: width,
	})
}

// DrawScene replaces the whole local scene (composite edits such as text
// objects) and broadcasts the new snapshot.
func (c *Client) DrawScene(ctx context.Context, snapshot string) error {
	c.mu.Lock()
	prev, err := c.scene.Snapshot()
	if err != nil {
		c.mu.Unlock()
		return WrapError(ErrorSerialization, "snapshot scene", err)
	}
	if err := c.scene.Restore(snapshot); err != nil {
		c.mu.Unlock()
		return WrapError(ErrorSerialization, "restore scene", err)
	}
	c.history.Push(prev)
	c.mu.Unlock()

	return c.send(ctx, proto.InboundTypeDraw, proto.DrawData{
		Kind:     proto.DrawKindObject,
		Snapshot: snapshot,
	})
}

// Clear wipes the local scene and broadcasts the wipe to the room.
func (c *Client) Clear(ctx context.Context) error {
	c.mu.Lock()
	snap, err := c.scene.Snapshot()
	if err != nil {
		c.mu.Unlock()
		return WrapError(ErrorSerialization, "snapshot scene", err)
	}
	c.history.Push(snap)
	c.scene.Reset()
	c.mu.Unlock()

	return c.send(ctx, proto.InboundTypeClear, nil)
}

// Undo restores the state before the last local mutation. Local only: it
// is never broadcast and never touches other participants' edits. Reports
// false when there is nothing to undo.
func (c *Client) Undo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.scene.Snapshot()
	if err != nil {
		return false
	}
	snap, ok := c.history.Undo(current)
	if !ok {
		return false
	}
	if err := c.scene.Restore(snap); err != nil {
		return false
	}
	return true
}

// Redo restores the last undone state. Valid only immediately after Undo
// with no intervening edit.
func (c *Client) Redo() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, err := c.scene.Snapshot()
	if err != nil {
		return false
	}
	snap, ok := c.history.Redo(current)
	if !ok {
		return false
	}
	if err := c.scene.Restore(snap); err != nil {
		return false
	}
	return true
}

// SessionID returns the server-assigned session id, empty until the
// session event arrives.
func (c *Client) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Room returns the room the session currently belongs to.
func (c *Client) Room() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.roomID
}

// SceneSnapshot serializes the current scene.
func (c *Client) SceneSnapshot() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene.Snapshot()
}

// StrokeCount returns the number of strokes in the local scene.
func (c *Client) StrokeCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene.Len()
}

// Close shuts down the client and closes the WebSocket.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.connected = false
	c.mu.Unlock()
	if c.conn != nil {
		return c.conn.Close(websocket.StatusNormalClosure, "client close")
	}
	return nil
}

func (c *Client) send(ctx context.Context, msgType string, payload any) error {
	c.mu.Lock()
	connected := c.connected
	c.mu.Unlock()
	if !connected {
		return ErrNotConnected
	}

	in := proto.Inbound{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return WrapError(ErrorSerialization, "marshal payload", err)
		}
		in.Data = data
	}

	select {
	case c.writeCh <- in:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Client) readLoop(ctx context.Context) {
	for {
		var out outbound
		if err := readOutbound(ctx, c.conn, &out); err != nil {
			if isExpectedDisconnect(ctx, err) {
				return
			}
			c.dispatcher.fireError(WrapError(ErrorConnection, "read failed", err))
			c.logger.Warn("read loop exit", map[string]any{"error": err.Error()})
			return
		}
		c.handle(out)
	}
}

func (c *Client) writeLoop(ctx context.Context) {
	for {
		select {
		case in := <-c.writeCh:
			writeCtx, cancel := ctx, context.CancelFunc(func() {})
			if c.cfg.WriteTimeout > 0 {
				writeCtx, cancel = context.WithTimeout(ctx, c.cfg.WriteTimeout)
			}
			err := wsjson.Write(writeCtx, c.conn, in)
			cancel()
			if err != nil {
				c.dispatcher.fireError(WrapError(ErrorConnection, "write failed", err))
				c.logger.Warn("write loop exit", map[string]any{"error": err.Error()})
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func isExpectedDisconnect(ctx context.Context, err error) bool {
	if err == nil {
		return false
	}
	if ctx != nil && ctx.Err() != nil {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return true
	}
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return true
	default:
		return false
	}
}
