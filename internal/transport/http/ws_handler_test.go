package http

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/drawwire/drawwire-server/internal/proto"
)

type wireEnvelope struct {
	Type  string          `json:"type"`
	Event string          `json:"event,omitempty"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error *proto.Error    `json:"error,omitempty"`
}

func dialWS(ctx context.Context, t *testing.T, env *testEnv) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(env.ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close(websocket.StatusNormalClosure, "done") })

	return conn
}

// waitForEvent reads frames until one with the wanted event name arrives,
// skipping interleaved presence updates and the like.
func waitForEvent(ctx context.Context, t *testing.T, conn *websocket.Conn, event string) wireEnvelope {
	t.Helper()

	for {
		var env wireEnvelope
		if err := wsjson.Read(ctx, conn, &env); err != nil {
			t.Fatalf("waiting for %q: %v", event, err)
		}
		if env.Type == proto.OutboundTypeError {
			t.Fatalf("waiting for %q, got error reply: %+v", event, env.Error)
		}
		if env.Event == event {
			return env
		}
	}
}

func waitForError(ctx context.Context, t *testing.T, conn *websocket.Conn) *proto.Error {
	t.Helper()

	for {
		var env wireEnvelope
		if err := wsjson.Read(ctx, conn, &env); err != nil {
			t.Fatalf("waiting for error reply: %v", err)
		}
		if env.Type == proto.OutboundTypeError {
			return env.Error
		}
	}
}

func sendInbound(ctx context.Context, t *testing.T, conn *websocket.Conn, msgType string, payload any) {
	t.Helper()

	in := proto.Inbound{Type: msgType}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal %s payload: %v", msgType, err)
		}
		in.Data = data
	}
	if err := wsjson.Write(ctx, conn, in); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

func sessionOf(ctx context.Context, t *testing.T, conn *websocket.Conn) proto.EventSessionData {
	t.Helper()

	env := waitForEvent(ctx, t, conn, proto.EventSession)
	var data proto.EventSessionData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("unmarshal session event: %v", err)
	}
	return data
}

func TestHealthEndpoint(t *testing.T) {
	env := startTestServer(t, stubPredictor{})

	resp, err := env.ts.Client().Get(env.ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestWebSocketSessionStartsInPrivateRoom(t *testing.T) {
	env := startTestServer(t, stubPredictor{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(ctx, t, env)

	session := sessionOf(ctx, t, conn)
	if session.SessionID == "" {
		t.Fatal("empty session id")
	}
	if session.Room != session.SessionID {
		t.Fatalf("initial room = %q, want private room %q", session.Room, session.SessionID)
	}

	countEnv := waitForEvent(ctx, t, conn, proto.EventUserCount)
	var count proto.EventUserCountData
	if err := json.Unmarshal(countEnv.Data, &count); err != nil {
		t.Fatalf("unmarshal user_count: %v", err)
	}
	if count.Count < 1 {
		t.Fatalf("user count = %d, want >= 1", count.Count)
	}
}

func TestWebSocketDrawRelayedToRoom(t *testing.T) {
	env := startTestServer(t, stubPredictor{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(ctx, t, env)
	connB := dialWS(ctx, t, env)

	sessionA := sessionOf(ctx, t, connA)
	_ = sessionOf(ctx, t, connB)

	sendInbound(ctx, t, connA, proto.InboundTypeJoin, proto.JoinData{Room: "board-1"})
	waitForEvent(ctx, t, connA, proto.EventRoomJoined)
	sendInbound(ctx, t, connB, proto.InboundTypeJoin, proto.JoinData{Room: "board-1"})
	waitForEvent(ctx, t, connB, proto.EventRoomJoined)

	sendInbound(ctx, t, connA, proto.InboundTypeDraw, proto.DrawData{
		Kind:   proto.DrawKindPath,
		Path:   json.RawMessage(`[[0,0],[10,10]]`),
		Color:  "#ff0000",
		Width:  2,
		Sender: "forged-id",
	})

	drawEnv := waitForEvent(ctx, t, connB, proto.EventDraw)
	var draw proto.DrawData
	if err := json.Unmarshal(drawEnv.Data, &draw); err != nil {
		t.Fatalf("unmarshal draw: %v", err)
	}
	if draw.Sender != sessionA.SessionID {
		t.Fatalf("draw sender = %q, want relaying session %q", draw.Sender, sessionA.SessionID)
	}
	if draw.Color != "#ff0000" || draw.Kind != proto.DrawKindPath {
		t.Fatalf("unexpected draw payload: %+v", draw)
	}

	// The sender must not receive its own stroke back.
	echoCtx, echoCancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer echoCancel()
	for {
		var envlp wireEnvelope
		if err := wsjson.Read(echoCtx, connA, &envlp); err != nil {
			break // timed out with no echo
		}
		if envlp.Event == proto.EventDraw {
			t.Fatal("draw echoed back to its sender")
		}
	}
}

func TestWebSocketClearStampsInitiator(t *testing.T) {
	env := startTestServer(t, stubPredictor{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(ctx, t, env)
	connB := dialWS(ctx, t, env)

	sessionA := sessionOf(ctx, t, connA)
	_ = sessionOf(ctx, t, connB)

	sendInbound(ctx, t, connA, proto.InboundTypeJoin, proto.JoinData{Room: "board-2"})
	waitForEvent(ctx, t, connA, proto.EventRoomJoined)
	sendInbound(ctx, t, connB, proto.InboundTypeJoin, proto.JoinData{Room: "board-2"})
	waitForEvent(ctx, t, connB, proto.EventRoomJoined)

	sendInbound(ctx, t, connA, proto.InboundTypeClear, proto.ClearData{Initiator: "forged-id"})

	clearEnv := waitForEvent(ctx, t, connB, proto.EventClear)
	var clear proto.ClearData
	if err := json.Unmarshal(clearEnv.Data, &clear); err != nil {
		t.Fatalf("unmarshal clear: %v", err)
	}
	if clear.Initiator != sessionA.SessionID {
		t.Fatalf("clear initiator = %q, want %q", clear.Initiator, sessionA.SessionID)
	}
}

func TestWebSocketBadJoinGetsErrorReply(t *testing.T) {
	env := startTestServer(t, stubPredictor{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dialWS(ctx, t, env)
	_ = sessionOf(ctx, t, conn)

	sendInbound(ctx, t, conn, proto.InboundTypeJoin, proto.JoinData{})

	reply := waitForError(ctx, t, conn)
	if reply.Code != "bad_request" {
		t.Fatalf("error code = %q, want bad_request", reply.Code)
	}

	// The connection survives a rejected message.
	sendInbound(ctx, t, conn, proto.InboundTypeJoin, proto.JoinData{Room: "board-3"})
	waitForEvent(ctx, t, conn, proto.EventRoomJoined)
}

func TestWebSocketPresenceAcrossConnections(t *testing.T) {
	env := startTestServer(t, stubPredictor{})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	connA := dialWS(ctx, t, env)
	_ = sessionOf(ctx, t, connA)

	connB := dialWS(ctx, t, env)
	_ = sessionOf(ctx, t, connB)

	// A sees the count climb to 2 once B is attached.
	for {
		countEnv := waitForEvent(ctx, t, connA, proto.EventUserCount)
		var count proto.EventUserCountData
		if err := json.Unmarshal(countEnv.Data, &count); err != nil {
			t.Fatalf("unmarshal user_count: %v", err)
		}
		if count.Count == 2 {
			break
		}
	}

	if err := connB.Close(websocket.StatusNormalClosure, "leaving"); err != nil {
		t.Fatalf("close B: %v", err)
	}

	for {
		countEnv := waitForEvent(ctx, t, connA, proto.EventUserCount)
		var count proto.EventUserCountData
		if err := json.Unmarshal(countEnv.Data, &count); err != nil {
			t.Fatalf("unmarshal user_count: %v", err)
		}
		if count.Count == 1 {
			return
		}
	}
}
