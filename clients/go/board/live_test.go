package board

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/drawwire/drawwire-server/internal/core"
	transporthttp "github.com/drawwire/drawwire-server/internal/transport/http"
)

// startRelay runs a hub behind the real WebSocket handler and returns its
// ws:// URL.
func startRelay(t *testing.T) string {
	t.Helper()

	logger := zerolog.Nop()
	hub := core.NewHub(core.NewRegistry(), &logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	ts := httptest.NewServer(transporthttp.NewWSHandler(hub, nil, &logger))
	t.Cleanup(ts.Close)

	return strings.Replace(ts.URL, "http", "ws", 1)
}

func connectLive(ctx context.Context, t *testing.T, url string) (*Client, SessionEvent) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.URL = url

	c := NewClient(cfg)
	sessions := make(chan SessionEvent, 1)
	c.OnSession(func(ev SessionEvent) { sessions <- ev })

	if err := c.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	select {
	case ev := <-sessions:
		return c, ev
	case <-ctx.Done():
		t.Fatal("session event never arrived")
		return nil, SessionEvent{}
	}
}

func TestClientAgainstLiveRelay(t *testing.T) {
	url := startRelay(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	painter, painterSession := connectLive(ctx, t, url)
	watcher, _ := connectLive(ctx, t, url)

	joined := make(chan RoomJoinedEvent, 1)
	watcher.OnRoomJoined(func(ev RoomJoinedEvent) { joined <- ev })
	draws := make(chan DrawEvent, 1)
	watcher.OnDraw(func(ev DrawEvent) { draws <- ev })

	if err := painter.Join(ctx, "live-room"); err != nil {
		t.Fatalf("painter join: %v", err)
	}
	if err := watcher.Join(ctx, "live-room"); err != nil {
		t.Fatalf("watcher join: %v", err)
	}
	select {
	case ev := <-joined:
		if ev.Room != "live-room" {
			t.Fatalf("joined %q, want live-room", ev.Room)
		}
	case <-ctx.Done():
		t.Fatal("room join ack never arrived")
	}

	if err := painter.DrawPath(ctx, json.RawMessage(`[[1,2],[3,4]]`), "#123456", 2); err != nil {
		t.Fatalf("draw: %v", err)
	}

	select {
	case ev := <-draws:
		if ev.Sender != painterSession.SessionID {
			t.Fatalf("draw sender = %q, want %q", ev.Sender, painterSession.SessionID)
		}
		if ev.Color != "#123456" {
			t.Fatalf("draw color = %q", ev.Color)
		}
	case <-ctx.Done():
		t.Fatal("relayed draw never arrived")
	}

	if watcher.StrokeCount() != 1 {
		t.Fatalf("watcher strokes = %d, want 1", watcher.StrokeCount())
	}
	// The relayed stroke belongs to the painter; the watcher cannot undo it.
	if watcher.Undo() {
		t.Fatal("watcher undid a remote stroke")
	}
}
