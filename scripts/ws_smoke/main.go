// Command ws_smoke is a manual end-to-end check against a running server:
// it connects two clients, joins them to one room, draws a stroke from the
// first, and waits for the second to receive it.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/drawwire/drawwire-server/clients/go/board"
)

func main() {
	if err := run(); err != nil {
		log.Printf("ws_smoke: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "ws://localhost:8080/ws", "WebSocket address")
	room := flag.String("room", "smoke-room", "room to join")
	timeout := flag.Duration("timeout", 5*time.Second, "total timeout for the run")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cfg := board.DefaultConfig()
	cfg.URL = *addr

	painter := board.NewClient(cfg)
	watcher := board.NewClient(cfg)

	watcherReady := make(chan struct{})
	watcher.OnRoomJoined(func(board.RoomJoinedEvent) {
		close(watcherReady)
	})

	received := make(chan board.DrawEvent, 1)
	watcher.OnDraw(func(ev board.DrawEvent) {
		select {
		case received <- ev:
		default:
		}
	})

	if err := painter.Connect(ctx); err != nil {
		return fmt.Errorf("connect painter: %w", err)
	}
	defer painter.Close()

	if err := watcher.Connect(ctx); err != nil {
		return fmt.Errorf("connect watcher: %w", err)
	}
	defer watcher.Close()

	if err := painter.Join(ctx, *room); err != nil {
		return fmt.Errorf("join painter: %w", err)
	}
	if err := watcher.Join(ctx, *room); err != nil {
		return fmt.Errorf("join watcher: %w", err)
	}

	select {
	case <-watcherReady:
	case <-ctx.Done():
		return fmt.Errorf("watcher never joined %q: %w", *room, ctx.Err())
	}

	path := json.RawMessage(`[[10,10],[40,40],[70,20]]`)
	if err := painter.DrawPath(ctx, path, "#336699", 2); err != nil {
		return fmt.Errorf("draw: %w", err)
	}

	select {
	case ev := <-received:
		fmt.Printf("relayed draw: kind=%s sender=%s color=%s width=%.1f\n",
			ev.Kind, ev.Sender, ev.Color, ev.Width)
		fmt.Printf("watcher scene strokes: %d\n", watcher.StrokeCount())
		return nil
	case <-ctx.Done():
		return fmt.Errorf("draw never arrived: %w", ctx.Err())
	}
}
