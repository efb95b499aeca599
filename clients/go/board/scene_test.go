package board

import (
	"encoding/json"
	"testing"
)

func TestSceneSnapshotRestore(t *testing.T) {
	s := NewScene()
	s.AddStroke(Stroke{Path: json.RawMessage(`[[0,0],[5,5]]`), Color: "#ff0000", Width: 2})
	s.AddStroke(Stroke{Path: json.RawMessage(`[[5,5],[9,1]]`), Color: "#00ff00", Width: 4})

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	restored := NewScene()
	if err := restored.Restore(snap); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if restored.Len() != 2 {
		t.Fatalf("restored Len = %d, want 2", restored.Len())
	}
	if restored.Strokes[1].Color != "#00ff00" {
		t.Fatalf("restored stroke color = %q", restored.Strokes[1].Color)
	}
	if restored.Background != DefaultBackground {
		t.Fatalf("restored background = %q", restored.Background)
	}
}

func TestSceneRestoreDefaultsBackground(t *testing.T) {
	s := NewScene()
	if err := s.Restore(`{"strokes":[]}`); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if s.Background != DefaultBackground {
		t.Fatalf("Background = %q, want %q", s.Background, DefaultBackground)
	}
}

func TestSceneRestoreRejectsGarbage(t *testing.T) {
	s := NewScene()
	s.AddStroke(Stroke{Path: json.RawMessage(`[[1,1]]`), Color: "black", Width: 1})

	if err := s.Restore("not json"); err == nil {
		t.Fatal("Restore should reject malformed snapshots")
	}
	if s.Len() != 1 {
		t.Fatalf("scene mutated by failed restore: Len = %d", s.Len())
	}
}

func TestSceneReset(t *testing.T) {
	s := NewScene()
	s.Background = "black"
	s.AddStroke(Stroke{Path: json.RawMessage(`[[1,1]]`), Color: "white", Width: 1})

	s.Reset()
	if s.Len() != 0 || s.Background != DefaultBackground {
		t.Fatalf("Reset left Len=%d background=%q", s.Len(), s.Background)
	}
}
