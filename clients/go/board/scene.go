package board

import "encoding/json"

// DefaultBackground is the background color of a fresh scene.
const DefaultBackground = "white"

// Stroke is one freehand path in the scene. Path geometry is opaque to the
// client; it is rendered by whatever draws the scene.
type Stroke struct {
	Path  json.RawMessage `json:"path"`
	Color string          `json:"color"`
	Width float64         `json:"width"`
}

// Scene is the local copy of the shared drawable surface. A snapshot is the
// whole scene serialized to JSON, the unit of undo/redo and of remote
// whole-scene updates.
type Scene struct {
	Background string   `json:"background"`
	Strokes    []Stroke `json:"strokes"`
}

// NewScene returns an empty scene on the default background.
func NewScene() *Scene {
	return &Scene{Background: DefaultBackground}
}

// AddStroke appends one stroke.
func (s *Scene) AddStroke(stroke Stroke) {
	s.Strokes = append(s.Strokes, stroke)
}

// Snapshot serializes the whole scene.
func (s *Scene) Snapshot() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Restore replaces the scene content with a snapshot.
func (s *Scene) Restore(snapshot string) error {
	var restored Scene
	if err := json.Unmarshal([]byte(snapshot), &restored); err != nil {
		return err
	}
	*s = restored
	if s.Background == "" {
		s.Background = DefaultBackground
	}
	return nil
}

// Reset wipes the scene back to the empty background state.
func (s *Scene) Reset() {
	s.Strokes = nil
	s.Background = DefaultBackground
}

// Len returns the number of strokes.
func (s *Scene) Len() int {
	return len(s.Strokes)
}
