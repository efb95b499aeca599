package core

import "encoding/json"

// DrawKind discriminates the variants of a drawing event.
type DrawKind int

const (
	// DrawPath is a single freehand stroke.
	DrawPath DrawKind = iota
	// DrawScene replaces the whole scene with a serialized snapshot,
	// used for composite edits such as text objects.
	DrawScene
)

// Draw is one drawing event on the wire. Depending on Kind either the
// stroke fields or Snapshot are populated. Sender is stamped by the relay
// with the originating session id, overwriting whatever the client sent;
// it is the sole mechanism clients use to ignore their own echoes.
type Draw struct {
	Kind   DrawKind
	Sender string

	// DrawPath fields. Path carries the stroke geometry opaquely; the
	// relay never inspects it.
	Path  json.RawMessage
	Color string
	Width float64

	// DrawScene field.
	Snapshot string
}
