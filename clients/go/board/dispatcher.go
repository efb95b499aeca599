package board

import "encoding/json"

// SessionEvent carries the server-assigned session identity.
type SessionEvent struct {
	SessionID string
	Room      string
}

// RoomJoinedEvent acknowledges a room switch.
type RoomJoinedEvent struct {
	Room string
}

// DrawEvent is a remote drawing event, already applied to the local scene
// when the callback fires.
type DrawEvent struct {
	Kind     string
	Path     json.RawMessage
	Color    string
	Width    float64
	Snapshot string
	Sender   string
}

// ClearEvent is a remote scene wipe, already applied when the callback fires.
type ClearEvent struct {
	Initiator string
}

// Dispatcher routes events to registered callbacks.
type Dispatcher struct {
	onSession    func(SessionEvent)
	onRoomJoined func(RoomJoinedEvent)
	onUserCount  func(int)
	onDraw       func(DrawEvent)
	onClear      func(ClearEvent)
	onError      func(error)
}

func (d *Dispatcher) SetOnSession(fn func(SessionEvent))       { d.onSession = fn }
func (d *Dispatcher) SetOnRoomJoined(fn func(RoomJoinedEvent)) { d.onRoomJoined = fn }
func (d *Dispatcher) SetOnUserCount(fn func(int))              { d.onUserCount = fn }
func (d *Dispatcher) SetOnDraw(fn func(DrawEvent))             { d.onDraw = fn }
func (d *Dispatcher) SetOnClear(fn func(ClearEvent))           { d.onClear = fn }
func (d *Dispatcher) SetOnError(fn func(error))                { d.onError = fn }

func (d *Dispatcher) fireSession(ev SessionEvent) {
	if d.onSession != nil {
		d.onSession(ev)
	}
}

func (d *Dispatcher) fireRoomJoined(ev RoomJoinedEvent) {
	if d.onRoomJoined != nil {
		d.onRoomJoined(ev)
	}
}

func (d *Dispatcher) fireUserCount(count int) {
	if d.onUserCount != nil {
		d.onUserCount(count)
	}
}

func (d *Dispatcher) fireDraw(ev DrawEvent) {
	if d.onDraw != nil {
		d.onDraw(ev)
	}
}

func (d *Dispatcher) fireClear(ev ClearEvent) {
	if d.onClear != nil {
		d.onClear(ev)
	}
}

func (d *Dispatcher) fireError(err error) {
	if d.onError != nil && err != nil {
		d.onError(err)
	}
}
