package core

// Registry maps session ids to room ids. Rooms are not stored as first-class
// objects: the members index is a derived view that disappears together with
// the last member, so there is never an empty room to clean up.
//
// The registry is owned by the hub goroutine and is not safe for concurrent
// use. All membership is in-memory only and lost on restart; clients rejoin
// via the room id kept in their share link.
type Registry struct {
	roomOf  map[string]string              // session id -> room id
	members map[string]map[string]*Session // room id -> session id -> session
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		roomOf:  make(map[string]string),
		members: make(map[string]map[string]*Session),
	}
}

// SetRoom moves a session into a room, leaving its previous room if any.
// Setting the room a session is already in is a no-op.
func (r *Registry) SetRoom(s *Session, roomID string) {
	if current, ok := r.roomOf[s.ID]; ok {
		if current == roomID {
			return
		}
		r.dropMember(current, s.ID)
	}

	r.roomOf[s.ID] = roomID
	room, ok := r.members[roomID]
	if !ok {
		room = make(map[string]*Session)
		r.members[roomID] = room
	}
	room[s.ID] = s
}

// Room returns the room a session currently belongs to.
func (r *Registry) Room(sessionID string) (string, bool) {
	roomID, ok := r.roomOf[sessionID]
	return roomID, ok
}

// RemoveSession deletes a session from the registry. Returns true if the
// session was present; a second removal reports false and changes nothing.
func (r *Registry) RemoveSession(sessionID string) bool {
	roomID, ok := r.roomOf[sessionID]
	if !ok {
		return false
	}
	delete(r.roomOf, sessionID)
	r.dropMember(roomID, sessionID)
	return true
}

// EachMember calls fn for every session currently in the room.
func (r *Registry) EachMember(roomID string, fn func(*Session)) {
	for _, s := range r.members[roomID] {
		fn(s)
	}
}

// EachSession calls fn for every registered session across all rooms.
func (r *Registry) EachSession(fn func(*Session)) {
	for _, room := range r.members {
		for _, s := range room {
			fn(s)
		}
	}
}

// Len returns the number of registered sessions.
func (r *Registry) Len() int {
	return len(r.roomOf)
}

func (r *Registry) dropMember(roomID, sessionID string) {
	room, ok := r.members[roomID]
	if !ok {
		return
	}
	delete(room, sessionID)
	if len(room) == 0 {
		delete(r.members, roomID)
	}
}
