package core

import "testing"

func TestRegistryTracksLatestRoom(t *testing.T) {
	r := NewRegistry()
	s := NewSession("s1", "")

	r.SetRoom(s, "s1")
	r.SetRoom(s, "math1")
	r.SetRoom(s, "math2")

	room, ok := r.Room("s1")
	if !ok || room != "math2" {
		t.Fatalf("expected room math2, got %q ok=%v", room, ok)
	}

	// The session must belong to exactly one room: earlier rooms are gone.
	count := 0
	r.EachMember("math1", func(*Session) { count++ })
	if count != 0 {
		t.Fatalf("session left behind in old room, %d members", count)
	}
	r.EachMember("math2", func(*Session) { count++ })
	if count != 1 {
		t.Fatalf("expected 1 member in math2, got %d", count)
	}
}

func TestRegistryRemoveSession(t *testing.T) {
	r := NewRegistry()
	s := NewSession("s1", "")
	r.SetRoom(s, "board")

	if !r.RemoveSession("s1") {
		t.Fatal("first removal should report true")
	}
	if r.RemoveSession("s1") {
		t.Fatal("second removal should report false")
	}
	if _, ok := r.Room("s1"); ok {
		t.Fatal("removed session still has a room")
	}
	if r.Len() != 0 {
		t.Fatalf("expected empty registry, len=%d", r.Len())
	}
}

func TestRegistryDerivedRoomDisappearsWithLastMember(t *testing.T) {
	r := NewRegistry()
	a := NewSession("a", "")
	b := NewSession("b", "")
	r.SetRoom(a, "shared")
	r.SetRoom(b, "shared")

	r.RemoveSession("a")
	members := 0
	r.EachMember("shared", func(*Session) { members++ })
	if members != 1 {
		t.Fatalf("expected 1 remaining member, got %d", members)
	}

	r.SetRoom(b, "elsewhere")
	if len(r.members) != 1 {
		t.Fatalf("empty room not cleaned up, %d rooms indexed", len(r.members))
	}
}

func TestRegistrySameRoomSetIsNoop(t *testing.T) {
	r := NewRegistry()
	s := NewSession("s1", "")
	r.SetRoom(s, "board")
	r.SetRoom(s, "board")

	members := 0
	r.EachMember("board", func(*Session) { members++ })
	if members != 1 {
		t.Fatalf("expected 1 member after repeat set, got %d", members)
	}
}
