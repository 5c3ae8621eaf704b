package core

import (
	"errors"
	"testing"

	"github.com/leshko/huddle/internal/domain"
)

type fakeConn struct {
	frames []Frame
	full   bool
}

func (f *fakeConn) TrySend(fr Frame) error {
	if f.full {
		return errors.New("backpressure")
	}
	f.frames = append(f.frames, fr)
	return nil
}

func (f *fakeConn) Close() {}

func newMember(id domain.ConnID, name string) (MemberSession, *fakeConn) {
	conn := &fakeConn{}
	return NewMemberSession(&domain.Participant{ID: id, Name: name}, conn), conn
}

func TestSnapshotBeforeAddExcludesJoiner(t *testing.T) {
	r := NewRoomService("demo")
	a, _ := newMember("A", "alice")
	r.AddMember(a)

	snap := r.MembersSnapshot()
	if len(snap) != 1 || snap[0].ID != "A" || snap[0].Name != "alice" {
		t.Fatalf("snapshot should be [A/alice], got %v", snap)
	}

	b, _ := newMember("B", "bob")
	r.AddMember(b)
	if got := r.MemberCount(); got != 2 {
		t.Errorf("member count: want 2, got %d", got)
	}
}

func TestBroadcastExcludesSender(t *testing.T) {
	r := NewRoomService("demo")
	a, aConn := newMember("A", "")
	b, bConn := newMember("B", "")
	r.AddMember(a)
	r.AddMember(b)

	res := r.Broadcast("A", Frame("hello"))
	if res.SentTo != 1 {
		t.Errorf("want 1 delivery, got %d", res.SentTo)
	}
	if len(aConn.frames) != 0 {
		t.Error("sender must not receive its own broadcast")
	}
	if len(bConn.frames) != 1 || string(bConn.frames[0]) != "hello" {
		t.Errorf("B should hold the broadcast frame, got %v", bConn.frames)
	}
}

func TestBroadcastReportsDropped(t *testing.T) {
	r := NewRoomService("demo")
	a, _ := newMember("A", "")
	b, bConn := newMember("B", "")
	bConn.full = true
	r.AddMember(a)
	r.AddMember(b)

	res := r.Broadcast("A", Frame("x"))
	if res.SentTo != 0 || len(res.Dropped) != 1 {
		t.Errorf("want 0 sent / 1 dropped, got %d/%d", res.SentTo, len(res.Dropped))
	}
}

func TestRemoveMember(t *testing.T) {
	r := NewRoomService("demo")
	a, _ := newMember("A", "")
	r.AddMember(a)
	r.RemoveMember("A")
	r.RemoveMember("A") // idempotent
	if got := r.MemberCount(); got != 0 {
		t.Errorf("member count after remove: want 0, got %d", got)
	}
}
