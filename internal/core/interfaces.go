package core

import "github.com/leshko/huddle/internal/domain"

// Frame is a serialized outbound message.
type Frame []byte

// SignalConnection abstracts the transport endpoint of one member.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// MemberSession binds participant meta and its transport endpoint.
// This is what a room stores and fans out to.
type MemberSession interface {
	Meta() *domain.Participant
	Signal() SignalConnection
}

// PublishResult reports delivery stats to the coordinator.
type PublishResult struct {
	SentTo  int
	Dropped []MemberSession
}

// MemberDTO is a read-only view for wire responses (no transport fields).
type MemberDTO struct {
	ID   domain.ConnID `json:"id"`
	Name string        `json:"name"`
}

// RoomService is the core-facing API of a room.
// It owns the membership set but never touches transport resources.
type RoomService interface {
	ID() domain.RoomID
	MemberCount() int

	// MembersSnapshot is the set of current members. Callers that need the
	// pre-join view must take it before AddMember.
	MembersSnapshot() []MemberDTO

	AddMember(ms MemberSession)
	RemoveMember(id domain.ConnID)

	// Broadcast fans data out to every member except `from`. Pass an empty
	// ConnID to reach everyone. Best-effort: slow members are reported in
	// the result, not retried.
	Broadcast(from domain.ConnID, data Frame) PublishResult
}

type RoomInfo struct {
	ID          domain.RoomID `json:"id"`
	MemberCount int           `json:"member_count"`
}

type RoomFactory interface {
	GetOrCreate(id domain.RoomID) RoomService
	Get(id domain.RoomID) (RoomService, bool)
	List() []RoomInfo
	Drop(id domain.RoomID)
}
