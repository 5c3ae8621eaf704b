package app

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/leshko/huddle/internal/core"
	"github.com/leshko/huddle/internal/domain"
)

var ErrUnknownConnection = errors.New("unknown connection")

// Coordinator owns join/leave/relay semantics. All membership mutation goes
// through it; the mutex serializes joins and leaves so two concurrent joins
// to the same room cannot both observe a half-updated member snapshot.
type Coordinator struct {
	Registry *Registry
	Rooms    core.RoomFactory

	mu sync.Mutex
}

func NewCoordinator() *Coordinator {
	return &Coordinator{
		Registry: NewRegistry(),
		Rooms:    NewRoomManager(),
	}
}

// Register binds a fresh transport connection. The participant starts with a
// placeholder display name; join may override it.
func (c *Coordinator) Register(id domain.ConnID, conn core.SignalConnection, cancel context.CancelFunc) core.MemberSession {
	p, _ := domain.NewParticipant(id, "")
	sess := core.NewMemberSession(p, conn)
	c.Registry.Bind(id, sess, cancel)
	return sess
}

// Join admits the connection to a room and returns the members present
// before it was added. The snapshot is queued to the joiner before the join
// notice fans out, so the joiner can never see a user-joined-room notice for
// a member it was not told about.
//
// A connection already in a room (the same one included) is taken through
// the leave path first; membership in two rooms at once is impossible.
func (c *Coordinator) Join(id domain.ConnID, room domain.RoomID, name string) ([]core.MemberDTO, error) {
	if room == "" {
		return nil, domain.ErrEmptyRoom
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	sess, ok := c.Registry.Lookup(id)
	if !ok {
		return nil, ErrUnknownConnection
	}
	if cur, ok := c.Registry.RoomOf(id); ok {
		c.leaveLocked(id, cur)
	}
	if err := sess.Meta().SetName(name); err != nil {
		return nil, err
	}

	svc := c.Rooms.GetOrCreate(room)
	snapshot := svc.MembersSnapshot()
	svc.AddMember(sess)
	c.Registry.UpdateRoom(id, room)

	_ = sess.Signal().TrySend(marshal(allUsersEvent{Type: EventAllUsers, Users: snapshot}))
	svc.Broadcast(id, marshal(userJoinedRoomEvent{
		Type:     EventUserJoinedRoom,
		UserID:   id,
		UserName: sess.Meta().Name,
	}))

	log.Info().Str("module", "app.coordinator").Str("conn", string(id)).Str("room", string(room)).
		Int("existing", len(snapshot)).Msg("joined room")
	return snapshot, nil
}

// Leave removes the connection from its room, if any.
func (c *Coordinator) Leave(id domain.ConnID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if room, ok := c.Registry.RoomOf(id); ok {
		c.leaveLocked(id, room)
	}
}

// Disconnect is the implicit leave on transport close. Idempotent; safe for
// connections that never joined a room.
func (c *Coordinator) Disconnect(id domain.ConnID) {
	c.mu.Lock()
	if room, ok := c.Registry.RoomOf(id); ok {
		c.leaveLocked(id, room)
	}
	c.mu.Unlock()

	c.Registry.Cancel(id)
	c.Registry.Unbind(id)
	log.Info().Str("module", "app.coordinator").Str("conn", string(id)).Msg("disconnected")
}

// leaveLocked must run under c.mu. Remaining members get a user-left notice;
// an emptied room is dropped.
func (c *Coordinator) leaveLocked(id domain.ConnID, room domain.RoomID) {
	c.Registry.ClearRoom(id)
	svc, ok := c.Rooms.Get(room)
	if !ok {
		return
	}
	svc.RemoveMember(id)
	if svc.MemberCount() == 0 {
		c.Rooms.Drop(room)
		log.Info().Str("module", "app.coordinator").Str("room", string(room)).Msg("dropped empty room")
		return
	}
	svc.Broadcast(id, marshal(userLeftEvent{Type: EventUserLeft, ID: id}))
}

// RelayOffer forwards a joiner's opaque offer payload to one pre-existing
// member. The sender id is the transport-verified one; whatever callerId the
// client claimed is ignored. A missing destination is a silent drop.
func (c *Coordinator) RelayOffer(from, to domain.ConnID, signal json.RawMessage) {
	c.relay(from, to, marshal(userJoinedEvent{Type: EventUserJoined, Signal: signal, CallerID: from}))
}

// RelayReturn forwards an answer or renegotiation payload back to the
// original initiator.
func (c *Coordinator) RelayReturn(from, to domain.ConnID, signal json.RawMessage) {
	c.relay(from, to, marshal(returnedSignalEvent{Type: EventReturnedSignal, Signal: signal, ID: from}))
}

func (c *Coordinator) relay(from, to domain.ConnID, frame core.Frame) {
	sess, ok := c.Registry.Lookup(to)
	if !ok {
		// Peer already gone. Not an error for the sender.
		log.Debug().Str("module", "app.coordinator").Str("from", string(from)).Str("to", string(to)).
			Msg("relay destination gone, dropped")
		return
	}
	if err := sess.Signal().TrySend(frame); err != nil {
		log.Debug().Err(err).Str("module", "app.coordinator").Str("from", string(from)).Str("to", string(to)).
			Msg("relay dropped")
	}
}

// Chat fans a chat message out to the sender's room, excluding the sender
// (the client UI renders its own send optimistically).
func (c *Coordinator) Chat(from domain.ConnID, text string) {
	room, ok := c.Registry.RoomOf(from)
	if !ok {
		return
	}
	svc, ok := c.Rooms.Get(room)
	if !ok {
		return
	}
	svc.Broadcast(from, marshal(chatEvent{Type: EventChatMessage, From: from, Message: text}))
}
