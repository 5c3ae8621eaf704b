package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/leshko/huddle/internal/core"
	"github.com/leshko/huddle/internal/domain"
)

// Outbound event types (server -> client).
const (
	EventAllUsers       = "all-users"
	EventUserJoined     = "user-joined"
	EventReturnedSignal = "receiving-returned-signal"
	EventUserJoinedRoom = "user-joined-room"
	EventUserLeft       = "user-left"
	EventChatMessage    = "chat-message"
)

type allUsersEvent struct {
	Type  string           `json:"type"`
	Users []core.MemberDTO `json:"users"`
}

// userJoinedEvent carries a joiner's offer to one pre-existing member. The
// callerId is always the server-verified connection id of the sender.
type userJoinedEvent struct {
	Type     string          `json:"type"`
	Signal   json.RawMessage `json:"signal"`
	CallerID domain.ConnID   `json:"callerId"`
}

type returnedSignalEvent struct {
	Type   string          `json:"type"`
	Signal json.RawMessage `json:"signal"`
	ID     domain.ConnID   `json:"id"`
}

type userJoinedRoomEvent struct {
	Type     string        `json:"type"`
	UserID   domain.ConnID `json:"userId"`
	UserName string        `json:"userName"`
}

type userLeftEvent struct {
	Type string        `json:"type"`
	ID   domain.ConnID `json:"id"`
}

type chatEvent struct {
	Type    string        `json:"type"`
	From    domain.ConnID `json:"from"`
	Message string        `json:"message"`
}

func marshal(v any) core.Frame {
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.events").Msg("event marshal")
		return nil
	}
	return b
}
