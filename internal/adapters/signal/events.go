package signal

import "encoding/json"

// Inbound payloads (client -> server). Signal bodies stay json.RawMessage;
// the server round-trips them without looking inside.

type joinRoomPayload struct {
	Type string `json:"type"`
	Room string `json:"room"`
	Name string `json:"name,omitempty"`
}

type sendingSignalPayload struct {
	Type         string          `json:"type"`
	UserToSignal string          `json:"userToSignal"`
	CallerID     string          `json:"callerId"` // ignored, server overrides
	Signal       json.RawMessage `json:"signal"`
}

type returningSignalPayload struct {
	Type     string          `json:"type"`
	Signal   json.RawMessage `json:"signal"`
	CallerID string          `json:"callerId"`
}

type chatPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
