// Package domain contains entities without logic, just meta-data.
package domain

import "errors"

const MaxDisplayNameLen = 36

var ErrNameTooLong = errors.New("display name too long")

// ConnID identifies one live transport session (one browser tab).
type ConnID string

// Participant is a connection's meta within a room.
type Participant struct {
	ID   ConnID `json:"id"`
	Name string `json:"name"`
}

// NewParticipant applies the display-name policy: keep the client-supplied
// name when present, otherwise hand out a generated placeholder.
func NewParticipant(id ConnID, name string) (*Participant, error) {
	if len(name) > MaxDisplayNameLen {
		return nil, ErrNameTooLong
	}
	if name == "" {
		name = PlaceholderName()
	}
	return &Participant{ID: id, Name: name}, nil
}

func (p *Participant) SetName(name string) error {
	if len(name) > MaxDisplayNameLen {
		return ErrNameTooLong
	}
	if name == "" {
		return nil
	}
	p.Name = name
	return nil
}
