package domain

import "errors"

var ErrEmptyRoom = errors.New("empty room id")

// RoomID is the caller-supplied room identifier. It is a naming convention
// only; nothing here validates it against the persisted room records.
type RoomID string
