package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

var adjectives = []string{
	"tiny", "happy", "sleepy", "fluffy", "sparkly", "cheery", "silly", "jolly", "cozy", "shiny",
	"brave", "calm", "eager", "gentle", "merry", "nimble", "proud", "quick", "sunny", "witty",
}

var creatures = []string{
	"kitten", "puppy", "bunny", "panda", "koala", "fox", "otter", "hedgehog", "squirrel", "hamster",
	"penguin", "flamingo", "dolphin", "narwhal", "sparrow", "robin", "toucan", "parrot", "fawn", "lamb",
}

// roomCodeAlphabet matches the code shape the room records use: 9 chars,
// URL-safe, shareable by hand.
const (
	roomCodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-_"
	RoomCodeLen      = 9
)

// PlaceholderName generates a fallback display name for participants that
// join without one, e.g. "sleepy-otter".
func PlaceholderName() string {
	a := adjectives[randomIndex(len(adjectives))]
	c := creatures[randomIndex(len(creatures))]
	return fmt.Sprintf("%s-%s", a, c)
}

// NewRoomCode generates a short shareable room code.
func NewRoomCode() string {
	var b strings.Builder
	b.Grow(RoomCodeLen)
	for i := 0; i < RoomCodeLen; i++ {
		b.WriteByte(roomCodeAlphabet[randomIndex(len(roomCodeAlphabet))])
	}
	return b.String()
}

// randomIndex returns a cryptographically secure random index for a slice of given length.
func randomIndex(max int) int {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return int(n.Int64())
}
