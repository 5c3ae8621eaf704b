package domain

import (
	"strings"
	"testing"
)

func TestPlaceholderNameShape(t *testing.T) {
	for i := 0; i < 50; i++ {
		name := PlaceholderName()
		parts := strings.Split(name, "-")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			t.Fatalf("placeholder should be adjective-creature, got %q", name)
		}
	}
}

func TestNewRoomCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := NewRoomCode()
		if len(code) != RoomCodeLen {
			t.Fatalf("code length: want %d, got %q", RoomCodeLen, code)
		}
		for _, ch := range code {
			if !strings.ContainsRune(roomCodeAlphabet, ch) {
				t.Fatalf("code %q contains %q outside the alphabet", code, ch)
			}
		}
		seen[code] = true
	}
	if len(seen) < 95 {
		t.Errorf("codes collide far too often: %d unique of 100", len(seen))
	}
}

func TestNewParticipantFallbackName(t *testing.T) {
	p, err := NewParticipant("c1", "")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name == "" {
		t.Error("empty name must fall back to a placeholder")
	}

	p, err = NewParticipant("c2", "zoe")
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "zoe" {
		t.Errorf("client-supplied name wins, got %q", p.Name)
	}
}

func TestSetName(t *testing.T) {
	p, _ := NewParticipant("c1", "old")
	if err := p.SetName(strings.Repeat("x", MaxDisplayNameLen+1)); err == nil {
		t.Error("overlong name must be rejected")
	}
	if err := p.SetName(""); err != nil || p.Name != "old" {
		t.Errorf("empty rename keeps the current name, got %q (%v)", p.Name, err)
	}
	if err := p.SetName("new"); err != nil || p.Name != "new" {
		t.Errorf("rename: got %q (%v)", p.Name, err)
	}
}
