package signal

import (
	"testing"
	"time"
)

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Hour)

	if !rl.Allow("A") || !rl.Allow("A") {
		t.Fatal("first two sends must pass")
	}
	if rl.Allow("A") {
		t.Error("third send inside the window must be blocked")
	}
	if !rl.Allow("B") {
		t.Error("other connections are limited independently")
	}
}

func TestRateLimiterForget(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	rl.Allow("A")
	rl.Forget("A")
	if !rl.Allow("A") {
		t.Error("forgotten connection starts a fresh window")
	}
}

func TestRateLimiterWindowExpires(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)
	rl.Allow("A")
	time.Sleep(20 * time.Millisecond)
	if !rl.Allow("A") {
		t.Error("attempts outside the window must not count")
	}
}
