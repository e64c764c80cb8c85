package game

import "testing"

func TestNewEmbeddedKinds(t *testing.T) {
	if _, err := NewEmbedded(KindRPS); err != nil {
		t.Fatalf("rps: %v", err)
	}
	if _, err := NewEmbedded(KindTTT); err != nil {
		t.Fatalf("ttt: %v", err)
	}
	if _, err := NewEmbedded(Kind("chess")); err == nil {
		t.Fatal("unknown kind should fail")
	}
	if _, err := NewEmbedded(KindSnake); err == nil {
		t.Fatal("snake is not an embedded game")
	}
}

func TestEmbeddedDispatch(t *testing.T) {
	e, _ := NewEmbedded(KindTTT)
	if !e.Apply("alice", float64(4)) {
		t.Fatal("JSON-decoded cell index rejected")
	}
	if e.Apply("bob", "middle") {
		t.Fatal("non-numeric ttt move accepted")
	}

	e, _ = NewEmbedded(KindRPS)
	if !e.Apply("alice", "rock") {
		t.Fatal("rps choice rejected")
	}
	if e.Apply("bob", 3) {
		t.Fatal("numeric rps move accepted")
	}
	if e.Done() {
		t.Fatal("rps done after a single move")
	}
	e.Apply("bob", "scissors")
	if !e.Done() {
		t.Fatal("rps not done after both moved")
	}
}
