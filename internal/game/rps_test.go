package game

import "testing"

func TestRPSWinnerMatrix(t *testing.T) {
	cases := []struct {
		m1, m2, winner string
	}{
		{"rock", "scissors", "alice"},
		{"scissors", "paper", "alice"},
		{"paper", "rock", "alice"},
		{"scissors", "rock", "bob"},
		{"paper", "scissors", "bob"},
		{"rock", "paper", "bob"},
		{"rock", "rock", DrawWinner},
		{"paper", "paper", DrawWinner},
		{"scissors", "scissors", DrawWinner},
	}

	for _, tc := range cases {
		s := NewRPS()
		if !s.Apply("alice", tc.m1) {
			t.Fatalf("alice %s: move rejected", tc.m1)
		}
		if !s.Apply("bob", tc.m2) {
			t.Fatalf("bob %s: move rejected", tc.m2)
		}
		if s.Result == nil {
			t.Fatalf("%s vs %s: not resolved", tc.m1, tc.m2)
		}
		if s.Result.Winner != tc.winner {
			t.Errorf("%s vs %s: winner = %q, want %q", tc.m1, tc.m2, s.Result.Winner, tc.winner)
		}
	}
}

func TestRPSIgnoresInvalidMove(t *testing.T) {
	s := NewRPS()
	if s.Apply("alice", "lizard") {
		t.Fatal("unknown choice should be dropped")
	}
	if len(s.Moves) != 0 {
		t.Fatalf("moves = %v, want empty", s.Moves)
	}
}

func TestRPSThirdPlayerIgnored(t *testing.T) {
	s := NewRPS()
	s.Apply("alice", "rock")
	s.Apply("bob", "rock")

	if s.Apply("mallory", "paper") {
		t.Fatal("third player's move should be dropped")
	}
	if _, ok := s.Moves["mallory"]; ok {
		t.Fatalf("moves = %v, mallory should not be recorded", s.Moves)
	}
	if s.Result.Winner != DrawWinner {
		t.Fatalf("winner = %q, want draw unchanged", s.Result.Winner)
	}
}

func TestRPSTerminalAfterResolve(t *testing.T) {
	s := NewRPS()
	s.Apply("alice", "rock")
	s.Apply("bob", "scissors")

	before := *s.Result
	if s.Apply("alice", "paper") {
		t.Fatal("move after resolution should be dropped")
	}
	if *s.Result != before {
		t.Fatalf("result mutated after resolution: %+v", s.Result)
	}
}

func TestRPSPlayerMayReviseBeforeResolve(t *testing.T) {
	s := NewRPS()
	s.Apply("alice", "rock")
	s.Apply("alice", "paper")
	s.Apply("bob", "rock")

	if s.Result == nil || s.Result.Winner != "alice" {
		t.Fatalf("result = %+v, want alice winning with revised paper", s.Result)
	}
}
