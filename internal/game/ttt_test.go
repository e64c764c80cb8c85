package game

import "testing"

func TestTTTFirstMoverIsX(t *testing.T) {
	s := NewTTT()
	if !s.Apply("alice", 4) {
		t.Fatal("first move rejected")
	}
	if s.Marks["alice"] != "X" {
		t.Fatalf("alice mark = %q, want X", s.Marks["alice"])
	}
	if !s.Apply("bob", 0) {
		t.Fatal("second move rejected")
	}
	if s.Marks["bob"] != "O" {
		t.Fatalf("bob mark = %q, want O", s.Marks["bob"])
	}
}

func TestTTTRejectsThirdPlayer(t *testing.T) {
	s := NewTTT()
	s.Apply("alice", 0)
	s.Apply("bob", 1)

	if s.Apply("mallory", 2) {
		t.Fatal("third player accepted")
	}
	if s.Board[2] != "" {
		t.Fatalf("board[2] = %q, want empty", s.Board[2])
	}
}

func TestTTTIgnoresIllegalMoves(t *testing.T) {
	s := NewTTT()
	s.Apply("alice", 0)

	if s.Apply("alice", 1) {
		t.Fatal("out-of-turn move accepted")
	}
	if s.Apply("bob", 0) {
		t.Fatal("occupied-cell move accepted")
	}
	if s.Apply("bob", 9) || s.Apply("bob", -1) {
		t.Fatal("out-of-range move accepted")
	}
	if s.Turn != "O" {
		t.Fatalf("turn = %q, want O", s.Turn)
	}
}

func TestTTTWinByRow(t *testing.T) {
	s := NewTTT()
	// X: 0 1 2, O: 3 4
	s.Apply("alice", 0)
	s.Apply("bob", 3)
	s.Apply("alice", 1)
	s.Apply("bob", 4)
	s.Apply("alice", 2)

	if s.Result != "X" {
		t.Fatalf("result = %q, want X", s.Result)
	}
	if s.Winner != "alice" {
		t.Fatalf("winner = %q, want alice", s.Winner)
	}
}

func TestTTTDrawAfterNineMoves(t *testing.T) {
	s := NewTTT()
	// X O X
	// X O O
	// O X X, no three in a row
	moves := []struct {
		player string
		cell   int
	}{
		{"alice", 0}, {"bob", 1}, {"alice", 2},
		{"bob", 4}, {"alice", 3}, {"bob", 5},
		{"alice", 7}, {"bob", 6}, {"alice", 8},
	}
	for _, m := range moves {
		if !s.Apply(m.player, m.cell) {
			t.Fatalf("move %+v rejected", m)
		}
	}
	if s.Result != DrawWinner {
		t.Fatalf("result = %q, want draw", s.Result)
	}
}

func TestTTTBoardFrozenAfterResult(t *testing.T) {
	s := NewTTT()
	s.Apply("alice", 0)
	s.Apply("bob", 3)
	s.Apply("alice", 1)
	s.Apply("bob", 4)
	s.Apply("alice", 2) // X wins

	board := s.Board
	if s.Apply("bob", 5) {
		t.Fatal("move after result accepted")
	}
	if s.Board != board {
		t.Fatalf("board mutated after result: %v", s.Board)
	}
}
