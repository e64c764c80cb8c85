package game

import (
	"math/rand"
	"time"
)

const (
	// The playfield is fixed; clients render it at this size.
	SnakeGridWidth  = 24
	SnakeGridHeight = 16

	// SnakeTickPeriod is the authoritative simulation rate.
	SnakeTickPeriod = 100 * time.Millisecond

	// SnakeTargetScore ends the match when a player has eaten this
	// many pellets.
	SnakeTargetScore = 10

	// SnakeMatchTime is the optional countdown length for timed
	// matches.
	SnakeMatchTime = 60 * time.Second

	snakeStartLen = 3
)

type SnakeStatus string

const (
	SnakeWaiting  SnakeStatus = "waiting"
	SnakeRunning  SnakeStatus = "running"
	SnakeGameOver SnakeStatus = "gameover"
)

// PlayerSnake is one player's snake, head first.
type PlayerSnake struct {
	Body       []Cell    `json:"body"`
	Dir        Direction `json:"dir"`
	PendingDir Direction `json:"-"`
	Score      int       `json:"score"`
}

// SnakeState is the authoritative match state advanced by Tick at a
// fixed rate. Winner is the player index, nil for a draw, and is only
// meaningful once Status is SnakeGameOver.
type SnakeState struct {
	Status      SnakeStatus    `json:"status"`
	Players     [2]PlayerSnake `json:"players"`
	Food        Cell           `json:"food"`
	Winner      *int           `json:"winner"`
	TimerEndsAt *time.Time     `json:"timerEndsAt,omitempty"`

	rng *rand.Rand
}

// NewSnake returns a match in the Waiting state. rng drives food
// placement; passing a seeded source makes ticks deterministic.
func NewSnake(rng *rand.Rand) *SnakeState {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SnakeState{Status: SnakeWaiting, rng: rng}
}

// Start transitions Waiting to Running: both snakes are placed facing
// each other across the grid and the first pellet is spawned. Starting
// a match that is not Waiting is a no-op.
func (s *SnakeState) Start(withTimer bool, now time.Time) {
	if s.Status != SnakeWaiting {
		return
	}

	midY := SnakeGridHeight / 2
	s.Players[0] = PlayerSnake{Dir: DirRight, PendingDir: DirRight}
	s.Players[1] = PlayerSnake{Dir: DirLeft, PendingDir: DirLeft}
	for i := 0; i < snakeStartLen; i++ {
		s.Players[0].Body = append(s.Players[0].Body, Cell{snakeStartLen - i, midY})
		s.Players[1].Body = append(s.Players[1].Body, Cell{SnakeGridWidth - 1 - snakeStartLen + i, midY})
	}

	s.Food = spawnFood(s.rng, SnakeGridWidth, SnakeGridHeight, s.Players[0].Body, s.Players[1].Body)
	s.Winner = nil
	s.TimerEndsAt = nil
	if withTimer {
		ends := now.Add(SnakeMatchTime)
		s.TimerEndsAt = &ends
	}
	s.Status = SnakeRunning
}

// Reset returns the match to Waiting so a fresh Start can follow.
func (s *SnakeState) Reset() {
	s.Status = SnakeWaiting
	s.Players = [2]PlayerSnake{}
	s.Winner = nil
	s.TimerEndsAt = nil
}

// SetPending buffers a direction change for the next tick. The exact
// opposite of the current direction is rejected so a snake can never
// reverse into itself within one tick.
func (s *SnakeState) SetPending(player int, dir Direction) {
	if s.Status != SnakeRunning || player < 0 || player > 1 {
		return
	}
	if dir == s.Players[player].Dir.Opposite() {
		return
	}
	s.Players[player].PendingDir = dir
}

// Forfeit ends a Running match with the remaining player as winner.
func (s *SnakeState) Forfeit(leaver int) {
	if s.Status != SnakeRunning || leaver < 0 || leaver > 1 {
		return
	}
	winner := 1 - leaver
	s.Status = SnakeGameOver
	s.Winner = &winner
}

// Tick advances the simulation one step. It returns true when the match
// transitioned to GameOver during this tick.
func (s *SnakeState) Tick(now time.Time) bool {
	if s.Status != SnakeRunning {
		return false
	}

	// Buffered direction changes first.
	for i := range s.Players {
		p := &s.Players[i]
		if p.PendingDir != "" && p.PendingDir != p.Dir.Opposite() {
			p.Dir = p.PendingDir
		}
	}

	next := [2]Cell{
		s.Players[0].Body[0].Step(s.Players[0].Dir),
		s.Players[1].Body[0].Step(s.Players[1].Dir),
	}

	var crashed [2]bool
	for i := range s.Players {
		other := &s.Players[1-i]
		switch {
		case !inBounds(next[i], SnakeGridWidth, SnakeGridHeight):
			crashed[i] = true
		case bodyContains(s.Players[i].Body, next[i]):
			crashed[i] = true
		case bodyContains(other.Body, next[i]):
			crashed[i] = true
		}
	}
	if next[0] == next[1] {
		// Head-to-head: both players lose.
		crashed[0], crashed[1] = true, true
	}

	if crashed[0] || crashed[1] {
		s.Status = SnakeGameOver
		switch {
		case crashed[0] && crashed[1]:
			s.Winner = nil
		case crashed[0]:
			w := 1
			s.Winner = &w
		default:
			w := 0
			s.Winner = &w
		}
		return true
	}

	for i := range s.Players {
		p := &s.Players[i]
		p.Body = append([]Cell{next[i]}, p.Body...)
		if next[i] == s.Food {
			p.Score++
			s.Food = spawnFood(s.rng, SnakeGridWidth, SnakeGridHeight, s.Players[0].Body, s.Players[1].Body)
		} else {
			p.Body = p.Body[:len(p.Body)-1]
		}
	}

	for i := range s.Players {
		if s.Players[i].Score >= SnakeTargetScore {
			w := i
			s.Status = SnakeGameOver
			s.Winner = &w
			return true
		}
	}

	if s.TimerEndsAt != nil && !now.Before(*s.TimerEndsAt) {
		s.Status = SnakeGameOver
		switch {
		case s.Players[0].Score > s.Players[1].Score:
			w := 0
			s.Winner = &w
		case s.Players[1].Score > s.Players[0].Score:
			w := 1
			s.Winner = &w
		default:
			s.Winner = nil
		}
		return true
	}

	return false
}
