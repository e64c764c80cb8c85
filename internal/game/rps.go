package game

// DrawWinner marks a resolved game with no winner.
const DrawWinner = "draw"

var beats = map[string]string{
	"rock":     "scissors",
	"paper":    "rock",
	"scissors": "paper",
}

type RPSResult struct {
	P1     string `json:"p1"`
	M1     string `json:"m1"`
	P2     string `json:"p2"`
	M2     string `json:"m2"`
	Winner string `json:"winner"`
}

// RPSState collects one move per player. Once two distinct players have
// moved the result is computed and the state becomes terminal.
type RPSState struct {
	Moves   map[string]string `json:"moves"`
	Players []string          `json:"-"`
	Result  *RPSResult        `json:"result,omitempty"`
}

func NewRPS() *RPSState {
	return &RPSState{Moves: make(map[string]string)}
}

// Apply records a move and reports whether the state changed. Moves
// after resolution, unknown choices, and moves from a third player are
// dropped.
func (s *RPSState) Apply(player, move string) bool {
	if s.Result != nil {
		return false
	}
	if _, ok := beats[move]; !ok {
		return false
	}
	if _, already := s.Moves[player]; !already {
		if len(s.Players) >= 2 {
			return false
		}
		s.Players = append(s.Players, player)
	}
	s.Moves[player] = move

	if len(s.Players) == 2 {
		s.resolve()
	}
	return true
}

func (s *RPSState) resolve() {
	p1, p2 := s.Players[0], s.Players[1]
	m1, m2 := s.Moves[p1], s.Moves[p2]

	winner := DrawWinner
	switch {
	case beats[m1] == m2:
		winner = p1
	case beats[m2] == m1:
		winner = p2
	}

	s.Result = &RPSResult{P1: p1, M1: m1, P2: p2, M2: m2, Winner: winner}
}
