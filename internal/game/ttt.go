package game

var tttLines = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8}, // rows
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8}, // columns
	{0, 4, 8}, {2, 4, 6}, // diagonals
}

// TTTState is a standard tic-tac-toe board. The first distinct player
// to act is assigned X, the second O; anyone else is rejected.
type TTTState struct {
	Board  [9]string         `json:"board"`
	Marks  map[string]string `json:"marks"`
	Turn   string            `json:"turn"`
	Result string            `json:"result,omitempty"` // "X", "O" or "draw"
	Winner string            `json:"winner,omitempty"` // player name for a won game
}

func NewTTT() *TTTState {
	return &TTTState{
		Marks: make(map[string]string),
		Turn:  "X",
	}
}

// Apply places the player's mark at cell and reports whether the state
// changed. Out-of-turn, out-of-range, occupied-cell and post-result
// moves are dropped.
func (s *TTTState) Apply(player string, cell int) bool {
	if s.Result != "" {
		return false
	}
	if cell < 0 || cell > 8 || s.Board[cell] != "" {
		return false
	}

	mark, known := s.Marks[player]
	if !known {
		switch len(s.Marks) {
		case 0:
			mark = "X"
		case 1:
			mark = "O"
		default:
			return false
		}
	}
	if mark != s.Turn {
		return false
	}
	if !known {
		s.Marks[player] = mark
	}

	s.Board[cell] = mark

	if s.lineWon(mark) {
		s.Result = mark
		s.Winner = player
		return true
	}
	if s.full() {
		s.Result = DrawWinner
		return true
	}

	if s.Turn == "X" {
		s.Turn = "O"
	} else {
		s.Turn = "X"
	}
	return true
}

func (s *TTTState) lineWon(mark string) bool {
	for _, line := range tttLines {
		if s.Board[line[0]] == mark && s.Board[line[1]] == mark && s.Board[line[2]] == mark {
			return true
		}
	}
	return false
}

func (s *TTTState) full() bool {
	for _, c := range s.Board {
		if c == "" {
			return false
		}
	}
	return true
}
