package game

import "errors"

// Kind tags the variant of a game so one entry point can dispatch on
// it instead of duck-typing state blobs.
type Kind string

const (
	KindRPS   Kind = "rps"
	KindTTT   Kind = "ttt"
	KindSnake Kind = "snake"
)

var ErrUnknownKind = errors.New("unknown game kind")

// Embedded is a turn-based game carried inside a chat message. Snake
// matches are not embedded; they live on the funroom itself.
type Embedded struct {
	Kind Kind
	RPS  *RPSState
	TTT  *TTTState
}

func NewEmbedded(kind Kind) (*Embedded, error) {
	switch kind {
	case KindRPS:
		return &Embedded{Kind: KindRPS, RPS: NewRPS()}, nil
	case KindTTT:
		return &Embedded{Kind: KindTTT, TTT: NewTTT()}, nil
	}
	return nil, ErrUnknownKind
}

// Apply dispatches a move to the underlying engine and reports whether
// the state changed. RPS takes a choice string; TTT takes a cell index.
func (e *Embedded) Apply(player string, move any) bool {
	switch e.Kind {
	case KindRPS:
		choice, ok := move.(string)
		if !ok {
			return false
		}
		return e.RPS.Apply(player, choice)
	case KindTTT:
		cell, ok := asInt(move)
		if !ok {
			return false
		}
		return e.TTT.Apply(player, cell)
	}
	return false
}

// Done reports whether the embedded game is terminal.
func (e *Embedded) Done() bool {
	switch e.Kind {
	case KindRPS:
		return e.RPS.Result != nil
	case KindTTT:
		return e.TTT.Result != ""
	}
	return false
}

// State returns the wire-facing state blob for broadcasts.
func (e *Embedded) State() any {
	switch e.Kind {
	case KindRPS:
		return e.RPS
	case KindTTT:
		return e.TTT
	}
	return nil
}

// asInt accepts the numeric shapes JSON decoding can produce.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	}
	return 0, false
}
