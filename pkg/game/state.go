package game

import (
	"errors"
	"fmt"

	"github.com/qnkhuat/gestris/pkg/mino"
)

type Phase int

const (
	PhaseRunning Phase = iota
	PhaseGameOver
)

func (p Phase) Valid() bool {
	return p == PhaseRunning || p == PhaseGameOver
}

func (p Phase) String() string {
	switch p {
	case PhaseRunning:
		return "Running"
	case PhaseGameOver:
		return "GameOver"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// State is a detached copy of everything a Game holds. Hosts render from it
// and the store persists it.
type State struct {
	Board   *mino.Board
	Current *mino.Piece
	Next    *mino.Piece
	Score   int
	Level   int
	Phase   Phase
	Paused  bool
}

// Copy returns a deep copy of st.
func (st State) Copy() State {
	c := st
	if st.Board != nil {
		c.Board = st.Board.Copy()
	}
	c.Current = st.Current.Copy()
	c.Next = st.Next.Copy()

	return c
}

var errIncompleteState = errors.New("incomplete game state")

// Restore rebuilds a game from a state. The state is copied.
func Restore(st State, opts Options) (*Game, error) {
	if st.Board == nil || st.Next == nil {
		return nil, errIncompleteState
	} else if !st.Phase.Valid() {
		return nil, fmt.Errorf("unknown phase %d", st.Phase)
	}

	g := newGame(opts)

	st = st.Copy()
	g.board = st.Board
	g.current = st.Current
	g.next = st.Next
	g.score = st.Score
	g.level = st.Level
	g.phase = st.Phase
	g.paused = st.Paused

	return g, nil
}
