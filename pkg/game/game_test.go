package game

import (
	"testing"

	"github.com/qnkhuat/gestris/pkg/event"
	"github.com/qnkhuat/gestris/pkg/mino"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()

	return NewGame(Options{
		Width:     10,
		Height:    20,
		Generator: mino.NewGenerator(1),
		Logger:    zaptest.NewLogger(t),
	})
}

// place makes a piece of the given shape current at column x of the spawn row.
func place(g *Game, shape mino.Shape, x int) {
	g.current = mino.NewPiece(shape, 2, g.board.W)
	g.current.X = x
}

func recordEvents(g *Game) *[]event.Event {
	var events []event.Event
	g.Subscribe(func(e event.Event) {
		events = append(events, e)
	})

	return &events
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t)

	assert.Equal(t, 0, g.Score())
	assert.Equal(t, 1, g.Level())
	assert.Equal(t, PhaseRunning, g.Phase())
	assert.False(t, g.Paused())

	st := g.State()
	assert.Nil(t, st.Current)
	require.NotNil(t, st.Next)
	assert.Equal(t, 10, st.Board.W)
	assert.Equal(t, 20, st.Board.H)
}

func TestFirstTickSpawns(t *testing.T) {
	g := newTestGame(t)
	next := *g.next

	g.Tick()

	require.NotNil(t, g.current)
	assert.Equal(t, next.Shape, g.current.Shape)
	assert.Equal(t, next.Color, g.current.Color)
	assert.Equal(t, mino.SpawnPoint(10).X, g.current.X)
	assert.Equal(t, 1, g.current.Y, "gravity applies after spawning")
	assert.NotNil(t, g.next)
}

func TestCommandsWithoutPieceAreNoops(t *testing.T) {
	g := newTestGame(t)
	before := g.State()

	g.MoveHorizontal(-1)
	g.Rotate()
	g.HardDrop()
	g.SoftDrop()

	assert.Equal(t, before, g.State())
}

func TestScoring(t *testing.T) {
	for lines := 0; lines <= 4; lines++ {
		g := newTestGame(t)
		events := recordEvents(g)

		// Vertical I lands in column 1 covering rows 16-19.
		for y := g.board.H - lines; y < g.board.H; y++ {
			for x := 0; x < g.board.W; x++ {
				if x != 1 {
					g.board.M[y][x] = 3
				}
			}
		}
		place(g, mino.ShapeI, 0)

		g.HardDrop()

		assert.Equal(t, lines*lines*10, g.Score(), "clearing %d lines", lines)
		if lines > 0 {
			require.Len(t, *events, 1)
			assert.Equal(t, event.LinesClearedEvent{Lines: lines, Score: lines * lines * 10}, (*events)[0])
		} else {
			assert.Empty(t, *events)
		}
	}
}

func TestOPiecesScenario(t *testing.T) {
	g := newTestGame(t)

	// The O variant occupies local columns 1-2, so x=-1 puts it at columns 0-1.
	for i := 0; i < 4; i++ {
		place(g, mino.ShapeO, -1+2*i)
		g.HardDrop()
	}

	assert.Equal(t, 0, g.Score())
	for x := 0; x < 8; x++ {
		assert.Equal(t, mino.Block(2), g.board.M[19][x])
		assert.Equal(t, mino.Block(2), g.board.M[18][x])
	}
	assert.Equal(t, mino.BlockNone, g.board.M[19][8])
	assert.Equal(t, mino.BlockNone, g.board.M[19][9])

	place(g, mino.ShapeO, 7)
	g.HardDrop()

	// A 2x2 piece completes both bottom rows at once.
	assert.Equal(t, 40, g.Score())
	for _, block := range g.board.Cells() {
		assert.Equal(t, mino.BlockNone, block)
	}
}

func TestSingleLineScenario(t *testing.T) {
	g := newTestGame(t)

	for x := 0; x < 8; x++ {
		g.board.M[19][x] = 1
	}

	// Vertical I pieces in columns 8 and 9 finish the bottom row only.
	place(g, mino.ShapeI, 7)
	g.HardDrop()
	assert.Equal(t, 0, g.Score())

	place(g, mino.ShapeI, 8)
	g.HardDrop()
	assert.Equal(t, 10, g.Score())

	for y := 17; y < 20; y++ {
		assert.Equal(t, mino.Block(2), g.board.M[y][8])
		assert.Equal(t, mino.Block(2), g.board.M[y][9])
	}
	assert.Equal(t, mino.BlockNone, g.board.M[19][0])
}

func TestMoveRejectedAtWall(t *testing.T) {
	g := newTestGame(t)
	place(g, mino.ShapeO, -1)
	before := *g.current

	g.MoveHorizontal(-1)
	assert.Equal(t, before, *g.current)

	g.MoveHorizontal(1)
	assert.Equal(t, 0, g.current.X)

	place(g, mino.ShapeO, 7)
	before = *g.current
	g.MoveHorizontal(1)
	assert.Equal(t, before, *g.current)
}

func TestRotateRejected(t *testing.T) {
	g := newTestGame(t)
	events := recordEvents(g)

	// Vertical I against the left wall: the horizontal variant spans columns -1..2.
	place(g, mino.ShapeI, -1)
	g.current.Y = 5
	require.False(t, g.board.WouldCollide(g.current))
	before := *g.current

	g.Rotate()

	assert.Equal(t, before, *g.current)
	assert.Empty(t, *events)

	g.current.X = 3
	g.Rotate()
	assert.Equal(t, 1, g.current.Rotation)
	assert.Equal(t, []event.Event{event.RotateEvent{}}, *events)
}

func TestPause(t *testing.T) {
	g := newTestGame(t)
	g.Tick()
	before := g.State()

	g.TogglePause()
	assert.True(t, g.Paused())

	g.Tick()
	g.MoveHorizontal(1)
	g.Rotate()
	g.HardDrop()
	g.SoftDrop()

	after := g.State()
	after.Paused = false
	assert.Equal(t, before, after)

	g.TogglePause()
	assert.False(t, g.Paused())
	g.Tick()
	assert.Equal(t, before.Current.Y+1, g.current.Y)
}

func TestSoftDropFreezes(t *testing.T) {
	g := newTestGame(t)
	place(g, mino.ShapeO, 3)
	g.current.Y = 18

	g.SoftDrop()

	assert.Equal(t, mino.Block(2), g.board.M[19][4])
	assert.Equal(t, mino.Block(2), g.board.M[18][5])
	assert.Equal(t, 0, g.current.Y, "next piece spawned")
}

func TestGameOver(t *testing.T) {
	g := newTestGame(t)
	events := recordEvents(g)

	for x := 3; x < 7; x++ {
		g.board.M[0][x] = 5
		g.board.M[1][x] = 5
	}
	place(g, mino.ShapeO, -1)
	g.HardDrop()

	assert.Equal(t, PhaseGameOver, g.Phase())
	require.Len(t, *events, 1)
	assert.Equal(t, event.GameOverEvent{Score: 0}, (*events)[0])

	before := g.State()
	for _, c := range []event.Command{event.CommandMoveLeft, event.CommandRotate, event.CommandHardDrop, event.CommandSoftDrop, event.CommandPause} {
		require.NoError(t, g.Apply(c))
	}
	g.Tick()

	assert.Equal(t, before, g.State())
	assert.Len(t, *events, 1)
}

func TestStackingEndsGame(t *testing.T) {
	g := newTestGame(t)
	events := recordEvents(g)

	g.Tick()
	for i := 0; i < 200 && !g.GameOver(); i++ {
		g.HardDrop()
	}

	require.True(t, g.GameOver())
	last := (*events)[len(*events)-1]
	assert.IsType(t, event.GameOverEvent{}, last)
	assert.True(t, g.board.WouldCollide(g.current))
}

func TestRestart(t *testing.T) {
	g := newTestGame(t)
	g.Tick()
	g.board.M[19][0] = 1
	g.score = 90
	g.phase = PhaseGameOver
	g.paused = true

	g.Restart()

	assert.Equal(t, 0, g.Score())
	assert.Equal(t, 1, g.Level())
	assert.Equal(t, PhaseRunning, g.Phase())
	assert.False(t, g.Paused())
	assert.Nil(t, g.current)
	assert.NotNil(t, g.next)
	assert.Equal(t, mino.BlockNone, g.board.M[19][0])
}

func TestApply(t *testing.T) {
	g := newTestGame(t)
	g.Tick()
	x := g.current.X

	require.NoError(t, g.Apply(event.CommandNone))
	require.NoError(t, g.Apply(event.CommandMoveRight))
	assert.Equal(t, x+1, g.current.X)
	require.NoError(t, g.Apply(event.CommandMoveLeft))
	assert.Equal(t, x, g.current.X)

	require.NoError(t, g.Apply(event.CommandPause))
	assert.True(t, g.Paused())

	err := g.Apply(event.CommandSave)
	assert.ErrorIs(t, err, ErrUnknownCommand)
	err = g.Apply(event.Command(99))
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestRestore(t *testing.T) {
	g := newTestGame(t)
	g.Tick()
	g.board.M[19][4] = 6
	g.score = 30

	st := g.State()
	r, err := Restore(st, Options{Generator: mino.NewGenerator(2)})
	require.NoError(t, err)
	assert.Equal(t, st, r.State())

	r.board.M[19][4] = 0
	assert.Equal(t, mino.Block(6), st.Board.M[19][4], "restore copies the state")

	_, err = Restore(State{}, Options{})
	assert.Error(t, err)
}
