package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/qnkhuat/gestris/pkg/event"
	"github.com/qnkhuat/gestris/pkg/mino"
	"go.uber.org/zap"
)

const (
	DefaultWidth  = 10
	DefaultHeight = 20
	InitialLevel  = 1
)

// ErrUnknownCommand is returned by Apply for commands the game cannot run.
var ErrUnknownCommand = errors.New("unknown game command")

type Options struct {
	Width  int
	Height int

	// Generator draws new pieces. A time seeded generator is used when nil.
	Generator *mino.Generator

	Logger *zap.Logger
}

// Game is the falling-block state machine. It is not safe for concurrent use;
// hosts drive it from a single goroutine.
type Game struct {
	board   *mino.Board
	current *mino.Piece
	next    *mino.Piece

	score  int
	level  int
	phase  Phase
	paused bool

	gen      *mino.Generator
	handlers []event.Handler
	logger   *zap.Logger
}

func newGame(opts Options) *Game {
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.Generator == nil {
		opts.Generator = mino.NewGenerator(time.Now().UTC().UnixNano())
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Game{
		board:  mino.NewBoard(opts.Width, opts.Height),
		level:  InitialLevel,
		gen:    opts.Generator,
		logger: opts.Logger,
	}
}

// NewGame returns a running game with an empty board and a buffered next
// piece. The first Tick spawns the current piece.
func NewGame(opts Options) *Game {
	g := newGame(opts)
	g.next = g.gen.Spawn(g.board.W)

	return g
}

// Subscribe registers a handler invoked synchronously for every event.
func (g *Game) Subscribe(h event.Handler) {
	g.handlers = append(g.handlers, h)
}

func (g *Game) emit(e event.Event) {
	for _, h := range g.handlers {
		h(e)
	}
}

func (g *Game) Score() int     { return g.score }
func (g *Game) Level() int     { return g.level }
func (g *Game) Phase() Phase   { return g.phase }
func (g *Game) Paused() bool   { return g.paused }
func (g *Game) GameOver() bool { return g.phase == PhaseGameOver }

// State returns a deep copy of the game.
func (g *Game) State() State {
	return State{
		Board:   g.board.Copy(),
		Current: g.current.Copy(),
		Next:    g.next.Copy(),
		Score:   g.score,
		Level:   g.level,
		Phase:   g.phase,
		Paused:  g.paused,
	}
}

func (g *Game) active() bool {
	return !g.paused && g.phase != PhaseGameOver
}

// Apply runs a player command.
func (g *Game) Apply(c event.Command) error {
	switch c {
	case event.CommandNone:
	case event.CommandMoveLeft:
		g.MoveHorizontal(-1)
	case event.CommandMoveRight:
		g.MoveHorizontal(1)
	case event.CommandRotate:
		g.Rotate()
	case event.CommandSoftDrop:
		g.SoftDrop()
	case event.CommandHardDrop:
		g.HardDrop()
	case event.CommandPause:
		g.TogglePause()
	case event.CommandRestart:
		g.Restart()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, c)
	}

	return nil
}

// Tick applies gravity. The first call spawns the current piece.
func (g *Game) Tick() {
	if !g.active() {
		return
	}

	if g.current == nil {
		g.spawn()
		if g.phase == PhaseGameOver {
			return
		}
	}

	g.lower()
}

// SoftDrop lowers the current piece by one row, freezing it when it cannot
// move.
func (g *Game) SoftDrop() {
	if !g.active() || g.current == nil {
		return
	}

	g.lower()
}

func (g *Game) lower() {
	g.current.Y++
	if g.board.WouldCollide(g.current) {
		g.current.Y--
		g.freeze()
	}
}

func (g *Game) HardDrop() {
	if !g.active() || g.current == nil {
		return
	}

	for !g.board.WouldCollide(g.current) {
		g.current.Y++
	}
	g.current.Y--

	g.freeze()
}

func (g *Game) MoveHorizontal(dx int) {
	if !g.active() || g.current == nil {
		return
	}

	oldX := g.current.X
	g.current.X += dx
	if g.board.WouldCollide(g.current) {
		g.current.X = oldX
	}
}

func (g *Game) Rotate() {
	if !g.active() || g.current == nil {
		return
	}

	oldRotation := g.current.Rotation
	g.current.Rotate()
	if g.board.WouldCollide(g.current) {
		g.current.Rotation = oldRotation
		return
	}

	g.emit(event.RotateEvent{})
}

func (g *Game) TogglePause() {
	if g.phase == PhaseGameOver {
		return
	}

	g.paused = !g.paused
}

// Restart resets the game to a fresh running state.
func (g *Game) Restart() {
	g.board.Clear()
	g.score = 0
	g.level = InitialLevel
	g.phase = PhaseRunning
	g.paused = false
	g.current = nil
	g.next = g.gen.Spawn(g.board.W)

	g.logger.Debug("game restarted")
}

func (g *Game) freeze() {
	g.board.Freeze(g.current)

	lines := g.board.ClearFullLines()
	g.score += lines * lines * 10

	g.logger.Debug("piece frozen",
		zap.Stringer("piece", g.current),
		zap.Int("lines", lines),
		zap.Int("score", g.score),
	)

	if lines > 0 {
		g.emit(event.LinesClearedEvent{Lines: lines, Score: g.score})
	}

	g.spawn()
}

// spawn promotes the buffered piece and buffers a new one. The game ends when
// the promoted piece has no room.
func (g *Game) spawn() {
	p := g.next
	if p == nil {
		p = g.gen.Spawn(g.board.W)
	}
	p.Point = mino.SpawnPoint(g.board.W)

	g.current = p
	g.next = g.gen.Spawn(g.board.W)

	if g.board.WouldCollide(p) {
		g.phase = PhaseGameOver

		g.logger.Debug("game over", zap.Int("score", g.score))
		g.emit(event.GameOverEvent{Score: g.score})
	}
}
