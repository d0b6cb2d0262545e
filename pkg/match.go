package pkg

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/qnkhuat/gestris/pkg/event"
	"github.com/qnkhuat/gestris/pkg/game"
	"github.com/qnkhuat/gestris/pkg/gesture"
	"github.com/qnkhuat/gestris/pkg/mino"
	"github.com/qnkhuat/gestris/pkg/store"
	"go.uber.org/zap"
)

const MessageQueueSize = 20

// ErrNoGame is returned for a game command while no game is running.
var ErrNoGame = errors.New("no game in progress")

// Sounds is the audio sink a match reports game events to.
type Sounds interface {
	PlayRotate()
	PlayLineClear(lines int)
	PlayGameOver()
}

type silence struct{}

func (silence) PlayRotate()       {}
func (silence) PlayLineClear(int) {}
func (silence) PlayGameOver()     {}

type MatchOptions struct {
	Player       *Player
	Width        int
	Height       int
	TickInterval time.Duration
	Cooldown     time.Duration
	Seed         int64
	SavePath     string
	Ledger       *store.Ledger
	Sounds       Sounds
	Logger       *zap.Logger

	// OnUpdate is called from the control loop after every change.
	OnUpdate func(Snapshot)
}

// Snapshot is a detached view of a match for renderers.
type Snapshot struct {
	ID      uuid.UUID
	Player  string
	HasGame bool
	State   game.State
	Elapsed string
}

type requestKind int

const (
	requestCommand requestKind = iota
	requestNewGame
	requestInterval
)

type request struct {
	kind     requestKind
	cmd      event.Command
	interval time.Duration
	reply    chan error
}

// Match runs one player's session. Run owns the game; every other method
// talks to it over channels and is safe for concurrent use.
type Match struct {
	ID     uuid.UUID
	Player *Player

	opts       MatchOptions
	game       *game.Game
	gen        *mino.Generator
	classifier *gesture.Classifier
	clock      *Clock
	logger     *zap.Logger

	requests chan request
	frames   chan TimedFrame

	mu       sync.RWMutex
	snapshot Snapshot
}

func NewMatch(opts MatchOptions) *Match {
	if opts.Player == nil {
		opts.Player = &Player{Name: RandomNickname()}
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = 500 * time.Millisecond
	}
	if opts.Sounds == nil {
		opts.Sounds = silence{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	id := uuid.New()
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := &Match{
		ID:         id,
		Player:     opts.Player,
		opts:       opts,
		gen:        mino.NewGenerator(seed),
		classifier: gesture.NewClassifier(opts.Cooldown),
		clock:      NewClock(opts.TickInterval),
		logger:     opts.Logger.With(zap.Stringer("match", id), zap.String("player", opts.Player.Name)),
		requests:   make(chan request, MessageQueueSize),
		frames:     make(chan TimedFrame, MessageQueueSize),
	}
	m.publish()

	return m
}

// Frames is where tracker frames should be sent.
func (m *Match) Frames() chan<- TimedFrame {
	return m.frames
}

// Snapshot returns the state published after the last change.
func (m *Match) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.snapshot
}

// State returns a copy of the running game, if any.
func (m *Match) State() (game.State, bool) {
	s := m.Snapshot()
	return s.State.Copy(), s.HasGame
}

func (m *Match) do(ctx context.Context, req request) error {
	req.reply = make(chan error, 1)

	select {
	case m.requests <- req:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-req.reply:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do runs a command and waits for its result.
func (m *Match) Do(ctx context.Context, cmd event.Command) error {
	return m.do(ctx, request{kind: requestCommand, cmd: cmd})
}

// Send queues a command without waiting. It drops the command when the queue
// is full.
func (m *Match) Send(cmd event.Command) {
	select {
	case m.requests <- request{kind: requestCommand, cmd: cmd}:
	default:
		m.logger.Warn("command queue full", zap.Stringer("command", cmd))
	}
}

// NewGame replaces the current game, if any, with a fresh one.
func (m *Match) NewGame(ctx context.Context) error {
	return m.do(ctx, request{kind: requestNewGame})
}

func (m *Match) SetTickInterval(ctx context.Context, d time.Duration) error {
	return m.do(ctx, request{kind: requestInterval, interval: d})
}

// Run is the control loop. It returns when ctx is done.
func (m *Match) Run(ctx context.Context) error {
	defer m.clock.Stop()
	m.logger.Info("match started")

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("match stopped")
			return ctx.Err()

		case <-m.clock.C():
			if m.game == nil {
				continue
			}
			if !m.game.Paused() && !m.game.GameOver() {
				m.clock.Advance()
			}
			m.game.Tick()
			m.publish()

		case req := <-m.requests:
			err := m.handle(req)
			if req.reply != nil {
				req.reply <- err
			} else if err != nil {
				m.logger.Warn("command failed", zap.Stringer("command", req.cmd), zap.Error(err))
			}
			m.publish()

		case f := <-m.frames:
			cmd := m.classifier.Feed(f.At, f.Frame)
			if cmd == event.CommandNone || m.game == nil {
				continue
			}
			if err := m.game.Apply(cmd); err != nil {
				m.logger.Warn("gesture command failed", zap.Stringer("command", cmd), zap.Error(err))
			}
			m.publish()
		}
	}
}

func (m *Match) handle(req request) error {
	switch req.kind {
	case requestNewGame:
		m.attach(game.NewGame(m.gameOptions()))
		m.game.Tick()
		m.logger.Info("new game")
		return nil

	case requestInterval:
		m.clock.SetInterval(req.interval)
		return nil
	}

	switch req.cmd {
	case event.CommandLoad:
		return m.load()
	case event.CommandSave:
		return m.save()
	}

	if m.game == nil {
		return fmt.Errorf("%w: %s", ErrNoGame, req.cmd)
	}

	if req.cmd == event.CommandRestart {
		m.clock.Reset()
		m.classifier.Reset()
	}

	return m.game.Apply(req.cmd)
}

func (m *Match) gameOptions() game.Options {
	return game.Options{
		Width:     m.opts.Width,
		Height:    m.opts.Height,
		Generator: m.gen,
		Logger:    m.logger,
	}
}

func (m *Match) attach(g *game.Game) {
	g.Subscribe(m.onEvent)
	m.game = g
	m.clock.Reset()
	m.classifier.Reset()
}

func (m *Match) onEvent(e event.Event) {
	switch e := e.(type) {
	case event.RotateEvent:
		m.opts.Sounds.PlayRotate()
	case event.LinesClearedEvent:
		m.opts.Sounds.PlayLineClear(e.Lines)
	case event.GameOverEvent:
		m.opts.Sounds.PlayGameOver()
		m.logger.Info("game over", zap.Int("score", e.Score), zap.Stringer("time", m.clock))
		m.recordScore(e.Score)
	}
}

func (m *Match) recordScore(score int) {
	if m.opts.Ledger == nil {
		return
	}

	if _, err := m.opts.Ledger.Record(m.Player.Name, score); err != nil {
		m.logger.Warn("could not record score", zap.Int("score", score), zap.Error(err))
	}
}

func (m *Match) save() error {
	if m.game == nil {
		return fmt.Errorf("%w: save", ErrNoGame)
	}

	if err := store.WriteSave(m.opts.SavePath, m.game.State()); err != nil {
		return fmt.Errorf("save game: %w", err)
	}

	m.logger.Info("game saved", zap.String("path", m.opts.SavePath), zap.Int("score", m.game.Score()))
	return nil
}

// load replaces the game with the saved one. The running game is untouched
// when the save cannot be read.
func (m *Match) load() error {
	st, err := store.ReadSave(m.opts.SavePath)
	if err != nil {
		return fmt.Errorf("load game: %w", err)
	}

	g, err := game.Restore(st, m.gameOptions())
	if err != nil {
		return fmt.Errorf("load game: %w", err)
	}

	m.attach(g)
	m.logger.Info("game loaded", zap.String("path", m.opts.SavePath), zap.Int("score", g.Score()))
	return nil
}

func (m *Match) publish() {
	s := Snapshot{
		ID:      m.ID,
		Player:  m.Player.Name,
		HasGame: m.game != nil,
		Elapsed: m.clock.String(),
	}
	if m.game != nil {
		s.State = m.game.State()
	}

	m.mu.Lock()
	m.snapshot = s
	m.mu.Unlock()

	if m.opts.OnUpdate != nil {
		m.opts.OnUpdate(s)
	}
}
