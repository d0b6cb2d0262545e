package event

// Event is a side effect emitted by a game for hosts to react to (sound,
// score ledger, redraw).
type Event interface {
	isEvent()
}

// RotateEvent is emitted after a rotation was accepted.
type RotateEvent struct{}

// GameOverEvent is emitted once when a spawned piece has no room.
type GameOverEvent struct {
	Score int
}

type LinesClearedEvent struct {
	Lines int
	Score int
}

func (RotateEvent) isEvent()       {}
func (GameOverEvent) isEvent()     {}
func (LinesClearedEvent) isEvent() {}

type Handler func(Event)
