package gesture

import (
	"time"

	"github.com/qnkhuat/gestris/pkg/event"
)

const DefaultCooldown = 100 * time.Millisecond

// Classifier debounces classified frames: after a command is accepted, every
// command within Cooldown of it is dropped.
type Classifier struct {
	Cooldown time.Duration

	last     time.Time
	accepted bool
}

func NewClassifier(cooldown time.Duration) *Classifier {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}

	return &Classifier{Cooldown: cooldown}
}

// Feed classifies a frame captured at now and returns the command to apply,
// or CommandNone.
func (c *Classifier) Feed(now time.Time, frame Frame) event.Command {
	if !frame.Hand {
		return event.CommandNone
	}

	cmd := Classify(frame.Fingers)
	if cmd == event.CommandNone {
		return event.CommandNone
	}

	if c.accepted && now.Sub(c.last) < c.Cooldown {
		return event.CommandNone
	}

	c.last = now
	c.accepted = true

	return cmd
}

// Reset forgets the last accepted command.
func (c *Classifier) Reset() {
	c.last = time.Time{}
	c.accepted = false
}
