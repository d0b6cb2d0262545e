// Package gesture turns per-frame finger poses from a hand tracker into game
// commands.
package gesture

import (
	"errors"
	"fmt"
	"strings"

	"github.com/qnkhuat/gestris/pkg/event"
)

const (
	Thumb = iota
	Index
	Middle
	Ring
	Pinky

	FingerCount
)

var ErrMalformedFrame = errors.New("malformed finger frame")

// Fingers holds one extended flag per finger, thumb first.
type Fingers [FingerCount]bool

// Frame is one camera frame as seen by the hand tracker. Hand is false when
// no hand was detected and Fingers is then meaningless.
type Frame struct {
	Hand    bool
	Fingers Fingers
}

// FingersFromSlice converts a tracker vector. Anything other than exactly five
// values is rejected.
func FingersFromSlice(v []bool) (Fingers, error) {
	var f Fingers
	if len(v) != FingerCount {
		return f, fmt.Errorf("%w: expected %d fingers, got %d", ErrMalformedFrame, FingerCount, len(v))
	}

	copy(f[:], v)
	return f, nil
}

func (f Fingers) String() string {
	var b strings.Builder
	for _, up := range f {
		if up {
			b.WriteRune('1')
		} else {
			b.WriteRune('0')
		}
	}

	return b.String()
}

// Classify maps a pose to a command. Only the index finger and the pinky
// matter.
func Classify(f Fingers) event.Command {
	switch {
	case f[Index] && !f[Pinky]:
		return event.CommandMoveLeft
	case !f[Index] && f[Pinky]:
		return event.CommandMoveRight
	case f[Index] && f[Pinky]:
		return event.CommandRotate
	default:
		return event.CommandNone
	}
}
