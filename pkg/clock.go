package pkg

import (
	"fmt"
	"time"
)

// Clock drives gravity and keeps the play time of the current game.
type Clock struct {
	Interval time.Duration
	Elapsed  time.Duration

	ticker *time.Ticker
}

func (cl *Clock) String() string {
	return fmt.Sprintf("%d:%02d", int(cl.Elapsed.Minutes()), int(cl.Elapsed.Seconds())%60)
}

func NewClock(interval time.Duration) *Clock {
	return &Clock{
		Interval: interval,
		ticker:   time.NewTicker(interval),
	}
}

func (cl *Clock) C() <-chan time.Time {
	return cl.ticker.C
}

// Advance adds one gravity step to the play time.
func (cl *Clock) Advance() {
	cl.Elapsed += cl.Interval
}

func (cl *Clock) SetInterval(interval time.Duration) {
	if interval <= 0 || interval == cl.Interval {
		return
	}

	cl.Interval = interval
	cl.ticker.Reset(interval)
}

func (cl *Clock) Reset() {
	cl.Elapsed = 0
}

func (cl *Clock) Stop() {
	cl.ticker.Stop()
}
