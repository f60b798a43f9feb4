package slideshow

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultSlice is how long the timer sleeps between command checks.
const DefaultSlice = 500 * time.Millisecond

// Timer waits for an interval while staying responsive to commands.
type Timer struct {
	Clock clockwork.Clock
	Slice time.Duration
}

func newTimer(clock clockwork.Clock, slice time.Duration) Timer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if slice <= 0 {
		slice = DefaultSlice
	}
	return Timer{Clock: clock, Slice: slice}
}

// Wait blocks for d in slices of t.Slice. It returns the first command seen
// and interrupted=true, or interrupted=false once d has fully elapsed.
// A closed command channel reads as CommandStop.
func (t Timer) Wait(cmds <-chan Command, d time.Duration) (cmd Command, interrupted bool) {
	start := t.Clock.Now()
	for {
		remaining := d - t.Clock.Since(start)
		if remaining <= 0 {
			return 0, false
		}

		select {
		case c, ok := <-cmds:
			return received(c, ok), true
		default:
		}

		slice := t.Clock.NewTimer(min(t.Slice, remaining))
		select {
		case c, ok := <-cmds:
			slice.Stop()
			return received(c, ok), true
		case <-slice.Chan():
		}
	}
}

func received(c Command, ok bool) Command {
	if !ok {
		return CommandStop
	}
	return c
}
