package slideshow

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

type state int

const (
	stateStarting state = iota
	stateCycling
	stateStopped
	stateFaulted
)

func (s state) String() string {
	switch s {
	case stateStarting:
		return "starting"
	case stateCycling:
		return "cycling"
	case stateStopped:
		return "stopped"
	case stateFaulted:
		return "faulted"
	default:
		return "unknown"
	}
}

type worker struct {
	catalog      []string
	opts         Options
	materializer Materializer
	setter       Setter
	timer        Timer
	rng          intN
	cmds         <-chan Command
	events       *eventQueue

	// last is the most recently applied catalog entry, empty before the
	// first cycle. Only the worker goroutine touches it.
	last string
}

// start runs the Starting state. It is called on the owner's goroutine so a
// bad style never produces a handle.
func (w *worker) start() (state, error) {
	if err := w.setter.SetStyle(w.opts.Style); err != nil {
		return stateFaulted, fmt.Errorf("failed to apply style %q: %w", w.opts.Style, err)
	}
	return stateCycling, nil
}

// run drives the Cycling state until a terminal state is reached.
func (w *worker) run() state {
	log.Debugf("slideshow worker started with %d images, interval %v, %s order",
		len(w.catalog), w.opts.Interval, w.opts.Mode)

	st := stateCycling
	for st == stateCycling {
		st = w.cycle()
	}

	log.Debugf("slideshow worker %s", st)
	return st
}

// cycle performs one select, materialize, apply, report, wait pass.
func (w *worker) cycle() state {
	skipWait, stop := w.drainCommands()
	if stop {
		return stateStopped
	}

	next := Select(w.catalog, w.last, w.opts.Mode, w.rng)
	log.Debugf("materializing %s", next)

	started := time.Now()
	cached, err := w.materializer.Materialize(next, w.opts.AutoRotate)
	if err != nil {
		return w.fault(err)
	}

	if err := w.setter.SetWallpaper(cached); err != nil {
		return w.fault(err)
	}

	log.Infof("wallpaper set to %s (%v)", next, time.Since(started).Round(time.Millisecond))
	w.events.push(infoEvent(next))
	w.last = next

	if skipWait {
		return stateCycling
	}

	cmd, interrupted := w.timer.Wait(w.cmds, w.opts.Interval)
	if interrupted && cmd == CommandStop {
		return stateStopped
	}
	return stateCycling
}

// drainCommands empties the command channel without blocking. A Stop
// anywhere in the queue wins over any AdvanceNow.
func (w *worker) drainCommands() (skipWait, stop bool) {
	for {
		select {
		case cmd, ok := <-w.cmds:
			if !ok || cmd == CommandStop {
				return false, true
			}
			if cmd == CommandAdvanceNow {
				skipWait = true
			}
		default:
			return skipWait, false
		}
	}
}

func (w *worker) fault(err error) state {
	log.Errorf("slideshow worker failed: %v", err)
	w.events.push(errorEvent(err.Error()))
	return stateFaulted
}
