// Package slideshow runs the background wallpaper rotation.
//
// A Handle owns one worker goroutine. The owner talks to the worker through
// a command channel and reads its progress from an event queue; neither side
// ever blocks on the other. Cancellation is cooperative: the worker checks for
// commands at the top of each cycle and between timer slices, so an in-flight
// materialize or apply call always completes.
package slideshow

import (
	"errors"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrEmptyCatalog is returned by Start when there is nothing to show.
var ErrEmptyCatalog = errors.New("slideshow: empty catalog")

// commandBuffer bounds queued commands. AdvanceNow requests beyond it are
// redundant and dropped.
const commandBuffer = 8

// Handle is the owner's side of a running worker. Its methods are meant to be
// called from a single goroutine.
type Handle struct {
	cmds   chan Command
	events *eventQueue
	done   chan struct{}

	stopOnce sync.Once
	stopped  bool
}

// Start applies opts.Style, then spawns a worker cycling through catalog.
// It fails without spawning anything if catalog is empty or the style
// cannot be applied.
func Start(catalog []string, m Materializer, s Setter, opts Options) (*Handle, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	cmds := make(chan Command, commandBuffer)
	w := &worker{
		catalog:      slices.Clone(catalog),
		opts:         opts,
		materializer: m,
		setter:       s,
		timer:        newTimer(opts.Clock, opts.Slice),
		rng:          NewRand(),
		cmds:         cmds,
		events:       &eventQueue{},
	}

	if _, err := w.start(); err != nil {
		return nil, err
	}

	h := &Handle{
		cmds:   cmds,
		events: w.events,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(h.done)
		w.run()
	}()

	return h, nil
}

// RequestNext asks the worker to advance without waiting out its interval.
// It never blocks and is a no-op once the worker is gone.
func (h *Handle) RequestNext() {
	if h.stopped {
		return
	}
	select {
	case h.cmds <- CommandAdvanceNow:
	case <-h.done:
	default:
		log.Debug("advance request dropped, queue full")
	}
}

// Stop signals the worker to stop and returns immediately. Delivery of the
// signal and the wait for the worker to exit happen on a helper goroutine.
// The handle must not be used afterwards, except for Done.
func (h *Handle) Stop() {
	h.stopOnce.Do(func() {
		h.stopped = true
		go func() {
			select {
			case h.cmds <- CommandStop:
			case <-h.done:
			}
			<-h.done
			log.Debug("slideshow worker joined")
		}()
	})
}

// DrainEvents appends every queued event to out in arrival order.
func (h *Handle) DrainEvents(out []Event) []Event {
	return h.events.drain(out)
}

// Done is closed when the worker goroutine has returned.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
