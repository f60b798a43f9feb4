package slideshow

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/matjam/wallrotate/internal/types"
)

// Command is sent from the owner of a Handle to its worker.
type Command int

const (
	CommandStop Command = iota + 1
	CommandAdvanceNow
)

func (c Command) String() string {
	switch c {
	case CommandStop:
		return "stop"
	case CommandAdvanceNow:
		return "advance-now"
	default:
		return "unknown"
	}
}

type EventKind int

const (
	// EventInfo reports an applied image.
	EventInfo EventKind = iota + 1
	// EventError is terminal. The worker sends nothing after it.
	EventError
)

// Event is sent from the worker to the owner of a Handle.
type Event struct {
	Kind EventKind
	// Text is for display.
	Text string
	// Image is the applied catalog entry. Only set on EventInfo.
	Image string
}

func infoEvent(image string) Event {
	return Event{Kind: EventInfo, Text: "Set: " + image, Image: image}
}

func errorEvent(text string) Event { return Event{Kind: EventError, Text: text} }

// Materializer turns a catalog entry into a file the wallpaper setter can use.
type Materializer interface {
	Materialize(src string, autoRotate bool) (string, error)
}

// Setter applies styles and images to the desktop.
type Setter interface {
	SetStyle(style types.StyleMode) error
	SetWallpaper(path string) error
}

// Options are fixed for the lifetime of one worker.
type Options struct {
	AutoRotate bool
	Style      types.StyleMode
	Interval   time.Duration
	Mode       types.SelectionMode

	// Slice is the timer polling granularity. Zero means DefaultSlice.
	Slice time.Duration
	// Clock defaults to the real clock.
	Clock clockwork.Clock
}

// eventQueue is an unbounded FIFO so the worker never blocks on a slow
// or departed owner.
type eventQueue struct {
	mu    sync.Mutex
	items []Event
}

func (q *eventQueue) push(e Event) {
	q.mu.Lock()
	q.items = append(q.items, e)
	q.mu.Unlock()
}

func (q *eventQueue) drain(out []Event) []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	out = append(out, q.items...)
	q.items = q.items[:0]
	return out
}
