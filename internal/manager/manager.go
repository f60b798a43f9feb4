// Package manager owns the slideshow worker on behalf of the daemon.
//
// Every exported method takes the manager lock, which makes the lock holder
// the single owner the slideshow Handle expects. Stopping a worker never
// blocks; the next wallpaper write (a new worker or an idle apply) waits for
// the released worker to exit first, which takes at most one in-flight apply.
package manager

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/matjam/wallrotate/internal/catalog"
	"github.com/matjam/wallrotate/internal/slideshow"
	"github.com/matjam/wallrotate/internal/state"
	"github.com/matjam/wallrotate/internal/types"
)

// ErrNoImages is returned when the configured sources contain no images.
var ErrNoImages = errors.New("no images found in the selected folders")

const (
	statusIdle    = "Idle"
	statusRunning = "Slideshow running"

	defaultPollInterval = 250 * time.Millisecond
)

// Settings are the user choices a worker is started with.
type Settings struct {
	Folders     []catalog.Folder
	SingleImage string
	Exclude     []string
	AutoRotate  bool
	RandomOrder bool
	Interval    time.Duration
	Style       types.StyleMode

	// PollInterval is how often worker events are drained.
	PollInterval time.Duration
	// StatePath is where running state is persisted. Empty disables persistence.
	StatePath string
}

// Deps are the collaborators the manager hands to each worker.
type Deps struct {
	Materializer slideshow.Materializer
	Setter       slideshow.Setter
	// BuildCatalog defaults to catalog.Build.
	BuildCatalog func(context.Context, catalog.Options) ([]string, error)
	// Slice overrides the worker timer slice, for tests.
	Slice time.Duration
}

// Status is a point-in-time view of the manager.
type Status struct {
	Running    bool   `json:"running"`
	Status     string `json:"status"`
	LastImage  string `json:"last_image"`
	ImageCount int    `json:"image_count"`
	Interval   string `json:"interval"`
	Style      string `json:"style"`
	Order      string `json:"order"`
	Folders    int    `json:"folders"`
}

type Manager struct {
	sync.Mutex
	settings   Settings
	deps       Deps
	worker     *slideshow.Handle
	running    bool
	resume     bool
	status     string
	lastImage  string
	imageCount int
	rng        *rand.Rand
	events     []slideshow.Event

	// released is the Done channel of the last stopped worker, nil once it
	// has been observed closed.
	released <-chan struct{}

	quit     chan struct{}
	quitOnce sync.Once
}

// New creates a manager. Persisted state decides whether Run resumes the slideshow.
func New(settings Settings, deps Deps) *Manager {
	if deps.BuildCatalog == nil {
		deps.BuildCatalog = catalog.Build
	}
	if settings.PollInterval <= 0 {
		settings.PollInterval = defaultPollInterval
	}

	m := &Manager{
		settings: settings,
		deps:     deps,
		status:   statusIdle,
		rng:      slideshow.NewRand(),
		quit:     make(chan struct{}),
	}

	if settings.StatePath != "" {
		saved := state.Load(settings.StatePath)
		m.resume = saved.Running
		m.lastImage = saved.LastImage
		if saved.Status != "" {
			m.status = saved.Status
		}
	}
	return m
}

// Run resumes a previously running slideshow, then drains worker events until
// ctx is cancelled or Quit is called. The worker is stopped on the way out
// without clearing the persisted running flag.
func (m *Manager) Run(ctx context.Context) {
	m.Lock()
	if m.resume {
		log.Info("Resuming slideshow")
		if err := m.startSlideshow(); err != nil {
			log.Errorf("Failed to resume slideshow: %v", err)
		}
	}
	m.Unlock()

	ticker := time.NewTicker(m.settings.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.shutdown()
			return
		case <-m.quit:
			m.shutdown()
			return
		case <-ticker.C:
			m.Poll()
		}
	}
}

func (m *Manager) shutdown() {
	m.Lock()
	defer m.Unlock()
	m.stopWorker()
	m.awaitReleased()
	log.Info("Wallpaper Manager stopped.")
}

// Quit makes Run return.
func (m *Manager) Quit() {
	m.quitOnce.Do(func() { close(m.quit) })
}

// StartSlideshow stops any current worker, rebuilds the catalog and starts a
// new worker.
func (m *Manager) StartSlideshow() error {
	m.Lock()
	defer m.Unlock()
	return m.startSlideshow()
}

func (m *Manager) startSlideshow() error {
	m.stopWorker()

	if err := m.tryStart(); err != nil {
		m.running = false
		m.status = err.Error()
		m.persist()
		return err
	}

	m.running = true
	m.status = statusRunning
	m.persist()
	return nil
}

func (m *Manager) tryStart() error {
	images, err := m.buildCatalog()
	if err != nil {
		return err
	}

	m.awaitReleased()
	h, err := slideshow.Start(images, m.deps.Materializer, m.deps.Setter, slideshow.Options{
		AutoRotate: m.settings.AutoRotate,
		Style:      m.settings.Style,
		Interval:   m.settings.Interval,
		Mode:       types.SelectionFromRandom(m.settings.RandomOrder),
		Slice:      m.deps.Slice,
	})
	if err != nil {
		return err
	}

	log.Infof("Slideshow started with %d images every %v", len(images), m.settings.Interval)
	m.worker = h
	return nil
}

// StopSlideshow stops the worker, if any, and records that the slideshow is off.
func (m *Manager) StopSlideshow() {
	m.Lock()
	defer m.Unlock()
	m.stopWorker()
	m.running = false
	m.status = statusIdle
	m.persist()
}

func (m *Manager) stopWorker() {
	// drain releases the handle itself when the worker already faulted.
	m.drain()
	if m.worker == nil {
		return
	}
	m.release()
	log.Info("Slideshow stopped")
}

// release stops the current worker and remembers it until it has exited.
func (m *Manager) release() {
	m.worker.Stop()
	m.released = m.worker.Done()
	m.worker = nil
}

// awaitReleased blocks until the last stopped worker has returned, so it can
// no longer touch the wallpaper.
func (m *Manager) awaitReleased() {
	if m.released == nil {
		return
	}
	select {
	case <-m.released:
	default:
		log.Debug("waiting for the previous slideshow worker to exit")
		<-m.released
	}
	m.released = nil
}

// Next advances a running slideshow, or applies one random image when idle.
func (m *Manager) Next() error {
	m.Lock()
	defer m.Unlock()

	if m.worker != nil {
		m.worker.RequestNext()
		return nil
	}

	if err := m.applyOnce(); err != nil {
		m.status = err.Error()
		return err
	}
	return nil
}

// applyOnce sets a single wallpaper on the caller's goroutine. It only runs
// while no worker exists and after the last one has exited.
func (m *Manager) applyOnce() error {
	images, err := m.buildCatalog()
	if err != nil {
		return err
	}

	m.awaitReleased()

	if err := m.deps.Setter.SetStyle(m.settings.Style); err != nil {
		return err
	}

	choice := slideshow.Random(images, m.lastImage, m.rng)
	cached, err := m.deps.Materializer.Materialize(choice, m.settings.AutoRotate)
	if err != nil {
		return err
	}
	if err := m.deps.Setter.SetWallpaper(cached); err != nil {
		return err
	}

	log.Infof("wallpaper set to %s", choice)
	m.lastImage = choice
	m.status = "Set: " + choice + " (idle)"
	m.persist()
	return nil
}

// Load replaces the image sources. Directories are scanned recursively; at
// most one plain file may be given. A running slideshow is restarted.
func (m *Manager) Load(paths []string) error {
	if len(paths) == 0 {
		return errors.New("no paths given")
	}

	var folders []catalog.Folder
	var single string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return err
		}
		if info.IsDir() {
			folders = append(folders, catalog.Folder{Path: p, IncludeSubfolders: true})
			continue
		}
		if single != "" {
			return fmt.Errorf("at most one image file can be loaded, got %s and %s", single, p)
		}
		if !catalog.IsSupported(p) {
			return fmt.Errorf("%s: %w", p, catalog.ErrUnsupportedImage)
		}
		single = p
	}

	m.Lock()
	defer m.Unlock()

	m.settings.Folders = folders
	m.settings.SingleImage = single
	log.Infof("Loaded %d folders, single image %q", len(folders), single)

	if m.running {
		return m.startSlideshow()
	}
	return nil
}

// Poll drains worker events into the manager's status. It is called on a
// timer by Run.
func (m *Manager) Poll() {
	m.Lock()
	defer m.Unlock()
	m.drain()
}

func (m *Manager) drain() {
	if m.worker == nil {
		return
	}

	m.events = m.worker.DrainEvents(m.events[:0])
	for _, evt := range m.events {
		switch evt.Kind {
		case slideshow.EventInfo:
			m.status = evt.Text
			m.lastImage = evt.Image
		case slideshow.EventError:
			log.Errorf("Slideshow stopped: %s", evt.Text)
			m.status = evt.Text
			m.running = false
			m.release()
			m.persist()
			return
		}
	}
}

// Status returns a snapshot after draining pending events.
func (m *Manager) Status() Status {
	m.Lock()
	defer m.Unlock()
	m.drain()

	order := types.SelectionFromRandom(m.settings.RandomOrder)
	return Status{
		Running:    m.running,
		Status:     m.status,
		LastImage:  m.lastImage,
		ImageCount: m.imageCount,
		Interval:   m.settings.Interval.String(),
		Style:      string(m.settings.Style),
		Order:      string(order),
		Folders:    len(m.settings.Folders),
	}
}

// CurrentWallpaper returns the last applied source image.
func (m *Manager) CurrentWallpaper() string {
	m.Lock()
	defer m.Unlock()
	m.drain()
	return m.lastImage
}

func (m *Manager) buildCatalog() ([]string, error) {
	images, err := m.deps.BuildCatalog(context.Background(), catalog.Options{
		Folders:     m.settings.Folders,
		SingleImage: m.settings.SingleImage,
		Exclude:     m.settings.Exclude,
	})
	if err != nil {
		return nil, err
	}
	m.imageCount = len(images)
	if len(images) == 0 {
		return nil, ErrNoImages
	}
	return images, nil
}

func (m *Manager) persist() {
	if m.settings.StatePath == "" {
		return
	}
	err := state.Save(m.settings.StatePath, state.State{
		Running:   m.running,
		Status:    m.status,
		LastImage: m.lastImage,
	})
	if err != nil {
		log.Errorf("Failed to save state: %v", err)
		m.status = err.Error()
	}
}
