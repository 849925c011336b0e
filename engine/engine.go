package engine

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-map/common"
	"github.com/Carmen-Shannon/oxy-map/engine/profiler"
)

// Updater is anything advanced once per frame by the engine.
type Updater interface {
	// Update advances the updater by one frame.
	//
	// Parameters:
	//   - deltaTimeMs: milliseconds since the previous frame
	//   - frame: per-frame context (frame number, elapsed time, viewport size)
	Update(deltaTimeMs float64, frame common.FrameContext)
}

// UpdaterFunc adapts a plain function to the Updater interface.
type UpdaterFunc func(deltaTimeMs float64, frame common.FrameContext)

// Update calls f.
func (f UpdaterFunc) Update(deltaTimeMs float64, frame common.FrameContext) {
	f(deltaTimeMs, frame)
}

// Host is the platform loop the engine runs inside, normally a window.
// The host delivers its input callbacks before invoking the update callback, so every
// input event of an iteration is visible to the updaters of that same iteration.
type Host interface {
	SetUpdateCallback(callback func())
	ProcessMessages()
	IsRunning() bool
	Close() error
	Width() int
	Height() int
}

// Sizer reports the viewport size stamped into each frame's context.
type Sizer interface {
	Width() int
	Height() int
}

// Engine drives registered updaters from a host loop.
type Engine interface {
	// Host returns the host the engine runs inside, or nil.
	//
	// Returns:
	//   - Host: the host instance
	Host() Host

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetFrameLimit sets an optional frame rate cap in frames per second.
	// Pass 0 to uncap the loop (default).
	//
	// Parameters:
	//   - fps: maximum frames per second (0 = uncapped)
	SetFrameLimit(fps float64)

	// AddUpdater registers an updater at the given key, replacing any updater already there.
	// Updaters run in ascending key order each frame.
	//
	// Parameters:
	//   - key: ordering key (lower runs first)
	//   - u: the Updater to register
	AddUpdater(key int, u Updater)

	// RemoveUpdater removes the updater at the given key.
	//
	// Parameters:
	//   - key: the key of the updater to remove
	RemoveUpdater(key int)

	// Updater retrieves the updater registered at the given key, or nil.
	//
	// Parameters:
	//   - key: the key of the updater to retrieve
	//
	// Returns:
	//   - Updater: the updater at the key, or nil if not found
	Updater(key int) Updater

	// Frame returns the context of the most recent frame.
	//
	// Returns:
	//   - common.FrameContext: the last frame's context
	Frame() common.FrameContext

	// Step runs a single frame synchronously. Hosts that own their loop (ebiten) call it
	// from their own update hook.
	Step()

	// Run hands control to the host loop and blocks until it exits or Quit is called.
	Run()

	// Quit stops the loop. Safe to call multiple times; subsequent calls are no-ops.
	Quit()
}

// engine implements the Engine interface.
type engine struct {
	host Host
	size Sizer

	quitChannel chan struct{}
	quitOnce    sync.Once
	hostClosed  bool

	profiler         *profiler.Profiler
	profilingEnabled bool

	updaters map[int]Updater
	order    []int

	frame     common.FrameContext
	lastFrame time.Time

	frameLimit time.Duration // minimum frame duration; 0 = uncapped

	now   func() time.Time
	sleep func(time.Duration)
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
//
// Parameters:
//   - options: functional options for engine configuration (host, profiling, frame limit, updaters)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		quitChannel: make(chan struct{}),
		updaters:    make(map[int]Updater),
		now:         time.Now,
		sleep:       time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}
	if e.profiler == nil {
		e.profiler = profiler.NewProfiler()
	}
	if e.size == nil && e.host != nil {
		e.size = e.host
	}

	return e
}

func (e *engine) Host() Host {
	return e.host
}

func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetFrameLimit(fps float64) {
	e.frameLimit = frameDuration(fps)
}

func (e *engine) AddUpdater(key int, u Updater) {
	if u == nil {
		return
	}
	e.updaters[key] = u
	e.sortKeys()
}

func (e *engine) RemoveUpdater(key int) {
	if _, ok := e.updaters[key]; !ok {
		return
	}
	delete(e.updaters, key)
	e.sortKeys()
}

func (e *engine) Updater(key int) Updater {
	return e.updaters[key]
}

func (e *engine) Frame() common.FrameContext {
	return e.frame
}

func (e *engine) Step() {
	start := e.now()

	var dt time.Duration
	if !e.lastFrame.IsZero() {
		dt = start.Sub(e.lastFrame)
	}
	e.lastFrame = start

	e.frame.Number++
	e.frame.Elapsed += dt
	if e.size != nil {
		e.frame.Width = e.size.Width()
		e.frame.Height = e.size.Height()
	}

	deltaMs := float64(dt.Microseconds()) / 1000
	// Copy the key order so an updater may add or remove updaters mid-frame.
	keys := append([]int(nil), e.order...)
	for _, k := range keys {
		u, ok := e.updaters[k]
		if !ok {
			continue
		}
		e.runUpdater(k, u, deltaMs)
	}

	spent := e.now().Sub(start)
	if e.profilingEnabled && e.profiler != nil {
		e.profiler.Tick(spent)
	}

	if e.frameLimit > 0 {
		if remaining := e.frameLimit - spent; remaining > 0 {
			e.sleep(remaining)
		}
	}
}

func (e *engine) Run() {
	if e.host == nil {
		panic("engine: Run requires a host")
	}

	e.host.SetUpdateCallback(func() {
		select {
		case <-e.quitChannel:
			e.closeHost()
		default:
			e.Step()
		}
	})
	e.host.ProcessMessages()

	e.signalQuit()
	e.closeHost()
}

// Quit signals the loop to stop. Safe to call multiple times; subsequent calls are
// no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

// signalQuit closes the quit channel exactly once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		close(e.quitChannel)
	})
}

// closeHost closes the host at most once.
func (e *engine) closeHost() {
	if e.hostClosed || e.host == nil {
		return
	}
	e.hostClosed = true
	if err := e.host.Close(); err != nil {
		log.Printf("[Engine] failed to close host: %v", err)
	}
}

// runUpdater isolates a panicking updater so the remaining updaters and later frames still run.
func (e *engine) runUpdater(key int, u Updater, deltaMs float64) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[Engine] updater %d recovered from panic: %v", key, r)
		}
	}()
	u.Update(deltaMs, e.frame)
}

func (e *engine) sortKeys() {
	e.order = e.order[:0]
	for k := range e.updaters {
		e.order = append(e.order, k)
	}
	sort.Ints(e.order)
}

// frameDuration converts a frame rate to a minimum frame duration; fps <= 0 means uncapped.
func frameDuration(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
