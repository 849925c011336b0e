package engine

import (
	"github.com/Carmen-Shannon/oxy-map/engine/profiler"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithProfiler replaces the default profiler.
func WithProfiler(p *profiler.Profiler) EngineBuilderOption {
	return func(e *engine) {
		e.profiler = p
	}
}

// WithHost sets the host loop the engine runs inside, typically a window.Window.
//
// Parameters:
//   - h: the host
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithHost(h Host) EngineBuilderOption {
	return func(e *engine) {
		e.host = h
	}
}

// WithSizer sets where the frame size comes from. Defaults to the host.
//
// Parameters:
//   - s: the Sizer, e.g. an ebitentouch.Viewport when the engine has no host
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSizer(s Sizer) EngineBuilderOption {
	return func(e *engine) {
		e.size = s
	}
}

// WithUpdater registers an updater at the given key during engine construction.
//
// Parameters:
//   - key: ordering key (lower runs first)
//   - u: the Updater to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithUpdater(key int, u Updater) EngineBuilderOption {
	return func(e *engine) {
		e.AddUpdater(key, u)
	}
}

// WithFrameLimit sets an optional frame rate cap in frames per second.
// Pass 0 to uncap the loop (default).
//
// Parameters:
//   - fps: maximum frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.frameLimit = frameDuration(fps)
	}
}
