package marker

import (
	"time"

	"github.com/Carmen-Shannon/oxy-map/common"
)

// ChunkMarkerOption is a functional option for configuring a ChunkMarker.
type ChunkMarkerOption func(*chunkMarkerImpl)

// WithStore sets where entered chunks are saved.
//
// Parameters:
//   - s: the Store to save to
//
// Returns:
//   - ChunkMarkerOption: option function to apply
func WithStore(s Store) ChunkMarkerOption {
	return func(m *chunkMarkerImpl) {
		m.store = s
	}
}

// WithPositionSource makes Update follow src.
//
// Parameters:
//   - src: the PositionSource to follow, typically a camera.MapController
//
// Returns:
//   - ChunkMarkerOption: option function to apply
func WithPositionSource(src PositionSource) ChunkMarkerOption {
	return func(m *chunkMarkerImpl) {
		m.source = src
	}
}

// WithColor sets the fill color as 0xRRGGBB.
func WithColor(rgb uint32) ChunkMarkerOption {
	return func(m *chunkMarkerImpl) {
		m.color = rgb & 0xffffff
	}
}

// WithOpacity sets the fill opacity, clamped to [0, 1].
func WithOpacity(opacity float64) ChunkMarkerOption {
	return func(m *chunkMarkerImpl) {
		m.opacity = common.Clamp(opacity, 0, 1)
	}
}

// WithShapeY sets the height the outline is drawn at.
func WithShapeY(y float64) ChunkMarkerOption {
	return func(m *chunkMarkerImpl) {
		m.shapeY = y
	}
}

// WithLabel sets the label stored with each chunk. An empty label keeps DefaultLabel.
func WithLabel(label string) ChunkMarkerOption {
	return func(m *chunkMarkerImpl) {
		m.label = common.Coalesce(label, DefaultLabel)
	}
}

// WithWorkers sets how many workers run saves concurrently. Values < 1 are ignored.
func WithWorkers(n int) ChunkMarkerOption {
	return func(m *chunkMarkerImpl) {
		if n >= 1 {
			m.workers = n
		}
	}
}

// WithSaveTimeout bounds each save. Values <= 0 are ignored.
func WithSaveTimeout(d time.Duration) ChunkMarkerOption {
	return func(m *chunkMarkerImpl) {
		if d > 0 {
			m.saveTimeout = d
		}
	}
}

// WithErrorHandler replaces the default handler, which logs failed saves.
func WithErrorHandler(fn func(info ChunkInfo, err error)) ChunkMarkerOption {
	return func(m *chunkMarkerImpl) {
		if fn != nil {
			m.onError = fn
		}
	}
}
