package renderer

import (
	"github.com/Carmen-Shannon/oxy-map/engine/marker"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBuilderOption is a functional option for configuring a Renderer.
type RendererBuilderOption func(*rendererImpl)

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: functional option to set the present mode
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.presentMode = mode
	}
}

// WithClearColor sets the background color each frame starts from.
//
// Parameters:
//   - red, green, blue, alpha: color components in [0, 1]
//
// Returns:
//   - RendererBuilderOption: functional option to set the clear color
func WithClearColor(red, green, blue, alpha float64) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.clearColor = wgpu.Color{R: red, G: green, B: blue, A: alpha}
	}
}

// WithCamera sets the view-projection source for world geometry.
// Without a camera only the clear color is drawn.
func WithCamera(camera ViewProjector) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.camera = camera
	}
}

// WithChunkMarker draws the outline of the marker's chunk.
func WithChunkMarker(m marker.ChunkMarker) RendererBuilderOption {
	return func(r *rendererImpl) {
		r.marker = m
	}
}
