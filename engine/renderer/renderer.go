package renderer

import (
	"errors"
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-map/common"
	"github.com/Carmen-Shannon/oxy-map/engine/marker"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how frames are delivered to the display.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents immediately. Pacing is left to the engine frame limit.
	PresentModeUncapped
)

// ViewProjector supplies the matrix world geometry is drawn with, normally a camera.Camera.
type ViewProjector interface {
	ViewProjectionMatrix() [16]float32
}

// Renderer draws the map view into a WebGPU surface once per frame.
// All methods must be called from the thread that created the Renderer.
type Renderer interface {
	// Resize records a new surface size. The surface is reconfigured before the next frame.
	//
	// Parameters:
	//   - width: the new width in pixels
	//   - height: the new height in pixels
	Resize(width, height int)

	// Update clears the surface, draws the chunk outline when a marker is positioned, and presents.
	// Frames with an empty surface are skipped.
	//
	// Parameters:
	//   - deltaTimeMs: milliseconds since the previous frame
	//   - frame: the current frame context
	Update(deltaTimeMs float64, frame common.FrameContext)

	// Release frees every GPU resource held by the renderer. Safe to call multiple times.
	Release()
}

type rendererImpl struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface
	device   *wgpu.Device
	queue    *wgpu.Queue

	surfaceFormat wgpu.TextureFormat
	presentMode   PresentMode
	clearColor    wgpu.Color
	size          surfaceSize

	pipeline      *wgpu.RenderPipeline
	bindGroup     *wgpu.BindGroup
	uniformBuffer *wgpu.Buffer
	vertexBuffer  *wgpu.Buffer
	scratch       []byte

	camera ViewProjector
	marker marker.ChunkMarker

	released bool
}

var _ Renderer = &rendererImpl{}

// NewRenderer creates a Renderer drawing into the surface described by desc.
// The calling goroutine is locked to its OS thread, as the surface requires.
//
// Parameters:
//   - desc: the platform surface descriptor, usually from window.Window.SurfaceDescriptor
//   - width: initial surface width in pixels
//   - height: initial surface height in pixels
//   - options: functional options to configure the renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if no adapter, device or pipeline could be created
func NewRenderer(desc *wgpu.SurfaceDescriptor, width, height int, options ...RendererBuilderOption) (Renderer, error) {
	if desc == nil {
		return nil, errors.New("renderer: nil surface descriptor")
	}
	runtime.LockOSThread()

	r := &rendererImpl{
		mu:          &sync.Mutex{},
		presentMode: PresentModeVSync,
		clearColor:  wgpu.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
	}
	for _, option := range options {
		option(r)
	}

	r.instance = wgpu.CreateInstance(nil)
	r.surface = r.instance.CreateSurface(desc)

	a, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: r.surface,
	})
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("renderer: request adapter: %w", err)
	}
	r.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Map Device",
	})
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("renderer: request device: %w", err)
	}
	r.device = d
	r.queue = d.GetQueue()

	capabilities := r.surface.GetCapabilities(r.adapter)
	if len(capabilities.Formats) == 0 {
		r.Release()
		return nil, errors.New("renderer: surface reports no formats")
	}
	r.surfaceFormat = capabilities.Formats[0]

	if err := r.createOutlinePipeline(); err != nil {
		r.Release()
		return nil, fmt.Errorf("renderer: outline pipeline: %w", err)
	}

	r.size.resize(width, height)
	return r, nil
}

func (r *rendererImpl) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.size.resize(width, height)
}

func (r *rendererImpl) Update(_ float64, frame common.FrameContext) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	if frame.Width > 0 && frame.Height > 0 {
		r.size.resize(frame.Width, frame.Height)
	}
	if w, h, ok := r.size.takeDirty(); ok {
		r.configureSurface(w, h)
	}
	if !r.size.drawable() {
		return
	}

	if err := r.drawFrame(); err != nil {
		log.Printf("[Renderer] frame %d skipped: %v", frame.Number, err)
	}
}

func (r *rendererImpl) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.released {
		return
	}
	r.released = true

	if r.bindGroup != nil {
		r.bindGroup.Release()
	}
	if r.pipeline != nil {
		r.pipeline.Release()
	}
	if r.uniformBuffer != nil {
		r.uniformBuffer.Release()
	}
	if r.vertexBuffer != nil {
		r.vertexBuffer.Release()
	}
	if r.queue != nil {
		r.queue.Release()
	}
	if r.device != nil {
		r.device.Release()
	}
	if r.adapter != nil {
		r.adapter.Release()
	}
	if r.surface != nil {
		r.surface.Release()
	}
	if r.instance != nil {
		r.instance.Release()
	}
}

// configureSurface applies the surface size. Caller must hold the mutex.
func (r *rendererImpl) configureSurface(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	capabilities := r.surface.GetCapabilities(r.adapter)
	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpuPresentMode(r.presentMode),
		AlphaMode:   capabilities.AlphaModes[0],
	})
}

// drawFrame clears the surface, draws the outline and presents. Caller must hold the mutex.
func (r *rendererImpl) drawFrame() error {
	surfaceTexture, err := r.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()

	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     wgpu.LoadOpClear,
				StoreOp:    wgpu.StoreOpStore,
				ClearValue: r.clearColor,
			},
		},
	})
	if r.writeOutline() {
		pass.SetPipeline(r.pipeline)
		pass.SetBindGroup(0, r.bindGroup, nil)
		pass.SetVertexBuffer(0, r.vertexBuffer, 0, wgpu.WholeSize)
		pass.Draw(outlineVertexCount, 1, 0, 0)
	}
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer commandBuffer.Release()

	r.queue.Submit(commandBuffer)
	r.surface.Present()
	return nil
}

// writeOutline uploads the marker outline and its uniforms.
// It reports false when there is nothing to draw. Caller must hold the mutex.
func (r *rendererImpl) writeOutline() bool {
	if r.camera == nil || r.marker == nil {
		return false
	}
	var ok bool
	r.scratch, ok = outlineVertices(r.scratch[:0], r.marker)
	if !ok {
		return false
	}
	r.queue.WriteBuffer(r.vertexBuffer, 0, r.scratch)

	color := marker.ColorRGBA(r.marker.Color(), r.marker.Opacity())
	r.scratch = outlineUniforms(r.scratch[:0], r.camera.ViewProjectionMatrix(), color)
	r.queue.WriteBuffer(r.uniformBuffer, 0, r.scratch)
	return true
}

// wgpuPresentMode maps a PresentMode to the surface present mode.
func wgpuPresentMode(mode PresentMode) wgpu.PresentMode {
	switch mode {
	case PresentModeUncapped:
		return wgpu.PresentModeImmediate
	case PresentModeVSync:
		fallthrough
	default:
		return wgpu.PresentModeFifo
	}
}

// surfaceSize tracks the requested surface size and whether the surface must be
// reconfigured before the next frame.
type surfaceSize struct {
	width, height int
	dirty         bool
}

func (s *surfaceSize) resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	s.width, s.height = width, height
	s.dirty = true
}

// takeDirty returns the pending size and clears the flag. ok is false when nothing changed.
func (s *surfaceSize) takeDirty() (width, height int, ok bool) {
	if !s.dirty {
		return 0, 0, false
	}
	s.dirty = false
	return s.width, s.height, true
}

// drawable reports whether the surface has an area. A minimized window has none.
func (s *surfaceSize) drawable() bool {
	return s.width > 0 && s.height > 0
}
