// Command oxymap opens a desktop map viewer: drag to rotate and tilt with inertia,
// WASD to pan, scroll to zoom. The chunk under the view target is outlined through
// WebGPU and reported to the chunk store as the camera moves.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-map/common"
	"github.com/Carmen-Shannon/oxy-map/config"
	"github.com/Carmen-Shannon/oxy-map/engine"
	"github.com/Carmen-Shannon/oxy-map/engine/camera"
	"github.com/Carmen-Shannon/oxy-map/engine/controls"
	"github.com/Carmen-Shannon/oxy-map/engine/gesture"
	"github.com/Carmen-Shannon/oxy-map/engine/marker"
	"github.com/Carmen-Shannon/oxy-map/engine/renderer"
	"github.com/Carmen-Shannon/oxy-map/engine/window"
)

// Updater keys; lower runs first each frame.
const (
	keyPan = iota * 10
	keyControls
	keyCamera
	keyMarker
	keyRender
	keyTitle
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[oxymap] %v", err)
	}

	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
	)

	eng := engine.NewEngine(
		engine.WithHost(win),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithFrameLimit(cfg.Engine.FrameLimit),
	)

	view := newMapController(cfg)
	cam := camera.NewCamera(
		camera.WithFov(float32(cfg.Camera.Fov)),
		camera.WithNear(0.1),
		camera.WithFar(100000),
		camera.WithController(view),
	)

	rec := gesture.NewRecognizer(gesture.WithThreshold(cfg.Controls.Threshold))
	gesture.BindMouse(win, rec, common.MouseButtonLeft)

	drag := controls.NewTouchPanControls(win, rec, controlsOptions(cfg)...)
	drag.Start(view)

	eng.AddUpdater(keyPan, setupKeyboard(win, view, drag))
	eng.AddUpdater(keyControls, drag)
	eng.AddUpdater(keyCamera, cam)

	var chunks marker.ChunkMarker
	if cfg.Marker.Enabled {
		chunks = newChunkMarker(cfg, view)
		eng.AddUpdater(keyMarker, chunks)
	}

	gpu, err := newRenderer(cfg, win, cam, chunks)
	if err != nil {
		log.Fatalf("[oxymap] %v", err)
	}
	win.AddResizeListener(gpu.Resize)
	eng.AddUpdater(keyRender, gpu)

	eng.AddUpdater(keyTitle, engine.UpdaterFunc(func(_ float64, frame common.FrameContext) {
		if frame.Number%15 != 0 {
			return
		}
		win.SetTitle(title(cfg.Window.Title, view, chunks))
	}))

	log.Printf("[oxymap] drag=rotate/tilt  WASD=pan  scroll=zoom  space=stop  R=reset  (marker store: %v)", cfg.Marker.Enabled)
	eng.Run()

	drag.Stop()
	gpu.Release()
	if chunks != nil {
		chunks.Close()
	}
}

func newRenderer(cfg *config.Config, win window.Window, cam camera.Camera, chunks marker.ChunkMarker) (renderer.Renderer, error) {
	opts := []renderer.RendererBuilderOption{renderer.WithCamera(cam)}
	if chunks != nil {
		opts = append(opts, renderer.WithChunkMarker(chunks))
	}
	if cfg.Engine.FrameLimit > 0 {
		// Pacing comes from the engine frame limit.
		opts = append(opts, renderer.WithPresentMode(renderer.PresentModeUncapped))
	}
	return renderer.NewRenderer(win.SurfaceDescriptor(), win.Width(), win.Height(), opts...)
}

func newMapController(cfg *config.Config) camera.MapController {
	return camera.NewMapController(
		camera.WithDistance(cfg.Camera.Distance),
		camera.WithRotation(cfg.Camera.Rotation),
		camera.WithAngle(cfg.Camera.Angle),
		camera.WithTarget(cfg.Camera.Target.X, cfg.Camera.Target.Y, cfg.Camera.Target.Z),
		camera.WithPanSpeed(cfg.Camera.PanSpeed),
		camera.WithZoomSpeed(cfg.Camera.ZoomSpeed),
	)
}

func controlsOptions(cfg *config.Config) []controls.TouchPanControlsOption {
	opts := []controls.TouchPanControlsOption{
		controls.WithSpeed(cfg.Controls.Speed),
		controls.WithStiffness(cfg.Controls.Stiffness),
	}
	if cfg.Controls.MouseDrag {
		// Nothing excluded, so mouse drags rotate too.
		opts = append(opts, controls.WithExcludedPointers())
	}
	return opts
}

func newChunkMarker(cfg *config.Config, view camera.MapController) marker.ChunkMarker {
	return marker.NewChunkMarker(
		marker.WithPositionSource(view),
		marker.WithLabel(cfg.Marker.Label),
		marker.WithWorkers(cfg.Marker.Workers),
		marker.WithStore(marker.NewHTTPStore(marker.WithEndpoint(cfg.Marker.Endpoint))),
	)
}

// setupKeyboard wires WASD panning, space to stop inertia, R to reset the view, and
// scroll zoom. The returned updater applies held keys once per frame, scaled to a
// 60 Hz frame so panning speed does not depend on frame rate.
func setupKeyboard(win window.Window, view camera.MapController, drag controls.TouchPanControls) engine.Updater {
	keyState := make(map[uint32]bool)
	rotation, angle := view.Rotation(), view.Angle()

	win.SetKeyDownCallback(func(keyCode uint32) {
		keyState[keyCode] = true
		switch keyCode {
		case common.KeySpace:
			drag.Reset()
		case common.KeyR:
			drag.Reset()
			view.SetRotation(rotation)
			view.SetAngle(angle)
		}
	})

	win.SetKeyUpCallback(func(keyCode uint32) {
		keyState[keyCode] = false
	})

	win.SetScrollCallback(func(delta float32) {
		view.Zoom(float64(delta))
	})

	return engine.UpdaterFunc(func(deltaTimeMs float64, _ common.FrameContext) {
		step := deltaTimeMs / 16.666
		if keyState[common.KeyW] {
			view.PanForward(step)
		}
		if keyState[common.KeyS] {
			view.PanForward(-step)
		}
		if keyState[common.KeyA] {
			view.PanRight(-step)
		}
		if keyState[common.KeyD] {
			view.PanRight(step)
		}
	})
}

func title(base string, view camera.MapController, chunks marker.ChunkMarker) string {
	s := fmt.Sprintf("%s | rot %.2f  tilt %.2f  dist %.0f", base, view.Rotation(), view.Angle(), view.Distance())
	if chunks == nil {
		return s
	}
	if c, ok := chunks.Chunk(); ok {
		s += " | " + c.Name()
	}
	return s
}
