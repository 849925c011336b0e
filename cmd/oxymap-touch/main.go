// Command oxymap-touch runs the map viewer on ebiten for touch screens. One-finger drags
// rotate and tilt the view with inertia. The chunk under the view target is outlined.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Carmen-Shannon/oxy-map/common"
	"github.com/Carmen-Shannon/oxy-map/config"
	"github.com/Carmen-Shannon/oxy-map/engine"
	"github.com/Carmen-Shannon/oxy-map/engine/camera"
	"github.com/Carmen-Shannon/oxy-map/engine/controls"
	"github.com/Carmen-Shannon/oxy-map/engine/gesture"
	"github.com/Carmen-Shannon/oxy-map/engine/gesture/ebitentouch"
	"github.com/Carmen-Shannon/oxy-map/engine/marker"
)

const (
	keyPan = iota * 10
	keyControls
	keyCamera
	keyMarker
)

type game struct {
	eng      engine.Engine
	poller   *ebitentouch.Poller
	viewport *ebitentouch.Viewport
	view     camera.MapController
	cam      camera.Camera
	drag     controls.TouchPanControls
	chunks   marker.ChunkMarker
	home     [2]float64
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.drag.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.drag.Reset()
		g.view.SetRotation(g.home[0])
		g.view.SetAngle(g.home[1])
	}
	if _, dy := ebiten.Wheel(); dy != 0 {
		g.view.Zoom(dy)
	}

	// Input for this tick is delivered before any updater runs.
	g.poller.Poll()
	g.eng.Step()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.drawOutline(screen)

	msg := fmt.Sprintf("TPS %.0f\nrotation %.3f\ntilt %.3f\ndistance %.0f\nmoving %v",
		ebiten.ActualTPS(), g.view.Rotation(), g.view.Angle(), g.view.Distance(), g.drag.Moving())
	if g.chunks != nil {
		if c, ok := g.chunks.Chunk(); ok {
			msg += "\n" + c.Name()
		}
	}
	ebitenutil.DebugPrint(screen, msg)
}

// drawOutline strokes the marker's chunk outline as seen through the camera.
// Edges with an endpoint behind the camera are skipped.
func (g *game) drawOutline(screen *ebiten.Image) {
	if g.chunks == nil {
		return
	}
	if _, ok := g.chunks.Chunk(); !ok {
		return
	}
	rgba := marker.ColorRGBA(g.chunks.Color(), g.chunks.Opacity())
	clr := color.NRGBA{
		R: uint8(rgba[0] * 255),
		G: uint8(rgba[1] * 255),
		B: uint8(rgba[2] * 255),
		A: uint8(rgba[3] * 255),
	}

	vp := g.cam.ViewProjectionMatrix()
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	outline := marker.WorldOutline(g.chunks.Coordinates(), g.chunks.ShapeY())
	for i := 0; i+1 < len(outline); i++ {
		a, b := outline[i], outline[i+1]
		x0, y0, ok0 := common.Project(vp, float32(a.X), float32(a.Y), float32(a.Z), w, h)
		x1, y1, ok1 := common.Project(vp, float32(b.X), float32(b.Y), float32(b.Z), w, h)
		if !ok0 || !ok1 {
			continue
		}
		vector.StrokeLine(screen, x0, y0, x1, y1, 2, clr, true)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.viewport.Layout(outsideWidth, outsideHeight)
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[oxymap-touch] %v", err)
	}

	viewport := ebitentouch.NewViewport(cfg.Window.Width, cfg.Window.Height)
	eng := engine.NewEngine(
		engine.WithSizer(viewport),
		engine.WithProfiling(cfg.Engine.Profiling),
	)

	view := camera.NewMapController(
		camera.WithDistance(cfg.Camera.Distance),
		camera.WithRotation(cfg.Camera.Rotation),
		camera.WithAngle(cfg.Camera.Angle),
		camera.WithTarget(cfg.Camera.Target.X, cfg.Camera.Target.Y, cfg.Camera.Target.Z),
		camera.WithPanSpeed(cfg.Camera.PanSpeed),
		camera.WithZoomSpeed(cfg.Camera.ZoomSpeed),
	)
	cam := camera.NewCamera(camera.WithFov(float32(cfg.Camera.Fov)), camera.WithController(view))

	rec := gesture.NewRecognizer(gesture.WithThreshold(cfg.Controls.Threshold))
	poller := ebitentouch.NewPoller(rec, ebitentouch.WithMouse(cfg.Controls.MouseDrag))

	opts := []controls.TouchPanControlsOption{
		controls.WithSpeed(cfg.Controls.Speed),
		controls.WithStiffness(cfg.Controls.Stiffness),
	}
	if cfg.Controls.MouseDrag {
		opts = append(opts, controls.WithExcludedPointers())
	}
	drag := controls.NewTouchPanControls(viewport, rec, opts...)
	drag.Start(view)

	eng.AddUpdater(keyPan, engine.UpdaterFunc(func(deltaTimeMs float64, _ common.FrameContext) {
		step := deltaTimeMs / 16.666
		if ebiten.IsKeyPressed(ebiten.KeyW) {
			view.PanForward(step)
		}
		if ebiten.IsKeyPressed(ebiten.KeyS) {
			view.PanForward(-step)
		}
		if ebiten.IsKeyPressed(ebiten.KeyA) {
			view.PanRight(-step)
		}
		if ebiten.IsKeyPressed(ebiten.KeyD) {
			view.PanRight(step)
		}
	}))
	eng.AddUpdater(keyControls, drag)
	eng.AddUpdater(keyCamera, cam)

	g := &game{
		eng:      eng,
		poller:   poller,
		viewport: viewport,
		view:     view,
		cam:      cam,
		drag:     drag,
		home:     [2]float64{view.Rotation(), view.Angle()},
	}
	if cfg.Marker.Enabled {
		g.chunks = marker.NewChunkMarker(
			marker.WithPositionSource(view),
			marker.WithLabel(cfg.Marker.Label),
			marker.WithWorkers(cfg.Marker.Workers),
			marker.WithStore(marker.NewHTTPStore(marker.WithEndpoint(cfg.Marker.Endpoint))),
		)
		eng.AddUpdater(keyMarker, g.chunks)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.Engine.FrameLimit > 0 {
		ebiten.SetTPS(int(cfg.Engine.FrameLimit))
	}

	err = ebiten.RunGame(g)
	drag.Stop()
	if g.chunks != nil {
		g.chunks.Close()
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("[oxymap-touch] %v", err)
	}
}
