package controls

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-map/common"
	"github.com/Carmen-Shannon/oxy-map/engine/gesture"
)

const eps = 1e-9

// fakeSource is a gesture.Source that lets tests emit events directly.
type fakeSource struct {
	handlers [4]common.Listeners[gesture.Handler]
}

func (s *fakeSource) On(phase gesture.Phase, h gesture.Handler) common.ListenerID {
	return s.handlers[phase].Add(h)
}

func (s *fakeSource) Off(phase gesture.Phase, id common.ListenerID) {
	s.handlers[phase].Remove(id)
}

func (s *fakeSource) emit(phase gesture.Phase, pt gesture.PointerType, x, y float64) {
	evt := gesture.Event{Phase: phase, PointerType: pt, Center: common.Vec2{X: x, Y: y}}
	for _, h := range s.handlers[phase].Snapshot() {
		h(evt)
	}
}

func (s *fakeSource) count() int {
	n := 0
	for i := range s.handlers {
		n += s.handlers[i].Len()
	}
	return n
}

// fakeViewport is a resizable Viewport.
type fakeViewport struct {
	w, h   int
	resize common.Listeners[func(int, int)]
}

func (v *fakeViewport) Width() int  { return v.w }
func (v *fakeViewport) Height() int { return v.h }
func (v *fakeViewport) AddResizeListener(fn func(int, int)) common.ListenerID {
	return v.resize.Add(fn)
}
func (v *fakeViewport) RemoveResizeListener(id common.ListenerID) { v.resize.Remove(id) }

func (v *fakeViewport) setSize(w, h int) {
	v.w, v.h = w, h
	for _, fn := range v.resize.Snapshot() {
		fn(w, h)
	}
}

// fakeManager records writes to rotation and angle.
type fakeManager struct {
	rotation, angle float64
	writes          int
}

func (m *fakeManager) Rotation() float64 { return m.rotation }
func (m *fakeManager) Angle() float64    { return m.angle }
func (m *fakeManager) SetRotation(r float64) {
	m.rotation = r
	m.writes++
}
func (m *fakeManager) SetAngle(a float64) {
	m.angle = a
	m.writes++
}

func newStarted(t *testing.T, options ...TouchPanControlsOption) (TouchPanControls, *fakeSource, *fakeViewport, *fakeManager) {
	t.Helper()
	src := &fakeSource{}
	vp := &fakeViewport{w: 800, h: 600}
	mgr := &fakeManager{}
	c := NewTouchPanControls(vp, src, options...)
	c.Start(mgr)
	return c, src, vp, mgr
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func TestNewTouchPanControlsDefaults(t *testing.T) {
	c := NewTouchPanControls(&fakeViewport{w: 800, h: 600}, &fakeSource{})
	if c.Speed() != DefaultSpeed || c.Stiffness() != DefaultStiffness {
		t.Errorf("speed/stiffness = %v/%v, want %v/%v", c.Speed(), c.Stiffness(), DefaultSpeed, DefaultStiffness)
	}
	if !c.DeltaPosition().IsZero() {
		t.Errorf("DeltaPosition = %v, want zero after construction", c.DeltaPosition())
	}
	if c.Moving() {
		t.Error("Moving = true after construction")
	}
	x, y := c.PixelToSpeedMultiplier()
	if !near(x, 1.0/600) || !near(y, 1.0/600) {
		t.Errorf("multipliers = (%v, %v), want (1/600, 1/600)", x, y)
	}
}

func TestNewTouchPanControlsPanicsOnNil(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil viewport", func() { NewTouchPanControls(nil, &fakeSource{}) }},
		{"nil source", func() { NewTouchPanControls(&fakeViewport{w: 1, h: 1}, nil) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestDragAccumulatesDisplacement(t *testing.T) {
	c, src, _, _ := newStarted(t)

	src.emit(gesture.PhaseStart, gesture.PointerTouch, 100, 100)
	if !c.Moving() {
		t.Fatal("Moving = false after drag start")
	}
	src.emit(gesture.PhaseMove, gesture.PointerTouch, 80, 130)

	if got := c.DeltaPosition(); !near(got.X, 20) || !near(got.Y, -30) {
		t.Errorf("DeltaPosition = %v, want {20 -30}", got)
	}
	if got := c.LastPosition(); got != (common.Vec2{X: 80, Y: 130}) {
		t.Errorf("LastPosition = %v, want {80 130}", got)
	}

	src.emit(gesture.PhaseMove, gesture.PointerTouch, 70, 140)
	if got := c.DeltaPosition(); !near(got.X, 30) || !near(got.Y, -40) {
		t.Errorf("DeltaPosition after second move = %v, want {30 -40}", got)
	}
}

func TestDragStartClearsResidualInertia(t *testing.T) {
	c, src, _, _ := newStarted(t)

	src.emit(gesture.PhaseStart, gesture.PointerTouch, 0, 0)
	src.emit(gesture.PhaseMove, gesture.PointerTouch, 10, 10)
	src.emit(gesture.PhaseEnd, gesture.PointerTouch, 10, 10)
	if c.DeltaPosition().IsZero() {
		t.Fatal("drag end cleared the displacement; inertia must survive")
	}
	if c.Moving() {
		t.Error("Moving = true after drag end")
	}

	src.emit(gesture.PhaseStart, gesture.PointerTouch, 50, 50)
	if !c.DeltaPosition().IsZero() {
		t.Errorf("DeltaPosition = %v, want zero after new drag start", c.DeltaPosition())
	}
}

func TestMoveWithoutStartOnlyTracksPosition(t *testing.T) {
	c, src, _, _ := newStarted(t)

	src.emit(gesture.PhaseMove, gesture.PointerTouch, 30, 40)
	if !c.DeltaPosition().IsZero() {
		t.Errorf("DeltaPosition = %v, want zero when not moving", c.DeltaPosition())
	}
	if got := c.LastPosition(); got != (common.Vec2{X: 30, Y: 40}) {
		t.Errorf("LastPosition = %v, want {30 40}", got)
	}
}

func TestCancelStopsMovingKeepsInertia(t *testing.T) {
	c, src, _, _ := newStarted(t)

	src.emit(gesture.PhaseStart, gesture.PointerPen, 0, 0)
	src.emit(gesture.PhaseMove, gesture.PointerPen, 5, 0)
	src.emit(gesture.PhaseCancel, gesture.PointerPen, 5, 0)

	if c.Moving() {
		t.Error("Moving = true after cancel")
	}
	if got := c.DeltaPosition(); !near(got.X, -5) || !near(got.Y, 0) {
		t.Errorf("DeltaPosition = %v, want {-5 0}", got)
	}
}

func TestExcludedPointerIsIgnored(t *testing.T) {
	c, src, _, _ := newStarted(t)

	src.emit(gesture.PhaseStart, gesture.PointerMouse, 100, 100)
	src.emit(gesture.PhaseMove, gesture.PointerMouse, 50, 50)
	if c.Moving() || !c.DeltaPosition().IsZero() || !c.LastPosition().IsZero() {
		t.Fatalf("mouse changed state: moving=%v delta=%v last=%v", c.Moving(), c.DeltaPosition(), c.LastPosition())
	}

	// A mouse end must not stop a touch drag.
	src.emit(gesture.PhaseStart, gesture.PointerTouch, 0, 0)
	src.emit(gesture.PhaseEnd, gesture.PointerMouse, 0, 0)
	if !c.Moving() {
		t.Error("mouse end stopped a touch drag")
	}
}

func TestExcludedPointersOption(t *testing.T) {
	c, src, _, _ := newStarted(t, WithExcludedPointers())

	src.emit(gesture.PhaseStart, gesture.PointerMouse, 10, 10)
	src.emit(gesture.PhaseMove, gesture.PointerMouse, 0, 0)
	if got := c.DeltaPosition(); !near(got.X, 10) || !near(got.Y, 10) {
		t.Errorf("DeltaPosition = %v, want {10 10} with no exclusions", got)
	}

	c2, src2, _, _ := newStarted(t, WithExcludedPointers(gesture.PointerTouch))
	src2.emit(gesture.PhaseStart, gesture.PointerTouch, 10, 10)
	if c2.Moving() {
		t.Error("excluded touch started a drag")
	}
}

func TestUpdateScenario(t *testing.T) {
	c, src, _, mgr := newStarted(t, WithSpeed(1), WithStiffness(1))

	src.emit(gesture.PhaseStart, gesture.PointerTouch, 100, 100)
	src.emit(gesture.PhaseMove, gesture.PointerTouch, 80, 130)

	c.Update(16.666, common.FrameContext{Number: 1})

	if !near(mgr.rotation, 20.0/600) {
		t.Errorf("rotation = %v, want %v", mgr.rotation, 20.0/600)
	}
	if !near(mgr.angle, 0.05) {
		t.Errorf("angle = %v, want 0.05", mgr.angle)
	}
	if !c.DeltaPosition().IsZero() {
		t.Errorf("DeltaPosition = %v, want zero after full smoothing", c.DeltaPosition())
	}
}

func TestUpdateAppliesStiffnessToStep(t *testing.T) {
	c, src, _, mgr := newStarted(t, WithSpeed(2), WithStiffness(0.5))

	src.emit(gesture.PhaseStart, gesture.PointerTouch, 60, 0)
	src.emit(gesture.PhaseMove, gesture.PointerTouch, 0, 0)

	c.Update(16.666, common.FrameContext{})

	// 60px * speed 2 * (1/600) * stiffness 0.5
	if !near(mgr.rotation, 0.1) {
		t.Errorf("rotation = %v, want 0.1", mgr.rotation)
	}
	if got := c.DeltaPosition(); !near(got.X, 30) {
		t.Errorf("DeltaPosition.X = %v, want 30 after half decay", got.X)
	}
}

func TestUpdateFrameRateIndependentSmoothing(t *testing.T) {
	tests := []struct {
		name    string
		dt      float64
		wantX   float64
		applied bool
	}{
		{"half reference frame", 8.333, 100 * (1 - 0.25*(8.333/16.666)), true},
		{"double reference frame", 33.332, 100 * (1 - 0.25*2), true},
		{"huge frame clamps to full", 1000, 0, true},
		{"zero frame applies without decay", 0, 100, true},
		{"negative frame applies without decay", -5, 100, true},
		{"nan frame applies without decay", math.NaN(), 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, src, _, mgr := newStarted(t, WithSpeed(1), WithStiffness(0.25))
			src.emit(gesture.PhaseStart, gesture.PointerTouch, 100, 0)
			src.emit(gesture.PhaseMove, gesture.PointerTouch, 0, 0)

			c.Update(tt.dt, common.FrameContext{})

			if got := c.DeltaPosition().X; math.Abs(got-tt.wantX) > 1e-6 {
				t.Errorf("DeltaPosition.X = %v, want %v", got, tt.wantX)
			}
			if want := 100 * (1.0 / 600) * 0.25; !near(mgr.rotation, want) {
				t.Errorf("rotation = %v, want %v", mgr.rotation, want)
			}
			if math.IsNaN(mgr.rotation) || math.IsNaN(mgr.angle) {
				t.Error("non-finite orientation")
			}
		})
	}
}

func TestUpdateWithZeroDeltaDoesNotTouchManager(t *testing.T) {
	c, _, _, mgr := newStarted(t)
	mgr.rotation, mgr.angle = 1.5, 0.7

	for i := 0; i < 10; i++ {
		c.Update(16.666, common.FrameContext{Number: uint64(i)})
	}

	if mgr.writes != 0 {
		t.Errorf("manager writes = %d, want 0", mgr.writes)
	}
	if mgr.rotation != 1.5 || mgr.angle != 0.7 {
		t.Errorf("orientation = (%v, %v), want unchanged", mgr.rotation, mgr.angle)
	}
}

func TestUpdateDecaysToExactZero(t *testing.T) {
	c, src, _, _ := newStarted(t, WithStiffness(0.3))

	src.emit(gesture.PhaseStart, gesture.PointerTouch, 500, 500)
	src.emit(gesture.PhaseMove, gesture.PointerTouch, 100, 200)
	src.emit(gesture.PhaseEnd, gesture.PointerTouch, 100, 200)

	prev := c.DeltaPosition().LengthSq()
	steps := 0
	for !c.DeltaPosition().IsZero() {
		c.Update(16.666, common.FrameContext{})
		cur := c.DeltaPosition().LengthSq()
		if cur >= prev {
			t.Fatalf("step %d: lengthSq %v did not decrease from %v", steps, cur, prev)
		}
		prev = cur
		steps++
		if steps > 200 {
			t.Fatal("displacement did not reach zero within 200 frames")
		}
	}
	if got := c.DeltaPosition(); got.X != 0 || got.Y != 0 {
		t.Errorf("DeltaPosition = %v, want exact zero", got)
	}
}

func TestReset(t *testing.T) {
	c, src, _, mgr := newStarted(t)

	src.emit(gesture.PhaseStart, gesture.PointerTouch, 0, 0)
	src.emit(gesture.PhaseMove, gesture.PointerTouch, 40, 40)
	c.Reset()

	if !c.DeltaPosition().IsZero() {
		t.Errorf("DeltaPosition = %v, want zero after Reset", c.DeltaPosition())
	}
	if !c.Moving() {
		t.Error("Reset must not end the drag")
	}
	c.Update(16.666, common.FrameContext{})
	if mgr.writes != 0 {
		t.Errorf("manager writes = %d after Reset, want 0", mgr.writes)
	}
}

func TestResizeRecomputesMultipliers(t *testing.T) {
	c, _, vp, _ := newStarted(t)

	vp.setSize(1600, 600)
	x, y := c.PixelToSpeedMultiplier()
	if !near(x, 1.0/600) || !near(y, 1.0/600) {
		t.Errorf("after 1600x600: multipliers = (%v, %v), want (1/600, 1/600)", x, y)
	}

	vp.setSize(1000, 250)
	x, y = c.PixelToSpeedMultiplier()
	if !near(x, 1.0/250) || !near(y, 1.0/250) {
		t.Errorf("after 1000x250: multipliers = (%v, %v), want (1/250, 1/250)", x, y)
	}
}

func TestZeroSizeViewportStaysFinite(t *testing.T) {
	c, src, vp, mgr := newStarted(t, WithStiffness(1))

	vp.setSize(0, 0)
	x, y := c.PixelToSpeedMultiplier()
	if x != 1 || y != 1 {
		t.Errorf("multipliers = (%v, %v), want (1, 1) for clamped 1x1", x, y)
	}

	vp.setSize(-10, 0)
	src.emit(gesture.PhaseStart, gesture.PointerTouch, 2, 0)
	src.emit(gesture.PhaseMove, gesture.PointerTouch, 0, 0)
	c.Update(16.666, common.FrameContext{})
	if math.IsInf(mgr.rotation, 0) || math.IsNaN(mgr.rotation) {
		t.Errorf("rotation = %v, want finite", mgr.rotation)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	c, src, vp, _ := newStarted(t)
	c.Start(&fakeManager{})

	if got := src.count(); got != 4 {
		t.Errorf("gesture listeners = %d, want 4", got)
	}
	if got := vp.resize.Len(); got != 1 {
		t.Errorf("resize listeners = %d, want 1", got)
	}

	src.emit(gesture.PhaseStart, gesture.PointerTouch, 10, 0)
	src.emit(gesture.PhaseMove, gesture.PointerTouch, 0, 0)
	if got := c.DeltaPosition(); !near(got.X, 10) {
		t.Errorf("DeltaPosition.X = %v, want 10 (single accumulation)", got.X)
	}
}

func TestStartSwitchesManager(t *testing.T) {
	c, src, _, first := newStarted(t, WithStiffness(1))
	second := &fakeManager{}
	c.Start(second)

	src.emit(gesture.PhaseStart, gesture.PointerTouch, 10, 0)
	src.emit(gesture.PhaseMove, gesture.PointerTouch, 0, 0)
	c.Update(16.666, common.FrameContext{})

	if first.writes != 0 {
		t.Errorf("previous manager writes = %d, want 0", first.writes)
	}
	if second.writes == 0 {
		t.Error("current manager was not updated")
	}
}

func TestStopDetachesAndIgnoresLateEvents(t *testing.T) {
	c, src, vp, _ := newStarted(t)

	c.Stop()
	if got := src.count(); got != 0 {
		t.Errorf("gesture listeners after Stop = %d, want 0", got)
	}
	if got := vp.resize.Len(); got != 0 {
		t.Errorf("resize listeners after Stop = %d, want 0", got)
	}
	c.Stop() // second Stop is a no-op

	vp.setSize(100, 100)
	if x, _ := c.PixelToSpeedMultiplier(); !near(x, 1.0/600) {
		t.Errorf("multiplier changed after Stop: %v", x)
	}
}

func TestStopBeforeStartAndUpdateBeforeStart(t *testing.T) {
	c := NewTouchPanControls(&fakeViewport{w: 800, h: 600}, &fakeSource{})
	c.Stop()
	c.Update(16.666, common.FrameContext{})
	c.Reset()
	if !c.DeltaPosition().IsZero() {
		t.Errorf("DeltaPosition = %v, want zero", c.DeltaPosition())
	}
}

func TestHandlersIgnoreEventsWhenStopped(t *testing.T) {
	src := &fakeSource{}
	c := NewTouchPanControls(&fakeViewport{w: 800, h: 600}, src)
	impl := c.(*touchPanControlsImpl)

	// Simulate an event delivered by a source that had already snapshotted its listeners.
	impl.onDragStart(gesture.Event{Phase: gesture.PhaseStart, PointerType: gesture.PointerTouch, Center: common.Vec2{X: 1, Y: 1}})
	if c.Moving() {
		t.Error("stopped controls reacted to drag start")
	}
}

func TestWithRecognizer(t *testing.T) {
	rec := gesture.NewRecognizer(gesture.WithThreshold(0))
	vp := &fakeViewport{w: 800, h: 600}
	mgr := &fakeManager{}
	c := NewTouchPanControls(vp, rec, WithSpeed(1), WithStiffness(1))
	c.Start(mgr)

	rec.Feed(gesture.Sample{ID: 7, Type: gesture.PointerTouch, Position: common.Vec2{X: 100, Y: 100}, Pressed: true})
	rec.Feed(gesture.Sample{ID: 7, Type: gesture.PointerTouch, Position: common.Vec2{X: 101, Y: 100}, Pressed: true})
	rec.Feed(gesture.Sample{ID: 7, Type: gesture.PointerTouch, Position: common.Vec2{X: 81, Y: 130}, Pressed: true})
	rec.Feed(gesture.Sample{ID: 7, Type: gesture.PointerTouch, Position: common.Vec2{X: 81, Y: 130}, Pressed: false})

	if c.Moving() {
		t.Error("Moving = true after release")
	}
	if got := c.DeltaPosition(); !near(got.X, 20) || !near(got.Y, -30) {
		t.Fatalf("DeltaPosition = %v, want {20 -30}", got)
	}

	c.Update(16.666, common.FrameContext{})
	if !near(mgr.rotation, 20.0/600) || !near(mgr.angle, 0.05) {
		t.Errorf("orientation = (%v, %v), want (%v, 0.05)", mgr.rotation, mgr.angle, 20.0/600)
	}
}
