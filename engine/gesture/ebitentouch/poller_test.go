package ebitentouch

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-map/common"
	"github.com/Carmen-Shannon/oxy-map/engine/gesture"
	"github.com/hajimehoshi/ebiten/v2"
)

// fakeInput is a scripted input state. Tests mutate it between polls.
type fakeInput struct {
	touches map[ebiten.TouchID][2]int
	order   []ebiten.TouchID

	cursor  [2]int
	pressed bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{touches: make(map[ebiten.TouchID][2]int)}
}

func (f *fakeInput) press(id ebiten.TouchID, x, y int) {
	if _, ok := f.touches[id]; !ok {
		f.order = append(f.order, id)
	}
	f.touches[id] = [2]int{x, y}
}

func (f *fakeInput) lift(id ebiten.TouchID) {
	delete(f.touches, id)
	for i, o := range f.order {
		if o == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

func (f *fakeInput) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return append(ids, f.order...)
}

func (f *fakeInput) TouchPosition(id ebiten.TouchID) (int, int) {
	p := f.touches[id]
	return p[0], p[1]
}

func (f *fakeInput) CursorPosition() (int, int) {
	return f.cursor[0], f.cursor[1]
}

func (f *fakeInput) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	return button == ebiten.MouseButtonLeft && f.pressed
}

func recordPhases(rec *gesture.Recognizer) *[]gesture.Event {
	var events []gesture.Event
	for _, p := range []gesture.Phase{gesture.PhaseStart, gesture.PhaseMove, gesture.PhaseEnd, gesture.PhaseCancel} {
		rec.On(p, func(evt gesture.Event) { events = append(events, evt) })
	}
	return &events
}

func newTestPoller(in *fakeInput, options ...PollerOption) (*Poller, *[]gesture.Event) {
	rec := gesture.NewRecognizer(gesture.WithThreshold(2))
	events := recordPhases(rec)
	p := NewPoller(rec, options...)
	p.in = in
	return p, events
}

func phasesOf(events []gesture.Event) []gesture.Phase {
	out := make([]gesture.Phase, len(events))
	for i, e := range events {
		out[i] = e.Phase
	}
	return out
}

func samePhases(a, b []gesture.Phase) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPollTouchDragLifecycle(t *testing.T) {
	in := newFakeInput()
	p, events := newTestPoller(in)

	in.press(1, 10, 10)
	p.Poll()
	in.press(1, 30, 10)
	p.Poll()
	in.press(1, 40, 15)
	p.Poll()
	in.lift(1)
	p.Poll()

	want := []gesture.Phase{gesture.PhaseStart, gesture.PhaseMove, gesture.PhaseEnd}
	if got := phasesOf(*events); !samePhases(got, want) {
		t.Fatalf("phases = %v, want %v", got, want)
	}
	end := (*events)[2]
	if end.PointerType != gesture.PointerTouch || end.PointerID != 1 {
		t.Errorf("end pointer = %v/%d, want touch/1", end.PointerType, end.PointerID)
	}
	if want := (common.Vec2{X: 40, Y: 15}); end.Center != want {
		t.Errorf("end center = %v, want last seen position %v", end.Center, want)
	}
}

func TestPollReleasesOnlyVanishedTouches(t *testing.T) {
	in := newFakeInput()
	p, events := newTestPoller(in)

	in.press(1, 0, 0)
	in.press(2, 100, 100)
	p.Poll()
	in.press(1, 20, 0)
	p.Poll()

	// The secondary touch ends while the primary keeps dragging.
	in.lift(2)
	p.Poll()
	if got := phasesOf(*events); !samePhases(got, []gesture.Phase{gesture.PhaseStart}) {
		t.Fatalf("after lifting secondary, phases = %v, want [start]", got)
	}
	if _, ok := p.last[2]; ok {
		t.Error("vanished touch 2 still tracked")
	}

	in.press(1, 30, 0)
	p.Poll()
	in.lift(1)
	p.Poll()
	want := []gesture.Phase{gesture.PhaseStart, gesture.PhaseMove, gesture.PhaseEnd}
	if got := phasesOf(*events); !samePhases(got, want) {
		t.Errorf("phases = %v, want %v", got, want)
	}
	if len(p.last) != 0 || len(p.seen) != 0 {
		t.Errorf("tracked touches = %d, seen = %d after all lifted, want 0 and 0", len(p.last), len(p.seen))
	}
}

func TestPollReusesTouchBuffers(t *testing.T) {
	in := newFakeInput()
	p, _ := newTestPoller(in)

	in.press(1, 0, 0)
	in.press(2, 5, 5)
	p.Poll()
	seen := p.seen

	allocs := testing.AllocsPerRun(100, func() {
		in.press(1, 1, 1)
		p.Poll()
	})
	if allocs != 0 {
		t.Errorf("Poll allocated %v times per tick, want 0", allocs)
	}
	if len(p.seen) != 2 {
		t.Errorf("seen holds %d touches, want 2", len(p.seen))
	}
	p.seen[99] = true
	if !seen[99] {
		t.Error("Poll replaced the seen map instead of clearing it")
	}
}

func TestPollSamplesMouseWhenEnabled(t *testing.T) {
	in := newFakeInput()
	p, events := newTestPoller(in, WithMouse(true))

	in.cursor = [2]int{5, 5}
	p.Poll() // hovering feeds nothing
	in.pressed = true
	p.Poll()
	in.cursor = [2]int{25, 5}
	p.Poll()
	in.pressed = false
	p.Poll()

	want := []gesture.Phase{gesture.PhaseStart, gesture.PhaseEnd}
	if got := phasesOf(*events); !samePhases(got, want) {
		t.Fatalf("phases = %v, want %v", got, want)
	}
	for _, e := range *events {
		if e.PointerType != gesture.PointerMouse || e.PointerID != gesture.MousePointerID {
			t.Errorf("event pointer = %v/%d, want mouse/%d", e.PointerType, e.PointerID, gesture.MousePointerID)
		}
	}
	if p.mouseDown {
		t.Error("mouseDown still set after release")
	}
}

func TestPollIgnoresMouseByDefault(t *testing.T) {
	in := newFakeInput()
	p, events := newTestPoller(in)

	in.pressed = true
	in.cursor = [2]int{0, 0}
	p.Poll()
	in.cursor = [2]int{50, 50}
	p.Poll()
	in.pressed = false
	p.Poll()

	if len(*events) != 0 {
		t.Errorf("got %d events with mouse sampling off, want 0", len(*events))
	}
}

func TestNewPollerRequiresRecognizer(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewPoller(nil) did not panic")
		}
	}()
	NewPoller(nil)
}
