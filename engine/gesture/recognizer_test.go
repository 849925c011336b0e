package gesture

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-map/common"
)

// recorder collects every event emitted by a source.
type recorder struct {
	events []Event
}

func (r *recorder) attach(src Source) {
	for p := PhaseStart; p < phaseCount; p++ {
		src.On(p, func(evt Event) { r.events = append(r.events, evt) })
	}
}

func (r *recorder) phases() []Phase {
	out := make([]Phase, len(r.events))
	for i, e := range r.events {
		out[i] = e.Phase
	}
	return out
}

func touch(id int, x, y float64, pressed bool) Sample {
	return Sample{ID: id, Type: PointerTouch, Position: common.Vec2{X: x, Y: y}, Pressed: pressed}
}

func equalPhases(a, b []Phase) bool {
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

func TestRecognizerDragLifecycle(t *testing.T) {
	rec := NewRecognizer(WithThreshold(5))
	var r recorder
	r.attach(rec)

	rec.Feed(touch(1, 100, 100, true))
	rec.Feed(touch(1, 102, 101, true)) // inside dead zone
	rec.Feed(touch(1, 110, 100, true)) // starts the drag
	rec.Feed(touch(1, 120, 100, true))
	rec.Feed(touch(1, 120, 100, true)) // unchanged position, no event
	rec.Feed(touch(1, 125, 105, false))

	want := []Phase{PhaseStart, PhaseMove, PhaseEnd}
	if got := r.phases(); !equalPhases(got, want) {
		t.Fatalf("phases = %v, want %v", got, want)
	}

	start := r.events[0]
	if start.Center != (common.Vec2{X: 110, Y: 100}) {
		t.Errorf("start center = %v, want {110 100}", start.Center)
	}
	if start.Delta != (common.Vec2{X: 10, Y: 0}) {
		t.Errorf("start delta = %v, want {10 0}", start.Delta)
	}
	if start.PointerType != PointerTouch || start.PointerID != 1 {
		t.Errorf("start pointer = %q/%d, want touch/1", start.PointerType, start.PointerID)
	}
	if end := r.events[2]; end.Center != (common.Vec2{X: 125, Y: 105}) {
		t.Errorf("end center = %v, want {125 105}", end.Center)
	}
	if rec.Dragging() {
		t.Error("Dragging() = true after release")
	}
}

func TestRecognizerTapEmitsNothing(t *testing.T) {
	rec := NewRecognizer()
	var r recorder
	r.attach(rec)

	rec.Feed(touch(1, 10, 10, true))
	rec.Feed(touch(1, 12, 12, true))
	rec.Feed(touch(1, 12, 12, false))

	if len(r.events) != 0 {
		t.Errorf("events = %v, want none", r.phases())
	}
}

func TestRecognizerIgnoresSecondaryPointer(t *testing.T) {
	rec := NewRecognizer(WithThreshold(0))
	var r recorder
	r.attach(rec)

	rec.Feed(touch(1, 0, 0, true))
	rec.Feed(touch(2, 50, 50, true))
	rec.Feed(touch(2, 60, 60, true))
	rec.Feed(touch(1, 1, 0, true))
	rec.Feed(touch(2, 60, 60, false))
	rec.Feed(touch(1, 1, 0, false))

	want := []Phase{PhaseStart, PhaseEnd}
	if got := r.phases(); !equalPhases(got, want) {
		t.Fatalf("phases = %v, want %v", got, want)
	}
	for _, e := range r.events {
		if e.PointerID != 1 {
			t.Errorf("event from pointer %d, want 1", e.PointerID)
		}
	}
}

func TestRecognizerCancel(t *testing.T) {
	rec := NewRecognizer(WithThreshold(0))
	var r recorder
	r.attach(rec)

	rec.Cancel() // idle: nothing to cancel

	rec.Feed(touch(1, 0, 0, true))
	rec.Feed(touch(1, 5, 0, true))
	rec.Cancel()
	rec.Feed(touch(1, 9, 0, true)) // acts as a fresh press

	want := []Phase{PhaseStart, PhaseCancel}
	if got := r.phases(); !equalPhases(got, want) {
		t.Fatalf("phases = %v, want %v", got, want)
	}
}

func TestRecognizerPointerTypeFilter(t *testing.T) {
	rec := NewRecognizer(WithThreshold(0), WithPointerTypes(PointerTouch, PointerPen))
	var r recorder
	r.attach(rec)

	rec.Feed(Sample{ID: MousePointerID, Type: PointerMouse, Position: common.Vec2{}, Pressed: true})
	rec.Feed(Sample{ID: MousePointerID, Type: PointerMouse, Position: common.Vec2{X: 20}, Pressed: true})
	if len(r.events) != 0 {
		t.Fatalf("mouse produced %v, want nothing", r.phases())
	}

	rec.Feed(Sample{ID: 3, Type: PointerPen, Position: common.Vec2{}, Pressed: true})
	rec.Feed(Sample{ID: 3, Type: PointerPen, Position: common.Vec2{X: 20}, Pressed: true})
	if got := r.phases(); !equalPhases(got, []Phase{PhaseStart}) {
		t.Errorf("pen phases = %v, want [movestart]", got)
	}
}

func TestRecognizerOffDuringDispatch(t *testing.T) {
	rec := NewRecognizer(WithThreshold(0))

	calls := 0
	var id common.ListenerID
	id = rec.On(PhaseMove, func(Event) {
		calls++
		rec.Off(PhaseMove, id)
	})

	rec.Feed(touch(1, 0, 0, true))
	rec.Feed(touch(1, 1, 0, true)) // start
	rec.Feed(touch(1, 2, 0, true)) // move, handler removes itself
	rec.Feed(touch(1, 3, 0, true)) // move, no handler

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestRecognizerOnRejectsInvalid(t *testing.T) {
	rec := NewRecognizer()
	if id := rec.On(Phase(42), func(Event) {}); id != 0 {
		t.Errorf("On(invalid phase) = %d, want 0", id)
	}
	if id := rec.On(PhaseStart, nil); id != 0 {
		t.Errorf("On(nil handler) = %d, want 0", id)
	}
	rec.Off(Phase(-1), 1) // must not panic
}

func TestPhaseString(t *testing.T) {
	tests := map[Phase]string{
		PhaseStart:  "movestart",
		PhaseMove:   "movemove",
		PhaseEnd:    "moveend",
		PhaseCancel: "movecancel",
		Phase(9):    "unknown",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", int(p), got, want)
		}
	}
}
