package gesture

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-map/common"
)

// DefaultThreshold is the drag dead zone in pixels.
const DefaultThreshold = 10.0

// Recognizer is a drag gesture state machine fed with raw pointer samples.
// Only the first pressed pointer drives a gesture; other pointers are ignored until it is released.
type Recognizer struct {
	mu *sync.Mutex

	threshold float64
	accepted  map[PointerType]bool

	handlers [phaseCount]common.Listeners[Handler]

	// Primary pointer state.
	active      bool
	dragging    bool
	pointerID   int
	pointerType PointerType
	origin      common.Vec2
	last        common.Vec2
}

var _ Source = &Recognizer{}

// NewRecognizer creates a Recognizer with a DefaultThreshold dead zone accepting every pointer type.
//
// Parameters:
//   - options: functional options to configure the recognizer
//
// Returns:
//   - *Recognizer: the newly created recognizer
func NewRecognizer(options ...RecognizerOption) *Recognizer {
	r := &Recognizer{
		mu:        &sync.Mutex{},
		threshold: DefaultThreshold,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

func (r *Recognizer) On(phase Phase, handler Handler) common.ListenerID {
	if phase < 0 || phase >= phaseCount || handler == nil {
		return 0
	}
	return r.handlers[phase].Add(handler)
}

func (r *Recognizer) Off(phase Phase, id common.ListenerID) {
	if phase < 0 || phase >= phaseCount {
		return
	}
	r.handlers[phase].Remove(id)
}

// Dragging reports whether a drag gesture is currently in progress.
func (r *Recognizer) Dragging() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dragging
}

// Feed advances the state machine with one pointer sample and dispatches
// any resulting gesture event before returning.
//
// Parameters:
//   - s: the pointer sample
func (r *Recognizer) Feed(s Sample) {
	r.mu.Lock()
	if r.accepted != nil && !r.accepted[s.Type] {
		r.mu.Unlock()
		return
	}

	var (
		evt  Event
		emit bool
	)

	switch {
	case !r.active && s.Pressed:
		r.active = true
		r.dragging = false
		r.pointerID = s.ID
		r.pointerType = s.Type
		r.origin = s.Position
		r.last = s.Position

	case r.active && s.ID != r.pointerID:
		// Secondary pointer while the primary is down.

	case r.active && s.Pressed:
		if s.Position == r.last {
			break
		}
		r.last = s.Position
		if !r.dragging {
			if s.Position.Sub(r.origin).LengthSq() <= r.threshold*r.threshold {
				break
			}
			r.dragging = true
			evt, emit = r.eventLocked(PhaseStart), true
			break
		}
		evt, emit = r.eventLocked(PhaseMove), true

	case r.active && !s.Pressed:
		r.last = s.Position
		if r.dragging {
			evt, emit = r.eventLocked(PhaseEnd), true
		}
		r.active = false
		r.dragging = false
	}
	r.mu.Unlock()

	if emit {
		r.dispatch(evt)
	}
}

// Cancel aborts the gesture in progress, emitting a cancel event if a drag had started.
// Hosts call it when input focus is lost or the platform cancels a touch sequence.
func (r *Recognizer) Cancel() {
	r.mu.Lock()
	wasDragging := r.dragging
	evt := r.eventLocked(PhaseCancel)
	r.active = false
	r.dragging = false
	r.mu.Unlock()

	if wasDragging {
		r.dispatch(evt)
	}
}

// eventLocked builds an event for the primary pointer. Caller must hold the mutex.
func (r *Recognizer) eventLocked(phase Phase) Event {
	return Event{
		Phase:       phase,
		PointerType: r.pointerType,
		PointerID:   r.pointerID,
		Center:      r.last,
		Delta:       r.last.Sub(r.origin),
	}
}

// dispatch delivers evt to a snapshot of the phase's handlers, outside the state lock.
func (r *Recognizer) dispatch(evt Event) {
	for _, h := range r.handlers[evt.Phase].Snapshot() {
		h(evt)
	}
}
