// Package ebitentouch samples ebiten touch and mouse input into a gesture.Recognizer
// and exposes the ebiten layout size as a resizable viewport.
package ebitentouch

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Carmen-Shannon/oxy-map/common"
	"github.com/Carmen-Shannon/oxy-map/engine/gesture"
)

// input is the slice of ebiten's input API the poller reads.
type input interface {
	AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID
	TouchPosition(id ebiten.TouchID) (int, int)
	CursorPosition() (int, int)
	IsMouseButtonPressed(button ebiten.MouseButton) bool
}

// ebitenInput reads the live ebiten input state.
type ebitenInput struct{}

func (ebitenInput) AppendTouchIDs(ids []ebiten.TouchID) []ebiten.TouchID {
	return ebiten.AppendTouchIDs(ids)
}

func (ebitenInput) TouchPosition(id ebiten.TouchID) (int, int) {
	return ebiten.TouchPosition(id)
}

func (ebitenInput) CursorPosition() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenInput) IsMouseButtonPressed(button ebiten.MouseButton) bool {
	return ebiten.IsMouseButtonPressed(button)
}

// Poller reads ebiten input once per tick and feeds it to a recognizer.
// Poll must be called from the ebiten Update goroutine.
type Poller struct {
	rec *gesture.Recognizer
	in  input

	mouse bool

	touchIDs []ebiten.TouchID
	seen     map[ebiten.TouchID]bool
	last     map[ebiten.TouchID]common.Vec2

	mouseDown bool
	mousePos  common.Vec2
}

// PollerOption is a functional option for configuring a Poller.
type PollerOption func(*Poller)

// WithMouse also samples the left mouse button as a PointerMouse pointer.
//
// Parameters:
//   - enabled: whether to sample the mouse
//
// Returns:
//   - PollerOption: functional option to toggle mouse sampling
func WithMouse(enabled bool) PollerOption {
	return func(p *Poller) {
		p.mouse = enabled
	}
}

// NewPoller creates a Poller feeding rec.
//
// Parameters:
//   - rec: the recognizer to feed (must not be nil)
//   - options: functional options to configure the poller
//
// Returns:
//   - *Poller: the newly created poller
func NewPoller(rec *gesture.Recognizer, options ...PollerOption) *Poller {
	if rec == nil {
		panic("ebitentouch: NewPoller requires a non-nil Recognizer")
	}
	p := &Poller{
		rec:  rec,
		in:   ebitenInput{},
		seen: make(map[ebiten.TouchID]bool),
		last: make(map[ebiten.TouchID]common.Vec2),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Poll samples every active touch, releases touches that ended since the previous poll,
// and samples the mouse when enabled.
func (p *Poller) Poll() {
	p.touchIDs = p.in.AppendTouchIDs(p.touchIDs[:0])

	clear(p.seen)
	for _, id := range p.touchIDs {
		x, y := p.in.TouchPosition(id)
		pos := common.Vec2{X: float64(x), Y: float64(y)}
		p.seen[id] = true
		p.last[id] = pos
		p.rec.Feed(gesture.Sample{ID: int(id), Type: gesture.PointerTouch, Position: pos, Pressed: true})
	}

	for id, pos := range p.last {
		if p.seen[id] {
			continue
		}
		delete(p.last, id)
		p.rec.Feed(gesture.Sample{ID: int(id), Type: gesture.PointerTouch, Position: pos, Pressed: false})
	}

	if !p.mouse {
		return
	}
	x, y := p.in.CursorPosition()
	p.mousePos = common.Vec2{X: float64(x), Y: float64(y)}
	pressed := p.in.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if !pressed && !p.mouseDown {
		return
	}
	p.mouseDown = pressed
	p.rec.Feed(gesture.Sample{
		ID:       gesture.MousePointerID,
		Type:     gesture.PointerMouse,
		Position: p.mousePos,
		Pressed:  pressed,
	})
}
