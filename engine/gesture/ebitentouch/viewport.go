package ebitentouch

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-map/common"
)

// Viewport tracks the logical screen size reported to ebiten's Layout and notifies
// resize listeners when it changes.
type Viewport struct {
	mu            *sync.Mutex
	width, height int
	resize        common.Listeners[func(width, height int)]
}

// NewViewport creates a Viewport with an initial size.
//
// Parameters:
//   - width, height: initial size in pixels
//
// Returns:
//   - *Viewport: the newly created viewport
func NewViewport(width, height int) *Viewport {
	return &Viewport{mu: &sync.Mutex{}, width: width, height: height}
}

func (v *Viewport) Width() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width
}

func (v *Viewport) Height() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.height
}

func (v *Viewport) AddResizeListener(fn func(width, height int)) common.ListenerID {
	return v.resize.Add(fn)
}

func (v *Viewport) RemoveResizeListener(id common.ListenerID) {
	v.resize.Remove(id)
}

// Layout records the outside size passed to ebiten's Game.Layout and returns it unchanged
// as the logical screen size. Listeners run only when the size actually changes.
//
// Parameters:
//   - outsideWidth, outsideHeight: size from ebiten
//
// Returns:
//   - int, int: the logical screen size
func (v *Viewport) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.mu.Lock()
	changed := outsideWidth != v.width || outsideHeight != v.height
	v.width, v.height = outsideWidth, outsideHeight
	v.mu.Unlock()

	if changed {
		for _, fn := range v.resize.Snapshot() {
			fn(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}
