package controls

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-map/common"
	"github.com/Carmen-Shannon/oxy-map/engine/gesture"
)

const (
	// frameReferenceMs is the frame duration stiffness is defined against (60fps).
	frameReferenceMs = 16.666

	// restThresholdSq is the squared displacement below which residual inertia snaps to zero.
	restThresholdSq = 1e-4

	DefaultSpeed     = 1.0
	DefaultStiffness = 0.15
)

// TouchPanControls rotates the map view from drag gestures with inertial smoothing.
// Drag events accumulate an unconsumed screen displacement; every frame Update applies
// a share of it to the view manager's rotation and angle and decays the remainder,
// so the view keeps turning briefly after the finger lifts.
type TouchPanControls interface {
	// Start subscribes to the gesture source and viewport resizes and binds the view manager
	// that Update mutates. Calling Start again first detaches the previous subscriptions.
	//
	// Parameters:
	//   - manager: the view manager owning rotation and angle
	Start(manager ViewManager)

	// Stop removes every subscription made by Start. Events delivered afterwards are ignored.
	// Safe to call when Start was never called.
	Stop()

	// Update applies and decays the accumulated displacement. Called once per rendered frame,
	// after the frame's gesture events were delivered.
	//
	// Parameters:
	//   - deltaTimeMs: elapsed time since the previous frame in milliseconds
	//   - frame: the frame being processed
	Update(deltaTimeMs float64, frame common.FrameContext)

	// Reset drops any residual inertia immediately, whether or not a drag is in progress.
	Reset()

	// Moving reports whether a drag is in progress.
	//
	// Returns:
	//   - bool: true between drag start and drag end/cancel
	Moving() bool

	// LastPosition returns the last observed drag position.
	//
	// Returns:
	//   - common.Vec2: position in screen pixels
	LastPosition() common.Vec2

	// DeltaPosition returns the accumulated displacement not yet applied to the view.
	//
	// Returns:
	//   - common.Vec2: displacement in screen pixels
	DeltaPosition() common.Vec2

	// PixelToSpeedMultiplier returns the per-pixel normalization factors derived from the viewport size.
	//
	// Returns:
	//   - x, y: multipliers for horizontal and vertical displacement
	PixelToSpeedMultiplier() (x, y float64)

	// Speed returns the sensitivity multiplier.
	//
	// Returns:
	//   - float64: the speed
	Speed() float64

	// Stiffness returns the smoothing rate.
	//
	// Returns:
	//   - float64: the stiffness
	Stiffness() float64
}

// touchPanControlsImpl is the implementation of TouchPanControls.
type touchPanControlsImpl struct {
	mu *sync.Mutex

	target Viewport
	source gesture.Source

	manager ViewManager

	started  bool
	phaseIDs [4]common.ListenerID
	resizeID common.ListenerID

	moving        bool
	lastPosition  common.Vec2
	deltaPosition common.Vec2

	speed     float64
	stiffness float64
	excluded  map[gesture.PointerType]bool

	pixelToSpeedMultiplierX float64
	pixelToSpeedMultiplierY float64
}

var _ TouchPanControls = &touchPanControlsImpl{}

// NewTouchPanControls creates touch pan controls bound to a viewport and a gesture source.
// By default mouse-driven gestures are ignored so only touch and pen rotate the view.
//
// Parameters:
//   - target: the viewport whose size normalizes pixel displacement (must not be nil)
//   - source: the gesture source delivering drag events (must not be nil)
//   - options: functional options to configure the controls
//
// Returns:
//   - TouchPanControls: the newly created controls, not yet started
func NewTouchPanControls(target Viewport, source gesture.Source, options ...TouchPanControlsOption) TouchPanControls {
	if target == nil {
		panic("controls: NewTouchPanControls requires a non-nil Viewport")
	}
	if source == nil {
		panic("controls: NewTouchPanControls requires a non-nil gesture Source")
	}

	c := &touchPanControlsImpl{
		mu:        &sync.Mutex{},
		target:    target,
		source:    source,
		speed:     DefaultSpeed,
		stiffness: DefaultStiffness,
		excluded:  map[gesture.PointerType]bool{gesture.PointerMouse: true},
	}

	for _, option := range options {
		option(c)
	}

	c.updatePixelToSpeedMultiplier(target.Width(), target.Height())
	return c
}

func (c *touchPanControlsImpl) Start(manager ViewManager) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		c.detach()
	}
	c.manager = manager

	c.phaseIDs[gesture.PhaseStart] = c.source.On(gesture.PhaseStart, c.onDragStart)
	c.phaseIDs[gesture.PhaseMove] = c.source.On(gesture.PhaseMove, c.onDragMove)
	c.phaseIDs[gesture.PhaseEnd] = c.source.On(gesture.PhaseEnd, c.onDragEnd)
	c.phaseIDs[gesture.PhaseCancel] = c.source.On(gesture.PhaseCancel, c.onDragEnd)
	c.resizeID = c.target.AddResizeListener(c.onResize)

	// The viewport may have changed size while the controls were stopped.
	c.updatePixelToSpeedMultiplier(c.target.Width(), c.target.Height())
	c.started = true
}

func (c *touchPanControlsImpl) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started {
		return
	}
	c.detach()
}

func (c *touchPanControlsImpl) Update(deltaTimeMs float64, _ common.FrameContext) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.deltaPosition.IsZero() || c.manager == nil {
		return
	}

	smoothing := common.Clamp(c.stiffness/(frameReferenceMs/deltaTimeMs), 0, 1)

	// Stiffness scales both the applied step and the decay.
	c.manager.SetRotation(c.manager.Rotation() + c.deltaPosition.X*c.speed*c.pixelToSpeedMultiplierX*c.stiffness)
	c.manager.SetAngle(c.manager.Angle() - c.deltaPosition.Y*c.speed*c.pixelToSpeedMultiplierY*c.stiffness)

	c.deltaPosition = c.deltaPosition.Scale(1 - smoothing)
	if c.deltaPosition.LengthSq() < restThresholdSq {
		c.deltaPosition = common.Vec2{}
	}
}

func (c *touchPanControlsImpl) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deltaPosition = common.Vec2{}
}

func (c *touchPanControlsImpl) Moving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.moving
}

func (c *touchPanControlsImpl) LastPosition() common.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastPosition
}

func (c *touchPanControlsImpl) DeltaPosition() common.Vec2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deltaPosition
}

func (c *touchPanControlsImpl) PixelToSpeedMultiplier() (x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pixelToSpeedMultiplierX, c.pixelToSpeedMultiplierY
}

func (c *touchPanControlsImpl) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

func (c *touchPanControlsImpl) Stiffness() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stiffness
}

// --- internal helpers ---

// detach removes all gesture and resize subscriptions.
// Caller must hold the mutex.
func (c *touchPanControlsImpl) detach() {
	c.source.Off(gesture.PhaseStart, c.phaseIDs[gesture.PhaseStart])
	c.source.Off(gesture.PhaseMove, c.phaseIDs[gesture.PhaseMove])
	c.source.Off(gesture.PhaseEnd, c.phaseIDs[gesture.PhaseEnd])
	c.source.Off(gesture.PhaseCancel, c.phaseIDs[gesture.PhaseCancel])
	c.target.RemoveResizeListener(c.resizeID)

	c.phaseIDs = [4]common.ListenerID{}
	c.resizeID = 0
	c.started = false
}

// updatePixelToSpeedMultiplier recomputes the normalization factors for a viewport size.
// Dimensions are clamped to at least one pixel.
// Caller must hold the mutex or be the constructor.
func (c *touchPanControlsImpl) updatePixelToSpeedMultiplier(width, height int) {
	w := float64(max(width, 1))
	h := float64(max(height, 1))
	c.pixelToSpeedMultiplierX = (1 / w) * (w / h)
	c.pixelToSpeedMultiplierY = 1 / h
}

// ignored reports whether evt must not affect the controls.
// Caller must hold the mutex.
func (c *touchPanControlsImpl) ignored(evt gesture.Event) bool {
	return !c.started || c.excluded[evt.PointerType]
}

// --- gesture and viewport callbacks ---

func (c *touchPanControlsImpl) onDragStart(evt gesture.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ignored(evt) {
		return
	}
	c.moving = true
	c.deltaPosition = common.Vec2{}
	c.lastPosition = evt.Center
}

func (c *touchPanControlsImpl) onDragMove(evt gesture.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ignored(evt) {
		return
	}
	if c.moving {
		c.deltaPosition = c.deltaPosition.Add(c.lastPosition.Sub(evt.Center))
	}
	c.lastPosition = evt.Center
}

// onDragEnd handles both end and cancel. The accumulated displacement is kept so
// the remaining inertia plays out over the next frames.
func (c *touchPanControlsImpl) onDragEnd(evt gesture.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ignored(evt) {
		return
	}
	c.moving = false
}

func (c *touchPanControlsImpl) onResize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updatePixelToSpeedMultiplier(width, height)
}
