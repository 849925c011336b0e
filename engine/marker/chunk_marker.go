package marker

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-map/common"
)

const (
	// DefaultColor is the fill color of the marker, 0xRRGGBB.
	DefaultColor uint32 = 0xff0000

	// DefaultOpacity is the fill opacity of the marker.
	DefaultOpacity = 0.5

	// DefaultShapeY is the height the marker shape is drawn at.
	DefaultShapeY = 300.0

	defaultSaveTimeout = 5 * time.Second
	defaultWorkers     = 2
)

// PositionSource reports the point the marker follows, usually the camera target.
type PositionSource interface {
	Target() (x, y, z float64)
}

// ChunkMarker outlines the chunk under a position and stores each newly entered chunk.
type ChunkMarker interface {
	// SetCoordinates moves the marker to c, recomputing the outline.
	// Entering a different chunk submits a save of that chunk to the store.
	//
	// Parameters:
	//   - c: the new world position
	SetCoordinates(c Coordinates)

	// Update follows the position source, if one is configured.
	//
	// Parameters:
	//   - deltaTimeMs: milliseconds since the previous frame
	//   - frame: the current frame context
	Update(deltaTimeMs float64, frame common.FrameContext)

	// Coordinates returns the marker position.
	//
	// Returns:
	//   - Coordinates: the current world position
	Coordinates() Coordinates

	// Chunk returns the chunk under the marker. ok is false until coordinates have been set.
	//
	// Returns:
	//   - Chunk: the current chunk
	//   - bool: whether the marker has been positioned
	Chunk() (chunk Chunk, ok bool)

	// Outline returns the closed chunk outline relative to the marker position.
	//
	// Returns:
	//   - [5]Point: the outline
	Outline() [5]Point

	// Color returns the fill color.
	//
	// Returns:
	//   - uint32: color as 0xRRGGBB
	Color() uint32

	// Opacity returns the fill opacity.
	//
	// Returns:
	//   - float64: opacity in [0, 1]
	Opacity() float64

	// ShapeY returns the height the outline is drawn at.
	//
	// Returns:
	//   - float64: world-space Y of the outline
	ShapeY() float64

	// Label returns the label stored with each chunk.
	//
	// Returns:
	//   - string: the marker label
	Label() string

	// Flush blocks until every submitted save has finished.
	Flush()

	// Close waits for submitted saves and stops the save workers.
	// Chunks entered after Close still update the outline but are no longer saved.
	// Safe to call multiple times.
	Close()
}

type chunkMarkerImpl struct {
	mu *sync.Mutex

	color   uint32
	opacity float64
	shapeY  float64
	label   string

	coords     Coordinates
	outline    [5]Point
	chunk      Chunk
	positioned bool

	source PositionSource

	store       Store
	pool        worker.DynamicWorkerPool
	workers     int
	saveTimeout time.Duration
	pending     sync.WaitGroup
	closed      bool
	closeOnce   sync.Once
	nextTaskID  atomic.Int64
	onError     func(info ChunkInfo, err error)
}

var _ ChunkMarker = &chunkMarkerImpl{}

// NewChunkMarker creates a ChunkMarker. Without WithStore the marker only tracks geometry.
//
// Parameters:
//   - options: functional options to configure the marker
//
// Returns:
//   - ChunkMarker: the configured marker
func NewChunkMarker(options ...ChunkMarkerOption) ChunkMarker {
	m := &chunkMarkerImpl{
		mu:          &sync.Mutex{},
		color:       DefaultColor,
		opacity:     DefaultOpacity,
		shapeY:      DefaultShapeY,
		label:       DefaultLabel,
		workers:     defaultWorkers,
		saveTimeout: defaultSaveTimeout,
		onError: func(info ChunkInfo, err error) {
			log.Printf("[ChunkMarker] failed to save %s: %v", info.Name, err)
		},
	}
	for _, opt := range options {
		opt(m)
	}
	if m.store != nil {
		m.pool = worker.NewDynamicWorkerPool(m.workers, 256, 1*time.Second)
	}
	return m
}

func (m *chunkMarkerImpl) SetCoordinates(c Coordinates) {
	m.mu.Lock()
	m.coords = c
	m.outline = Outline(c)
	chunk := ChunkAt(c.X, c.Z)
	entered := !m.positioned || chunk != m.chunk
	m.chunk = chunk
	m.positioned = true
	label := m.label
	m.mu.Unlock()

	if entered {
		m.save(NewChunkInfo(chunk, label))
	}
}

func (m *chunkMarkerImpl) Update(deltaTimeMs float64, frame common.FrameContext) {
	if m.source == nil {
		return
	}
	x, y, z := m.source.Target()
	c := Coordinates{X: x, Y: y, Z: z}

	m.mu.Lock()
	unchanged := m.positioned && c == m.coords
	m.mu.Unlock()
	if unchanged {
		return
	}
	m.SetCoordinates(c)
}

func (m *chunkMarkerImpl) Coordinates() Coordinates {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.coords
}

func (m *chunkMarkerImpl) Chunk() (Chunk, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chunk, m.positioned
}

func (m *chunkMarkerImpl) Outline() [5]Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.outline
}

func (m *chunkMarkerImpl) Color() uint32 {
	return m.color
}

func (m *chunkMarkerImpl) Opacity() float64 {
	return m.opacity
}

func (m *chunkMarkerImpl) ShapeY() float64 {
	return m.shapeY
}

func (m *chunkMarkerImpl) Label() string {
	return m.label
}

func (m *chunkMarkerImpl) Flush() {
	m.pending.Wait()
}

func (m *chunkMarkerImpl) Close() {
	m.closeOnce.Do(func() {
		m.mu.Lock()
		m.closed = true
		m.mu.Unlock()

		m.pending.Wait()
		if m.pool != nil {
			m.pool.Stop()
		}
	})
}

// save hands info to the worker pool so a slow store never stalls the frame loop.
func (m *chunkMarkerImpl) save(info ChunkInfo) {
	if m.store == nil {
		return
	}
	// Registering under the lock keeps Add from racing Close's Wait.
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.pending.Add(1)
	m.mu.Unlock()

	m.pool.SubmitTask(worker.Task{
		ID: int(m.nextTaskID.Add(1)),
		Do: func() (any, error) {
			defer m.pending.Done()
			ctx, cancel := context.WithTimeout(context.Background(), m.saveTimeout)
			defer cancel()
			if err := m.store.Save(ctx, info); err != nil {
				m.onError(info, err)
				return nil, err
			}
			return nil, nil
		},
	})
}

// ColorRGBA unpacks a 0xRRGGBB color and an opacity into normalized RGBA components.
func ColorRGBA(rgb uint32, opacity float64) [4]float32 {
	return [4]float32{
		float32((rgb>>16)&0xff) / 255,
		float32((rgb>>8)&0xff) / 255,
		float32(rgb&0xff) / 255,
		float32(common.Clamp(opacity, 0, 1)),
	}
}
