// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import "time"

// Vec2 is a 2D point or displacement in screen space (pixels).
type Vec2 struct {
	X float64
	Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// LengthSq returns the squared length of v.
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// IsZero reports whether both components are exactly zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// FrameContext describes the frame currently being processed by the engine loop.
// It is handed to every per-frame updater alongside the frame's delta time.
type FrameContext struct {
	// Number is the 1-based index of the frame since the loop started.
	Number uint64

	// Elapsed is the total time since the loop started.
	Elapsed time.Duration

	// Width is the host viewport width in pixels at the start of the frame.
	Width int

	// Height is the host viewport height in pixels at the start of the frame.
	Height int
}

// ListenerID identifies a registered callback so it can later be removed.
// The zero value never refers to a live registration.
type ListenerID uint64
