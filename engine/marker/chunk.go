// Package marker highlights the map chunk under the camera and persists chunk metadata.
package marker

import (
	"fmt"
	"math"
)

// ChunkSize is the edge length of a map chunk in world units.
const ChunkSize = 16

// Coordinates is a world-space position.
type Coordinates struct {
	X float64
	Y float64
	Z float64
}

// Point is a position on the ground plane.
type Point struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Chunk addresses one ChunkSize x ChunkSize cell of the ground plane.
type Chunk struct {
	X int
	Z int
}

// ChunkAt returns the chunk containing the world position (x, z).
// Flooring keeps negative coordinates in the chunk to their lower side.
func ChunkAt(x, z float64) Chunk {
	return Chunk{
		X: int(math.Floor(x / ChunkSize)),
		Z: int(math.Floor(z / ChunkSize)),
	}
}

// Name returns the persistence key of the chunk, "chunk_<x>_<z>".
func (c Chunk) Name() string {
	return fmt.Sprintf("chunk_%d_%d", c.X, c.Z)
}

// Corners returns the chunk's corners in world units, counter-clockwise from its minimum corner.
func (c Chunk) Corners() [4]Point {
	x0 := float64(c.X * ChunkSize)
	z0 := float64(c.Z * ChunkSize)
	x1 := x0 + ChunkSize
	z1 := z0 + ChunkSize
	return [4]Point{
		{X: x0, Z: z0},
		{X: x1, Z: z0},
		{X: x1, Z: z1},
		{X: x0, Z: z1},
	}
}

// Center returns the mean of the chunk's corners.
func (c Chunk) Center() Point {
	var center Point
	corners := c.Corners()
	for _, p := range corners {
		center.X += p.X
		center.Z += p.Z
	}
	center.X /= float64(len(corners))
	center.Z /= float64(len(corners))
	return center
}

// Outline returns the closed outline of the chunk containing coords, relative to coords.
// The marker mesh sits at coords, so the first point is the chunk's minimum corner
// expressed as an offset from there.
func Outline(coords Coordinates) [5]Point {
	chunk := ChunkAt(coords.X, coords.Z)
	offX := coords.X - float64(chunk.X*ChunkSize)
	offZ := coords.Z - float64(chunk.Z*ChunkSize)
	return [5]Point{
		{X: -offX, Z: -offZ},
		{X: -offX + ChunkSize, Z: -offZ},
		{X: -offX + ChunkSize, Z: -offZ + ChunkSize},
		{X: -offX, Z: -offZ + ChunkSize},
		{X: -offX, Z: -offZ},
	}
}

// WorldOutline returns the outline of the chunk containing coords in world space,
// lifted to height y.
func WorldOutline(coords Coordinates, y float64) [5]Coordinates {
	var out [5]Coordinates
	for i, p := range Outline(coords) {
		out[i] = Coordinates{X: coords.X + p.X, Y: y, Z: coords.Z + p.Z}
	}
	return out
}
