package marker

import (
	"encoding/json"
	"fmt"

	"github.com/Carmen-Shannon/oxy-map/common"
)

const (
	// InfoHeight is the Y coordinate stored for every chunk marker.
	InfoHeight = 100.0

	// DefaultLabel is the label used when none is configured.
	DefaultLabel = "Example Shape Marker"

	shapeType = "shape"
)

// InfoPosition is a stored marker position.
type InfoPosition struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ChunkEntry is the stored description of a chunk's shape marker.
type ChunkEntry struct {
	Type     string       `json:"type"`
	Position InfoPosition `json:"position"`
	Label    string       `json:"label"`
	Shape    []Point      `json:"shape"`
}

// ChunkInfo is one chunk's metadata. It encodes as a single-key object,
// {"chunk_<x>_<z>": {...entry...}}.
type ChunkInfo struct {
	Name  string
	Entry ChunkEntry
}

// NewChunkInfo builds the metadata for chunk. An empty label falls back to DefaultLabel.
//
// Parameters:
//   - chunk: the chunk being described
//   - label: marker label
//
// Returns:
//   - ChunkInfo: the metadata ready to be stored
func NewChunkInfo(chunk Chunk, label string) ChunkInfo {
	corners := chunk.Corners()
	center := chunk.Center()
	return ChunkInfo{
		Name: chunk.Name(),
		Entry: ChunkEntry{
			Type:     shapeType,
			Position: InfoPosition{X: center.X, Y: InfoHeight, Z: center.Z},
			Label:    common.Coalesce(label, DefaultLabel),
			Shape:    corners[:],
		},
	}
}

func (c ChunkInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]ChunkEntry{c.Name: c.Entry})
}

func (c *ChunkInfo) UnmarshalJSON(data []byte) error {
	var m map[string]ChunkEntry
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	if len(m) != 1 {
		return fmt.Errorf("marker: chunk info must hold exactly one chunk, got %d", len(m))
	}
	for name, entry := range m {
		c.Name = name
		c.Entry = entry
	}
	return nil
}
