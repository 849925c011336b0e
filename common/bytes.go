package common

import (
	"encoding/binary"
	"math"
)

// Float32Bytes packs values as consecutive little-endian float32s, the layout GPU
// buffers expect. The result is appended to dst.
//
// Parameters:
//   - dst: buffer to append to (may be nil)
//   - values: floats to pack
//
// Returns:
//   - []byte: dst extended by 4 bytes per value
func Float32Bytes(dst []byte, values ...float32) []byte {
	for _, v := range values {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(v))
	}
	return dst
}
