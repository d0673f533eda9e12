// Package wire implements the little-endian word codec shared by the
// ChaCha20 and Poly1305 cores.
package wire

// ReadU32 reads a 32-bit little-endian word starting at b[0].
func ReadU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// WriteU32 writes v little-endian into b[0:4].
func WriteU32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

// WriteU64 writes v little-endian into b[0:8] as two 32-bit halves.
func WriteU64(b []byte, v uint64) {
	WriteU32(b[0:4], uint32(v))
	WriteU32(b[4:8], uint32(v>>32))
}

// SplitU64 splits v into its little-endian low/high 32-bit halves, as used
// to seed state words 12 and 13 of the extended (64-bit counter) block.
func SplitU64(v uint64) (lo, hi uint32) {
	return uint32(v), uint32(v >> 32)
}
