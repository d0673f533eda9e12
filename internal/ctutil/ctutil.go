// Package ctutil implements the constant-time primitives the Poly1305 field
// reduction and the AEAD tag comparison are built on.
package ctutil

// Equal reports whether a and b hold the same bytes without branching on the
// first mismatch. It returns false immediately on a length mismatch: the
// length of a MAC or ciphertext is public, only its content is secret.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}

	var x byte
	for i := range a {
		x |= a[i] ^ b[i]
	}

	return x == 0
}

// EqU32 returns 1 if a == b, 0 otherwise, without a data-dependent branch.
func EqU32(a, b uint32) uint32 {
	q := a ^ b
	r := (q | -q) >> 31
	return r ^ 1
}

// GtU32 returns 1 if a > b, 0 otherwise, without a data-dependent branch.
func GtU32(a, b uint32) uint32 {
	c := b - a
	return (c ^ ((a ^ b) & (a ^ c))) >> 31
}

// SelectU32 returns x if cond1 is a truthy mask (1 in its low bit), y
// otherwise. cond1 must be 0 or 1; it is expanded to a full mask internally.
func SelectU32(cond1, x, y uint32) uint32 {
	return y ^ ((-cond1) & (x ^ y))
}
