// Package chacha20 implements the ChaCha20 stream cipher as specified in
// https://datatracker.ietf.org/doc/html/rfc8439, together with the
// extended, 64-bit-counter block function XChaCha20 is built on.
package chacha20

import (
	"fmt"

	"github.com/ctkcrypto/chachapoly/internal/wire"
)

// BlockSize is the size (in bytes) of a single ChaCha20 block.
const BlockSize = 64

// KeySize is the required size (in bytes) of a ChaCha20 key.
const KeySize = 32

// NonceSize is the required size (in bytes) of an IETF ChaCha20 nonce.
const NonceSize = 12

// extendedNonceSize is the size of the nonce accepted by the 64-bit-counter
// block function used internally by XChaCha20.
const extendedNonceSize = 8

// MaxBlocks is the number of 64-byte blocks a single (key, nonce) pair can
// produce before the 32-bit IETF counter would wrap.
const MaxBlocks = 1 << 32

// constants are the ChaCha20 state words spelling "expand 32-byte k".
var constants = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// quarterRound is the ChaCha ARX primitive operating on four state words.
func quarterRound(a, b, c, d uint32) (uint32, uint32, uint32, uint32) {
	a += b
	d ^= a
	d = rotl(d, 16)

	c += d
	b ^= c
	b = rotl(b, 12)

	a += b
	d ^= a
	d = rotl(d, 8)

	c += d
	b ^= c
	b = rotl(b, 7)

	return a, b, c, d
}

func rotl(x uint32, n uint) uint32 {
	return (x << n) | (x >> (32 - n))
}

// doubleRound applies the quarterround to the four columns, then to the
// four diagonals, of state.
func doubleRound(state *[16]uint32) {
	state[0], state[4], state[8], state[12] = quarterRound(state[0], state[4], state[8], state[12])
	state[1], state[5], state[9], state[13] = quarterRound(state[1], state[5], state[9], state[13])
	state[2], state[6], state[10], state[14] = quarterRound(state[2], state[6], state[10], state[14])
	state[3], state[7], state[11], state[15] = quarterRound(state[3], state[7], state[11], state[15])

	state[0], state[5], state[10], state[15] = quarterRound(state[0], state[5], state[10], state[15])
	state[1], state[6], state[11], state[12] = quarterRound(state[1], state[6], state[11], state[12])
	state[2], state[7], state[8], state[13] = quarterRound(state[2], state[7], state[8], state[13])
	state[3], state[4], state[9], state[14] = quarterRound(state[3], state[4], state[9], state[14])
}

// twentyRounds runs the ten double-rounds (20 rounds total) that make
// up a full ChaCha20 permutation, in place.
func twentyRounds(state *[16]uint32) {
	for i := 0; i < 10; i++ {
		doubleRound(state)
	}
}

// Permute runs the bare ten-double-round ChaCha20 permutation over state, in
// place, without the final feed-forward addition. It is exported for
// HChaCha20, which uses the permutation but not the block function's
// add-initial-state/serialize steps.
func Permute(state *[16]uint32) {
	twentyRounds(state)
}

func loadKey(key [KeySize]byte) (k [8]uint32) {
	for i := range k {
		k[i] = wire.ReadU32(key[i*4:])
	}
	return k
}

// Block computes the n-th IETF ChaCha20 block (32-bit counter, 12-byte
// nonce) for key and nonce.
func Block(key [KeySize]byte, nonce [NonceSize]byte, n uint32) [BlockSize]byte {
	k := loadKey(key)

	var nonceWords [3]uint32
	for i := range nonceWords {
		nonceWords[i] = wire.ReadU32(nonce[i*4:])
	}

	state := [16]uint32{
		constants[0], constants[1], constants[2], constants[3],
		k[0], k[1], k[2], k[3], k[4], k[5], k[6], k[7],
		n, nonceWords[0], nonceWords[1], nonceWords[2],
	}

	working := state
	twentyRounds(&working)

	for i := range working {
		working[i] += state[i]
	}

	var out [BlockSize]byte
	for i, w := range working {
		wire.WriteU32(out[i*4:], w)
	}
	return out
}

// ExtendedBlock computes the n-th ChaCha20 block using the 64-bit-counter,
// 8-byte-nonce layout XChaCha20 uses once it has derived its subkey.
func ExtendedBlock(key [KeySize]byte, nonce [extendedNonceSize]byte, n uint64) [BlockSize]byte {
	k := loadKey(key)

	var nonceWords [2]uint32
	for i := range nonceWords {
		nonceWords[i] = wire.ReadU32(nonce[i*4:])
	}

	lo, hi := wire.SplitU64(n)

	state := [16]uint32{
		constants[0], constants[1], constants[2], constants[3],
		k[0], k[1], k[2], k[3], k[4], k[5], k[6], k[7],
		lo, hi, nonceWords[0], nonceWords[1],
	}

	working := state
	twentyRounds(&working)

	for i := range working {
		working[i] += state[i]
	}

	var out [BlockSize]byte
	for i, w := range working {
		wire.WriteU32(out[i*4:], w)
	}
	return out
}

// XORKeyStream XORs src with the IETF ChaCha20 keystream starting at block
// counter n and writes the result to dst. dst and src may alias (including
// fully overlapping, for in-place encryption/decryption); dst must be at
// least len(src) bytes.
//
// XORKeyStream panics if n would need to advance past the 32-bit counter
// space to cover all of src; callers that accept untrusted lengths must
// bound them against MaxBlocks themselves (see chachapoly.MaxPlaintextLen
// for the AEAD-level policy error this guards).
func XORKeyStream(key [KeySize]byte, nonce [NonceSize]byte, n uint32, dst, src []byte) {
	for len(src) > 0 {
		block := Block(key, nonce, n)

		chunk := len(src)
		if chunk > BlockSize {
			chunk = BlockSize
		}

		for i := 0; i < chunk; i++ {
			dst[i] = src[i] ^ block[i]
		}

		dst = dst[chunk:]
		src = src[chunk:]

		if len(src) == 0 {
			break
		}
		if n == 0xFFFFFFFF {
			panic(fmt.Sprintf("chacha20: block counter must not exceed %d", uint32(0xFFFFFFFF)))
		}
		n++
	}
}

// ExtendedXORKeyStream is XORKeyStream's counterpart for the 64-bit-counter
// block function, as used internally by XChaCha20.
func ExtendedXORKeyStream(key [KeySize]byte, nonce [extendedNonceSize]byte, n uint64, dst, src []byte) {
	for len(src) > 0 {
		block := ExtendedBlock(key, nonce, n)

		chunk := len(src)
		if chunk > BlockSize {
			chunk = BlockSize
		}

		for i := 0; i < chunk; i++ {
			dst[i] = src[i] ^ block[i]
		}

		dst = dst[chunk:]
		src = src[chunk:]

		if len(src) == 0 {
			break
		}
		if n == 0xFFFFFFFFFFFFFFFF {
			panic("chacha20: extended block counter must not exceed 2^64 - 1")
		}
		n++
	}
}
