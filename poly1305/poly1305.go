// Package poly1305 implements the Poly1305 one-time authenticator as
// specified in https://datatracker.ietf.org/doc/html/rfc8439, using a
// radix-2^26 field representation (five 32-bit limbs per 130-bit value) so
// that a block multiplication fits in 64-bit intermediates without
// overflow.
package poly1305

import (
	"github.com/ctkcrypto/chachapoly/internal/ctutil"
	"github.com/ctkcrypto/chachapoly/internal/wire"
)

// BlockSize is the size (in bytes) of the input Poly1305 processes at a time.
const BlockSize = 16

// KeySize is the required size (in bytes) of a Poly1305 key.
const KeySize = 32

// TagSize is the size (in bytes) of a Poly1305 tag.
const TagSize = 16

// rMask clears the bits RFC 8439 §2.5.1 requires cleared from r on load:
// the top four bits of bytes 3, 7, 11, 15 and the bottom two bits of bytes
// 4, 8, 12, expressed here as masks over the five 26-bit limb windows.
var rMask = [5]uint32{0x03FFFFFF, 0x03FFFF03, 0x03FFC0FF, 0x03F03FFF, 0x000FFFFF}

// state is the streaming Poly1305 core shared by Sum and the AEAD packages'
// internal chachapolyAuth-style three-call authentication.
type state struct {
	a [5]uint32 // accumulator
	r [5]uint32 // clamped key half
	u [5]uint32 // u[i] = 5*r[i], u[0] unused (stays 0)
	s [4]uint32 // second key half, as little-endian 32-bit words
}

func newState(key [KeySize]byte) *state {
	st := &state{}

	st.r[0] = (wire.ReadU32(key[0:]) >> 0) & rMask[0]
	st.r[1] = (wire.ReadU32(key[3:]) >> 2) & rMask[1]
	st.r[2] = (wire.ReadU32(key[6:]) >> 4) & rMask[2]
	st.r[3] = (wire.ReadU32(key[9:]) >> 6) & rMask[3]
	st.r[4] = (wire.ReadU32(key[12:]) >> 8) & rMask[4]

	st.s[0] = wire.ReadU32(key[16:])
	st.s[1] = wire.ReadU32(key[20:])
	st.s[2] = wire.ReadU32(key[24:])
	st.s[3] = wire.ReadU32(key[28:])

	st.u[1] = st.r[1] * 5
	st.u[2] = st.r[2] * 5
	st.u[3] = st.r[3] * 5
	st.u[4] = st.r[4] * 5

	return st
}

// update authenticates data, which may be any length. It pads any
// incomplete trailing block with zero bytes; isLast controls whether the
// high bit (the 0x01 byte RFC 8439 appends to a short final block) is
// applied to that trailing block. Passing isLast=true with a block that
// happens to be exactly BlockSize long is the full-block case and gets the
// ordinary high bit at offset 16, not the appended-byte convention.
func (st *state) update(data []byte, isLast bool) {
	var buf [BlockSize]byte

	for len(data) > 0 {
		n := len(data)
		if n > BlockSize {
			n = BlockSize
		}

		short := n < BlockSize
		if short {
			buf = [BlockSize]byte{}
			if isLast {
				buf[n] = 0x01
			}
		}
		copy(buf[:n], data[:n])

		a := &st.a
		a[0] += (wire.ReadU32(buf[0:]) >> 0) & 0x03FFFFFF
		a[1] += (wire.ReadU32(buf[3:]) >> 2) & 0x03FFFFFF
		a[2] += (wire.ReadU32(buf[6:]) >> 4) & 0x03FFFFFF
		a[3] += (wire.ReadU32(buf[9:]) >> 6) & 0x03FFFFFF
		if short && isLast {
			a[4] += (wire.ReadU32(buf[12:]) >> 8) | 0x00000000
		} else {
			a[4] += (wire.ReadU32(buf[12:]) >> 8) | 0x01000000
		}

		r, u := &st.r, &st.u

		var w [5]uint64
		w[0] = uint64(a[0])*uint64(r[0]) + uint64(a[1])*uint64(u[4]) + uint64(a[2])*uint64(u[3]) + uint64(a[3])*uint64(u[2]) + uint64(a[4])*uint64(u[1])
		w[1] = uint64(a[0])*uint64(r[1]) + uint64(a[1])*uint64(r[0]) + uint64(a[2])*uint64(u[4]) + uint64(a[3])*uint64(u[3]) + uint64(a[4])*uint64(u[2])
		w[2] = uint64(a[0])*uint64(r[2]) + uint64(a[1])*uint64(r[1]) + uint64(a[2])*uint64(r[0]) + uint64(a[3])*uint64(u[4]) + uint64(a[4])*uint64(u[3])
		w[3] = uint64(a[0])*uint64(r[3]) + uint64(a[1])*uint64(r[2]) + uint64(a[2])*uint64(r[1]) + uint64(a[3])*uint64(r[0]) + uint64(a[4])*uint64(u[4])
		w[4] = uint64(a[0])*uint64(r[4]) + uint64(a[1])*uint64(r[3]) + uint64(a[2])*uint64(r[2]) + uint64(a[3])*uint64(r[1]) + uint64(a[4])*uint64(r[0])

		var c uint64
		c = w[0] >> 26
		a[0] = uint32(w[0]) & 0x3FFFFFF
		w[1] += c
		c = w[1] >> 26
		a[1] = uint32(w[1]) & 0x3FFFFFF
		w[2] += c
		c = w[2] >> 26
		a[2] = uint32(w[2]) & 0x3FFFFFF
		w[3] += c
		c = w[3] >> 26
		a[3] = uint32(w[3]) & 0x3FFFFFF
		w[4] += c
		c = w[4] >> 26
		a[4] = uint32(w[4]) & 0x3FFFFFF

		a[0] += uint32(c) * 5
		a[1] += a[0] >> 26
		a[0] &= 0x3FFFFFF

		data = data[n:]
	}
}

// finish applies the final carry chain, the constant-time conditional
// subtraction of p = 2^130 - 5, and folds in s to produce the tag.
func (st *state) finish() [TagSize]byte {
	a := &st.a

	var c uint32
	c = a[1] >> 26
	a[1] &= 0x3ffffff
	a[2] += c
	c = a[2] >> 26
	a[2] &= 0x3ffffff
	a[3] += c
	c = a[3] >> 26
	a[3] &= 0x3ffffff
	a[4] += c
	c = a[4] >> 26
	a[4] &= 0x3ffffff
	a[0] += c * 5
	c = a[0] >> 26
	a[0] &= 0x3ffffff
	a[1] += c

	mux := ctutil.GtU32(a[0], 0x03FFFFFA)
	for i := 1; i < 5; i++ {
		mux &= ctutil.EqU32(a[i], 0x03FFFFFF)
	}

	carry := uint32(5)
	for i := 0; i < 5; i++ {
		t := a[i] + carry
		carry = t >> 26
		t &= 0x03FFFFFF
		a[i] = ctutil.SelectU32(mux, t, a[i])
	}

	var tag [TagSize]byte
	var word uint64

	word = uint64(a[0]) + uint64(a[1])<<26 + uint64(st.s[0])
	wire.WriteU32(tag[0:], uint32(word))

	word = word>>32 + uint64(a[2])<<20 + uint64(st.s[1])
	wire.WriteU32(tag[4:], uint32(word))

	word = word>>32 + uint64(a[3])<<14 + uint64(st.s[2])
	wire.WriteU32(tag[8:], uint32(word))

	word = word>>32 + uint64(a[4])<<8 + uint64(st.s[3])
	wire.WriteU32(tag[12:], uint32(word))

	return tag
}

// Sum computes the Poly1305 tag for msg under the one-time key. Reusing key
// across two different messages breaks the MAC's security guarantees; that
// policy is the caller's responsibility, not this function's.
func Sum(key [KeySize]byte, msg []byte) [TagSize]byte {
	st := newState(key)
	st.update(msg, true)
	return st.finish()
}

// ChachaPolyAuth authenticates aad, ciphertext and foot as three successive
// updates, the exact shape the ChaCha20-Poly1305 and XChaCha20-Poly1305
// AEAD constructions need (implicit zero padding between the three fields,
// isLast set only on the final, footer update; the footer is a full block,
// so every block, padded or not, gets the ordinary high bit). It is exported for
// use by the chachapoly and xchachapoly packages; it intentionally doesn't
// stand on its own as a generic streaming API beyond that one shape.
func ChachaPolyAuth(key [KeySize]byte, aad, ciphertext, foot []byte) [TagSize]byte {
	st := newState(key)
	st.update(aad, false)
	st.update(ciphertext, false)
	st.update(foot, true)
	return st.finish()
}
