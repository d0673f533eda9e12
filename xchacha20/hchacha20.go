// Package xchacha20 implements HChaCha20, the subkey-derivation step used to
// extend ChaCha20's 12-byte nonce into the 192-bit nonce of XChaCha20
// (https://datatracker.ietf.org/doc/html/draft-irtf-cfrg-xchacha-03), and
// XChaCha20 itself.
package xchacha20

import (
	"github.com/ctkcrypto/chachapoly/chacha20"
	"github.com/ctkcrypto/chachapoly/internal/wire"
)

// HNonceSize is the size (in bytes) of the nonce HChaCha20 takes.
const HNonceSize = 16

// constants mirror chacha20's "expand 32-byte k" state words; HChaCha20
// shares ChaCha20's permutation but not its feed-forward/serialization step.
var constants = [4]uint32{0x61707865, 0x3320646e, 0x79622d32, 0x6b206574}

// HChaCha20 derives a 32-byte subkey from key and a 16-byte nonce by running
// the ChaCha20 permutation over a state seeded with the nonce in place of a
// counter+IETF-nonce, then serializing the first and last rows of the
// resulting (un-feed-forwarded) state.
func HChaCha20(key [chacha20.KeySize]byte, nonce [HNonceSize]byte) [chacha20.KeySize]byte {
	var k [8]uint32
	for i := range k {
		k[i] = wire.ReadU32(key[i*4:])
	}

	var n [4]uint32
	for i := range n {
		n[i] = wire.ReadU32(nonce[i*4:])
	}

	state := [16]uint32{
		constants[0], constants[1], constants[2], constants[3],
		k[0], k[1], k[2], k[3], k[4], k[5], k[6], k[7],
		n[0], n[1], n[2], n[3],
	}

	chacha20.Permute(&state)

	var out [32]byte
	for i := 0; i < 4; i++ {
		wire.WriteU32(out[i*4:], state[i])
	}
	for i := 12; i < 16; i++ {
		wire.WriteU32(out[(i-12)*4+16:], state[i])
	}
	return out
}
