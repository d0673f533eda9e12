package xchacha20

import "github.com/ctkcrypto/chachapoly/chacha20"

// KeySize is the required size (in bytes) of an XChaCha20 key.
const KeySize = chacha20.KeySize

// NonceSize is the required size (in bytes) of an XChaCha20 nonce.
const NonceSize = 24

// extendedNonceSize mirrors chacha20's internal 8-byte nonce for the
// 64-bit-counter block function XChaCha20 streams with.
const extendedNonceSize = 8

// XORKeyStream XORs src with the XChaCha20 keystream for key, nonce and
// starting block counter n, writing the result to dst. dst and src may
// alias for in-place use.
//
// The 24-byte nonce is split into a 16-byte HChaCha20 prefix, used to derive
// a per-message subkey, and an 8-byte suffix streamed with that subkey
// through the 64-bit-counter ChaCha20 block function.
func XORKeyStream(key [KeySize]byte, nonce [NonceSize]byte, n uint64, dst, src []byte) {
	var hNonce [HNonceSize]byte
	copy(hNonce[:], nonce[:16])

	subKey := HChaCha20(key, hNonce)

	var subNonce [extendedNonceSize]byte
	copy(subNonce[:], nonce[16:24])

	chacha20.ExtendedXORKeyStream(subKey, subNonce, n, dst, src)
}
