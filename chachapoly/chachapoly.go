// Package chachapoly implements the ChaCha20-Poly1305 AEAD construction
// from https://datatracker.ietf.org/doc/html/rfc8439: a 96-bit nonce, a
// 32-bit block counter starting at 1 for the ciphertext (block 0 derives
// the one-time Poly1305 key), and a tag over AAD, ciphertext and their
// little-endian length footer.
package chachapoly

import (
	"errors"
	"fmt"

	"github.com/ctkcrypto/chachapoly/chacha20"
	"github.com/ctkcrypto/chachapoly/internal/ctutil"
	"github.com/ctkcrypto/chachapoly/internal/wire"
	"github.com/ctkcrypto/chachapoly/poly1305"
)

// KeySize is the required size (in bytes) of a ChaCha20-Poly1305 key.
const KeySize = chacha20.KeySize

// NonceSize is the required size (in bytes) of a ChaCha20-Poly1305 nonce.
const NonceSize = chacha20.NonceSize

// TagSize is the size (in bytes) of the authentication tag Seal appends.
const TagSize = poly1305.TagSize

// MaxPlaintextLen is the largest plaintext Seal/Open will process with one
// key/nonce pair: the 32-bit block counter used for the ciphertext starts
// at 1, so only 2^32-1 blocks remain available before it would wrap.
const MaxPlaintextLen = (uint64(1)<<32 - 1) * chacha20.BlockSize

// ErrInvalidData reports that Open's input failed authentication, or was
// too short to ever have been a valid sealed message. It carries no
// details: an attacker must learn nothing from the failure beyond "it
// failed".
var ErrInvalidData = errors.New("chachapoly: invalid data")

// APIMisuseError reports a caller error: a wrong-sized key or nonce, an
// undersized buffer, or a plaintext/ciphertext beyond MaxPlaintextLen.
// Unlike ErrInvalidData, these are programming mistakes, not the result of
// adversarial input.
type APIMisuseError struct{ Msg string }

func (e APIMisuseError) Error() string { return fmt.Sprintf("chachapoly: %s", e.Msg) }

func footer(aadLen, ctLen int) [16]byte {
	var foot [16]byte
	wire.WriteU64(foot[0:8], uint64(aadLen))
	wire.WriteU64(foot[8:16], uint64(ctLen))
	return foot
}

func polyKey(key [KeySize]byte, nonce [NonceSize]byte) [poly1305.KeySize]byte {
	var pkey [poly1305.KeySize]byte
	chacha20.XORKeyStream(key, nonce, 0, pkey[:], pkey[:])
	return pkey
}

// Seal encrypts dst[:plaintextLen] in place and appends a TagSize-byte
// authentication tag covering aad and the ciphertext. dst must have at
// least plaintextLen+TagSize bytes of capacity already filled in its first
// plaintextLen bytes (i.e. len(dst) >= plaintextLen+TagSize). It returns
// the total length written, plaintextLen+TagSize.
func Seal(dst, key, nonce []byte, plaintextLen int, aad []byte) (int, error) {
	if len(key) != KeySize {
		return 0, APIMisuseError{"Invalid key length"}
	}
	if len(nonce) != NonceSize {
		return 0, APIMisuseError{"Invalid nonce length"}
	}
	if uint64(plaintextLen) > MaxPlaintextLen {
		return 0, APIMisuseError{"Too much data"}
	}
	if plaintextLen+TagSize > len(dst) {
		return 0, APIMisuseError{"Buffer is too small"}
	}

	var k [KeySize]byte
	var n [NonceSize]byte
	copy(k[:], key)
	copy(n[:], nonce)

	data := dst[:plaintextLen]
	tag := dst[plaintextLen : plaintextLen+TagSize]

	chacha20.XORKeyStream(k, n, 1, data, data)

	foot := footer(len(aad), len(data))
	pkey := polyKey(k, n)
	mac := poly1305.ChachaPolyAuth(pkey, aad, data, foot[:])
	copy(tag, mac[:])

	return plaintextLen + TagSize, nil
}

// SealTo copies plaintext into dst and seals it in place, so copying and
// in-place callers share the same validation and encryption path.
func SealTo(dst, plaintext, key, nonce, aad []byte) (int, error) {
	if len(plaintext) > len(dst) {
		return 0, APIMisuseError{"Buffer is too small"}
	}
	copy(dst[:len(plaintext)], plaintext)
	return Seal(dst, key, nonce, len(plaintext), aad)
}

// Open authenticates and decrypts dst[:ciphertextLen], which must hold the
// ciphertext followed by its TagSize-byte tag. On success it decrypts the
// leading ciphertextLen-TagSize bytes of dst in place and returns their
// length. On authentication failure dst is left untouched and the error is
// ErrInvalidData.
func Open(dst, key, nonce []byte, ciphertextLen int, aad []byte) (int, error) {
	if len(key) != KeySize {
		return 0, APIMisuseError{"Invalid key length"}
	}
	if len(nonce) != NonceSize {
		return 0, APIMisuseError{"Invalid nonce length"}
	}
	if ciphertextLen < TagSize {
		return 0, ErrInvalidData
	}
	if uint64(ciphertextLen-TagSize) > MaxPlaintextLen {
		return 0, ErrInvalidData
	}
	if ciphertextLen > len(dst) {
		return 0, APIMisuseError{"Buffer is too small"}
	}

	var k [KeySize]byte
	var n [NonceSize]byte
	copy(k[:], key)
	copy(n[:], nonce)

	dataLen := ciphertextLen - TagSize
	data := dst[:dataLen]
	org := dst[dataLen:ciphertextLen]

	foot := footer(len(aad), dataLen)
	pkey := polyKey(k, n)
	mac := poly1305.ChachaPolyAuth(pkey, aad, data, foot[:])

	if !ctutil.Equal(mac[:], org) {
		return 0, ErrInvalidData
	}

	chacha20.XORKeyStream(k, n, 1, data, data)
	return dataLen, nil
}

// OpenTo copies ciphertext into dst and opens it in place, mirroring
// SealTo's shared validation-and-decryption path.
func OpenTo(dst, ciphertext, key, nonce, aad []byte) (int, error) {
	if len(ciphertext) > len(dst) {
		return 0, APIMisuseError{"Buffer is too small"}
	}
	copy(dst[:len(ciphertext)], ciphertext)
	return Open(dst, key, nonce, len(ciphertext), aad)
}
