// Package chachapoly is a thin dispatch layer over this module's
// ChaCha20-Poly1305 and XChaCha20-Poly1305 AEAD packages and its Poly1305
// MAC package. It mirrors the AeadCipher and Mac parts of a
// Cipher/AeadCipher/Mac abstraction (there is no stream-cipher interface), so
// callers that want to select a construction at runtime, rather than
// importing a concrete package, have somewhere to do that. All of the
// actual byte-level behavior lives in the chacha20, xchacha20, poly1305,
// chachapoly and xchachapoly packages; this file adds no cryptography of
// its own.
package chachapoly

import (
	ietf "github.com/ctkcrypto/chachapoly/chachapoly"
	"github.com/ctkcrypto/chachapoly/poly1305"
	xchacha "github.com/ctkcrypto/chachapoly/xchachapoly"
)

// Mac is a one-shot message authentication code.
type Mac interface {
	// Sum returns the authentication tag for data under key.
	Sum(key, data []byte) ([]byte, error)
}

// AEAD is an authenticated-encryption-with-associated-data construction
// operating on the in-place buffer discipline the underlying packages use:
// Seal/Open read and write through dst, rather than allocating a fresh
// result slice per call.
type AEAD interface {
	// Seal encrypts dst[:plaintextLen] in place and appends the
	// authentication tag, returning the total bytes written.
	Seal(dst, key, nonce []byte, plaintextLen int, aad []byte) (int, error)
	// Open authenticates and decrypts dst[:ciphertextLen] in place,
	// returning the plaintext length.
	Open(dst, key, nonce []byte, ciphertextLen int, aad []byte) (int, error)
	// KeySize is the required key length in bytes.
	KeySize() int
	// NonceSize is the required nonce length in bytes.
	NonceSize() int
	// Overhead is the number of bytes Seal adds beyond the plaintext.
	Overhead() int
}

type chachaPolyIETF struct{}

// NewChaChaPolyIETF returns an AEAD backed by the chachapoly package (RFC
// 8439 ChaCha20-Poly1305, 96-bit nonce).
func NewChaChaPolyIETF() AEAD { return chachaPolyIETF{} }

func (chachaPolyIETF) Seal(dst, key, nonce []byte, plaintextLen int, aad []byte) (int, error) {
	return ietf.Seal(dst, key, nonce, plaintextLen, aad)
}

func (chachaPolyIETF) Open(dst, key, nonce []byte, ciphertextLen int, aad []byte) (int, error) {
	return ietf.Open(dst, key, nonce, ciphertextLen, aad)
}

func (chachaPolyIETF) KeySize() int   { return ietf.KeySize }
func (chachaPolyIETF) NonceSize() int { return ietf.NonceSize }
func (chachaPolyIETF) Overhead() int  { return ietf.TagSize }

type xChaChaPoly struct{}

// NewXChaChaPoly returns an AEAD backed by the xchachapoly package
// (XChaCha20-Poly1305, 192-bit nonce).
func NewXChaChaPoly() AEAD { return xChaChaPoly{} }

func (xChaChaPoly) Seal(dst, key, nonce []byte, plaintextLen int, aad []byte) (int, error) {
	return xchacha.Seal(dst, key, nonce, plaintextLen, aad)
}

func (xChaChaPoly) Open(dst, key, nonce []byte, ciphertextLen int, aad []byte) (int, error) {
	return xchacha.Open(dst, key, nonce, ciphertextLen, aad)
}

func (xChaChaPoly) KeySize() int   { return xchacha.KeySize }
func (xChaChaPoly) NonceSize() int { return xchacha.NonceSize }
func (xChaChaPoly) Overhead() int  { return xchacha.TagSize }

type poly1305Mac struct{}

// NewPoly1305 returns a Mac backed by the poly1305 package. The key must be
// poly1305.KeySize bytes; it is a one-time key and must never be reused
// across two different messages.
func NewPoly1305() Mac { return poly1305Mac{} }

func (poly1305Mac) Sum(key, data []byte) ([]byte, error) {
	if len(key) != poly1305.KeySize {
		return nil, APIMisuseError{"Invalid key length"}
	}
	var k [poly1305.KeySize]byte
	copy(k[:], key)
	tag := poly1305.Sum(k, data)
	return tag[:], nil
}

// APIMisuseError mirrors chachapoly.APIMisuseError for facade-level callers
// that only import the root package.
type APIMisuseError struct{ Msg string }

func (e APIMisuseError) Error() string { return "chachapoly: " + e.Msg }
