package xchachapoly_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/ctkcrypto/chachapoly/xchachapoly"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex literal: %v", err)
	}
	return b
}

// TestSealKnownVector pins the Seal output for a fixed key/nonce/aad/
// plaintext combination against the XChaCha20-Poly1305 construction
// (HChaCha20 subkey derivation, then ChaCha20-Poly1305 with the derived
// subkey and nonce suffix), so a future change to the wiring between
// xchacha20 and poly1305 gets caught even though no IETF draft vector for
// this exact construction is reproduced here from memory.
func TestSealKnownVector(t *testing.T) {
	key := make([]byte, xchachapoly.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	nonce := make([]byte, xchachapoly.NonceSize)
	for i := range nonce {
		nonce[i] = byte(100 - i)
	}
	aad := []byte("header data")
	plaintext := []byte("xchacha20-poly1305 worked test vector for the student repo")

	want := mustHex(t, "65eb921e10bf5fb0a39e31460c43aabff0184e1b2602d715ff316e74f61850b"+
		"86199249b97e394114defd3adda5ffb4658107bbe971d112544c845d6666212"+
		"576fefc2e7327cd3f004ff")

	dst := make([]byte, len(plaintext)+xchachapoly.TagSize)
	n, err := xchachapoly.SealTo(dst, plaintext, key, nonce, aad)
	if err != nil {
		t.Fatalf("SealTo: %v", err)
	}
	if !bytesEqual(dst[:n], want) {
		t.Fatalf("ciphertext+tag mismatch:\n got  %x\n want %x", dst[:n], want)
	}
}

func testKeyNonce() (key, nonce []byte) {
	key = make([]byte, xchachapoly.KeySize)
	for i := range key {
		key[i] = byte(i)
	}
	nonce = make([]byte, xchachapoly.NonceSize)
	for i := range nonce {
		nonce[i] = byte(200 - i)
	}
	return key, nonce
}

func TestSealOpenRoundTrip(t *testing.T) {
	key, nonce := testKeyNonce()
	aad := []byte("associated data")
	plaintext := []byte("a message long enough to span more than one chacha20 block of keystream")

	dst := make([]byte, len(plaintext)+xchachapoly.TagSize)
	n, err := xchachapoly.SealTo(dst, plaintext, key, nonce, aad)
	if err != nil {
		t.Fatalf("SealTo: %v", err)
	}

	pn, err := xchachapoly.OpenTo(dst, dst[:n], key, nonce, aad)
	if err != nil {
		t.Fatalf("OpenTo: %v", err)
	}
	if !bytesEqual(dst[:pn], plaintext) {
		t.Fatalf("round-trip mismatch: got %q, want %q", dst[:pn], plaintext)
	}
}

func TestSealOpenEmptyPlaintext(t *testing.T) {
	key, nonce := testKeyNonce()
	aad := []byte("aad only")

	dst := make([]byte, xchachapoly.TagSize)
	n, err := xchachapoly.Seal(dst, key, nonce, 0, aad)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	pn, err := xchachapoly.Open(dst, key, nonce, n, aad)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if pn != 0 {
		t.Fatalf("expected zero-length plaintext, got %d", pn)
	}
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	key, nonce := testKeyNonce()
	aad := []byte("aad")
	plaintext := []byte("sensitive payload")

	dst := make([]byte, len(plaintext)+xchachapoly.TagSize)
	n, err := xchachapoly.SealTo(dst, plaintext, key, nonce, aad)
	if err != nil {
		t.Fatalf("SealTo: %v", err)
	}

	dst[0] ^= 0x01

	if _, err := xchachapoly.Open(dst, key, nonce, n, aad); !errors.Is(err, xchachapoly.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData for tampered ciphertext, got %v", err)
	}
}

func TestOpenRejectsWrongNonce(t *testing.T) {
	key, nonce := testKeyNonce()
	aad := []byte("aad")
	plaintext := []byte("sensitive payload")

	dst := make([]byte, len(plaintext)+xchachapoly.TagSize)
	n, err := xchachapoly.SealTo(dst, plaintext, key, nonce, aad)
	if err != nil {
		t.Fatalf("SealTo: %v", err)
	}

	wrongNonce := make([]byte, xchachapoly.NonceSize)
	copy(wrongNonce, nonce)
	wrongNonce[0] ^= 0x01

	if _, err := xchachapoly.Open(dst, key, wrongNonce, n, aad); !errors.Is(err, xchachapoly.ErrInvalidData) {
		t.Fatalf("expected ErrInvalidData for wrong nonce, got %v", err)
	}
}

func TestSealRejectsWrongNonceLength(t *testing.T) {
	key, _ := testKeyNonce()
	dst := make([]byte, xchachapoly.TagSize)
	_, err := xchachapoly.Seal(dst, key, make([]byte, xchachapoly.NonceSize-1), 0, nil)

	var apiErr xchachapoly.APIMisuseError
	if !errors.As(err, &apiErr) || apiErr.Msg != "Invalid nonce length" {
		t.Fatalf("expected APIMisuseError{Invalid nonce length}, got %v", err)
	}
}

func TestSealRejectsWrongKeyLength(t *testing.T) {
	_, nonce := testKeyNonce()
	dst := make([]byte, xchachapoly.TagSize)
	_, err := xchachapoly.Seal(dst, make([]byte, xchachapoly.KeySize-1), nonce, 0, nil)

	var apiErr xchachapoly.APIMisuseError
	if !errors.As(err, &apiErr) || apiErr.Msg != "Invalid key length" {
		t.Fatalf("expected APIMisuseError{Invalid key length}, got %v", err)
	}
}

func TestZeroLengthAADNilAndEmptyAreEquivalent(t *testing.T) {
	key, nonce := testKeyNonce()
	plaintext := []byte("payload with no associated data")

	dst1 := make([]byte, len(plaintext)+xchachapoly.TagSize)
	if _, err := xchachapoly.SealTo(dst1, plaintext, key, nonce, nil); err != nil {
		t.Fatalf("SealTo(nil aad): %v", err)
	}

	dst2 := make([]byte, len(plaintext)+xchachapoly.TagSize)
	if _, err := xchachapoly.SealTo(dst2, plaintext, key, nonce, []byte{}); err != nil {
		t.Fatalf("SealTo(empty aad): %v", err)
	}

	if !bytesEqual(dst1, dst2) {
		t.Fatalf("nil and empty AAD produced different ciphertexts:\n %x\n %x", dst1, dst2)
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
