// Package fieldmask obscures PII-like columns before they reach the
// database. The transform is reversible symmetric crypto keyed by a static
// secret: it is an at-rest obfuscation policy, not a security boundary,
// and is documented as such. The deterministic variant exists so that a
// masked column can still carry a unique index.
package fieldmask

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
)

// Masker is the pluggable obfuscation provider.
type Masker interface {
	// Mask obscures a value with a random IV; equal inputs produce
	// different outputs.
	Mask(plain string) (string, error)
	// MaskDeterministic obscures a value such that equal inputs always
	// produce the same output.
	MaskDeterministic(plain string) (string, error)
	// Unmask reverses either variant.
	Unmask(masked string) (string, error)
}

var ErrInvalidMaskedValue = errors.New("fieldmask: value is not a valid masked string")

// AESMasker implements Masker with AES-CTR. The key must be 16, 24 or 32
// bytes. Output layout is base64(iv || ciphertext).
type AESMasker struct {
	block cipher.Block
	key   []byte
}

// NewAESMasker builds a masker from the configured key.
func NewAESMasker(key []byte) (*AESMasker, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return &AESMasker{block: block, key: key}, nil
}

func (m *AESMasker) seal(plain string, iv []byte) string {
	out := make([]byte, aes.BlockSize+len(plain))
	copy(out, iv)
	stream := cipher.NewCTR(m.block, iv)
	stream.XORKeyStream(out[aes.BlockSize:], []byte(plain))
	return base64.StdEncoding.EncodeToString(out)
}

// Mask obscures plain with a random IV.
func (m *AESMasker) Mask(plain string) (string, error) {
	iv := make([]byte, aes.BlockSize)
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}
	return m.seal(plain, iv), nil
}

// MaskDeterministic derives the IV from an HMAC of the plaintext, so the
// same input always masks to the same output. Used for columns under a
// unique constraint (email).
func (m *AESMasker) MaskDeterministic(plain string) (string, error) {
	mac := hmac.New(sha256.New, m.key)
	mac.Write([]byte(plain))
	iv := mac.Sum(nil)[:aes.BlockSize]
	return m.seal(plain, iv), nil
}

// Unmask reverses Mask or MaskDeterministic.
func (m *AESMasker) Unmask(masked string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(masked)
	if err != nil {
		return "", ErrInvalidMaskedValue
	}
	if len(raw) < aes.BlockSize {
		return "", ErrInvalidMaskedValue
	}
	iv, ct := raw[:aes.BlockSize], raw[aes.BlockSize:]
	plain := make([]byte, len(ct))
	stream := cipher.NewCTR(m.block, iv)
	stream.XORKeyStream(plain, ct)
	return string(plain), nil
}

// Noop passes values through unchanged. Useful for tests and local runs.
type Noop struct{}

func (Noop) Mask(plain string) (string, error)              { return plain, nil }
func (Noop) MaskDeterministic(plain string) (string, error) { return plain, nil }
func (Noop) Unmask(masked string) (string, error)           { return masked, nil }

var (
	_ Masker = (*AESMasker)(nil)
	_ Masker = Noop{}
)
