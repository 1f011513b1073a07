// Package handoff implements the one-time identity handoff protocol: a
// recipient identifier is carried across the untrusted web boundary only as
// an AES-256-GCM ciphertext (euid), accompanied by a signed, time-boxed
// token bound to that ciphertext.
package handoff

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Predefined errors for euid encoding and decoding.
var (
	// ErrDecrypt covers every decryption failure: bad encoding, short
	// payload, tag mismatch, invalid plaintext. Callers must not be able
	// to tell these apart.
	ErrDecrypt = errors.New("identifier decryption failed")
)

const (
	nonceSize = 12
	tagSize   = 16
	// minPayloadSize is the smallest decodable euid: nonce plus tag with
	// an empty ciphertext.
	minPayloadSize = nonceSize + tagSize
)

// Codec encrypts and decrypts recipient identifiers under a fixed
// AES-256 key.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec creates a Codec from a 32-byte AES-256 key.
func NewCodec(key []byte) (*Codec, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create GCM: %w", err)
	}
	return &Codec{aead: aead}, nil
}

// EncryptIdentifier encrypts a recipient identifier with a fresh random
// nonce and returns base64url (no padding) of nonce || ciphertext || tag.
func (c *Codec) EncryptIdentifier(id string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, nonceSize+len(id)+c.aead.Overhead())
	out = append(out, nonce...)
	out = c.aead.Seal(out, nonce, []byte(id), nil)

	return base64.RawURLEncoding.EncodeToString(out), nil
}

// DecryptIdentifier reverses EncryptIdentifier. Every failure mode returns
// ErrDecrypt; no partial plaintext ever escapes.
func (c *Codec) DecryptIdentifier(euid string) (string, error) {
	payload, err := base64.RawURLEncoding.DecodeString(euid)
	if err != nil {
		return "", ErrDecrypt
	}
	if len(payload) < minPayloadSize {
		return "", ErrDecrypt
	}

	nonce := payload[:nonceSize]
	plaintext, err := c.aead.Open(nil, nonce, payload[nonceSize:], nil)
	if err != nil {
		return "", ErrDecrypt
	}
	if !utf8.Valid(plaintext) {
		return "", ErrDecrypt
	}

	return string(plaintext), nil
}
