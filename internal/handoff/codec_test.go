package handoff

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	copy(key, "0123456789abcdef0123456789abcdef")
	return key
}

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(testKey(t))
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	return c
}

func TestNewCodec_InvalidKeySize(t *testing.T) {
	if _, err := NewCodec(make([]byte, 16)); err == nil {
		t.Error("expected error for 16-byte key, AES-256 requires 32")
	}
	if _, err := NewCodec(nil); err == nil {
		t.Error("expected error for nil key")
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	ids := []string{"42", "123456789", "recipient-with-text-id", ""}
	for _, id := range ids {
		t.Run("id="+id, func(t *testing.T) {
			euid, err := c.EncryptIdentifier(id)
			if err != nil {
				t.Fatalf("EncryptIdentifier: %v", err)
			}

			got, err := c.DecryptIdentifier(euid)
			if err != nil {
				t.Fatalf("DecryptIdentifier: %v", err)
			}
			if got != id {
				t.Errorf("round trip = %q, want %q", got, id)
			}
		})
	}
}

func TestEncryptIdentifier_FreshNonce(t *testing.T) {
	c := newTestCodec(t)

	a, err := c.EncryptIdentifier("42")
	if err != nil {
		t.Fatalf("EncryptIdentifier: %v", err)
	}
	b, err := c.EncryptIdentifier("42")
	if err != nil {
		t.Fatalf("EncryptIdentifier: %v", err)
	}
	if a == b {
		t.Error("two encryptions of the same id produced identical euids, nonce is not fresh")
	}
}

func TestEncryptIdentifier_URLSafeNoPadding(t *testing.T) {
	c := newTestCodec(t)

	euid, err := c.EncryptIdentifier("some recipient id")
	if err != nil {
		t.Fatalf("EncryptIdentifier: %v", err)
	}
	if strings.ContainsAny(euid, "+/=") {
		t.Errorf("euid %q contains non-url-safe or padding characters", euid)
	}
}

func TestDecryptIdentifier_Tampering(t *testing.T) {
	c := newTestCodec(t)

	euid, err := c.EncryptIdentifier("42")
	if err != nil {
		t.Fatalf("EncryptIdentifier: %v", err)
	}
	payload, err := base64.RawURLEncoding.DecodeString(euid)
	if err != nil {
		t.Fatalf("decode euid: %v", err)
	}

	// Flip one bit at every byte position; authentication must reject all.
	for i := range payload {
		tampered := make([]byte, len(payload))
		copy(tampered, payload)
		tampered[i] ^= 0x01

		_, err := c.DecryptIdentifier(base64.RawURLEncoding.EncodeToString(tampered))
		if !errors.Is(err, ErrDecrypt) {
			t.Fatalf("bit flip at byte %d: got err=%v, want ErrDecrypt", i, err)
		}
	}
}

func TestDecryptIdentifier_Garbage(t *testing.T) {
	c := newTestCodec(t)

	tests := []struct {
		name string
		euid string
	}{
		{"empty", ""},
		{"not base64url", "!!!not-base64!!!"},
		{"too short", base64.RawURLEncoding.EncodeToString(make([]byte, 27))},
		{"exactly too short", base64.RawURLEncoding.EncodeToString(make([]byte, minPayloadSize-1))},
		{"random bytes", base64.RawURLEncoding.EncodeToString(make([]byte, 48))},
		{"padding present", "AAAA=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.DecryptIdentifier(tt.euid)
			if !errors.Is(err, ErrDecrypt) {
				t.Errorf("got err=%v, want ErrDecrypt", err)
			}
			if got != "" {
				t.Errorf("got partial plaintext %q on failure", got)
			}
		})
	}
}

func TestDecryptIdentifier_WrongKey(t *testing.T) {
	c1 := newTestCodec(t)

	otherKey := make([]byte, 32)
	copy(otherKey, "ffffffffffffffffffffffffffffffff")
	c2, err := NewCodec(otherKey)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	euid, err := c1.EncryptIdentifier("42")
	if err != nil {
		t.Fatalf("EncryptIdentifier: %v", err)
	}

	if _, err := c2.DecryptIdentifier(euid); !errors.Is(err, ErrDecrypt) {
		t.Errorf("decryption under a different key: got err=%v, want ErrDecrypt", err)
	}
}

func TestDecryptIdentifier_InvalidUTF8(t *testing.T) {
	c := newTestCodec(t)

	euid, err := c.EncryptIdentifier(string([]byte{0xff, 0xfe}))
	if err != nil {
		t.Fatalf("EncryptIdentifier: %v", err)
	}

	if _, err := c.DecryptIdentifier(euid); !errors.Is(err, ErrDecrypt) {
		t.Errorf("non-UTF-8 plaintext: got err=%v, want ErrDecrypt", err)
	}
}
