package push

import (
	"bytes"
	"crypto/ecdh"
	"crypto/rand"
	"encoding/base64"
	"testing"
)

func TestDecodeApplicationServerKey(t *testing.T) {
	key, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	raw := key.PublicKey().Bytes()

	encodings := map[string]string{
		"raw_url":    base64.RawURLEncoding.EncodeToString(raw),
		"padded_url": base64.URLEncoding.EncodeToString(raw),
		"standard":   base64.StdEncoding.EncodeToString(raw),
		"whitespace": "  " + base64.RawURLEncoding.EncodeToString(raw) + "\n",
	}

	for name, encoded := range encodings {
		t.Run(name, func(t *testing.T) {
			got, err := DecodeApplicationServerKey(encoded)
			if err != nil {
				t.Fatalf("DecodeApplicationServerKey: %v", err)
			}
			if !bytes.Equal(got, raw) {
				t.Fatal("decoded key does not match")
			}
		})
	}
}

func TestDecodeApplicationServerKeyRejectsInvalid(t *testing.T) {
	tests := map[string]string{
		"empty":       "",
		"bad_base64":  "@@@@",
		"wrong_size":  base64.RawURLEncoding.EncodeToString([]byte("short key")),
		"compressed":  base64.RawURLEncoding.EncodeToString(append([]byte{0x02}, make([]byte, 32)...)),
		"bad_prefix":  base64.RawURLEncoding.EncodeToString(append([]byte{0x05}, make([]byte, 64)...)),
		"placeholder": "TODO_YOUR_VAPID_PUBLIC_KEY",
	}

	for name, encoded := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeApplicationServerKey(encoded); err == nil {
				t.Fatalf("expected error for %q", encoded)
			}
		})
	}
}
