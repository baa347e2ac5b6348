package push

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// uncompressedP256KeyLen is the size of an uncompressed P-256 public key
// (0x04 || X || Y), which is what push services expect as the application
// server key.
const uncompressedP256KeyLen = 65

// DecodeApplicationServerKey converts a base64url VAPID public key into raw
// bytes. Padding is optional and the standard base64 alphabet is accepted.
func DecodeApplicationServerKey(encoded string) ([]byte, error) {
	normalized := strings.TrimSpace(encoded)
	normalized = strings.NewReplacer("+", "-", "/", "_").Replace(normalized)
	normalized = strings.TrimRight(normalized, "=")
	if normalized == "" {
		return nil, fmt.Errorf("application server key is empty")
	}

	raw, err := base64.RawURLEncoding.DecodeString(normalized)
	if err != nil {
		return nil, fmt.Errorf("decode application server key: %w", err)
	}
	if len(raw) != uncompressedP256KeyLen || raw[0] != 0x04 {
		return nil, fmt.Errorf("application server key must be a %d-byte uncompressed P-256 point, got %d bytes", uncompressedP256KeyLen, len(raw))
	}
	return raw, nil
}
