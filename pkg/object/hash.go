package object

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
)

// HashBytes computes the SHA-1 digest of data.
func HashBytes(data []byte) Hash {
	return sha1.Sum(data)
}

// HashObject computes the hash of the envelope "type len\0payload".
// The digest always covers the whole encoded stream, never the
// payload alone.
func HashObject(objType Type, payload []byte) Hash {
	h := sha1.New()
	fmt.Fprintf(h, "%s %d\x00", objType, len(payload))
	h.Write(payload)
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// Hex renders the hash as 40 lowercase hex characters.
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

func (h Hash) String() string {
	return h.Hex()
}

// Short returns the abbreviated hex form used in human-facing output.
func (h Hash) Short() string {
	return h.Hex()[:8]
}

// ParseHash decodes a 40-character lowercase (or uppercase) hex string
// into a Hash. Anything of the wrong length or with non-hex characters
// fails with ErrInvalidHash.
func ParseHash(s string) (Hash, error) {
	var out Hash
	if len(s) != HashSize*2 {
		return out, fmt.Errorf("parse hash %q: %w: want %d hex chars, got %d", s, ErrInvalidHash, HashSize*2, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return out, fmt.Errorf("parse hash %q: %w: %v", s, ErrInvalidHash, err)
	}
	copy(out[:], raw)
	return out, nil
}

// HashFromBytes copies a raw 20-byte digest into a Hash.
func HashFromBytes(raw []byte) (Hash, error) {
	var out Hash
	if len(raw) != HashSize {
		return out, fmt.Errorf("raw hash: %w: want %d bytes, got %d", ErrInvalidHash, HashSize, len(raw))
	}
	copy(out[:], raw)
	return out, nil
}
