package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashAll hashes several inputs in order. It equals [HashDigests] over the
// [Hash] of each input, so inputs hashed while streaming get the same value.
func HashAll(inputs ...[]byte) string {
	digests := make([]string, len(inputs))
	for i, in := range inputs {
		digests[i] = Hash(in)
	}
	return HashDigests(digests...)
}

// HashDigests combines per-input hex digests in order. Digests have a fixed
// length, so input boundaries are part of the result.
func HashDigests(digests ...string) string {
	h := sha256.New()
	for _, d := range digests {
		io.WriteString(h, d)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashReader streams r through SHA-256 and returns the hex digest.
func HashReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
