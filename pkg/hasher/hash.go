package hasher

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex encoded SHA-256 of s.
func Hash(s string) string {
	return SumBytes([]byte(s))
}

// SumBytes returns the hex encoded SHA-256 of b.
// Uploaded files are fingerprinted with it.
func SumBytes(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}

// Short returns the first n characters of a fingerprint, or all of it when shorter.
func Short(fingerprint string, n int) string {
	if n <= 0 || n >= len(fingerprint) {
		return fingerprint
	}
	return fingerprint[:n]
}
