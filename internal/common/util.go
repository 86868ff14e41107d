// Package common provides small helpers for handling secret byte material:
// random generation and wiping.
package common

import (
	"crypto/rand"
	"fmt"
)

// GenerateRandByteArray returns size bytes read from the system CSPRNG.
//
// A non-positive size yields an empty, non-nil slice.
func GenerateRandByteArray(size int) ([]byte, error) {
	if size <= 0 {
		return []byte{}, nil
	}
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return b, nil
}

// WipeByteArray overwrites the contents of the provided byte slice with zeros.
// Use it to drop salts, PINs and derived keys from memory after use.
//
// If the slice is nil, the function does nothing.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// CloneBytes returns a copy of b that does not share its backing array.
func CloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
