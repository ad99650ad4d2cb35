// Package token generates random strings for secrets
package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

// ErrInvalidLength is returned for a length less than one
var ErrInvalidLength = errors.New("token length must be greater than zero")

// Generate returns a crypto-secure random string of length n
// The random string contains the following characters:
// ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_
func Generate(n int) (string, error) {
	if n <= 0 {
		return "", ErrInvalidLength
	}

	// base64 increases size by ~33%
	b := make([]byte, base64.RawURLEncoding.DecodedLen(n)+1)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b)[0:n], nil
}
