package token

import (
	"crypto/rand"
	"encoding/base64"
)

// Generate returns a crypto-secure random string of length n.
// The output alphabet is A-Z, a-z, 0-9, "-", and "_".
func Generate(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	// base64 emits four characters per three bytes, so the encoding
	// is always long enough to slice
	return base64.RawURLEncoding.EncodeToString(b)[0:n], nil
}
