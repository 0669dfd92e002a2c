package generator

import (
	"crypto/rand"

	"github.com/jxskiss/base62"
)

// GenerateCode returns a random alphanumeric short code of exactly the given length.
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}

	// base62 yields ~1.34 chars per byte, so length bytes are always enough.
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	code := base62.EncodeToString(b)
	for len(code) < length {
		code = "0" + code
	}

	return code[len(code)-length:], nil
}
