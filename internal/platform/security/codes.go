package security

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"math/big"
)

// CodeHasher computes keyed hashes of one-time codes so the plaintext
// code never has to be stored. Same code + same secret always yields the
// same hash, which is what makes equality-based verification work.
type CodeHasher struct {
	secret []byte
}

func NewCodeHasher(secret string) *CodeHasher {
	return &CodeHasher{secret: []byte(secret)}
}

func (h *CodeHasher) Hash(code string) string {
	mac := hmac.New(sha512.New, h.secret)
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

// Equal compares a freshly computed hash with a stored one without
// leaking timing information.
func (h *CodeHasher) Equal(code, storedHash string) bool {
	return hmac.Equal([]byte(h.Hash(code)), []byte(storedHash))
}

// RandomDigits returns an n-digit decimal string drawn uniformly from
// [0, 10^n), zero-padded.
func RandomDigits(n int) (string, error) {
	if n <= 0 {
		n = 6
	}
	max := big.NewInt(1)
	for i := 0; i < n; i++ {
		max.Mul(max, big.NewInt(10))
	}
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", n, v), nil
}
