package security

import "github.com/alexedwards/argon2id"

// HashPassword derives a one-way hash of pw. Params are argon2id
// defaults, which are at least as expensive as bcrypt cost 12.
func HashPassword(pw string) (string, error) {
	return argon2id.CreateHash(pw, argon2id.DefaultParams)
}

// CheckPassword reports whether pw matches the stored hash. The
// comparison inside argon2id is constant-time. A malformed stored hash
// is treated as a mismatch, never an error the caller has to handle.
func CheckPassword(hash, pw string) bool {
	ok, err := argon2id.ComparePasswordAndHash(pw, hash)
	if err != nil {
		return false
	}
	return ok
}
