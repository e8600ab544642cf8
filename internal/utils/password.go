package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of a registration password. cost
// comes from the BCRYPT_COST setting; a value outside bcrypt's supported
// range falls back to the library default instead of failing registration
// or silently producing a weak hash.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword reports whether a login attempt matches the stored hash.
// The cost is read from the hash itself, so accounts created under an
// older BCRYPT_COST keep verifying after the setting changes.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
