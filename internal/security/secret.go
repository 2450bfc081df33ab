package security

import "golang.org/x/crypto/bcrypt"

// HashSecret hashes the configured admin secret with bcrypt. The gate is a
// demo-only UI toggle, but the plaintext still never sits in memory longer
// than startup.
func HashSecret(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckSecret compares a bcrypt hash with a submitted secret.
func CheckSecret(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
