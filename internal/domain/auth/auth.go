package auth

import "time"

// PasswordHasher hashes secrets one way and checks candidates against a stored hash.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// Claims is the verified content of a token.
type Claims struct {
	Subject   string
	Roles     []string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenSigner issues signed, time-bounded tokens and verifies them.
// Parse fails on a bad signature or an expired token.
type TokenSigner interface {
	Issue(subject string, roles []string) (string, time.Time, error)
	Parse(token string) (*Claims, error)
}
