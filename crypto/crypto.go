package crypto

import "golang.org/x/crypto/bcrypt"

// DummyHash is a throwaway bcrypt hash at the same cost as real ones. Login
// compares against it when the username does not exist, so hits and misses
// take the same time.
const DummyHash = "$2a$14$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
