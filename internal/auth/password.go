package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

// Fixed derivation parameters. They are not encoded into the hash, so
// changing them invalidates every stored hash; verify treats any other
// encoded length as a mismatch.
const (
	saltLength = 16
	keyLength  = 32
	iterations = 100_000
)

// HashPassword derives a salted PBKDF2-SHA256 key from the plaintext and
// returns base64(salt || key).
func HashPassword(password string) (string, error) {
	return hashPassword(password, iterations)
}

// VerifyPassword re-derives the key with the salt extracted from the stored
// hash and compares in constant time. Malformed or wrong-length stored hashes
// verify false rather than erroring, so a corrupt record reads as a wrong
// password.
func VerifyPassword(password, encodedHash string) bool {
	return verifyPassword(password, encodedHash, iterations)
}

func hashPassword(password string, iter int) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := pbkdf2.Key([]byte(password), salt, iter, keyLength, sha256.New)

	encoded := make([]byte, 0, saltLength+keyLength)
	encoded = append(encoded, salt...)
	encoded = append(encoded, key...)
	return base64.RawStdEncoding.EncodeToString(encoded), nil
}

func verifyPassword(password, encodedHash string, iter int) bool {
	decoded, err := base64.RawStdEncoding.DecodeString(encodedHash)
	if err != nil {
		return false
	}
	if len(decoded) != saltLength+keyLength {
		return false
	}

	salt := decoded[:saltLength]
	expected := decoded[saltLength:]

	key := pbkdf2.Key([]byte(password), salt, iter, keyLength, sha256.New)
	return subtle.ConstantTimeCompare(key, expected) == 1
}
