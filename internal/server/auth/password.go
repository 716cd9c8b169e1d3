// Package auth implements the cryptographic core of the subsystem:
// salted password hashing, access/refresh token minting and verification,
// one-time passcode handling, and the credential carrier abstraction.
package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/argon2"

	"github.com/irabeny89/ebbs2022-sub000/internal/common"
)

const saltLength = 16

// argon2id parameters: 1 pass, 64 MiB, 4 lanes, 32-byte key.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
)

// PasswordHash pairs a derived hash with the random salt it was derived with.
// Both are persisted on the user's credential record.
type PasswordHash struct {
	Hash []byte
	Salt []byte
}

// HashPassword derives an argon2id hash of password under a fresh random salt.
func HashPassword(password string) *PasswordHash {
	salt := common.GenerateRandByteArray(saltLength)
	return &PasswordHash{Hash: hashWithSalt(password, salt), Salt: salt}
}

// VerifyPassword recomputes the hash of password under the stored salt and
// compares it against the stored hash in constant time.
func VerifyPassword(password string, hash, salt []byte) bool {
	candidate := hashWithSalt(password, salt)
	return subtle.ConstantTimeCompare(hash, candidate) == 1
}

func hashWithSalt(password string, salt []byte) []byte {
	return argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
}
