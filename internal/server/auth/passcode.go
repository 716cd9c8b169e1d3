package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/irabeny89/ebbs2022-sub000/internal/common"
)

const passcodeBytes = 8

// NewPasscode generates a random one-time recovery code, hex-encoded.
func NewPasscode() (string, error) {
	return common.MakeRandHexString(passcodeBytes)
}

// HashPasscode returns the hex-encoded SHA-256 digest of a passcode.
// A plain cryptographic hash is enough here: the passcode is a short-lived,
// low-value secret, unlike a password.
func HashPasscode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// ConstantTimeEquals reports whether a and b are equal without leaking where
// they first differ. Both sides are reduced to fixed-length digests before
// the comparison, so unequal-length inputs follow the same path as
// equal-length ones instead of returning early on the length check.
func ConstantTimeEquals(a, b string) bool {
	da := sha256.Sum256([]byte(a))
	db := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(da[:], db[:]) == 1
}

// PasscodeClaims is the content of the signed recovery cookie: the email the
// passcode was issued for and the hash of the passcode itself. The plaintext
// code exists only in the email sent to the user.
type PasscodeClaims struct {
	Email    string `json:"email"`
	CodeHash string `json:"codeHash"`
	jwt.RegisteredClaims
}

// PasscodeSealer signs and opens the short-TTL passcode record carried in a
// cookie between the request-passcode call and the consuming call.
type PasscodeSealer struct {
	secret []byte
	ttl    time.Duration
}

func NewPasscodeSealer(secret string, ttl time.Duration) *PasscodeSealer {
	return &PasscodeSealer{secret: []byte(secret), ttl: ttl}
}

// TTL exposes the recovery window so the carrier can match the cookie age.
func (s *PasscodeSealer) TTL() time.Duration {
	return s.ttl
}

// Seal signs a passcode record binding email to the hash of code.
func (s *PasscodeSealer) Seal(email, code string) (string, error) {
	now := time.Now()
	claims := &PasscodeClaims{
		Email:    email,
		CodeHash: HashPasscode(code),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuerName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	sealed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign passcode record: %w", err)
	}

	return sealed, nil
}

// Verify opens a sealed record and checks the supplied passcode against the
// stored hash in constant time. On success it returns the bound email; any
// failure (absent, expired, forged record, or wrong code) yields the same
// forbidden error.
func (s *PasscodeSealer) Verify(sealed, supplied string) (string, error) {
	claims := &PasscodeClaims{}

	token, err := jwt.ParseWithClaims(sealed, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", common.ForbiddenError(common.MsgPasscodeFailed)
	}

	if !ConstantTimeEquals(claims.CodeHash, HashPasscode(supplied)) {
		return "", common.ForbiddenError(common.MsgPasscodeFailed)
	}

	return claims.Email, nil
}
