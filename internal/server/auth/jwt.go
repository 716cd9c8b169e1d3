package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/irabeny89/ebbs2022-sub000/internal/common"
)

const tokenIssuerName = "ebbs"

// Audience classifies the caller a token was minted for.
type Audience string

const (
	AudienceUser  Audience = "USER"
	AudienceAdmin Audience = "ADMIN"
)

// Identity is the verified subject a token pair is minted for.
// ServiceID is set only for users that own a service (storefront).
type Identity struct {
	SubjectID string
	Audience  Audience
	Username  string
	ServiceID string
}

// Claims is the payload of both access and refresh tokens. Subject and
// audience live in the registered claims; username and serviceId ride
// alongside so protected resolvers never need a DB round trip.
type Claims struct {
	Username  string `json:"username,omitempty"`
	ServiceID string `json:"serviceId,omitempty"`
	jwt.RegisteredClaims
}

// Identity reconstructs the minting identity from verified claims.
func (c *Claims) Identity() Identity {
	var aud string
	if len(c.Audience) > 0 {
		aud = c.Audience[0]
	}
	return Identity{
		SubjectID: c.Subject,
		Audience:  Audience(aud),
		Username:  c.Username,
		ServiceID: c.ServiceID,
	}
}

// TokenIssuer mints the two session credentials: a short-lived access token
// and a longer-lived refresh token, each signed with its own HMAC secret.
// The refresh credential is stateless: no record of issued tokens is kept,
// so it cannot be revoked before its own expiry.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// IssueAccess signs a short-TTL access token for identity.
func (i *TokenIssuer) IssueAccess(identity Identity) (string, error) {
	return signToken(identity, i.accessSecret, i.accessTTL)
}

// IssueRefresh signs a refresh token for identity with the refresh secret.
func (i *TokenIssuer) IssueRefresh(identity Identity) (string, error) {
	return signToken(identity, i.refreshSecret, i.refreshTTL)
}

// VerifyRefresh checks a refresh token's signature and expiry and returns
// its claims.
func (i *TokenIssuer) VerifyRefresh(tokenString string) (*Claims, error) {
	return parseToken(tokenString, i.refreshSecret)
}

// RefreshTTL exposes the refresh lifetime so the carrier can match on it.
func (i *TokenIssuer) RefreshTTL() time.Duration {
	return i.refreshTTL
}

func signToken(identity Identity, secret []byte, validity time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		Username:  identity.Username,
		ServiceID: identity.ServiceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuerName,
			Subject:   identity.SubjectID,
			Audience:  jwt.ClaimStrings{string(identity.Audience)},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

func parseToken(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, common.AuthenticationError(common.MsgAuthenticationFailed)
	}

	return claims, nil
}

// RequestAuthenticator verifies inbound access tokens. Every protected
// handler resolves the caller through it before doing anything else; a
// failure aborts the request with no retry or fallback.
type RequestAuthenticator struct {
	secret []byte
}

func NewRequestAuthenticator(accessSecret string) *RequestAuthenticator {
	return &RequestAuthenticator{secret: []byte(accessSecret)}
}

// Resolve extracts and verifies the access token from an Authorization
// header value and returns the caller's claims. An absent, malformed,
// expired, or forged token yields the generic authentication error.
func (a *RequestAuthenticator) Resolve(bearerHeader string) (*Claims, error) {
	if !strings.HasPrefix(bearerHeader, common.BearerPrefix) {
		return nil, common.AuthenticationError(common.MsgAuthenticationFailed)
	}
	return parseToken(strings.TrimPrefix(bearerHeader, common.BearerPrefix), a.secret)
}
