package auth

import (
	"testing"
	"time"

	"github.com/irabeny89/ebbs2022-sub000/internal/common"
	"github.com/stretchr/testify/require"
)

var testIdentity = Identity{
	SubjectID: "u-1",
	Audience:  AudienceUser,
	Username:  "alice",
	ServiceID: "svc-9",
}

func TestAccessToken_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("access", "refresh", time.Minute, time.Hour)
	authn := NewRequestAuthenticator("access")

	token, err := issuer.IssueAccess(testIdentity)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := authn.Resolve(common.BearerPrefix + token)
	require.NoError(t, err)
	require.Equal(t, testIdentity, claims.Identity())
	require.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestRequestAuthenticator_Resolve_Failures(t *testing.T) {
	issuer := NewTokenIssuer("access", "refresh", time.Minute, time.Hour)
	authn := NewRequestAuthenticator("access")

	valid, err := issuer.IssueAccess(testIdentity)
	require.NoError(t, err)

	expiredIssuer := NewTokenIssuer("access", "refresh", -time.Minute, time.Hour)
	expired, err := expiredIssuer.IssueAccess(testIdentity)
	require.NoError(t, err)

	refresh, err := issuer.IssueRefresh(testIdentity)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", valid},
		{"garbage token", common.BearerPrefix + "not.a.jwt"},
		{"expired token", common.BearerPrefix + expired},
		{"wrong secret", common.BearerPrefix + refresh},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := authn.Resolve(tc.header)
			require.Error(t, err)
			require.Equal(t, common.KindAuthentication, common.KindOf(err))
			require.EqualError(t, err, common.MsgAuthenticationFailed)
		})
	}
}

func TestTokenIssuer_ExpiryBoundary(t *testing.T) {
	authn := NewRequestAuthenticator("access")

	// Within the window the token resolves.
	shortIssuer := NewTokenIssuer("access", "refresh", 2*time.Second, time.Hour)
	token, err := shortIssuer.IssueAccess(testIdentity)
	require.NoError(t, err)
	_, err = authn.Resolve(common.BearerPrefix + token)
	require.NoError(t, err)

	// At or past expiry the same token is rejected.
	pastIssuer := NewTokenIssuer("access", "refresh", -time.Nanosecond, time.Hour)
	expired, err := pastIssuer.IssueAccess(testIdentity)
	require.NoError(t, err)
	_, err = authn.Resolve(common.BearerPrefix + expired)
	require.Error(t, err)
}

func TestVerifyRefresh(t *testing.T) {
	issuer := NewTokenIssuer("access", "refresh", time.Minute, time.Hour)

	refresh, err := issuer.IssueRefresh(testIdentity)
	require.NoError(t, err)

	claims, err := issuer.VerifyRefresh(refresh)
	require.NoError(t, err)
	require.Equal(t, testIdentity, claims.Identity())

	// An access token is not a valid refresh credential.
	access, err := issuer.IssueAccess(testIdentity)
	require.NoError(t, err)
	_, err = issuer.VerifyRefresh(access)
	require.Error(t, err)
	require.Equal(t, common.KindAuthentication, common.KindOf(err))
}
