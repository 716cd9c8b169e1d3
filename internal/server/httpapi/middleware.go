package httpapi

import (
	"context"
	"net/http"

	"github.com/irabeny89/ebbs2022-sub000/internal/common"
	"github.com/irabeny89/ebbs2022-sub000/internal/server/auth"
)

type contextKey string

const callerClaimsKey contextKey = "callerClaims"

// requireAuth resolves the bearer access token before the handler runs.
// A failed resolve aborts the request; there is no retry or fallback on
// the server side.
func (h *Handler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.authenticator.Resolve(r.Header.Get(common.AuthorizationHeader))
		if err != nil {
			h.fail(w, r, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), callerClaimsKey, claims)))
	}
}

// CallerClaims returns the verified claims requireAuth stored on the
// request context.
func CallerClaims(ctx context.Context) (*auth.Claims, error) {
	claims, ok := ctx.Value(callerClaimsKey).(*auth.Claims)
	if !ok {
		return nil, common.AuthenticationError(common.MsgAuthenticationFailed)
	}
	return claims, nil
}
