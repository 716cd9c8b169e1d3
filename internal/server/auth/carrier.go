package auth

import (
	"net/http"
	"time"

	"github.com/irabeny89/ebbs2022-sub000/internal/common"
)

// CredentialCarrier moves a server-issued credential between issuer and
// caller without the issuing logic depending on a specific transport
// mechanism. The production carrier is a cookie; the header carrier serves
// non-browser callers and tests.
type CredentialCarrier interface {
	// Write attaches the credential to the response with the given lifetime.
	Write(w http.ResponseWriter, token string, ttl time.Duration)

	// Read extracts the credential from the request. Returns
	// common.ErrorNotFound when the request carries none; the caller maps
	// that to its own failure kind.
	Read(r *http.Request) (string, error)

	// Clear removes the credential from the caller on the current response.
	Clear(w http.ResponseWriter)
}

// CookieCarrier stores the credential in an http-only cookie. SameSite is
// Lax so top-level navigation keeps the session while cross-site POSTs do
// not carry it; Secure is set outside development.
type CookieCarrier struct {
	Name   string
	Secure bool
}

func (c *CookieCarrier) Write(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *CookieCarrier) Read(r *http.Request) (string, error) {
	cookie, err := r.Cookie(c.Name)
	if err != nil || cookie.Value == "" {
		return "", common.ErrorNotFound
	}
	return cookie.Value, nil
}

// Clear expires the cookie immediately. net/http emits "Max-Age=0" for any
// negative MaxAge, which is the deletion form user agents honor.
func (c *CookieCarrier) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// HeaderCarrier moves the credential through a plain header pair: the
// response header announces it, the request header returns it.
type HeaderCarrier struct {
	Name string
}

func (c *HeaderCarrier) Write(w http.ResponseWriter, token string, _ time.Duration) {
	w.Header().Set(c.Name, token)
}

func (c *HeaderCarrier) Read(r *http.Request) (string, error) {
	v := r.Header.Get(c.Name)
	if v == "" {
		return "", common.ErrorNotFound
	}
	return v, nil
}

func (c *HeaderCarrier) Clear(w http.ResponseWriter) {
	w.Header().Set(c.Name, "")
}
