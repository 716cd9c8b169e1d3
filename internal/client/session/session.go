// Package session holds the client's in-memory access token. The refresh
// credential never appears here: it lives in the HTTP cookie jar, invisible
// to application code.
package session

import "sync"

// Session is the mutable authentication state of one CLI run. Safe for
// concurrent use: in-flight calls read the token while a refresh replaces it.
type Session struct {
	mu          sync.RWMutex
	accessToken string
}

func New() *Session {
	return &Session{}
}

// Token returns the current access token, empty when logged out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// Set replaces the access token after a login, registration, or refresh.
func (s *Session) Set(accessToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = accessToken
}

// Clear drops the token on logout or when renewal fails for good.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = ""
}

// Active reports whether a token is currently held.
func (s *Session) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken != ""
}
