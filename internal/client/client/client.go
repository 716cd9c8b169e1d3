// Package client implements the CLI's connection to the backend: a JSON
// HTTP client that attaches the access token to every call, retries
// transport failures, and transparently renews an expired token mid-request.
package client

import (
	"context"
	"errors"
)

// Sentinel errors the UI layer branches on. The server's message rides
// alongside via wrapping.
var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("operation not allowed")
	ErrInvalidInput = errors.New("invalid input")
)

// Profile is the caller's identity as the server sees it.
type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Audience  string `json:"audience"`
	ServiceID string `json:"serviceId,omitempty"`
}

// Client is the backend surface the CLI works against.
type Client interface {
	// Login verifies credentials and starts a session.
	Login(ctx context.Context, email, password string) error

	// RequestPasscode asks for a one-time code to be emailed. The returned
	// string is the server's confirmation message.
	RequestPasscode(ctx context.Context, email string) (string, error)

	// Register completes passcode-gated signup and starts a session.
	Register(ctx context.Context, username, password, passcode string) error

	// ChangePassword completes passcode-gated recovery and starts a session.
	ChangePassword(ctx context.Context, passcode, newPassword string) error

	// Me returns the profile of the logged-in caller.
	Me(ctx context.Context) (*Profile, error)

	// Logout ends the session on both sides.
	Logout(ctx context.Context) error

	// Active reports whether a session is currently held.
	Active() bool
}
