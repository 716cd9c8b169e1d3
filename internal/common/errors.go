// Package common defines shared constants and error types used across
// client and server layers of EBBS. Callers should use errors.Is /
// KindOf to classify errors instead of comparing message strings.
package common

import "errors"

// Kind is the closed taxonomy of failures this subsystem can surface.
// Every error that crosses the service boundary carries exactly one kind;
// anything unclassified is treated as KindInternal at the transport edge.
type Kind int

const (
	KindInternal Kind = iota
	KindAuthentication
	KindForbidden
	KindValidation
)

// Error is a tagged error carrying a kind and a caller-safe message.
// The message is what reaches the wire, so constructors must only be
// given non-leaking text.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// AuthenticationError marks bad or missing credentials and tokens.
func AuthenticationError(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

// ForbiddenError marks a valid caller attempting a disallowed action,
// including invalid or reused passcodes.
func ForbiddenError(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// ValidationError marks malformed user input.
func ValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// InternalError marks unexpected failures with a generic message.
func InternalError(msg string) *Error {
	return &Error{Kind: KindInternal, Message: msg}
}

// KindOf extracts the kind from an error chain. Unclassified errors
// default to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Generic user-facing messages. Login failures share a single message for
// unknown email and wrong password so the endpoint cannot be used to probe
// which accounts exist.
const (
	MsgAuthenticationFailed = "Authentication failed!"
	MsgPasscodeFailed       = "Failed! Get a new passcode and try again."
	MsgSomethingWentWrong   = "Something went wrong, check your inputs and try again."
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")
)
