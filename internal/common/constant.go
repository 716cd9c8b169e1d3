package common

// AuthorizationHeader is the HTTP header carrying the access token on
// protected calls.
const AuthorizationHeader = "Authorization"

// BearerPrefix precedes the access token inside the authorization header.
const BearerPrefix = "Bearer "

// Cookie names for the two server-set credentials.
const (
	RefreshCookieName  = "refresh_token"
	PasscodeCookieName = "passcode_token"
)

// Wire error codes returned inside the JSON error envelope. The client
// session manager keys its refresh-and-replay behavior off CodeUnauthenticated.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)
