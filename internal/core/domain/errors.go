package domain

import "errors"

// Login and registration.
var (
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidInput       = errors.New("invalid input")
	ErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
)

// Token validation.
var (
	ErrMissingToken     = errors.New("bearer token is missing")
	ErrInvalidSignature = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token has expired")
	ErrMalformedToken   = errors.New("token is malformed")
)

// Caller resolution after a token validated.
var (
	ErrUnknownSubject  = errors.New("token subject does not exist")
	ErrInactiveAccount = errors.New("account is inactive")
)

var ErrPermissionDenied = errors.New("not enough permissions")

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPostNotFound    = errors.New("blog post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrInvalidRole     = errors.New("invalid role")
)

// Startup configuration.
var (
	ErrMissingSigningSecret = errors.New("token signing secret is not configured")
	ErrUnsupportedAlgorithm = errors.New("unsupported token signing algorithm")
)

// IsAuthenticationError reports whether err means the caller could not be
// authenticated from the presented token. All of these are reported to clients
// identically so they cannot tell which check failed.
func IsAuthenticationError(err error) bool {
	return errors.Is(err, ErrMissingToken) ||
		errors.Is(err, ErrInvalidSignature) ||
		errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrMalformedToken) ||
		errors.Is(err, ErrUnknownSubject) ||
		errors.Is(err, ErrInactiveAccount)
}
