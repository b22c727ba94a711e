package domain

// AuthStage tracks how far a request got through authorization:
//
//	Unauthenticated → TokenValidated → IdentityResolved → Authorized | Denied
//
// A failure at any stage ends the request there.
type AuthStage string

const (
	StageUnauthenticated  AuthStage = "unauthenticated"
	StageTokenValidated   AuthStage = "token_validated"
	StageIdentityResolved AuthStage = "identity_resolved"
	StageAuthorized       AuthStage = "authorized"
	StageDenied           AuthStage = "denied"
)
