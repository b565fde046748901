package service

import "errors"

// Sentinel errors returned by service methods for expected failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrInvalidDataProvided is returned when a request is missing required
	// fields (empty email/password after trimming, nil or empty readings).
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned on login when either the user does
	// not exist or the password does not match the stored hash. The two
	// cases are intentionally indistinguishable to prevent user enumeration.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrDeviceIDMissing is returned by latest-reading lookups when no
	// device id was supplied. It maps to a not-found-style response,
	// preserving the unified handling of "missing device id" and
	// "no matching record".
	ErrDeviceIDMissing = errors.New("missing device id")

	// ErrTokenCreationFailed is returned when signing a new JWT fails.
	ErrTokenCreationFailed = errors.New("token creation failed")

	// ErrTokenIsExpiredOrInvalid is returned when a presented token fails
	// validation for any reason (bad signature, expired, wrong issuer or
	// audience, malformed).
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)
