package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrPhoneTaken          = errors.New("participant with this phone number already exists")
	ErrEmailNotAllowed     = errors.New("email is not authorized for admin login")
	ErrOAuthExchange       = errors.New("failed to get user information from provider")
)

// Phone errors
var (
	ErrInvalidPhone = errors.New("invalid israeli phone number format")
)

// OTP errors. Verification deliberately collapses wrong/expired/used/unknown
// into ErrOTPInvalid so callers cannot probe code state.
var (
	ErrOTPInvalid  = errors.New("invalid or expired otp")
	ErrOTPThrottle = errors.New("otp resend window has not elapsed")
)

// Token errors
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
	ErrTokenRevoked = errors.New("refresh token not found or expired")
)

// Scheduling errors
var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrSessionStarted   = errors.New("session has already started, responses are locked")
	ErrResponseNotFound = errors.New("response not found")
	ErrResponseLocked   = errors.New("response has been set by admin and cannot be changed")
	ErrInvalidStatus    = errors.New("invalid response status")
)
