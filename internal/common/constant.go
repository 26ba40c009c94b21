package common

import "time"

// AuthorizationHeaderName carries the bearer session token on inbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix precedes the token inside the Authorization header.
const BearerPrefix = "Bearer "

const (
	// VerificationCodeTTL is how long an e-mailed registration code stays valid.
	VerificationCodeTTL = 20 * time.Minute

	// ResetTokenTTL is how long a password reset link stays valid.
	ResetTokenTTL = time.Hour

	// ResetTokenBytes is the entropy of a reset token before hex encoding.
	ResetTokenBytes = 32
)

// Owner status values.
const (
	OwnerAwake = "awake"
	OwnerSleep = "sleep"
)
