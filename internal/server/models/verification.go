package models

import "time"

// PendingVerification holds a registration until its e-mail code is confirmed.
type PendingVerification struct {
	Email            string
	PlayerName       string
	PasswordHash     string
	VerificationCode string
	ExpiresAt        time.Time
}

// IsExpired reports whether the code can no longer be used at now.
func (p *PendingVerification) IsExpired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}

// PasswordReset stores the SHA-256 hash of a reset token, never the token.
type PasswordReset struct {
	Email     string
	TokenHash string
	ExpiresAt time.Time
}

func (p *PasswordReset) IsExpired(now time.Time) bool {
	return now.After(p.ExpiresAt)
}
