// Package auth issues and verifies the signed bearer tokens that carry a
// session, and hashes account passwords.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eulark/eulark/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is what a session token says about its bearer.
type Identity struct {
	UserID  int64
	Name    string
	IsAdmin bool
}

// Claims are the registered JWT claims plus the bearer's identity.
type Claims struct {
	jwt.RegisteredClaims
	UserID  int64  `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin,omitempty"`
}

// Identity returns the identity part of the claims.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, Name: c.Name, IsAdmin: c.IsAdmin}
}

// Issuer signs and verifies HS256 session tokens with a process-wide secret.
// It holds no other state; verification never touches the store.
type Issuer struct {
	secret []byte
	now    func() time.Time
}

func NewIssuer(secret []byte) *Issuer {
	return &Issuer{secret: secret, now: time.Now}
}

// WithClock returns a copy of the issuer that reads time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	return &Issuer{secret: i.secret, now: now}
}

// Issue signs a token for id that expires after ttl.
func (i *Issuer) Issue(id Identity, ttl time.Duration) (string, error) {
	issuedAt := i.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		UserID:  id.UserID,
		Name:    id.Name,
		IsAdmin: id.IsAdmin,
	})

	return token.SignedString(i.secret)
}

// Verify checks signature, algorithm and expiry. It returns
// common.ErrTokenExpired for an expired token and common.ErrInvalidToken for
// anything else that fails.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// ParseBearer extracts the token from an Authorization header value.
// An absent header, another scheme or an empty token yield
// common.ErrUnauthenticated.
func ParseBearer(header string) (string, error) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, strings.TrimSpace(common.BearerPrefix)) {
		return "", common.ErrUnauthenticated
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", common.ErrUnauthenticated
	}

	return token, nil
}
