package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTTL is how long an issued session token stays valid. Sessions are
// stateless, so expiry is the only bound on a token's lifetime.
const SessionTTL = 24 * time.Hour

// Verification failures, distinguished for server-side diagnostics only.
// Clients always see a uniform "unauthorized" outcome.
var (
	ErrTokenMalformed        = errors.New("session token malformed")
	ErrTokenSignatureInvalid = errors.New("session token signature mismatch")
	ErrTokenExpired          = errors.New("session token expired")
)

// SessionClaims is the signed payload of a session token: the claim
// "the bearer is user X" plus the standard time bounds.
type SessionClaims struct {
	UserID  string `json:"userID"`
	EmailID string `json:"emailID"`
	jwt.RegisteredClaims
}

// IssueToken signs a session token for the given user, valid for ttl.
// The secret is passed explicitly so tests can inject their own keys.
func IssueToken(userID, emailID string, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:  userID,
		EmailID: emailID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// VerifyToken checks the signature and expiry of a session token and
// returns its claims. Any modification to the payload or expiry
// invalidates the signature.
func VerifyToken(tokenString string, secret []byte) (*SessionClaims, error) {
	claims := &SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	switch {
	case err == nil:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrTokenSignatureInvalid
	default:
		return nil, ErrTokenMalformed
	}
}
