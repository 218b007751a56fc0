package auth

import (
	"errors"
	"net/http"
)

// CookieName is the cookie carrying the session token
const CookieName = "auth_token"

// ErrNoToken means the request carried no session cookie at all
var ErrNoToken = errors.New("no session token")

// FromRequest extracts the session token from the request cookie and
// verifies it. Fails closed: an absent cookie, a tampered token, and an
// expired token are all errors. No store I/O happens here; resolving the
// claims to a full profile is the handler's job.
func FromRequest(r *http.Request, secret []byte) (*SessionClaims, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoToken
	}
	return VerifyToken(cookie.Value, secret)
}
