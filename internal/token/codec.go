package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the slice of the session token the gateway reads.
//
// SECURITY BOUNDARY: tokens are decoded WITHOUT signature verification and without
// expiry checks. The decoded access level is a routing hint only: it decides which
// page a browser lands on, never whether data is served. The backend API verifies
// the signature and re-authorizes every call it receives, so a forged claim buys an
// attacker nothing beyond a different redirect target. Nothing returned by this
// package may be used as an authorization proof.
type Claims struct {
	jwt.RegisteredClaims

	AccessLevel string `json:"accessLevel"`
}

// Decode parses the claims segment of a compact token without verifying the
// signature. It fails soft: wrong segment count, invalid base64 or a non-JSON
// payload all yield ok == false. It never panics and never returns an error.
func Decode(raw string) (Claims, bool) {
	if raw == "" {
		return Claims{}, false
	}
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return Claims{}, false
	}
	return claims, true
}
