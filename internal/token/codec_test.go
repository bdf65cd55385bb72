package token

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func segment(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func compact(payload string) string {
	return segment(`{"alg":"HS256","typ":"JWT"}`) + "." + segment(payload) + ".sig"
}

func TestDecodeMalformedInputsFailSoft(t *testing.T) {
	cases := map[string]string{
		"empty":               "",
		"no separators":       "abcdef",
		"two segments":        segment(`{"alg":"none"}`) + "." + segment(`{}`),
		"four segments":       "a.b.c.d",
		"invalid base64":      segment(`{"alg":"HS256"}`) + ".!!not-base64!!.sig",
		"non-json payload":    segment(`{"alg":"HS256","typ":"JWT"}`) + "." + segment("plain text") + ".sig",
		"json scalar payload": segment(`{"alg":"HS256","typ":"JWT"}`) + "." + segment(`42`) + ".sig",
	}

	for name, raw := range cases {
		if _, ok := Decode(raw); ok {
			t.Errorf("%s: expected decode failure for %q", name, raw)
		}
	}
}

func TestDecodeReadsAccessLevel(t *testing.T) {
	claims, ok := Decode(compact(`{"accessLevel":"client"}`))
	if !ok {
		t.Fatalf("expected decode success")
	}
	if claims.AccessLevel != "client" {
		t.Fatalf("expected access level %q, got %q", "client", claims.AccessLevel)
	}

	claims, ok = Decode(compact(`{"accessLevel":"NOTARY","sub":"user-1"}`))
	if !ok {
		t.Fatalf("expected decode success")
	}
	if claims.AccessLevel != "NOTARY" {
		t.Fatalf("case must be preserved, got %q", claims.AccessLevel)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("expected subject to survive, got %q", claims.Subject)
	}
}

func TestDecodeDoesNotNeedTheSigningKey(t *testing.T) {
	type signedClaims struct {
		jwt.RegisteredClaims
		AccessLevel string `json:"accessLevel"`
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, signedClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		AccessLevel: "admin",
	}).SignedString([]byte("a secret the gateway never sees"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, ok := Decode(raw)
	if !ok {
		t.Fatalf("expected decode success without the key")
	}
	if claims.AccessLevel != "admin" {
		t.Fatalf("unexpected access level %q", claims.AccessLevel)
	}
}

func TestDecodeIgnoresExpiry(t *testing.T) {
	// The gateway never validates expiry client-side; a stale session is caught
	// by the backend on the next profile fetch instead.
	claims, ok := Decode(compact(`{"accessLevel":"notary","exp":1}`))
	if !ok {
		t.Fatalf("expected decode success for an expired token")
	}
	if claims.AccessLevel != "notary" {
		t.Fatalf("unexpected access level %q", claims.AccessLevel)
	}
}
