package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	testAudience = "https://api.example.test"
	testIssuer   = "https://tenant.example.test/"
)

type staticKeys struct {
	key *rsa.PublicKey
	err error
}

func (s staticKeys) SigningKey(ctx context.Context, token *jwt.Token) (any, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.key, nil
}

func newTestVerifier(t *testing.T) (*Verifier, *rsa.PrivateKey) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}
	verifier := &Verifier{
		Audience: testAudience,
		Issuer:   testIssuer,
		Keys:     staticKeys{key: &key.PublicKey},
	}
	return verifier, key
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("signing failed: %v", err)
	}
	return signed
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "auth0|abc123",
		"email": "ana@example.test",
		"name":  "Ana Souza",
		"aud":   testAudience,
		"iss":   testIssuer,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestVerifyValidToken(t *testing.T) {
	verifier, key := newTestVerifier(t)
	principal, authErr := verifier.Verify(context.Background(), signToken(t, key, validClaims()))
	if authErr != nil {
		t.Fatalf("Verify returned error: %v", authErr)
	}
	if principal.Subject != "auth0|abc123" || principal.Email != "ana@example.test" || principal.Name != "Ana Souza" {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	verifier, key := newTestVerifier(t)
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Minute).Unix()

	_, authErr := verifier.Verify(context.Background(), signToken(t, key, claims))
	if authErr == nil || authErr.Code != "token_expired" {
		t.Fatalf("authErr = %v, want token_expired", authErr)
	}
}

func TestVerifyWrongAudience(t *testing.T) {
	verifier, key := newTestVerifier(t)
	claims := validClaims()
	claims["aud"] = "https://other.example.test"

	_, authErr := verifier.Verify(context.Background(), signToken(t, key, claims))
	if authErr == nil || authErr.Code != "invalid_audience" {
		t.Fatalf("authErr = %v, want invalid_audience", authErr)
	}
}

func TestVerifyWrongIssuer(t *testing.T) {
	verifier, key := newTestVerifier(t)
	claims := validClaims()
	claims["iss"] = "https://rogue.example.test/"

	_, authErr := verifier.Verify(context.Background(), signToken(t, key, claims))
	if authErr == nil || authErr.Code != "invalid_issuer" {
		t.Fatalf("authErr = %v, want invalid_issuer", authErr)
	}
}

func TestVerifyKeyLookupFailure(t *testing.T) {
	verifier, key := newTestVerifier(t)
	verifier.Keys = staticKeys{err: fmt.Errorf("jwks fetch exploded: %w", ErrKeyLookup)}

	_, authErr := verifier.Verify(context.Background(), signToken(t, key, validClaims()))
	if authErr == nil || authErr.Code != "keys_error" {
		t.Fatalf("authErr = %v, want keys_error", authErr)
	}
	if authErr.Status != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", authErr.Status)
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	verifier, _ := newTestVerifier(t)
	_, authErr := verifier.Verify(context.Background(), "not.a.jwt")
	if authErr == nil || authErr.Code != "invalid_header" {
		t.Fatalf("authErr = %v, want invalid_header", authErr)
	}
	if authErr.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", authErr.Status)
	}
}

func TestVerifyDemoTokenBypass(t *testing.T) {
	verifier, _ := newTestVerifier(t)
	verifier.DemoToken = "local-demo-token"

	principal, authErr := verifier.Verify(context.Background(), "local-demo-token")
	if authErr != nil {
		t.Fatalf("Verify returned error: %v", authErr)
	}
	if principal.Subject != "demo|test-user" || principal.Email != "swagger@test.com" {
		t.Fatalf("unexpected demo principal: %+v", principal)
	}
}

func TestFromHeader(t *testing.T) {
	verifier, key := newTestVerifier(t)
	token := signToken(t, key, validClaims())

	cases := []struct {
		name     string
		header   string
		wantCode string
	}{
		{name: "missing", header: "", wantCode: "authorization_header_missing"},
		{name: "whitespace only", header: "   ", wantCode: "authorization_header_missing"},
		{name: "tabs and spaces", header: " \t ", wantCode: "authorization_header_missing"},
		{name: "not bearer", header: "Basic abc", wantCode: "invalid_header"},
		{name: "bearer only", header: "Bearer", wantCode: "invalid_header"},
		{name: "too many parts", header: "Bearer a b", wantCode: "invalid_header"},
		{name: "valid", header: "Bearer " + token, wantCode: ""},
		{name: "case insensitive scheme", header: "bearer " + token, wantCode: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, authErr := verifier.FromHeader(context.Background(), tc.header)
			if tc.wantCode == "" {
				if authErr != nil {
					t.Fatalf("unexpected error: %v", authErr)
				}
				return
			}
			if authErr == nil || authErr.Code != tc.wantCode {
				t.Fatalf("authErr = %v, want code %q", authErr, tc.wantCode)
			}
		})
	}
}
