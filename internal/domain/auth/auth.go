package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Principal is the authenticated identity extracted from a bearer token.
type Principal struct {
	Subject string `json:"sub"`
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
}

// Error is a coded token rejection. Codes mirror the identity provider's
// failure taxonomy so the front end can distinguish them.
type Error struct {
	Code    string
	Message string
	Status  int
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

var (
	errMissingHeader = &Error{Code: "authorization_header_missing", Message: "Authorization header is expected", Status: http.StatusUnauthorized}
	errNotBearer     = &Error{Code: "invalid_header", Message: "Authorization header must start with Bearer", Status: http.StatusUnauthorized}
	errNoToken       = &Error{Code: "invalid_header", Message: "Token not found", Status: http.StatusUnauthorized}
	errTooManyParts  = &Error{Code: "invalid_header", Message: "Authorization header must be Bearer token", Status: http.StatusUnauthorized}
	errExpired       = &Error{Code: "token_expired", Message: "Token is expired", Status: http.StatusUnauthorized}
	errAudience      = &Error{Code: "invalid_audience", Message: "Incorrect audience", Status: http.StatusUnauthorized}
	errIssuer        = &Error{Code: "invalid_issuer", Message: "Incorrect issuer", Status: http.StatusUnauthorized}
	errKeys          = &Error{Code: "keys_error", Message: "Unable to find an appropriate signing key", Status: http.StatusInternalServerError}
	errMalformed     = &Error{Code: "invalid_header", Message: "Unable to parse authentication token", Status: http.StatusBadRequest}
)

// ErrKeyLookup marks signing-key resolution failures so they map to the
// keys_error code rather than a generic parse failure.
var ErrKeyLookup = errors.New("signing key lookup failed")

// KeyProvider resolves the verification key for a parsed but unverified
// token, typically by kid against the identity provider's JWKS.
type KeyProvider interface {
	SigningKey(ctx context.Context, token *jwt.Token) (any, error)
}

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Verifier validates RS256 bearer tokens against the configured audience and
// issuer. A non-empty DemoToken short-circuits verification with a canned
// principal; production configs must leave it empty.
type Verifier struct {
	Audience  string
	Issuer    string
	DemoToken string
	Keys      KeyProvider
}

var demoPrincipal = Principal{
	Subject: "demo|test-user",
	Email:   "swagger@test.com",
	Name:    "Swagger Tester",
}

// FromHeader authenticates a raw Authorization header value.
func (v *Verifier) FromHeader(ctx context.Context, header string) (Principal, *Error) {
	parts := strings.Fields(header)
	if len(parts) == 0 {
		return Principal{}, errMissingHeader
	}
	if strings.ToLower(parts[0]) != "bearer" {
		return Principal{}, errNotBearer
	}
	if len(parts) == 1 {
		return Principal{}, errNoToken
	}
	if len(parts) > 2 {
		return Principal{}, errTooManyParts
	}
	return v.Verify(ctx, parts[1])
}

func (v *Verifier) Verify(ctx context.Context, token string) (Principal, *Error) {
	if v.DemoToken != "" && token == v.DemoToken {
		return demoPrincipal, nil
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithAudience(v.Audience),
		jwt.WithIssuer(v.Issuer),
		jwt.WithExpirationRequired(),
	)

	claims := &tokenClaims{}
	parsed, err := parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return v.Keys.SigningKey(ctx, t)
	})
	if err != nil {
		return Principal{}, mapTokenError(err)
	}
	if !parsed.Valid {
		return Principal{}, errMalformed
	}

	return Principal{Subject: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

func mapTokenError(err error) *Error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errExpired
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return errAudience
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return errIssuer
	case errors.Is(err, ErrKeyLookup):
		return errKeys
	default:
		return errMalformed
	}
}
