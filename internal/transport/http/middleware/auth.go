package middleware

import (
	"context"
	"net/http"

	"hrbus/internal/domain/auth"
	"hrbus/internal/transport/http/api"
)

type principalKey struct{}

// RequireAuth rejects requests whose Authorization header does not carry a
// valid bearer token and stores the resolved principal on the context.
func RequireAuth(verifier *auth.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, authErr := verifier.FromHeader(r.Context(), r.Header.Get("Authorization"))
			if authErr != nil {
				api.Fail(w, authErr.Status, authErr.Code, authErr.Message, GetRequestID(r.Context()))
				return
			}
			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal returns the authenticated principal, or the zero value when the
// request skipped authentication.
func GetPrincipal(ctx context.Context) auth.Principal {
	if p, ok := ctx.Value(principalKey{}).(auth.Principal); ok {
		return p
	}
	return auth.Principal{}
}
