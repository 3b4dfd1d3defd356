package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"

	"hrbus/internal/domain/auth"
	"hrbus/internal/transport/http/api"
)

type noKeys struct{}

func (noKeys) SigningKey(ctx context.Context, token *jwt.Token) (any, error) {
	return nil, auth.ErrKeyLookup
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	verifier := &auth.Verifier{Audience: "aud", Issuer: "iss", Keys: noKeys{}}
	handler := RequireAuth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without credentials")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var envelope api.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response is not an envelope: %v", err)
	}
	if envelope.Success || envelope.Error == nil || envelope.Error.Code != "authorization_header_missing" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestRequireAuthAcceptsDemoToken(t *testing.T) {
	verifier := &auth.Verifier{Audience: "aud", Issuer: "iss", DemoToken: "demo-secret", Keys: noKeys{}}
	var principal auth.Principal
	handler := RequireAuth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal = GetPrincipal(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.Header.Set("Authorization", "Bearer demo-secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if principal.Subject != "demo|test-user" {
		t.Fatalf("principal = %+v", principal)
	}
}

func TestGetPrincipalZeroWithoutAuth(t *testing.T) {
	if p := GetPrincipal(context.Background()); p != (auth.Principal{}) {
		t.Fatalf("principal = %+v, want zero value", p)
	}
}
