package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"hrbus/internal/requestctx"
)

const requestIDHeader = "X-Request-ID"

// RequestID adopts the caller's correlation id when one is supplied,
// otherwise mints a fresh one, and echoes it on the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, reqID)
		ctx := requestctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestID is a transport-local alias so handlers need only this package.
func GetRequestID(ctx context.Context) string {
	return requestctx.GetRequestID(ctx)
}
