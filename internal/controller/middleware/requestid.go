// Package middleware contains HTTP middleware for the daemon API.
package middleware

import (
	"net/http"

	"runtimeplane/internal/logger"

	"github.com/google/uuid"
)

// RequestIDMiddleware assigns a correlation ID to every request and makes
// it available to handlers through the context and the X-Request-ID
// response header.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
