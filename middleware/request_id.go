package middleware

import (
	"net/http"

	"grafibot/appctx"
	"grafibot/core"
)

// RequestIDMiddleware tags every request with a short identifier so log
// lines belonging to one request can be correlated. An X-Request-ID sent
// by an upstream proxy is kept when it matches the prefix_ULID format;
// anything else is replaced. The identifier is echoed back in the
// X-Request-ID response header.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if !core.IsValidULID(requestID) {
			requestID = core.NewID("req")
		}
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r.WithContext(appctx.SetRequestID(r.Context(), requestID)))
	})
}
