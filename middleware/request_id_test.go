package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grafibot/appctx"
	"grafibot/core"
)

func TestRequestIDMiddleware(t *testing.T) {
	var seenID string
	handler := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := appctx.GetRequestID(r.Context())
		require.True(t, ok)
		seenID = id
	}))

	t.Run("mints an identifier when none is sent", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/api/pedidos", nil))

		assert.True(t, core.IsValidULID(seenID))
		assert.Equal(t, seenID, recorder.Header().Get("X-Request-ID"))
	})

	t.Run("keeps a well-formed upstream identifier", func(t *testing.T) {
		upstream := core.NewID("req")
		req := httptest.NewRequest("GET", "/api/pedidos", nil)
		req.Header.Set("X-Request-ID", upstream)

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		assert.Equal(t, upstream, seenID)
		assert.Equal(t, upstream, recorder.Header().Get("X-Request-ID"))
	})

	t.Run("replaces a malformed upstream identifier", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/pedidos", nil)
		req.Header.Set("X-Request-ID", "../../etc/passwd")

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		assert.NotEqual(t, "../../etc/passwd", seenID)
		assert.True(t, core.IsValidULID(seenID))
	})
}
