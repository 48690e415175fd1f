package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkslearn/console/internal/ctxutil"
	"github.com/sparkslearn/console/internal/pkg/jwthelper"
)

const testKey = "0123456789abcdef0123456789abcdef"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestid.New(), PropagateRequestID())
	r.GET("/me", NewAuthenticator(testKey).VerifyJWT(), func(ctx *gin.Context) {
		id, _ := ctxutil.OperatorID(ctx.Request.Context())
		reqID, _ := ctxutil.RequestID(ctx.Request.Context())
		ctx.JSON(http.StatusOK, gin.H{
			"operator":    id,
			"performedBy": ctxutil.PerformedBy(ctx.Request.Context(), "system"),
			"requestID":   reqID,
		})
	})

	return r
}

func TestVerifyJWT(t *testing.T) {
	r := newTestRouter()

	token, err := jwthelper.GenerateToken([]byte(testKey), 9, "test")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + token, http.StatusOK},
		{"lowercase scheme", "bearer " + token, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer abc.def.ghi", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestVerifyJWT_AttachesOperatorAndRequestID(t *testing.T) {
	r := newTestRouter()

	token, err := jwthelper.GenerateToken([]byte(testKey), 9, "test")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"operator":9,"performedBy":"operator:9","requestID":"req-123"}`, w.Body.String())
}
