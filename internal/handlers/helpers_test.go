package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmate/internal/middleware"
	"taskmate/internal/services"
)

func failingRouter(expose bool) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorDetail(expose))
	r.GET("/boom", func(c *gin.Context) {
		err := &services.Error{Kind: services.KindInternal, Message: "Failed to fetch tasks", Err: errors.New("pq: connection refused")}
		respondError(c, "task.list", err, "Failed to fetch tasks")
	})
	return r
}

func TestRespondError_DetailOnlyWhenEnabled(t *testing.T) {
	// debug mode alone must not leak the cause
	gin.SetMode(gin.DebugMode)
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	cases := []struct {
		name   string
		expose bool
	}{
		{"staging", false},
		{"development", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			failingRouter(tc.expose).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
			require.Equal(t, http.StatusInternalServerError, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "Failed to fetch tasks", body["message"])
			if tc.expose {
				assert.Equal(t, "pq: connection refused", body["error"])
			} else {
				assert.NotContains(t, body, "error")
			}
		})
	}
}

func TestRespondError_KindsToStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[services.Kind]int{
		services.KindValidation:         http.StatusBadRequest,
		services.KindNotAuthenticated:   http.StatusUnauthorized,
		services.KindInvalidCredentials: http.StatusUnauthorized,
		services.KindForbidden:          http.StatusForbidden,
		services.KindNotFound:           http.StatusNotFound,
	}
	for kind, want := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondError(c, "test", &services.Error{Kind: kind, Message: "m"}, "fallback")
		assert.Equal(t, want, w.Code, kind.String())
	}
}
