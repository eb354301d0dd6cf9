package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskmate/internal/models"
	"taskmate/internal/services"
)

type fakeAuth func(token string) (*models.User, error)

func (f fakeAuth) Authenticate(_ context.Context, token string) (*models.User, error) {
	return f(token)
}

func newGate(auth Authenticator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(auth), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthMiddleware_Codes(t *testing.T) {
	auth := fakeAuth(func(token string) (*models.User, error) {
		switch token {
		case "good":
			return &models.User{ID: "u1"}, nil
		case "expired":
			return nil, services.ErrTokenExpired
		case "ghost":
			return nil, &services.Error{Kind: services.KindNotAuthenticated, Err: services.ErrUserNotFound}
		}
		return nil, services.ErrTokenInvalid
	})
	r := newGate(auth)

	cases := []struct {
		name   string
		cookie string
		header string
		status int
		code   string
	}{
		{"no token", "", "", http.StatusUnauthorized, CodeNoToken},
		{"expired", "expired", "", http.StatusUnauthorized, CodeTokenExpired},
		{"invalid", "garbage", "", http.StatusUnauthorized, CodeTokenInvalid},
		{"deleted user", "ghost", "", http.StatusUnauthorized, CodeUserNotFound},
		{"cookie", "good", "", http.StatusOK, ""},
		{"bearer fallback", "", "Bearer good", http.StatusOK, ""},
		{"malformed header", "", "Token good", http.StatusUnauthorized, CodeNoToken},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessCookie, Value: tc.cookie})
			}
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tc.status, w.Code)
			body := decode(t, w)
			if tc.code == "" {
				assert.Equal(t, "u1", body["id"])
				return
			}
			assert.Equal(t, false, body["success"])
			assert.Equal(t, tc.code, body["code"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestAuthMiddleware_StoreFailureIs500(t *testing.T) {
	r := newGate(fakeAuth(func(string) (*models.User, error) {
		return nil, errors.New("db down")
	}))
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessCookie, Value: "x"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecovery_StackOnlyInDevelopment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, dev := range []bool{true, false} {
		r := gin.New()
		r.Use(Recovery(dev))
		r.GET("/boom", func(*gin.Context) { panic("kaboom") })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		body := decode(t, w)
		assert.Equal(t, false, body["success"])
		_, hasStack := body["stack"]
		assert.Equal(t, dev, hasStack)
	}
}
