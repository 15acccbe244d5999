package users

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"parking-app/internal/app/http/middleware"
	"parking-app/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.AuthMiddleware(middleware.HMACVerifier{Key: []byte(testutil.JWTSecret)}), GetCurrentUser)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+testutil.Token(t, "res-1", "Resident", "unit-7"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"user": {"id": "res-1", "email": "res-1@example.com", "unit_id": "unit-7"},
		"access": {"role": "resident", "permissions": ["permits:issue", "permits:read", "units:read"], "any_unit": false}
	}`, w.Body.String())
}

func TestGetCurrentUser_NoSubject(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", GetCurrentUser)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
