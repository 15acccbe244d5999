package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parking-app/internal/domain/access"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("middleware-secret")

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestHMACVerifier(t *testing.T) {
	v := HMACVerifier{Key: testKey}
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		raw := sign(t, jwt.SigningMethodHS256, testKey, jwt.MapClaims{
			"sub": "u-1", "email": "a@example.com", "role": "resident", "unit_id": "unit-9",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		c, err := v.Verify(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, Claims{Subject: "u-1", Email: "a@example.com", Role: "resident", UnitID: "unit-9"}, c)
	})

	t.Run("user_id fallback", func(t *testing.T) {
		raw := sign(t, jwt.SigningMethodHS256, testKey, jwt.MapClaims{"user_id": float64(42), "role": "admin"})
		c, err := v.Verify(ctx, raw)
		require.NoError(t, err)
		assert.Equal(t, "42", c.Subject)
	})

	t.Run("expired token", func(t *testing.T) {
		raw := sign(t, jwt.SigningMethodHS256, testKey, jwt.MapClaims{"sub": "u-1", "exp": time.Now().Add(-time.Minute).Unix()})
		_, err := v.Verify(ctx, raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong key", func(t *testing.T) {
		raw := sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"sub": "u-1"})
		_, err := v.Verify(ctx, raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unsigned token", func(t *testing.T) {
		raw := sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"sub": "u-1"})
		_, err := v.Verify(ctx, raw)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := HMACVerifier{}.Verify(ctx, "anything")
		assert.Error(t, err)
	})
}

func newRouter(perm access.Permission) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", AuthMiddleware(HMACVerifier{Key: testKey}), RequirePermission(perm), func(c *gin.Context) {
		p := PolicyFrom(c)
		c.JSON(http.StatusOK, gin.H{"role": p.Role, "unit_id": p.UnitID, "sub": c.GetString(CtxSubject)})
	})
	return r
}

func TestAuthAndPermission(t *testing.T) {
	resident := sign(t, jwt.SigningMethodHS256, testKey, jwt.MapClaims{"sub": "u-1", "role": "resident", "unit_id": "unit-1"})

	cases := []struct {
		name       string
		perm       access.Permission
		header     string
		wantStatus int
	}{
		{"no header", access.PermitsRead, "", http.StatusUnauthorized},
		{"not bearer", access.PermitsRead, "Basic abc", http.StatusUnauthorized},
		{"bad token", access.PermitsRead, "Bearer nope", http.StatusUnauthorized},
		{"allowed", access.PermitsRead, "Bearer " + resident, http.StatusOK},
		{"denied", access.PermitsRevoke, "Bearer " + resident, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			newRouter(tc.perm).ServeHTTP(w, req)
			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusOK {
				assert.JSONEq(t, `{"role":"resident","unit_id":"unit-1","sub":"u-1"}`, w.Body.String())
			}
		})
	}
}

func TestRequirePermission_WithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/open", RequirePermission(access.PermitsRead), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
