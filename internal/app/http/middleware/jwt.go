package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"parking-app/config"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Context keys set by AuthMiddleware.
const (
	CtxSubject = "user_id"
	CtxEmail   = "email"
	CtxRole    = "role"
	CtxUnitID  = "unit_id"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the caller identity carried by a bearer token.
type Claims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	UnitID  string `json:"unit_id"`
}

type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (Claims, error)
}

// HMACVerifier checks tokens signed with the shared JWT secret.
type HMACVerifier struct {
	Key []byte
}

func (v HMACVerifier) Verify(_ context.Context, raw string) (Claims, error) {
	if len(v.Key) == 0 {
		return Claims{}, errors.New("JWT secret not configured")
	}

	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.Key, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	return claimsFromMap(mc), nil
}

// OIDCVerifier checks ID tokens issued by the external identity provider.
type OIDCVerifier struct {
	verifier *oidc.IDTokenVerifier
}

func NewOIDCVerifier(ctx context.Context, issuer, clientID string) (*OIDCVerifier, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc provider %s: %w", issuer, err)
	}
	return &OIDCVerifier{verifier: provider.Verifier(&oidc.Config{ClientID: clientID})}, nil
}

func (v *OIDCVerifier) Verify(ctx context.Context, raw string) (Claims, error) {
	idToken, err := v.verifier.Verify(ctx, raw)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var mc map[string]interface{}
	if err := idToken.Claims(&mc); err != nil {
		return Claims{}, ErrInvalidToken
	}
	return claimsFromMap(mc), nil
}

// NewVerifier picks OIDC when an issuer is configured, otherwise HMAC.
func NewVerifier(ctx context.Context) (TokenVerifier, error) {
	if config.OIDC_ISSUER != "" {
		return NewOIDCVerifier(ctx, config.OIDC_ISSUER, config.OIDC_CLIENT_ID)
	}
	return HMACVerifier{Key: []byte(config.JWT_SECRET)}, nil
}

func claimsFromMap(m map[string]interface{}) Claims {
	var c Claims
	c.Subject = stringClaim(m, "sub")
	if c.Subject == "" {
		c.Subject = stringClaim(m, "user_id")
	}
	c.Email = stringClaim(m, "email")
	c.Role = stringClaim(m, "role")
	c.UnitID = stringClaim(m, "unit_id")
	return c
}

func stringClaim(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%.0f", v)
	default:
		return ""
	}
}

func AuthMiddleware(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing", "code": "unauthorized"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Bearer token malformed", "code": "unauthorized"})
			return
		}

		claims, err := v.Verify(c.Request.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "code": "unauthorized"})
			return
		}

		c.Set(CtxSubject, claims.Subject)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxUnitID, claims.UnitID)
		c.Next()
	}
}
