package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims issued by the auth collaborator. The subject is
// the acting expert ID; Role "admin" grants the admin console. TimeZone is
// the viewer's IANA zone, used for month- and quarter-to-date boundaries.
type Claims struct {
	Role     string `json:"role,omitempty"`
	TimeZone string `json:"tz,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware creates a Gin middleware handler that validates JWT tokens.
// When issuer is non-empty the token's iss claim must match it.
func AuthMiddleware(jwtSecret, issuer string) gin.HandlerFunc {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(jwtSecret), nil
		}, opts...)
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		if !token.Valid || claims.Subject == "" {
			logger.Warn("Invalid token claims or token is not valid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		ctx := WithIdentity(c.Request.Context(), claims.Subject, claims.Role)
		if claims.TimeZone != "" {
			if loc, err := time.LoadLocation(claims.TimeZone); err == nil {
				ctx = WithViewerLocation(ctx, loc)
			} else {
				logger.Warn("Ignoring unknown tz claim", slog.String("tz", claims.TimeZone))
			}
		}
		enrichedLogger := logger.With(slog.String("user_id", claims.Subject), slog.String("role", claims.Role))
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))

		c.Next()
	}
}

// RequireAdmin rejects requests whose token does not carry the admin role.
// It must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			GetLoggerFromCtx(c.Request.Context()).Warn("Admin route requested without admin role")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
