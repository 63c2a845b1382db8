package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"shifttrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionChecker reports whether a session id is still live for the given
// view. Logging into another view revokes the old session, so a stale token
// fails here even before it expires.
type SessionChecker interface {
	IsActive(ctx context.Context, sessionID, view string) bool
}

func Auth(secret string, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			code, msg := "INVALID_TOKEN", "Invalid token"
			if err != nil && strings.Contains(err.Error(), "expired") {
				code, msg = "TOKEN_EXPIRED", "Token has expired"
			}
			response.Error(c, http.StatusUnauthorized, code, msg, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		sessionID, ok := claims["sid"].(string)
		if !ok || sessionID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Session ID not found in token", nil)
			c.Abort()
			return
		}

		subject, ok := claims["sub"].(string)
		if !ok || subject == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Subject not found in token", nil)
			c.Abort()
			return
		}

		view, ok := claims["view"].(string)
		if !ok || view == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "View not found in token", nil)
			c.Abort()
			return
		}

		if sessions != nil && !sessions.IsActive(c.Request.Context(), sessionID, view) {
			response.Error(c, http.StatusUnauthorized, "SESSION_REVOKED", "Session is no longer active", nil)
			c.Abort()
			return
		}

		section, _ := claims["section"].(string)

		c.Set("session_id", sessionID)
		c.Set("user_id", subject)
		c.Set("view", view)
		c.Set("section", section)

		c.Next()
	}
}
