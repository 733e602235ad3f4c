package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"catalog-app/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware rejects requests without a valid bearer token and puts the
// token's subject claim on the context as user_id. Tokens are issued by the
// user service; this side only decodes them with the shared secret.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := userIDFromHeader(c.GetHeader("Authorization"))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller when a valid token is present
// and lets the request through as an anonymous viewer otherwise.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := userIDFromHeader(c.GetHeader("Authorization")); err == nil {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

func userIDFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", fmt.Errorf("Authorization header missing")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return "", fmt.Errorf("Bearer token malformed")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.JWT_SECRET), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("Invalid token claims")
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", fmt.Errorf("Token has no subject")
	}
	return sub, nil
}
