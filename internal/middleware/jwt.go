package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"lumina_back_end/internal/config"
)

// parseToken verifies an HMAC JWT issued by the hosted auth provider and
// returns its claims. Only the contract the storefront relies on is checked:
// a user id subject and an email claim.
func parseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return config.JWTSecret(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid claims")
	}
	return claims, nil
}

func bearerToken(c *gin.Context) string {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func setIdentity(c *gin.Context, claims jwt.MapClaims) bool {
	userID, _ := claims["sub"].(string)
	if userID == "" {
		// some providers put the id in user_id instead of sub
		userID, _ = claims["user_id"].(string)
	}
	if userID == "" {
		return false
	}

	c.Set("user_id", userID)
	if email, ok := claims["email"].(string); ok {
		c.Set("email", email)
	}
	return true
}

// AuthRequired rejects requests without a valid token. Used by the account
// pages (order history).
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or malformed Authorization header"})
			c.Abort()
			return
		}

		claims, err := parseToken(tokenString)
		if err != nil || !setIdentity(c, claims) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AuthOptional attaches the user identity when a valid token is present and
// lets guests through untouched. Checkout uses it: orders are tied to the
// account when there is one, guest contact fields otherwise.
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := bearerToken(c); tokenString != "" {
			if claims, err := parseToken(tokenString); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}
