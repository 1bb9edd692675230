package middleware

import (
	"context"
	"strings"

	"bilim-chat/internal/handler"
	"bilim-chat/internal/services"
	apperrors "bilim-chat/pkg/errors"
	"bilim-chat/pkg/logger"

	"github.com/gin-gonic/gin"
)

const bearerPrefix = "Bearer "

var (
	errUnauthorized = apperrors.New(apperrors.ErrUnauthorized, "Unauthorized")
	errInvalidToken = apperrors.New(apperrors.ErrInvalidToken, "Invalid token")
)

// TokenVerifier is the part of the token service the guard needs.
type TokenVerifier interface {
	Verify(token string) (services.Claims, error)
}

// AuthMiddleware requires "Authorization: Bearer <token>" and attaches the
// caller's identity to the request context.
func AuthMiddleware(tokens TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			handler.WriteError(c, errUnauthorized)
			return
		}

		identity, err := Authenticate(tokens, token)
		if err != nil {
			handler.WriteError(c, err)
			return
		}

		ctx := services.WithIdentity(c.Request.Context(), identity)
		ctx = context.WithValue(ctx, logger.UserIdKey, identity.UserID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// Authenticate verifies a raw token and resolves it to an identity.
// Every failure is the same "Invalid token" error.
func Authenticate(tokens TokenVerifier, token string) (services.Identity, error) {
	claims, err := tokens.Verify(token)
	if err != nil {
		return services.Identity{}, errInvalidToken
	}
	identity, err := claims.Identity()
	if err != nil {
		return services.Identity{}, errInvalidToken
	}
	return identity, nil
}

// BearerToken requires the exact, case-sensitive "Bearer " prefix and a
// non-empty token after it.
func BearerToken(value string) (string, bool) {
	token, found := strings.CutPrefix(value, bearerPrefix)
	if !found || token == "" {
		return "", false
	}
	return token, true
}
