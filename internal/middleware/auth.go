package middleware

import (
	"eventhub-backend/internal/apperrors"
	"eventhub-backend/internal/authz"
	"eventhub-backend/internal/config"
	"eventhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const (
	identityKey = "identity"
	scopeKey    = "scope"
)

// JWT verifies the bearer token and evaluates the caller's identity and
// authorization scope once, making both available to every handler below.
func JWT(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(cfg.JWTSecret),
		ContextKey:   "user",
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token := c.Locals("user").(*jwt.Token)
			claims := token.Claims.(jwt.MapClaims)

			rawID, _ := claims["user_id"].(string)
			userID, err := uuid.Parse(rawID)
			if err != nil {
				return jwtError(c, err)
			}

			name, _ := claims["name"].(string)
			email, _ := claims["email"].(string)
			role, _ := claims["role"].(string)

			ident := authz.Identity{ID: userID, Name: name, Email: email, Role: role}
			c.Locals(identityKey, ident)
			c.Locals(scopeKey, authz.ScopeFor(ident))
			return c.Next()
		},
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	return utils.Fail(c, apperrors.ErrUnauthorized.Status, apperrors.ErrUnauthorized.Code)
}

// RequireAdmin gates a route group to unrestricted scopes.
func RequireAdmin(c *fiber.Ctx) error {
	scope, ok := c.Locals(scopeKey).(authz.Scope)
	if !ok || !scope.Unrestricted() {
		return utils.Fail(c, apperrors.ErrForbidden.Status, apperrors.ErrForbidden.Code)
	}
	return c.Next()
}

// Identity returns the authenticated caller set by the JWT middleware.
func Identity(c *fiber.Ctx) authz.Identity {
	ident, _ := c.Locals(identityKey).(authz.Identity)
	return ident
}

// Scope returns the caller's authorization scope set by the JWT middleware.
func Scope(c *fiber.Ctx) authz.Scope {
	scope, ok := c.Locals(scopeKey).(authz.Scope)
	if !ok {
		return authz.ScopeFor(authz.Identity{})
	}
	return scope
}
