package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
)

const scopeKey = "scope"

// AuthMiddleware validates the bearer token and stores the caller's access scope.
// Tokens whose scope cannot be resolved are rejected here, before any analytics runs.
func AuthMiddleware(jwtService *JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Get token from Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization header",
			})
		}

		// Check if it's a Bearer token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		claims, err := jwtService.ValidateAccessToken(parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		scope := claims.Scope()
		if err := scope.Validate(); err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Access denied: token carries no client scope",
			})
		}

		c.Locals("userID", claims.UserID)
		c.Locals("role", claims.Role)
		c.Locals(scopeKey, scope)
		c.Locals("user", &UserInfo{
			ID:         claims.UserID,
			Email:      claims.Email,
			Role:       claims.Role,
			ClientName: claims.ClientName,
			Category:   claims.Category,
		})

		return c.Next()
	}
}

// ScopeFromContext returns the access scope stored by AuthMiddleware
func ScopeFromContext(c *fiber.Ctx) (analytics.AccessScope, bool) {
	scope, ok := c.Locals(scopeKey).(analytics.AccessScope)
	return scope, ok
}

// RequireRole creates a middleware that checks if user has required role
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleStr, ok := c.Locals("role").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Unauthorized",
			})
		}

		// Check if user has required role
		for _, role := range roles {
			if roleStr == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Insufficient permissions",
		})
	}
}
