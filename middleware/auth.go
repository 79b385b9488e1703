package middleware

import (
	"strings"

	"staffledger/config"
	"staffledger/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func extractToken(c *fiber.Ctx) (string, error) {
	auth := c.Get("Authorization")
	if auth == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token format")
	}

	return parts[1], nil
}

func RequireAuth(c *fiber.Ctx) error {
	token, err := extractToken(c)
	if err != nil {
		return err
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}

	// Claims land in locals for the handlers
	c.Locals("username", claims["username"])
	c.Locals("role", claims["role"])
	if id, ok := claims["employee_id"].(float64); ok {
		c.Locals("employee_id", uint(id))
	}

	return c.Next()
}

// RequireAdmin checks the role claim set by RequireAuth; chain it after
// RequireAuth on the route.
func RequireAdmin(c *fiber.Ctx) error {
	if c.Locals("role") != models.RoleAdministrator {
		return c.Status(403).JSON(fiber.Map{
			"error": "Administrator access required",
		})
	}
	return c.Next()
}
