package middleware

import (
	"context"
	"log"

	"panotour/internal/models"
	"panotour/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

// UserLookup resolves the username carried by a token
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// LocalAuthMiddleware verifies the bearer token and loads the user it names.
// A malformed or expired token, or one naming a user that no longer exists, yields 401.
func LocalAuthMiddleware(jwtAuth *auth.LocalJWTAuth, users UserLookup) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := auth.ExtractToken(c.Get("Authorization"))
		if err != nil {
			return unauthorized(c, "Missing or invalid authorization token")
		}

		username, err := jwtAuth.VerifyToken(token)
		if err != nil {
			log.Printf("❌ [AUTH] Token rejected: %v", err)
			return unauthorized(c, "Could not validate credentials")
		}

		user, err := users.GetByUsername(c.UserContext(), username)
		if err != nil {
			log.Printf("❌ [AUTH] Token user %q not found: %v", username, err)
			return unauthorized(c, "Could not validate credentials")
		}

		c.Locals("user_id", user.ID)
		c.Locals("username", user.Username)
		c.Locals("user", user)
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": msg,
	})
}

// UserID returns the authenticated user's id, 0 when unauthenticated
func UserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals("user_id").(int64)
	return id
}

// Username returns the authenticated user's name
func Username(c *fiber.Ctx) string {
	name, _ := c.Locals("username").(string)
	return name
}

// CurrentUser returns the authenticated user, nil when unauthenticated
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
