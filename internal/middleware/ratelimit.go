package middleware

import (
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimitConfig holds rate limiting settings
type RateLimitConfig struct {
	// Login/register attempts (per IP)
	AuthMax        int
	AuthExpiration time.Duration

	// File uploads (per user)
	UploadMax        int
	UploadExpiration time.Duration
}

// NewRateLimitConfig builds per-minute limits; non-positive values fall back to defaults
func NewRateLimitConfig(authPerMinute, uploadPerMinute int) *RateLimitConfig {
	if authPerMinute <= 0 {
		authPerMinute = 20
	}
	if uploadPerMinute <= 0 {
		uploadPerMinute = 30
	}
	return &RateLimitConfig{
		AuthMax:          authPerMinute,
		AuthExpiration:   1 * time.Minute,
		UploadMax:        uploadPerMinute,
		UploadExpiration: 1 * time.Minute,
	}
}

// AuthRateLimiter limits credential endpoints by client IP
func AuthRateLimiter(config *RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.AuthMax,
		Expiration: config.AuthExpiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "auth:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Printf("🚫 [RATE-LIMIT] Auth limit reached for IP: %s", c.IP())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Too many login attempts. Please wait before trying again.",
				"retry_after": int(config.AuthExpiration.Seconds()),
			})
		},
	})
}

// UploadRateLimiter limits upload endpoints by authenticated user, falling back to IP
func UploadRateLimiter(config *RateLimitConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        config.UploadMax,
		Expiration: config.UploadExpiration,
		KeyGenerator: func(c *fiber.Ctx) string {
			if id := UserID(c); id != 0 {
				return "upload:" + strconv.FormatInt(id, 10)
			}
			return "upload-ip:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Printf("⚠️  [RATE-LIMIT] Upload limit reached for user: %s on %s", Username(c), c.Path())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":       "Too many uploads. Please wait before uploading more files.",
				"retry_after": int(config.UploadExpiration.Seconds()),
			})
		},
	})
}
