package handlers

import (
	"errors"
	"log"

	"panotour/internal/middleware"
	"panotour/internal/models"
	"panotour/internal/services"
	"panotour/pkg/auth"

	"github.com/gofiber/fiber/v2"
)

// LocalAuthHandler handles registration, login and the current user
type LocalAuthHandler struct {
	jwtAuth     *auth.LocalJWTAuth
	userService *services.UserService
}

// NewLocalAuthHandler creates a new local auth handler
func NewLocalAuthHandler(jwtAuth *auth.LocalJWTAuth, userService *services.UserService) *LocalAuthHandler {
	return &LocalAuthHandler{
		jwtAuth:     jwtAuth,
		userService: userService,
	}
}

// Register creates a new user account and signs it in
// POST /api/auth/register
func (h *LocalAuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Register(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	resp, err := h.issue(user)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login exchanges a username and password for a bearer token.
// Accepts JSON or an application/x-www-form-urlencoded body.
// POST /api/auth/login
func (h *LocalAuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.userService.Authenticate(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			log.Printf("⚠️ [AUTH] Failed login for %q from %s", req.Username, c.IP())
			c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		}
		return respondError(c, err)
	}

	resp, err := h.issue(user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Me returns the authenticated user
// GET /api/auth/me
func (h *LocalAuthHandler) Me(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(user)
}

func (h *LocalAuthHandler) issue(user *models.User) (*models.AuthResponse, error) {
	token, expiresAt, err := h.jwtAuth.GenerateToken(user.Username)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
		User:        user,
	}, nil
}
