package handlers

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"unicode"

	"panotour/internal/services"
	"panotour/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors to HTTP status codes.
// Unexpected errors are logged and reported as a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	}

	if status == fiber.StatusInternalServerError {
		log.Printf("❌ %s %s failed: %v", c.Method(), c.Path(), err)
		return c.Status(status).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"error": errorMessage(err),
	})
}

// ErrorHandler renders errors returned from handlers, *fiber.Error included,
// as {"error": message}
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
		})
	}
	return respondError(c, err)
}

func badRequest(msg string) error {
	return fiber.NewError(fiber.StatusBadRequest, msg)
}

// errorMessage turns "invalid input: name is required" into "Name is required"
func errorMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{services.ErrConflict, services.ErrInvalidInput} {
		msg = strings.TrimPrefix(msg, sentinel.Error()+": ")
	}
	if msg == "" {
		return msg
	}
	r := []rune(msg)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// parseBody decodes the request body into req and validates it.
// The returned error is a 400 *fiber.Error.
func parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return badRequest("Invalid request body")
	}
	if err := validation.ValidateStruct(req); err != nil {
		return badRequest(err.Error())
	}
	return nil
}

// idParam parses a positive integer route parameter
func idParam(c *fiber.Ctx, name string) (int64, error) {
	return parseID(c.Params(name), name)
}

// idQuery parses a required positive integer query value
func idQuery(c *fiber.Ctx, name string) (int64, error) {
	return parseID(c.Query(name), name)
}

func parseID(raw, name string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, badRequest("Invalid " + name)
	}
	return id, nil
}
