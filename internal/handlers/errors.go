package handlers

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gamesync/internal/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the error envelope every endpoint returns.
type ErrorResponse struct {
	Timestamp string            `json:"timestamp"`
	Status    int               `json:"status"`
	Error     string            `json:"error"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
}

func newErrorResponse(status int, label, message string) ErrorResponse {
	return ErrorResponse{
		Timestamp: time.Now().Format(time.RFC3339),
		Status:    status,
		Error:     label,
		Message:   message,
	}
}

// writeError translates a service failure into the HTTP envelope. Anything
// outside the taxonomy becomes a 500 without leaking internals.
func writeError(c *fiber.Ctx, err error) error {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		switch {
		case errors.Is(err, apperror.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(newErrorResponse(fiber.StatusNotFound, "Not Found", appErr.Message))
		case errors.Is(err, apperror.ErrConflict):
			return c.Status(fiber.StatusConflict).JSON(newErrorResponse(fiber.StatusConflict, "Conflict", appErr.Message))
		case errors.Is(err, apperror.ErrUnauthenticated):
			return c.Status(fiber.StatusUnauthorized).JSON(newErrorResponse(fiber.StatusUnauthorized, "Unauthorized", appErr.Message))
		case errors.Is(err, apperror.ErrValidation):
			resp := newErrorResponse(fiber.StatusBadRequest, "Bad Request", appErr.Message)
			resp.Fields = appErr.Fields
			return c.Status(fiber.StatusBadRequest).JSON(resp)
		}
	}

	log.Printf("Unexpected error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(newErrorResponse(
		fiber.StatusInternalServerError,
		"Internal Server Error",
		"An unexpected internal server error occurred. Please try again later.",
	))
}

// writeBodyParseError reports an unreadable request body.
func writeBodyParseError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(newErrorResponse(
		fiber.StatusBadRequest, "Bad Request", fmt.Sprintf("invalid request body: %v", err)))
}

// checkStruct validates the request and, on failure, collects every field
// violation into one response instead of failing on the first.
func checkStruct(validate *validator.Validate, req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return err
		}
		fields := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' rule", e.Field(), e.Tag())
		}
		return apperror.Validation(fields)
	}
	return nil
}
