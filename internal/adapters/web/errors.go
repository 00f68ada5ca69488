package web

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"twittertext/internal/domain"
)

// errorResponse is the JSON body of every failed API call.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// errBadRequest marks a body that could not be decoded.
var errBadRequest = errors.New("malformed request body")

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrEmptyText):
		return fiber.StatusBadRequest, "empty_text"
	case errors.Is(err, domain.ErrTextTooLong):
		return fiber.StatusRequestEntityTooLarge, "text_too_long"
	case errors.Is(err, domain.ErrUnknownConfig):
		return fiber.StatusNotFound, "unknown_config"
	case errors.Is(err, domain.ErrUnknownEntityType):
		return fiber.StatusBadRequest, "unknown_entity_type"
	case errors.Is(err, domain.ErrUnknownValidation):
		return fiber.StatusBadRequest, "unknown_validation"
	case errors.Is(err, domain.ErrRateLimited):
		return fiber.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, errBadRequest):
		return fiber.StatusBadRequest, "bad_request"
	}
	return fiber.StatusInternalServerError, "internal"
}

// friendlyError returns a short message suitable for the playground page.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyText):
		return "Type or paste some text to analyze."
	case errors.Is(err, domain.ErrTextTooLong):
		return "That text is too large to analyze here."
	case errors.Is(err, domain.ErrUnknownConfig):
		return "That configuration isn't available. Pick one from the list."
	case errors.Is(err, domain.ErrRateLimited):
		return "Too many requests. Please wait a moment and try again."
	default:
		return "Unable to analyze this text right now. Please try again in a moment."
	}
}

func writeError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	return c.Status(status).JSON(errorResponse{Error: err.Error(), Code: code})
}

func strconvSeconds(d time.Duration) string {
	return strconv.Itoa(max(int(d.Seconds()), 1))
}
