package handlers

import (
	"errors"

	"github.com/geoads/backend/internal/models"
	"github.com/geoads/backend/internal/pricing"
	"github.com/gofiber/fiber/v2"
)

// statusForError maps the core error taxonomy to HTTP codes: validation
// problems are 400s, illegal transitions conflict with current state (409),
// unpriceable inputs are 422.
func statusForError(err error) int {
	var illegal *models.IllegalTransitionError
	if errors.As(err, &illegal) {
		return fiber.StatusConflict
	}
	var incomplete *pricing.IncompleteInputError
	if errors.As(err, &incomplete) {
		return fiber.StatusUnprocessableEntity
	}
	var invalidDuration *pricing.InvalidDurationError
	if errors.As(err, &invalidDuration) {
		return fiber.StatusBadRequest
	}
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		return fiber.StatusBadRequest
	}
	return fiber.StatusBadRequest
}
