package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/models"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/services"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/shared/utils"
)

// respondError maps engine errors onto HTTP statuses.
// Unexpected errors are logged and answered with a generic message.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, analytics.ErrAccessDenied):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, analytics.ErrInvalidFilter):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, analytics.ErrResourceExhausted):
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(models.ErrorResponse{
			Error: err.Error() + "; narrow the filters or use the summary endpoint",
		})
	case errors.Is(err, services.ErrBuildInProgress):
		return c.Status(fiber.StatusConflict).JSON(models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusGatewayTimeout).JSON(models.ErrorResponse{Error: "query timed out"})
	}

	utils.Logger(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{Error: "internal server error"})
}
