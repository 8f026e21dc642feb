package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/services"
)

type RollupHandler struct {
	rollupService *services.RollupService
}

func NewRollupHandler(rollupService *services.RollupService) *RollupHandler {
	return &RollupHandler{rollupService: rollupService}
}

// RebuildSummary godoc
// @Summary Rebuild products_summary
// @Description Recompute the rollup table from raw observations. Admin only.
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Success 200 {object} services.BuildReport
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /api/admin/rollup [post]
func (h *RollupHandler) RebuildSummary(c *fiber.Ctx) error {
	report, err := h.rollupService.Build(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}
