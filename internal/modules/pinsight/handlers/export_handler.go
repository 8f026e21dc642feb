package handlers

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/analytics"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/auth"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/models"
	"github.com/MuhamadAgungGumelar/pinsight-be/internal/modules/pinsight/services"
)

type ExportHandler struct {
	dashboard *DashboardHandler
	exporter  export.Exporter
}

func NewExportHandler(dashboard *DashboardHandler, exporter export.Exporter) *ExportHandler {
	return &ExportHandler{dashboard: dashboard, exporter: exporter}
}

// ExportDashboard godoc
// @Summary Export dashboard as a workbook
// @Description Filtered (default) or summary dashboard written as an .xlsx file, one sheet per section
// @Tags Dashboard
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param Authorization header string true "Bearer token"
// @Param source query string false "raw or summary" default(raw)
// @Param filter body models.DashboardFilterRequest false "Filters"
// @Success 200 {file} binary
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Router /api/dashboard/export [post]
func (h *ExportHandler) ExportDashboard(c *fiber.Ctx) error {
	scope, ok := auth.ScopeFromContext(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse{Error: "Unauthorized"})
	}

	filter, err := h.dashboard.parseFilter(c)
	if err != nil {
		return respondError(c, err)
	}

	svc := h.dashboard.dashboardService
	var result *analytics.Result
	source := c.Query("source", "raw")
	switch source {
	case "raw":
		result, err = svc.Filtered(c.UserContext(), scope, filter)
	case "summary":
		result, err = svc.Rollup(c.UserContext(), scope, filter)
	default:
		return respondError(c, fmt.Errorf("%w: unknown source %q", analytics.ErrInvalidFilter, source))
	}
	if err != nil {
		return respondError(c, err)
	}

	now := svc.Now()
	var buf bytes.Buffer
	if err := h.exporter.Export(services.DashboardWorkbook(result, "Pinsight dashboard", now), &buf); err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("pinsight-%s-%s%s", source, now.UTC().Format("20060102-150405"), h.exporter.FileExtension())
	c.Set(fiber.HeaderContentType, h.exporter.ContentType())
	c.Attachment(filename)
	return c.Send(buf.Bytes())
}
