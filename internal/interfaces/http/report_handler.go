package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-inventario/internal/application/inventory"
)

// ReportHandler sirve el reporte de inventario en PDF.
type ReportHandler struct {
	uc *inventory.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *inventory.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockPDF godoc
// @Summary      Reporte de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/report.pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	data, filename, err := h.uc.StockReportPDF(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, filename))
	return c.Send(data)
}
