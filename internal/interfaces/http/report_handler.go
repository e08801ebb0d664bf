package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/imprentacamiri/imprenta-api/internal/application/report"
	"github.com/imprentacamiri/imprenta-api/pkg/logger"
)

// ReportHandler descarga de reportes PDF (protegido).
type ReportHandler struct {
	uc  *report.UseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Download godoc
// @Summary      Descargar reporte PDF
// @Tags         reportes
// @Security     Bearer
// @Produce      application/pdf
// @Param        tipo   query  string  true   "pedidos, inventario, clientes o productos"
// @Param        desde  query  string  false  "AAAA-MM-DD (inclusive)"
// @Param        hasta  query  string  false  "AAAA-MM-DD (inclusive)"
// @Success      200    {file}    binary
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reporte-pdf [get]
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.uc.Generate(c.UserContext(), report.Request{
		Kind: c.Query("tipo"),
		From: c.Query("desde"),
		To:   c.Query("hasta"),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return c.Send(pdfBytes)
}
