package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/imprentacamiri/imprenta-api/internal/application/dashboard"
	"github.com/imprentacamiri/imprenta-api/pkg/logger"
)

// DashboardHandler maneja los endpoints del panel.
type DashboardHandler struct {
	uc  *dashboard.UseCase
	log *logger.Logger
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.UseCase, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{uc: uc, log: log}
}

// GetSummary devuelve el resumen del negocio.
// GET /api/dashboard/resumen
//
// Respuesta: DashboardSummaryDTO (pedidos_por_estado, total_facturado, total_pagado,
// saldo_pendiente, inventario_bajo, etiqueta_fecha).
// Los montos excluyen pedidos cancelados.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(summary)
}
