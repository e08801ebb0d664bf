package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/resumen.
type DashboardSummaryDTO struct {
	// Pedidos por estado (siempre incluye los cuatro estados, aunque sea con 0)
	OrdersByStatus map[string]int `json:"pedidos_por_estado"`

	// Montos de pedidos no cancelados
	TotalBilled        string `json:"total_facturado"`
	TotalPaid          string `json:"total_pagado"`
	OutstandingBalance string `json:"saldo_pendiente"` // facturado - pagado

	LowStock          []LowStockItemDTO `json:"inventario_bajo"`
	LowStockThreshold int               `json:"umbral_inventario_bajo"`

	DateLabel string `json:"etiqueta_fecha"` // ej: "Octubre 2026"
}

// LowStockItemDTO ítem de inventario por debajo del umbral.
type LowStockItemDTO struct {
	ID       string `json:"id"`
	Name     string `json:"nombre"`
	Quantity int    `json:"cantidad"`
}
