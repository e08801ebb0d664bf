// Package dashboard arma el resumen del panel principal: pedidos por estado,
// montos facturados/cobrados e inventario bajo.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/imprentacamiri/imprenta-api/internal/application/dto"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
)

// UseCase genera el resumen del panel.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type UseCase struct {
	repo              repository.DashboardRepository
	lowStockThreshold int
	now               func() time.Time
}

// NewUseCase construye el caso de uso. lowStockThreshold es el umbral de "inventario bajo".
func NewUseCase(repo repository.DashboardRepository, lowStockThreshold int) *UseCase {
	return &UseCase{repo: repo, lowStockThreshold: lowStockThreshold, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Tres llamadas en paralelo:
//  1. CountOrdersByStatus     → OrdersByStatus
//  2. OrderTotals             → TotalBilled, TotalPaid, OutstandingBalance
//  3. LowStockItems(umbral)   → LowStock
func (uc *UseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type countsResult struct {
		counts map[entity.OrderStatus]int
		err    error
	}
	type totalsResult struct {
		billed decimal.Decimal
		paid   decimal.Decimal
		err    error
	}
	type lowStockResult struct {
		items []*entity.InventoryItem
		err   error
	}

	countsCh := make(chan countsResult, 1)
	totalsCh := make(chan totalsResult, 1)
	lowCh := make(chan lowStockResult, 1)

	go func() {
		counts, err := uc.repo.CountOrdersByStatus(ctx)
		countsCh <- countsResult{counts, err}
	}()
	go func() {
		billed, paid, err := uc.repo.OrderTotals(ctx)
		totalsCh <- totalsResult{billed, paid, err}
	}()
	go func() {
		items, err := uc.repo.LowStockItems(ctx, uc.lowStockThreshold)
		lowCh <- lowStockResult{items, err}
	}()

	counts := <-countsCh
	totals := <-totalsCh
	low := <-lowCh

	if counts.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos por estado: %w", counts.err)
	}
	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales: %w", totals.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: inventario bajo: %w", low.err)
	}

	byStatus := make(map[string]int, len(entity.OrderStatuses))
	for _, s := range entity.OrderStatuses {
		byStatus[string(s)] = counts.counts[s]
	}
	lowStock := make([]dto.LowStockItemDTO, 0, len(low.items))
	for _, it := range low.items {
		lowStock = append(lowStock, dto.LowStockItemDTO{ID: it.ID, Name: it.Name, Quantity: it.Quantity})
	}

	return &dto.DashboardSummaryDTO{
		OrdersByStatus:     byStatus,
		TotalBilled:        totals.billed.StringFixed(2),
		TotalPaid:          totals.paid.StringFixed(2),
		OutstandingBalance: totals.billed.Sub(totals.paid).StringFixed(2),
		LowStock:           lowStock,
		LowStockThreshold:  uc.lowStockThreshold,
		DateLabel:          monthLabel(uc.now()),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
