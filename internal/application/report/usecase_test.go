package report

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/imprentacamiri/imprenta-api/internal/infrastructure/memory"
)

type captureGenerator struct{ doc Document }

func (g *captureGenerator) GenerateReport(_ context.Context, doc Document) ([]byte, error) {
	g.doc = doc
	return []byte("%PDF-fake"), nil
}

func newTestUseCase(t *testing.T) (*UseCase, *captureGenerator) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	orders := memory.NewOrderRepository(store)
	inventory := memory.NewInventoryRepository(store)
	day := func(d int) time.Time { return time.Date(2026, time.March, d, 10, 0, 0, 0, time.Local) }

	for i, o := range []struct {
		created        time.Time
		total, payment string
	}{
		{day(1), "150.00", "50.00"},
		{day(5), "1200.00", "1300.00"},
		{day(9), "10.00", "0"},
	} {
		total := decimal.RequireFromString(o.total)
		payment := decimal.RequireFromString(o.payment)
		require.NoError(t, orders.Create(ctx, &entity.Order{
			ID: string(rune('a' + i)), ClientName: "Ana Rojas", ProductName: "Tarjetas", Quantity: 1,
			TotalPrice: total, Payment: payment, Balance: total.Sub(payment),
			Status: entity.StatusPendiente, CreatedAt: o.created,
		}))
	}
	require.NoError(t, inventory.Create(ctx, &entity.InventoryItem{ID: "i1", Name: "Papel", Quantity: 7, EntryDate: day(2)}))
	require.NoError(t, inventory.Create(ctx, &entity.InventoryItem{ID: "i2", Name: "Sobres", Quantity: 24, SoldByDozen: true, Dozens: 2, EntryDate: day(20)}))

	gen := &captureGenerator{}
	uc := NewUseCase(orders, inventory, memory.NewClientRepository(store), memory.NewProductRepository(store), gen)
	uc.now = func() time.Time { return time.Date(2026, time.October, 16, 9, 0, 0, 0, time.Local) }
	return uc, gen
}

func TestGenerate_PedidosFiltraPorRangoInclusivoYSumaTotales(t *testing.T) {
	uc, gen := newTestUseCase(t)

	pdf, filename, err := uc.Generate(context.Background(), Request{Kind: "Pedidos", From: "2026-03-01", To: "2026-03-05"})

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	assert.Equal(t, "reporte_pedidos_2026-10-16.pdf", filename)
	assert.Len(t, gen.doc.Rows, 2)
	assert.Equal(t, "Del 01/03/2026 al 05/03/2026", gen.doc.Subtitle)
	assert.Equal(t, []Total{
		{Label: "Pedidos:", Value: "2"},
		{Label: "Total:", Value: "Bs 1.350,00"},
		{Label: "Pagado:", Value: "Bs 1.350,00"},
		{Label: "Saldo:", Value: "Bs 0,00"},
	}, gen.doc.Totals)
}

func TestGenerate_InventarioFiltraPorFechaDeIngreso(t *testing.T) {
	uc, gen := newTestUseCase(t)

	_, filename, err := uc.Generate(context.Background(), Request{Kind: "inventario", From: "2026-03-10"})

	require.NoError(t, err)
	assert.Equal(t, "reporte_inventario_2026-10-16.pdf", filename)
	require.Len(t, gen.doc.Rows, 1)
	assert.Equal(t, "Sobres", gen.doc.Rows[0][1])
	assert.Equal(t, "2", gen.doc.Rows[0][3])
}

func TestGenerate_SinRangoIncluyeTodo(t *testing.T) {
	uc, gen := newTestUseCase(t)

	_, _, err := uc.Generate(context.Background(), Request{Kind: "pedidos"})

	require.NoError(t, err)
	assert.Len(t, gen.doc.Rows, 3)
	assert.Equal(t, "Todos los registros", gen.doc.Subtitle)
}

func TestGenerate_ParametrosInvalidos(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()

	for name, in := range map[string]Request{
		"tipo desconocido": {Kind: "facturas"},
		"tipo vacío":       {},
		"fecha inválida":   {Kind: "clientes", From: "marzo"},
		"rango invertido":  {Kind: "clientes", From: "2026-03-10", To: "2026-03-01"},
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := uc.Generate(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":         "Bs 0,00",
		"15.5":      "Bs 15,50",
		"1234567.5": "Bs 1.234.567,50",
		"-4.5":      "Bs -4,50",
		"999":       "Bs 999,00",
		"1000":      "Bs 1.000,00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatMoney(decimal.RequireFromString(in)), in)
	}
}
