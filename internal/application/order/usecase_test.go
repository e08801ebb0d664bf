package order_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imprentacamiri/imprenta-api/internal/application/dto"
	apporder "github.com/imprentacamiri/imprenta-api/internal/application/order"
	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/imprentacamiri/imprenta-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc        *apporder.UseCase
	inventory *memory.InventoryRepository
	products  *memory.ProductRepository
	orders    *memory.OrderRepository
	clients   *memory.ClientRepository
	metrics   *countingMetrics
	client    *entity.Client
	product   *entity.Product
	papel     *entity.InventoryItem
	tinta     *entity.InventoryItem
}

type countingMetrics struct {
	created     int
	transitions []string
}

func (m *countingMetrics) OrderCreated() { m.created++ }
func (m *countingMetrics) OrderStatusChanged(from, to string) {
	m.transitions = append(m.transitions, from+"→"+to)
}

// newFixture arma un almacén en memoria con un cliente, dos insumos (papel=10, tinta=4)
// y un producto "Tarjetas" de 15.50 que consume ambos.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	f := &fixture{
		inventory: memory.NewInventoryRepository(store),
		products:  memory.NewProductRepository(store),
		orders:    memory.NewOrderRepository(store),
		metrics:   &countingMetrics{},
	}
	clients := memory.NewClientRepository(store)
	f.clients = clients
	now := time.Now()

	f.client = &entity.Client{ID: "cli-1", FirstName: "Ana", LastName: "Rojas", Phone: "7123456", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, clients.Create(ctx, f.client))
	f.papel = &entity.InventoryItem{ID: "inv-papel", Name: "Papel couché", Quantity: 10, EntryDate: now}
	f.tinta = &entity.InventoryItem{ID: "inv-tinta", Name: "Tinta negra", Quantity: 4, EntryDate: now}
	require.NoError(t, f.inventory.Create(ctx, f.papel))
	require.NoError(t, f.inventory.Create(ctx, f.tinta))
	f.product = &entity.Product{
		ID: "prod-1", Name: "Tarjetas", Price: decimal.RequireFromString("15.50"),
		Category: entity.CategoryTarjeta, Materials: []string{f.papel.ID, f.tinta.ID},
	}
	require.NoError(t, f.products.Create(ctx, f.product))

	f.uc = apporder.NewUseCase(memory.NewTxRunner(store), f.orders, clients, f.metrics, nil)
	return f
}

func (f *fixture) quantity(t *testing.T, id string) int {
	t.Helper()
	item, err := f.inventory.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item.Quantity
}

func (f *fixture) create(t *testing.T, qty int, payment string) *dto.OrderResponse {
	t.Helper()
	out, err := f.uc.Create(context.Background(), dto.CreateOrderRequest{
		ClientID:  f.client.ID,
		ProductID: f.product.ID,
		Quantity:  qty,
		Payment:   decimal.RequireFromString(payment),
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CalculaTotalesYReservaInventario(t *testing.T) {
	f := newFixture(t)

	out := f.create(t, 3, "20.00")

	assert.Equal(t, "15.50", out.UnitPrice)
	assert.Equal(t, "46.50", out.TotalPrice)
	assert.Equal(t, "26.50", out.Balance)
	assert.Equal(t, string(entity.StatusPendiente), out.Status)
	assert.Equal(t, "Ana Rojas", out.ClientName)
	assert.Equal(t, "Tarjetas", out.ProductName)
	assert.Equal(t, 7, f.quantity(t, f.papel.ID))
	assert.Equal(t, 1, f.quantity(t, f.tinta.ID))
	assert.Equal(t, 1, f.metrics.created)
}

func TestCreate_SobrepagoDejaSaldoNegativo(t *testing.T) {
	f := newFixture(t)

	out := f.create(t, 1, "20.00")

	assert.Equal(t, "-4.50", out.Balance)
}

// Caso: la tinta solo alcanza para 4 unidades; pedir 5 no debe persistir nada.
func TestCreate_StockInsuficienteNoPersisteNada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, dto.CreateOrderRequest{ClientID: f.client.ID, ProductID: f.product.ID, Quantity: 5})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, 10, f.quantity(t, f.papel.ID), "el papel no debe quedar descontado")
	assert.Equal(t, 4, f.quantity(t, f.tinta.ID))
	list, err := f.orders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, f.metrics.created)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bad := "31/12/2026"

	cases := []struct {
		name string
		in   dto.CreateOrderRequest
		want error
	}{
		{"cantidad cero", dto.CreateOrderRequest{ClientID: f.client.ID, ProductID: f.product.ID, Quantity: 0}, domain.ErrInvalidInput},
		{"sin cliente", dto.CreateOrderRequest{ProductID: f.product.ID, Quantity: 1}, domain.ErrInvalidInput},
		{"pago negativo", dto.CreateOrderRequest{ClientID: f.client.ID, ProductID: f.product.ID, Quantity: 1, Payment: decimal.NewFromInt(-1)}, domain.ErrInvalidInput},
		{"pago con 3 decimales", dto.CreateOrderRequest{ClientID: f.client.ID, ProductID: f.product.ID, Quantity: 1, Payment: decimal.RequireFromString("1.005")}, domain.ErrInvalidInput},
		{"fecha inválida", dto.CreateOrderRequest{ClientID: f.client.ID, ProductID: f.product.ID, Quantity: 1, DeliveryDate: &bad}, domain.ErrInvalidInput},
		{"cliente inexistente", dto.CreateOrderRequest{ClientID: "nope", ProductID: f.product.ID, Quantity: 1}, domain.ErrNotFound},
		{"producto inexistente", dto.CreateOrderRequest{ClientID: f.client.ID, ProductID: "nope", Quantity: 1}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 10, f.quantity(t, f.papel.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// List
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltraPorEstadoConservandoOrden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.create(t, 1, "0")
	b := f.create(t, 1, "0")
	c := f.create(t, 1, "0")
	_, err := f.uc.ChangeStatus(ctx, b.ID, "En proceso")
	require.NoError(t, err)

	pend, err := f.uc.List(ctx, "pendiente")
	require.NoError(t, err)
	require.Len(t, pend, 2)
	assert.Equal(t, a.ID, pend[0].ID)
	assert.Equal(t, c.ID, pend[1].ID)

	all, err := f.uc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	_, err = f.uc.List(ctx, "Archivado")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ChangeStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestChangeStatus_CancelarDevuelveInventario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t, 2, "0")
	require.Equal(t, 8, f.quantity(t, f.papel.ID))

	out, err := f.uc.ChangeStatus(ctx, o.ID, "Cancelado")

	require.NoError(t, err)
	assert.Equal(t, string(entity.StatusCancelado), out.Status)
	assert.Equal(t, 10, f.quantity(t, f.papel.ID))
	assert.Equal(t, 4, f.quantity(t, f.tinta.ID))
	assert.Equal(t, []string{"Pendiente→Cancelado"}, f.metrics.transitions)
}

func TestChangeStatus_EntregadoConsumeInventario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t, 2, "0")

	_, err := f.uc.ChangeStatus(ctx, o.ID, "En proceso")
	require.NoError(t, err)
	_, err = f.uc.ChangeStatus(ctx, o.ID, "Entregado")
	require.NoError(t, err)

	assert.Equal(t, 8, f.quantity(t, f.papel.ID))
	require.NoError(t, f.uc.Delete(ctx, o.ID))
	assert.Equal(t, 8, f.quantity(t, f.papel.ID), "borrar un pedido entregado no devuelve stock")
}

func TestChangeStatus_TransicionesIlegales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t, 1, "0")

	_, err := f.uc.ChangeStatus(ctx, o.ID, "Entregado")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.uc.ChangeStatus(ctx, o.ID, "Cancelado")
	require.NoError(t, err)
	_, err = f.uc.ChangeStatus(ctx, o.ID, "Pendiente")
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Repetir el mismo estado no es un error ni devuelve stock dos veces.
	_, err = f.uc.ChangeStatus(ctx, o.ID, "Cancelado")
	require.NoError(t, err)
	assert.Equal(t, 10, f.quantity(t, f.papel.ID))

	_, err = f.uc.ChangeStatus(ctx, "nope", "Cancelado")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_CambioDeCantidadReajustaReserva(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t, 2, "0")

	out, err := f.uc.Update(ctx, o.ID, dto.UpdateOrderRequest{
		ClientID: f.client.ID, ProductID: f.product.ID, Quantity: 4,
		Payment: decimal.RequireFromString("50"), Status: "Pendiente",
	})

	require.NoError(t, err)
	assert.Equal(t, "62.00", out.TotalPrice)
	assert.Equal(t, "12.00", out.Balance)
	assert.Equal(t, 6, f.quantity(t, f.papel.ID))
	assert.Equal(t, 0, f.quantity(t, f.tinta.ID))
}

func TestUpdate_ReservaNuevaInsuficienteRevierte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t, 2, "0")

	_, err := f.uc.Update(ctx, o.ID, dto.UpdateOrderRequest{
		ClientID: f.client.ID, ProductID: f.product.ID, Quantity: 7, Status: "Pendiente",
	})

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 8, f.quantity(t, f.papel.ID))
	assert.Equal(t, 2, f.quantity(t, f.tinta.ID))
	got, err := f.uc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)
}

func TestUpdate_EnProcesoNoPermiteCambiarCantidad(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t, 1, "0")
	_, err := f.uc.ChangeStatus(ctx, o.ID, "En proceso")
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, o.ID, dto.UpdateOrderRequest{
		ClientID: f.client.ID, ProductID: f.product.ID, Quantity: 2, Status: "En proceso",
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Registrar un pago sí está permitido y usa el precio vigente del producto.
	f.product.Price = decimal.RequireFromString("20")
	require.NoError(t, f.products.Update(ctx, f.product))
	out, err := f.uc.Update(ctx, o.ID, dto.UpdateOrderRequest{
		ClientID: f.client.ID, ProductID: f.product.ID, Quantity: 1,
		Payment: decimal.RequireFromString("5"), Status: "En proceso",
	})
	require.NoError(t, err)
	assert.Equal(t, "20.00", out.UnitPrice)
	assert.Equal(t, "15.00", out.Balance)
	assert.Equal(t, 9, f.quantity(t, f.papel.ID))
}

func TestUpdate_ProductoEliminadoConservaDatosDelPedido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t, 2, "0")
	require.NoError(t, f.products.Delete(ctx, f.product.ID))

	// Mismo producto_id que tenía el pedido, o vacío: solo se edita el pago.
	for _, productID := range []string{f.product.ID, ""} {
		out, err := f.uc.Update(ctx, o.ID, dto.UpdateOrderRequest{
			ClientID: f.client.ID, ProductID: productID, Quantity: 2,
			Payment: decimal.RequireFromString("10"), Status: "Pendiente",
		})
		require.NoError(t, err, "producto_id=%q", productID)
		assert.Equal(t, "Tarjetas", out.ProductName)
		assert.Equal(t, "15.50", out.UnitPrice)
		assert.Equal(t, "31.00", out.TotalPrice)
		assert.Equal(t, "21.00", out.Balance)
	}
	assert.Equal(t, 8, f.quantity(t, f.papel.ID))

	// Sin producto vigente no se puede cambiar la cantidad.
	_, err := f.uc.Update(ctx, o.ID, dto.UpdateOrderRequest{Quantity: 3, Status: "Pendiente"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	// Cancelar sigue devolviendo lo reservado.
	_, err = f.uc.Update(ctx, o.ID, dto.UpdateOrderRequest{Quantity: 2, Status: "Cancelado"})
	require.NoError(t, err)
	assert.Equal(t, 10, f.quantity(t, f.papel.ID))
}

func TestUpdate_ClienteEliminadoConservaNombre(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t, 1, "0")
	require.NoError(t, f.clients.Delete(ctx, f.client.ID))

	for _, clientID := range []string{f.client.ID, ""} {
		out, err := f.uc.Update(ctx, o.ID, dto.UpdateOrderRequest{
			ClientID: clientID, ProductID: f.product.ID, Quantity: 1,
			Payment: decimal.RequireFromString("15.50"), Status: "En proceso",
		})
		require.NoError(t, err, "cliente_id=%q", clientID)
		assert.Equal(t, "Ana Rojas", out.ClientName)
		assert.Empty(t, out.ClientID)
		assert.Equal(t, "0.00", out.Balance)
	}
}

func TestUpdate_ReferenciaInexistenteConPedidoVigente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t, 1, "0")

	_, err := f.uc.Update(ctx, o.ID, dto.UpdateOrderRequest{
		ClientID: "nope", ProductID: f.product.ID, Quantity: 1, Status: "Pendiente",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.Update(ctx, o.ID, dto.UpdateOrderRequest{
		ClientID: f.client.ID, ProductID: "nope", Quantity: 1, Status: "Pendiente",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ConcurrenteNoSobrevende(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const (
		workers = 12
		qty     = 3
	)
	// Con ambos insumos en 10 caben floor(10/3) = 3 pedidos.
	f.tinta.Quantity = 10
	require.NoError(t, f.inventory.Update(ctx, f.tinta))
	want := 10 / qty

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		ok      int
		noStock int
		other   []error
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Create(ctx, dto.CreateOrderRequest{
				ClientID: f.client.ID, ProductID: f.product.ID, Quantity: qty,
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case errors.Is(err, domain.ErrInsufficientStock):
				noStock++
			default:
				other = append(other, err)
			}
		}()
	}
	wg.Wait()

	require.Empty(t, other)
	assert.Equal(t, want, ok)
	assert.Equal(t, workers-want, noStock)
	assert.Equal(t, 10-want*qty, f.quantity(t, f.papel.ID))
	assert.Equal(t, 10-want*qty, f.quantity(t, f.tinta.ID))
	assert.GreaterOrEqual(t, f.quantity(t, f.papel.ID), 0)

	list, err := f.uc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, list, want)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_PendienteDevuelveInventario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t, 3, "0")

	require.NoError(t, f.uc.Delete(ctx, o.ID))

	assert.Equal(t, 10, f.quantity(t, f.papel.ID))
	_, err := f.uc.Get(ctx, o.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.uc.Delete(ctx, o.ID), domain.ErrNotFound)
}

// Un material editado después del alta no altera lo que se devuelve al cancelar.
func TestDelete_DevuelveLoReservadoAunqueCambienLosMateriales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t, 1, "0")
	f.product.Materials = []string{f.papel.ID}
	require.NoError(t, f.products.Update(ctx, f.product))

	require.NoError(t, f.uc.Delete(ctx, o.ID))

	assert.Equal(t, 10, f.quantity(t, f.papel.ID))
	assert.Equal(t, 4, f.quantity(t, f.tinta.ID))
}
