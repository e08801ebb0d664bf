package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
)

func TestTxRunner_RestauraElEstadoSiFalla(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	inventory := NewInventoryRepository(store)
	orders := NewOrderRepository(store)
	require.NoError(t, inventory.Create(ctx, &entity.InventoryItem{ID: "i1", Name: "Papel", Quantity: 10}))

	boom := errors.New("boom")
	err := NewTxRunner(store).Run(ctx, func(o repository.OrderRepository, _ repository.ProductRepository, inv repository.InventoryRepository) error {
		require.NoError(t, inv.UpdateQuantity(ctx, "i1", 3))
		require.NoError(t, o.Create(ctx, &entity.Order{ID: "o1"}))
		return boom
	})

	assert.ErrorIs(t, err, boom)
	item, err := inventory.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 10, item.Quantity)
	o, err := orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestTxRunner_ConfirmaSiNoHayError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	inventory := NewInventoryRepository(store)
	require.NoError(t, inventory.Create(ctx, &entity.InventoryItem{ID: "i1", Quantity: 10}))

	err := NewTxRunner(store).Run(ctx, func(_ repository.OrderRepository, _ repository.ProductRepository, inv repository.InventoryRepository) error {
		return inv.UpdateQuantity(ctx, "i1", 4)
	})

	require.NoError(t, err)
	item, err := inventory.GetByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
}

func TestRepositories_ListEnOrdenDeCreacionYCopiasIndependientes(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	products := NewProductRepository(store)
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, products.Create(ctx, &entity.Product{ID: id, Materials: []string{"m1"}}))
	}

	list, err := products.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"c", "a", "b"}, []string{list[0].ID, list[1].ID, list[2].ID})

	list[0].Materials[0] = "mutado"
	again, err := products.GetByID(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"m1"}, again.Materials)
}

func TestInventoryDelete_QuitaDeMaterialesYOrdersPierdenReferencia(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	inventory := NewInventoryRepository(store)
	products := NewProductRepository(store)
	clients := NewClientRepository(store)
	orders := NewOrderRepository(store)
	require.NoError(t, inventory.Create(ctx, &entity.InventoryItem{ID: "i1"}))
	require.NoError(t, inventory.Create(ctx, &entity.InventoryItem{ID: "i2"}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", Materials: []string{"i1", "i2"}}))
	require.NoError(t, clients.Create(ctx, &entity.Client{ID: "c1"}))
	require.NoError(t, orders.Create(ctx, &entity.Order{ID: "o1", ClientID: "c1", ClientName: "Ana", ProductID: "p1"}))

	require.NoError(t, inventory.Delete(ctx, "i1"))
	p, err := products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"i2"}, p.Materials)

	require.NoError(t, clients.Delete(ctx, "c1"))
	require.NoError(t, products.Delete(ctx, "p1"))
	o, err := orders.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Empty(t, o.ClientID)
	assert.Empty(t, o.ProductID)
	assert.Equal(t, "Ana", o.ClientName)

	assert.ErrorIs(t, inventory.Delete(ctx, "i1"), domain.ErrNotFound)
	assert.ErrorIs(t, inventory.UpdateQuantity(ctx, "i1", 1), domain.ErrNotFound)
}

func TestUserRepository_EmailUnico(t *testing.T) {
	ctx := context.Background()
	users := NewUserRepository(NewStore())
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "a@gmail.com"}))
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u2", Email: "b@gmail.com"}))

	assert.ErrorIs(t, users.Create(ctx, &entity.User{ID: "u3", Email: "a@gmail.com"}), domain.ErrEmailAlreadyExists)
	assert.ErrorIs(t, users.Update(ctx, &entity.User{ID: "u2", Email: "a@gmail.com"}), domain.ErrEmailAlreadyExists)
	assert.ErrorIs(t, users.Update(ctx, &entity.User{ID: "nope"}), domain.ErrNotFound)
}

func TestNamesByIDs_OmiteInexistentes(t *testing.T) {
	ctx := context.Background()
	inventory := NewInventoryRepository(NewStore())
	require.NoError(t, inventory.Create(ctx, &entity.InventoryItem{ID: "i1", Name: "Papel"}))

	names, err := inventory.NamesByIDs(ctx, []string{"i1", "x"})

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"i1": "Papel"}, names)
}

func TestResetTokenStore_VenceYEsDeUnSoloUso(t *testing.T) {
	ctx := context.Background()
	s := NewResetTokenStore()
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	require.NoError(t, s.Save(ctx, "t1", "u1", 30*time.Minute))
	require.NoError(t, s.Save(ctx, "t2", "u1", 30*time.Minute))

	userID, err := s.Consume(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	_, err = s.Consume(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)

	now = now.Add(31 * time.Minute)
	_, err = s.Consume(ctx, "t2")
	assert.ErrorIs(t, err, domain.ErrInvalidResetToken)
}
