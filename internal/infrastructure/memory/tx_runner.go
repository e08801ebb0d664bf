package memory

import (
	"context"

	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
)

// TxRunner ejecuta fn con el almacén bloqueado; si fn falla se restaura el estado previo.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el TxRunner en memoria.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn dentro de una "transacción" en memoria.
func (t *TxRunner) Run(ctx context.Context, fn func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, inventoryRepo repository.InventoryRepository) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()

	snapshot := t.store.st.clone()
	err := fn(
		&OrderRepository{store: t.store, inTx: true},
		&ProductRepository{store: t.store, inTx: true},
		&InventoryRepository{store: t.store, inTx: true},
	)
	if err != nil {
		t.store.st = snapshot
		return err
	}
	return nil
}
