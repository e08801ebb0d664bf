// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORAGE_DRIVER=memory (demostraciones) y como almacenamiento falso en los tests.
package memory

import (
	"slices"
	"sort"
	"sync"

	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
)

// Store contiene todas las tablas. Un único mutex serializa escrituras y transacciones.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

type state struct {
	seq       int
	users     map[string]row[entity.User]
	clients   map[string]row[entity.Client]
	products  map[string]row[entity.Product]
	inventory map[string]row[entity.InventoryItem]
	orders    map[string]row[entity.Order]
}

// row guarda la secuencia de inserción para listar en orden de creación.
type row[T any] struct {
	seq int
	val T
}

func newState() *state {
	return &state{
		users:     map[string]row[entity.User]{},
		clients:   map[string]row[entity.Client]{},
		products:  map[string]row[entity.Product]{},
		inventory: map[string]row[entity.InventoryItem]{},
		orders:    map[string]row[entity.Order]{},
	}
}

func (s *state) next() int {
	s.seq++
	return s.seq
}

// clone copia profunda usada como punto de restauración de una transacción.
func (s *state) clone() *state {
	c := &state{
		seq:       s.seq,
		users:     cloneTable(s.users, func(u entity.User) entity.User { return u }),
		clients:   cloneTable(s.clients, func(c entity.Client) entity.Client { return c }),
		products:  cloneTable(s.products, copyProduct),
		inventory: cloneTable(s.inventory, func(i entity.InventoryItem) entity.InventoryItem { return i }),
		orders:    cloneTable(s.orders, copyOrder),
	}
	return c
}

func cloneTable[T any](m map[string]row[T], cp func(T) T) map[string]row[T] {
	out := make(map[string]row[T], len(m))
	for k, r := range m {
		out[k] = row[T]{seq: r.seq, val: cp(r.val)}
	}
	return out
}

// sorted devuelve los valores en orden de inserción.
func sorted[T any](m map[string]row[T]) []T {
	rows := make([]row[T], 0, len(m))
	for _, r := range m {
		rows = append(rows, r)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.val)
	}
	return out
}

func copyProduct(p entity.Product) entity.Product {
	p.Materials = slices.Clone(p.Materials)
	return p
}

func copyOrder(o entity.Order) entity.Order {
	o.ReservedMaterials = slices.Clone(o.ReservedMaterials)
	return o
}

// access ejecuta fn sobre el estado. Dentro de una transacción el mutex ya está tomado.
func (s *Store) access(inTx bool, fn func(st *state) error) error {
	if !inTx {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn(s.st)
}
