package main

import (
	"context"
	"fmt"

	"go.uber.org/multierr"

	"github.com/imprentacamiri/imprenta-api/internal/application/auth"
	"github.com/imprentacamiri/imprenta-api/internal/application/order"
	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
	"github.com/imprentacamiri/imprenta-api/internal/infrastructure/memory"
	"github.com/imprentacamiri/imprenta-api/internal/infrastructure/postgres"
	"github.com/imprentacamiri/imprenta-api/internal/infrastructure/redis"
	"github.com/imprentacamiri/imprenta-api/pkg/config"
	"github.com/imprentacamiri/imprenta-api/pkg/logger"
)

// storage adaptadores de persistencia elegidos por STORAGE_DRIVER.
type storage struct {
	users     repository.UserRepository
	clients   repository.ClientRepository
	products  repository.ProductRepository
	inventory repository.InventoryRepository
	orders    repository.OrderRepository
	dashboard repository.DashboardRepository
	tx        order.TxRunner
	tokens    auth.ResetTokenStore

	closers []func() error
}

// Close libera conexiones; los errores se acumulan con multierr.
func (s *storage) Close() error {
	var err error
	for i := len(s.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, s.closers[i]())
	}
	return err
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.StorageDriver == config.StorageDriverMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &storage{
			users:     memory.NewUserRepository(store),
			clients:   memory.NewClientRepository(store),
			products:  memory.NewProductRepository(store),
			inventory: memory.NewInventoryRepository(store),
			orders:    memory.NewOrderRepository(store),
			dashboard: memory.NewDashboardRepository(store),
			tx:        memory.NewTxRunner(store),
			tokens:    memory.NewResetTokenStore(),
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	s := &storage{
		users:     postgres.NewUserRepository(pool),
		clients:   postgres.NewClientRepository(pool),
		products:  postgres.NewProductRepository(pool),
		inventory: postgres.NewInventoryRepository(pool),
		orders:    postgres.NewOrderRepository(pool),
		dashboard: postgres.NewDashboardRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		closers:   []func() error{func() error { pool.Close(); return nil }},
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, postgres.MigrateUp); err != nil {
			return nil, multierr.Append(fmt.Errorf("migraciones: %w", err), s.Close())
		}
		log.Info().Msg("migraciones aplicadas")
	}

	rdb, err := redis.New(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, multierr.Append(err, s.Close())
	}
	s.tokens = rdb
	s.closers = append(s.closers, rdb.Close)
	return s, nil
}
