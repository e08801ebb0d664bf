// Package redis guarda en Redis los tokens de restablecimiento de contraseña.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/imprentacamiri/imprenta-api/internal/domain"
)

const keyPrefix = "imprenta:reset:"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	GetDel(context.Context, string) *redis.StringCmd
}

// Client conexión a Redis con las operaciones que usa la API.
type Client struct {
	store cmdable
	raw   *redis.Client
}

// New abre la conexión desde una URL redis:// y verifica conectividad.
func New(ctx context.Context, url string) (*Client, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("redis: REDIS_URL es obligatorio")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis: parsear url: %w", err)
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return &Client{store: raw, raw: raw}, nil
}

// Ping verifica la conexión (health check).
func (c *Client) Ping(ctx context.Context) error {
	return c.store.Ping(ctx).Err()
}

// Close cierra la conexión.
func (c *Client) Close() error {
	if c.raw == nil {
		return nil
	}
	return c.raw.Close()
}

// Save guarda token → userID con vencimiento ttl.
func (c *Client) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("redis: el ttl del token debe ser positivo")
	}
	if err := c.store.Set(ctx, keyPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis: guardar token: %w", err)
	}
	return nil
}

// Consume lee y borra el token en una sola operación (GETDEL), así un token se usa una sola vez.
func (c *Client) Consume(ctx context.Context, token string) (string, error) {
	userID, err := c.store.GetDel(ctx, keyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidResetToken
	}
	if err != nil {
		return "", fmt.Errorf("redis: consumir token: %w", err)
	}
	return userID, nil
}
