package memory

import (
	"context"
	"sync"
	"time"

	"github.com/imprentacamiri/imprenta-api/internal/domain"
)

// ResetTokenStore tokens de restablecimiento en memoria, para STORAGE_DRIVER=memory y tests.
type ResetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]resetToken
	now    func() time.Time
}

type resetToken struct {
	userID  string
	expires time.Time
}

// NewResetTokenStore construye el almacén.
func NewResetTokenStore() *ResetTokenStore {
	return &ResetTokenStore{tokens: map[string]resetToken{}, now: time.Now}
}

func (s *ResetTokenStore) Save(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = resetToken{userID: userID, expires: s.now().Add(ttl)}
	return nil
}

// Consume devuelve el usuario y borra el token; vencido o desconocido → ErrInvalidResetToken.
func (s *ResetTokenStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	delete(s.tokens, token)
	if !ok || !s.now().Before(t.expires) {
		return "", domain.ErrInvalidResetToken
	}
	return t.userID, nil
}
