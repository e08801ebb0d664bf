package auth

import (
	"context"
	"time"
)

// ResetTokenStore guarda tokens de restablecimiento de contraseña con vencimiento.
// Consume devuelve el userID y borra el token; un token desconocido o vencido
// devuelve domain.ErrInvalidResetToken.
type ResetTokenStore interface {
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	Consume(ctx context.Context, token string) (string, error)
}

// Mailer envía el enlace de restablecimiento al usuario.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, name, link string) error
}
