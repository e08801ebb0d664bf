package dto

import (
	"strings"
	"time"

	"github.com/imprentacamiri/imprenta-api/internal/domain"
)

// DateLayout formato de fecha usado en la API (fecha_entrega, fecha_ingreso, desde, hasta).
const DateLayout = "2006-01-02"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple de confirmación.
type MessageResponse struct {
	Message string `json:"message"`
}

// ParseDate acepta "2006-01-02" o RFC 3339. Cadena vacía o nil devuelven nil.
func ParseDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	raw := strings.TrimSpace(*s)
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, domain.NewValidationError(field, "fecha inválida, use AAAA-MM-DD")
	}
	return &t, nil
}

// FormatDate devuelve la fecha en DateLayout o nil.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
