// Package validation reúne los validadores puros que se aplican antes de aceptar una escritura.
// Ninguno tiene efectos secundarios: devuelven nil o un *domain.ValidationError.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
)

const (
	maxPhoneDigits    = 8
	minPasswordLength = 8
)

// Field par nombre/valor para Required.
type Field struct {
	Name  string
	Value string
}

// Required falla con el primer campo vacío (tras recortar espacios).
func Required(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return domain.NewValidationError(f.Name, "es obligatorio")
		}
	}
	return nil
}

// Phone acepta de 1 a 8 dígitos.
func Phone(phone string) error {
	if phone == "" || len(phone) > maxPhoneDigits {
		return domain.NewValidationError("telefono", fmt.Sprintf("debe tener entre 1 y %d dígitos", maxPhoneDigits))
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return domain.NewValidationError("telefono", "solo se permiten dígitos")
		}
	}
	return nil
}

// EmailDomain exige que el email termine con el sufijo dado (sin distinguir mayúsculas).
func EmailDomain(email, suffix string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	suffix = strings.ToLower(strings.TrimSpace(suffix))
	if suffix == "" {
		return nil
	}
	if len(email) <= len(suffix) || !strings.HasSuffix(email, suffix) {
		return domain.NewValidationError("email", "debe terminar en "+suffix)
	}
	return nil
}

// PasswordStrength exige al menos 8 caracteres, una mayúscula y un dígito.
func PasswordStrength(password string) error {
	if len([]rune(password)) < minPasswordLength {
		return domain.NewValidationError("contrasena", fmt.Sprintf("debe tener al menos %d caracteres", minPasswordLength))
	}
	var hasUpper, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return domain.NewValidationError("contrasena", "debe incluir al menos una mayúscula")
	}
	if !hasDigit {
		return domain.NewValidationError("contrasena", "debe incluir al menos un número")
	}
	return nil
}

var roleSynonyms = map[string]string{
	"admin":          entity.RoleAdmin,
	"administrador":  entity.RoleAdmin,
	"usuario":        entity.RoleUsuario,
	"usuario_normal": entity.RoleUsuario,
	"usuario normal": entity.RoleUsuario,
	"normal":         entity.RoleUsuario,
}

// NormalizeRole traduce los sinónimos aceptados al rol canónico.
func NormalizeRole(role string) (string, error) {
	if canonical, ok := roleSynonyms[fold(role)]; ok {
		return canonical, nil
	}
	return "", domain.NewValidationError("rol", fmt.Sprintf("rol desconocido %q", role))
}

// NormalizeCategory devuelve la categoría canónica (minúsculas, sin tildes).
func NormalizeCategory(category string) (string, error) {
	c := fold(category)
	for _, known := range entity.Categories {
		if c == known {
			return known, nil
		}
	}
	return "", domain.NewValidationError("categoria", fmt.Sprintf("categoría desconocida %q", category))
}

// fold pasa a minúsculas, recorta y elimina diacríticos: "Administrádor " → "administrador".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return strings.ToLower(out)
}
