package http

import (
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/imprentacamiri/imprenta-api/internal/application/dto"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
	"github.com/imprentacamiri/imprenta-api/pkg/jwt"
)

// LocalSession clave de c.Locals donde queda la sesión verificada.
const LocalSession = "session"

// Session identidad del usuario autenticado. Role es el rol almacenado, no el del token.
type Session struct {
	UserID string
	Email  string
	Role   string
	user   *entity.User
}

// User devuelve el usuario recargado del almacén en esta petición.
func (s *Session) User() *entity.User {
	if s == nil {
		return nil
	}
	return s.user
}

// AuthMiddleware valida el Bearer Token JWT, recarga el usuario y deja la Session en c.Locals.
// Un usuario borrado después de emitir el token queda rechazado.
func AuthMiddleware(jwtSecret string, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, code, msg := bearerToken(c.Get("Authorization"))
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		session, code, msg := loadSession(c, jwtSecret, users, tokenString)
		if session == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		c.Locals(LocalSession, session)
		return c.Next()
	}
}

// OptionalAuth como AuthMiddleware pero deja pasar peticiones sin token.
// Un token presente e inválido sigue siendo 401.
func OptionalAuth(jwtSecret string, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Next()
		}
		tokenString, code, msg := bearerToken(header)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		session, code, msg := loadSession(c, jwtSecret, users, tokenString)
		if session == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: code, Message: msg})
		}
		c.Locals(LocalSession, session)
		return c.Next()
	}
}

func bearerToken(header string) (token, code, msg string) {
	if header == "" {
		return "", "MISSING_TOKEN", "Authorization header requerido"
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", "INVALID_TOKEN", "formato: Bearer <token>"
	}
	token = strings.TrimSpace(parts[1])
	if token == "" {
		return "", "MISSING_TOKEN", "token vacío"
	}
	return token, "", ""
}

func loadSession(c *fiber.Ctx, secret string, users repository.UserRepository, token string) (*Session, string, string) {
	userID, _, _, err := jwt.Parse(secret, token)
	if err != nil {
		return nil, "INVALID_TOKEN", "token inválido o expirado"
	}
	user, err := users.GetByID(c.UserContext(), userID)
	if err != nil || user == nil {
		return nil, "INVALID_SESSION", "la sesión ya no es válida"
	}
	return &Session{UserID: user.ID, Email: user.Email, Role: user.Role, user: user}, "", ""
}

// RequireRole autoriza solo a sesiones con alguno de los roles indicados. Usar después de AuthMiddleware.
func RequireRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := GetSession(c)
		if session == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_SESSION", Message: "sesión requerida"})
		}
		if session.Role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "el usuario no tiene rol asignado"})
		}
		if !slices.Contains(allowedRoles, session.Role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para este recurso"})
		}
		return c.Next()
	}
}

// GetSession devuelve la sesión del contexto o nil si la petición es anónima.
func GetSession(c *fiber.Ctx) *Session {
	s, _ := c.Locals(LocalSession).(*Session)
	return s
}

// GetUserID devuelve el UserID de la sesión (vacío si no hay).
func GetUserID(c *fiber.Ctx) string {
	if s := GetSession(c); s != nil {
		return s.UserID
	}
	return ""
}

// GetRole devuelve el rol almacenado del usuario de la sesión.
func GetRole(c *fiber.Ctx) string {
	if s := GetSession(c); s != nil {
		return s.Role
	}
	return ""
}
