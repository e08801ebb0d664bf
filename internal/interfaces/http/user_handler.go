package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/imprentacamiri/imprenta-api/internal/application/auth"
	"github.com/imprentacamiri/imprenta-api/internal/application/dto"
	"github.com/imprentacamiri/imprenta-api/internal/application/usecase"
	"github.com/imprentacamiri/imprenta-api/pkg/logger"
)

const forgotPasswordMessage = "si el email está registrado, recibirá un enlace para restablecer la contraseña"

// UserHandler maneja registro, login, recuperación de contraseña y administración de usuarios.
type UserHandler struct {
	auth  *auth.AuthUseCase
	users *usecase.UserUseCase
	log   *logger.Logger
}

// NewUserHandler construye el handler.
func NewUserHandler(authUC *auth.AuthUseCase, userUC *usecase.UserUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{auth: authUC, users: userUC, log: log}
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Crear un usuario con rol admin exige una sesión de administrador.
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "nombre, email, contrasena"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/usuarios [post]
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.auth.RegisterUser(c.UserContext(), GetSession(c).User(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, contrasena"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/usuarios/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.auth.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ForgotPassword godoc
// @Summary      Solicitar enlace de restablecimiento
// @Description  Responde 200 exista o no el email.
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email"
// @Success      200   {object}  dto.MessageResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/usuarios/olvide-contrasena [post]
func (h *UserHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.auth.ForgotPassword(c.UserContext(), in); err != nil {
		h.log.Error().Err(err).Msg("olvide-contrasena")
	}
	return c.JSON(dto.MessageResponse{Message: forgotPasswordMessage})
}

// ResetPassword godoc
// @Summary      Restablecer contraseña
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        token  path  string  true  "Token recibido por email"
// @Param        body   body  dto.ResetPasswordRequest  true  "contrasena"
// @Success      200    {object}  dto.MessageResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/usuarios/restablecer-contrasena/{token} [post]
func (h *UserHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	if err := h.auth.ResetPassword(c.UserContext(), c.Params("token"), in); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "contraseña actualizada"})
}

// Me devuelve el usuario de la sesión actual.
// GET /api/usuarios/me
func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(usecase.ToUserResponse(GetSession(c).User()))
}

// List GET /api/usuarios (solo admin)
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.users.List(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Editar usuario
// @Description  Un usuario edita solo su propio registro y no puede cambiar su rol; un admin edita cualquiera.
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del usuario"
// @Param        body  body  dto.UpdateUserRequest  true  "Registro completo"
// @Success      200   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := parseBody(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.users.Update(c.UserContext(), GetSession(c).User(), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete DELETE /api/usuarios/:id (solo admin)
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), GetSession(c).User(), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(dto.MessageResponse{Message: "usuario eliminado"})
}
