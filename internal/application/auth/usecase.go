package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/imprentacamiri/imprenta-api/internal/application/dto"
	"github.com/imprentacamiri/imprenta-api/internal/application/usecase"
	"github.com/imprentacamiri/imprenta-api/internal/domain"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
	"github.com/imprentacamiri/imprenta-api/internal/domain/validation"
	"github.com/imprentacamiri/imprenta-api/pkg/jwt"
	"github.com/imprentacamiri/imprenta-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// ResetConfig flujo de restablecimiento: vigencia del token y URL del front a la que se concatena.
type ResetConfig struct {
	TokenTTL time.Duration
	URLBase  string
}

// AuthUseCase casos de uso de autenticación: registro, login y recuperación de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	tokens   ResetTokenStore
	mailer   Mailer
	jwtCfg   JWTConfig
	resetCfg ResetConfig
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	tokens ResetTokenStore,
	mailer Mailer,
	jwtCfg JWTConfig,
	resetCfg ResetConfig,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
		jwtCfg:   jwtCfg,
		resetCfg: resetCfg,
		log:      log,
	}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe. Crear un admin exige que actor sea admin.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, actor *entity.User, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Required(
		validation.Field{Name: "nombre", Value: in.Name},
		validation.Field{Name: "email", Value: in.Email},
		validation.Field{Name: "contrasena", Value: in.Password},
	); err != nil {
		return nil, err
	}
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Phone != "" {
		if err := validation.Phone(in.Phone); err != nil {
			return nil, err
		}
	}
	role := entity.RoleUsuario
	if strings.TrimSpace(in.Role) != "" {
		r, err := validation.NormalizeRole(in.Role)
		if err != nil {
			return nil, err
		}
		role = r
	}
	if role == entity.RoleAdmin && !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		Phone:        in.Phone,
		NationalID:   strings.TrimSpace(in.NationalID),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return usecase.ToUserResponse(user), nil
}

// EnsureAdmin crea un administrador si el email no está registrado.
// Devuelve false sin error cuando ya existía.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	if err := validation.PasswordStrength(password); err != nil {
		return false, err
	}
	system := &entity.User{Role: entity.RoleAdmin}
	_, err := uc.RegisterUser(ctx, system, dto.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     entity.RoleAdmin,
	})
	if errors.Is(err, domain.ErrEmailAlreadyExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	uc.log.Info().Str("email", strings.ToLower(strings.TrimSpace(email))).Msg("administrador creado")
	return true, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Email desconocido y contraseña incorrecta responden igual.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *usecase.ToUserResponse(user),
	}, nil
}

// ForgotPassword genera un token aleatorio, lo guarda con vencimiento y envía el enlace.
// Un email desconocido no es un error: la respuesta no revela qué cuentas existen.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, in dto.ForgotPasswordRequest) error {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		uc.log.Debug().Str("email", email).Msg("olvide-contrasena: email no registrado")
		return nil
	}
	token, err := newResetToken()
	if err != nil {
		return err
	}
	if err := uc.tokens.Save(ctx, token, user.ID, uc.resetCfg.TokenTTL); err != nil {
		return err
	}
	if err := uc.mailer.SendPasswordReset(ctx, user.Email, user.Name, uc.resetCfg.URLBase+token); err != nil {
		return err
	}
	uc.log.Info().Str("user_id", user.ID).Msg("enlace de restablecimiento enviado")
	return nil
}

// ResetPassword valida la nueva contraseña, consume el token (un solo uso) y guarda el nuevo hash.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, token string, in dto.ResetPasswordRequest) error {
	if err := validation.PasswordStrength(in.Password); err != nil {
		return err
	}
	if strings.TrimSpace(token) == "" {
		return domain.ErrInvalidResetToken
	}
	userID, err := uc.tokens.Consume(ctx, token)
	if err != nil {
		return err
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrInvalidResetToken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

func newResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
