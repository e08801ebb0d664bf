package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/imprentacamiri/imprenta-api/internal/application/auth"
	"github.com/imprentacamiri/imprenta-api/internal/application/dashboard"
	"github.com/imprentacamiri/imprenta-api/internal/application/order"
	"github.com/imprentacamiri/imprenta-api/internal/application/report"
	"github.com/imprentacamiri/imprenta-api/internal/application/usecase"
	"github.com/imprentacamiri/imprenta-api/internal/domain/entity"
	"github.com/imprentacamiri/imprenta-api/internal/domain/repository"
	"github.com/imprentacamiri/imprenta-api/pkg/logger"
	"github.com/imprentacamiri/imprenta-api/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClientUC    *usecase.ClientUseCase
	ProductUC   *usecase.ProductUseCase
	InventoryUC *usecase.InventoryUseCase
	UserUC      *usecase.UserUseCase
	OrderUC     *order.UseCase
	AuthUC      *auth.AuthUseCase
	ReportUC    *report.UseCase
	DashboardUC *dashboard.UseCase
	// Users recarga el usuario de cada sesión.
	Users       repository.UserRepository
	JWTSecret   string
	AuthLimiter *RateLimiter
	Log         *logger.Logger
}

// AppOptions middlewares transversales de la app.
type AppOptions struct {
	Name        string
	CORSOrigins string
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer // nil = sin /metrics
	Log         *logger.Logger

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewApp crea la app Fiber con recover, request id, CORS, logging, métricas y /health.
// Las rutas de la API se registran aparte con Router.
func NewApp(opts AppOptions) *fiber.App {
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      opts.Name,
		ErrorHandler: NewErrorHandler(opts.Log),
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		IdleTimeout:  opts.IdleTimeout,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(opts.CORSOrigins),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))
	app.Use(RequestLogger(opts.Log))
	app.Use(MetricsMiddleware(opts.Metrics))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.Name})
	})
	if opts.Gatherer != nil {
		app.Get("/metrics", MetricsHandler(opts.Gatherer))
	}
	return app
}

func normalizeOrigins(s string) string {
	if strings.TrimSpace(s) == "" {
		return "*"
	}
	return s
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log == nil {
		deps.Log = logger.Nop()
	}
	if deps.AuthLimiter == nil {
		deps.AuthLimiter = NewRateLimiter(0, 1)
	}
	authMW := AuthMiddleware(deps.JWTSecret, deps.Users)
	adminOnly := RequireRole(entity.RoleAdmin)
	limit := deps.AuthLimiter.Handler()

	api := app.Group("/api")

	// Usuarios: registro, login y recuperación son públicos
	userHandler := NewUserHandler(deps.AuthUC, deps.UserUC, deps.Log)
	usuarios := api.Group("/usuarios")
	usuarios.Post("/", OptionalAuth(deps.JWTSecret, deps.Users), userHandler.Register)
	usuarios.Post("/login", limit, userHandler.Login)
	usuarios.Post("/olvide-contrasena", limit, userHandler.ForgotPassword)
	usuarios.Post("/restablecer-contrasena/:token", limit, userHandler.ResetPassword)
	usuarios.Get("/me", authMW, userHandler.Me)
	usuarios.Get("/", authMW, adminOnly, userHandler.List)
	usuarios.Put("/:id", authMW, userHandler.Update)
	usuarios.Delete("/:id", authMW, adminOnly, userHandler.Delete)

	// Clientes (protegido)
	clientHandler := NewClientHandler(deps.ClientUC, deps.Log)
	clientes := api.Group("/clientes", authMW)
	clientes.Get("/", clientHandler.List)
	clientes.Post("/", clientHandler.Create)
	clientes.Get("/:id", clientHandler.GetByID)
	clientes.Put("/:id", clientHandler.Update)
	clientes.Delete("/:id", clientHandler.Delete)

	// Productos y materiales (protegido)
	productHandler := NewProductHandler(deps.ProductUC, deps.Log)
	productos := api.Group("/productos", authMW)
	productos.Get("/", productHandler.List)
	productos.Post("/", productHandler.Create)
	productos.Get("/:id", productHandler.GetByID)
	productos.Put("/:id", productHandler.Update)
	productos.Delete("/:id", productHandler.Delete)
	productos.Post("/:id/materiales/:inventarioId", productHandler.AddMaterial)
	productos.Delete("/:id/materiales/:inventarioId", productHandler.RemoveMaterial)

	// Inventario (protegido)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.Log)
	inventario := api.Group("/inventario", authMW)
	inventario.Get("/", inventoryHandler.List)
	inventario.Post("/", inventoryHandler.Create)
	inventario.Get("/:id", inventoryHandler.GetByID)
	inventario.Put("/:id", inventoryHandler.Update)
	inventario.Delete("/:id", inventoryHandler.Delete)

	// Pedidos (protegido)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.Log)
	pedidos := api.Group("/pedidos", authMW)
	pedidos.Get("/", orderHandler.List)
	pedidos.Post("/", orderHandler.Create)
	pedidos.Get("/:id", orderHandler.GetByID)
	pedidos.Put("/:id", orderHandler.Update)
	pedidos.Patch("/:id/estado", orderHandler.ChangeStatus)
	pedidos.Delete("/:id", orderHandler.Delete)

	// Reportes y panel (protegido)
	reportHandler := NewReportHandler(deps.ReportUC, deps.Log)
	api.Get("/reporte-pdf", authMW, reportHandler.Download)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	api.Get("/dashboard/resumen", authMW, dashboardHandler.GetSummary)
}
