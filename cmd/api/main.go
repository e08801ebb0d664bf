package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	_ "github.com/imprentacamiri/imprenta-api/docs"
	"github.com/imprentacamiri/imprenta-api/internal/application/auth"
	"github.com/imprentacamiri/imprenta-api/internal/application/dashboard"
	"github.com/imprentacamiri/imprenta-api/internal/application/order"
	"github.com/imprentacamiri/imprenta-api/internal/application/report"
	"github.com/imprentacamiri/imprenta-api/internal/application/usecase"
	"github.com/imprentacamiri/imprenta-api/internal/infrastructure/mail"
	infrapdf "github.com/imprentacamiri/imprenta-api/internal/infrastructure/pdf"
	httpRouter "github.com/imprentacamiri/imprenta-api/internal/interfaces/http"
	"github.com/imprentacamiri/imprenta-api/pkg/config"
	"github.com/imprentacamiri/imprenta-api/pkg/logger"
	"github.com/imprentacamiri/imprenta-api/pkg/metrics"
)

// @title        Imprenta Camiri API
// @version      1.0
// @description  Clientes, productos, inventario, pedidos, usuarios y reportes PDF de la imprenta.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("persistencia")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	var mailer auth.Mailer = mail.NewLogMailer(log)
	if cfg.SMTP.Enabled() {
		mailer = mail.NewSMTPMailer(cfg.SMTP)
	} else {
		log.Warn().Msg("SMTP_HOST vacío: los enlaces de restablecimiento solo se registran en el log")
	}

	authUC := auth.NewAuthUseCase(st.users, st.tokens, mailer,
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		auth.ResetConfig{
			TokenTTL: cfg.Reset.TokenTTL(),
			URLBase:  cfg.Reset.URLBase,
		},
		log,
	)
	if cfg.Admin.Email != "" {
		if _, err := authUC.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
			log.Fatal().Err(err).Msg("crear administrador inicial")
		}
	}

	orderUC := order.NewUseCase(st.tx, st.orders, st.clients, m, log)
	reportUC := report.NewUseCase(st.orders, st.inventory, st.clients, st.products,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name))

	app := httpRouter.NewApp(httpRouter.AppOptions{
		Name:         cfg.App.Name,
		CORSOrigins:  cfg.HTTP.CORSOrigins,
		Metrics:      m,
		Gatherer:     reg,
		Log:          log,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Imprenta Camiri API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClientUC:    usecase.NewClientUseCase(st.clients),
		ProductUC:   usecase.NewProductUseCase(st.products, st.inventory),
		InventoryUC: usecase.NewInventoryUseCase(st.inventory),
		UserUC:      usecase.NewUserUseCase(st.users, cfg.Rules.UserEmailDomain),
		OrderUC:     orderUC,
		AuthUC:      authUC,
		ReportUC:    reportUC,
		DashboardUC: dashboard.NewUseCase(st.dashboard, cfg.Rules.LowStockThreshold),
		Users:       st.users,
		JWTSecret:   cfg.JWT.Secret,
		AuthLimiter: httpRouter.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
		Log:         log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	if err := st.Close(); err != nil {
		log.Error().Err(err).Msg("cerrar persistencia")
	}

	log.Info().Msg("aplicación detenida")
}
