package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/ascari-panel/internal/application/auth"
	"github.com/jhoicas/ascari-panel/internal/application/ports"
	appquote "github.com/jhoicas/ascari-panel/internal/application/quote"
	domainquote "github.com/jhoicas/ascari-panel/internal/domain/quote"
	"github.com/jhoicas/ascari-panel/internal/domain/repository"
	"github.com/jhoicas/ascari-panel/internal/infrastructure/odoo"
	infrapdf "github.com/jhoicas/ascari-panel/internal/infrastructure/pdf"
	"github.com/jhoicas/ascari-panel/internal/infrastructure/postgres"
	"github.com/jhoicas/ascari-panel/internal/infrastructure/qr"
	httpRouter "github.com/jhoicas/ascari-panel/internal/interfaces/http"
	"github.com/jhoicas/ascari-panel/pkg/config"
	"github.com/jhoicas/ascari-panel/pkg/logger"
	"github.com/jhoicas/ascari-panel/pkg/sealer"
)

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
		Str("pricing_mode", cfg.Pricing.Mode).
		Msg("iniciando aplicación")

	policy, err := domainquote.ParsePricingPolicy(
		cfg.Pricing.Mode, cfg.Pricing.InstallmentPremium, cfg.Pricing.TaxRate, cfg.Pricing.RoundPlaces,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("política de precios")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// PostgreSQL: solo credenciales recordadas ("recordarme"). Opcional.
	var credRepo repository.CredentialRepository
	if cfg.DB.Enabled && cfg.Session.CredentialsKey != "" {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema de PostgreSQL")
		}
		s, err := sealer.NewFromHex(cfg.Session.CredentialsKey)
		if err != nil {
			log.Fatal().Err(err).Msg("CREDENTIALS_KEY inválida")
		}
		credRepo = postgres.NewCredentialRepository(pool, s)
	} else {
		log.Warn().Msg("sin DB_ENABLED o CREDENTIALS_KEY: 'recordarme' deshabilitado")
	}

	connector := odoo.NewConnector(odoo.Config{
		Timeout:         time.Duration(cfg.Odoo.TimeoutSeconds) * time.Second,
		RatePerSecond:   cfg.Odoo.RatePerSecond,
		Burst:           cfg.Odoo.Burst,
		CategoryModel:   cfg.Odoo.CategoryModel,
		ProductLimit:    cfg.Odoo.ProductLimit,
		SearchLimit:     cfg.Odoo.SearchLimit,
		DimensionFields: cfg.Odoo.DimensionFields,
	}, log.Component("odoo"))

	// PDF: documento imprimible de la cotización (con QR de verificación)
	renderer := infrapdf.NewMarotoQuotationRenderer(infrapdf.Company{
		Name:    cfg.Company.Name,
		Tagline: cfg.Company.Tagline,
	})
	generator := appquote.NewGenerator(appquote.GeneratorConfig{
		DefaultCustomer: cfg.Quote.DefaultCustomer,
		VerifyBaseURL:   cfg.Quote.VerifyURL,
		Policy:          policy,
	}, domainquote.NewCodeGenerator(cfg.Quote.Prefix), renderer)

	dispatcher := appquote.NewDispatcher(
		int64(cfg.Quote.SyncMaxInFlight),
		time.Duration(cfg.Quote.SyncTimeoutSecs)*time.Second,
		log.Component("sync"),
	)

	workspaceLog := log.Component("workspace")
	newWorkspace := func(gw ports.SessionGateway) *appquote.Workspace {
		return appquote.NewWorkspace(gw, generator, dispatcher, workspaceLog)
	}

	registry := auth.NewRegistry(time.Duration(cfg.Session.TTLMinutes) * time.Minute)
	authUC := auth.NewAuthUseCase(connector, credRepo, registry, newWorkspace, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, time.Duration(cfg.Odoo.TimeoutSeconds)*time.Second*3, log.Component("auth")).
		WithConnectDefaults(cfg.Odoo.URL, cfg.Odoo.DB)

	// Limpieza periódica de sesiones expiradas
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := authUC.Sweep(); n > 0 {
					log.Info().Int("expired", n).Msg("sesiones expiradas eliminadas")
				}
			}
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // refresco de catálogo completo
		IdleTimeout:  time.Second * 60,
		BodyLimit:    1 << 20,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC: authUC,
		QR:     qr.NewPNGRenderer(),
		Log:    log.Component("http"),
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	// Los envíos al backend en curso terminan antes de salir
	dispatcher.Wait()

	log.Info().Msg("aplicación detenida")
}
