package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/helpdesk-pro/internal/application/provisioning"
	"github.com/tu-usuario/helpdesk-pro/internal/domain/template"
	"github.com/tu-usuario/helpdesk-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/helpdesk-pro/internal/interfaces/http"
	"github.com/tu-usuario/helpdesk-pro/pkg/config"
	"github.com/tu-usuario/helpdesk-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	schemaRepo := postgres.NewSchemaRepository(pool, log)
	lockRepo := postgres.NewProvisioningLockRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	hierRepo := postgres.NewHierarchyRepository(pool)
	optionRepo := postgres.NewFieldOptionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// La plantilla base se construye UNA vez al arrancar y se inyecta; no hay
	// singleton mutable de configuración.
	baseTemplate := template.Default()

	templateUC := provisioning.NewTemplateUseCase(
		schemaRepo, lockRepo, companyRepo, hierRepo, optionRepo,
		baseTemplate, cfg.Provisioning.Timeout, log,
	)
	cloneUC := provisioning.NewCloneUseCase(schemaRepo, txRunner, cfg.Provisioning.Timeout, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Helpdesk Pro Provisioning API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TemplateUC: templateUC,
		CloneUC:    cloneUC,
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

	log.Info().Msg("aplicación detenida")
}
