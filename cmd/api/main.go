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

	"github.com/dparedes/sial-api/internal/application/auditoria"
	"github.com/dparedes/sial-api/internal/application/auth"
	"github.com/dparedes/sial-api/internal/application/despacho"
	"github.com/dparedes/sial-api/internal/application/renglon"
	"github.com/dparedes/sial-api/internal/infrastructure/cache"
	infrapdf "github.com/dparedes/sial-api/internal/infrastructure/pdf"
	"github.com/dparedes/sial-api/internal/infrastructure/postgres"
	httpRouter "github.com/dparedes/sial-api/internal/interfaces/http"
	"github.com/dparedes/sial-api/pkg/config"
	"github.com/dparedes/sial-api/pkg/logger"
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

	despachoRepo := postgres.NewDespachoRepository(pool)
	serialRepo := postgres.NewSerialRepository(pool)
	renglonRepo := postgres.NewRenglonRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	auditoriaRepo := postgres.NewAuditoriaRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditoriaUC := auditoria.NewUseCase(auditoriaRepo)
	listadoCache := cache.NewListadoDespachos()
	guiaPDF := infrapdf.NewMarotoGuiaGenerator()

	despachoUC := despacho.NewUseCase(
		txRunner, despachoRepo, serialRepo,
		auditoriaUC, listadoCache, guiaPDF, log,
	)
	renglonUC := renglon.NewUseCase(renglonRepo, serialRepo, auditoriaUC)
	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "SIAL API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		DespachoUC:  despachoUC,
		RenglonUC:   renglonUC,
		AuditoriaUC: auditoriaUC,
		JWTSecret:   cfg.JWT.Secret,
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
