package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/spf13/afero"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
	"github.com/jhoicas/tienda-api/internal/infrastructure/database"
	"github.com/jhoicas/tienda-api/internal/infrastructure/photostore"
	httpRouter "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := database.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a la base de datos")
	}
	defer backend.Close()

	photos, err := photostore.NewFileStore(afero.NewOsFs(), cfg.Storage.PhotosDir)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén de fotos")
	}

	sessions := auth.NewSessionStore(cfg.Session.TTL())
	if interval := cfg.Session.SweepInterval(); interval > 0 {
		sessions.StartJanitor(interval)
	}
	// Las sesiones viven solo en memoria: se pierden al detener el proceso.
	defer sessions.Close()

	authUC := auth.NewAuthUseCase(backend.Admins, sessions)
	catalogUC := catalog.NewCatalogUseCase(backend.Products, photos)
	transactionUC := inventory.NewTransactionUseCase(backend.TxRunner, authUC, photos, log.Component("inventory"))

	app := httpRouter.NewApp(cfg.App.Name)

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Tienda API",
		}))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:        catalogUC,
		AuthUC:           authUC,
		TransactionUC:    transactionUC,
		SessionTTL:       cfg.Session.TTL(),
		SecureCookie:     true,
		CORSAllowOrigins: cfg.HTTP.CORSAllowOrigins,
		Log:              log.Component("http"),
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

	log.Info().Int("sesiones_descartadas", sessions.Len()).Msg("aplicación detenida")
}
