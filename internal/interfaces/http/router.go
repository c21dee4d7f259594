package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/catalog"
	"github.com/jhoicas/tienda-api/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC        *catalog.CatalogUseCase
	AuthUC           *auth.AuthUseCase
	TransactionUC    *inventory.TransactionUseCase
	SessionTTL       time.Duration
	SecureCookie     bool
	CORSAllowOrigins string
	Log              zerolog.Logger
}

// NewApp construye la aplicación Fiber con middlewares comunes y manejo de errores en sobre.
func NewApp(appName string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      appName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    16 * 1024 * 1024, // tres fotos en base64
		ErrorHandler: ErrorHandler,
	})
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	origins := deps.CORSAllowOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(RequestLogger(deps.Log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowCredentials: origins != "*",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return ok(c, fiber.StatusOK, "ok")
	})

	// Catálogo (público)
	productHandler := NewProductHandler(deps.CatalogUC)
	products := app.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/photos/:slot", productHandler.GetPhoto)

	// Ventas (público)
	saleHandler := NewSaleHandler(deps.TransactionUC)
	app.Post("/sale", saleHandler.Create)

	// Panel de administración
	authHandler := NewAuthHandler(deps.AuthUC, deps.SessionTTL, deps.SecureCookie)
	panel := app.Group("/admin-panel")
	panel.Post("/login", authHandler.Login)

	requireSession := SessionMiddleware(deps.AuthUC)
	panel.Delete("/session", requireSession, authHandler.Logout)

	inventoryHandler := NewInventoryHandler(deps.TransactionUC)
	panel.Post("/supply", requireSession, inventoryHandler.Supply)
	panel.Post("/restock", requireSession, inventoryHandler.Restock)
}
