package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/ascari-panel/internal/application/auth"
	"github.com/jhoicas/ascari-panel/internal/application/ports"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC *auth.AuthUseCase
	QR     ports.QRRenderer
	Log    zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Log)
	authGroup := api.Group("/auth")
	authGroup.Post("/connect", authHandler.Connect)
	authGroup.Get("/remembered", authHandler.Remembered)
	authGroup.Post("/remembered/connect", authHandler.ConnectRemembered)

	// Rutas protegidas (requieren Bearer Token de una sesión viva)
	protected := api.Group("", AuthMiddleware(deps.AuthUC))
	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/logout", authHandler.Logout)

	// Cotización rápida: vendedores y admin
	staff := protected.Group("", RequireRole(entity.RoleSales, entity.RoleAdmin))

	catalogHandler := NewCatalogHandler(deps.Log)
	catalog := staff.Group("/catalog")
	catalog.Get("/", catalogHandler.View)
	catalog.Post("/refresh", catalogHandler.Refresh)
	catalog.Post("/toggle", catalogHandler.Toggle)
	catalog.Post("/filter", catalogHandler.Filter)
	catalog.Post("/query", catalogHandler.Query)
	catalog.Post("/search", catalogHandler.Search)

	cartHandler := NewCartHandler(deps.Log)
	cart := staff.Group("/cart")
	cart.Post("/items", cartHandler.Add)
	cart.Put("/items/:id", cartHandler.SetQuantity)
	cart.Post("/items/:id/decrement", cartHandler.Decrement)
	cart.Delete("/items/:id", cartHandler.Remove)
	cart.Delete("/", cartHandler.Clear)

	quoteHandler := NewQuoteHandler(deps.QR, deps.Log)
	quotes := staff.Group("/quotes")
	quotes.Post("/", quoteHandler.Create)
	quotes.Post("/new", quoteHandler.StartNew)
	quotes.Get("/current", quoteHandler.Current)
	quotes.Get("/current/sync", quoteHandler.Sync)
	quotes.Get("/current/pdf", quoteHandler.PDF)
	quotes.Get("/:code/qr.png", quoteHandler.QR)
	quotes.Get("/:code", quoteHandler.GetByCode)

	searchHandler := NewSearchHandler(deps.Log)
	staff.Get("/search/:kind", searchHandler.Search)
}
