package routes

import (
	"github.com/WilLunaj/Ventas-web/controllers"
	"github.com/WilLunaj/Ventas-web/middlewares"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Register wires all HTTP routes.
func Register(app *fiber.App, ventas *controllers.VentaController, logger *zap.Logger) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Ledger routes run inside a per-request transaction so every write is
	// all-or-nothing.
	app.Use(middlewares.RequestTx(logger))

	app.Get("/", ventas.List)
	app.Post("/", ventas.Create)

	// The original form posts toggles, but links may hit them with GET too.
	app.Post("/toggle/:id/:campo", ventas.Toggle)
	app.Get("/toggle/:id/:campo", ventas.Toggle)

	app.Post("/delete/:id", ventas.Delete)
	app.Post("/upload/:id", ventas.Upload)

	app.Get("/export", ventas.Export)
}
