package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"kursusku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar (urutan penting).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
