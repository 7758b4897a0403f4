package httpx

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"portfolio-api/internal/config"
	"portfolio-api/internal/httpx/kit"
	"portfolio-api/internal/logx"
	"portfolio-api/pkg"
)

var httpxLogger = logx.GetScope("httpx")

// RegisterCommonMiddlewares registers recovery, request ids, security headers,
// compression, CORS and a structured access log.
func RegisterCommonMiddlewares(app *fiber.App, cfg *config.Config) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(compress.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.FrontendURL,
		AllowCredentials: cfg.Server.FrontendURL != "*",
	}))

	// Structured access log
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// let the error handler write the status we log
			if herr := app.ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		latency := time.Since(start)
		httpxLogger.Info("access",
			zap.String("method", c.Method()),
			zap.String("path", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.String("latency", pkg.Latency(latency)),
			zap.Int64("latency_ms", latency.Milliseconds()),
			zap.String("ip", c.IP()),
			zap.String("ua", c.Get(fiber.HeaderUserAgent)),
			zap.String("request_id", kit.RequestID(c)),
		)
		return nil
	})
}
