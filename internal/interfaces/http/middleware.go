package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/jhoicas/micro-erp/pkg/logger"
)

// RequestLogger registra cada petición con método, ruta, status, latencia y colaborador.
// Los errores se resuelven aquí con el ErrorHandler de la app para registrar el status final.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		ev := log.Info()
		if chainErr != nil {
			ev = log.Warn().Str("error", chainErr.Error())
		}
		ev = ev.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", c.Response().StatusCode()).
			Dur("latency", time.Since(start))
		if p := GetPrincipal(c); p != nil {
			ev = ev.Int64("colaborador_id", p.EmployeeID)
		}
		ev.Msg("http")
		return nil
	}
}

// CORS expone los métodos y cabeceras que usa el frontend. Con origen "*" no se permiten credenciales.
func CORS(origins string) fiber.Handler {
	if origins == "" {
		origins = "*"
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: origins != "*",
	})
}
