package http

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/spec-kit/placement-portal/internal/observability"
	apperrors "github.com/spec-kit/placement-portal/pkg/util"
)

// RegisterMiddlewares wires the shared middleware chain.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, requestTimeout time.Duration) {
	app.Use(cors.New())
	if requestTimeout > 0 {
		app.Use(timeoutMiddleware(requestTimeout))
	}
	app.Use(errorHandlingMiddleware(logger))
	app.Use(observability.RequestLogger(logger))
}

// timeoutMiddleware bounds each request with a deadline.
func timeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware recovers panics and renders errors in a stable
// envelope: {"error": {"code", "message", "details"}}.
func errorHandlingMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.String("path", c.Path()),
					zap.String("method", c.Method()))
				err = writeError(c, apperrors.NewInternalError(fmt.Errorf("%v", r)))
			}
		}()

		if err := c.Next(); err != nil {
			if fiberErr, ok := err.(*fiber.Error); ok {
				observability.HTTPErrors.WithLabelValues(c.Route().Path, c.Method(), strconv.Itoa(fiberErr.Code)).Inc()
				return c.Status(fiberErr.Code).JSON(fiber.Map{
					"error": fiber.Map{"code": "HTTP_ERROR", "message": fiberErr.Message},
				})
			}
			return writeError(c, err)
		}
		return nil
	}
}

func writeError(c *fiber.Ctx, err error) error {
	domainErr := apperrors.ToDomainError(err)

	observability.HTTPErrors.WithLabelValues(c.Route().Path, c.Method(), domainErr.Code).Inc()

	body := fiber.Map{"code": domainErr.Code, "message": domainErr.Message}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": body})
}
