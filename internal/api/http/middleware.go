package http

import (
	"context"
	"errors"
	nethttp "net/http"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/auth-gateway/internal/config"
	"github.com/spec-kit/auth-gateway/internal/observability"
	apperrors "github.com/spec-kit/auth-gateway/pkg/util"
)

// RegisterMiddlewares attaches global middlewares such as CORS, error
// handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg *config.Config, logger *zap.Logger, metrics *observability.Metrics) {
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.FrontendURL,
		AllowCredentials: true,
	}))
	if timeout := cfg.App.RequestTimeout(); timeout > 0 {
		app.Use(requestTimeoutMiddleware(timeout))
	}
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				var fiberErr *fiber.Error
				if errors.As(err, &fiberErr) {
					err = apperrors.NewDomainError(fiberErr.Code, nethttp.StatusText(fiberErr.Code), fiberErr.Message)
				}

				domainErr := apperrors.ToDomainError(err)
				if domainErr.StatusCode >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}

				var message any = domainErr.Message
				if len(domainErr.Details) > 0 {
					message = domainErr.Details
				}
				c.Status(domainErr.StatusCode)
				_ = c.JSON(fiber.Map{
					"statusCode": domainErr.StatusCode,
					"message":    message,
					"error":      domainErr.ErrorType,
				})
				err = nil
			}
		}()
		return c.Next()
	}
}
