package http

import (
	"context"
	"errors"
	"runtime/debug"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/employee-directory/internal/api/http/handlers"
	"github.com/spec-kit/employee-directory/internal/i18n"
	"github.com/spec-kit/employee-directory/internal/observability"
	"github.com/spec-kit/employee-directory/internal/session"
	"github.com/spec-kit/employee-directory/internal/view"
	apperrors "github.com/spec-kit/employee-directory/pkg/util"
)

// MiddlewareConfig bundles dependencies of the global middlewares.
type MiddlewareConfig struct {
	Logger   *zap.Logger
	Metrics  *observability.Metrics
	Timeout  time.Duration
	Renderer *view.Renderer
	Bundle   *i18n.Bundle
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
	app.Use(errorHandlingMiddleware(cfg))
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorHandlingMiddleware turns returned errors and panics into a translated
// HTML error page.
func errorHandlingMiddleware(cfg MiddlewareConfig) fiber.Handler {
	logger := cfg.Logger
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := toDomainError(err)
				cfg.Metrics.RecordError(c.Path(), c.Method(), domainErr.Code)
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr))
				}
				if werr := writeErrorPage(c, cfg, domainErr); werr != nil {
					logger.Error("render error page", zap.Error(werr))
					c.Status(domainErr.HTTPStatus)
					_ = c.SendString(domainErr.Message)
				}
				err = nil
			}
		}()
		return c.Next()
	}
}

func toDomainError(err error) *apperrors.DomainError {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		e := apperrors.NewDomainError("HTTP_ERROR", fe.Message, fe.Code, nil)
		e.MessageID = "Common.Messages.InvalidRequest"
		if fe.Code >= fiber.StatusInternalServerError {
			e.MessageID = "Common.Messages.Error"
		}
		return e
	}
	return apperrors.ToDomainError(err)
}

func writeErrorPage(c *fiber.Ctx, cfg MiddlewareConfig, domainErr *apperrors.DomainError) error {
	ws, _ := session.Current(c)
	tr := cfg.Bundle.NewTranslator(cfg.Bundle.Default())
	if ws != nil {
		tr = ws.Translator
	}
	message := domainErr.Message
	if domainErr.MessageID != "" {
		message = tr.T(domainErr.MessageID)
	}
	body, err := cfg.Renderer.Error(tr.T("Common.Messages.Error"), message, tr.T("Common.Nav.Employees"))
	if err != nil {
		return err
	}
	return handlers.WritePage(c, cfg.Renderer, ws, tr, domainErr.HTTPStatus, body)
}
