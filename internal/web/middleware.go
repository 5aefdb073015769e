package web

import (
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mimiro-io/zabbix-objects/internal/web/middlewares"
)

type Middleware struct {
	logger    echo.MiddlewareFunc
	requestID echo.MiddlewareFunc
	recover   echo.MiddlewareFunc
}

func NewMiddleware(handler *Handler) *Middleware {
	skipper := func(c echo.Context) bool {
		// health checks are too chatty to log
		return strings.HasPrefix(c.Request().URL.Path, "/health")
	}

	return &Middleware{
		logger:    setupLogger(handler, skipper),
		requestID: setupRequestID(),
		recover:   setupRecovery(handler),
	}
}

func (mw *Middleware) configure(e *echo.Echo) {
	e.Use(mw.requestID)
	e.Use(mw.logger)
	e.Use(mw.recover)
}

func setupLogger(handler *Handler, skipper middleware.Skipper) echo.MiddlewareFunc {
	return middlewares.LoggerFilter(middlewares.LoggerConfig{
		Skipper:      skipper,
		Logger:       handler.Logger.Desugar(),
		StatsdClient: handler.StatsDClient,
	})
}

func setupRequestID() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

func setupRecovery(handler *Handler) echo.MiddlewareFunc {
	return middleware.RecoverWithConfig(middleware.RecoverConfig{
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			handler.Logger.Errorf("Recovered from panic in %s %s: %v\n%s", c.Request().Method, c.Request().RequestURI, err, stack)
			return err
		},
	})
}
