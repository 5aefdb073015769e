package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/labstack/echo/v4"
	"github.com/mimiro-io/zabbix-objects/internal/conf"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Handler struct {
	Logger       *zap.SugaredLogger
	Port         string
	StatsDClient statsd.ClientInterface
	Profile      string
}

func NewWebServer(lc fx.Lifecycle, env *conf.Env, logger *zap.SugaredLogger, statsd statsd.ClientInterface) (*Handler, *echo.Echo) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	l := logger.Named("web")

	handler := &Handler{
		Logger:       l,
		Port:         env.Port,
		StatsDClient: statsd,
		Profile:      env.Env,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			l.Infof("Starting Http server on :%s", env.Port)
			go func() {
				if err := e.Start(":" + env.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					l.Errorf("Http server stopped: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			l.Infof("Shutting down Http server")
			return e.Shutdown(ctx)
		},
	})

	return handler, e
}

func Register(e *echo.Echo, env *conf.Env, mw *Middleware, objects *ObjectHandler) {
	env.Logger.Infof("Registering endpoints")
	mw.configure(e)

	e.GET("/health", health)

	e.GET("/hosts/:name", objects.host)
	e.GET("/hosts/:name/items", objects.hostItems)
	e.GET("/hosts/:name/triggers", objects.hostTriggers)
	e.GET("/hostgroups/:name", objects.hostGroup)
	e.GET("/items/:host/:key/hosts", objects.itemHosts)
}

func health(c echo.Context) error {
	return c.String(http.StatusOK, "UP")
}
