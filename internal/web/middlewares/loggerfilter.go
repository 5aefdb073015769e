package middlewares

import (
	"fmt"
	"strings"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type LoggerConfig struct {
	// Skipper defines a function to skip middleware.
	Skipper middleware.Skipper

	// BeforeFunc defines a function which is executed just before the middleware.
	BeforeFunc middleware.BeforeFunc

	Logger *zap.Logger

	StatsdClient statsd.ClientInterface
}

func LoggerFilter(config LoggerConfig) echo.MiddlewareFunc {
	service := viper.GetViper().GetString("SERVICE_NAME")
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}
	if config.StatsdClient == nil {
		config.StatsdClient = &statsd.NoOpClient{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			if config.BeforeFunc != nil {
				config.BeforeFunc(c)
			}

			start := time.Now()
			req := c.Request()
			res := c.Response()

			if err := next(c); err != nil {
				c.Error(err)
			}

			timed := time.Since(start)

			// tagged by route pattern, not by raw uri
			tags := []string{
				fmt.Sprintf("application:%s", service),
				fmt.Sprintf("method:%s", strings.ToLower(req.Method)),
				fmt.Sprintf("url:%s", strings.ToLower(c.Path())),
				fmt.Sprintf("status:%d", res.Status),
			}

			err := config.StatsdClient.Incr("http.count", tags, 1)
			if err == nil {
				err = config.StatsdClient.Timing("http.time", timed, tags, 1)
			}
			if err == nil {
				err = config.StatsdClient.Gauge("http.size", float64(res.Size), tags, 1)
			}
			if err != nil {
				config.Logger.Warn("Error with statsd", zap.Error(err))
			}

			msg := fmt.Sprintf("%d - %s %s (time: %s, size: %d, user_agent: %s)", res.Status, req.Method, req.RequestURI, timed.String(), res.Size, req.UserAgent())

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = res.Header().Get(echo.HeaderXRequestID)
			}

			config.Logger.Info(msg,
				zap.String("time", timed.String()),
				zap.String("request", fmt.Sprintf("%s %s", req.Method, req.RequestURI)),
				zap.Int("status", res.Status),
				zap.Int64("size", res.Size),
				zap.String("user_agent", req.UserAgent()),
				zap.String("request_id", id),
			)

			return nil
		}
	}
}
