package zabbix

import (
	"context"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/mimiro-io/zabbix-objects/internal/api"
	"github.com/mimiro-io/zabbix-objects/internal/conf"
	"github.com/mimiro-io/zabbix-objects/internal/lookup"
	"github.com/mimiro-io/zabbix-objects/internal/security"
	"github.com/mimiro-io/zabbix-objects/internal/web"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func wire() *fx.App {
	app := fx.New(
		fx.Provide(
			conf.NewEnv,
			conf.NewStatsd,
			conf.NewLogger,
			NewSession,
			authenticator,
			security.NewCredentialProvider,
			lookup.NewDirectory,
			web.NewWebServer,
			web.NewMiddleware,
			web.NewObjectHandler,
		),
		fx.Invoke(
			security.NewSessionKeeper,
			web.Register,
		),
	)
	return app
}

// NewSession opens the shared, lock guarded session to the configured server.
func NewSession(env *conf.Env, logger *zap.SugaredLogger, client statsd.ClientInterface) *api.SyncSession {
	return api.NewSyncSession(api.NewSession(api.Config{
		Server:  env.Zabbix.Server,
		Timeout: env.Zabbix.Timeout,
	}, logger, client))
}

func authenticator(session *api.SyncSession) security.Authenticator {
	return session
}

func Run() {
	wire().Run()
}

func Start(ctx context.Context) (*fx.App, error) {
	app := wire()
	err := app.Start(ctx)
	return app, err
}
