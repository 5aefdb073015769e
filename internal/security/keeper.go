package security

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mimiro-io/zabbix-objects/internal/conf"
	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrLoginRejected = errors.New("login rejected")

// Authenticator is a session that can log in. *api.SyncSession satisfies it.
type Authenticator interface {
	Authenticate(ctx context.Context, user, password string) (bool, error)
}

// SessionKeeper logs a session in and renews the login on a schedule, since the
// server expires idle session tokens.
type SessionKeeper struct {
	session     Authenticator
	credentials CredentialProvider
	interval    string
	logger      *zap.SugaredLogger
	cron        *cron.Cron
}

func NewSessionKeeper(lc fx.Lifecycle, env *conf.Env, session Authenticator, credentials CredentialProvider, logger *zap.SugaredLogger) *SessionKeeper {
	keeper := NewKeeper(session, credentials, env.RefreshInterval, logger)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return keeper.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			keeper.Stop()
			return nil
		},
	})
	return keeper
}

// NewKeeper returns a keeper outside of an application lifecycle. An empty
// interval disables the renewals.
func NewKeeper(session Authenticator, credentials CredentialProvider, interval string, logger *zap.SugaredLogger) *SessionKeeper {
	return &SessionKeeper{
		session:     session,
		credentials: credentials,
		interval:    interval,
		logger:      logger.Named("session-keeper"),
	}
}

// Start logs in once and schedules the renewals.
func (k *SessionKeeper) Start(ctx context.Context) error {
	if err := k.Login(ctx); err != nil {
		return err
	}
	if k.interval == "" {
		return nil
	}
	k.cron = cron.New()
	if _, err := k.cron.AddFunc(k.interval, k.renew); err != nil {
		return fmt.Errorf("invalid refresh interval %q: %w", k.interval, err)
	}
	k.cron.Start()
	k.logger.Infof("Renewing the session %s", k.interval)
	return nil
}

func (k *SessionKeeper) Stop() {
	if k.cron != nil {
		<-k.cron.Stop().Done()
	}
}

func (k *SessionKeeper) Login(ctx context.Context) error {
	user, password, err := k.credentials.Credentials()
	if err != nil {
		return err
	}
	ok, err := k.session.Authenticate(ctx, user, password)
	if err != nil {
		k.logger.Warnf("Login as %s failed: %v", user, err)
		return err
	}
	if !ok {
		k.logger.Warnf("Login as %s was rejected", user)
		return fmt.Errorf("%w for user %s", ErrLoginRejected, user)
	}
	k.logger.Infof("Logged in as %s", user)
	return nil
}

func (k *SessionKeeper) renew() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	if err := k.Login(ctx); err != nil {
		k.logger.Errorf("Could not renew the session: %v", err)
	}
}
