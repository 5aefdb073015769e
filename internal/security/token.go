package security

import (
	"errors"

	"github.com/mimiro-io/zabbix-objects/internal/conf"
	"go.uber.org/zap"
)

// CredentialProvider supplies the user name and password used to log in.
type CredentialProvider interface {
	Credentials() (user string, password string, err error)
}

type envCredentials struct {
	user     string
	password string
}

// NewCredentialProvider reads the credentials from the environment.
func NewCredentialProvider(env *conf.Env, logger *zap.SugaredLogger) CredentialProvider {
	if env.Zabbix.User == "" {
		logger.Warn("No user name defined: set env var: ZABBIX_USER")
	}
	if env.Zabbix.Password == "" {
		logger.Warn("No password defined: set env var: ZABBIX_PASSWORD")
	}
	return &envCredentials{user: env.Zabbix.User, password: env.Zabbix.Password}
}

func (c *envCredentials) Credentials() (string, string, error) {
	if c.user == "" {
		return "", "", errors.New("no user name configured")
	}
	return c.user, c.password, nil
}

// StaticCredentials is a fixed user name and password.
type StaticCredentials struct {
	User     string
	Password string
}

func (c StaticCredentials) Credentials() (string, string, error) {
	return c.User, c.Password, nil
}
