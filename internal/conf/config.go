package conf

import (
	"time"

	"go.uber.org/zap"
)

type Env struct {
	Logger          *zap.SugaredLogger
	Env             string
	Port            string
	ServiceName     string
	RefreshInterval string
	Zabbix          Zabbix
	Lookup          Lookup
}

type Zabbix struct {
	Server   string
	User     string
	Password string
	Timeout  time.Duration
}

type Lookup struct {
	CacheTTL  time.Duration
	CacheSize int
}
