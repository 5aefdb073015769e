package conf

import (
	"testing"
	"time"

	"go.uber.org/zap/zapcore"
)

func TestNewEnv(t *testing.T) {
	t.Setenv("PROFILE", "test")
	t.Setenv("ZABBIX_URL", "https://zabbix.example.org")
	t.Setenv("ZABBIX_USER", "Admin")
	t.Setenv("ZABBIX_TIMEOUT", "3s")

	env := NewEnv()
	if env.Env != "test" {
		t.Errorf("%s != test", env.Env)
	}
	if env.Zabbix.Server != "https://zabbix.example.org" {
		t.Errorf("unexpected server %s", env.Zabbix.Server)
	}
	if env.Zabbix.User != "Admin" {
		t.Errorf("unexpected user %s", env.Zabbix.User)
	}
	if env.Zabbix.Timeout != 3*time.Second {
		t.Errorf("unexpected timeout %s", env.Zabbix.Timeout)
	}
	if env.Port != "8080" {
		t.Errorf("unexpected default port %s", env.Port)
	}
	if env.Lookup.CacheTTL != time.Minute || env.Lookup.CacheSize != 512 {
		t.Errorf("unexpected lookup defaults %+v", env.Lookup)
	}
	if env.RefreshInterval != "@every 30m" {
		t.Errorf("unexpected refresh interval %s", env.RefreshInterval)
	}
}

func TestGetLogLevel(t *testing.T) {
	levels := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"WARN":  zapcore.WarnLevel,
		"Error": zapcore.ErrorLevel,
		"bogus": zapcore.InfoLevel,
		"fatal": zapcore.InfoLevel,
	}
	for in, want := range levels {
		if got := getLogLevel(in); got != want {
			t.Errorf("getLogLevel(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestGetLogger(t *testing.T) {
	for _, profile := range []string{"test", "local", "prod"} {
		if GetLogger(profile, zapcore.InfoLevel, "zabbix-inspector") == nil {
			t.Errorf("no logger for profile %s", profile)
		}
	}
}
