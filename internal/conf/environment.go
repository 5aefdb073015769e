package conf

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewEnv() *Env {
	profile, found := os.LookupEnv("PROFILE")
	if !found {
		profile = "local"
	}

	service, _ := os.LookupEnv("SERVICE_NAME")
	logger := GetLogger(profile, zapcore.InfoLevel, service) // add a default logger while loading the env
	logger.Debugf("Loading env: %s", profile)

	parseEnv(profile, logger)

	return &Env{
		Logger:          logger,
		Env:             profile,
		Port:            viper.GetString("SERVER_PORT"),
		ServiceName:     viper.GetString("SERVICE_NAME"),
		RefreshInterval: viper.GetString("SESSION_REFRESH_INTERVAL"),
		Zabbix: Zabbix{
			Server:   viper.GetString("ZABBIX_URL"),
			User:     viper.GetString("ZABBIX_USER"),
			Password: viper.GetString("ZABBIX_PASSWORD"),
			Timeout:  viper.GetDuration("ZABBIX_TIMEOUT"),
		},
		Lookup: Lookup{
			CacheTTL:  viper.GetDuration("LOOKUP_CACHE_TTL"),
			CacheSize: viper.GetInt("LOOKUP_CACHE_SIZE"),
		},
	}
}

func parseEnv(env string, logger *zap.SugaredLogger) {
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "INFO")
	viper.SetDefault("SERVICE_NAME", "zabbix-inspector")
	viper.SetDefault("ZABBIX_URL", "http://localhost")
	viper.SetDefault("ZABBIX_TIMEOUT", "10s")
	viper.SetDefault("SESSION_REFRESH_INTERVAL", "@every 30m")
	viper.SetDefault("LOOKUP_CACHE_TTL", "60s")
	viper.SetDefault("LOOKUP_CACHE_SIZE", 512)
	viper.AutomaticEnv()

	// the .env files are optional, the environment alone is enough
	viper.SetConfigName(".env")
	if err := viper.ReadInConfig(); err != nil {
		logger.Debugf("No .env file read: %s", err)
	} else {
		logger.Infof("Reading config file %s", viper.GetViper().ConfigFileUsed())
	}

	viper.SetConfigName(fmt.Sprintf(".env-%s", env))
	if err := viper.MergeInConfig(); err != nil {
		logger.Debugf("Could not find .env-%s", env)
	} else {
		logger.Infof("Reading config file %s", viper.GetViper().ConfigFileUsed())
	}
}
