package conf

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger rebuilds the bootstrap logger once the env is loaded, at LOG_LEVEL and
// named after the service so component loggers read as <service>.<component>.
func NewLogger(env *Env) *zap.SugaredLogger {
	logLevel := viper.GetString("LOG_LEVEL")
	env.Logger.Debugf("Resetting log level to %s", logLevel)
	return GetLogger(env.Env, getLogLevel(logLevel), env.ServiceName).Named(env.ServiceName)
}

// GetLogger builds a logger for a profile: nothing for test, console for local and
// sampled json with service fields anywhere else.
func GetLogger(profile string, level zapcore.Level, serviceName string) *zap.SugaredLogger {
	if profile == "test" {
		return zap.NewNop().Sugar()
	}

	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if profile == "local" {
		cfg.Development = true
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
		cfg.Encoding = "json"
		cfg.EncoderConfig = zap.NewProductionEncoderConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	if profile != "local" {
		logger = logger.With(zap.String("service", serviceName), zap.String("source", "go"))
	}
	return logger.Sugar()
}

func getLogLevel(level string) zapcore.Level {
	l, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil || l < zapcore.DebugLevel || l > zapcore.ErrorLevel {
		return zapcore.InfoLevel
	}
	return l
}
