package conf

import (
	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/spf13/viper"
)

func NewStatsd(env *Env) (statsd.ClientInterface, error) {
	agentEndpoint := viper.GetString("DD_AGENT_HOST")
	if agentEndpoint == "" {
		env.Logger.Debug("Using NoOp statsd client")
		return &statsd.NoOpClient{}, nil
	}

	env.Logger.Info("Statsd is configured on: ", agentEndpoint)
	c, err := statsd.New(agentEndpoint, statsd.WithNamespace(env.ServiceName+"."), statsd.WithTags([]string{env.ServiceName}))
	if err != nil {
		return nil, err
	}
	return c, nil
}
