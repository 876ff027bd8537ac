package config

type Config interface {
	EnvConfig
	TokenConfig
	SessionConfig
}

type mainConfig struct {
	EnvVars
	Token
	Session
}

func New() Config {
	return mainConfig{}
}
