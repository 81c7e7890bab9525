package cliconfig

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "USERDESK_"

// envConfig mirrors CLIConfig with pointer fields so that unset variables
// stay nil and leave lower layers alone.
type envConfig struct {
	APIURL    *string        `env:"API_URL"`
	APIHost   *string        `env:"API_HOST"`
	APIPort   *int           `env:"API_PORT"`
	APIBase   *string        `env:"API_BASE"`
	APIToken  *string        `env:"API_TOKEN"`
	Timeout   *time.Duration `env:"TIMEOUT"`
	LogLevel  *string        `env:"LOG_LEVEL"`
	LogFormat *string        `env:"LOG_FORMAT"`
	Language  *string        `env:"LANG"`
	ServeAddr *string        `env:"SERVE_ADDR"`
}

// LoadEnvConfig applies USERDESK_* environment variables to cfg.
// A nil environment reads the process environment. Unset and empty
// variables leave the value alone.
func LoadEnvConfig(cfg *CLIConfig, environment map[string]string) error {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	var e envConfig
	if err := env.ParseWithOptions(&e, env.Options{
		Prefix:      EnvPrefix,
		Environment: environment,
	}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	applyString(cfg, "apiUrl", &cfg.APIURL, e.APIURL)
	applyString(cfg, "apiHost", &cfg.APIHost, e.APIHost)
	if e.APIPort != nil {
		cfg.APIPort = *e.APIPort
		cfg.Sources["apiPort"] = SourceEnv
	}
	applyString(cfg, "apiBase", &cfg.APIBase, e.APIBase)
	applyString(cfg, "apiToken", &cfg.APIToken, e.APIToken)
	if e.Timeout != nil {
		cfg.Timeout = *e.Timeout
		cfg.Sources["timeout"] = SourceEnv
	}
	applyString(cfg, "logLevel", &cfg.LogLevel, e.LogLevel)
	applyString(cfg, "logFormat", &cfg.LogFormat, e.LogFormat)
	applyString(cfg, "language", &cfg.Language, e.Language)
	applyString(cfg, "serveAddr", &cfg.ServeAddr, e.ServeAddr)
	return nil
}

func applyString(cfg *CLIConfig, key string, dst, value *string) {
	if value == nil || *value == "" {
		return
	}
	*dst = *value
	cfg.Sources[key] = SourceEnv
}
