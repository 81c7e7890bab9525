package cliconfig

import "time"

// DefaultAPIHost is the default host of the users service.
const DefaultAPIHost = "localhost"

// DefaultAPIPort is the default port of the users service.
const DefaultAPIPort = 8080

// DefaultAPIBase is the default collection path of the users service.
const DefaultAPIBase = "/api/users"

// DefaultTimeout bounds every remote call.
const DefaultTimeout = 30 * time.Second

const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
	DefaultLanguage  = "es"
	DefaultServeAddr = ":8080"
)

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		APIHost:   DefaultAPIHost,
		APIPort:   DefaultAPIPort,
		APIBase:   DefaultAPIBase,
		Timeout:   DefaultTimeout,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Language:  DefaultLanguage,
		ServeAddr: DefaultServeAddr,
		Sources:   make(map[string]string),
	}

	for _, key := range []string{
		"apiHost", "apiPort", "apiBase", "timeout",
		"logLevel", "logFormat", "language", "serveAddr",
	} {
		cfg.Sources[key] = SourceDefault
	}

	return cfg
}
