package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/getmockd/userdesk/pkg/cli/internal/output"
	"github.com/getmockd/userdesk/pkg/cliconfig"
	"github.com/getmockd/userdesk/pkg/collection"
	"github.com/getmockd/userdesk/pkg/logging"
	"github.com/getmockd/userdesk/pkg/remote"
)

// app is the wiring shared by the data commands.
type app struct {
	cfg      *cliconfig.CLIConfig
	log      *slog.Logger
	client   *remote.Client
	store    *collection.Store
	observer *errorRecorder
}

// errorRecorder logs store events and keeps the cause of the last failure,
// which Refresh reports only through the status message.
type errorRecorder struct {
	collection.LogObserver
	last error
}

func (r *errorRecorder) OnError(operation string, err error) {
	r.LogObserver.OnError(operation, err)
	r.last = err
}

// loadConfig resolves the effective configuration: files and environment
// first, then any persistent flag the operator set explicitly.
func loadConfig(cmd *cobra.Command) (*cliconfig.CLIConfig, error) {
	cfg, err := cliconfig.LoadAll(cliconfig.LoadOptions{ConfigFile: configFile})
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.SetFlag("apiUrl", func(c *cliconfig.CLIConfig) { c.APIURL = apiURL })
	}
	if flags.Changed("log-level") {
		cfg.SetFlag("logLevel", func(c *cliconfig.CLIConfig) { c.LogLevel = logLevel })
	}
	if flags.Changed("log-format") {
		cfg.SetFlag("logFormat", func(c *cliconfig.CLIConfig) { c.LogFormat = logFormat })
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *cliconfig.CLIConfig) *slog.Logger {
	return logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: output.Stderr,
	})
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log := newLogger(cfg)
	log.Debug("configuration loaded", "baseUrl", cfg.BaseURL(), "timeout", cfg.Timeout)

	opts := []remote.Option{
		remote.WithTimeout(cfg.Timeout),
		remote.WithLogger(logging.Component(log, "remote")),
	}
	if cfg.APIToken != "" {
		opts = append(opts, remote.WithToken(cfg.APIToken))
	}
	client := remote.New(cfg.BaseURL(), opts...)

	storeLog := logging.Component(log, "collection")
	observer := &errorRecorder{LogObserver: collection.LogObserver{Log: storeLog}}
	store := collection.New(client,
		collection.WithLogger(storeLog),
		collection.WithObserver(observer),
		collection.WithLanguage(collection.ParseLanguage(cfg.Language)),
	)

	return &app{cfg: cfg, log: log, client: client, store: store, observer: observer}, nil
}

// statusError turns the store's pending error message into a command error.
// A nil cause falls back to the last failure the store reported.
func (a *app) statusError(cause error) error {
	if cause == nil {
		cause = a.observer.last
	}
	st := a.store.Status()
	if !st.HasError() {
		return cause
	}
	return &StatusError{Message: st.LastError, Err: cause}
}
