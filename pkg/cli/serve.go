package cli

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/getmockd/userdesk/pkg/cli/internal/output"
	"github.com/getmockd/userdesk/pkg/logging"
	"github.com/getmockd/userdesk/pkg/record"
	"github.com/getmockd/userdesk/pkg/usersvc"
)

var (
	serveAddr     string
	serveBare     bool
	serveBasePath string
	serveSeed     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a local users service",
	Long: `Run an in-memory users service speaking the same HTTP contract as the
production API. Useful for development and for trying userdesk out.

With --bare, create, update and get answer with the bare record instead of
the {data: ...} envelope.`,
	Example: `  userdesk serve
  userdesk serve --addr 127.0.0.1:9000 --seed users.yaml
  userdesk serve --bare`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// seedUser is one entry of a --seed file.
type seedUser struct {
	FullName string `yaml:"fullName"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
}

func loadSeed(path string) ([]record.UserInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	var users []seedUser
	if err := yaml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	out := make([]record.UserInput, 0, len(users))
	for i, u := range users {
		in := record.UserInput{FullName: u.FullName, Email: u.Email, Phone: u.Phone}
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("seed file %s: entry %d: %w", path, i, err)
		}
		out = append(out, in)
	}
	return out, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	addr := cfg.ServeAddr
	if cmd.Flags().Changed("addr") {
		addr = serveAddr
	}
	basePath := cfg.APIBase
	if cmd.Flags().Changed("base-path") {
		basePath = serveBasePath
	}

	var seed []record.UserInput
	if serveSeed != "" {
		if seed, err = loadSeed(serveSeed); err != nil {
			return err
		}
	}

	srv := usersvc.New(usersvc.NewRepository(seed...),
		usersvc.WithBasePath(basePath),
		usersvc.WithBare(serveBare),
		usersvc.WithLogger(logging.Component(log, "usersvc")),
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return usersvc.ListenAndServe(ctx, addr, srv, func(a net.Addr) {
		fmt.Fprintf(output.Stderr, "Users service listening on http://%s%s\n", a, srv.BasePath())
		log.Info("users service started", "addr", a.String(), "basePath", srv.BasePath(), "bare", serveBare, "seeded", len(seed))
	})
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().BoolVar(&serveBare, "bare", false, "Answer create, update and get without the envelope")
	serveCmd.Flags().StringVar(&serveBasePath, "base-path", "", "Collection path (default from config, /api/users)")
	serveCmd.Flags().StringVar(&serveSeed, "seed", "", "YAML file with users to preload")
}

