package cli

import (
	"context"
	"fmt"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ceilplan/pkg/config"
	"github.com/matzehuels/ceilplan/pkg/publish"
	"github.com/matzehuels/ceilplan/pkg/server"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr   string
		withMQ bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the HTTP API until interrupted.

Settings come from --config (ceilplan.yaml) and CEILPLAN_* environment
variables. With --mqtt, POST /api/v1/publish/{id} sends layouts to the
configured broker.`,
		Example: `  ceilplan serve --addr :9090
  CEILPLAN_CACHE_URL=redis://localhost:6379/0 ceilplan serve --mqtt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg, withMQ)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&withMQ, "mqtt", false, "connect to the MQTT broker and enable publishing")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *config.Config, withMQ bool) error {
	// -v wins over the configured level.
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil && c.Logger.GetLevel() != log.DebugLevel {
		c.SetLogLevel(lvl)
	}

	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	deps := server.Deps{
		HTTP:   cfg.HTTP,
		Render: cfg.Render,
		Runner: runner,
		Logger: c.Logger.WithPrefix("api"),
	}

	if withMQ {
		pub, err := c.connectPublisher(ctx, cfg)
		if err != nil {
			return err
		}
		defer pub.Close()
		deps.Publisher = pub
	}

	srv, err := server.New(deps)
	if err != nil {
		return err
	}

	printSuccess("Serving on %s", cfg.HTTP.Addr)
	printKeyValue("Cache", cacheLabel(cfg.Cache.URL))
	if withMQ {
		printKeyValue("Broker", cfg.BrokerURL())
	}
	printNewline()
	return srv.Run(ctx)
}

// connectPublisher dials the broker with a spinner.
func (c *CLI) connectPublisher(ctx context.Context, cfg *config.Config) (*publish.Publisher, error) {
	spinner := newSpinner(ctx, fmt.Sprintf("Connecting to %s...", cfg.BrokerURL()))
	spinner.Start()
	pub, err := publish.Connect(ctx, cfg.MQTT, c.Logger)
	if err != nil {
		spinner.StopWithError("Broker unavailable")
		return nil, err
	}
	spinner.Stop()
	return pub, nil
}

// cacheLabel describes a cache URL without its credentials.
func cacheLabel(raw string) string {
	switch raw {
	case "":
		return "local"
	case "none":
		return "disabled"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "remote"
	}
	return u.Redacted()
}
