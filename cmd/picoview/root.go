package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/picoview/bootstrap"
	apperrors "github.com/kbukum/picoview/errors"
	"github.com/kbukum/picoview/httpclient/rest"
	"github.com/kbukum/picoview/logger"
	"github.com/kbukum/picoview/observability"
	"github.com/kbukum/picoview/topology"
	"github.com/kbukum/picoview/version"
)

// cli holds the state shared by every subcommand of one invocation.
type cli struct {
	out io.Writer
	cfg *Config

	configFile  string
	baseAddress string
	output      string
	debug       bool
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{out: out}

	root := &cobra.Command{
		Use:           "picoview",
		Short:         "Inspect and manage pods on a pico cluster",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.load(cmd)
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default: ./config.yml or ~/.picoview/config.yml)")
	flags.StringVar(&c.baseAddress, "base-address", "", "pico backend address, e.g. http://localhost:5000")
	flags.StringVarP(&c.output, "output", "o", "", "output format: table or json")
	flags.BoolVar(&c.debug, "debug", false, "enable debug logging")

	root.AddCommand(
		c.nodesCmd(),
		c.nodeCmd(),
		c.podsCmd(),
		c.podCmd(),
		c.topologyCmd(),
		c.sandboxCmd(),
		c.versionCmd(),
	)
	return root
}

// load reads the config file and environment, then applies flag overrides.
func (c *cli) load(cmd *cobra.Command) error {
	cfg, err := loadConfig(c.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("base-address") {
		cfg.API.BaseAddress = c.baseAddress
	}
	if flags.Changed("output") {
		cfg.Output = c.output
	}
	if flags.Changed("debug") {
		cfg.Debug = c.debug
	}
	if cfg.Debug {
		cfg.Logging.Level = "debug"
	}
	if cfg.Version == "" {
		cfg.Version = version.Version
	}

	c.cfg = cfg
	return nil
}

// runWithService boots the client side of the app, hands fn a ready
// topology service, and shuts everything down when fn returns.
func (c *cli) runWithService(cmd *cobra.Command, fn func(ctx context.Context, svc *topology.Service) error) error {
	app, err := bootstrap.NewApp(c.cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	shutdown, err := observability.Setup(ctx, c.cfg.Telemetry, app.Name, app.Version, c.cfg.Environment)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	app.OnStop(bootstrap.Hook(shutdown))

	for _, name := range []string{"rest", "topology"} {
		logger.Register(name, app.Logger.WithComponent(name))
	}

	var clientOpts []rest.Option
	var serviceOpts []topology.ServiceOption
	if c.cfg.Telemetry.Enabled {
		metrics, err := observability.NewMetrics(observability.Meter(observability.InstrumentationName))
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		clientOpts = append(clientOpts, rest.WithMetrics(metrics))
		serviceOpts = append(serviceOpts, topology.WithServiceMetrics(metrics))
	}

	client := rest.NewComponent(c.cfg.API, clientOpts...)
	if err := app.RegisterComponent(client); err != nil {
		return err
	}
	svc := topology.NewService(client.Client(), serviceOpts...)

	return app.RunTask(ctx, func(ctx context.Context) error {
		return fn(ctx, svc)
	})
}

// describeError renders err for the terminal. A structured backend error
// body wins; other client failures are mapped onto application errors.
func describeError(err error) string {
	if rest.Category(err) == rest.KindUnknown {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return appErr.Message
		}
		return err.Error()
	}

	appErr := rest.ToAppError(err)
	var resp apperrors.ErrorResponse
	if body := rest.Body(err); len(body) > 0 && json.Unmarshal(body, &resp) == nil && resp.Error.Message != "" {
		return fmt.Sprintf("%s (HTTP %d)", resp.Error.Message, rest.StatusCode(err))
	}
	return appErr.Message
}
