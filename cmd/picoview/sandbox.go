package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/picoview/bootstrap"
	"github.com/kbukum/picoview/sandbox"
)

func (c *cli) sandboxCmd() *cobra.Command {
	var (
		port  int
		nodes int
		seed  bool
	)
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Serve an in-memory pico backend for local use",
		Long: `Serve an in-memory pico backend that speaks the same API as a pico
cluster agent. Point picoview at it with --base-address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("port") {
				c.cfg.Sandbox.Server.Port = port
			}
			if flags.Changed("nodes") {
				c.cfg.Sandbox.Nodes = nodes
			}
			if flags.Changed("seed") {
				c.cfg.Sandbox.SeedPods = seed
			}
			return c.runSandbox(cmd.Context())
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&port, "port", 5000, "listen port")
	flags.IntVar(&nodes, "nodes", 3, "number of seeded nodes")
	flags.BoolVar(&seed, "seed", true, "seed the demo pods")
	return cmd
}

func (c *cli) runSandbox(ctx context.Context) error {
	app, err := bootstrap.NewApp(c.cfg)
	if err != nil {
		return err
	}

	sb, err := sandbox.New(c.cfg.Sandbox, app.Logger, app.Components)
	if err != nil {
		return err
	}
	if err := app.RegisterComponent(sb.Component()); err != nil {
		return err
	}
	app.OnReady(func(context.Context) error {
		_, err := fmt.Fprintf(c.out, "sandbox cluster %s listening on %s\n", c.cfg.Sandbox.Cluster, sb.Server().URL())
		return err
	})
	return app.Run(ctx)
}
