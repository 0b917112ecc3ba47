package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbukum/picoview/topology"
	"github.com/kbukum/picoview/version"
)

func (c *cli) nodesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "nodes",
		Short: "List the nodes of the cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runWithService(cmd, func(ctx context.Context, svc *topology.Service) error {
				nodes, err := svc.ListNodes(ctx)
				if err != nil {
					return err
				}
				return c.render(nodes, func(w io.Writer) { nodeTable(w, nodes) })
			})
		},
	}
}

func (c *cli) nodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "node NAME",
		Short: "Show one node and its pods",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWithService(cmd, func(ctx context.Context, svc *topology.Service) error {
				node, err := svc.GetNode(ctx, args[0])
				if err != nil {
					return err
				}
				return c.render(node, func(w io.Writer) {
					nodeTable(w, []topology.Node{node})
					if len(node.Pods) > 0 {
						fmt.Fprintln(w)
						podTable(w, node.Pods)
					}
				})
			})
		},
	}
}

func (c *cli) podsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pods",
		Short: "List every pod in the cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runWithService(cmd, func(ctx context.Context, svc *topology.Service) error {
				pods, err := svc.ListPods(ctx)
				if err != nil {
					return err
				}
				return c.render(pods, func(w io.Writer) { podTable(w, pods) })
			})
		},
	}
}

func (c *cli) podCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pod",
		Short: "Inspect and manage a single pod",
	}
	cmd.AddCommand(
		c.podOpCmd("get", "Show a pod", (*topology.Service).GetPod),
		c.podCreateCmd(),
		c.podOpCmd("delete", "Delete a pod", (*topology.Service).DeletePod),
		c.podOpCmd("start", "Start a stopped pod", (*topology.Service).StartPod),
		c.podOpCmd("stop", "Stop a running pod", (*topology.Service).StopPod),
		c.podOpCmd("restart", "Restart a pod", (*topology.Service).RestartPod),
		c.podLogsCmd(),
	)
	return cmd
}

// podOpCmd builds a subcommand that applies op to the named pod and prints
// the pod it returns.
func (c *cli) podOpCmd(use, short string, op func(*topology.Service, context.Context, string) (topology.Pod, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " NAME",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWithService(cmd, func(ctx context.Context, svc *topology.Service) error {
				pod, err := op(svc, ctx, args[0])
				if err != nil {
					return err
				}
				return c.render(pod, func(w io.Writer) { podDetail(w, pod) })
			})
		},
	}
}

func (c *cli) podCreateCmd() *cobra.Command {
	var spec topology.PodSpec
	cmd := &cobra.Command{
		Use:   "create NAME",
		Short: "Create a pod and let the cluster place it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec.Name = args[0]
			return c.runWithService(cmd, func(ctx context.Context, svc *topology.Service) error {
				pod, err := svc.CreatePod(ctx, spec)
				if err != nil {
					return err
				}
				return c.render(pod, func(w io.Writer) { podDetail(w, pod) })
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&spec.Image, "image", "", "container image")
	flags.StringArrayVarP(&spec.Ports, "port", "p", nil, "port mapping public:internal (repeatable)")
	flags.StringArrayVarP(&spec.Env, "env", "e", nil, "environment variable KEY=value (repeatable)")
	_ = cmd.MarkFlagRequired("image")
	return cmd
}

func (c *cli) podLogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logs NAME",
		Short: "Print the log lines of a pod",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWithService(cmd, func(ctx context.Context, svc *topology.Service) error {
				lines, err := svc.PodLogs(ctx, args[0])
				if err != nil {
					return err
				}
				return c.render(lines, func(w io.Writer) { logLines(w, lines) })
			})
		},
	}
}

func (c *cli) topologyCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topology",
		Aliases: []string{"top"},
		Short:   "Show clusters with their nodes and pod counts",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runWithService(cmd, func(ctx context.Context, svc *topology.Service) error {
				clusters, err := svc.Topology(ctx)
				if err != nil {
					return err
				}
				return c.render(clusters, func(w io.Writer) { clusterTable(w, clusters) })
			})
		},
	}
}

func (c *cli) versionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		// No config is needed to print the version.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := version.GetVersionInfo()
			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}
			_, err := fmt.Fprintln(c.out, info.String())
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}
