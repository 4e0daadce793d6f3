package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/nstehr/rampart/agent"
	"github.com/nstehr/rampart/config"
	"github.com/nstehr/rampart/ipc"
	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play one game over stdin and stdout",
		Long:  `Reads the game config and frames from stdin, one JSON document per line, and answers every turn frame with a build line and a deploy line on stdout.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, map[string]string{
				config.KeyPlaybook:     "playbook",
				config.KeyRenderBlocks: "render-blocks",
				config.KeyMaxBulk:      "max-bulk",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.ErrOrStderr(), banner)

			pb, err := loadPlaybook()
			if err != nil {
				return err
			}
			slog.Info("starting rampart", "playbook", pb.Name)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a := agent.New(pb, agent.Options{
				MaxBulk:      config.GetInt(config.KeyMaxBulk),
				RenderBlocks: config.GetBool(config.KeyRenderBlocks),
				Diag:         cmd.ErrOrStderr(),
			})
			conn := ipc.NewConnection(cmd.InOrStdin(), cmd.OutOrStdout(), nil)
			a.Register(conn)

			if err := conn.ReadLoop(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			slog.Info("shutting down")
			return nil
		},
	}

	cmd.Flags().String("playbook", "", "YAML playbook (default: built-in balanced)")
	cmd.Flags().Bool("render-blocks", false, "draw each turn's block candidates on stderr")
	cmd.Flags().Int("max-bulk", ipc.DefaultMaxBulk, "cap on one bulk spawn")
	return cmd
}
