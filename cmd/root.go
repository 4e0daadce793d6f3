// Package cmd is the rampart command line.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/nstehr/rampart/config"
	"github.com/nstehr/rampart/rules"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const banner = `
 ┏━┓┏━┓┏┳┓┏━┓┏━┓┏━┓╺┳╸
 ┣┳┛┣━┫┃┃┃┣━┛┣━┫┣┳┛ ┃
 ╹┗╸╹ ╹╹ ╹╹  ╹ ╹╹┗╸ ╹

Path-Predicting Tower Defense`

// NewRootCmd builds the command tree. Each call returns fresh flag state.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:           "rampart",
		Short:         "A per-turn decision engine for a diamond-grid tower defense game",
		Long:          `rampart predicts the routes mobile units walk across the arena and uses them to place blocks, rebuild after breaches and pick the safest spawn.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(cfgFile); err != nil {
				return err
			}
			// stdout carries the game protocol.
			setupLogging(cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgFile, "config", "", "runtime config file (default ./rampart.{json,yaml,toml})")
	root.PersistentFlags().String("log-level", "info", "debug, info, warn or error")
	_ = viper.BindPFlag(config.KeyLogLevel, root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newPlayCmd(), newPredictCmd(), newRenderCmd(), newVersionCmd())
	return root
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		os.Exit(1)
	}
}

func setupLogging(w io.Writer) {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: config.LogLevel(),
	}))
	slog.SetDefault(logger)
}

// loadPlaybook reads the configured playbook, or the default one when no
// path is set.
func loadPlaybook() (rules.Playbook, error) {
	path := config.GetString(config.KeyPlaybook)
	if path == "" {
		pb := rules.DefaultPlaybook()
		return pb, pb.Validate()
	}
	return rules.LoadPlaybook(path)
}

// bindFlags binds config keys to the running command's flags. Binding at run
// time lets several commands share a key without the last one registered
// shadowing the others.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, name := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}
