package cmd

import (
	"fmt"

	"github.com/nstehr/rampart/config"
	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/rules"
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var snapshotFile, gameConfig string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw the block candidates of a saved frame",
		Long:  `Plans a saved turn frame with the configured playbook and draws the cells where enemy routes cross onto our side, followed by the planned intents.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return bindFlags(cmd, map[string]string{config.KeyPlaybook: "playbook"})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := readSnapshot(snapshotFile)
			if err != nil {
				return err
			}
			cat, err := readCatalog(gameConfig)
			if err != nil {
				return err
			}
			pb, err := loadPlaybook()
			if err != nil {
				return err
			}
			engine, err := rules.NewEngine(cat, pb)
			if err != nil {
				return err
			}

			plan := engine.Evaluate(snap)
			out := cmd.OutOrStdout()
			fmt.Fprint(out, model.RenderLocations(plan.BlockCandidates))
			fmt.Fprintf(out, "%d block candidates\n", len(plan.BlockCandidates))
			for _, in := range plan.Intents {
				fmt.Fprintln(out, in)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotFile, "snapshot", "", "saved turn frame (JSON)")
	cmd.Flags().StringVar(&gameConfig, "game-config", "", "saved game config (JSON); stock unit stats when empty")
	cmd.Flags().String("playbook", "", "YAML playbook (default: built-in balanced)")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}
