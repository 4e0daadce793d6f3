package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/nstehr/rampart/ingest"
	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/nav"
	"github.com/nstehr/rampart/risk"
	"github.com/spf13/cobra"
)

func newPredictCmd() *cobra.Command {
	var (
		snapshotFile string
		gameConfig   string
		x, y         int
		edge         string
		remove       []string
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the path of a unit spawned on a saved frame",
		Long:  `Loads a saved turn frame, predicts the route a unit spawned at --x/--y walks, and prints it with the turret damage it would take. Each --remove x,y clears a cell first, to try the board without a unit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := readSnapshot(snapshotFile)
			if err != nil {
				return err
			}
			cat, err := readCatalog(gameConfig)
			if err != nil {
				return err
			}
			for _, r := range remove {
				c, err := parseCell(r)
				if err != nil {
					return err
				}
				if err := snap.Board.Remove(c); err != nil {
					return fmt.Errorf("--remove %s: %w", r, err)
				}
			}

			start := model.Coord{X: x, Y: y}
			var path model.Path
			var target string
			if edge != "" {
				e, err := model.ParseEdge(edge)
				if err != nil {
					return err
				}
				target = e.String()
				path, err = nav.FindPath(snap.Board, start, e)
				if err != nil {
					return err
				}
			} else {
				from, err := model.EdgeOf(start)
				if err != nil {
					return fmt.Errorf("pass --edge for a start off the edges: %w", err)
				}
				target = from.Opposite().String()
				path, err = nav.FindPathToOpposite(snap.Board, start)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if path == nil {
				fmt.Fprintf(out, "no path from %v toward %s\n", start, target)
				return nil
			}
			exposure, err := risk.Exposure(snap.Board, cat, path, model.Self)
			if err != nil {
				return err
			}
			cells := make([]string, len(path))
			for i, c := range path {
				cells[i] = c.String()
			}
			fmt.Fprintf(out, "start %v -> %s\n", start, target)
			fmt.Fprintf(out, "path (%d cells): %s\n", len(path), strings.Join(cells, " "))
			fmt.Fprintf(out, "exposure: %d\n", exposure)
			fmt.Fprint(out, model.RenderLocations(path))
			return nil
		},
	}

	cmd.Flags().StringVar(&snapshotFile, "snapshot", "", "saved turn frame (JSON)")
	cmd.Flags().StringVar(&gameConfig, "game-config", "", "saved game config (JSON); stock unit stats when empty")
	cmd.Flags().IntVar(&x, "x", 0, "start x")
	cmd.Flags().IntVar(&y, "y", 0, "start y")
	cmd.Flags().StringVar(&edge, "edge", "", "target edge (default: opposite the start)")
	cmd.Flags().StringArrayVar(&remove, "remove", nil, "clear the units at x,y before predicting (repeatable)")
	_ = cmd.MarkFlagRequired("snapshot")
	return cmd
}

func parseCell(s string) (model.Coord, error) {
	var c model.Coord
	if _, err := fmt.Sscanf(s, "%d,%d", &c.X, &c.Y); err != nil {
		return c, fmt.Errorf("cell %q: want x,y: %w", s, err)
	}
	return c, nil
}

func readSnapshot(path string) (*ingest.Snapshot, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	return ingest.Parse(raw)
}

func readCatalog(path string) (*model.Catalog, error) {
	if path == "" {
		return model.DefaultCatalog(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game config: %w", err)
	}
	return ingest.ParseConfig(raw)
}
