package rules

import (
	"fmt"
	"log/slog"

	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/nav"
	"github.com/nstehr/rampart/risk"
)

// ActionOpening places the playbook's fixed opening units.
func ActionOpening(env RuleEnv, plan *Plan) error {
	for _, s := range env.Playbook.Opening {
		t, err := model.ParseUnitType(s.Unit)
		if err != nil {
			return fmt.Errorf("opening: %w", err)
		}
		if t.Stationary() {
			plan.Build(t, s.At.Coord())
			continue
		}
		plan.Spawn(t, s.At.Coord(), s.Count)
	}
	return nil
}

// ActionPredictiveBlocking predicts the route of a unit spawned on every
// enemy edge cell and records the cells on our side of the midline as block
// candidates.
func ActionPredictiveBlocking(env RuleEnv, plan *Plan) error {
	b := plan.Board()
	seen := make(map[model.Coord]bool)
	for _, edge := range []model.Edge{model.TopLeft, model.TopRight} {
		paths, err := nav.FindPaths(b, model.EdgeLocations(edge), edge.Opposite())
		if err != nil {
			return fmt.Errorf("predict from %s: %w", edge, err)
		}
		for _, path := range paths {
			for _, c := range path {
				if c.Y >= env.Playbook.Midline || seen[c] {
					continue
				}
				seen[c] = true
				plan.BlockCandidates = append(plan.BlockCandidates, c)
			}
		}
	}
	slog.Debug("block candidates", "turn", env.Turn, "count", len(plan.BlockCandidates))
	return nil
}

// ActionBlockWalls walls every block candidate not already filled.
func ActionBlockWalls(env RuleEnv, plan *Plan) error {
	placed := 0
	for _, c := range plan.BlockCandidates {
		if plan.Build(model.Wall, c) {
			placed++
		}
	}
	slog.Debug("block walls planned", "count", placed)
	return nil
}

// ActionReactiveDefense builds one defensive unit a cell north of every
// logged breach, so our own edge stays free for spawning.
func ActionReactiveDefense(env RuleEnv, plan *Plan) error {
	def := env.Playbook.defense()
	for _, r := range env.Breaches.Records() {
		at := r.At.North()
		if !plan.Build(def, at) {
			slog.Debug("reactive defense skipped", "at", at, "breachTurn", r.Turn)
		}
	}
	return nil
}

// ActionDemolisherLine builds a line of the cheapest stationary unit along the
// playbook row, from the right edge inward, then spawns demolishers behind it.
func ActionDemolisherLine(env RuleEnv, plan *Plan) error {
	line := env.Playbook.DemolisherLine
	cheapest := env.Catalog.Cheapest(model.Wall, model.Support, model.Turret)
	for x := model.ArenaSize - 1; x > 5; x-- {
		c := model.Coord{X: x, Y: line.Row}
		if model.InBounds(c) {
			plan.Build(cheapest, c)
		}
	}
	plan.SpawnAll(model.Demolisher, line.Spawn.Coord())
	return nil
}

// ActionOffensiveSpawn sends the offense unit from the candidate whose
// predicted path takes the least turret fire.
func ActionOffensiveSpawn(env RuleEnv, plan *Plan) error {
	b := plan.Board()
	var starts []model.Coord
	for _, l := range env.Playbook.SpawnCandidates {
		c := l.Coord()
		if !friendlyEdge(c) || b.HasStationary(c) {
			continue
		}
		starts = append(starts, c)
	}

	cands, err := risk.Score(b, env.Catalog, starts, model.Self)
	if err != nil {
		return fmt.Errorf("score spawn candidates: %w", err)
	}
	best, ok := risk.Safest(cands)
	if !ok {
		slog.Debug("no viable spawn candidate", "turn", env.Turn, "candidates", len(env.Playbook.SpawnCandidates))
		return nil
	}
	slog.Debug("offensive spawn chosen", "at", best.Start, "exposure", best.Score, "pathLen", len(best.Path))
	plan.SpawnAll(env.Playbook.offense(), best.Start)
	return nil
}

// friendlyEdge reports whether c is a cell our mobile units may spawn on.
func friendlyEdge(c model.Coord) bool {
	e, err := model.EdgeOf(c)
	return err == nil && !e.Top()
}
