package rules

import (
	"testing"

	"github.com/nstehr/rampart/ingest"
	"github.com/nstehr/rampart/model"
	"github.com/stretchr/testify/require"
)

// turretCatalog gives turrets 5 damage and a 3.5 range.
func turretCatalog(t *testing.T) *model.Catalog {
	t.Helper()
	cfg := model.GameConfig{UnitInformation: make([]model.UnitInformation, model.NumUnitTypes)}
	cfg.UnitInformation[model.Turret] = model.UnitInformation{Shorthand: "DF", Cost: 3, Damage: 5, Range: 3.5}
	cat, err := model.NewCatalog(cfg)
	require.NoError(t, err)
	return cat
}

func snapshot(turn int, breaches ...model.Breach) *ingest.Snapshot {
	return &ingest.Snapshot{
		Kind:     model.FrameTurn,
		Turn:     turn,
		Board:    model.NewBoard(),
		Self:     model.Stats{Health: 30, Cores: 40, Bits: 10},
		Enemy:    model.Stats{Health: 30, Cores: 40, Bits: 10},
		Breaches: breaches,
	}
}

func place(t *testing.T, b *model.Board, ut model.UnitType, owner model.Player, at model.Coord) {
	t.Helper()
	require.NoError(t, b.Place(model.Unit{Type: ut, Owner: owner, At: at}))
}

func intentsOf(plan *Plan, ut model.UnitType) []Intent {
	var out []Intent
	for _, i := range plan.Intents {
		if i.Unit == ut {
			out = append(out, i)
		}
	}
	return out
}

func newEngine(t *testing.T, pb Playbook) *Engine {
	t.Helper()
	e, err := NewEngine(turretCatalog(t), pb)
	require.NoError(t, err)
	return e
}
