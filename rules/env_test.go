package rules

import (
	"testing"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/rampart/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T) RuleEnv {
	t.Helper()
	snap := snapshot(4, model.Breach{At: model.Coord{X: 5, Y: 8}, Owner: model.Enemy})
	place(t, snap.Board, model.Turret, model.Enemy, model.Coord{X: 10, Y: 16})
	place(t, snap.Board, model.Turret, model.Enemy, model.Coord{X: 20, Y: 16})
	place(t, snap.Board, model.Wall, model.Enemy, model.Coord{X: 13, Y: 20})
	place(t, snap.Board, model.Turret, model.Self, model.Coord{X: 13, Y: 5})
	log := NewBreachLog()
	log.Record(snap.Turn, snap.Breaches)
	return RuleEnv{Turn: snap.Turn, Snap: snap, Board: snap.Board, Catalog: turretCatalog(t), Breaches: log, Playbook: DefaultPlaybook()}
}

func TestEnvEnemyCounts(t *testing.T) {
	env := testEnv(t)
	assert.Equal(t, 2, env.EnemyStationaryCount("turret"))
	assert.Equal(t, 3, env.EnemyStationaryCount(""))
	assert.Equal(t, 1, env.EnemyStationaryCount("FF"))
	assert.Zero(t, env.EnemyStationaryCount("tank"))
	assert.Equal(t, 1, env.EnemyCountIn("turret", 0, 13, 14, 27))
	assert.Equal(t, 2, env.EnemyCountIn("", 11, 27, 0, 27))
}

func TestEnvFilterBlocked(t *testing.T) {
	env := testEnv(t)
	locs := []model.Coord{{X: 13, Y: 5}, {X: 12, Y: 5}, {X: 13, Y: 20}}
	assert.Equal(t, []model.Coord{{X: 12, Y: 5}}, env.FilterBlocked(locs))
	assert.True(t, env.HasStationary(13, 5))
	assert.False(t, env.HasStationary(12, 5))
}

func TestEnvConditions(t *testing.T) {
	env := testEnv(t)
	tests := []struct {
		src  string
		want bool
	}{
		{`Turn == 4`, true},
		{`Cores() >= Cost("turret") * 13`, true},
		{`Bits() > 10`, false},
		{`BreachCount() == 1 && NewBreaches() == 1`, true},
		{`EnemyStationaryCount("turret") > 1 && EnemyCountIn("", 0, 13, 14, 27) == 2`, true},
		{`EnemyHealth() < Health()`, false},
	}
	for _, tc := range tests {
		t.Run(tc.src, func(t *testing.T) {
			prog, err := expr.Compile(tc.src, expr.Env(RuleEnv{}), expr.AsBool())
			require.NoError(t, err)
			got, err := vm.Run(prog, env)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
