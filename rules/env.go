package rules

import (
	"github.com/nstehr/rampart/ingest"
	"github.com/nstehr/rampart/model"
)

// RuleEnv wraps one turn's state and exposes helper methods callable from expr expressions.
type RuleEnv struct {
	Turn     int
	Snap     *ingest.Snapshot
	Board    *model.Board
	Catalog  *model.Catalog
	Breaches *BreachLog
	Playbook Playbook
}

func (e RuleEnv) Cores() float64       { return e.Snap.Self.Cores }
func (e RuleEnv) Bits() float64        { return e.Snap.Self.Bits }
func (e RuleEnv) Health() float64      { return e.Snap.Self.Health }
func (e RuleEnv) EnemyHealth() float64 { return e.Snap.Enemy.Health }
func (e RuleEnv) EnemyBits() float64   { return e.Snap.Enemy.Bits }

// BreachCount is the number of enemy breaches logged this game.
func (e RuleEnv) BreachCount() int { return e.Breaches.Len() }

// NewBreaches is the number of enemy breaches reported in this frame.
func (e RuleEnv) NewBreaches() int { return len(e.Snap.EnemyBreaches()) }

// Cost is the configured cost of the named unit type, 0 if the name is unknown.
func (e RuleEnv) Cost(name string) float64 {
	t, err := model.ParseUnitType(name)
	if err != nil {
		return 0
	}
	return e.Catalog.Spec(t).Cost
}

// EnemyStationaryCount counts enemy stationary units of the named type, or of
// every type when name is empty.
func (e RuleEnv) EnemyStationaryCount(name string) int {
	return e.EnemyCountIn(name, 0, model.ArenaSize-1, 0, model.ArenaSize-1)
}

// EnemyCountIn counts enemy stationary units of the named type (any type when
// empty) inside the inclusive box [minX, maxX] x [minY, maxY].
func (e RuleEnv) EnemyCountIn(name string, minX, maxX, minY, maxY int) int {
	want, all := model.UnitType(-1), name == ""
	if !all {
		t, err := model.ParseUnitType(name)
		if err != nil {
			return 0
		}
		want = t
	}
	n := 0
	for _, u := range e.Board.StationaryUnits(model.Enemy) {
		if !all && u.Type != want {
			continue
		}
		if u.At.X < minX || u.At.X > maxX || u.At.Y < minY || u.At.Y > maxY {
			continue
		}
		n++
	}
	return n
}

func (e RuleEnv) HasStationary(x, y int) bool {
	return e.Board.HasStationary(model.Coord{X: x, Y: y})
}

// FilterBlocked drops the locations that already hold a stationary unit.
func (e RuleEnv) FilterBlocked(locs []model.Coord) []model.Coord {
	var out []model.Coord
	for _, c := range locs {
		if !e.Board.HasStationary(c) {
			out = append(out, c)
		}
	}
	return out
}
