package rules

import (
	"fmt"

	"github.com/nstehr/rampart/model"
)

// Intent asks the submitter to build or spawn Count units of Unit at At.
// Bulk intents spawn as many as the turn's resources allow.
type Intent struct {
	Unit  model.UnitType
	At    model.Coord
	Count int
	Bulk  bool
}

func (i Intent) String() string {
	if i.Bulk {
		return fmt.Sprintf("%s x all @ %v", i.Unit, i.At)
	}
	return fmt.Sprintf("%s x%d @ %v", i.Unit, i.Count, i.At)
}

// Plan collects one turn's intents. Stationary builds are also placed on a
// private clone of the turn's board, so later steps see cells the plan has
// already filled and never build over them.
type Plan struct {
	Intents         []Intent
	BlockCandidates []model.Coord

	board *model.Board
}

func newPlan(b *model.Board) *Plan {
	if b == nil {
		b = model.NewBoard()
	}
	return &Plan{board: b.Clone()}
}

// Board is the turn's board with every planned stationary build placed.
func (p *Plan) Board() *model.Board { return p.board }

// Build plans one stationary unit at the given cell. It reports false without
// adding anything when the cell is outside the arena or already holds a
// stationary unit, real or planned.
func (p *Plan) Build(t model.UnitType, at model.Coord) bool {
	if !t.Stationary() || !model.InBounds(at) || p.board.HasStationary(at) {
		return false
	}
	if err := p.board.Place(model.Unit{Type: t, Owner: model.Self, At: at}); err != nil {
		return false
	}
	p.Intents = append(p.Intents, Intent{Unit: t, At: at, Count: 1})
	return true
}

// Spawn plans n mobile units at the given cell.
func (p *Plan) Spawn(t model.UnitType, at model.Coord, n int) {
	if n <= 0 {
		return
	}
	p.Intents = append(p.Intents, Intent{Unit: t, At: at, Count: n})
}

// SpawnAll plans as many mobile units at the given cell as can be afforded.
func (p *Plan) SpawnAll(t model.UnitType, at model.Coord) {
	p.Intents = append(p.Intents, Intent{Unit: t, At: at, Bulk: true})
}
