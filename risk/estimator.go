// Package risk scores how much damage a mobile unit is expected to take
// walking a predicted path.
package risk

import (
	"fmt"
	"math"

	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/nav"
)

// Attackers lists the stationary units not owned by mover that can hit c.
func Attackers(b *model.Board, cat *model.Catalog, c model.Coord, mover model.Player) ([]model.Unit, error) {
	if !model.InBounds(c) {
		return nil, fmt.Errorf("attackers of %v: %w", c, model.ErrOutOfBounds)
	}
	var out []model.Unit
	reach := maxRange(cat)
	for x := c.X - reach; x <= c.X+reach; x++ {
		for y := c.Y - reach; y <= c.Y+reach; y++ {
			at := model.Coord{X: x, Y: y}
			if !model.InBounds(at) {
				continue
			}
			units, _ := b.Units(at)
			for _, u := range units {
				if canHit(cat, u, c, mover) {
					out = append(out, u)
				}
			}
		}
	}
	return out, nil
}

func canHit(cat *model.Catalog, u model.Unit, c model.Coord, mover model.Player) bool {
	if !u.Stationary() || u.Owner == mover {
		return false
	}
	spec := cat.Spec(u.Type)
	return spec.CanAttack() && model.Distance(u.At, c) <= spec.Range
}

// maxRange is the widest stationary attack range, rounded up to whole cells.
func maxRange(cat *model.Catalog) int {
	r := 0.0
	for t := range model.UnitType(model.NumUnitTypes) {
		if spec := cat.Spec(t); t.Stationary() && spec.Range > r {
			r = spec.Range
		}
	}
	return int(math.Ceil(r))
}

// Exposure sums, over every cell of p, the damage of each enemy stationary
// attacker covering that cell. An empty path scores 0, which does not mean
// it is safe; callers filter those out before ranking.
func Exposure(b *model.Board, cat *model.Catalog, p model.Path, mover model.Player) (int, error) {
	total := 0
	for _, c := range p {
		attackers, err := Attackers(b, cat, c, mover)
		if err != nil {
			return 0, err
		}
		for _, u := range attackers {
			total += cat.Spec(u.Type).Damage
		}
	}
	return total, nil
}

// Candidate is a scored spawn option.
type Candidate struct {
	Start model.Coord
	Path  model.Path
	Score int
}

// Score predicts the path from each start toward the edge opposite it and
// scores it. Starts that cannot move are dropped; the remaining order
// follows starts.
func Score(b *model.Board, cat *model.Catalog, starts []model.Coord, mover model.Player) ([]Candidate, error) {
	var out []Candidate
	for _, s := range starts {
		p, err := nav.FindPathToOpposite(b, s)
		if err != nil {
			return nil, err
		}
		if len(p) == 0 {
			continue
		}
		score, err := Exposure(b, cat, p, mover)
		if err != nil {
			return nil, err
		}
		out = append(out, Candidate{Start: s, Path: p, Score: score})
	}
	return out, nil
}

// Safest returns the lowest-scoring candidate, the earliest one on ties.
// Candidates without a path are never chosen.
func Safest(cands []Candidate) (Candidate, bool) {
	var best Candidate
	found := false
	for _, c := range cands {
		if len(c.Path) == 0 {
			continue
		}
		if !found || c.Score < best.Score {
			best, found = c, true
		}
	}
	return best, found
}
