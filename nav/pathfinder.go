// Package nav predicts the route a mobile unit walks across the arena.
//
// The search is deterministic: it never iterates a map, and neighbours are
// always tried in a fixed order derived from the target edge. A unit first
// floods the region it can reach. If any cell of the target edge is in that
// region those cells are the goal; otherwise the goal is the deepest reachable
// cell toward the target (its idealness). Distances to the goal are then
// computed by a second BFS and the unit repeatedly steps to the neighbour with
// the lowest distance. Ties go to the neighbour closer (Manhattan) to the
// target edge, then to the first in this order:
//
//  1. vertically toward the target edge
//  2. horizontally toward the target edge
//  3. horizontally away from it
//  4. vertically away from it
package nav

import (
	"fmt"

	"github.com/nstehr/rampart/model"
)

const unreached = -1

type grid [model.ArenaSize][model.ArenaSize]int

func newGrid() *grid {
	var g grid
	for x := range g {
		for y := range g[x] {
			g[x][y] = unreached
		}
	}
	return &g
}

func (g *grid) at(c model.Coord) int     { return g[c.X][c.Y] }
func (g *grid) set(c model.Coord, v int) { g[c.X][c.Y] = v }

type step struct{ dx, dy int }

// Fixed order for the flood fills; the walk uses stepOrder instead.
var floodDirs = []step{{0, 1}, {0, -1}, {-1, 0}, {1, 0}}

// stepOrder returns the four moves in tie-break order for target.
func stepOrder(target model.Edge) [4]step {
	vy := -1
	if target.Top() {
		vy = 1
	}
	hx := -1
	if target.Right() {
		hx = 1
	}
	return [4]step{{0, vy}, {hx, 0}, {-hx, 0}, {0, -vy}}
}

func (s step) from(c model.Coord) model.Coord { return model.Coord{X: c.X + s.dx, Y: c.Y + s.dy} }

// FindPath predicts the cells a mobile unit spawned at start occupies on its way
// to target, start included. A nil path with a nil error means the unit cannot
// move: start holds a stationary unit, or it has no first move and is not
// already on the target edge. Only an out-of-bounds start is an error.
func FindPath(b *model.Board, start model.Coord, target model.Edge) (model.Path, error) {
	if !model.InBounds(start) {
		return nil, fmt.Errorf("find path from %v: %w", start, model.ErrOutOfBounds)
	}
	if b.HasStationary(start) {
		return nil, nil
	}

	region := flood(b, []model.Coord{start}, nil)
	targetCells := model.EdgeLocations(target)
	goals := goalCells(region, target, targetCells)
	dist := flood(b, goals, region.seen).dist

	isGoal := newGrid()
	for _, g := range goals {
		isGoal.set(g, 1)
	}

	order := stepOrder(target)
	onPath := newGrid()
	onPath.set(start, 1)
	path := model.Path{start}
	cur := start
	for range len(region.order) {
		if isGoal.at(cur) != unreached {
			break
		}
		next, ok := bestStep(b, dist, cur, order, targetCells)
		if !ok || onPath.at(next) != unreached {
			break
		}
		onPath.set(next, 1)
		path = append(path, next)
		cur = next
	}

	if len(path) == 1 && !model.OnEdge(start, target) {
		return nil, nil
	}
	return path, nil
}

// FindPaths runs FindPath for each start. The result has one entry per start,
// nil where the unit cannot move.
func FindPaths(b *model.Board, starts []model.Coord, target model.Edge) ([]model.Path, error) {
	paths := make([]model.Path, len(starts))
	for i, s := range starts {
		p, err := FindPath(b, s, target)
		if err != nil {
			return nil, err
		}
		paths[i] = p
	}
	return paths, nil
}

// FindPathToOpposite targets the edge opposite the one start lies on, which is
// where the game sends a freshly spawned unit.
func FindPathToOpposite(b *model.Board, start model.Coord) (model.Path, error) {
	if !model.InBounds(start) {
		return nil, fmt.Errorf("find path from %v: %w", start, model.ErrOutOfBounds)
	}
	e, err := model.EdgeOf(start)
	if err != nil {
		return nil, fmt.Errorf("find path from %v: %w", start, err)
	}
	return FindPath(b, start, e.Opposite())
}

type floodResult struct {
	order []model.Coord // BFS visit order
	seen  *grid         // 1 where visited
	dist  *grid         // steps from the nearest source
}

// flood runs a multi-source BFS over open cells. When within is non-nil the
// search is confined to cells marked there.
func flood(b *model.Board, sources []model.Coord, within *grid) floodResult {
	res := floodResult{seen: newGrid(), dist: newGrid()}
	queue := make([]model.Coord, 0, 256)
	for _, s := range sources {
		if res.seen.at(s) != unreached {
			continue
		}
		res.seen.set(s, 1)
		res.dist.set(s, 0)
		queue = append(queue, s)
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		res.order = append(res.order, cur)
		for _, d := range floodDirs {
			n := d.from(cur)
			if !b.Open(n) || res.seen.at(n) != unreached {
				continue
			}
			if within != nil && within.at(n) == unreached {
				continue
			}
			res.seen.set(n, 1)
			res.dist.set(n, res.dist.at(cur)+1)
			queue = append(queue, n)
		}
	}
	return res
}

// goalCells picks the reachable target-edge cells, or failing that the
// reachable cells of best idealness.
func goalCells(region floodResult, target model.Edge, targetCells []model.Coord) []model.Coord {
	var goals []model.Coord
	for _, c := range targetCells {
		if region.seen.at(c) != unreached {
			goals = append(goals, c)
		}
	}
	if len(goals) > 0 {
		return goals
	}

	best := -1
	for _, c := range region.order {
		switch v := idealness(c, target); {
		case v > best:
			best = v
			goals = append(goals[:0], c)
		case v == best:
			goals = append(goals, c)
		}
	}
	return goals
}

// idealness ranks how deep a cell is toward target: rows first, then columns.
func idealness(c model.Coord, target model.Edge) int {
	v := 0
	if target.Top() {
		v += model.ArenaSize * c.Y
	} else {
		v += model.ArenaSize * (model.ArenaSize - 1 - c.Y)
	}
	if target.Right() {
		v += c.X
	} else {
		v += model.ArenaSize - 1 - c.X
	}
	return v
}

func bestStep(b *model.Board, dist *grid, cur model.Coord, order [4]step, targetCells []model.Coord) (model.Coord, bool) {
	var best model.Coord
	bestDist, bestEdge, found := 0, 0, false
	curDist := dist.at(cur)
	for _, s := range order {
		n := s.from(cur)
		if !b.Open(n) {
			continue
		}
		d := dist.at(n)
		if d == unreached || d >= curDist {
			continue
		}
		m := nearestManhattan(n, targetCells)
		if !found || d < bestDist || (d == bestDist && m < bestEdge) {
			best, bestDist, bestEdge, found = n, d, m, true
		}
	}
	return best, found
}

func nearestManhattan(c model.Coord, cells []model.Coord) int {
	best := -1
	for _, t := range cells {
		if d := model.Manhattan(c, t); best < 0 || d < best {
			best = d
		}
	}
	return best
}
