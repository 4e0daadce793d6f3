package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	ArenaSize = 28
	HalfArena = ArenaSize / 2
)

var (
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	ErrNotOnEdge   = errors.New("coordinate is not on an edge")
)

// Coord is a cell address. X grows to the right, Y grows toward the enemy.
type Coord struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

func (c Coord) String() string { return fmt.Sprintf("[%d,%d]", c.X, c.Y) }

// North is the neighbouring cell one row toward the enemy.
func (c Coord) North() Coord { return Coord{c.X, c.Y + 1} }

// InBounds reports whether c lies inside the diamond arena:
// |x-13.5| + |y-13.5| <= 14. Doubled to stay in integers.
func InBounds(c Coord) bool {
	if c.X < 0 || c.X >= ArenaSize || c.Y < 0 || c.Y >= ArenaSize {
		return false
	}
	return abs(2*c.X-(ArenaSize-1))+abs(2*c.Y-(ArenaSize-1)) <= 2*HalfArena
}

func checkBounds(c Coord) error {
	if !InBounds(c) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	return nil
}

// Manhattan returns the grid step distance between a and b.
func Manhattan(a, b Coord) int { return abs(a.X-b.X) + abs(a.Y-b.Y) }

// Distance returns the straight-line distance used for attack ranges.
func Distance(a, b Coord) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Edge names one of the four boundary segments of the diamond.
type Edge int

const (
	TopRight Edge = iota
	TopLeft
	BottomLeft
	BottomRight

	numEdges = 4
)

var edgeNames = [numEdges]string{"top-right", "top-left", "bottom-left", "bottom-right"}

func (e Edge) String() string {
	if e < 0 || e >= numEdges {
		return fmt.Sprintf("edge(%d)", int(e))
	}
	return edgeNames[e]
}

// ParseEdge accepts "top-left", "top_left" or "topleft", case-insensitively.
func ParseEdge(s string) (Edge, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(s))
	for i, name := range edgeNames {
		if norm == strings.ReplaceAll(name, "-", "") {
			return Edge(i), nil
		}
	}
	return 0, fmt.Errorf("unknown edge %q", s)
}

// Opposite is the edge a unit spawned on e walks toward.
func (e Edge) Opposite() Edge {
	switch e {
	case TopRight:
		return BottomLeft
	case TopLeft:
		return BottomRight
	case BottomLeft:
		return TopRight
	default:
		return TopLeft
	}
}

// Top reports whether the edge lies on the enemy half.
func (e Edge) Top() bool { return e == TopRight || e == TopLeft }

// Right reports whether the edge lies on the right half.
func (e Edge) Right() bool { return e == TopRight || e == BottomRight }

// edgeCells[e][n] walks each edge outward from the vertical centre line.
var edgeCells = func() (out [numEdges][HalfArena]Coord) {
	for n := range HalfArena {
		out[TopRight][n] = Coord{HalfArena + n, ArenaSize - 1 - n}
		out[TopLeft][n] = Coord{HalfArena - 1 - n, ArenaSize - 1 - n}
		out[BottomLeft][n] = Coord{HalfArena - 1 - n, n}
		out[BottomRight][n] = Coord{HalfArena + n, n}
	}
	return out
}()

// EdgeLocations returns the cells of edge e in a fixed order.
func EdgeLocations(e Edge) []Coord {
	if e < 0 || e >= numEdges {
		return nil
	}
	out := make([]Coord, HalfArena)
	copy(out, edgeCells[e][:])
	return out
}

// EdgeOf returns the edge c lies on.
func EdgeOf(c Coord) (Edge, error) {
	for e := range Edge(numEdges) {
		for _, ec := range edgeCells[e] {
			if ec == c {
				return e, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %v", ErrNotOnEdge, c)
}

// OnEdge reports whether c is one of the cells of edge e.
func OnEdge(c Coord, e Edge) bool {
	got, err := EdgeOf(c)
	return err == nil && got == e
}

// Board is the occupancy of every arena cell for one turn. The zero value is
// an empty board. A Board is rebuilt each turn; use Clone before placing
// hypothetical units.
type Board struct {
	cells [ArenaSize][ArenaSize][]Unit // [x][y]
}

func NewBoard() *Board { return &Board{} }

// Clone returns a deep copy that can be mutated without touching b.
func (b *Board) Clone() *Board {
	nb := &Board{}
	for x := range ArenaSize {
		for y := range ArenaSize {
			if us := b.cells[x][y]; len(us) > 0 {
				nb.cells[x][y] = append([]Unit(nil), us...)
			}
		}
	}
	return nb
}

// Units returns the units at c in placement order.
func (b *Board) Units(c Coord) ([]Unit, error) {
	if err := checkBounds(c); err != nil {
		return nil, err
	}
	return append([]Unit(nil), b.cells[c.X][c.Y]...), nil
}

// HasStationary reports whether a stationary unit occupies c. Out-of-bounds
// cells report false; use InBounds to tell the two apart.
func (b *Board) HasStationary(c Coord) bool {
	if !InBounds(c) {
		return false
	}
	for _, u := range b.cells[c.X][c.Y] {
		if u.Stationary() {
			return true
		}
	}
	return false
}

// Open reports whether a mobile unit could stand on c.
func (b *Board) Open(c Coord) bool { return InBounds(c) && !b.HasStationary(c) }

// Place adds u at u.At. A cell holds at most one stationary unit.
func (b *Board) Place(u Unit) error {
	if err := checkBounds(u.At); err != nil {
		return err
	}
	if u.Stationary() && b.HasStationary(u.At) {
		return fmt.Errorf("place %s at %v: cell already holds a stationary unit", u.Type, u.At)
	}
	b.cells[u.At.X][u.At.Y] = append(b.cells[u.At.X][u.At.Y], u)
	return nil
}

// Remove clears every unit at c.
func (b *Board) Remove(c Coord) error {
	if err := checkBounds(c); err != nil {
		return err
	}
	b.cells[c.X][c.Y] = nil
	return nil
}

// Each calls fn for every unit in column-major order (x, then y, then
// placement), which keeps callers deterministic.
func (b *Board) Each(fn func(Unit)) {
	for x := range ArenaSize {
		for y := range ArenaSize {
			for _, u := range b.cells[x][y] {
				fn(u)
			}
		}
	}
}

// StationaryUnits returns every stationary unit owned by p.
func (b *Board) StationaryUnits(p Player) []Unit {
	var out []Unit
	b.Each(func(u Unit) {
		if u.Owner == p && u.Stationary() {
			out = append(out, u)
		}
	})
	return out
}

// Path is the ordered list of cells a mobile unit is predicted to occupy,
// starting with its spawn cell.
type Path []Coord

// Contains reports whether c is on the path.
func (p Path) Contains(c Coord) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}
