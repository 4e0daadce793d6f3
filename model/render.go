package model

import "strings"

// RenderLocations draws locs onto a top-down picture of the arena, one line
// per row starting at y = 0. Drawn cells satisfy |x-13.5| + |y-13.5| < 14
// and show 'x' when listed and '.' otherwise; everything else is blank.
// Every line is ArenaSize wide.
func RenderLocations(locs []Coord) string {
	marked := make(map[Coord]bool, len(locs))
	for _, c := range locs {
		marked[c] = true
	}

	var sb strings.Builder
	sb.Grow(ArenaSize * (ArenaSize + 1))
	for y := range ArenaSize {
		for x := range ArenaSize {
			switch {
			case !drawable(x, y):
				sb.WriteByte(' ')
			case marked[Coord{x, y}]:
				sb.WriteByte('x')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func drawable(x, y int) bool {
	return abs(2*x-(ArenaSize-1))+abs(2*y-(ArenaSize-1)) < 2*HalfArena
}
