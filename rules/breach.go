package rules

import "github.com/nstehr/rampart/model"

// BreachRecord is one cell an enemy unit scored on, and when.
type BreachRecord struct {
	At   model.Coord
	Turn int
}

// BreachLog accumulates enemy breaches for the life of one game. It only
// grows. Every breach is one record, including several on the same cell in
// one frame. A unit scores once, so a breach carrying a unit id already
// logged (an action frame replayed in the next turn frame) is not recorded
// again.
type BreachLog struct {
	records []BreachRecord
	units   map[string]bool
}

func NewBreachLog() *BreachLog {
	return &BreachLog{units: make(map[string]bool)}
}

// Record appends the enemy-owned breaches of one frame and returns how many
// were new.
func (l *BreachLog) Record(turn int, breaches []model.Breach) int {
	added := 0
	for _, b := range breaches {
		if b.Owner != model.Enemy {
			continue
		}
		if b.Unit != "" {
			if l.units[b.Unit] {
				continue
			}
			l.units[b.Unit] = true
		}
		l.records = append(l.records, BreachRecord{At: b.At, Turn: turn})
		added++
	}
	return added
}

// Records returns every breach in the order it was recorded.
func (l *BreachLog) Records() []BreachRecord {
	return append([]BreachRecord(nil), l.records...)
}

func (l *BreachLog) Len() int { return len(l.records) }

// Locations returns the breached cells, oldest first.
func (l *BreachLog) Locations() []model.Coord {
	out := make([]model.Coord, len(l.records))
	for i, r := range l.records {
		out[i] = r.At
	}
	return out
}
