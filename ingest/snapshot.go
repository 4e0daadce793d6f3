// Package ingest turns the game's JSON frames into a Board and the facts the
// strategy needs about the turn.
package ingest

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/nstehr/rampart/model"
)

// Player indices on the wire.
const (
	wireSelf  = 1
	wireEnemy = 2
)

// Keys every frame must carry.
var requiredKeys = []string{"turnInfo", "p1Stats", "p2Stats", "p1Units", "p2Units", "events"}

// Snapshot is one parsed frame.
type Snapshot struct {
	Kind       model.FrameKind
	Turn       int
	Frame      int
	Board      *model.Board
	Self       model.Stats
	Enemy      model.Stats
	Breaches   []model.Breach
	EnemyUnits []model.UnitSummary
}

// EnemyBreaches returns the breaches scored by enemy units this frame.
func (s *Snapshot) EnemyBreaches() []model.Breach {
	var out []model.Breach
	for _, b := range s.Breaches {
		if b.Owner == model.Enemy {
			out = append(out, b)
		}
	}
	return out
}

type rawEvents struct {
	Breach [][]any `json:"breach"`
}

// Parse decodes a turn or action frame. It either returns a complete snapshot
// or an error wrapping ErrMalformedSnapshot; a board is never half built.
func Parse(raw []byte) (*Snapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	for _, k := range requiredKeys {
		if v, ok := fields[k]; !ok || string(v) == "null" {
			return nil, fmt.Errorf("%w: missing %q", ErrMalformedSnapshot, k)
		}
	}

	var turnInfo []float64
	if err := decode(fields, "turnInfo", &turnInfo); err != nil {
		return nil, err
	}
	if len(turnInfo) < 2 {
		return nil, fmt.Errorf("%w: turnInfo has %d entries", ErrMalformedSnapshot, len(turnInfo))
	}

	snap := &Snapshot{
		Kind:  model.FrameKind(turnInfo[0]),
		Turn:  int(turnInfo[1]),
		Board: model.NewBoard(),
	}
	if len(turnInfo) > 2 {
		snap.Frame = int(turnInfo[2])
	}

	var err error
	if snap.Self, err = parseStats(fields, "p1Stats"); err != nil {
		return nil, err
	}
	if snap.Enemy, err = parseStats(fields, "p2Stats"); err != nil {
		return nil, err
	}
	if _, err := parseUnits(fields, "p1Units", model.Self, snap.Board); err != nil {
		return nil, err
	}
	if snap.EnemyUnits, err = parseUnits(fields, "p2Units", model.Enemy, snap.Board); err != nil {
		return nil, err
	}

	var events rawEvents
	if err := decode(fields, "events", &events); err != nil {
		return nil, err
	}
	for i, entry := range events.Breach {
		b, err := parseBreach(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: breach %d: %w", ErrMalformedSnapshot, i, err)
		}
		snap.Breaches = append(snap.Breaches, b)
	}
	return snap, nil
}

// ParseConfig decodes the game-start document into the unit catalog.
func ParseConfig(raw []byte) (*model.Catalog, error) {
	var cfg model.GameConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("decode game config: %w", err)
	}
	cat, err := model.NewCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("game config: %w", err)
	}
	return cat, nil
}

func decode(fields map[string]json.RawMessage, key string, out any) error {
	if err := json.Unmarshal(fields[key], out); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedSnapshot, key, err)
	}
	return nil
}

func parseStats(fields map[string]json.RawMessage, key string) (model.Stats, error) {
	var v []float64
	if err := decode(fields, key, &v); err != nil {
		return model.Stats{}, err
	}
	if len(v) < 3 {
		return model.Stats{}, fmt.Errorf("%w: %s has %d entries", ErrMalformedSnapshot, key, len(v))
	}
	s := model.Stats{Health: v[0], Cores: v[1], Bits: v[2]}
	if len(v) > 3 {
		s.TimeMS = v[3]
	}
	return s, nil
}

// parseUnits places every unit of one player on b and returns their summaries.
// Arrays past the last unit type hold removal and upgrade markers, which are
// not units.
func parseUnits(fields map[string]json.RawMessage, key string, owner model.Player, b *model.Board) ([]model.UnitSummary, error) {
	var byType [][][]any
	if err := decode(fields, key, &byType); err != nil {
		return nil, err
	}
	var out []model.UnitSummary
	for ti, entries := range byType {
		if ti >= model.NumUnitTypes {
			break
		}
		for _, e := range entries {
			u, err := parseUnit(model.UnitType(ti), owner, e)
			if err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %w", ErrMalformedSnapshot, key, ti, err)
			}
			if err := b.Place(u); err != nil {
				return nil, fmt.Errorf("%w: %s[%d]: %w", ErrMalformedSnapshot, key, ti, err)
			}
			out = append(out, model.UnitSummary{Type: u.Type, At: u.At, Health: u.Health})
		}
	}
	return out, nil
}

func parseUnit(t model.UnitType, owner model.Player, e []any) (model.Unit, error) {
	if len(e) < 2 {
		return model.Unit{}, fmt.Errorf("unit entry has %d fields", len(e))
	}
	at, err := parseCoord(e[0], e[1])
	if err != nil {
		return model.Unit{}, err
	}
	u := model.Unit{Type: t, Owner: owner, At: at}
	if len(e) > 2 {
		u.Health, _ = e[2].(float64)
	}
	if len(e) > 3 {
		u.ID = fmt.Sprint(e[3])
	}
	return u, nil
}

// parseBreach reads a [[x, y], damage, type, id, owner] entry. The location,
// the unit id and the owner, always the last field, are used.
func parseBreach(entry []any) (model.Breach, error) {
	if len(entry) < 2 {
		return model.Breach{}, fmt.Errorf("breach entry has %d fields", len(entry))
	}
	loc, ok := entry[0].([]any)
	if !ok || len(loc) < 2 {
		return model.Breach{}, fmt.Errorf("breach location %v", entry[0])
	}
	at, err := parseCoord(loc[0], loc[1])
	if err != nil {
		return model.Breach{}, err
	}
	owner, ok := asInt(entry[len(entry)-1])
	if !ok {
		return model.Breach{}, fmt.Errorf("breach owner %v", entry[len(entry)-1])
	}
	b := model.Breach{At: at}
	if len(entry) >= 5 {
		b.Unit = fmt.Sprint(entry[3])
	}
	switch owner {
	case wireSelf:
		b.Owner = model.Self
	case wireEnemy:
		b.Owner = model.Enemy
	default:
		return model.Breach{}, fmt.Errorf("breach owner %d", owner)
	}
	return b, nil
}

func parseCoord(xv, yv any) (model.Coord, error) {
	x, okx := asInt(xv)
	y, oky := asInt(yv)
	if !okx || !oky {
		return model.Coord{}, fmt.Errorf("coordinate [%v, %v]", xv, yv)
	}
	c := model.Coord{X: x, Y: y}
	if !model.InBounds(c) {
		return model.Coord{}, fmt.Errorf("%w: %v", model.ErrOutOfBounds, c)
	}
	return c, nil
}

func asInt(v any) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
