package model

import (
	"fmt"
	"math"
	"strings"
)

// UnitType is the closed set of unit archetypes. The numeric value matches the
// index of the type in the game config's unitInformation list and in the
// per-player unit arrays of a frame.
type UnitType int

const (
	Wall        UnitType = iota // FF, cheap blocker
	Support                     // EF, shields mobile units
	Turret                      // DF, attacks mobile units
	Scout                       // PI, fast mobile
	Demolisher                  // EI, long range mobile
	Interceptor                 // SI, anti-mobile mobile

	NumUnitTypes = 6
)

var unitNames = [NumUnitTypes]string{"wall", "support", "turret", "scout", "demolisher", "interceptor"}

// Default shorthands, overridden by the game config when it carries its own.
var defaultShorthands = [NumUnitTypes]string{"FF", "EF", "DF", "PI", "EI", "SI"}

func (t UnitType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("unit(%d)", int(t))
	}
	return unitNames[t]
}

func (t UnitType) Valid() bool { return t >= 0 && t < NumUnitTypes }

// Stationary reports whether units of this type stay where they are built.
func (t UnitType) Stationary() bool { return t == Wall || t == Support || t == Turret }

// ParseUnitType accepts either the long name ("turret") or a default
// shorthand ("DF"), case-insensitively.
func ParseUnitType(s string) (UnitType, error) {
	for i := range NumUnitTypes {
		if strings.EqualFold(s, unitNames[i]) || strings.EqualFold(s, defaultShorthands[i]) {
			return UnitType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown unit type %q", s)
}

// Player identifies the owner of a unit from this engine's point of view.
type Player int

const (
	Self Player = iota
	Enemy
)

func (p Player) String() string {
	if p == Self {
		return "self"
	}
	return "enemy"
}

// UnitSpec holds the static attributes of one unit type.
type UnitSpec struct {
	Type      UnitType
	Shorthand string
	Cost      float64
	Damage    int
	Range     float64
}

// CanAttack reports whether a unit with these attributes can hit anything at all.
func (s UnitSpec) CanAttack() bool { return s.Damage > 0 && s.Range > 0 }

// Catalog is the immutable per-type lookup table built once at game start.
type Catalog struct {
	specs [NumUnitTypes]UnitSpec
}

// DefaultCatalog returns the stock attributes of each unit type. It is used
// when the game config omits a value and by offline tooling.
func DefaultCatalog() *Catalog {
	return &Catalog{specs: [NumUnitTypes]UnitSpec{
		{Type: Wall, Shorthand: "FF", Cost: 1, Damage: 0, Range: 0},
		{Type: Support, Shorthand: "EF", Cost: 4, Damage: 0, Range: 3},
		{Type: Turret, Shorthand: "DF", Cost: 3, Damage: 4, Range: 3.5},
		{Type: Scout, Shorthand: "PI", Cost: 1, Damage: 2, Range: 3.5},
		{Type: Demolisher, Shorthand: "EI", Cost: 3, Damage: 3, Range: 4.5},
		{Type: Interceptor, Shorthand: "SI", Cost: 1, Damage: 0, Range: 3.5},
	}}
}

// NewCatalog builds the table from the game config. Missing attributes fall
// back to DefaultCatalog; a config listing fewer than NumUnitTypes entries is
// rejected because type indices in frames would be ambiguous.
func NewCatalog(cfg GameConfig) (*Catalog, error) {
	if len(cfg.UnitInformation) < NumUnitTypes {
		return nil, fmt.Errorf("unitInformation has %d entries, want at least %d", len(cfg.UnitInformation), NumUnitTypes)
	}
	c := DefaultCatalog()
	for i := range NumUnitTypes {
		info := cfg.UnitInformation[i]
		spec := &c.specs[i]
		if info.Shorthand != "" {
			spec.Shorthand = info.Shorthand
		}
		if cost := firstPositive(info.Cost, info.Cost1, info.Cost2); cost > 0 {
			spec.Cost = cost
		}
		if dmg := firstPositive(info.Damage, info.AttackDamageWalker); dmg > 0 {
			spec.Damage = int(math.Round(dmg))
		}
		if rng := firstPositive(info.AttackRange, info.Range); rng > 0 {
			spec.Range = rng
		}
	}
	return c, nil
}

// Spec returns the attributes of t. Unknown types yield a zero spec.
func (c *Catalog) Spec(t UnitType) UnitSpec {
	if !t.Valid() {
		return UnitSpec{Type: t}
	}
	return c.specs[t]
}

// Lookup resolves a wire shorthand to its type.
func (c *Catalog) Lookup(shorthand string) (UnitType, bool) {
	for i := range NumUnitTypes {
		if c.specs[i].Shorthand == shorthand {
			return UnitType(i), true
		}
	}
	return 0, false
}

// Cheapest returns the lowest-cost type among ts, first on ties.
func (c *Catalog) Cheapest(ts ...UnitType) UnitType {
	best := ts[0]
	for _, t := range ts[1:] {
		if c.Spec(t).Cost < c.Spec(best).Cost {
			best = t
		}
	}
	return best
}

func firstPositive(vs ...float64) float64 {
	for _, v := range vs {
		if v > 0 {
			return v
		}
	}
	return 0
}

// Unit is one placed unit. Units are values and never change once placed.
type Unit struct {
	Type   UnitType
	Owner  Player
	At     Coord
	Health float64
	ID     string
}

func (u Unit) Stationary() bool { return u.Type.Stationary() }
