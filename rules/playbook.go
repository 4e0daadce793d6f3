package rules

import (
	"fmt"
	"os"

	"github.com/nstehr/rampart/model"
	"gopkg.in/yaml.v3"
)

// Loc is a coordinate written as a two-element [x, y] sequence.
type Loc [2]int

func (l Loc) Coord() model.Coord { return model.Coord{X: l[0], Y: l[1]} }

func (l *Loc) UnmarshalYAML(n *yaml.Node) error {
	var v []int
	if err := n.Decode(&v); err != nil {
		return err
	}
	if len(v) != 2 {
		return fmt.Errorf("line %d: location needs [x, y], got %d values", n.Line, len(v))
	}
	*l = Loc{v[0], v[1]}
	return nil
}

// Spawn is one fixed opening placement.
type Spawn struct {
	Unit  string `yaml:"unit"`
	At    Loc    `yaml:"at"`
	Count int    `yaml:"count"`
}

// DemolisherLine walls off one row with the cheapest stationary unit and
// sends demolishers in behind it, so they stop at range and shell the
// enemy's front rows.
type DemolisherLine struct {
	Enabled bool `yaml:"enabled"`
	Row     int  `yaml:"row"`
	Spawn   Loc  `yaml:"spawn"`
}

// Playbook is the static per-game strategy. The compiler maps it to rules.
type Playbook struct {
	Name            string            `yaml:"name"`
	Midline         int               `yaml:"midline"`
	Opening         []Spawn           `yaml:"opening"`
	SpawnCandidates []Loc             `yaml:"spawnCandidates"`
	OffenseUnit     string            `yaml:"offenseUnit"`
	DefenseUnit     string            `yaml:"defenseUnit"`
	BlockWalls      bool              `yaml:"blockWalls"`
	DemolisherLine  DemolisherLine    `yaml:"demolisherLine"`
	Conditions      map[string]string `yaml:"conditions"`
}

// DefaultPlaybook returns the baseline: four interceptors on turn 0, turrets
// behind every breach, and scouts from the safest bottom edge cell.
func DefaultPlaybook() Playbook {
	return Playbook{
		Name:    "balanced",
		Midline: model.HalfArena,
		Opening: []Spawn{
			{Unit: "interceptor", At: Loc{2, 11}, Count: 1},
			{Unit: "interceptor", At: Loc{25, 11}, Count: 1},
			{Unit: "interceptor", At: Loc{11, 2}, Count: 1},
			{Unit: "interceptor", At: Loc{16, 2}, Count: 1},
		},
		SpawnCandidates: []Loc{{13, 0}, {14, 0}, {3, 10}, {24, 10}},
		OffenseUnit:     "scout",
		DefenseUnit:     "turret",
		DemolisherLine:  DemolisherLine{Row: 11, Spawn: Loc{24, 10}},
	}
}

// LoadPlaybook reads a YAML playbook. Fields the file omits keep their
// DefaultPlaybook values.
func LoadPlaybook(path string) (Playbook, error) {
	pb := DefaultPlaybook()
	b, err := os.ReadFile(path)
	if err != nil {
		return pb, fmt.Errorf("read playbook: %w", err)
	}
	if err := yaml.Unmarshal(b, &pb); err != nil {
		return pb, fmt.Errorf("parse playbook %s: %w", path, err)
	}
	if err := pb.Validate(); err != nil {
		return pb, fmt.Errorf("playbook %s: %w", path, err)
	}
	return pb, nil
}

// Validate fills zero values, clamps the midline to [1, 27] and rejects
// unknown unit names, misplaced unit kinds, off-arena locations and
// conditions for rules that do not exist.
func (p *Playbook) Validate() error {
	if p.Midline == 0 {
		p.Midline = model.HalfArena
	}
	p.Midline = clampInt(p.Midline, 1, model.ArenaSize-1)
	if p.OffenseUnit == "" {
		p.OffenseUnit = model.Scout.String()
	}
	if p.DefenseUnit == "" {
		p.DefenseUnit = model.Turret.String()
	}

	off, err := model.ParseUnitType(p.OffenseUnit)
	if err != nil {
		return fmt.Errorf("offenseUnit: %w", err)
	}
	if off.Stationary() {
		return fmt.Errorf("offenseUnit %s is stationary", off)
	}
	def, err := model.ParseUnitType(p.DefenseUnit)
	if err != nil {
		return fmt.Errorf("defenseUnit: %w", err)
	}
	if !def.Stationary() {
		return fmt.Errorf("defenseUnit %s is mobile", def)
	}

	for i := range p.Opening {
		s := &p.Opening[i]
		if _, err := model.ParseUnitType(s.Unit); err != nil {
			return fmt.Errorf("opening[%d]: %w", i, err)
		}
		if err := checkLoc(s.At); err != nil {
			return fmt.Errorf("opening[%d]: %w", i, err)
		}
		if s.Count <= 0 {
			s.Count = 1
		}
	}
	for i, l := range p.SpawnCandidates {
		if err := checkLoc(l); err != nil {
			return fmt.Errorf("spawnCandidates[%d]: %w", i, err)
		}
	}
	if p.DemolisherLine.Enabled {
		if r := p.DemolisherLine.Row; r < 0 || r >= model.ArenaSize {
			return fmt.Errorf("demolisherLine row %d outside the arena", r)
		}
		if err := checkLoc(p.DemolisherLine.Spawn); err != nil {
			return fmt.Errorf("demolisherLine spawn: %w", err)
		}
	}
	for name := range p.Conditions {
		if !knownRule(name) {
			return fmt.Errorf("condition for unknown rule %q", name)
		}
	}
	return nil
}

func (p Playbook) offense() model.UnitType { return mustUnit(p.OffenseUnit, model.Scout) }
func (p Playbook) defense() model.UnitType { return mustUnit(p.DefenseUnit, model.Turret) }

// mustUnit resolves a name Validate has already accepted.
func mustUnit(name string, fallback model.UnitType) model.UnitType {
	t, err := model.ParseUnitType(name)
	if err != nil {
		return fallback
	}
	return t
}

func checkLoc(l Loc) error {
	if !model.InBounds(l.Coord()) {
		return fmt.Errorf("%v: %w", l.Coord(), model.ErrOutOfBounds)
	}
	return nil
}

// clampInt restricts v to [min, max].
func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
