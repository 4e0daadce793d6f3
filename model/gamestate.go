package model

// GameConfig is the first document the game sends. Only the unit table is
// read; the rest of the config is ignored.
type GameConfig struct {
	UnitInformation []UnitInformation `json:"unitInformation"`
}

// UnitInformation carries one unit type's attributes. Different game versions
// name the same attribute differently, so several spellings are accepted.
type UnitInformation struct {
	Shorthand          string  `json:"shorthand"`
	Display            string  `json:"display"`
	Cost               float64 `json:"cost"`
	Cost1              float64 `json:"cost1"`
	Cost2              float64 `json:"cost2"`
	Damage             float64 `json:"damage"`
	AttackDamageWalker float64 `json:"attackDamageWalker"`
	AttackRange        float64 `json:"attackRange"`
	Range              float64 `json:"range"`
}

// FrameKind is turnInfo[0] of a frame.
type FrameKind int

const (
	FrameTurn   FrameKind = 0
	FrameAction FrameKind = 1
	FrameEnd    FrameKind = 2
)

func (k FrameKind) String() string {
	switch k {
	case FrameTurn:
		return "turn"
	case FrameAction:
		return "action"
	case FrameEnd:
		return "end"
	}
	return "unknown"
}

// Stats is one player's pool: [health, cores, bits, time] on the wire.
type Stats struct {
	Health float64
	Cores  float64 // spent on stationary units
	Bits   float64 // spent on mobile units
	TimeMS float64
}

// Breach is an event where a mobile unit reached the far edge. Owner is the
// owner of the unit that scored; Unit is its id, empty when the frame omits it.
type Breach struct {
	At    Coord
	Owner Player
	Unit  string
}

// UnitSummary is one enemy unit as reported by the frame.
type UnitSummary struct {
	Type   UnitType
	At     Coord
	Health float64
}
