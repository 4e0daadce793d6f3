package ipc

import (
	"encoding/json"
	"log/slog"
	"math"

	"github.com/nstehr/rampart/model"
	"github.com/nstehr/rampart/rules"
)

// DefaultMaxBulk caps a bulk spawn, matching the game's own per-call limit.
const DefaultMaxBulk = 1000

// Resources smaller than this are rounding noise.
const epsilon = 1e-9

// Action is one wire placement, encoded as ["FF", x, y].
type Action struct {
	Shorthand string
	At        model.Coord
}

func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{a.Shorthand, a.At.X, a.At.Y})
}

// Submission is one turn's reply: stationary builds, then mobile deploys.
type Submission struct {
	Build  []Action
	Deploy []Action
}

// Lines returns the two reply lines. Empty lists encode as [].
func (s Submission) Lines() []any {
	build, deploy := s.Build, s.Deploy
	if build == nil {
		build = []Action{}
	}
	if deploy == nil {
		deploy = []Action{}
	}
	return []any{build, deploy}
}

// Submitter turns intents into wire actions against the turn's resources:
// cores pay for stationary units, bits for mobile ones.
type Submitter struct {
	catalog *model.Catalog
	maxBulk int
}

func NewSubmitter(cat *model.Catalog, maxBulk int) *Submitter {
	if maxBulk <= 0 {
		maxBulk = DefaultMaxBulk
	}
	return &Submitter{catalog: cat, maxBulk: maxBulk}
}

// Submit expands intents in order. Intents that cannot be afforded, builds on
// cells already holding a stationary unit, spawns onto such cells and units
// whose shorthand the game would read as another type are dropped; the rest
// of the turn goes ahead.
func (s *Submitter) Submit(b *model.Board, stats model.Stats, intents []rules.Intent) Submission {
	var out Submission
	cores, bits := stats.Cores, stats.Bits
	built := make(map[model.Coord]bool)

	for _, in := range intents {
		spec := s.catalog.Spec(in.Unit)
		if spec.Cost <= 0 || !model.InBounds(in.At) {
			slog.Warn("dropping intent", "intent", in, "cost", spec.Cost)
			continue
		}
		if t, ok := s.catalog.Lookup(spec.Shorthand); !ok || t != in.Unit {
			slog.Warn("dropping intent: shorthand names another unit", "intent", in, "shorthand", spec.Shorthand)
			continue
		}
		blocked := b.HasStationary(in.At) || built[in.At]

		if in.Unit.Stationary() {
			if blocked {
				slog.Debug("build dropped: cell occupied", "intent", in)
				continue
			}
			if cores+epsilon < spec.Cost {
				slog.Debug("build dropped: not enough cores", "intent", in, "cores", cores)
				continue
			}
			cores -= spec.Cost
			built[in.At] = true
			out.Build = append(out.Build, Action{Shorthand: spec.Shorthand, At: in.At})
			continue
		}

		if blocked {
			slog.Debug("spawn dropped: cell occupied", "intent", in)
			continue
		}
		n := int(math.Floor(bits/spec.Cost + epsilon))
		if !in.Bulk {
			n = min(n, in.Count)
		}
		n = min(n, s.maxBulk)
		if n <= 0 {
			slog.Debug("spawn dropped: not enough bits", "intent", in, "bits", bits)
			continue
		}
		bits -= float64(n) * spec.Cost
		for range n {
			out.Deploy = append(out.Deploy, Action{Shorthand: spec.Shorthand, At: in.At})
		}
	}
	return out
}
