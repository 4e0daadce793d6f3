package rules

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/nstehr/rampart/ingest"
	"github.com/nstehr/rampart/model"
)

// Engine runs the compiled rules against each turn snapshot.
// Rules fire in priority order; exclusive rules block lower-priority rules
// in the same category, so only one offensive plan is made per turn.
// The engine owns the game's breach log and lives for one game.
type Engine struct {
	rules    []*Rule
	catalog  *model.Catalog
	playbook Playbook
	breaches *BreachLog
}

// NewEngine validates the playbook, compiles its rules into expr bytecode and
// sorts them by priority.
func NewEngine(cat *model.Catalog, pb Playbook) (*Engine, error) {
	if err := pb.Validate(); err != nil {
		return nil, fmt.Errorf("playbook %q: %w", pb.Name, err)
	}
	compiled, err := compileRules(CompilePlaybook(pb))
	if err != nil {
		return nil, err
	}
	return &Engine{
		rules:    compiled,
		catalog:  cat,
		playbook: pb,
		breaches: NewBreachLog(),
	}, nil
}

// Breaches is the log of enemy breaches seen so far this game.
func (e *Engine) Breaches() *BreachLog { return e.breaches }

// Rules returns the compiled rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// Observe appends the snapshot's enemy breaches to the log.
func (e *Engine) Observe(snap *ingest.Snapshot) {
	if n := e.breaches.Record(snap.Turn, snap.Breaches); n > 0 {
		slog.Info("breach recorded", "turn", snap.Turn, "new", n, "total", e.breaches.Len())
	}
}

// Evaluate records the snapshot's breaches and runs every rule against it.
// A rule whose condition or action fails is logged and skipped; the plan
// always holds whatever the other rules produced.
func (e *Engine) Evaluate(snap *ingest.Snapshot) *Plan {
	e.Observe(snap)

	plan := newPlan(snap.Board)
	env := RuleEnv{
		Turn:     snap.Turn,
		Snap:     snap,
		Board:    snap.Board,
		Catalog:  e.catalog,
		Breaches: e.breaches,
		Playbook: e.playbook,
	}
	fired := make(map[string]bool) // category → exclusive rule already fired

	for _, r := range e.rules {
		if fired[r.Category] {
			continue
		}

		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "category", r.Category)

		if err := r.Action(env, plan); err != nil {
			slog.Error("rule action error", "rule", r.Name, "error", err)
		}

		if r.Exclusive {
			fired[r.Category] = true
		}
	}

	slog.Debug("turn planned", "turn", snap.Turn, "intents", len(plan.Intents), "blockCandidates", len(plan.BlockCandidates))
	return plan
}

// Turn parses a raw turn frame and plans it. A frame that cannot be parsed
// yields an empty plan alongside the error; the snapshot is then nil.
func (e *Engine) Turn(raw []byte) (*ingest.Snapshot, *Plan, error) {
	snap, err := ingest.Parse(raw)
	if err != nil {
		return nil, newPlan(nil), fmt.Errorf("ingest turn: %w", err)
	}
	return snap, e.Evaluate(snap), nil
}

func compileRules(rules []*Rule) ([]*Rule, error) {
	for _, r := range rules {
		prog, err := expr.Compile(r.ConditionSrc, expr.Env(RuleEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
