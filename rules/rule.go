package rules

import "github.com/expr-lang/expr/vm"

// ActionFunc adds intents to the turn's plan when a rule's condition is true.
type ActionFunc func(env RuleEnv, plan *Plan) error

// Rule is one step of the turn: a condition → action pair.
// The engine evaluates rules by priority and uses Category + Exclusive
// to keep competing steps (two offensive spawns, say) from both firing.
type Rule struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source
	program      *vm.Program // compiled bytecode
	Action       ActionFunc
}
