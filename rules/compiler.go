package rules

// Rule names, also the keys of Playbook.Conditions.
const (
	RuleOpening            = "opening"
	RulePredictiveBlocking = "predictive-blocking"
	RuleBlockWalls         = "block-walls"
	RuleReactiveDefense    = "reactive-defense"
	RuleDemolisherLine     = "demolisher-line"
	RuleOffensiveSpawn     = "offensive-spawn"
)

var ruleNames = []string{
	RuleOpening, RulePredictiveBlocking, RuleBlockWalls,
	RuleReactiveDefense, RuleDemolisherLine, RuleOffensiveSpawn,
}

func knownRule(name string) bool {
	for _, n := range ruleNames {
		if n == name {
			return true
		}
	}
	return false
}

// CompilePlaybook generates the turn's rule set from a playbook. Optional
// rules are only present when the playbook enables them; a playbook
// condition replaces the default condition of the rule it names.
func CompilePlaybook(pb Playbook) []*Rule {
	cond := func(name, def string) string {
		if c := pb.Conditions[name]; c != "" {
			return c
		}
		return def
	}
	var rules []*Rule

	rules = append(rules, &Rule{
		Name:         RuleOpening,
		Priority:     1000,
		Category:     "opening",
		Exclusive:    true,
		ConditionSrc: cond(RuleOpening, `Turn == 0`),
		Action:       ActionOpening,
	})

	rules = append(rules, &Rule{
		Name:         RulePredictiveBlocking,
		Priority:     900,
		Category:     "defense",
		ConditionSrc: cond(RulePredictiveBlocking, `true`),
		Action:       ActionPredictiveBlocking,
	})

	if pb.BlockWalls {
		rules = append(rules, &Rule{
			Name:         RuleBlockWalls,
			Priority:     850,
			Category:     "defense",
			ConditionSrc: cond(RuleBlockWalls, `Cores() >= Cost("wall")`),
			Action:       ActionBlockWalls,
		})
	}

	rules = append(rules, &Rule{
		Name:         RuleReactiveDefense,
		Priority:     800,
		Category:     "defense",
		ConditionSrc: cond(RuleReactiveDefense, `BreachCount() > 0`),
		Action:       ActionReactiveDefense,
	})

	if pb.DemolisherLine.Enabled {
		rules = append(rules, &Rule{
			Name:         RuleDemolisherLine,
			Priority:     750,
			Category:     "offense",
			Exclusive:    true,
			ConditionSrc: cond(RuleDemolisherLine, `Turn > 0 && Bits() >= Cost("demolisher")`),
			Action:       ActionDemolisherLine,
		})
	}

	rules = append(rules, &Rule{
		Name:         RuleOffensiveSpawn,
		Priority:     700,
		Category:     "offense",
		Exclusive:    true,
		ConditionSrc: cond(RuleOffensiveSpawn, `true`),
		Action:       ActionOffensiveSpawn,
	})

	return rules
}
