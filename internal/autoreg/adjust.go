package autoreg

// LiftSet is the outcome of one completed set.
type LiftSet struct {
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
	RPE    float64 `json:"rpe"`
}

// Rule identifies which branch of the decision table produced a weight.
type Rule string

const (
	RuleDecrease Rule = "decrease"
	RuleHold     Rule = "hold"
	RuleIncrease Rule = "increase"
	RuleOutlier  Rule = "outlier"
)

// outlierIncrement is applied when a set falls outside the modeled rep range,
// regardless of the adjustment level.
const outlierIncrement = 15

type rule struct {
	name  Rule
	guard func(t Threshold, set LiftSet) bool
	apply func(set LiftSet, magnitude float64) float64
}

// decisionTable is evaluated top to bottom, the first satisfied guard wins.
var decisionTable = []rule{
	{
		name: RuleDecrease,
		guard: func(t Threshold, set LiftSet) bool {
			return set.Reps <= t.Min && set.RPE >= 9
		},
		apply: func(set LiftSet, magnitude float64) float64 {
			return set.Weight - magnitude
		},
	},
	{
		name: RuleHold,
		guard: func(t Threshold, set LiftSet) bool {
			return set.Reps <= t.Mid && set.RPE >= 8
		},
		apply: func(set LiftSet, _ float64) float64 {
			return set.Weight
		},
	},
	{
		name: RuleIncrease,
		guard: func(t Threshold, set LiftSet) bool {
			return set.Reps <= t.Max && set.RPE >= 1 && set.RPE <= 8
		},
		apply: func(set LiftSet, magnitude float64) float64 {
			return set.Weight + magnitude
		},
	},
}

// Decide evaluates the set against the scheme's thresholds and returns the
// new target weight together with the rule that produced it.
// It never fails: anything no rule covers gets the fixed outlier increment.
func Decide(scheme RepScheme, level AdjustmentLevel, set LiftSet) (float64, Rule) {
	t := scheme.Threshold()
	magnitude := level.Magnitude()
	for _, r := range decisionTable {
		if r.guard(t, set) {
			return r.apply(set, magnitude), r.name
		}
	}
	return set.Weight + outlierIncrement, RuleOutlier
}

// AdjustWeight returns the recommended weight for the next set.
func AdjustWeight(scheme RepScheme, level AdjustmentLevel, set LiftSet) float64 {
	w, _ := Decide(scheme, level, set)
	return w
}

// Adjust binds a scheme and level, level defaulting to progressive when empty.
func Adjust(scheme RepScheme, level ...AdjustmentLevel) func(set LiftSet) float64 {
	l := DefaultAdjustmentLevel
	if len(level) > 0 && level[0] != "" {
		l = level[0]
	}
	return func(set LiftSet) float64 {
		return AdjustWeight(scheme, l, set)
	}
}
