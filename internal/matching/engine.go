package matching

import (
	"math"

	"github.com/JaiveerRaikhy/beacs/internal/types"
)

// DefaultGoalWeight is the weight applied to the goal alignment factor on
// both perspectives when a pair is scored with goals.
const DefaultGoalWeight = 5.0

// Engine scores mentor-mentee pairs. Its lookup tables are fixed at
// construction and never mutated, so an Engine is safe for concurrent use.
type Engine struct {
	tiers         TierTable
	menteeWeights map[Factor]float64
	goalWeight    float64
}

// Config carries optional overrides for Engine construction. Zero-value
// fields fall back to the built-in defaults.
type Config struct {
	Tiers         TierTable
	MenteeWeights map[Factor]float64
	GoalWeight    float64
}

// NewEngine builds an Engine from cfg, applying defaults for unset fields.
func NewEngine(cfg Config) *Engine {
	e := &Engine{
		tiers:         cfg.Tiers,
		menteeWeights: cfg.MenteeWeights,
		goalWeight:    cfg.GoalWeight,
	}
	if e.tiers == nil {
		e.tiers = DefaultTierTable()
	}
	if e.menteeWeights == nil {
		e.menteeWeights = DefaultMenteeWeights()
	}
	if e.goalWeight == 0 {
		e.goalWeight = DefaultGoalWeight
	}
	return e
}

// GoalWeight returns the configured goal alignment factor weight.
func (e *Engine) GoalWeight() float64 {
	return e.goalWeight
}

// round1 rounds to 1 decimal place, the precision of all perspective and
// bilateral scores.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// weightedAverage aggregates factor scores into a 0-100 score using the
// supplied weight function. Factors with non-positive weight are excluded.
// A zero total weight yields 0: a mentor who cares about nothing is a
// degenerate but valid input, not an error.
func weightedAverage(scores FactorScores, weightOf func(Factor) float64) float64 {
	weightedSum := 0.0
	totalWeight := 0.0
	for factor, score := range scores {
		weight := weightOf(factor)
		if weight > 0 {
			weightedSum += score * weight
			totalWeight += weight
		}
	}
	if totalWeight == 0 {
		return 0.0
	}
	return round1(weightedSum / totalWeight * 100)
}

// MentorScore computes the mentor-perspective score for a factor set using
// the mentor's preference weights.
func (e *Engine) MentorScore(m *types.Mentor, scores FactorScores) float64 {
	return weightedAverage(scores, func(f Factor) float64 {
		return mentorWeightFor(m.Preferences, f, e.goalWeight)
	})
}

// MenteeScore computes the mentee-perspective score for a factor set using
// the fixed default weight table.
func (e *Engine) MenteeScore(scores FactorScores) float64 {
	return weightedAverage(scores, func(f Factor) float64 {
		return e.menteeWeightFor(f, e.goalWeight)
	})
}

// Bilateral blends the two perspectives 60/40, mentor weighted higher.
func Bilateral(mentorScore, menteeScore float64) float64 {
	return round1(0.6*mentorScore + 0.4*menteeScore)
}

// ScorePair runs eligibility and base bilateral scoring for a pair, without
// the goal alignment factor. Ineligible pairs short-circuit with all scores
// zeroed and the gate's reason attached.
func (e *Engine) ScorePair(m *types.Mentor, me *types.Mentee) types.PairScore {
	if eligible, reason := CheckEligibility(m, me); !eligible {
		return types.PairScore{IneligibleReason: reason}
	}

	scores := e.FactorScores(m, me)
	mentorScore := e.MentorScore(m, scores)
	menteeScore := e.MenteeScore(scores)

	return types.PairScore{
		MentorScore:    mentorScore,
		MenteeScore:    menteeScore,
		BilateralScore: Bilateral(mentorScore, menteeScore),
		Eligible:       true,
	}
}

// ScorePairWithGoal rescores a pair with the goal alignment result merged
// into the factor set on both perspectives. Ineligible pairs short-circuit
// as in ScorePair; the goal result is discarded for them.
func (e *Engine) ScorePairWithGoal(m *types.Mentor, me *types.Mentee, goal types.GoalAlignment) types.PairScore {
	if eligible, reason := CheckEligibility(m, me); !eligible {
		return types.PairScore{IneligibleReason: reason}
	}

	scores := e.FactorScores(m, me)
	scores[FactorGoalAlignment] = goal.Score

	mentorScore := e.MentorScore(m, scores)
	menteeScore := e.MenteeScore(scores)

	return types.PairScore{
		MentorScore:    mentorScore,
		MenteeScore:    menteeScore,
		BilateralScore: Bilateral(mentorScore, menteeScore),
		Eligible:       true,
		GoalAlignment:  &goal,
	}
}
