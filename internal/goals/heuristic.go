package goals

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaiveerRaikhy/beacs/internal/matching"
	"github.com/JaiveerRaikhy/beacs/internal/types"
)

// HeuristicEstimator is the deterministic local fallback: a rule-based
// score built from industry match and help-tag overlap. It never fails, so
// it is the guaranteed terminal branch of goal alignment.
type HeuristicEstimator struct{}

// Estimate scores a pair without any external call: +0.5 for an exact
// industry match, plus 0.3 per overlapping help tag capped at 0.4, clamped
// to 1.0 overall. The returned error is always nil.
func (HeuristicEstimator) Estimate(_ context.Context, m *types.Mentor, me *types.Mentee) (types.GoalAlignment, error) {
	score := 0.0
	var reasons []string

	if m.CurrentIndustry != "" && m.CurrentIndustry == me.CurrentIndustry {
		score += 0.5
		reasons = append(reasons, "Same industry")
	}

	if overlap := matching.HelpOverlap(m.HelpOffered.Tags, me.Needs); overlap > 0 {
		contribution := 0.3 * float64(overlap)
		if contribution > 0.4 {
			contribution = 0.4
		}
		score += contribution
		reasons = append(reasons, fmt.Sprintf("Can help with %d needed areas", overlap))
	}

	if score > 1.0 {
		score = 1.0
	}

	reasoning := "Limited alignment"
	if len(reasons) > 0 {
		reasoning = strings.Join(reasons, "; ")
	}

	return types.GoalAlignment{
		Score:     score,
		Reasoning: reasoning + " (heuristic fallback)",
		Heuristic: true,
	}, nil
}
