package matching

import (
	"github.com/JaiveerRaikhy/beacs/internal/profile"
	"github.com/JaiveerRaikhy/beacs/internal/types"
)

// Ineligibility reasons. These are normal outcomes carried on the PairScore,
// not errors.
const (
	ReasonNoHelpOverlap   = "no help type overlap"
	ReasonInsufficientGap = "insufficient experience gap"
)

// CheckEligibility applies the two hard gates: the mentor must cover at
// least one of the mentee's stated needs, and must have strictly more total
// experience. A failing pair is reported with the first failing gate's
// reason; weighted scoring never runs for it.
func CheckEligibility(m *types.Mentor, me *types.Mentee) (bool, string) {
	if HelpOverlap(m.HelpOffered.Tags, me.Needs) == 0 {
		return false, ReasonNoHelpOverlap
	}
	if profile.TotalExperience(m.PastPositions) <= profile.TotalExperience(me.PastPositions) {
		return false, ReasonInsufficientGap
	}
	return true, ""
}
