// Package matching computes multi-factor compatibility scores between
// mentor-mentee pairs: hard eligibility gates, per-factor scoring, weighted
// per-perspective aggregation, and a blended bilateral score.
package matching

import (
	"github.com/JaiveerRaikhy/beacs/internal/profile"
	"github.com/JaiveerRaikhy/beacs/internal/types"
)

// Factor identifies one compatibility factor. The set is closed: every
// factor has an explicit weight mapping on both perspectives, so there is
// no silent unknown-key-scores-zero path.
type Factor string

// Factor identifiers.
const (
	FactorSharedInstitution Factor = "shared_institution"
	FactorInstitutionTier   Factor = "institution_tier"
	FactorIndustryAlignment Factor = "industry_alignment"
	FactorHelpTypeMatch     Factor = "help_type_match"
	FactorLocationProximity Factor = "location_proximity"
	FactorExperienceGap     Factor = "experience_gap"
	FactorGPA               Factor = "gpa"
	FactorGoalAlignment     Factor = "goal_alignment"
)

// FactorScores maps factor identifiers to values in [0,1]. Keys are present
// only for factors actually computed: FactorGPA appears only when the mentor
// ranked GPA, FactorGoalAlignment only when goal alignment was estimated.
type FactorScores map[Factor]float64

// TierTable classifies institutions into prestige tiers 1-4 (1 best).
// Unlisted institutions default to tier 4.
type TierTable map[string]int

const defaultTier = 4

// Tier returns the tier for an institution, defaulting to 4 for unknown or
// empty names.
func (t TierTable) Tier(institution string) int {
	if institution == "" {
		return defaultTier
	}
	if tier, ok := t[institution]; ok {
		return tier
	}
	return defaultTier
}

// DefaultTierTable returns the built-in institution tier classification.
func DefaultTierTable() TierTable {
	return TierTable{
		// Tier 1
		"Harvard University":         1,
		"Yale University":            1,
		"Princeton University":       1,
		"Columbia University":        1,
		"University of Pennsylvania": 1,
		"Cornell University":         1,
		"Brown University":           1,
		"Dartmouth College":          1,
		"Stanford University":        1,
		"MIT":                        1,
		"Caltech":                    1,

		// Tier 2
		"Duke University":                    2,
		"Northwestern University":            2,
		"Johns Hopkins University":           2,
		"University of Chicago":              2,
		"Rice University":                    2,
		"Vanderbilt University":              2,
		"Washington University in St. Louis": 2,
		"Notre Dame":                         2,
		"UC Berkeley":                        2,
		"UCLA":                               2,
		"Georgetown University":              2,

		// Tier 3
		"University of Michigan":        3,
		"University of Virginia":        3,
		"University of North Carolina":  3,
		"Georgia Tech":                  3,
		"University of Texas at Austin": 3,
		"University of Wisconsin":       3,
		"University of Illinois":        3,
		"Ohio State University":         3,
		"Penn State University":         3,
		"University of Washington":      3,
		"University of Florida":         3,
		"Purdue University":             3,
		"UC San Diego":                  3,
		"University of Maryland":        3,
	}
}

// sharedInstitutionScore is 1.0 when both alma maters are known and equal.
func sharedInstitutionScore(mentorAlma, menteeAlma string) float64 {
	if mentorAlma != "" && menteeAlma != "" && mentorAlma == menteeAlma {
		return 1.0
	}
	return 0.0
}

// institutionTierScore decreases linearly with tier distance:
// 1 - |diff|/3, floored at 0.
func (e *Engine) institutionTierScore(mentorAlma, menteeAlma string) float64 {
	diff := e.tiers.Tier(mentorAlma) - e.tiers.Tier(menteeAlma)
	if diff < 0 {
		diff = -diff
	}
	score := 1.0 - float64(diff)/3.0
	if score < 0 {
		return 0.0
	}
	return score
}

// industryAlignmentScore is 1.0 on an exact, non-empty industry match.
func industryAlignmentScore(mentorIndustry, menteeIndustry string) float64 {
	if mentorIndustry != "" && menteeIndustry != "" && mentorIndustry == menteeIndustry {
		return 1.0
	}
	return 0.0
}

// HelpOverlap counts the tags the mentor offers that the mentee needs.
func HelpOverlap(offered, needed []string) int {
	offeredSet := make(map[string]struct{}, len(offered))
	for _, tag := range offered {
		offeredSet[tag] = struct{}{}
	}
	overlap := 0
	for _, tag := range needed {
		if _, ok := offeredSet[tag]; ok {
			overlap++
		}
	}
	return overlap
}

// helpTypeMatchScore is the fraction of the mentee's needs the mentor
// covers, capped at 1.0. A mentee with no stated needs scores 0.
func helpTypeMatchScore(offered, needed []string) float64 {
	if len(needed) == 0 {
		return 0.0
	}
	score := float64(HelpOverlap(offered, needed)) / float64(len(needed))
	if score > 1.0 {
		return 1.0
	}
	return score
}

// experienceGapScore scores the mentor-minus-mentee experience gap in years.
// The 3-7 year band is ideal; smaller gaps ramp up linearly and larger gaps
// decay smoothly (gap 10 -> 0.70, gap 20 -> 0.357). Non-positive gaps score
// 0, which cannot occur after the eligibility gate but must be safe.
func experienceGapScore(gap float64) float64 {
	switch {
	case gap <= 0:
		return 0.0
	case gap >= 3 && gap <= 7:
		return 1.0
	case gap < 3:
		return gap / 3.0
	default:
		return 1.0 / (1.0 + 0.1*(gap-7.0))
	}
}

// gpaScore normalizes a mentee GPA on a 4.0 scale, clamped to [0,1].
// A missing GPA contributes 0.
func gpaScore(gpa *float64) float64 {
	if gpa == nil {
		return 0.0
	}
	score := *gpa / 4.0
	if score < 0 {
		return 0.0
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

// FactorScores computes the base factor set for a pair. FactorGPA is
// included only when the mentor expressed a GPA preference.
func (e *Engine) FactorScores(m *types.Mentor, me *types.Mentee) FactorScores {
	mentorAlma := profile.MentorAlmaMater(m)
	menteeAlma := profile.MenteeAlmaMater(me)

	gap := profile.TotalExperience(m.PastPositions) - profile.TotalExperience(me.PastPositions)

	scores := FactorScores{
		FactorSharedInstitution: sharedInstitutionScore(mentorAlma, menteeAlma),
		FactorInstitutionTier:   e.institutionTierScore(mentorAlma, menteeAlma),
		FactorIndustryAlignment: industryAlignmentScore(m.CurrentIndustry, me.CurrentIndustry),
		FactorHelpTypeMatch:     helpTypeMatchScore(m.HelpOffered.Tags, me.Needs),
		FactorLocationProximity: profile.CompareLocations(m.Location, me.Location),
		FactorExperienceGap:     experienceGapScore(gap),
	}

	if m.Preferences.GPA != types.RankNone {
		scores[FactorGPA] = gpaScore(me.GPA)
	}

	return scores
}
