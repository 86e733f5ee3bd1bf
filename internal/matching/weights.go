package matching

import "github.com/JaiveerRaikhy/beacs/internal/types"

// DefaultMenteeWeights returns the fixed weight table used for the mentee
// perspective. Mentees do not set preferences; industry fit and getting the
// right kind of help dominate.
func DefaultMenteeWeights() map[Factor]float64 {
	return map[Factor]float64{
		FactorSharedInstitution: 2.0,
		FactorInstitutionTier:   1.0,
		FactorIndustryAlignment: 5.0,
		FactorHelpTypeMatch:     5.0,
		FactorLocationProximity: 2.0,
		FactorExperienceGap:     4.0,
		FactorGPA:               0.0,
	}
}

// mentorWeightFor maps a factor to the weight derived from the mentor's
// preference vector. Both institution factors share the university
// preference; the experience gap stands in for path alignment. goalWeight
// applies when goal alignment is part of the factor set.
func mentorWeightFor(prefs types.Preferences, f Factor, goalWeight float64) float64 {
	switch f {
	case FactorSharedInstitution, FactorInstitutionTier:
		return prefs.University.Weight()
	case FactorIndustryAlignment:
		return prefs.IndustryAlignment.Weight()
	case FactorHelpTypeMatch:
		return prefs.HelpType.Weight()
	case FactorLocationProximity:
		return prefs.Location.Weight()
	case FactorExperienceGap:
		return prefs.PathAlignment.Weight()
	case FactorGPA:
		return prefs.GPA.Weight()
	case FactorGoalAlignment:
		return goalWeight
	default:
		return 0.0
	}
}

// menteeWeightFor looks up a factor in the mentee weight table. Goal
// alignment is not part of the fixed table and uses the configured weight.
func (e *Engine) menteeWeightFor(f Factor, goalWeight float64) float64 {
	if f == FactorGoalAlignment {
		return goalWeight
	}
	return e.menteeWeights[f]
}
