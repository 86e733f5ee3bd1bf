package matching

// AcceptanceProbability maps a mentee-perspective score to a coarse
// acceptance-probability bucket. The mapping is a fixed step function: the
// better the match looks from the mentee's side, the likelier they are to
// accept a connection request.
func AcceptanceProbability(menteeScore float64) float64 {
	switch {
	case menteeScore >= 90:
		return 0.95
	case menteeScore >= 80:
		return 0.85
	case menteeScore >= 70:
		return 0.70
	case menteeScore >= 60:
		return 0.50
	case menteeScore >= 50:
		return 0.30
	case menteeScore >= 40:
		return 0.20
	default:
		return 0.10
	}
}
