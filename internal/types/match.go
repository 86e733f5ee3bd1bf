package types

// PairScore is the scored outcome for one mentor-mentee pair. All three
// scores are in [0,100] when the pair is eligible and exactly 0 when it is
// not. Ineligibility is a normal outcome, not an error.
type PairScore struct {
	MentorScore      float64 `json:"mentor_score"`
	MenteeScore      float64 `json:"mentee_score"`
	BilateralScore   float64 `json:"bilateral_score"`
	Eligible         bool    `json:"eligible"`
	IneligibleReason string  `json:"ineligible_reason,omitempty"`

	// GoalAlignment is set only when the pair was scored with the goal
	// alignment factor included.
	GoalAlignment *GoalAlignment `json:"goal_alignment,omitempty"`
}

// GoalAlignment is the externally-estimated fit between a mentee's stated
// goal and a mentor's background. Heuristic marks results produced by the
// deterministic local fallback rather than the remote reasoning service.
type GoalAlignment struct {
	Score     float64 `json:"score"`
	Reasoning string  `json:"reasoning"`
	Heuristic bool    `json:"heuristic,omitempty"`
}

// FeedItem is the denormalized mentee view shown to a mentor, with scores
// attached.
type FeedItem struct {
	MenteeID             string         `json:"mentee_id"`
	Name                 string         `json:"name"`
	University           string         `json:"university"`
	Location             string         `json:"location"`
	GPA                  *float64       `json:"gpa,omitempty"`
	CurrentPosition      string         `json:"current_position"`
	CurrentCompany       string         `json:"current_company"`
	CurrentIndustry      string         `json:"current_industry"`
	TotalExperienceYears float64        `json:"total_experience_years"`
	PastPositions        []PastPosition `json:"past_positions"`
	HelpSeeking          []string       `json:"help_seeking"`
	Goals                string         `json:"goals"`
	MoreInfo             string         `json:"more_info"`

	BilateralScore        float64 `json:"bilateral_score"`
	MentorScore           float64 `json:"mentor_score"`
	MenteeScore           float64 `json:"mentee_score"`
	GoalAlignmentScore    float64 `json:"goal_alignment_score"`
	GoalReasoning         string  `json:"goal_reasoning"`
	AcceptanceProbability float64 `json:"acceptance_probability"`

	// BestPick marks the top-ranked item in a feed. It is a placeholder for
	// a future two-sided stable matching pass, not a guarantee of mutual
	// optimality.
	BestPick bool `json:"best_pick"`
}
