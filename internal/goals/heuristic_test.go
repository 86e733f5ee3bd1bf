package goals

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaiveerRaikhy/beacs/internal/types"
)

func mentorIn(industry string, tags ...string) *types.Mentor {
	return &types.Mentor{
		Profile:     types.Profile{ID: "mentor-1", CurrentIndustry: industry},
		HelpOffered: types.HelpOffering{Tags: tags},
	}
}

func menteeIn(industry string, needs ...string) *types.Mentee {
	return &types.Mentee{
		Profile: types.Profile{ID: "mentee-1", CurrentIndustry: industry},
		Needs:   needs,
	}
}

func TestHeuristicEstimate(t *testing.T) {
	tests := []struct {
		name          string
		mentor        *types.Mentor
		mentee        *types.Mentee
		wantScore     float64
		wantReasoning string
	}{
		{
			name:          "industry and overlap",
			mentor:        mentorIn("Technology", "Resume Review", "Interview Prep"),
			mentee:        menteeIn("Technology", "Resume Review", "Interview Prep"),
			wantScore:     0.9,
			wantReasoning: "Same industry; Can help with 2 needed areas (heuristic fallback)",
		},
		{
			name:          "industry only",
			mentor:        mentorIn("Finance"),
			mentee:        menteeIn("Finance", "Resume Review"),
			wantScore:     0.5,
			wantReasoning: "Same industry (heuristic fallback)",
		},
		{
			name:          "single overlap",
			mentor:        mentorIn("Finance", "Networking"),
			mentee:        menteeIn("Technology", "Networking"),
			wantScore:     0.3,
			wantReasoning: "Can help with 1 needed areas (heuristic fallback)",
		},
		{
			name:          "overlap contribution capped",
			mentor:        mentorIn("", "a", "b", "c", "d"),
			mentee:        menteeIn("", "a", "b", "c", "d"),
			wantScore:     0.4,
			wantReasoning: "Can help with 4 needed areas (heuristic fallback)",
		},
		{
			name:          "nothing in common",
			mentor:        mentorIn("Finance", "Networking"),
			mentee:        menteeIn("Healthcare", "Resume Review"),
			wantScore:     0,
			wantReasoning: "Limited alignment (heuristic fallback)",
		},
		{
			name:          "empty industries do not match",
			mentor:        mentorIn(""),
			mentee:        menteeIn(""),
			wantScore:     0,
			wantReasoning: "Limited alignment (heuristic fallback)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HeuristicEstimator{}.Estimate(context.Background(), tt.mentor, tt.mentee)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantReasoning, got.Reasoning)
			assert.True(t, got.Heuristic)
		})
	}
}
