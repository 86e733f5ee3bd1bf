package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankUnmarshal_Number(t *testing.T) {
	var r Rank
	require.NoError(t, json.Unmarshal([]byte(`3`), &r))
	assert.Equal(t, Rank(3), r)
}

func TestRankUnmarshal_DontCare(t *testing.T) {
	var r Rank
	require.NoError(t, json.Unmarshal([]byte(`"Don't care"`), &r))
	assert.Equal(t, RankNone, r)
}

func TestRankUnmarshal_UnknownString(t *testing.T) {
	var r Rank
	err := json.Unmarshal([]byte(`"whatever"`), &r)
	assert.Error(t, err)
}

func TestRankMarshal_RoundTrip(t *testing.T) {
	out, err := json.Marshal(RankNone)
	require.NoError(t, err)
	assert.JSONEq(t, `"Don't care"`, string(out))

	out, err = json.Marshal(Rank(2))
	require.NoError(t, err)
	assert.JSONEq(t, `2`, string(out))
}

func TestRankWeight(t *testing.T) {
	tests := []struct {
		rank   Rank
		weight float64
	}{
		{1, 5.0},
		{2, 4.0},
		{3, 3.0},
		{4, 2.0},
		{5, 1.0},
		{RankNone, 0.0},
		{7, 0.0},
		{-1, 0.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.weight, tt.rank.Weight(), "rank %d", tt.rank)
	}
}

func TestPreferencesUnmarshal_MixedValues(t *testing.T) {
	raw := `{
		"location": 2,
		"uni": "Don't care",
		"gpa": "Don't care",
		"industry_alignment": 1,
		"help_type": 1,
		"path_alignment": 3
	}`

	var prefs Preferences
	require.NoError(t, json.Unmarshal([]byte(raw), &prefs))

	assert.Equal(t, Rank(2), prefs.Location)
	assert.Equal(t, RankNone, prefs.University)
	assert.Equal(t, RankNone, prefs.GPA)
	assert.Equal(t, Rank(1), prefs.IndustryAlignment)
	assert.Equal(t, Rank(1), prefs.HelpType)
	assert.Equal(t, Rank(3), prefs.PathAlignment)
}

func TestMentorUnmarshal_ProfileFields(t *testing.T) {
	raw := `{
		"id": "M001",
		"name": "Barbara Ali",
		"current_position": "VP Engineering",
		"current_company": "Acme Manufacturing",
		"current_industry": "Manufacturing",
		"location": "Detroit, MI",
		"university": "University of Michigan",
		"past_positions": [
			{"title": "BS Mechanical Engineering", "company": "University of Michigan", "order_index": 0},
			{"title": "Engineer", "company": "Acme Manufacturing", "duration": "6 years", "order_index": 1}
		],
		"what_i_can_help_with": {"tags": ["Career pivots"], "details": "Happy to chat"},
		"preferences": {"location": "Don't care", "uni": 2, "gpa": "Don't care", "industry_alignment": 1, "help_type": 1, "path_alignment": "Don't care"}
	}`

	var m Mentor
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.Equal(t, "M001", m.ID)
	assert.Equal(t, "University of Michigan", m.University)
	assert.Len(t, m.PastPositions, 2)
	assert.Equal(t, []string{"Career pivots"}, m.HelpOffered.Tags)
	assert.Equal(t, Rank(2), m.Preferences.University)
}
