package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcceptanceProbability_StepFunction(t *testing.T) {
	tests := []struct {
		menteeScore float64
		want        float64
	}{
		{92, 0.95},
		{90, 0.95},
		{81, 0.85},
		{70, 0.70},
		{65, 0.50},
		{55, 0.30},
		{45, 0.20},
		{10, 0.10},
		{0, 0.10},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AcceptanceProbability(tt.menteeScore), "score %.0f", tt.menteeScore)
	}
}
