package goals

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JaiveerRaikhy/beacs/internal/llm"
)

// fakeClient returns canned responses in order; the last entry repeats.
type fakeClient struct {
	responses []string
	errs      []error
	calls     int
}

func (f *fakeClient) GenerateJSON(_ context.Context, _ string, _ llm.ModelTier) (string, error) {
	i := f.calls
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	f.calls++
	if f.errs != nil && f.errs[i] != nil {
		return "", f.errs[i]
	}
	return f.responses[i], nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func TestRemoteEstimate_Success(t *testing.T) {
	client := &fakeClient{responses: []string{`{"score": 0.85, "reasoning": "Strong domain fit"}`}}
	est := NewRemoteEstimator(client)

	got, err := est.Estimate(context.Background(), mentorIn("Technology"), menteeIn("Technology"))
	require.NoError(t, err)
	assert.InDelta(t, 0.85, got.Score, 1e-9)
	assert.Equal(t, "Strong domain fit", got.Reasoning)
	assert.False(t, got.Heuristic)
	assert.Equal(t, 1, client.calls)
}

func TestRemoteEstimate_ClampsOutOfRangeScores(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"above one", `{"score": 1.4, "reasoning": "x"}`, 1.0},
		{"below zero", `{"score": -0.2, "reasoning": "x"}`, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := NewRemoteEstimator(&fakeClient{responses: []string{tt.raw}})
			got, err := est.Estimate(context.Background(), mentorIn(""), menteeIn(""))
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Score, 1e-9)
		})
	}
}

func TestRemoteEstimate_ProtocolViolations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `alignment looks good`},
		{"missing score", `{"reasoning": "no score here"}`},
		{"non-numeric score", `{"score": "high", "reasoning": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{responses: []string{tt.raw}}
			est := NewRemoteEstimator(client)
			_, err := est.Estimate(context.Background(), mentorIn(""), menteeIn(""))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrProtocol)
			assert.Equal(t, 1, client.calls, "protocol violations are not retried")
		})
	}
}

func TestRemoteEstimate_StripsCodeFence(t *testing.T) {
	raw := "```json\n{\"score\": 0.6, \"reasoning\": \"fenced\"}\n```"
	est := NewRemoteEstimator(&fakeClient{responses: []string{raw}})

	got, err := est.Estimate(context.Background(), mentorIn(""), menteeIn(""))
	require.NoError(t, err)
	assert.InDelta(t, 0.6, got.Score, 1e-9)
}

func TestRemoteEstimate_RetriesTransientThenSucceeds(t *testing.T) {
	client := &fakeClient{
		responses: []string{"", `{"score": 0.7, "reasoning": "second try"}`},
		errs:      []error{context.DeadlineExceeded, nil},
	}
	est := NewRemoteEstimator(client, WithMaxRetries(2))

	got, err := est.Estimate(context.Background(), mentorIn(""), menteeIn(""))
	require.NoError(t, err)
	assert.InDelta(t, 0.7, got.Score, 1e-9)
	assert.Equal(t, 2, client.calls)
}

func TestRemoteEstimate_PermanentErrorNotRetried(t *testing.T) {
	permanent := errors.New("API key not valid")
	client := &fakeClient{responses: []string{""}, errs: []error{permanent}}
	est := NewRemoteEstimator(client, WithMaxRetries(3))

	_, err := est.Estimate(context.Background(), mentorIn(""), menteeIn(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, client.calls)
}

func TestRemoteEstimate_ExhaustsRetries(t *testing.T) {
	client := &fakeClient{
		responses: []string{"", "", ""},
		errs:      []error{context.DeadlineExceeded, context.DeadlineExceeded, context.DeadlineExceeded},
	}
	est := NewRemoteEstimator(client, WithMaxRetries(2))

	_, err := est.Estimate(context.Background(), mentorIn(""), menteeIn(""))
	require.Error(t, err)
	assert.Equal(t, 3, client.calls)
}

func TestFallbackEstimate_UsesRemoteWhenHealthy(t *testing.T) {
	remote := NewRemoteEstimator(&fakeClient{responses: []string{`{"score": 0.9, "reasoning": "remote"}`}})
	fb := NewFallbackEstimator(remote, zap.NewNop())

	got, err := fb.Estimate(context.Background(), mentorIn("Technology"), menteeIn("Technology"))
	require.NoError(t, err)
	assert.InDelta(t, 0.9, got.Score, 1e-9)
	assert.False(t, got.Heuristic)
}

func TestFallbackEstimate_HeuristicOnRemoteFailure(t *testing.T) {
	remote := NewRemoteEstimator(&fakeClient{responses: []string{"not json"}})
	fb := NewFallbackEstimator(remote, zap.NewNop())

	got, err := fb.Estimate(context.Background(), mentorIn("Technology"), menteeIn("Technology"))
	require.NoError(t, err)
	assert.True(t, got.Heuristic)
	assert.InDelta(t, 0.5, got.Score, 1e-9)
}

func TestFallbackEstimate_NilRemote(t *testing.T) {
	fb := NewFallbackEstimator(nil, nil)

	got, err := fb.Estimate(context.Background(), mentorIn("Finance"), menteeIn("Finance"))
	require.NoError(t, err)
	assert.True(t, got.Heuristic)
	assert.InDelta(t, 0.5, got.Score, 1e-9)
}

func TestBuildPrompt_IncludesPairContext(t *testing.T) {
	m := mentorIn("Technology", "Interview Prep")
	m.CurrentPosition = "Staff Engineer"
	m.CurrentCompany = "Initech"
	me := menteeIn("Technology", "Interview Prep")
	me.Goals = "Become a backend engineer at a product company"

	prompt := buildPrompt(m, me)
	assert.Contains(t, prompt, "Become a backend engineer")
	assert.Contains(t, prompt, "Staff Engineer at Initech")
	assert.Contains(t, prompt, "Interview Prep")
	assert.Contains(t, prompt, `"score"`)
}
