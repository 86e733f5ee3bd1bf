package goals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"time"

	"github.com/JaiveerRaikhy/beacs/internal/llm"
	"github.com/JaiveerRaikhy/beacs/internal/types"
)

// ErrProtocol indicates the reasoning service answered, but not with the
// agreed {score, reasoning} shape. Protocol violations are never retried.
var ErrProtocol = errors.New("goal alignment response violates protocol")

const (
	defaultTimeout    = 20 * time.Second
	defaultMaxRetries = 2
	retryBackoff      = 500 * time.Millisecond
)

// remoteResponse is the expected JSON payload from the reasoning service.
// Score is a pointer so a missing field is distinguishable from 0.
type remoteResponse struct {
	Score     *float64 `json:"score"`
	Reasoning string   `json:"reasoning"`
}

// RemoteEstimator asks the external reasoning service to judge goal
// alignment. Callers should wrap it in a FallbackEstimator; RemoteEstimator
// itself surfaces failures as errors.
type RemoteEstimator struct {
	client     llm.Client
	tier       llm.ModelTier
	timeout    time.Duration
	maxRetries int
}

// RemoteOption customizes a RemoteEstimator.
type RemoteOption func(*RemoteEstimator)

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) RemoteOption {
	return func(r *RemoteEstimator) { r.timeout = d }
}

// WithMaxRetries bounds how many times a transient failure is retried.
func WithMaxRetries(n int) RemoteOption {
	return func(r *RemoteEstimator) { r.maxRetries = n }
}

// WithTier selects the model tier used for the judgment.
func WithTier(tier llm.ModelTier) RemoteOption {
	return func(r *RemoteEstimator) { r.tier = tier }
}

// NewRemoteEstimator builds a RemoteEstimator over an LLM client.
func NewRemoteEstimator(client llm.Client, opts ...RemoteOption) *RemoteEstimator {
	r := &RemoteEstimator{
		client:     client,
		tier:       llm.TierLite,
		timeout:    defaultTimeout,
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Estimate sends the structured prompt to the reasoning service and parses
// its {score, reasoning} answer, clamping the score to [0,1]. Transient
// transport failures are retried up to the configured bound; malformed or
// protocol-violating answers fail immediately.
func (r *RemoteEstimator) Estimate(ctx context.Context, m *types.Mentor, me *types.Mentee) (types.GoalAlignment, error) {
	prompt := buildPrompt(m, me)

	var lastErr error
	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return types.GoalAlignment{}, ctx.Err()
			case <-time.After(retryBackoff):
			}
		}

		raw, err := r.generate(ctx, prompt)
		if err != nil {
			lastErr = err
			if isTransient(err) && ctx.Err() == nil {
				continue
			}
			return types.GoalAlignment{}, err
		}

		return parseResponse(raw)
	}

	return types.GoalAlignment{}, fmt.Errorf("goal alignment service unavailable after %d attempts: %w", r.maxRetries+1, lastErr)
}

func (r *RemoteEstimator) generate(ctx context.Context, prompt string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	return r.client.GenerateJSON(attemptCtx, prompt, r.tier)
}

// parseResponse validates the service answer. A missing or non-finite score
// is a protocol violation; finite out-of-range scores are clamped.
func parseResponse(raw string) (types.GoalAlignment, error) {
	var resp remoteResponse
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(raw)), &resp); err != nil {
		return types.GoalAlignment{}, fmt.Errorf("%w: %v (content: %s)", ErrProtocol, err, raw)
	}

	if resp.Score == nil || math.IsNaN(*resp.Score) || math.IsInf(*resp.Score, 0) {
		return types.GoalAlignment{}, fmt.Errorf("%w: missing or non-numeric score", ErrProtocol)
	}

	score := *resp.Score
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}

	return types.GoalAlignment{Score: score, Reasoning: resp.Reasoning}, nil
}

// isTransient reports whether an attempt is worth retrying. Timeouts and
// transport-level failures are transient; everything else (bad credential,
// malformed schema) is not.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
