// Package goals estimates how well a mentor's background fits a mentee's
// stated career goal. The primary implementation asks an external reasoning
// service; a deterministic heuristic stands in whenever that service cannot
// produce a usable answer.
package goals

import (
	"context"

	"go.uber.org/zap"

	"github.com/JaiveerRaikhy/beacs/internal/types"
)

// Estimator scores goal alignment for a mentor-mentee pair. Implementations
// return scores in [0,1].
type Estimator interface {
	Estimate(ctx context.Context, m *types.Mentor, me *types.Mentee) (types.GoalAlignment, error)
}

// FallbackEstimator composes a remote estimator with the deterministic
// heuristic. Every failure class of the remote side (timeout, transport,
// auth, malformed payload, protocol violation) resolves to the heuristic
// result; Estimate never returns an error.
type FallbackEstimator struct {
	remote    Estimator
	heuristic HeuristicEstimator
	logger    *zap.Logger
}

// NewFallbackEstimator wraps remote with the heuristic fallback. remote may
// be nil, in which case every estimate is heuristic (e.g. no API key
// configured). logger may be nil.
func NewFallbackEstimator(remote Estimator, logger *zap.Logger) *FallbackEstimator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FallbackEstimator{remote: remote, logger: logger}
}

// Estimate returns the remote result when available and the heuristic
// result otherwise. The returned error is always nil; the signature keeps
// FallbackEstimator usable anywhere an Estimator is expected.
func (f *FallbackEstimator) Estimate(ctx context.Context, m *types.Mentor, me *types.Mentee) (types.GoalAlignment, error) {
	if f.remote != nil {
		result, err := f.remote.Estimate(ctx, m, me)
		if err == nil {
			return result, nil
		}
		f.logger.Warn("goal alignment service failed, using heuristic",
			zap.String("mentor_id", m.ID),
			zap.String("mentee_id", me.ID),
			zap.Error(err),
		)
	}
	return f.heuristic.Estimate(ctx, m, me)
}
