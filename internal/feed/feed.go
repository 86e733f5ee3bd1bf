// Package feed orchestrates pair scoring across the profile store and
// assembles ranked candidate feeds for mentors.
package feed

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JaiveerRaikhy/beacs/internal/goals"
	"github.com/JaiveerRaikhy/beacs/internal/matching"
	"github.com/JaiveerRaikhy/beacs/internal/profile"
	"github.com/JaiveerRaikhy/beacs/internal/store"
	"github.com/JaiveerRaikhy/beacs/internal/types"
)

// Defaults for feed assembly and threshold filtering.
const (
	DefaultFeedSize     = 5
	DefaultMinBilateral = 50.0
	DefaultMinMentor    = 60.0
	DefaultMinMentee    = 50.0
	DefaultMinPair      = 55.0

	defaultWorkers = 4
)

// Generator resolves profile IDs through the store and scores candidates,
// attaching goal alignment estimates where requested.
type Generator struct {
	profiles  store.ProfileStore
	engine    *matching.Engine
	estimator goals.Estimator
	workers   int
	logger    *zap.Logger
}

// Option customizes a Generator.
type Option func(*Generator)

// WithWorkers bounds how many candidates are scored concurrently.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.workers = n
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGenerator builds a Generator. estimator may be nil, in which case the
// deterministic heuristic is used for every goal estimate.
func NewGenerator(profiles store.ProfileStore, engine *matching.Engine, estimator goals.Estimator, opts ...Option) *Generator {
	if engine == nil {
		engine = matching.NewEngine(matching.Config{})
	}
	if estimator == nil {
		estimator = goals.NewFallbackEstimator(nil, nil)
	}
	g := &Generator{
		profiles:  profiles,
		engine:    engine,
		estimator: estimator,
		workers:   defaultWorkers,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// ScorePair scores one pair by ID without the goal alignment factor.
func (g *Generator) ScorePair(ctx context.Context, mentorID, menteeID string) (types.PairScore, error) {
	mentor, mentee, err := g.resolvePair(ctx, mentorID, menteeID)
	if err != nil {
		return types.PairScore{}, err
	}
	return g.engine.ScorePair(mentor, mentee), nil
}

// ScorePairWithGoals scores one pair by ID with the goal alignment factor
// included on both perspectives.
func (g *Generator) ScorePairWithGoals(ctx context.Context, mentorID, menteeID string) (types.PairScore, error) {
	mentor, mentee, err := g.resolvePair(ctx, mentorID, menteeID)
	if err != nil {
		return types.PairScore{}, err
	}

	goal, err := g.estimator.Estimate(ctx, mentor, mentee)
	if err != nil {
		return types.PairScore{}, fmt.Errorf("goal alignment for pair %s/%s: %w", mentorID, menteeID, err)
	}
	return g.engine.ScorePairWithGoal(mentor, mentee, goal), nil
}

func (g *Generator) resolvePair(ctx context.Context, mentorID, menteeID string) (*types.Mentor, *types.Mentee, error) {
	mentor, err := g.profiles.GetMentor(ctx, mentorID)
	if err != nil {
		return nil, nil, err
	}
	mentee, err := g.profiles.GetMentee(ctx, menteeID)
	if err != nil {
		return nil, nil, err
	}
	return mentor, mentee, nil
}

// FeedOptions control feed assembly. Zero values fall back to defaults;
// Excluded lists mentee IDs to skip (typically already-connected ones).
type FeedOptions struct {
	Size         int
	MinBilateral float64
	Excluded     []string
}

// GenerateFeed scores every non-excluded mentee against the mentor, with
// goal alignment, and returns the top candidates ordered by bilateral score
// descending (ties broken by mentee ID). Candidates below the bilateral
// floor and ineligible pairs are dropped. Context cancellation aborts the
// remaining work and returns the error; a partial feed is never returned as
// if it were complete.
func (g *Generator) GenerateFeed(ctx context.Context, mentorID string, opts FeedOptions) ([]types.FeedItem, error) {
	if opts.Size <= 0 {
		opts.Size = DefaultFeedSize
	}
	if opts.MinBilateral <= 0 {
		opts.MinBilateral = DefaultMinBilateral
	}

	mentor, err := g.profiles.GetMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	mentees, err := g.profiles.ListMentees(ctx)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(opts.Excluded))
	for _, id := range opts.Excluded {
		excluded[id] = true
	}

	var (
		mu    sync.Mutex
		items []types.FeedItem
	)

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for _, mentee := range mentees {
		if excluded[mentee.ID] {
			continue
		}
		eg.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			goal, err := g.estimator.Estimate(gCtx, mentor, &mentee)
			if err != nil {
				return fmt.Errorf("goal alignment for mentee %s: %w", mentee.ID, err)
			}

			score := g.engine.ScorePairWithGoal(mentor, &mentee, goal)
			if !score.Eligible {
				g.logger.Debug("candidate ineligible",
					zap.String("mentor_id", mentorID),
					zap.String("mentee_id", mentee.ID),
					zap.String("reason", score.IneligibleReason),
				)
				return nil
			}
			if score.BilateralScore < opts.MinBilateral {
				return nil
			}

			item := buildFeedItem(&mentee, score)
			mu.Lock()
			items = append(items, item)
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	sortFeed(items)
	if len(items) > opts.Size {
		items = items[:opts.Size]
	}
	if len(items) > 0 {
		items[0].BestPick = true
	}

	g.logger.Info("feed generated",
		zap.String("mentor_id", mentorID),
		zap.Int("candidates", len(mentees)),
		zap.Int("feed_size", len(items)),
	)
	return items, nil
}

// Thresholds are per-perspective floors for FilterByThresholds. Zero values
// fall back to the defaults.
type Thresholds struct {
	MinMentor    float64
	MinMentee    float64
	MinBilateral float64
}

// ScoredCandidate pairs a mentee ID with its scores for threshold filtering.
type ScoredCandidate struct {
	MenteeID              string          `json:"mentee_id"`
	Score                 types.PairScore `json:"score"`
	AcceptanceProbability float64         `json:"acceptance_probability"`
}

// FilterByThresholds scores the given mentees against the mentor without
// goal alignment and keeps only pairs clearing all three floors. Results are
// ordered by bilateral score descending, mentee ID ascending; there is no
// truncation and no best-pick flag.
func (g *Generator) FilterByThresholds(ctx context.Context, mentorID string, menteeIDs []string, th Thresholds) ([]ScoredCandidate, error) {
	if th.MinMentor <= 0 {
		th.MinMentor = DefaultMinMentor
	}
	if th.MinMentee <= 0 {
		th.MinMentee = DefaultMinMentee
	}
	if th.MinBilateral <= 0 {
		th.MinBilateral = DefaultMinPair
	}

	mentor, err := g.profiles.GetMentor(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	var out []ScoredCandidate
	for _, id := range menteeIDs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		mentee, err := g.profiles.GetMentee(ctx, id)
		if err != nil {
			return nil, err
		}

		score := g.engine.ScorePair(mentor, mentee)
		if !score.Eligible {
			continue
		}
		if score.MentorScore < th.MinMentor || score.MenteeScore < th.MinMentee || score.BilateralScore < th.MinBilateral {
			continue
		}
		out = append(out, ScoredCandidate{
			MenteeID:              mentee.ID,
			Score:                 score,
			AcceptanceProbability: matching.AcceptanceProbability(score.MenteeScore),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score.BilateralScore != out[j].Score.BilateralScore {
			return out[i].Score.BilateralScore > out[j].Score.BilateralScore
		}
		return out[i].MenteeID < out[j].MenteeID
	})
	return out, nil
}

func sortFeed(items []types.FeedItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].BilateralScore != items[j].BilateralScore {
			return items[i].BilateralScore > items[j].BilateralScore
		}
		return items[i].MenteeID < items[j].MenteeID
	})
}

// buildFeedItem denormalizes a mentee profile for display, keeping the
// first two positions in profile order.
func buildFeedItem(mentee *types.Mentee, score types.PairScore) types.FeedItem {
	university := profile.MenteeAlmaMater(mentee)
	if university == "" {
		university = "Unknown"
	}
	location := mentee.Location
	if location == "" {
		location = "Unknown"
	}

	positions := mentee.PastPositions
	if len(positions) > 2 {
		positions = positions[:2]
	}

	item := types.FeedItem{
		MenteeID:             mentee.ID,
		Name:                 mentee.Name,
		University:           university,
		Location:             location,
		GPA:                  mentee.GPA,
		CurrentPosition:      mentee.CurrentPosition,
		CurrentCompany:       mentee.CurrentCompany,
		CurrentIndustry:      mentee.CurrentIndustry,
		TotalExperienceYears: profile.TotalExperience(mentee.PastPositions),
		PastPositions:        positions,
		HelpSeeking:          mentee.Needs,
		Goals:                mentee.Goals,
		MoreInfo:             mentee.MoreInfo,

		BilateralScore:        score.BilateralScore,
		MentorScore:           score.MentorScore,
		MenteeScore:           score.MenteeScore,
		AcceptanceProbability: matching.AcceptanceProbability(score.MenteeScore),
	}
	if score.GoalAlignment != nil {
		item.GoalAlignmentScore = score.GoalAlignment.Score
		item.GoalReasoning = score.GoalAlignment.Reasoning
	}
	return item
}
