package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JaiveerRaikhy/beacs/internal/profile"
	"github.com/JaiveerRaikhy/beacs/internal/types"
)

// Profiles are stored as jsonb documents keyed by ID; matches and
// conversations are relational rows.
const schema = `
CREATE TABLE IF NOT EXISTS mentors (
	id TEXT PRIMARY KEY,
	data JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS mentees (
	id TEXT PRIMARY KEY,
	data JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS matches (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	mentee_id TEXT NOT NULL REFERENCES mentees(id),
	mentor_id TEXT NOT NULL REFERENCES mentors(id),
	status TEXT NOT NULL DEFAULT 'pending',
	bilateral_score DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	responded_at TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS conversations (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	match_id UUID NOT NULL REFERENCES matches(id),
	mentee_id TEXT NOT NULL,
	mentor_id TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_matches_mentee ON matches(mentee_id);
CREATE INDEX IF NOT EXISTS idx_matches_mentor ON matches(mentor_id);
`

// Postgres is a Store backed by a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool and verifies it.
func Connect(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// EnsureSchema creates the tables if they do not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// SaveMentor upserts a mentor profile document.
func (p *Postgres) SaveMentor(ctx context.Context, mentor *types.Mentor) error {
	data, err := json.Marshal(mentor)
	if err != nil {
		return fmt.Errorf("failed to marshal mentor %s: %w", mentor.ID, err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO mentors (id, data) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET data = $2, updated_at = NOW()`,
		mentor.ID, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save mentor %s: %w", mentor.ID, err)
	}
	return nil
}

// SaveMentee upserts a mentee profile document.
func (p *Postgres) SaveMentee(ctx context.Context, mentee *types.Mentee) error {
	data, err := json.Marshal(mentee)
	if err != nil {
		return fmt.Errorf("failed to marshal mentee %s: %w", mentee.ID, err)
	}
	_, err = p.pool.Exec(ctx,
		`INSERT INTO mentees (id, data) VALUES ($1, $2)
		 ON CONFLICT (id) DO UPDATE SET data = $2, updated_at = NOW()`,
		mentee.ID, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save mentee %s: %w", mentee.ID, err)
	}
	return nil
}

// GetMentor loads a mentor profile by ID.
func (p *Postgres) GetMentor(ctx context.Context, id string) (*types.Mentor, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, `SELECT data FROM mentors WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NewNotFoundError("mentor", id)
		}
		return nil, fmt.Errorf("failed to get mentor %s: %w", id, err)
	}

	var mentor types.Mentor
	if err := json.Unmarshal(data, &mentor); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mentor %s: %w", id, err)
	}
	profile.Normalize(&mentor.Profile)
	return &mentor, nil
}

// GetMentee loads a mentee profile by ID.
func (p *Postgres) GetMentee(ctx context.Context, id string) (*types.Mentee, error) {
	var data []byte
	err := p.pool.QueryRow(ctx, `SELECT data FROM mentees WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NewNotFoundError("mentee", id)
		}
		return nil, fmt.Errorf("failed to get mentee %s: %w", id, err)
	}

	var mentee types.Mentee
	if err := json.Unmarshal(data, &mentee); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mentee %s: %w", id, err)
	}
	profile.Normalize(&mentee.Profile)
	return &mentee, nil
}

// ListMentors loads all mentor profiles ordered by ID.
func (p *Postgres) ListMentors(ctx context.Context) ([]types.Mentor, error) {
	rows, err := p.pool.Query(ctx, `SELECT data FROM mentors ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}
	defer rows.Close()

	var out []types.Mentor
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan mentor row: %w", err)
		}
		var mentor types.Mentor
		if err := json.Unmarshal(data, &mentor); err != nil {
			return nil, fmt.Errorf("failed to unmarshal mentor row: %w", err)
		}
		profile.Normalize(&mentor.Profile)
		out = append(out, mentor)
	}
	return out, rows.Err()
}

// ListMentees loads all mentee profiles ordered by ID.
func (p *Postgres) ListMentees(ctx context.Context) ([]types.Mentee, error) {
	rows, err := p.pool.Query(ctx, `SELECT data FROM mentees ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentees: %w", err)
	}
	defer rows.Close()

	var out []types.Mentee
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan mentee row: %w", err)
		}
		var mentee types.Mentee
		if err := json.Unmarshal(data, &mentee); err != nil {
			return nil, fmt.Errorf("failed to unmarshal mentee row: %w", err)
		}
		profile.Normalize(&mentee.Profile)
		out = append(out, mentee)
	}
	return out, rows.Err()
}

// CreateMatch inserts a pending connection request.
func (p *Postgres) CreateMatch(ctx context.Context, menteeID, mentorID string, bilateralScore float64) (*Match, error) {
	var match Match
	err := p.pool.QueryRow(ctx,
		`INSERT INTO matches (mentee_id, mentor_id, status, bilateral_score)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, mentee_id, mentor_id, status, bilateral_score, created_at`,
		menteeID, mentorID, StatusPending, bilateralScore,
	).Scan(&match.ID, &match.MenteeID, &match.MentorID, &match.Status, &match.BilateralScore, &match.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return &match, nil
}

// GetMatch loads a match by ID.
func (p *Postgres) GetMatch(ctx context.Context, id string) (*Match, error) {
	var match Match
	err := p.pool.QueryRow(ctx,
		`SELECT id, mentee_id, mentor_id, status, bilateral_score, created_at,
		        COALESCE(responded_at, 'epoch'::timestamptz)
		 FROM matches WHERE id = $1`,
		id,
	).Scan(&match.ID, &match.MenteeID, &match.MentorID, &match.Status,
		&match.BilateralScore, &match.CreatedAt, &match.RespondedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NewNotFoundError("match", id)
		}
		return nil, fmt.Errorf("failed to get match %s: %w", id, err)
	}
	return &match, nil
}

// RespondToMatch resolves a pending match to accepted or rejected.
func (p *Postgres) RespondToMatch(ctx context.Context, id, status string) (*Match, error) {
	if status != StatusAccepted && status != StatusRejected {
		return nil, fmt.Errorf("invalid match status %q", status)
	}

	var match Match
	err := p.pool.QueryRow(ctx,
		`UPDATE matches SET status = $1, responded_at = NOW()
		 WHERE id = $2 AND status = $3
		 RETURNING id, mentee_id, mentor_id, status, bilateral_score, created_at, responded_at`,
		status, id, StatusPending,
	).Scan(&match.ID, &match.MenteeID, &match.MentorID, &match.Status,
		&match.BilateralScore, &match.CreatedAt, &match.RespondedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, NewNotFoundError("pending match", id)
		}
		return nil, fmt.Errorf("failed to respond to match %s: %w", id, err)
	}
	return &match, nil
}

// ListMatchesByMentee returns a mentee's matches, newest first.
func (p *Postgres) ListMatchesByMentee(ctx context.Context, menteeID string) ([]Match, error) {
	return p.listMatches(ctx, `mentee_id`, menteeID)
}

// ListMatchesByMentor returns a mentor's matches, newest first.
func (p *Postgres) ListMatchesByMentor(ctx context.Context, mentorID string) ([]Match, error) {
	return p.listMatches(ctx, `mentor_id`, mentorID)
}

func (p *Postgres) listMatches(ctx context.Context, column, id string) ([]Match, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, mentee_id, mentor_id, status, bilateral_score, created_at,
		        COALESCE(responded_at, 'epoch'::timestamptz)
		 FROM matches WHERE `+column+` = $1
		 ORDER BY created_at DESC, id`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var out []Match
	for rows.Next() {
		var match Match
		if err := rows.Scan(&match.ID, &match.MenteeID, &match.MentorID, &match.Status,
			&match.BilateralScore, &match.CreatedAt, &match.RespondedAt); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		out = append(out, match)
	}
	return out, rows.Err()
}

// CreateConversation opens a conversation for an accepted match.
func (p *Postgres) CreateConversation(ctx context.Context, match *Match) (*Conversation, error) {
	if match.Status != StatusAccepted {
		return nil, fmt.Errorf("cannot open conversation for %s match %s", match.Status, match.ID)
	}

	var conv Conversation
	err := p.pool.QueryRow(ctx,
		`INSERT INTO conversations (match_id, mentee_id, mentor_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, match_id, mentee_id, mentor_id, created_at`,
		match.ID, match.MenteeID, match.MentorID,
	).Scan(&conv.ID, &conv.MatchID, &conv.MenteeID, &conv.MentorID, &conv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return &conv, nil
}
