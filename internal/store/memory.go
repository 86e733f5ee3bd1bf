package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/JaiveerRaikhy/beacs/internal/profile"
	"github.com/JaiveerRaikhy/beacs/internal/types"
)

// Memory is an in-process Store backed by maps. It serves tests, the score
// and feed commands, and local development without a database.
type Memory struct {
	mu            sync.RWMutex
	mentors       map[string]types.Mentor
	mentees       map[string]types.Mentee
	matches       map[string]Match
	conversations map[string]Conversation
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		mentors:       make(map[string]types.Mentor),
		mentees:       make(map[string]types.Mentee),
		matches:       make(map[string]Match),
		conversations: make(map[string]Conversation),
	}
}

// snapshot is the on-disk JSON layout for profile data.
type snapshot struct {
	Mentors []types.Mentor `json:"mentors"`
	Mentees []types.Mentee `json:"mentees"`
}

// LoadSnapshot reads a profile snapshot file and populates the store.
// Position histories are normalized on load.
func (m *Memory) LoadSnapshot(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to parse snapshot %s: %w", path, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mentor := range snap.Mentors {
		profile.Normalize(&mentor.Profile)
		m.mentors[mentor.ID] = mentor
	}
	for _, mentee := range snap.Mentees {
		profile.Normalize(&mentee.Profile)
		m.mentees[mentee.ID] = mentee
	}
	return nil
}

// PutMentor inserts or replaces a mentor profile.
func (m *Memory) PutMentor(mentor types.Mentor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile.Normalize(&mentor.Profile)
	m.mentors[mentor.ID] = mentor
}

// PutMentee inserts or replaces a mentee profile.
func (m *Memory) PutMentee(mentee types.Mentee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile.Normalize(&mentee.Profile)
	m.mentees[mentee.ID] = mentee
}

// GetMentor returns a mentor by ID.
func (m *Memory) GetMentor(_ context.Context, id string) (*types.Mentor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mentor, ok := m.mentors[id]
	if !ok {
		return nil, NewNotFoundError("mentor", id)
	}
	return &mentor, nil
}

// GetMentee returns a mentee by ID.
func (m *Memory) GetMentee(_ context.Context, id string) (*types.Mentee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mentee, ok := m.mentees[id]
	if !ok {
		return nil, NewNotFoundError("mentee", id)
	}
	return &mentee, nil
}

// ListMentors returns all mentors ordered by ID.
func (m *Memory) ListMentors(_ context.Context) ([]types.Mentor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Mentor, 0, len(m.mentors))
	for _, mentor := range m.mentors {
		out = append(out, mentor)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListMentees returns all mentees ordered by ID.
func (m *Memory) ListMentees(_ context.Context) ([]types.Mentee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Mentee, 0, len(m.mentees))
	for _, mentee := range m.mentees {
		out = append(out, mentee)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateMatch records a pending connection request. Both profiles must
// exist.
func (m *Memory) CreateMatch(ctx context.Context, menteeID, mentorID string, bilateralScore float64) (*Match, error) {
	if _, err := m.GetMentee(ctx, menteeID); err != nil {
		return nil, err
	}
	if _, err := m.GetMentor(ctx, mentorID); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	match := Match{
		ID:             uuid.NewString(),
		MenteeID:       menteeID,
		MentorID:       mentorID,
		Status:         StatusPending,
		BilateralScore: bilateralScore,
		CreatedAt:      time.Now().UTC(),
	}
	m.matches[match.ID] = match
	return &match, nil
}

// GetMatch returns a match by ID.
func (m *Memory) GetMatch(_ context.Context, id string) (*Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	match, ok := m.matches[id]
	if !ok {
		return nil, NewNotFoundError("match", id)
	}
	return &match, nil
}

// RespondToMatch resolves a pending match to accepted or rejected.
func (m *Memory) RespondToMatch(_ context.Context, id, status string) (*Match, error) {
	if status != StatusAccepted && status != StatusRejected {
		return nil, fmt.Errorf("invalid match status %q", status)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.matches[id]
	if !ok {
		return nil, NewNotFoundError("match", id)
	}
	if match.Status != StatusPending {
		return nil, fmt.Errorf("match %s already resolved to %s", id, match.Status)
	}
	match.Status = status
	match.RespondedAt = time.Now().UTC()
	m.matches[id] = match
	return &match, nil
}

// ListMatchesByMentee returns a mentee's matches, newest first.
func (m *Memory) ListMatchesByMentee(_ context.Context, menteeID string) ([]Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Match
	for _, match := range m.matches {
		if match.MenteeID == menteeID {
			out = append(out, match)
		}
	}
	sortMatches(out)
	return out, nil
}

// ListMatchesByMentor returns a mentor's matches, newest first.
func (m *Memory) ListMatchesByMentor(_ context.Context, mentorID string) ([]Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Match
	for _, match := range m.matches {
		if match.MentorID == mentorID {
			out = append(out, match)
		}
	}
	sortMatches(out)
	return out, nil
}

// CreateConversation opens a conversation for an accepted match.
func (m *Memory) CreateConversation(_ context.Context, match *Match) (*Conversation, error) {
	if match.Status != StatusAccepted {
		return nil, fmt.Errorf("cannot open conversation for %s match %s", match.Status, match.ID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	conv := Conversation{
		ID:        uuid.NewString(),
		MatchID:   match.ID,
		MenteeID:  match.MenteeID,
		MentorID:  match.MentorID,
		CreatedAt: time.Now().UTC(),
	}
	m.conversations[conv.ID] = conv
	return &conv, nil
}

func sortMatches(matches []Match) {
	sort.Slice(matches, func(i, j int) bool {
		if !matches[i].CreatedAt.Equal(matches[j].CreatedAt) {
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		}
		return matches[i].ID < matches[j].ID
	})
}
