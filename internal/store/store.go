// Package store provides profile and match persistence behind small
// interfaces, with PostgreSQL and in-memory implementations.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/JaiveerRaikhy/beacs/internal/types"
)

// Match statuses as stored. A match starts pending and is resolved by the
// mentor responding.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// NotFoundError reports a missing profile or match by kind and ID.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}

// NewNotFoundError builds a NotFoundError for the given entity kind.
func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{Kind: kind, ID: id}
}

// Match is one connection request from a mentee to a mentor.
type Match struct {
	ID             string    `json:"id"`
	MenteeID       string    `json:"mentee_id"`
	MentorID       string    `json:"mentor_id"`
	Status         string    `json:"status"`
	BilateralScore float64   `json:"bilateral_score"`
	CreatedAt      time.Time `json:"created_at"`
	RespondedAt    time.Time `json:"responded_at,omitempty"`
}

// Conversation is created when a match is mutually accepted.
type Conversation struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	MenteeID  string    `json:"mentee_id"`
	MentorID  string    `json:"mentor_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileStore provides read access to mentor and mentee profiles.
type ProfileStore interface {
	GetMentor(ctx context.Context, id string) (*types.Mentor, error)
	GetMentee(ctx context.Context, id string) (*types.Mentee, error)
	ListMentors(ctx context.Context) ([]types.Mentor, error)
	ListMentees(ctx context.Context) ([]types.Mentee, error)
}

// MatchStore persists connection requests and their outcomes.
type MatchStore interface {
	CreateMatch(ctx context.Context, menteeID, mentorID string, bilateralScore float64) (*Match, error)
	GetMatch(ctx context.Context, id string) (*Match, error)
	RespondToMatch(ctx context.Context, id, status string) (*Match, error)
	ListMatchesByMentee(ctx context.Context, menteeID string) ([]Match, error)
	ListMatchesByMentor(ctx context.Context, mentorID string) ([]Match, error)
	CreateConversation(ctx context.Context, match *Match) (*Conversation, error)
}

// Store combines profile and match persistence.
type Store interface {
	ProfileStore
	MatchStore
}
