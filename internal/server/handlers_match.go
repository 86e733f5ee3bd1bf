package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/JaiveerRaikhy/beacs/internal/feed"
	"github.com/JaiveerRaikhy/beacs/internal/server/middleware"
	"github.com/JaiveerRaikhy/beacs/internal/store"
	"github.com/JaiveerRaikhy/beacs/internal/types"
)

// MatchRequest asks for a ranked candidate feed for a mentor.
type MatchRequest struct {
	MentorID string `json:"mentor_id" validate:"required"`
}

// MatchFeedResponse carries the ranked feed.
type MatchFeedResponse struct {
	Feed []types.FeedItem `json:"feed"`
}

// ConnectRequest creates a pending connection request to a mentee.
type ConnectRequest struct {
	MentorID       string  `json:"mentor_id" validate:"required"`
	MenteeID       string  `json:"mentee_id" validate:"required"`
	BilateralScore float64 `json:"bilateral_score,omitempty"`
}

// RespondRequest resolves a pending match.
type RespondRequest struct {
	MatchID  string `json:"match_id" validate:"required"`
	Response string `json:"response" validate:"required,oneof=accepted declined"`
}

// MatchSummary is one row in the sent/received listings, with the
// counterparty's display fields attached.
type MatchSummary struct {
	ID             string    `json:"id"`
	MentorID       string    `json:"mentor_id,omitempty"`
	MenteeID       string    `json:"mentee_id,omitempty"`
	Status         string    `json:"status"`
	BilateralScore float64   `json:"bilateral_score"`
	CreatedAt      time.Time `json:"created_at"`

	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Company  string `json:"company,omitempty"`
	Industry string `json:"industry,omitempty"`
	Location string `json:"location,omitempty"`
}

func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		s.writeError(w, &ErrValidation{Field: "body", Message: err.Error()})
		return false
	}
	if err := s.validator.Struct(req); err != nil {
		verr := &ErrValidation{Field: "body", Message: err.Error()}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			verr.Field = fieldErrs[0].Field()
			verr.Message = "failed on the '" + fieldErrs[0].Tag() + "' rule"
		}
		s.writeError(w, verr)
		return false
	}
	return true
}

func (s *Server) authedUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return "", false
	}
	return userID, true
}

// handleMatch builds the ranked feed for a mentor, excluding mentees the
// mentor already has a match row with.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	var req MatchRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if req.MentorID != userID {
		s.writeError(w, &ErrNotAuthorized{})
		return
	}

	existing, err := s.store.ListMatchesByMentor(r.Context(), req.MentorID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	excluded := make([]string, 0, len(existing))
	for _, m := range existing {
		excluded = append(excluded, m.MenteeID)
	}

	items, err := s.generator.GenerateFeed(r.Context(), req.MentorID, feed.FeedOptions{
		Size:         s.feedSize,
		MinBilateral: s.minBilateral,
		Excluded:     excluded,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	if items == nil {
		items = []types.FeedItem{}
	}

	s.jsonResponse(w, http.StatusOK, MatchFeedResponse{Feed: items})
}

// handleConnect records a pending connection request from a mentor to a
// mentee.
func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	var req ConnectRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	if req.MentorID != userID {
		s.writeError(w, &ErrNotAuthorized{})
		return
	}

	match, err := s.store.CreateMatch(r.Context(), req.MenteeID, req.MentorID, req.BilateralScore)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("connection request created",
		zap.String("match_id", match.ID),
		zap.String("mentor_id", req.MentorID),
		zap.String("mentee_id", req.MenteeID),
	)
	s.jsonResponse(w, http.StatusOK, map[string]any{"ok": true, "match_id": match.ID})
}

// handleRespond resolves a pending match. When the response is an
// acceptance, a conversation is opened and its ID returned.
func (s *Server) handleRespond(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	var req RespondRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}

	match, err := s.store.GetMatch(r.Context(), req.MatchID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if userID != match.MentorID && userID != match.MenteeID {
		s.writeError(w, &ErrNotAuthorized{})
		return
	}

	status := store.StatusAccepted
	if req.Response == "declined" {
		status = store.StatusRejected
	}

	resolved, err := s.store.RespondToMatch(r.Context(), req.MatchID, status)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if resolved.Status == store.StatusAccepted {
		conv, err := s.store.CreateConversation(r.Context(), resolved)
		if err != nil {
			s.writeError(w, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, map[string]any{"ok": true, "conversation_id": conv.ID})
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"ok": true})
}

// handleMatchesSent lists the authenticated mentor's outgoing requests.
func (s *Server) handleMatchesSent(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	matches, err := s.store.ListMatchesByMentor(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		summary := MatchSummary{
			ID:             m.ID,
			MenteeID:       m.MenteeID,
			Status:         m.Status,
			BilateralScore: m.BilateralScore,
			CreatedAt:      m.CreatedAt,
			Name:           "Unknown",
		}
		if mentee, err := s.store.GetMentee(r.Context(), m.MenteeID); err == nil {
			summary.Name = mentee.Name
			summary.Position = mentee.CurrentPosition
			summary.Company = mentee.CurrentCompany
		}
		out = append(out, summary)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"matches": out})
}

// handleMatchesReceived lists requests sent to the authenticated mentee.
func (s *Server) handleMatchesReceived(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.authedUser(w, r)
	if !ok {
		return
	}

	matches, err := s.store.ListMatchesByMentee(r.Context(), userID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]MatchSummary, 0, len(matches))
	for _, m := range matches {
		summary := MatchSummary{
			ID:             m.ID,
			MentorID:       m.MentorID,
			Status:         m.Status,
			BilateralScore: m.BilateralScore,
			CreatedAt:      m.CreatedAt,
			Name:           "Unknown",
		}
		if mentor, err := s.store.GetMentor(r.Context(), m.MentorID); err == nil {
			summary.Name = mentor.Name
			summary.Position = mentor.CurrentPosition
			summary.Company = mentor.CurrentCompany
			summary.Industry = mentor.CurrentIndustry
			summary.Location = mentor.Location
		}
		out = append(out, summary)
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"matches": out})
}
