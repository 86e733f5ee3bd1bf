package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JaiveerRaikhy/beacs/internal/feed"
	"github.com/JaiveerRaikhy/beacs/internal/goals"
	"github.com/JaiveerRaikhy/beacs/internal/matching"
	"github.com/JaiveerRaikhy/beacs/internal/store"
	"github.com/JaiveerRaikhy/beacs/internal/types"
)

func testMentor(id string) types.Mentor {
	return types.Mentor{
		Profile: types.Profile{
			ID:              id,
			Name:            "Mentor " + id,
			CurrentPosition: "Engineering Manager",
			CurrentCompany:  "BigCo",
			CurrentIndustry: "Technology",
			Location:        "Austin, TX",
			PastPositions: []types.PastPosition{
				{Title: "BS Computer Science", Company: "University of Texas", OrderIndex: 0},
				{Title: "Engineer", Company: "BigCo", Duration: "10 years", OrderIndex: 1},
			},
		},
		HelpOffered: types.HelpOffering{Tags: []string{"Resume Review", "Interview Prep"}},
		Preferences: types.Preferences{
			Location: 3, University: 2, IndustryAlignment: 1, HelpType: 2, PathAlignment: 4,
		},
	}
}

func testMentee(id string) types.Mentee {
	return types.Mentee{
		Profile: types.Profile{
			ID:              id,
			Name:            "Mentee " + id,
			CurrentPosition: "Junior Developer",
			CurrentIndustry: "Technology",
			Location:        "Austin, TX",
			PastPositions: []types.PastPosition{
				{Title: "BS Computer Science", Company: "University of Texas", OrderIndex: 0},
				{Title: "Developer", Company: "Startup", Duration: "2 years", OrderIndex: 1},
			},
		},
		Needs: []string{"Resume Review"},
		Goals: "Grow into a senior engineering role.",
	}
}

func newTestServer(t *testing.T) (*Server, *store.Memory) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	mem := store.NewMemory()
	mem.PutMentor(testMentor("mentor-1"))
	for i := 1; i <= 3; i++ {
		mem.PutMentee(testMentee(fmt.Sprintf("mentee-%d", i)))
	}

	gen := feed.NewGenerator(mem, matching.NewEngine(matching.Config{}), goals.NewFallbackEstimator(nil, nil))
	srv, err := New(Config{Addr: ":0"}, mem, gen, zap.NewNop())
	require.NoError(t, err)
	return srv, mem
}

func doRequest(t *testing.T, srv *Server, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		token, err := srv.jwtService.GenerateToken(userID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestHandleMatch(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/match", "mentor-1",
		MatchRequest{MentorID: "mentor-1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchFeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Feed, 3)
	assert.True(t, resp.Feed[0].BestPick)
	assert.NotEmpty(t, resp.Feed[0].GoalReasoning)
}

func TestHandleMatch_ExcludesExistingMatches(t *testing.T) {
	srv, mem := newTestServer(t)
	_, err := mem.CreateMatch(context.Background(), "mentee-1", "mentor-1", 70)
	require.NoError(t, err)

	rec := doRequest(t, srv, http.MethodPost, "/api/match", "mentor-1",
		MatchRequest{MentorID: "mentor-1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp MatchFeedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	for _, item := range resp.Feed {
		assert.NotEqual(t, "mentee-1", item.MenteeID)
	}
}

func TestHandleMatch_AuthChecks(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("no token", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/match", "",
			MatchRequest{MentorID: "mentor-1"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("mismatched mentor", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/match", "mentor-2",
			MatchRequest{MentorID: "mentor-1"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing mentor_id", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/match", "mentor-1",
			MatchRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleMatch_UnknownMentor(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/api/match", "mentor-404",
		MatchRequest{MentorID: "mentor-404"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleConnect(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doRequest(t, srv, http.MethodPost, "/api/match/connect", "mentor-1",
		ConnectRequest{MentorID: "mentor-1", MenteeID: "mentee-1", BilateralScore: 72.5})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["ok"])
	assert.NotEmpty(t, resp["match_id"])
}

func TestHandleConnect_ForeignMentor(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := doRequest(t, srv, http.MethodPost, "/api/match/connect", "mentee-1",
		ConnectRequest{MentorID: "mentor-1", MenteeID: "mentee-1"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleRespond_AcceptCreatesConversation(t *testing.T) {
	srv, mem := newTestServer(t)
	match, err := mem.CreateMatch(context.Background(), "mentee-1", "mentor-1", 70)
	require.NoError(t, err)

	rec := doRequest(t, srv, http.MethodPost, "/api/match/respond", "mentee-1",
		RespondRequest{MatchID: match.ID, Response: "accepted"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["ok"])
	assert.NotEmpty(t, resp["conversation_id"])

	got, err := mem.GetMatch(context.Background(), match.ID)
	require.NoError(t, err)
	assert.Equal(t, store.StatusAccepted, got.Status)
}

func TestHandleRespond_Decline(t *testing.T) {
	srv, mem := newTestServer(t)
	match, err := mem.CreateMatch(context.Background(), "mentee-1", "mentor-1", 70)
	require.NoError(t, err)

	rec := doRequest(t, srv, http.MethodPost, "/api/match/respond", "mentee-1",
		RespondRequest{MatchID: match.ID, Response: "declined"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp["conversation_id"])

	got, err := mem.GetMatch(context.Background(), match.ID)
	require.NoError(t, err)
	assert.Equal(t, store.StatusRejected, got.Status)
}

func TestHandleRespond_Errors(t *testing.T) {
	srv, mem := newTestServer(t)
	match, err := mem.CreateMatch(context.Background(), "mentee-1", "mentor-1", 70)
	require.NoError(t, err)

	t.Run("third party", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/match/respond", "mentee-2",
			RespondRequest{MatchID: match.ID, Response: "accepted"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("bad response value", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/match/respond", "mentee-1",
			RespondRequest{MatchID: match.ID, Response: "maybe"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown match", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodPost, "/api/match/respond", "mentee-1",
			RespondRequest{MatchID: "11111111-1111-1111-1111-111111111111", Response: "accepted"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestHandleMatchesSentAndReceived(t *testing.T) {
	srv, mem := newTestServer(t)
	_, err := mem.CreateMatch(context.Background(), "mentee-1", "mentor-1", 70)
	require.NoError(t, err)
	_, err = mem.CreateMatch(context.Background(), "mentee-2", "mentor-1", 65)
	require.NoError(t, err)

	t.Run("sent", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/matches/sent", "mentor-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Matches []MatchSummary `json:"matches"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Matches, 2)
		for _, m := range resp.Matches {
			assert.NotEmpty(t, m.MenteeID)
			assert.NotEqual(t, "Unknown", m.Name)
		}
	})

	t.Run("received", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/matches/received", "mentee-1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Matches []MatchSummary `json:"matches"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Matches, 1)
		assert.Equal(t, "mentor-1", resp.Matches[0].MentorID)
		assert.Equal(t, "Mentor mentor-1", resp.Matches[0].Name)
		assert.Equal(t, "Austin, TX", resp.Matches[0].Location)
	})

	t.Run("empty for stranger", func(t *testing.T) {
		rec := doRequest(t, srv, http.MethodGet, "/api/matches/sent", "mentor-9", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"matches":[]`)
	})
}
