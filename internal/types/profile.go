// Package types provides type definitions for structured data used throughout the matching system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// PastPosition is a single entry in a profile's history. Education entries
// (degree titles such as "BS Computer Science") carry the institution in the
// Company field and are excluded from experience totals.
type PastPosition struct {
	Title      string `json:"title"`
	Company    string `json:"company"`
	Duration   string `json:"duration,omitempty"`
	Education  bool   `json:"education,omitempty"`
	OrderIndex int    `json:"order_index"`
}

// Profile holds the fields common to mentors and mentees.
type Profile struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	CurrentPosition string         `json:"current_position"`
	CurrentCompany  string         `json:"current_company"`
	CurrentIndustry string         `json:"current_industry"`
	Location        string         `json:"location"`
	PastPositions   []PastPosition `json:"past_positions"`
}

// HelpOffering describes what a mentor can help with: a tag set plus a
// free-text elaboration.
type HelpOffering struct {
	Tags    []string `json:"tags"`
	Details string   `json:"details"`
}

// Mentor extends Profile with help capabilities and preference rankings.
// University is an explicit fallback used when no education entry is found
// in the position history.
type Mentor struct {
	Profile
	University  string       `json:"university,omitempty"`
	HelpOffered HelpOffering `json:"what_i_can_help_with"`
	Preferences Preferences  `json:"preferences"`
}

// Mentee extends Profile with help needs, an optional GPA, and free-text
// goal and context statements.
type Mentee struct {
	Profile
	GPA      *float64 `json:"gpa,omitempty"`
	Needs    []string `json:"what_i_need_help_with"`
	Goals    string   `json:"goals"`
	MoreInfo string   `json:"more_info"`
}

// Preferences is a mentor's preference vector. Each field is a 1-5 rank
// (1 = most important) or RankNone for "Don't care".
type Preferences struct {
	Location          Rank `json:"location"`
	University        Rank `json:"uni"`
	GPA               Rank `json:"gpa"`
	IndustryAlignment Rank `json:"industry_alignment"`
	HelpType          Rank `json:"help_type"`
	PathAlignment     Rank `json:"path_alignment"`
}

// Rank is a preference rank in 1..5, or RankNone when the mentor expressed
// no preference. The source data stores the sentinel as the literal string
// "Don't care", so Rank accepts both a JSON number and that string.
type Rank int

// RankNone is the "Don't care" sentinel.
const RankNone Rank = 0

// noPreference is the sentinel value used in stored profile data.
const noPreference = "Don't care"

// Weight converts a rank to a scoring weight: rank 1 -> 5.0 down to
// rank 5 -> 1.0. RankNone and out-of-range values yield 0.
func (r Rank) Weight() float64 {
	if r < 1 || r > 5 {
		return 0
	}
	return float64(6 - r)
}

// UnmarshalJSON accepts either an integer rank or the "Don't care" string.
func (r *Rank) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*r = Rank(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("rank must be a number or %q: %w", noPreference, err)
	}
	if s != noPreference {
		return fmt.Errorf("unrecognized rank value %q", s)
	}
	*r = RankNone
	return nil
}

// MarshalJSON writes RankNone back as the "Don't care" sentinel so stored
// snapshots round-trip unchanged.
func (r Rank) MarshalJSON() ([]byte, error) {
	if r == RankNone {
		return json.Marshal(noPreference)
	}
	return json.Marshal(int(r))
}
