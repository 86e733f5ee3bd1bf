// Package profile derives secondary attributes (alma mater, cumulative
// experience, location components) from loosely-structured profile history.
package profile

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/JaiveerRaikhy/beacs/internal/types"
)

// degreePrefixes identify education entries by their title prefix. The
// institution lives in the entry's Company field.
var degreePrefixes = []string{"BS", "BA", "MBA", "PhD", "MD", "DO", "MFA", "MS", "MA"}

var firstInteger = regexp.MustCompile(`\d+`)

// IsEducation reports whether a past position is an education entry.
func IsEducation(pos types.PastPosition) bool {
	for _, prefix := range degreePrefixes {
		if strings.HasPrefix(pos.Title, prefix) {
			return true
		}
	}
	return false
}

// Normalize sorts a profile's position history by order index and marks
// education entries. Stores call this once per loaded snapshot so downstream
// scoring can rely on ordering and the Education flag.
func Normalize(p *types.Profile) {
	sort.SliceStable(p.PastPositions, func(i, j int) bool {
		return p.PastPositions[i].OrderIndex < p.PastPositions[j].OrderIndex
	})
	for i := range p.PastPositions {
		p.PastPositions[i].Education = IsEducation(p.PastPositions[i])
	}
}

// AlmaMater returns the institution of the first education entry in the
// position history, in stored order. ok is false if no entry matches.
func AlmaMater(positions []types.PastPosition) (string, bool) {
	for _, pos := range positions {
		if IsEducation(pos) {
			return pos.Company, true
		}
	}
	return "", false
}

// MentorAlmaMater resolves a mentor's alma mater, falling back to the
// explicit university field when the position history has no education entry.
// Returns "" if neither source yields a value.
func MentorAlmaMater(m *types.Mentor) string {
	if alma, ok := AlmaMater(m.PastPositions); ok {
		return alma
	}
	return m.University
}

// MenteeAlmaMater resolves a mentee's alma mater from position history only.
func MenteeAlmaMater(me *types.Mentee) string {
	alma, _ := AlmaMater(me.PastPositions)
	return alma
}

// ParseDuration converts a free-text duration like "3 years" or "6 months"
// to years. Strings without a recognizable integer and unit contribute 0.
func ParseDuration(duration string) float64 {
	if duration == "" {
		return 0
	}

	duration = strings.ToLower(strings.TrimSpace(duration))

	match := firstInteger.FindString(duration)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}

	switch {
	case strings.Contains(duration, "year"):
		return float64(n)
	case strings.Contains(duration, "month"):
		return float64(n) / 12.0
	default:
		return 0
	}
}

// TotalExperience sums the parsed durations of all non-education positions,
// rounded to 2 decimal places.
func TotalExperience(positions []types.PastPosition) float64 {
	total := 0.0
	for _, pos := range positions {
		if IsEducation(pos) {
			continue
		}
		total += ParseDuration(pos.Duration)
	}
	return math.Round(total*100) / 100
}

// ParseLocation splits a "City, Region" string into trimmed components.
// ok is false for any other shape (empty string, zero or multiple commas).
func ParseLocation(location string) (city, region string, ok bool) {
	if location == "" {
		return "", "", false
	}
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// CompareLocations scores proximity between two location strings:
// 1.0 when city and region both match, 0.5 when only the region matches,
// 0.0 otherwise. Either side failing to parse scores 0.
func CompareLocations(a, b string) float64 {
	cityA, regionA, okA := ParseLocation(a)
	cityB, regionB, okB := ParseLocation(b)
	if !okA || !okB {
		return 0.0
	}
	if cityA == cityB && regionA == regionB {
		return 1.0
	}
	if regionA == regionB {
		return 0.5
	}
	return 0.0
}

// CareerPath joins the non-education positions into a "Title at Company"
// arrow chain, used when summarizing a mentor's trajectory.
func CareerPath(positions []types.PastPosition) string {
	var steps []string
	for _, pos := range positions {
		if IsEducation(pos) {
			continue
		}
		steps = append(steps, pos.Title+" at "+pos.Company)
	}
	return strings.Join(steps, " → ")
}
