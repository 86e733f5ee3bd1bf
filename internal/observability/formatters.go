// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/JaiveerRaikhy/beacs/internal/feed"
	"github.com/JaiveerRaikhy/beacs/internal/profile"
	"github.com/JaiveerRaikhy/beacs/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMentor outputs a human-readable summary of a mentor profile.
func (p *Printer) PrintMentor(m *types.Mentor) {
	if m == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:      %s\n", m.Name))
	sb.WriteString(fmt.Sprintf("Role:      %s\n", roleLine(m.CurrentPosition, m.CurrentCompany)))
	sb.WriteString(fmt.Sprintf("Industry:  %s\n", m.CurrentIndustry))
	if alma := profile.MentorAlmaMater(m); alma != "" {
		sb.WriteString(fmt.Sprintf("School:    %s\n", alma))
	}
	sb.WriteString(fmt.Sprintf("Years:     %.1f\n", profile.TotalExperience(m.PastPositions)))

	if len(m.HelpOffered.Tags) > 0 {
		sb.WriteString("\nOffers help with:\n")
		count := min(len(m.HelpOffered.Tags), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", m.HelpOffered.Tags[i]))
		}
		if len(m.HelpOffered.Tags) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(m.HelpOffered.Tags)-maxItemsToShow))
		}
	}

	p.printBox("MENTOR PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintPairScore outputs the scored outcome for one pair.
func (p *Printer) PrintPairScore(mentorID, menteeID string, score types.PairScore) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Mentor:  %s\n", mentorID))
	sb.WriteString(fmt.Sprintf("Mentee:  %s\n", menteeID))
	sb.WriteString("\n")

	if !score.Eligible {
		sb.WriteString("Ineligible: " + score.IneligibleReason)
		p.printBox("PAIR SCORE", sb.String())
		return
	}

	sb.WriteString(fmt.Sprintf("Mentor score:     %5.1f\n", score.MentorScore))
	sb.WriteString(fmt.Sprintf("Mentee score:     %5.1f\n", score.MenteeScore))
	sb.WriteString(fmt.Sprintf("Bilateral score:  %5.1f", score.BilateralScore))
	if score.GoalAlignment != nil {
		sb.WriteString(fmt.Sprintf("\n\nGoal alignment:   %5.2f", score.GoalAlignment.Score))
		if score.GoalAlignment.Heuristic {
			sb.WriteString(" (heuristic)")
		}
		if score.GoalAlignment.Reasoning != "" {
			sb.WriteString("\n" + score.GoalAlignment.Reasoning)
		}
	}

	p.printBox("PAIR SCORE", sb.String())
}

// PrintFeed outputs the ranked candidate feed for a mentor.
func (p *Printer) PrintFeed(mentorID string, items []types.FeedItem) {
	var sb strings.Builder

	if len(items) == 0 {
		sb.WriteString("No candidates cleared the bilateral floor.")
		p.printBox(fmt.Sprintf("FEED FOR %s", mentorID), sb.String())
		return
	}

	for i, item := range items {
		marker := " "
		if item.BestPick {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %d. %s (%s)\n", marker, i+1, item.Name, item.MenteeID))
		sb.WriteString(fmt.Sprintf("     bilateral %.1f  mentor %.1f  mentee %.1f\n",
			item.BilateralScore, item.MentorScore, item.MenteeScore))
		if item.GoalReasoning != "" {
			sb.WriteString(fmt.Sprintf("     goal %.2f: %s\n", item.GoalAlignmentScore, item.GoalReasoning))
		}
	}
	sb.WriteString("\n* = best pick")

	p.printBox(fmt.Sprintf("FEED FOR %s", mentorID), sb.String())
}

// PrintCandidates outputs threshold-filtered candidates with acceptance
// probabilities.
func (p *Printer) PrintCandidates(mentorID string, candidates []feed.ScoredCandidate) {
	var sb strings.Builder

	if len(candidates) == 0 {
		sb.WriteString("No candidates cleared all thresholds.")
		p.printBox(fmt.Sprintf("CANDIDATES FOR %s", mentorID), sb.String())
		return
	}

	for i, c := range candidates {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, c.MenteeID))
		sb.WriteString(fmt.Sprintf("   bilateral %.1f  accept p=%.2f\n",
			c.Score.BilateralScore, c.AcceptanceProbability))
	}

	p.printBox(fmt.Sprintf("CANDIDATES FOR %s", mentorID), strings.TrimSuffix(sb.String(), "\n"))
}

func roleLine(position, company string) string {
	switch {
	case position == "":
		return company
	case company == "":
		return position
	default:
		return position + " at " + company
	}
}
