package goals

import (
	"fmt"
	"strings"

	"github.com/JaiveerRaikhy/beacs/internal/profile"
	"github.com/JaiveerRaikhy/beacs/internal/types"
)

// buildPrompt assembles the structured judgment prompt. The answer contract
// is a JSON object with a score in [0,1] and a short reasoning string.
func buildPrompt(m *types.Mentor, me *types.Mentee) string {
	var b strings.Builder

	b.WriteString("You are evaluating how well a mentor's background aligns with a mentee's stated goals.\n\n")

	b.WriteString("MENTEE:\n")
	writeField(&b, "Goals", me.Goals)
	writeField(&b, "Additional context", me.MoreInfo)
	writeField(&b, "Current role", roleLine(me.CurrentPosition, me.CurrentCompany))
	writeField(&b, "Industry", me.CurrentIndustry)
	if len(me.Needs) > 0 {
		writeField(&b, "Needs help with", strings.Join(me.Needs, ", "))
	}

	b.WriteString("\nMENTOR:\n")
	writeField(&b, "Current role", roleLine(m.CurrentPosition, m.CurrentCompany))
	writeField(&b, "Industry", m.CurrentIndustry)
	writeField(&b, "Career path", profile.CareerPath(m.PastPositions))
	if len(m.HelpOffered.Tags) > 0 {
		writeField(&b, "Offers help with", strings.Join(m.HelpOffered.Tags, ", "))
	}
	writeField(&b, "Details", m.HelpOffered.Details)

	b.WriteString("\nConsider whether the mentor's experience and offered help map onto the mentee's goals, ")
	b.WriteString("whether the mentor's career path is one the mentee could plausibly follow, ")
	b.WriteString("and whether the domains are close enough for concrete advice.\n\n")
	b.WriteString("Respond with a JSON object only:\n")
	b.WriteString(`{"score": <number between 0.0 and 1.0>, "reasoning": "<one or two sentences>"}`)
	b.WriteString("\n")

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, value)
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
