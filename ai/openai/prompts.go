package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/paperflow/ai"
	"github.com/poiesic/paperflow/core"
)

const retryHint = "\n\nYour previous response was not valid JSON. Respond with a single JSON object and nothing else."

func buildSystemPrompt() string {
	return "You are a research librarian cataloging machine learning papers. " +
		"You assign each paper exactly one label from each axis of a fixed taxonomy " +
		"and respond only with JSON."
}

func buildUserPrompt(paper core.Paper, interestTags []core.InterestTag) string {
	var b strings.Builder

	b.WriteString("Classify the following paper.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", paper.Title)
	if paper.Category != "" {
		fmt.Fprintf(&b, "Listed category: %s\n", paper.Category)
	}
	if len(paper.Authors) > 0 {
		fmt.Fprintf(&b, "Authors: %s\n", strings.Join(paper.Authors, ", "))
	}
	fmt.Fprintf(&b, "Abstract: %s\n", paper.Summary)

	b.WriteString("\nTaxonomy. Pick exactly one label per axis, using the label verbatim.\n")
	writeAxis(&b, "primary_area", ai.PrimaryAreas)
	writeAxis(&b, "secondary_focus", ai.SecondaryFocuses)
	writeAxis(&b, "application_domain", ai.ApplicationDomains)

	if len(interestTags) > 0 {
		b.WriteString("\nInterest tags. Include a tag's label in interest_tags only when the paper strongly matches it; otherwise return an empty list.\n")
		for _, tag := range interestTags {
			fmt.Fprintf(&b, "  - %s: %s", tag.Label, tag.Description)
			if len(tag.Keywords) > 0 {
				fmt.Fprintf(&b, " (keywords: %s)", strings.Join(tag.Keywords, ", "))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\nRespond with a single JSON object:\n")
	b.WriteString(`{"primary_area": "...", "secondary_focus": "...", "application_domain": "...", "tldr": "one-sentence summary", "interest_tags": []}`)
	b.WriteString("\nDo not include any text outside the JSON object.")

	return b.String()
}

func writeAxis(b *strings.Builder, name string, entries []ai.TaxonomyEntry) {
	fmt.Fprintf(b, "\n%s:\n", name)
	for _, entry := range entries {
		fmt.Fprintf(b, "  - %s: %s\n", entry.Label, entry.Description)
	}
}
