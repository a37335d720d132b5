package openai

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/poiesic/paperflow/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain json", `{"primary_area": "text_models"}`, `{"primary_area": "text_models"}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  {\"a\": 1}\n", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, stripCodeFences(tt.input))
		})
	}
}

func TestRepairJSON(t *testing.T) {
	broken := `{primary_area": "text_models", secondary_focus": "reasoning"}`
	repaired := repairJSON(broken)

	var labels labelSet
	require.NoError(t, json.Unmarshal([]byte(repaired), &labels))
	assert.Equal(t, "text_models", labels.PrimaryArea)
	assert.Equal(t, "reasoning", labels.SecondaryFocus)
}

func TestRepairJSONLeavesValidInputAlone(t *testing.T) {
	valid := `{"primary_area": "audio_models", "tldr": "a, b: c"}`
	assert.Equal(t, valid, repairJSON(valid))
}

func TestCleanTags(t *testing.T) {
	assert.Equal(t, []string{"agents", "rag"}, cleanTags([]string{" agents ", "", "rag"}))
	assert.Empty(t, cleanTags(nil))
}

func TestBuildUserPrompt(t *testing.T) {
	paper := core.Paper{
		Title:    "Scaling Laws Revisited",
		Summary:  "We study scaling behavior of language models.",
		Category: "cs.CL",
		Authors:  []string{"A. Author", "B. Author"},
	}
	tags := []core.InterestTag{
		{Label: "agents", Description: "Agentic systems", Keywords: []string{"agent", "tool use"}},
	}

	prompt := buildUserPrompt(paper, tags)

	assert.Contains(t, prompt, "Scaling Laws Revisited")
	assert.Contains(t, prompt, "cs.CL")
	assert.Contains(t, prompt, "A. Author, B. Author")
	assert.Contains(t, prompt, "primary_area")
	assert.Contains(t, prompt, "text_models")
	assert.Contains(t, prompt, "application_domain")
	assert.Contains(t, prompt, "agents: Agentic systems")
	assert.Contains(t, prompt, "agent, tool use")
}

func TestBuildUserPromptWithoutInterestTags(t *testing.T) {
	paper := core.Paper{Title: "T", Summary: "S"}
	prompt := buildUserPrompt(paper, nil)

	assert.NotContains(t, prompt, "Interest tags")
	// Every taxonomy axis should still be present
	for _, axis := range []string{"primary_area", "secondary_focus", "application_domain"} {
		assert.True(t, strings.Contains(prompt, axis), "prompt missing axis %s", axis)
	}
}
