package slim

import (
	"fmt"
	"testing"

	"github.com/poiesic/paperflow/config"
	"github.com/poiesic/paperflow/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPapersCapsAtTen(t *testing.T) {
	entries := make([]core.DigestEntry, 47)
	for i := range entries {
		entries[i] = core.DigestEntry{
			Paper:          core.Paper{Title: fmt.Sprintf("Paper %d", i)},
			Classification: core.Classification{PrimaryArea: "text_models"},
		}
	}

	view := Papers(entries)

	assert.Equal(t, 47, view.Count)
	assert.Equal(t, 10, view.Showing)
	require.Len(t, view.Papers, 10)
	assert.Equal(t, "Paper 0", view.Papers[0].Title)
	assert.Equal(t, "Paper 9", view.Papers[9].Title)
	assert.Equal(t, "text_models", view.Papers[0].PrimaryArea)
}

func TestPapersUnderCap(t *testing.T) {
	entries := []core.DigestEntry{
		{Paper: core.Paper{Title: "Only One"}, Classification: core.Classification{PrimaryArea: "audio_models"}},
	}

	view := Papers(entries)
	assert.Equal(t, 1, view.Count)
	assert.Equal(t, 1, view.Showing)
}

func TestPapersEmpty(t *testing.T) {
	view := Papers(nil)
	assert.Equal(t, 0, view.Count)
	assert.Equal(t, 0, view.Showing)
	assert.NotNil(t, view.Papers)
}

func TestProfileDropsSecrets(t *testing.T) {
	profile := config.Default()
	profile.Categories = []string{"cs.CL"}
	profile.DataDir = "/var/lib/paperflow"
	profile.InterestTags = []core.InterestTag{
		{Label: "agents", Description: "Agentic systems", Keywords: []string{"agent"}},
	}
	profile.Channels = []config.ChannelConfig{
		{Type: "feishu", WebhookURL: "https://example.com/secret-hook"},
		{Type: "feishu"},
	}

	view := Profile(profile)

	assert.Equal(t, []string{"cs.CL"}, view.Categories)
	assert.Equal(t, []string{"agents"}, view.InterestTags)
	require.Len(t, view.Channels, 2)
	assert.True(t, view.Channels[0].Configured)
	assert.False(t, view.Channels[1].Configured)
	assert.Equal(t, profile.LLM.Model, view.LLM.Model)

	// Nothing sensitive survives the reduction
	for _, channel := range view.Channels {
		assert.NotContains(t, fmt.Sprintf("%+v", channel), "secret-hook")
	}
}

func TestSummaryPassthrough(t *testing.T) {
	summary := core.RunSummary{
		Status: core.RunCompleted,
		Date:   "2025-03-14",
		Stages: map[core.Stage]core.Counts{
			core.StageFetch: {Attempted: 12, Succeeded: 12},
		},
	}

	assert.Equal(t, summary, Summary(summary))
}
