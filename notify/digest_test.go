package notify

import (
	"testing"

	"github.com/poiesic/paperflow/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(title, primary, secondary, domain string, interestTags ...string) core.DigestEntry {
	return core.DigestEntry{
		Paper: core.Paper{
			Id:    core.IDFromContent(title),
			Title: title,
		},
		Classification: core.Classification{
			PrimaryArea:       primary,
			SecondaryFocus:    secondary,
			ApplicationDomain: domain,
			InterestTags:      interestTags,
		},
	}
}

func TestBuildDigestGroupsByPrimaryArea(t *testing.T) {
	entries := []core.DigestEntry{
		entry("A", "text_models", "reasoning", "general_purpose"),
		entry("B", "audio_models", "model_architecture", "general_purpose"),
		entry("C", "text_models", "alignment", "general_purpose"),
	}

	digest := BuildDigest("2025-03-14", entries, nil)

	assert.Equal(t, "2025-03-14", digest.Date)
	assert.Equal(t, 3, digest.Total)
	assert.Empty(t, digest.Interest)
	require.Len(t, digest.Groups, 2)

	// Groups sorted by label
	assert.Equal(t, "audio_models", digest.Groups[0].PrimaryArea)
	assert.Equal(t, "text_models", digest.Groups[1].PrimaryArea)
	assert.Len(t, digest.Groups[1].Entries, 2)
}

func TestBuildDigestExclusionIsCaseInsensitive(t *testing.T) {
	entries := []core.DigestEntry{
		entry("Kept", "text_models", "reasoning", "general_purpose"),
		entry("Dropped", "Diffusion_Models", "model_architecture", "general_purpose"),
	}

	// Exclusion tag cased differently from the label
	digest := BuildDigest("2025-03-14", entries, []string{"diffusion_models"})

	assert.Equal(t, 1, digest.Total)
	require.Len(t, digest.Groups, 1)
	assert.Equal(t, "Kept", digest.Groups[0].Entries[0].Paper.Title)

	// And the other way around
	digest = BuildDigest("2025-03-14", entries, []string{"DIFFUSION_MODELS"})
	assert.Equal(t, 1, digest.Total)
}

func TestBuildDigestExclusionSpansAllLabelFields(t *testing.T) {
	entries := []core.DigestEntry{
		entry("ByPrimary", "diffusion_models", "reasoning", "general_purpose"),
		entry("BySecondary", "text_models", "tech_reports", "general_purpose"),
		entry("ByDomain", "text_models", "reasoning", "legal_ai"),
		entry("ByInterestTag", "text_models", "reasoning", "general_purpose", "agents"),
		entry("Kept", "text_models", "reasoning", "general_purpose"),
	}

	digest := BuildDigest("2025-03-14", entries,
		[]string{"diffusion_models", "tech_reports", "legal_ai", "agents"})

	assert.Equal(t, 1, digest.Total)
	require.Len(t, digest.Groups, 1)
	assert.Equal(t, "Kept", digest.Groups[0].Entries[0].Paper.Title)
}

func TestBuildDigestInterestGroupLeads(t *testing.T) {
	entries := []core.DigestEntry{
		entry("Plain", "text_models", "reasoning", "general_purpose"),
		entry("Tagged", "audio_models", "reasoning", "general_purpose", "agents"),
	}

	digest := BuildDigest("2025-03-14", entries, nil)

	assert.Equal(t, 2, digest.Total)
	require.Len(t, digest.Interest, 1)
	assert.Equal(t, "Tagged", digest.Interest[0].Paper.Title)

	// Tagged entries do not also appear in the area groups
	require.Len(t, digest.Groups, 1)
	assert.Equal(t, "text_models", digest.Groups[0].PrimaryArea)
}

func TestBuildDigestEmpty(t *testing.T) {
	digest := BuildDigest("2025-03-14", nil, []string{"anything"})
	assert.True(t, digest.Empty())
}

func TestRegistryUnknownChannel(t *testing.T) {
	_, err := Open("no-such-channel", nil)
	assert.ErrorIs(t, err, ErrUnknownChannel)
}
