package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProfile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeProfile(t, `
categories: [cs.CL]
`)

	profile, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "arxiv", profile.Source)
	assert.Equal(t, "paperflow-data", profile.DataDir)
	assert.Equal(t, "workday", profile.Schedule.Mode)
	assert.True(t, profile.SkipsWeekends())
	assert.Equal(t, 5, profile.LLM.MaxConcurrency)
	assert.Equal(t, 60*time.Second, profile.LLM.CallTimeout())
}

func TestLoadFullProfile(t *testing.T) {
	path := writeProfile(t, `
source: arxiv
categories: [cs.CL, cs.CV]
data_dir: /tmp/flow
schedule:
  mode: daily
llm:
  host: http://localhost:11434
  model: qwen2.5:3b
  api_key_env: TEST_FLOW_KEY
  temperature: 0.2
  max_concurrency: 3
  call_timeout_seconds: 30
interest_tags:
  - label: agents
    description: Agentic systems
    keywords: [agent, tool use]
channels:
  - type: feishu
    webhook_url: https://example.com/hook
    exclude_tags: [diffusion_models, Tech_Reports]
    delay_ms: 500
    separator: "[{current}/{total}] {label}"
    link_style: papers_cool
`)
	t.Setenv("TEST_FLOW_KEY", "sk-test")

	profile, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"cs.CL", "cs.CV"}, profile.Categories)
	assert.False(t, profile.SkipsWeekends())
	assert.Equal(t, "sk-test", profile.LLM.APIKey())
	assert.Equal(t, 30*time.Second, profile.LLM.CallTimeout())

	require.Len(t, profile.InterestTags, 1)
	assert.Equal(t, "agents", profile.InterestTags[0].Label)

	require.Len(t, profile.Channels, 1)
	channel := profile.Channels[0]
	assert.Equal(t, "feishu", channel.Type)
	assert.Equal(t, []string{"diffusion_models", "Tech_Reports"}, channel.ExcludeTags)

	options := channel.ChannelOptions()
	assert.Equal(t, "https://example.com/hook", options["webhook_url"])
	assert.Equal(t, "500", options["delay_ms"])
	assert.Equal(t, "[{current}/{total}] {label}", options["separator"])
	assert.Equal(t, "papers_cool", options["link_style"])
}

func TestLoadRequiresCategories(t *testing.T) {
	path := writeProfile(t, `
data_dir: /tmp/flow
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrNoCategories)
}

func TestLoadRejectsChannelWithoutType(t *testing.T) {
	path := writeProfile(t, `
categories: [cs.CL]
channels:
  - webhook_url: https://example.com/hook
`)
	_, err := Load(path)
	assert.ErrorIs(t, err, ErrNoChannelType)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeProfile(t, "categories: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}
