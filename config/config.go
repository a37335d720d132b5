// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/poiesic/paperflow/core"
	"gopkg.in/yaml.v3"
)

const (
	defaultSource          = "arxiv"
	defaultDataDir         = "paperflow-data"
	defaultScheduleMode    = "workday"
	defaultModel           = "gpt-4o-mini"
	defaultHost            = "https://api.openai.com"
	defaultAPIKeyEnv       = "PAPERFLOW_API_KEY"
	defaultMaxConcurrency  = 5
	defaultCallTimeoutSecs = 60
)

var (
	ErrNoCategories   = errors.New("config: at least one category is required")
	ErrNoChannelType  = errors.New("config: channel is missing a type")
	ErrInvalidTimeout = errors.New("config: call_timeout_seconds must not be negative")
)

// Profile is the full runtime configuration, loaded from a YAML file.
type Profile struct {
	Source     string            `yaml:"source"`
	Options    map[string]string `yaml:"source_options,omitempty"`
	Categories []string          `yaml:"categories"`
	DataDir    string            `yaml:"data_dir"`

	Schedule     ScheduleConfig     `yaml:"schedule"`
	LLM          LLMConfig          `yaml:"llm"`
	InterestTags []core.InterestTag `yaml:"interest_tags,omitempty"`
	Channels     []ChannelConfig    `yaml:"channels"`
}

// ScheduleConfig controls which days a run produces output.
// Mode "workday" skips weekends; "daily" never skips.
type ScheduleConfig struct {
	Mode string `yaml:"mode"`
}

// LLMConfig describes the classifier endpoint. The API key is never
// stored in the profile; it is read from the named environment variable.
type LLMConfig struct {
	Host            string  `yaml:"host"`
	Model           string  `yaml:"model"`
	APIKeyEnv       string  `yaml:"api_key_env"`
	Temperature     float64 `yaml:"temperature"`
	MaxConcurrency  int     `yaml:"max_concurrency"`
	CallTimeoutSecs int     `yaml:"call_timeout_seconds"`

	apiKey string
}

// APIKey returns the key resolved from the environment at load time.
func (l *LLMConfig) APIKey() string {
	return l.apiKey
}

// CallTimeout returns the per-call timeout as a duration.
func (l *LLMConfig) CallTimeout() time.Duration {
	return time.Duration(l.CallTimeoutSecs) * time.Second
}

// ChannelConfig wires one delivery channel.
type ChannelConfig struct {
	Type        string   `yaml:"type"`
	WebhookURL  string   `yaml:"webhook_url,omitempty"`
	ExcludeTags []string `yaml:"exclude_tags,omitempty"`
	DelayMs     int      `yaml:"delay_ms,omitempty"`
	Separator   string   `yaml:"separator,omitempty"`
	LinkStyle   string   `yaml:"link_style,omitempty"`
}

// ChannelOptions returns the channel settings as factory options for
// the notify registry.
func (c *ChannelConfig) ChannelOptions() map[string]string {
	options := map[string]string{}
	if c.WebhookURL != "" {
		options["webhook_url"] = c.WebhookURL
	}
	if c.DelayMs > 0 {
		options["delay_ms"] = fmt.Sprintf("%d", c.DelayMs)
	}
	if c.Separator != "" {
		options["separator"] = c.Separator
	}
	if c.LinkStyle != "" {
		options["link_style"] = c.LinkStyle
	}
	return options
}

// Default returns a profile with every optional field at its default.
func Default() *Profile {
	return &Profile{
		Source:   defaultSource,
		DataDir:  defaultDataDir,
		Schedule: ScheduleConfig{Mode: defaultScheduleMode},
		LLM: LLMConfig{
			Host:            defaultHost,
			Model:           defaultModel,
			APIKeyEnv:       defaultAPIKeyEnv,
			MaxConcurrency:  defaultMaxConcurrency,
			CallTimeoutSecs: defaultCallTimeoutSecs,
		},
	}
}

// Load reads a YAML profile, applies defaults, resolves the API key from
// the environment and validates the result.
func Load(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	profile := Default()
	if err := yaml.Unmarshal(raw, profile); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	profile.applyDefaults()
	profile.LLM.apiKey = os.Getenv(profile.LLM.APIKeyEnv)

	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return profile, nil
}

func (p *Profile) applyDefaults() {
	defaults := Default()
	if p.Source == "" {
		p.Source = defaults.Source
	}
	if p.DataDir == "" {
		p.DataDir = defaults.DataDir
	}
	if p.Schedule.Mode == "" {
		p.Schedule.Mode = defaults.Schedule.Mode
	}
	if p.LLM.Host == "" {
		p.LLM.Host = defaults.LLM.Host
	}
	if p.LLM.Model == "" {
		p.LLM.Model = defaults.LLM.Model
	}
	if p.LLM.APIKeyEnv == "" {
		p.LLM.APIKeyEnv = defaults.LLM.APIKeyEnv
	}
	if p.LLM.MaxConcurrency < 1 {
		p.LLM.MaxConcurrency = defaults.LLM.MaxConcurrency
	}
	if p.LLM.CallTimeoutSecs == 0 {
		p.LLM.CallTimeoutSecs = defaults.LLM.CallTimeoutSecs
	}
}

// Validate checks the profile for fields no run can work without.
func (p *Profile) Validate() error {
	if len(p.Categories) == 0 {
		return ErrNoCategories
	}
	if p.LLM.CallTimeoutSecs < 0 {
		return ErrInvalidTimeout
	}
	for i, channel := range p.Channels {
		if channel.Type == "" {
			return fmt.Errorf("%w (channel %d)", ErrNoChannelType, i)
		}
	}
	return nil
}

// SkipsWeekends reports whether the schedule mode excludes Sat/Sun runs.
func (p *Profile) SkipsWeekends() bool {
	return p.Schedule.Mode == "workday"
}
