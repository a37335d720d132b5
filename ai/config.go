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


package ai

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the classifier service.
type Config struct {
	// Host is the base URL for the OpenAI-compatible chat API.
	// Example: "https://api.deepseek.com/v1", "http://localhost:11434/v1"
	Host string

	// Model is the model identifier to use for classification.
	// Example: "deepseek-chat", "gpt-4o-mini", "qwen2.5:3b"
	Model string

	// Token is the API key. Use "none" for local services without auth.
	Token string

	// Temperature for the chat completion. Classification wants it low.
	// Default: 0.2
	Temperature float64

	// MaxConcurrency caps in-flight classification calls. The remote
	// service throttles past its rate limit, so this is a hard ceiling.
	// Default: 5
	MaxConcurrency int

	// CallTimeout bounds a single classification call.
	// Default: 60s
	CallTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the chat service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithModel sets the model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithToken sets the API key.
func WithToken(token string) ConfigOption {
	return func(c *Config) {
		c.Token = token
	}
}

// WithTemperature sets the completion temperature.
func WithTemperature(temperature float64) ConfigOption {
	return func(c *Config) {
		c.Temperature = temperature
	}
}

// WithMaxConcurrency sets the in-flight call ceiling.
func WithMaxConcurrency(n int) ConfigOption {
	return func(c *Config) {
		c.MaxConcurrency = n
	}
}

// WithCallTimeout sets the per-call timeout.
func WithCallTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.CallTimeout = d
	}
}

// DefaultConfig returns a Config with sensible defaults for a local
// OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		Host:           "http://localhost:11434/v1",
		Model:          "qwen2.5:3b",
		Token:          "none",
		Temperature:    0.2,
		MaxConcurrency: 5,
		CallTimeout:    60 * time.Second,
	}
}

// NewConfig creates a Config with default values and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form. It adds the
// /v1 suffix to the host if missing, which most OpenAI-compatible APIs
// (Ollama, LocalAI, vLLM, DeepSeek) require.
func (c *Config) Normalize() {
	if c.Host != "" && !strings.HasSuffix(c.Host, "/v1") {
		c.Host = strings.TrimSuffix(c.Host, "/")
		c.Host = c.Host + "/v1"
	}
	if c.Token == "" {
		c.Token = "none"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return errors.New("ai config: Host is required")
	}
	if c.Model == "" {
		return errors.New("ai config: Model is required")
	}
	if c.MaxConcurrency < 1 {
		return errors.New("ai config: MaxConcurrency must be at least 1")
	}
	if c.CallTimeout <= 0 {
		return errors.New("ai config: CallTimeout must be positive")
	}
	return nil
}
