package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.Host)
	assert.Equal(t, 5, cfg.MaxConcurrency)
	assert.Equal(t, 60*time.Second, cfg.CallTimeout)
	require.NoError(t, cfg.Validate())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("https://api.deepseek.com"),
		WithModel("deepseek-chat"),
		WithToken("sk-test"),
		WithTemperature(0.0),
		WithMaxConcurrency(8),
		WithCallTimeout(30*time.Second),
	)

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.Host) // normalized
	assert.Equal(t, "deepseek-chat", cfg.Model)
	assert.Equal(t, "sk-test", cfg.Token)
	assert.Equal(t, 8, cfg.MaxConcurrency)
}

func TestConfig_Normalize(t *testing.T) {
	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "adds v1 suffix", host: "http://localhost:11434", want: "http://localhost:11434/v1"},
		{name: "trailing slash", host: "http://localhost:11434/", want: "http://localhost:11434/v1"},
		{name: "already normalized", host: "http://localhost:11434/v1", want: "http://localhost:11434/v1"},
		{name: "empty host untouched", host: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Host: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.want, cfg.Host)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "missing host", mutate: func(c *Config) { c.Host = "" }, wantErr: "Host is required"},
		{name: "missing model", mutate: func(c *Config) { c.Model = "" }, wantErr: "Model is required"},
		{name: "zero concurrency", mutate: func(c *Config) { c.MaxConcurrency = 0 }, wantErr: "MaxConcurrency"},
		{name: "negative timeout", mutate: func(c *Config) { c.CallTimeout = -time.Second }, wantErr: "CallTimeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_EmptyTokenDefaultsToNone(t *testing.T) {
	cfg := NewConfig(WithToken(""))
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "none", cfg.Token)
}
