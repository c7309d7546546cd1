// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config represents the visualizer configuration.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	NATS     NATSConfig     `toml:"nats"`
	Playback PlaybackConfig `toml:"playback"`
	UI       UIConfig       `toml:"ui"`
}

// ServerConfig points at the debate backend.
type ServerConfig struct {
	URL       string `toml:"url"`         // Websocket endpoint of the debate backend
	APIKeyEnv string `toml:"api_key_env"` // Env var holding the model API key forwarded to the backend
}

// NATSConfig configures the optional NATS record source.
type NATSConfig struct {
	URL     string `toml:"url"`
	Subject string `toml:"subject"`
}

// PlaybackConfig tunes bubble animation and the scrubber.
type PlaybackConfig struct {
	TravelMs       int `toml:"travel_ms"`        // Nominal bubble travel duration
	RemovalDelayMs int `toml:"removal_delay_ms"` // Linger time before a finished bubble is removed
	ScrubberSteps  int `toml:"scrubber_steps"`   // Discrete scrubber positions
}

// UIConfig tunes rendering.
type UIConfig struct {
	FPS int `toml:"fps"` // Live animation frame rate
}

// New creates a new config with defaults.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			URL:       "ws://localhost:8000/ws",
			APIKeyEnv: "OPENAI_API_KEY",
		},
		NATS: NATSConfig{
			Subject: "debate.events",
		},
		Playback: PlaybackConfig{
			TravelMs:       2400,
			RemovalDelayMs: 300,
			ScrubberSteps:  1000,
		},
		UI: UIConfig{
			FPS: 30,
		},
	}
}

// LoadFile loads configuration from a TOML file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := New()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads agora.toml from the current directory, falling back to
// defaults when the file does not exist.
func LoadDefault() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	path := filepath.Join(cwd, "agora.toml")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}
	return LoadFile(path)
}

// GetAPIKey returns the API key from the configured environment variable.
func (c *Config) GetAPIKey() string {
	if c.Server.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Server.APIKeyEnv)
}

// Travel returns the nominal bubble travel duration.
func (c *Config) Travel() time.Duration {
	return time.Duration(c.Playback.TravelMs) * time.Millisecond
}

// RemovalDelay returns the post-travel linger before a bubble is removed.
func (c *Config) RemovalDelay() time.Duration {
	return time.Duration(c.Playback.RemovalDelayMs) * time.Millisecond
}

// FrameInterval returns the time between live animation frames.
func (c *Config) FrameInterval() time.Duration {
	fps := c.UI.FPS
	if fps <= 0 {
		fps = 30
	}
	return time.Second / time.Duration(fps)
}
