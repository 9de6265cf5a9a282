package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pong/internal/pong"
)

// SourceEmbedded and SourceBuiltin name the fallback configuration sources.
const (
	SourceEmbedded = "embedded"
	SourceBuiltin  = "builtin"
)

// LoadPong loads Pong configuration and reports where it came from.
// Search order: customPath -> ~/.arcade/configs/pong.yaml -> ./configs/pong.yaml -> embedded default
// Keys missing from a file keep their default values.
func LoadPong(customPath string) (PongConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return PongConfig{}, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return PongConfig{}, "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return PongConfig{}, "", fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then local configs directory.
	// Broken files here are skipped rather than fatal.
	for _, path := range []string{userConfigPath("pong.yaml"), filepath.Join("configs", "pong.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if cfg, err := parse(data); err == nil && cfg.Validate() == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	if cfg, err := parse(defaultPongYAML); err == nil {
		return cfg, SourceEmbedded, nil
	}
	return DefaultPongConfig(), SourceBuiltin, nil // Fallback to hardcoded if embed fails
}

// parse decodes YAML over the defaults.
func parse(data []byte) (PongConfig, error) {
	cfg := DefaultPongConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return PongConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Validate checks the configuration against the simulation's construction rules.
func (c PongConfig) Validate() error {
	return c.ToSettings().Validate()
}

// ToSettings converts the configuration into match settings.
func (c PongConfig) ToSettings() pong.Settings {
	return pong.Settings{
		Arena: pong.Arena{
			Top:    c.Arena.Top,
			Bottom: c.Arena.Bottom,
			Left:   c.Arena.Left,
			Right:  c.Arena.Right,
		},
		PaddleX:          c.Paddle.X,
		PaddleSpeed:      c.Paddle.Speed,
		PaddleHalfWidth:  c.Paddle.HalfWidth,
		PaddleHalfHeight: c.Paddle.HalfHeight,
		BallServeSpeed:   c.Ball.ServeSpeed,
		BallHalfSize:     c.Ball.HalfSize,
		ServeDelay:       c.Match.ServeDelay,
		WinScore:         c.Match.WinScore,
	}
}

// Marshal renders the configuration as YAML.
func (c PongConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}
