package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/pong"
)

// isolate points HOME and the working directory at empty temp dirs so the
// search path only sees what the test writes.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)
	return home, work
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	isolate(t)

	cfg, source, err := LoadPong("")
	if err != nil {
		t.Fatalf("LoadPong: %v", err)
	}
	if source != SourceEmbedded {
		t.Errorf("source = %q, want %q", source, SourceEmbedded)
	}
	if cfg != DefaultPongConfig() {
		t.Errorf("embedded config = %+v, want %+v", cfg, DefaultPongConfig())
	}
	if cfg.ToSettings() != pong.DefaultSettings() {
		t.Errorf("settings = %+v, want %+v", cfg.ToSettings(), pong.DefaultSettings())
	}
}

func TestLoadPongCustomPathOverridesDefaults(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "fast.yaml")
	writeFile(t, path, "ball:\n  serve_speed: 400\nmatch:\n  win_score: 7\n")

	cfg, source, err := LoadPong(path)
	if err != nil {
		t.Fatalf("LoadPong: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}
	if cfg.Ball.ServeSpeed != 400 {
		t.Errorf("serve speed = %v, want 400", cfg.Ball.ServeSpeed)
	}
	if cfg.Match.WinScore != 7 {
		t.Errorf("win score = %d, want 7", cfg.Match.WinScore)
	}
	// Unset keys keep their defaults.
	if cfg.Paddle.Speed != pong.DefaultPaddleSpeed {
		t.Errorf("paddle speed = %v, want default %v", cfg.Paddle.Speed, pong.DefaultPaddleSpeed)
	}
}

func TestLoadPongCustomPathErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"malformed yaml", "arena: [", "failed to parse"},
		{"inverted arena", "arena:\n  top: -10\n  bottom: 10\n", "arena"},
		{"paddle too tall", "paddle:\n  half_height: 500\n", "paddle"},
		{"infinite paddle speed", "paddle:\n  speed: .inf\n", "paddle"},
		{"infinite serve delay", "match:\n  serve_delay: .inf\n", "serve delay"},
		{"infinite arena", "arena:\n  left: -.inf\n  right: .inf\n", "arena"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".yaml")
			writeFile(t, path, tc.content)

			_, _, err := LoadPong(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}

	_, _, err := LoadPong(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadPongSearchOrder(t *testing.T) {
	home, work := isolate(t)
	userPath := filepath.Join(home, ".arcade", "configs", "pong.yaml")
	localPath := filepath.Join(work, "configs", "pong.yaml")

	writeFile(t, localPath, "paddle:\n  speed: 111\n")
	cfg, source, err := LoadPong("")
	if err != nil {
		t.Fatalf("LoadPong: %v", err)
	}
	if source != filepath.Join("configs", "pong.yaml") || cfg.Paddle.Speed != 111 {
		t.Errorf("got source %q speed %v, want local config", source, cfg.Paddle.Speed)
	}

	writeFile(t, userPath, "paddle:\n  speed: 222\n")
	cfg, source, err = LoadPong("")
	if err != nil {
		t.Fatalf("LoadPong: %v", err)
	}
	if source != userPath || cfg.Paddle.Speed != 222 {
		t.Errorf("got source %q speed %v, want user config", source, cfg.Paddle.Speed)
	}
}

func TestLoadPongSkipsBrokenSearchPathFiles(t *testing.T) {
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".arcade", "configs", "pong.yaml"), "ball:\n  half_size: -3\n")

	_, source, err := LoadPong("")
	if err != nil {
		t.Fatalf("LoadPong: %v", err)
	}
	if source != SourceEmbedded {
		t.Errorf("source = %q, want %q", source, SourceEmbedded)
	}
}

func TestValidateSentinels(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PongConfig)
		wantErr error
	}{
		{"zero height arena", func(c *PongConfig) { c.Arena.Top = c.Arena.Bottom }, pong.ErrInvalidArena},
		{"negative paddle speed", func(c *PongConfig) { c.Paddle.Speed = -1 }, pong.ErrInvalidPaddle},
		{"paddle past goal line", func(c *PongConfig) { c.Paddle.X = 900 }, pong.ErrInvalidPaddle},
		{"zero ball size", func(c *PongConfig) { c.Ball.HalfSize = 0 }, pong.ErrInvalidBall},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultPongConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tc.wantErr)
			}
		})
	}

	bad := DefaultPongConfig()
	bad.Match.ServeDelay = -1
	if err := bad.Validate(); err == nil {
		t.Error("negative serve delay should be rejected")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := DefaultPongConfig()
	cfg.Match.WinScore = 11
	cfg.Match.ServeDelay = 0.75

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(data), "half_height: 40") {
		t.Errorf("expected snake_case keys in:\n%s", data)
	}
	got, err := parse(data)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestNestedKeysMapToSettings(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "full.yaml")
	writeFile(t, path, `arena:
  top: 50
  bottom: -50
  left: -80
  right: 80
paddle:
  x: 70
  speed: 90
  half_width: 3
  half_height: 12
ball:
  serve_speed: 150
  half_size: 2
match:
  serve_delay: 0.5
  win_score: 3
`)

	cfg, _, err := LoadPong(path)
	if err != nil {
		t.Fatalf("LoadPong: %v", err)
	}
	want := pong.Settings{
		Arena:            pong.Arena{Top: 50, Bottom: -50, Left: -80, Right: 80},
		PaddleX:          70,
		PaddleSpeed:      90,
		PaddleHalfWidth:  3,
		PaddleHalfHeight: 12,
		BallServeSpeed:   150,
		BallHalfSize:     2,
		ServeDelay:       0.5,
		WinScore:         3,
	}
	if got := cfg.ToSettings(); got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}
}
