package sim

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
)

// Script is a fixed intent sequence loaded from YAML:
//
//	seed: 7
//	dt: 0.0166667
//	steps:
//	  - {ticks: 120, p1: up, p2: none}
//	  - {ticks: 60, p1: down, p2: down}
type Script struct {
	Seed  int64   `yaml:"seed"`
	DT    float64 `yaml:"dt"`
	Steps []Step  `yaml:"steps"`
}

// Step holds one pair of intents for a number of ticks.
type Step struct {
	Ticks int         `yaml:"ticks"`
	P1    core.Intent `yaml:"p1"`
	P2    core.Intent `yaml:"p2"`
}

// LoadScript reads and validates a script file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("sim: failed to read script %s: %w", path, err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return Script{}, fmt.Errorf("sim: script %s: %w", path, err)
	}
	return s, nil
}

// ParseScript decodes and validates a YAML script. A missing dt defaults
// to one frame at 60Hz.
func ParseScript(data []byte) (Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("failed to parse: %w", err)
	}
	if s.DT == 0 {
		s.DT = DefaultDT
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// Validate checks dt and step lengths.
func (s Script) Validate() error {
	if !(s.DT > 0) || math.IsInf(s.DT, 0) {
		return fmt.Errorf("dt must be positive and finite (got %v)", s.DT)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("script has no steps")
	}
	for i, st := range s.Steps {
		if st.Ticks <= 0 {
			return fmt.Errorf("step %d: ticks must be positive (got %d)", i, st.Ticks)
		}
	}
	return nil
}

// Ticks returns the total script length.
func (s Script) Ticks() int {
	n := 0
	for _, st := range s.Steps {
		n += st.Ticks
	}
	return n
}

// Driver returns a fresh driver that plays the script once.
func (s Script) Driver() Driver {
	return &scriptDriver{steps: s.Steps}
}

// Job builds a simulation job that plays the script to its end.
func (s Script) Job(id string, settings pong.Settings) Job {
	return Job{
		ID:       id,
		Settings: settings,
		Seed:     s.Seed,
		DT:       s.DT,
		MaxTicks: s.Ticks(),
		Driver:   s.Driver(),
	}
}

type scriptDriver struct {
	steps []Step
	step  int
	done  int // ticks played in the current step
}

func (d *scriptDriver) Intents(*pong.Match) (core.Intents, bool) {
	for d.step < len(d.steps) && d.done >= d.steps[d.step].Ticks {
		d.step++
		d.done = 0
	}
	if d.step >= len(d.steps) {
		return core.Intents{}, false
	}
	st := d.steps[d.step]
	d.done++
	return core.Intents{PlayerOne: st.P1, PlayerTwo: st.P2}, true
}
