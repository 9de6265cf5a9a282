package sim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
)

const sampleScript = `
seed: 7
dt: 0.02
steps:
  - {ticks: 30, p1: up, p2: down}
  - {ticks: 10}
  - {ticks: 20, p1: down, p2: UP}
`

func TestParseScript(t *testing.T) {
	s, err := ParseScript([]byte(sampleScript))
	require.NoError(t, err)

	assert.Equal(t, int64(7), s.Seed)
	assert.Equal(t, 0.02, s.DT)
	assert.Equal(t, 60, s.Ticks())
	require.Len(t, s.Steps, 3)
	assert.Equal(t, Step{Ticks: 30, P1: core.IntentUp, P2: core.IntentDown}, s.Steps[0])
	assert.Equal(t, Step{Ticks: 10}, s.Steps[1])
	assert.Equal(t, core.IntentUp, s.Steps[2].P2)
}

func TestParseScriptDefaultsDT(t *testing.T) {
	s, err := ParseScript([]byte("steps:\n  - {ticks: 1}\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultDT, s.DT)
}

func TestParseScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no steps", "seed: 1\n"},
		{"zero ticks", "steps:\n  - {ticks: 0}\n"},
		{"negative dt", "dt: -1\nsteps:\n  - {ticks: 1}\n"},
		{"unknown intent", "steps:\n  - {ticks: 1, p1: sideways}\n"},
		{"malformed", "steps: [\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScript([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadScript(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScript), 0o644))

	s, err := LoadScript(path)
	require.NoError(t, err)
	assert.Equal(t, 60, s.Ticks())

	_, err = LoadScript(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestScriptDriverPlaysStepsInOrder(t *testing.T) {
	s := Script{DT: DefaultDT, Steps: []Step{
		{Ticks: 2, P1: core.IntentUp},
		{Ticks: 1, P2: core.IntentDown},
	}}
	d := s.Driver()

	var got []core.Intents
	for {
		in, ok := d.Intents(nil)
		if !ok {
			break
		}
		got = append(got, in)
	}
	assert.Equal(t, []core.Intents{
		{PlayerOne: core.IntentUp},
		{PlayerOne: core.IntentUp},
		{PlayerTwo: core.IntentDown},
	}, got)
}

func TestRunScriptMovesPaddles(t *testing.T) {
	s, err := ParseScript([]byte(sampleScript))
	require.NoError(t, err)

	res, err := NewRunner(nil).Run(context.Background(), s.Job("script", pong.DefaultSettings()))
	require.NoError(t, err)

	assert.Equal(t, uint64(60), res.Ticks)
	assert.InDelta(t, 1.2, res.SimTime, 1e-9)
	// 30 ticks up pins paddle one at 160; 20 ticks down at 6 units per tick.
	assert.InDelta(t, 40, res.Final.Paddle1Y, 1e-9)
	assert.InDelta(t, -40, res.Final.Paddle2Y, 1e-9)
}

func TestRunRejectsBadJobs(t *testing.T) {
	r := NewRunner(nil)

	_, err := r.Run(context.Background(), Job{ID: "nodriver"})
	assert.ErrorIs(t, err, ErrNoDriver)

	_, err = r.Run(context.Background(), Job{ID: "baddt", DT: -1, Driver: Versus(Idle{}, Idle{})})
	assert.Error(t, err)

	bad := pong.DefaultSettings()
	bad.BallHalfSize = 0
	_, err = r.Run(context.Background(), Job{ID: "badsettings", Settings: bad, Driver: Versus(Idle{}, Idle{})})
	assert.ErrorIs(t, err, pong.ErrInvalidBall)
}

func TestRunStopsAtWinScore(t *testing.T) {
	settings := pong.DefaultSettings()
	settings.WinScore = 1

	// The opening serve clears the right paddle and runs into the right goal.
	res, err := NewRunner(nil).Run(context.Background(), Job{
		ID:       "opening",
		Settings: settings,
		Seed:     1,
		MaxTicks: 100_000,
		Driver:   Versus(Idle{}, Idle{}),
	})
	require.NoError(t, err)

	assert.Equal(t, pong.StateFinished, res.State)
	assert.Equal(t, core.PlayerOne, res.Winner)
	assert.Equal(t, pong.Score{PlayerOne: 1}, res.Score)
	assert.Equal(t, 1, res.Goals)
	assert.Equal(t, 1, res.WallBounces)
	assert.Zero(t, res.PaddleHits)
	assert.Less(t, res.Ticks, uint64(600))
}

func TestTrackerChasesApproachingBall(t *testing.T) {
	m, err := pong.NewMatch(pong.DefaultSettings(), pong.NewRand(1))
	require.NoError(t, err)
	tr := Tracker{Deadzone: 10}

	// Ball on the center spot, level with both paddles.
	assert.Equal(t, core.IntentNone, tr.Intent(m, core.PlayerTwo))

	// One second later it is well above center, heading right.
	for range 60 {
		m.Advance(core.Intents{}, DefaultDT)
	}
	assert.Equal(t, core.IntentUp, tr.Intent(m, core.PlayerTwo))
	assert.Equal(t, core.IntentNone, tr.Intent(m, core.PlayerOne), "ball is moving away")
}

func TestRunBatchIsDeterministic(t *testing.T) {
	jobs := func() []Job {
		var out []Job
		for i := range 8 {
			seed := int64(100 + i)
			out = append(out, Job{
				ID:       fmt.Sprintf("job-%d", i),
				Settings: pong.DefaultSettings(),
				Seed:     seed,
				MaxTicks: 2000,
				Driver:   Versus(NewRandom(seed, 5, 20), Tracker{Deadzone: 5}),
			})
		}
		return out
	}

	r := NewRunner(nil)
	serial, err := r.RunBatch(context.Background(), jobs(), 1)
	require.NoError(t, err)
	parallel, err := r.RunBatch(context.Background(), jobs(), 4)
	require.NoError(t, err)

	require.Len(t, parallel, 8)
	for i := range serial {
		assert.Equal(t, fmt.Sprintf("job-%d", i), parallel[i].JobID, "results keep job order")
		assert.Equal(t, serial[i], parallel[i])
	}
}

func TestRunBatchHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	jobs := []Job{{ID: "a", Settings: pong.DefaultSettings(), Driver: Versus(Idle{}, Idle{})}}
	_, err := NewRunner(nil).RunBatch(ctx, jobs, 2)
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestRunBatchStopsOnFirstError(t *testing.T) {
	jobs := []Job{
		{ID: "broken"},
		{ID: "long", Settings: pong.DefaultSettings(), MaxTicks: 1 << 30, Driver: Versus(Idle{}, Idle{})},
	}
	_, err := NewRunner(nil).RunBatch(context.Background(), jobs, 2)
	assert.ErrorIs(t, err, ErrNoDriver)
}

func TestRecordingRoundTripAndReplay(t *testing.T) {
	var buf bytes.Buffer
	settings := pong.DefaultSettings()
	settings.ServeDelay = 0.25

	rec, err := NewRecorder(&buf, Header{MatchID: "m-1", Seed: 9, DT: DefaultDT, Settings: settings})
	require.NoError(t, err)

	res, err := NewRunner(nil).Run(context.Background(), Job{
		ID:       "m-1",
		Settings: settings,
		Seed:     9,
		DT:       DefaultDT,
		MaxTicks: 1500,
		Driver:   Versus(NewRandom(1, 3, 12), NewRandom(2, 3, 12)),
		Recorder: rec,
	})
	require.NoError(t, err)
	assert.Equal(t, 1500, rec.Frames())

	got, err := ReadRecording(&buf)
	require.NoError(t, err)
	assert.Equal(t, RecordingVersion, got.Header.Version)
	assert.Equal(t, "m-1", got.Header.MatchID)
	assert.Equal(t, settings, got.Header.Settings)
	assert.False(t, got.Header.CreatedAt.IsZero())
	require.Len(t, got.Frames, 1500)

	final, ok := got.Final()
	require.True(t, ok)
	assert.Equal(t, res.Final, final)

	require.NoError(t, Replay(got))

	// Tampering with one frame is caught.
	got.Frames[700].Snapshot.BallX += 1
	assert.ErrorIs(t, Replay(got), ErrDiverged)
}

func TestReadRecordingRejectsGarbage(t *testing.T) {
	_, err := ReadRecording(bytes.NewReader([]byte{0xc1}))
	assert.Error(t, err)
}

func TestRandomHoldsIntent(t *testing.T) {
	r := NewRandom(5, 4, 4)
	first := r.Intent(nil, core.PlayerOne)
	for range 3 {
		assert.Equal(t, first, r.Intent(nil, core.PlayerOne))
	}
}

func TestParseController(t *testing.T) {
	for _, name := range []string{"idle", "tracker", "random", ""} {
		_, ok := ParseController(name, 1)
		assert.True(t, ok, name)
	}
	_, ok := ParseController("telepathy", 1)
	assert.False(t, ok)
}
