package tui

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

type fakeSaver struct {
	saved []storage.MatchRecord
	err   error
}

func (f *fakeSaver) SaveMatch(rec storage.MatchRecord) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, rec)
	return int64(len(f.saved)), nil
}

func advancedMatch(t *testing.T, ticks int) *pong.Match {
	t.Helper()
	m, err := pong.NewMatch(pong.DefaultSettings(), pong.NewRand(3))
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	for range ticks {
		m.Advance(core.Intents{}, 1.0/60)
	}
	return m
}

func TestResultTrackerSavesOnce(t *testing.T) {
	saver := &fakeSaver{}
	tr := newResultTracker(saver, log.New(io.Discard), storage.ModeSSH, "alice", "tracker")
	start := time.Unix(1000, 0)

	tr.Begin(99, start)
	tr.Update(advancedMatch(t, 30))
	tr.Finish(storage.EndDisconnect, start.Add(2*time.Second))
	tr.Finish(storage.EndQuit, start.Add(3*time.Second))

	if len(saver.saved) != 1 {
		t.Fatalf("saved %d records, want 1", len(saver.saved))
	}
	rec := saver.saved[0]
	if rec.EndReason != storage.EndDisconnect || rec.Duration != 2*time.Second {
		t.Errorf("record = %+v", rec)
	}
	if rec.Ticks != 30 || rec.Seed != 99 || rec.Mode != storage.ModeSSH || rec.MatchID == "" {
		t.Errorf("record = %+v", rec)
	}
	if !tr.Saved() {
		t.Error("Saved() = false after Finish")
	}

	// A new match re-arms the tracker with a fresh ID.
	first := rec.MatchID
	tr.Begin(100, start)
	if tr.Saved() || tr.Record().MatchID == first {
		t.Error("Begin should reset the tracker")
	}
}

func TestResultTrackerSkipsUnplayedMatch(t *testing.T) {
	saver := &fakeSaver{}
	tr := newResultTracker(saver, log.New(io.Discard), storage.ModeLocal, "p1", "p2")

	tr.Begin(1, time.Now())
	tr.Finish(storage.EndQuit, time.Now())

	if len(saver.saved) != 0 {
		t.Errorf("saved %d records for a match that never ticked", len(saver.saved))
	}
}

func TestResultTrackerMapsWinnerToName(t *testing.T) {
	saver := &fakeSaver{}
	tr := newResultTracker(saver, log.New(io.Discard), storage.ModeLocal, "alice", "bob")

	settings := pong.DefaultSettings()
	settings.WinScore = 1
	m, err := pong.NewMatch(settings, pong.NewRand(1))
	if err != nil {
		t.Fatalf("NewMatch: %v", err)
	}
	for i := 0; i < 1000 && !m.Over(); i++ {
		m.Advance(core.Intents{}, 1.0/60)
	}

	tr.Begin(1, time.Now())
	tr.Update(m)
	if got := tr.Record().Winner; got != "alice" {
		t.Errorf("winner = %q, want alice", got)
	}
}

func TestResultTrackerSaveErrorIsNotRetried(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	tr := newResultTracker(saver, log.New(io.Discard), storage.ModeLocal, "p1", "p2")

	tr.Begin(1, time.Now())
	tr.Update(advancedMatch(t, 5))
	tr.Finish(storage.EndQuit, time.Now())

	saver.err = nil
	tr.Finish(storage.EndQuit, time.Now())
	if len(saver.saved) != 0 {
		t.Errorf("failed save was retried: %d records", len(saver.saved))
	}
}
