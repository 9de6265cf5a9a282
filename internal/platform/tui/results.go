package tui

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// MatchSaver persists finished matches. *storage.Store satisfies it.
type MatchSaver interface {
	SaveMatch(rec storage.MatchRecord) (int64, error)
}

// resultTracker follows the current match and saves it exactly once. It is
// shared by pointer between the Bubble Tea model copies and, for SSH
// sessions, the middleware that notices disconnects.
type resultTracker struct {
	saver  MatchSaver
	logger *log.Logger

	mu      sync.Mutex
	rec     storage.MatchRecord
	started time.Time
	saved   bool
}

func newResultTracker(saver MatchSaver, logger *log.Logger, mode, player1, player2 string) *resultTracker {
	return &resultTracker{
		saver:  saver,
		logger: logger,
		rec: storage.MatchRecord{
			Mode:    mode,
			Player1: player1,
			Player2: player2,
		},
	}
}

// Begin starts tracking a new match.
func (t *resultTracker) Begin(seed int64, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.rec.MatchID = storage.NewMatchID()
	t.rec.Seed = seed
	t.rec.Score1, t.rec.Score2 = 0, 0
	t.rec.Ticks = 0
	t.rec.Winner = ""
	t.started = now
	t.saved = false
}

// Update copies the live score.
func (t *resultTracker) Update(m *pong.Match) {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := m.Score()
	t.rec.Score1, t.rec.Score2 = s.PlayerOne, s.PlayerTwo
	t.rec.Ticks = int64(m.Tick())
	switch m.Winner() {
	case core.PlayerOne:
		t.rec.Winner = t.rec.Player1
	case core.PlayerTwo:
		t.rec.Winner = t.rec.Player2
	}
}

// Finish saves the match with the given end reason. Matches that never
// ticked and matches already saved are skipped.
func (t *resultTracker) Finish(reason string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.saved || t.rec.Ticks == 0 {
		return
	}
	t.saved = true

	rec := t.rec
	rec.EndReason = reason
	rec.Duration = now.Sub(t.started)
	if t.saver == nil {
		return
	}
	if _, err := t.saver.SaveMatch(rec); err != nil {
		t.logger.Warn("could not save match", "match", rec.MatchID, "error", err)
		return
	}
	t.logger.Info("match saved",
		"match", rec.MatchID,
		"score", pong.Score{PlayerOne: rec.Score1, PlayerTwo: rec.Score2},
		"reason", reason,
	)
}

// Record returns a copy of the tracked record.
func (t *resultTracker) Record() storage.MatchRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rec
}

// Saved reports whether the current match was persisted.
func (t *resultTracker) Saved() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saved
}
