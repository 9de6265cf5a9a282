package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-pong/internal/storage"
)

type fakeHistory struct {
	all []storage.MatchRecord
	err error
}

func (f fakeHistory) RecentMatches(limit int) ([]storage.MatchRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.all, nil
}

func (f fakeHistory) PlayerMatches(player string, limit int) ([]storage.MatchRecord, error) {
	var out []storage.MatchRecord
	for _, r := range f.all {
		if r.Player1 == player || r.Player2 == player {
			out = append(out, r)
		}
	}
	return out, f.err
}

func sampleHistory() fakeHistory {
	return fakeHistory{all: []storage.MatchRecord{
		{Mode: storage.ModeSSH, Player1: "alice", Player2: "tracker", Score1: 5, Score2: 3, Winner: "alice", EndReason: storage.EndCompleted},
		{Mode: storage.ModeLocal, Player1: "p1", Player2: "p2", Score1: 1, Score2: 1, EndReason: storage.EndQuit},
		{Mode: storage.ModeSim, Player1: "bob", Player2: "alice", Score1: 0, Score2: 2, EndReason: storage.EndTickLimit},
	}}
}

func TestHistoryFilterToggle(t *testing.T) {
	m := NewHistoryModel(sampleHistory(), "alice", 100, 30)

	if got := len(m.Rows()); got != 2 {
		t.Fatalf("filtered rows = %d, want 2", got)
	}
	if !strings.Contains(m.Title(), "alice") {
		t.Errorf("title = %q", m.Title())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if got := len(m.Rows()); got != 3 {
		t.Errorf("unfiltered rows = %d, want 3", got)
	}
	if m.Title() != "MATCH HISTORY" {
		t.Errorf("title = %q", m.Title())
	}
}

func TestHistoryRowsAdaptToWidth(t *testing.T) {
	wide := NewHistoryModel(sampleHistory(), "", 100, 30)
	row := wide.Rows()[0]
	if len(row) != 7 {
		t.Fatalf("wide row has %d columns, want 7", len(row))
	}
	if row[2] != "5-3" || row[4] != "alice" || row[5] != storage.ModeSSH || row[6] != storage.EndCompleted {
		t.Errorf("row = %v", row)
	}
	if got := wide.Rows()[1][4]; got != "-" {
		t.Errorf("drawn match winner = %q, want -", got)
	}

	narrow := NewHistoryModel(sampleHistory(), "", 60, 30)
	if got := len(narrow.Rows()[0]); got != 5 {
		t.Errorf("narrow row has %d columns, want 5", got)
	}
}

func TestHistoryTabWithoutPlayerKeepsAll(t *testing.T) {
	m := NewHistoryModel(sampleHistory(), "", 100, 30)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if got := len(next.(HistoryModel).Rows()); got != 3 {
		t.Errorf("rows = %d, want 3", got)
	}
}

func TestHistoryViewMessages(t *testing.T) {
	empty := NewHistoryModel(fakeHistory{}, "", 100, 30)
	if !strings.Contains(empty.View(), "No matches recorded yet") {
		t.Error("empty history message missing")
	}

	broken := NewHistoryModel(fakeHistory{err: errors.New("locked")}, "", 100, 30)
	if !strings.Contains(broken.View(), "locked") {
		t.Error("load error not shown")
	}

	next, cmd := empty.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil || next.View() != "" {
		t.Error("q should quit the history screen")
	}
}
