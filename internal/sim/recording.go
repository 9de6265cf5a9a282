package sim

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/pong"
)

// RecordingVersion is bumped whenever the frame layout changes.
const RecordingVersion = 1

// ErrDiverged is returned when a replay does not reproduce a recording.
var ErrDiverged = errors.New("sim: replay diverged from recording")

// Header opens a recording. It carries everything needed to replay it.
type Header struct {
	Version   int           `msgpack:"v"`
	MatchID   string        `msgpack:"id"`
	Seed      int64         `msgpack:"seed"`
	DT        float64       `msgpack:"dt"`
	Settings  pong.Settings `msgpack:"settings"`
	CreatedAt time.Time     `msgpack:"created_at"`
}

// Frame is one tick: the intents fed in and the state that came out.
type Frame struct {
	Intents  core.Intents
	Snapshot pong.Snapshot
}

// frameRecord is the on-disk frame. Intents are stored as small ints.
type frameRecord struct {
	P1   int8          `msgpack:"p1"`
	P2   int8          `msgpack:"p2"`
	Snap pong.Snapshot `msgpack:"s"`
}

// Recording is a fully decoded recording.
type Recording struct {
	Header Header
	Frames []Frame
}

// Recorder streams a header and frames to a writer as consecutive
// msgpack values.
type Recorder struct {
	enc    *msgpack.Encoder
	frames int
}

// NewRecorder writes the header and returns a recorder for the frames.
func NewRecorder(w io.Writer, h Header) (*Recorder, error) {
	h.Version = RecordingVersion
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(h); err != nil {
		return nil, fmt.Errorf("sim: cannot write recording header: %w", err)
	}
	return &Recorder{enc: enc}, nil
}

// Write appends one frame.
func (r *Recorder) Write(f Frame) error {
	rec := frameRecord{
		P1:   int8(f.Intents.PlayerOne),
		P2:   int8(f.Intents.PlayerTwo),
		Snap: f.Snapshot,
	}
	if err := r.enc.Encode(rec); err != nil {
		return fmt.Errorf("sim: cannot write frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Frames returns how many frames were written.
func (r *Recorder) Frames() int { return r.frames }

// ReadRecording decodes a recording written by Recorder.
func ReadRecording(rd io.Reader) (Recording, error) {
	dec := msgpack.NewDecoder(rd)

	var rec Recording
	if err := dec.Decode(&rec.Header); err != nil {
		return Recording{}, fmt.Errorf("sim: cannot read recording header: %w", err)
	}
	if rec.Header.Version != RecordingVersion {
		return Recording{}, fmt.Errorf("sim: unsupported recording version %d", rec.Header.Version)
	}

	for {
		var fr frameRecord
		err := dec.Decode(&fr)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Recording{}, fmt.Errorf("sim: cannot read frame %d: %w", len(rec.Frames), err)
		}
		rec.Frames = append(rec.Frames, Frame{
			Intents:  core.Intents{PlayerOne: core.Intent(fr.P1), PlayerTwo: core.Intent(fr.P2)},
			Snapshot: fr.Snap,
		})
	}
	return rec, nil
}

// Final returns the last recorded snapshot.
func (r Recording) Final() (pong.Snapshot, bool) {
	if len(r.Frames) == 0 {
		return pong.Snapshot{}, false
	}
	return r.Frames[len(r.Frames)-1].Snapshot, true
}

// Replay re-simulates the recording from its header and checks every
// snapshot. It returns ErrDiverged with the first mismatching tick.
func Replay(rec Recording) error {
	match, err := pong.NewMatch(rec.Header.Settings, pong.NewRand(rec.Header.Seed))
	if err != nil {
		return fmt.Errorf("sim: cannot rebuild match: %w", err)
	}
	for i, f := range rec.Frames {
		match.Advance(f.Intents, rec.Header.DT)
		if got := match.Snapshot(); got != f.Snapshot {
			return fmt.Errorf("%w at frame %d (tick %d)", ErrDiverged, i, f.Snapshot.Tick)
		}
	}
	return nil
}
