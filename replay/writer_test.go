package replay

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func TestWriterRoundTrip(t *testing.T) {
	root := t.TempDir()
	w, manifest, err := NewWriter(root, "Duel #1", "arena", fixedClock)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if _, err := uuid.Parse(manifest.Session); err != nil {
		t.Fatalf("expected a uuid session, got %q", manifest.Session)
	}
	if filepath.Dir(w.Dir()) != root || !strings.HasPrefix(filepath.Base(w.Dir()), "Duel1-") {
		t.Fatalf("unexpected session dir %s", w.Dir())
	}

	type shot struct {
		Shooter int
		Attack  int
	}
	if err := w.AppendEvent(3, 99, "shoot", shot{Shooter: 2, Attack: 7}); err != nil {
		t.Fatalf("append event: %v", err)
	}
	if err := w.AppendEvent(4, 132, "explode", shot{Shooter: 2, Attack: 7}); err != nil {
		t.Fatalf("append event: %v", err)
	}

	rocket := Projectile{ID: 5, Kind: 3, Attack: 7, Owner: 2, Pos: [3]float64{1, 2, 3}}
	for i := range 4 {
		rocket.Pos[0] += 10
		if err := w.AppendFrame(uint64(i), int64(i)*100, []Projectile{rocket}); err != nil {
			t.Fatalf("append frame %d: %v", i, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	loaded, err := LoadManifest(w.Dir())
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if loaded.Session != manifest.Session || loaded.Level != "arena" || loaded.Match != "Duel #1" {
		t.Fatalf("unexpected manifest %+v", loaded)
	}

	events, err := ReadEvents(w.Dir())
	if err != nil {
		t.Fatalf("read events: %v", err)
	}
	if len(events) != 2 || events[0].Type != "shoot" || events[1].Tick != 4 {
		t.Fatalf("unexpected events %+v", events)
	}
	var got shot
	if err := json.Unmarshal(events[0].Data, &got); err != nil || got.Shooter != 2 {
		t.Fatalf("unexpected event data %s (%v)", events[0].Data, err)
	}

	frames, err := ReadFrames(w.Dir())
	if err != nil {
		t.Fatalf("read frames: %v", err)
	}
	if len(frames) != 4 {
		t.Fatalf("expected 4 frames, got %d", len(frames))
	}
	last := frames[3]
	if last.Tick != 3 || last.SimMs != 300 || len(last.Projectiles) != 1 || last.Projectiles[0].Pos[0] != 41 {
		t.Fatalf("unexpected last frame %+v", last)
	}
}

func TestFramesBatchByInterval(t *testing.T) {
	w, _, err := NewWriter(t.TempDir(), "batch", "", fixedClock)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	defer w.Close()

	steps := []struct {
		simMs   int64
		pending int
	}{
		{0, 1},
		{100, 2},
		{150, 3},
		{200, 0},
		{250, 1},
	}
	for i, s := range steps {
		if err := w.AppendFrame(uint64(i), s.simMs, nil); err != nil {
			t.Fatalf("append at %d: %v", s.simMs, err)
		}
		if w.Pending() != s.pending {
			t.Fatalf("at %d ms expected %d pending, got %d", s.simMs, s.pending, w.Pending())
		}
	}

	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if w.Pending() != 0 {
		t.Fatalf("expected flush to drain the buffer")
	}
}

func TestAppendAfterCloseFails(t *testing.T) {
	w, _, err := NewWriter(t.TempDir(), "", "", fixedClock)
	if err != nil {
		t.Fatalf("new writer: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(w.Dir()), "match-") {
		t.Fatalf("expected default match name, got %s", w.Dir())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := w.AppendEvent(0, 0, "shoot", nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	if err := w.AppendFrame(0, 0, nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestNewWriterNeedsRoot(t *testing.T) {
	if _, _, err := NewWriter("", "m", "", nil); err == nil {
		t.Fatalf("expected an error without a root")
	}
}
