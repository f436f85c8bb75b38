// Package replay records a match to disk: a snappy-framed JSON line journal
// of shoot, explode and death events, and a zstd stream of projectile
// frames.
package replay

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sync"
	"time"

	"github.com/golang/snappy"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// ErrClosed is returned by appends after Close.
var ErrClosed = errors.New("replay: writer closed")

const (
	eventsFile   = "events.jsonl.sz"
	framesFile   = "frames.bin.zst"
	manifestFile = "manifest.json"

	// frameHeaderSize is tick (8) + sim ms (8) + payload length (4).
	frameHeaderSize = 20
)

// DefaultFrameInterval is the simulated time between persisted frame batches.
const DefaultFrameInterval int64 = 200

var nameCleaner = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Manifest describes a recorded session.
type Manifest struct {
	Version         int    `json:"version"`
	Session         string `json:"session"`
	Match           string `json:"match"`
	Level           string `json:"level"`
	CreatedAt       string `json:"created_at"`
	FrameIntervalMs int64  `json:"frame_interval_ms"`
	EventsPath      string `json:"events_path"`
	FramesPath      string `json:"frames_path"`
}

// Event is one journal line.
type Event struct {
	Tick  uint64          `json:"tick"`
	SimMs int64           `json:"sim_ms"`
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
}

// Projectile is one projectile inside a frame.
type Projectile struct {
	ID      int64      `json:"id"`
	Kind    int        `json:"kind"`
	Attack  int        `json:"attack"`
	Owner   int        `json:"owner"`
	Pos     [3]float64 `json:"pos"`
	Bounces int        `json:"bounces,omitempty"`
}

// Frame is the projectile set at one tick.
type Frame struct {
	Tick        uint64       `json:"tick"`
	SimMs       int64        `json:"sim_ms"`
	Projectiles []Projectile `json:"projectiles"`
}

// Writer streams a session to a directory. It is safe for concurrent use.
type Writer struct {
	mu       sync.Mutex
	dir      string
	interval int64
	closed   bool

	eventFile *os.File
	events    *snappy.Writer
	frameFile *os.File
	frames    *zstd.Encoder

	pending   []Frame
	lastFlush int64
	flushed   bool
}

// NewWriter creates root/<match>-<session> and opens both streams.
func NewWriter(root, match, level string, clock func() time.Time) (*Writer, Manifest, error) {
	if root == "" {
		return nil, Manifest{}, fmt.Errorf("replay root must be provided")
	}
	if clock == nil {
		clock = time.Now
	}

	name := nameCleaner.ReplaceAllString(match, "")
	if name == "" {
		name = "match"
	}
	session := uuid.NewString()
	dir := filepath.Join(root, name+"-"+session)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, Manifest{}, fmt.Errorf("create replay dir: %w", err)
	}

	manifest := Manifest{
		Version:         1,
		Session:         session,
		Match:           match,
		Level:           level,
		CreatedAt:       clock().UTC().Format(time.RFC3339Nano),
		FrameIntervalMs: DefaultFrameInterval,
		EventsPath:      eventsFile,
		FramesPath:      framesFile,
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, Manifest{}, fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifestFile), data, 0o644); err != nil {
		return nil, Manifest{}, fmt.Errorf("write manifest: %w", err)
	}

	eventFile, err := os.Create(filepath.Join(dir, eventsFile))
	if err != nil {
		return nil, Manifest{}, fmt.Errorf("create event journal: %w", err)
	}
	frameFile, err := os.Create(filepath.Join(dir, framesFile))
	if err != nil {
		eventFile.Close()
		return nil, Manifest{}, fmt.Errorf("create frame stream: %w", err)
	}
	frames, err := zstd.NewWriter(frameFile)
	if err != nil {
		eventFile.Close()
		frameFile.Close()
		return nil, Manifest{}, fmt.Errorf("open zstd encoder: %w", err)
	}

	log.Printf("[replay] recording session %s to %s", session, dir)
	return &Writer{
		dir:       dir,
		interval:  DefaultFrameInterval,
		eventFile: eventFile,
		events:    snappy.NewBufferedWriter(eventFile),
		frameFile: frameFile,
		frames:    frames,
	}, manifest, nil
}

// Dir is the session directory.
func (w *Writer) Dir() string {
	return w.dir
}

// AppendEvent marshals data and writes it as one journal line.
func (w *Writer) AppendEvent(tick uint64, simMs int64, kind string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", kind, err)
	}
	line, err := json.Marshal(Event{Tick: tick, SimMs: simMs, Type: kind, Data: raw})
	if err != nil {
		return fmt.Errorf("marshal journal line: %w", err)
	}
	line = append(line, '\n')

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if _, err := w.events.Write(line); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	return w.events.Flush()
}

// AppendFrame buffers a frame. Buffered frames are compressed once simMs has
// moved a frame interval past the previous batch.
func (w *Writer) AppendFrame(tick uint64, simMs int64, projectiles []Projectile) error {
	frame := Frame{Tick: tick, SimMs: simMs, Projectiles: append([]Projectile(nil), projectiles...)}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	w.pending = append(w.pending, frame)
	if !w.flushed {
		w.flushed = true
		w.lastFlush = simMs
		return nil
	}
	if simMs-w.lastFlush < w.interval {
		return nil
	}
	w.lastFlush = simMs
	return w.flushLocked()
}

// Flush writes every buffered frame now.
func (w *Writer) Flush() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	if err := w.flushLocked(); err != nil {
		return err
	}
	return w.frames.Flush()
}

// Pending is the number of buffered frames.
func (w *Writer) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *Writer) flushLocked() error {
	for _, f := range w.pending {
		payload, err := json.Marshal(f.Projectiles)
		if err != nil {
			return fmt.Errorf("marshal frame %d: %w", f.Tick, err)
		}
		var head [frameHeaderSize]byte
		binary.LittleEndian.PutUint64(head[0:8], f.Tick)
		binary.LittleEndian.PutUint64(head[8:16], uint64(f.SimMs))
		binary.LittleEndian.PutUint32(head[16:20], uint32(len(payload)))
		if _, err := w.frames.Write(head[:]); err != nil {
			return fmt.Errorf("write frame header: %w", err)
		}
		if _, err := w.frames.Write(payload); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}
	}
	w.pending = w.pending[:0]
	return nil
}

// Close flushes both streams and releases the files. Further appends return
// ErrClosed. Close is idempotent.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	errs := []error{
		w.flushLocked(),
		w.events.Close(),
		w.eventFile.Close(),
		w.frames.Close(),
		w.frameFile.Close(),
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close replay: %w", err)
	}
	log.Printf("[replay] closed %s", w.dir)
	return nil
}
