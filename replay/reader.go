package replay

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
)

// LoadManifest reads the manifest of the session in dir.
func LoadManifest(dir string) (Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, manifestFile))
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("parse manifest: %w", err)
	}
	return m, nil
}

// ReadEvents decodes the whole event journal of the session in dir.
func ReadEvents(dir string) ([]Event, error) {
	f, err := os.Open(filepath.Join(dir, eventsFile))
	if err != nil {
		return nil, fmt.Errorf("open event journal: %w", err)
	}
	defer f.Close()

	var out []Event
	scanner := bufio.NewScanner(snappy.NewReader(f))
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var evt Event
		if err := json.Unmarshal(scanner.Bytes(), &evt); err != nil {
			return out, fmt.Errorf("parse journal line %d: %w", len(out)+1, err)
		}
		out = append(out, evt)
	}
	if err := scanner.Err(); err != nil {
		return out, fmt.Errorf("read event journal: %w", err)
	}
	return out, nil
}

// ReadFrames decodes the whole frame stream of the session in dir.
func ReadFrames(dir string) ([]Frame, error) {
	f, err := os.Open(filepath.Join(dir, framesFile))
	if err != nil {
		return nil, fmt.Errorf("open frame stream: %w", err)
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("open zstd decoder: %w", err)
	}
	defer dec.Close()

	var out []Frame
	var head [frameHeaderSize]byte
	for {
		if _, err := io.ReadFull(dec, head[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("read frame header: %w", err)
		}
		frame := Frame{
			Tick:  binary.LittleEndian.Uint64(head[0:8]),
			SimMs: int64(binary.LittleEndian.Uint64(head[8:16])),
		}
		payload := make([]byte, binary.LittleEndian.Uint32(head[16:20]))
		if _, err := io.ReadFull(dec, payload); err != nil {
			return out, fmt.Errorf("read frame %d: %w", frame.Tick, err)
		}
		if err := json.Unmarshal(payload, &frame.Projectiles); err != nil {
			return out, fmt.Errorf("parse frame %d: %w", frame.Tick, err)
		}
		out = append(out, frame)
	}
}
