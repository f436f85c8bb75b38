// Package stats keeps a per-player tally of shots, damage, frags and deaths
// across matches.
package stats

import (
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"sync"

	"github.com/quasilyte/gdata"
)

const ledgerKey = "ledger"

// ItemStore is the subset of *gdata.Manager the ledger needs.
type ItemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// Record is the saved tally for one player name.
type Record struct {
	Name    string `json:"name"`
	Shots   int    `json:"shots"`  // damage the player's shots could have dealt
	Damage  int    `json:"damage"` // damage actually dealt
	Frags   int    `json:"frags"`
	Deaths  int    `json:"deaths"`
	Matches int    `json:"matches"`
}

// Accuracy is dealt damage over potential damage, in [0, 1].
func (r Record) Accuracy() float64 {
	if r.Shots <= 0 {
		return 0
	}
	return min(float64(r.Damage)/float64(r.Shots), 1)
}

// Ledger accumulates records in memory and writes them back on Flush.
type Ledger struct {
	mu      sync.Mutex
	store   ItemStore
	records map[string]*Record
	dirty   bool
}

// Open opens the gdata storage for appName and loads the saved ledger.
func Open(appName string) (*Ledger, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open stats storage: %w", err)
	}
	return New(m)
}

// New loads the ledger from store. A missing item starts an empty ledger.
func New(store ItemStore) (*Ledger, error) {
	l := &Ledger{store: store, records: make(map[string]*Record)}

	data, err := store.LoadItem(ledgerKey)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	if data == nil {
		return l, nil
	}

	var saved []Record
	if err := json.Unmarshal(data, &saved); err != nil {
		// A corrupt ledger should not keep the host down.
		log.Printf("[stats] Warning: Could not parse saved ledger: %v", err)
		return l, nil
	}
	for i := range saved {
		r := saved[i]
		l.records[r.Name] = &r
	}
	return l, nil
}

func (l *Ledger) get(name string) *Record {
	r, ok := l.records[name]
	if !ok {
		r = &Record{Name: name}
		l.records[name] = r
	}
	l.dirty = true
	return r
}

// AddShots adds the potential and dealt damage of a finished life.
func (l *Ledger) AddShots(name string, shots, damage int) {
	if name == "" || (shots <= 0 && damage <= 0) {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	r := l.get(name)
	r.Shots += max(shots, 0)
	r.Damage += max(damage, 0)
}

// AddKill credits killer with a frag and victim with a death. Either name
// may be empty.
func (l *Ledger) AddKill(killer, victim string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if victim != "" {
		l.get(victim).Deaths++
	}
	if killer != "" && killer != victim {
		l.get(killer).Frags++
	}
}

// EndMatch counts a played match for every name.
func (l *Ledger) EndMatch(names ...string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, n := range names {
		if n != "" {
			l.get(n).Matches++
		}
	}
}

// Get returns the record for name.
func (l *Ledger) Get(name string) (Record, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	r, ok := l.records[name]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Top returns up to n records ordered by frags, then damage.
func (l *Ledger) Top(n int) []Record {
	l.mu.Lock()
	out := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, *r)
	}
	l.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Frags != out[j].Frags {
			return out[i].Frags > out[j].Frags
		}
		if out[i].Damage != out[j].Damage {
			return out[i].Damage > out[j].Damage
		}
		return out[i].Name < out[j].Name
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Flush saves the ledger if anything changed since the last flush.
func (l *Ledger) Flush() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.dirty {
		return nil
	}

	saved := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		saved = append(saved, *r)
	}
	sort.Slice(saved, func(i, j int) bool { return saved[i].Name < saved[j].Name })

	data, err := json.Marshal(saved)
	if err != nil {
		return fmt.Errorf("serialize ledger: %w", err)
	}
	if err := l.store.SaveItem(ledgerKey, data); err != nil {
		log.Printf("[stats] Warning: Could not save ledger: %v", err)
		return fmt.Errorf("save ledger: %w", err)
	}
	l.dirty = false
	return nil
}
