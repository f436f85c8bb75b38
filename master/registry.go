// Package master is the host directory: hosts list themselves, heartbeat
// while they run and expire when they go quiet.
package master

import (
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Listing describes a host visible to peers.
type Listing struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	Players    int       `json:"players"`
	MaxPlayers int       `json:"maxPlayers"`
	Version    string    `json:"version"`
	Region     string    `json:"region"`
	Level      string    `json:"level"`
	MatchID    string    `json:"matchId"`
	LastSeen   time.Time `json:"lastSeen"`
}

// Registry holds the live listings. Entries not refreshed within ttl are
// dropped by Expire.
type Registry struct {
	mu       sync.RWMutex
	listings map[string]*Listing
	ttl      time.Duration
	now      func() time.Time
}

func NewRegistry(ttl time.Duration, clock func() time.Time) *Registry {
	if clock == nil {
		clock = time.Now
	}
	return &Registry{
		listings: make(map[string]*Listing),
		ttl:      ttl,
		now:      clock,
	}
}

// Register stores l under a fresh id and returns the id.
func (r *Registry) Register(l Listing) string {
	l.ID = uuid.NewString()
	l.LastSeen = r.now()

	r.mu.Lock()
	r.listings[l.ID] = &l
	r.mu.Unlock()
	return l.ID
}

// Heartbeat refreshes a listing. It reports false for unknown ids, which
// tells the host to register again.
func (r *Registry) Heartbeat(id string, players int, level string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.listings[id]
	if !ok {
		return false
	}
	l.LastSeen = r.now()
	l.Players = players
	if level != "" {
		l.Level = level
	}
	return true
}

// List returns the listings matching version (all when empty), by name.
func (r *Registry) List(version string) []Listing {
	r.mu.RLock()
	out := make([]Listing, 0, len(r.listings))
	for _, l := range r.listings {
		if version == "" || l.Version == "" || l.Version == version {
			out = append(out, *l)
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Expire drops listings idle for ttl or longer and returns how many went.
func (r *Registry) Expire() int {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, l := range r.listings {
		if idle := now.Sub(l.LastSeen); idle >= r.ttl {
			log.Printf("[master] expired %q (id=%s, last seen %s ago)", l.Name, id, idle.Round(time.Second))
			delete(r.listings, id)
			n++
		}
	}
	return n
}

// Sweep calls Expire every interval until stop is closed.
func (r *Registry) Sweep(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.Expire()
		}
	}
}
