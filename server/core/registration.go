package core

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

// HeartbeatInterval is how often a listed host reports to the master.
const HeartbeatInterval = 30 * time.Second

// errUnlisted means the master no longer knows our listing.
var errUnlisted = errors.New("listing expired")

// Listing is what a Registration reports about its host.
type Listing interface {
	PlayerCount() int
	LevelName() string
	MatchID() string
}

// Advert is the static part of a master server listing.
type Advert struct {
	Name       string
	Address    string
	Version    string
	Region     string
	MaxPlayers int
}

// Registration lists the host on a master server and keeps the listing
// alive with heartbeats.
type Registration struct {
	masterURL string
	advert    Advert
	host      Listing
	client    *http.Client
	interval  time.Duration

	mu     sync.Mutex
	id     string
	cancel context.CancelFunc
	done   chan struct{}
}

type listingBody struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name,omitempty"`
	Address    string `json:"address,omitempty"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"maxPlayers,omitempty"`
	Version    string `json:"version,omitempty"`
	Region     string `json:"region,omitempty"`
	Level      string `json:"level"`
	MatchID    string `json:"matchId,omitempty"`
}

func NewRegistration(masterURL string, advert Advert, host Listing) *Registration {
	return &Registration{
		masterURL: masterURL,
		advert:    advert,
		host:      host,
		client:    &http.Client{Timeout: 5 * time.Second},
		interval:  HeartbeatInterval,
	}
}

// Start lists the host and heartbeats until ctx ends or Stop is called. A
// failed first listing is retried on the next beat.
func (r *Registration) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	if err := r.register(ctx); err != nil {
		log.Printf("[registration] initial registration failed: %v", err)
	}
	go r.beat(ctx)
}

func (r *Registration) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}

// ID is the listing id the master assigned, empty until registered.
func (r *Registration) ID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.id
}

func (r *Registration) register(ctx context.Context) error {
	a := r.advert
	var out struct {
		ID string `json:"id"`
	}
	err := r.post(ctx, "/servers/register", http.StatusCreated, listingBody{
		Name:       a.Name,
		Address:    a.Address,
		Players:    r.host.PlayerCount(),
		MaxPlayers: a.MaxPlayers,
		Version:    a.Version,
		Region:     a.Region,
		Level:      r.host.LevelName(),
		MatchID:    r.host.MatchID(),
	}, &out)
	if err != nil {
		return err
	}
	if out.ID == "" {
		return errors.New("master returned no listing id")
	}

	r.mu.Lock()
	r.id = out.ID
	r.mu.Unlock()
	log.Printf("[registration] listed on master as %s", out.ID)
	return nil
}

func (r *Registration) beat(ctx context.Context) {
	defer close(r.done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := r.heartbeat(ctx); err != nil && ctx.Err() == nil {
				log.Printf("[registration] heartbeat failed: %v", err)
			}
		}
	}
}

func (r *Registration) heartbeat(ctx context.Context) error {
	id := r.ID()
	if id == "" {
		return r.register(ctx)
	}
	err := r.post(ctx, "/servers/heartbeat", http.StatusOK, listingBody{
		ID:      id,
		Players: r.host.PlayerCount(),
		Level:   r.host.LevelName(),
	}, nil)
	if errors.Is(err, errUnlisted) {
		log.Println("[registration] master dropped our listing, registering again")
		return r.register(ctx)
	}
	return err
}

// post sends body as JSON and decodes the reply into out when out is set.
func (r *Registration) post(ctx context.Context, path string, want int, body listingBody, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.masterURL+path, bytes.NewReader(buf))
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errUnlisted
	case resp.StatusCode != want:
		return fmt.Errorf("post %s: unexpected status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
