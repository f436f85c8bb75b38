package core

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/automoto/ordnance/master"
)

type fakeListing struct{}

func (fakeListing) PlayerCount() int  { return 3 }
func (fakeListing) LevelName() string { return "arena" }
func (fakeListing) MatchID() string   { return "m-1" }

type fakeMaster struct {
	mu         sync.Mutex
	registered []listingBody
	beats      int
	forget     bool
}

func (m *fakeMaster) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var body listingBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	switch req.URL.Path {
	case "/servers/register":
		m.registered = append(m.registered, body)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "srv-1"})
	case "/servers/heartbeat":
		m.beats++
		if m.forget {
			m.forget = false
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestRegistrationListsHost(t *testing.T) {
	master := &fakeMaster{}
	ts := httptest.NewServer(master)
	defer ts.Close()

	r := NewRegistration(ts.URL, Advert{Name: "test", Address: "ws://host:7373", MaxPlayers: 8}, fakeListing{})
	if err := r.register(context.Background()); err != nil {
		t.Fatalf("register: %v", err)
	}
	if r.ID() != "srv-1" {
		t.Fatalf("expected id srv-1, got %q", r.ID())
	}
	got := master.registered[0]
	if got.Name != "test" || got.Players != 3 || got.MaxPlayers != 8 || got.Level != "arena" || got.MatchID != "m-1" {
		t.Fatalf("unexpected listing %+v", got)
	}
}

func TestHeartbeatReregistersWhenForgotten(t *testing.T) {
	master := &fakeMaster{}
	ts := httptest.NewServer(master)
	defer ts.Close()

	r := NewRegistration(ts.URL, Advert{Name: "test"}, fakeListing{})
	ctx := context.Background()
	if err := r.register(ctx); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.heartbeat(ctx); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}

	master.mu.Lock()
	master.forget = true
	master.mu.Unlock()
	if err := r.heartbeat(ctx); err != nil {
		t.Fatalf("heartbeat after expiry: %v", err)
	}
	if len(master.registered) != 2 || master.beats != 2 {
		t.Fatalf("expected a second registration, got %d registrations and %d beats", len(master.registered), master.beats)
	}
}

func TestHeartbeatBeforeListingRegisters(t *testing.T) {
	master := &fakeMaster{}
	ts := httptest.NewServer(master)
	defer ts.Close()

	r := NewRegistration(ts.URL, Advert{}, fakeListing{})
	if err := r.heartbeat(context.Background()); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	if r.ID() == "" || master.beats != 0 {
		t.Fatalf("expected registration instead of a heartbeat")
	}
}

func TestStopWithoutStart(t *testing.T) {
	r := NewRegistration("http://127.0.0.1:0", Advert{}, fakeListing{})
	r.Stop()
}

func TestRegistrationAgainstDirectory(t *testing.T) {
	reg := master.NewRegistry(time.Minute, nil)
	ts := httptest.NewServer(master.NewHandler(reg))
	defer ts.Close()

	r := NewRegistration(ts.URL, Advert{Name: "duel", Address: "host:7373", MaxPlayers: 4}, fakeListing{})
	ctx := context.Background()
	if err := r.register(ctx); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := r.heartbeat(ctx); err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	list := reg.List("")
	if len(list) != 1 || list[0].ID != r.ID() || list[0].Players != 3 || list[0].MatchID != "m-1" {
		t.Fatalf("unexpected directory %+v", list)
	}
}
