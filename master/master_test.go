package master

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestRegistryExpiresQuietHosts(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	reg := NewRegistry(90*time.Second, clock.now)

	a := reg.Register(Listing{Name: "alpha", Address: "a:1"})
	b := reg.Register(Listing{Name: "bravo", Address: "b:1"})
	if a == b {
		t.Fatalf("expected distinct ids")
	}

	clock.t = clock.t.Add(60 * time.Second)
	if !reg.Heartbeat(b, 4, "arena") {
		t.Fatalf("expected heartbeat to find bravo")
	}
	clock.t = clock.t.Add(30 * time.Second)
	if n := reg.Expire(); n != 1 {
		t.Fatalf("expected one expiry, got %d", n)
	}

	list := reg.List("")
	if len(list) != 1 || list[0].ID != b || list[0].Players != 4 || list[0].Level != "arena" {
		t.Fatalf("unexpected listings %+v", list)
	}
	if reg.Heartbeat(a, 1, "") {
		t.Fatalf("expired host must not heartbeat")
	}
}

func TestListFiltersByVersion(t *testing.T) {
	reg := NewRegistry(time.Minute, nil)
	reg.Register(Listing{Name: "old", Version: "1.0"})
	reg.Register(Listing{Name: "new", Version: "1.1"})
	reg.Register(Listing{Name: "any"})

	got := reg.List("1.1")
	if len(got) != 2 || got[0].Name != "any" || got[1].Name != "new" {
		t.Fatalf("unexpected listings %+v", got)
	}
}

func TestHandlerRoundTrip(t *testing.T) {
	reg := NewRegistry(time.Minute, nil)
	ts := httptest.NewServer(NewHandler(reg))
	defer ts.Close()

	resp, err := http.Post(ts.URL+"/servers/register", "application/json",
		strings.NewReader(`{"name":"duel","address":"host:7373","maxPlayers":8,"level":"arena","matchId":"m-1"}`))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	var reply struct{ ID string }
	err = json.NewDecoder(resp.Body).Decode(&reply)
	resp.Body.Close()
	if err != nil || resp.StatusCode != http.StatusCreated || reply.ID == "" {
		t.Fatalf("unexpected register reply %d %+v %v", resp.StatusCode, reply, err)
	}

	resp, err = http.Post(ts.URL+"/servers/heartbeat", "application/json",
		strings.NewReader(`{"id":"`+reply.ID+`","players":2}`))
	if err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected heartbeat ok, got %d", resp.StatusCode)
	}

	resp, err = http.Post(ts.URL+"/servers/heartbeat", "application/json", strings.NewReader(`{"id":"nope"}`))
	if err != nil {
		t.Fatalf("heartbeat: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for an unknown host, got %d", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/servers")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defer resp.Body.Close()
	var list []Listing
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0].Players != 2 || list[0].Level != "arena" || list[0].MatchID != "m-1" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestRegisterNeedsNameAndAddress(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/servers/register", strings.NewReader(`{"name":"x"}`))
	NewHandler(NewRegistry(time.Minute, nil)).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
