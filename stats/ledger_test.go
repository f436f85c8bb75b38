package stats

import (
	"errors"
	"testing"
)

type memStore struct {
	items map[string][]byte
	saves int
	fail  error
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string][]byte)}
}

func (m *memStore) LoadItem(key string) ([]byte, error) {
	return m.items[key], nil
}

func (m *memStore) SaveItem(key string, data []byte) error {
	if m.fail != nil {
		return m.fail
	}
	m.saves++
	m.items[key] = append([]byte(nil), data...)
	return nil
}

func TestLedgerPersistsAcrossLoads(t *testing.T) {
	store := newMemStore()
	l, err := New(store)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}

	l.AddShots("ash", 200, 50)
	l.AddKill("ash", "birch")
	l.AddKill("", "ash")
	l.EndMatch("ash", "birch")
	if err := l.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}

	again, err := New(store)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	ash, ok := again.Get("ash")
	if !ok {
		t.Fatalf("expected a record for ash")
	}
	want := Record{Name: "ash", Shots: 200, Damage: 50, Frags: 1, Deaths: 1, Matches: 1}
	if ash != want {
		t.Fatalf("expected %+v, got %+v", want, ash)
	}
	if ash.Accuracy() != 0.25 {
		t.Fatalf("expected accuracy 0.25, got %v", ash.Accuracy())
	}
	birch, _ := again.Get("birch")
	if birch.Deaths != 1 || birch.Frags != 0 {
		t.Fatalf("unexpected birch record %+v", birch)
	}
}

func TestFlushSkipsCleanLedger(t *testing.T) {
	store := newMemStore()
	l, _ := New(store)
	if err := l.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if store.saves != 0 {
		t.Fatalf("expected no save for an untouched ledger, got %d", store.saves)
	}

	l.AddShots("ash", 10, 10)
	_ = l.Flush()
	_ = l.Flush()
	if store.saves != 1 {
		t.Fatalf("expected exactly one save, got %d", store.saves)
	}
}

func TestFlushKeepsChangesOnError(t *testing.T) {
	store := newMemStore()
	store.fail = errors.New("disk full")
	l, _ := New(store)
	l.AddKill("ash", "birch")

	if err := l.Flush(); !errors.Is(err, store.fail) {
		t.Fatalf("expected wrapped disk error, got %v", err)
	}

	store.fail = nil
	if err := l.Flush(); err != nil {
		t.Fatalf("retry flush: %v", err)
	}
	if store.saves != 1 {
		t.Fatalf("expected the retry to save, got %d saves", store.saves)
	}
}

func TestCorruptLedgerStartsEmpty(t *testing.T) {
	store := newMemStore()
	store.items[ledgerKey] = []byte("{not json")
	l, err := New(store)
	if err != nil {
		t.Fatalf("expected corrupt data to be tolerated, got %v", err)
	}
	if len(l.Top(-1)) != 0 {
		t.Fatalf("expected empty ledger")
	}
}

func TestSuicideIsNotAFrag(t *testing.T) {
	l, _ := New(newMemStore())
	l.AddKill("ash", "ash")
	r, _ := l.Get("ash")
	if r.Frags != 0 || r.Deaths != 1 {
		t.Fatalf("expected a death and no frag, got %+v", r)
	}
}

func TestTopOrdersByFragsThenDamage(t *testing.T) {
	l, _ := New(newMemStore())
	l.AddKill("cedar", "ash")
	l.AddKill("cedar", "ash")
	l.AddKill("birch", "ash")
	l.AddShots("birch", 100, 90)
	l.AddKill("ash", "birch")
	l.AddShots("ash", 100, 10)

	top := l.Top(2)
	if len(top) != 2 {
		t.Fatalf("expected 2 records, got %d", len(top))
	}
	if top[0].Name != "cedar" || top[1].Name != "birch" {
		t.Fatalf("unexpected order %s, %s", top[0].Name, top[1].Name)
	}
}

func TestAccuracyCapsAtOne(t *testing.T) {
	r := Record{Shots: 10, Damage: 30}
	if r.Accuracy() != 1 {
		t.Fatalf("expected 1, got %v", r.Accuracy())
	}
	if (Record{}).Accuracy() != 0 {
		t.Fatalf("expected 0 for no shots")
	}
}
