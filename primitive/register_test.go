package primitive

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/storage"
	"github.com/willief/AntTP-tutorial/storage/memory"
)

func TestRegisters_UpdateScenario(t *testing.T) {
	r := Registers{Store: newKeyed(t), Now: fixedClock()}

	addr, err := r.Create("r1", "48656c6c6f")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := r.Update(addr, "r1", "576f726c64"); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := r.Get(addr)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "576f726c64" {
		t.Fatalf("Get = %q, want 576f726c64", got)
	}

	history, err := r.History(addr)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history has %d entries, want 2", len(history))
	}
	if history[0].Content != "48656c6c6f" || history[1].Content != "576f726c64" {
		t.Fatalf("history out of order: %+v", history)
	}
	if history[0].Timestamp >= history[1].Timestamp {
		t.Fatalf("history timestamps not increasing: %+v", history)
	}
}

func TestRegisters_CreateIsIdempotent(t *testing.T) {
	at := time.Unix(1700000000, 0)
	r := Registers{Store: newKeyed(t), Now: func() time.Time { return at }}

	a, err := r.Create("r1", "00")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := r.Update(a, "r1", "01"); err != nil {
		t.Fatalf("Update: %v", err)
	}
	b, err := r.Create("r1", "00")
	if err != nil {
		t.Fatalf("Create again: %v", err)
	}
	if a != b {
		t.Fatalf("same envelope produced different addresses")
	}
	history, err := r.History(a)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("re-create reset history: %+v", history)
	}
}

func TestRegisters_InvalidHexLeavesNoKey(t *testing.T) {
	mem := memory.New()
	r := Registers{Store: storage.NewKeyed("memory", mem), Now: fixedClock()}

	_, err := r.Create("r1", "not-hex!!")
	wantCode(t, err, model.ErrInvalidEncoding)
	if mem.Len() != 0 {
		t.Fatalf("rejected create left %d keys behind", mem.Len())
	}

	addr, err := r.Create("r1", "00")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	err = r.Update(addr, "r1", "zz")
	wantCode(t, err, model.ErrInvalidEncoding)

	history, err := r.History(addr)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("rejected update changed history: %+v", history)
	}
}

func TestRegisters_UpdateUnknownAddress(t *testing.T) {
	r := Registers{Store: newKeyed(t)}
	err := r.Update(model.Address("deadbeef"), "r1", "00")
	wantCode(t, err, model.ErrNotFound)

	_, err = r.History(model.Address("deadbeef"))
	wantCode(t, err, model.ErrNotFound)

	_, err = r.Get(model.Address("deadbeef"))
	wantCode(t, err, model.ErrNotFound)
}

func TestRegisters_ConcurrentUpdatesStayConsistent(t *testing.T) {
	r := Registers{Store: newKeyed(t)}
	addr, err := r.Create("counter", "00")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Reads both keys under one shared lock and checks that the current
	// value is the last history entry.
	consistent := func() error {
		return r.Store.View(func(rd storage.Reader) error {
			rawCur, err := rd.Get(addr.String())
			if err != nil {
				return err
			}
			rawHist, err := rd.Get(historyKey(addr))
			if err != nil {
				return err
			}
			var cur registerRecord
			var hist []model.RegisterEntry
			if err := decodeRecord("register", rawCur, &cur); err != nil {
				return err
			}
			if err := decodeRecord("register history", rawHist, &hist); err != nil {
				return err
			}
			if last := hist[len(hist)-1].Content; last != cur.Content {
				return fmt.Errorf("current %q != last history %q", cur.Content, last)
			}
			return nil
		})
	}

	const writers = 32
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if err := r.Update(addr, "counter", fmt.Sprintf("%02x", i+1)); err != nil {
				t.Errorf("Update(%d): %v", i, err)
			}
		}(i)
		go func() {
			defer wg.Done()
			if err := consistent(); err != nil {
				t.Errorf("inconsistent read: %v", err)
			}
		}()
	}
	wg.Wait()

	history, err := r.History(addr)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != writers+1 {
		t.Fatalf("history has %d entries, want %d", len(history), writers+1)
	}
	if err := consistent(); err != nil {
		t.Fatal(err)
	}
}

func TestRegisters_RejectOtherRecordTypes(t *testing.T) {
	store := newKeyed(t)
	r := Registers{Store: store, Now: fixedClock()}
	chunks := Chunks{Store: store}
	graph := GraphEntries{Store: store}

	chunk, err := chunks.PutBase64("SGVsbG8=")
	if err != nil {
		t.Fatalf("PutBase64: %v", err)
	}
	edge, err := graph.Create("edge", "cafe")
	if err != nil {
		t.Fatalf("graph Create: %v", err)
	}

	for name, addr := range map[string]model.Address{"chunk": chunk, "graph entry": edge} {
		t.Run(name, func(t *testing.T) {
			wantCode(t, r.Update(addr, "r1", "00"), model.ErrInvalidRequest)
			_, err := r.Get(addr)
			wantCode(t, err, model.ErrInvalidRequest)
			_, err = r.History(addr)
			wantCode(t, err, model.ErrInvalidRequest)
			if store.Has(historyKey(addr)) {
				t.Fatalf("rejected update created %s", historyKey(addr))
			}
		})
	}

	if got, err := chunks.GetBase64(chunk); err != nil || got != "SGVsbG8=" {
		t.Fatalf("chunk after rejected update = %q, %v", got, err)
	}
	if got, err := graph.Get(edge); err != nil || got != (model.GraphEntry{Name: "edge", Content: "cafe"}) {
		t.Fatalf("graph entry after rejected update = %+v, %v", got, err)
	}
}

// putFailer fails Put for any key fail reports true for.
type putFailer struct {
	*memory.Store
	fail func(key string) bool
}

func (p *putFailer) Put(key string, value []byte) error {
	if p.fail != nil && p.fail(key) {
		return errors.New("write refused")
	}
	return p.Store.Put(key, value)
}

func TestRegisters_FailedWriteKeepsCurrentAndHistory(t *testing.T) {
	backend := &putFailer{Store: memory.New()}
	r := Registers{Store: storage.NewKeyed("flaky", backend), Now: fixedClock()}
	addr, err := r.Create("r1", "01")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for name, failing := range map[string]string{"current": addr.String(), "history": historyKey(addr)} {
		t.Run(name, func(t *testing.T) {
			backend.fail = func(key string) bool { return key == failing }
			defer func() { backend.fail = nil }()

			wantCode(t, r.Update(addr, "r1", "02"), model.ErrInternal)
		})
		got, err := r.Get(addr)
		if err != nil || got != "01" {
			t.Fatalf("Get after failed %s write = %q, %v; want 01", name, got, err)
		}
		history, err := r.History(addr)
		if err != nil {
			t.Fatalf("History: %v", err)
		}
		if len(history) != 1 || history[0].Content != "01" {
			t.Fatalf("history after failed %s write = %+v", name, history)
		}
	}
}
