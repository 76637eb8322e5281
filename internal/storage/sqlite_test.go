package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/cubecast/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestStoreAppendAndListAll(t *testing.T) {
	store := openTestStore(t)

	events := []core.Command{
		{X: 10, Y: 10, Z: 10, R: 255},
		{X: 1, Y: 2, Z: 3, G: 128, B: 64},
		{X: 10, Y: 10, Z: 10, B: 255}, // same coordinate, later write
	}
	for _, cmd := range events {
		if err := store.Append(cmd); err != nil {
			t.Fatalf("Append(%+v) failed: %v", cmd, err)
		}
	}

	got, err := store.ListAll()
	if err != nil {
		t.Fatalf("ListAll() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListAll() returned %d events, expected 3", len(got))
	}
	for i := range events {
		if got[i] != events[i] {
			t.Errorf("event %d = %+v, expected %+v (insertion order)", i, got[i], events[i])
		}
	}
}

func TestStoreReplayRestoresCanvas(t *testing.T) {
	store := openTestStore(t)

	if err := store.Append(core.Command{X: 10, Y: 10, Z: 10, R: 255}); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	if err := store.Append(core.Command{X: 10, Y: 10, Z: 10, G: 255}); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	events, err := store.ListAll()
	if err != nil {
		t.Fatalf("ListAll() failed: %v", err)
	}

	canvas := core.NewCanvas(500)
	canvas.LoadAll(events)

	rgb, ok := canvas.Get(core.Coord{X: 10, Y: 10, Z: 10})
	if !ok {
		t.Fatal("replay did not restore the cube")
	}
	if (rgb != core.RGB{G: 255}) {
		t.Errorf("replayed color = %+v, expected the later write {0 255 0}", rgb)
	}
}

func TestStoreEmptyListAll(t *testing.T) {
	store := openTestStore(t)

	got, err := store.ListAll()
	if err != nil {
		t.Fatalf("ListAll() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListAll() on empty archive returned %d events", len(got))
	}
}

func TestStoreCountAndClear(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		if err := store.Append(core.Command{X: i}); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	n, err := store.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 5 {
		t.Errorf("Count() = %d, expected 5", n)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	n, err = store.Count()
	if err != nil {
		t.Fatalf("Count() failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count() after Clear() = %d, expected 0", n)
	}
}

func TestStoreSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	expected := core.Command{X: 7, Y: 8, Z: 9, R: 1, G: 2, B: 3}
	if err := store.Append(expected); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	store.Close()

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("reopening failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.ListAll()
	if err != nil {
		t.Fatalf("ListAll() failed: %v", err)
	}
	if len(got) != 1 || got[0] != expected {
		t.Errorf("ListAll() after reopen = %+v, expected [%+v]", got, expected)
	}
}
