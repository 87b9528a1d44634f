package activitylog

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "activity.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Now().Add(-time.Minute)
	for i := 0; i < 3; i++ {
		err := store.Append(Entry{
			Method: http.MethodGet,
			Path:   "/api/tasks",
			Status: http.StatusOK,
			UserID: "user-1",
			At:     base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	entries, err := store.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if !entries[0].At.After(entries[1].At) {
		t.Fatalf("entries not newest-first: %v then %v", entries[0].At, entries[1].At)
	}

	size, err := store.Size()
	if err != nil || size != 3 {
		t.Fatalf("Size = (%d, %v), want 3", size, err)
	}
}

func TestSweepDropsOldEntries(t *testing.T) {
	store := openTestStore(t)

	old := time.Now().Add(-48 * time.Hour)
	fresh := time.Now()
	store.Append(Entry{Method: http.MethodGet, Path: "/old", Status: 200, At: old})
	store.Append(Entry{Method: http.MethodGet, Path: "/fresh", Status: 200, At: fresh})

	removed, err := store.Sweep(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("Sweep: %v", err)
	}
	if removed != 1 {
		t.Fatalf("swept %d entries, want 1", removed)
	}

	entries, _ := store.Recent(10)
	if len(entries) != 1 || entries[0].Path != "/fresh" {
		t.Fatalf("unexpected survivors: %+v", entries)
	}
}
