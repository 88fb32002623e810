package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/phone-secrets/internal/core"
	"github.com/vovakirdan/phone-secrets/internal/progress"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestDocuments(t *testing.T) {
	store := openTemp(t)

	got, err := store.Document("missing")
	if err != nil || got != nil {
		t.Errorf("Document(missing) = %q, %v, expected nil, nil", got, err)
	}

	if err := store.PutDocument("k", []byte("one")); err != nil {
		t.Fatalf("PutDocument() failed: %v", err)
	}
	if err := store.PutDocument("k", []byte("two")); err != nil {
		t.Fatalf("PutDocument() replace failed: %v", err)
	}
	if got, _ := store.Document("k"); string(got) != "two" {
		t.Errorf("Document(k) = %q, expected two", got)
	}

	if err := store.DeleteDocument("k"); err != nil {
		t.Fatalf("DeleteDocument() failed: %v", err)
	}
	if got, _ := store.Document("k"); got != nil {
		t.Errorf("Document(k) = %q after delete, expected nil", got)
	}
	if err := store.DeleteDocument("k"); err != nil {
		t.Errorf("DeleteDocument() twice = %v, expected nil", err)
	}
}

func TestProgressPerProfile(t *testing.T) {
	store := openTemp(t)

	alice := progress.New(store.Progress("alice"), nil)
	alice.Start()
	_ = alice.CompleteLevel(1)
	alice.SetLevel3Scores(core.Scores{Wellbeing: 80, Dopamine: 45})

	bob := progress.New(store.Progress("bob"), nil)
	if bob.Load() {
		t.Error("bob should start from defaults")
	}

	restored := progress.New(store.Progress("alice"), nil)
	if !restored.Load() {
		t.Fatal("alice's progress should load back")
	}
	if restored.CurrentLevel() != 1 || !restored.Completed(1) {
		t.Errorf("restored level %d, completed %v", restored.CurrentLevel(), restored.CompletedLevels())
	}
	if s, ok := restored.Level3Scores(); !ok || s.Wellbeing != 80 {
		t.Errorf("Level3Scores() = %+v, %v", s, ok)
	}

	restored.Restart()
	if data, _ := store.Document(progress.Key + "/alice"); data != nil {
		t.Errorf("document = %s after Restart, expected deleted", data)
	}
}

func TestRecordAndRecentRuns(t *testing.T) {
	store := openTemp(t)

	for i, w := range []int{40, 90, 65} {
		_, err := store.RecordRun(Run{
			Profile:   "alice",
			Wellbeing: w,
			Dopamine:  50,
			Crashes:   i,
			Tier:      "ok",
		})
		if err != nil {
			t.Fatalf("RecordRun() failed: %v", err)
		}
	}
	store.RecordRun(Run{Profile: "bob", Wellbeing: 10, Tier: "critical"})

	runs, err := store.RecentRuns("alice", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].Wellbeing != 65 || runs[2].Wellbeing != 40 {
		t.Errorf("RecentRuns() not newest first: %+v", runs)
	}
	if runs[0].RunID == "" || runs[0].RunID == runs[1].RunID {
		t.Error("each run should get its own UUID")
	}
	if runs[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be parsed")
	}

	all, _ := store.RecentRuns("", 10)
	if len(all) != 4 {
		t.Errorf("RecentRuns(all) = %d runs, expected 4", len(all))
	}

	limited, _ := store.RecentRuns("alice", 2)
	if len(limited) != 2 {
		t.Errorf("Expected 2 runs with limit, got %d", len(limited))
	}
}

func TestBestRun(t *testing.T) {
	store := openTemp(t)

	best, err := store.BestRun("alice")
	if err != nil || best != nil {
		t.Errorf("BestRun() on empty = %+v, %v, expected nil, nil", best, err)
	}

	store.RecordRun(Run{Profile: "alice", Wellbeing: 70, Crashes: 3, Tier: "ok"})
	store.RecordRun(Run{Profile: "alice", Wellbeing: 70, Crashes: 1, Tier: "ok"})
	store.RecordRun(Run{Profile: "alice", Wellbeing: 55, Tier: "low"})

	best, err = store.BestRun("alice")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best == nil || best.Wellbeing != 70 || best.Crashes != 1 {
		t.Errorf("BestRun() = %+v, expected wellbeing 70 with 1 crash", best)
	}

	stats, err := store.Stats("alice")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.BestWellbeing != 70 || stats.TotalCrashes != 4 {
		t.Errorf("Stats() = %+v", stats)
	}
	if stats.AvgWellbeing != 65 {
		t.Errorf("AvgWellbeing = %v, expected 65", stats.AvgWellbeing)
	}

	if err := store.ClearRuns("alice"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.RecentRuns("alice", 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
}

func TestWriteRunsCSV(t *testing.T) {
	var buf bytes.Buffer
	runs := []Run{
		{RunID: "a", Profile: "alice", Wellbeing: 81, Dopamine: 44, Tier: "excellent", Volatility: 3.5},
		{RunID: "b", Profile: "alice", Wellbeing: 12, Dopamine: 90, Tier: "critical", Crashes: 4},
	}

	if err := WriteRunsCSV(&buf, runs); err != nil {
		t.Fatalf("WriteRunsCSV() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header and 2 rows, got %d lines: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "run_id,profile,wellbeing,dopamine,tier") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "b,alice,12,90,critical,4") {
		t.Errorf("row = %q", lines[2])
	}
}
