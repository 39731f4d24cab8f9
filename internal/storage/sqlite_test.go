package storage

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/snake-gym/internal/config"
)

func openTestStore(t *testing.T) *Store {
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreOpenExpandedHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	dbPath, err := config.ExpandHome("~/.snakegym/runs.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".snakegym", "runs.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{EnvID: "snake-v0", Policy: "greedy", GridSize: 40, Episodes: 10, Successes: 10, TotalSteps: 180, DurationMs: 3},
		{EnvID: "snake-v0", Policy: "random", GridSize: 40, Episodes: 10, Successes: 2, TotalSteps: 9000, DurationMs: 40},
		{EnvID: "snake-small-v0", Policy: "random", GridSize: 10, Episodes: 4, Successes: 3, TotalSteps: 300, Cancelled: true},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(all))
	}
	// Newest first
	if all[0].EnvID != "snake-small-v0" || !all[0].Cancelled {
		t.Errorf("newest run = %+v", all[0])
	}
	if all[2].Policy != "greedy" || all[2].TotalSteps != 180 {
		t.Errorf("oldest run = %+v", all[2])
	}

	big, err := store.RecentRuns("snake-v0", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(big) != 2 {
		t.Errorf("Expected 2 snake-v0 runs, got %d", len(big))
	}

	limited, err := store.RecentRuns("", 1)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 run with limit, got %d", len(limited))
	}
}

func TestRunRecordRates(t *testing.T) {
	r := RunRecord{Episodes: 4, Successes: 3, TotalSteps: 10}
	if r.SuccessRate() != 0.75 {
		t.Errorf("SuccessRate() = %v, expected 0.75", r.SuccessRate())
	}
	if r.MeanSteps() != 2.5 {
		t.Errorf("MeanSteps() = %v, expected 2.5", r.MeanSteps())
	}
	if (RunRecord{}).SuccessRate() != 0 || (RunRecord{}).MeanSteps() != 0 {
		t.Error("empty record should report zero rates")
	}
}

func TestStoreBestSuccessRate(t *testing.T) {
	store := openTestStore(t)

	rate, err := store.BestSuccessRate("snake-v0", "random")
	if err != nil {
		t.Fatalf("BestSuccessRate() failed: %v", err)
	}
	if rate != 0 {
		t.Errorf("Expected 0 for no runs, got %v", rate)
	}

	store.SaveRun(RunRecord{EnvID: "snake-v0", Policy: "random", GridSize: 40, Episodes: 4, Successes: 1})
	store.SaveRun(RunRecord{EnvID: "snake-v0", Policy: "random", GridSize: 40, Episodes: 4, Successes: 3})
	store.SaveRun(RunRecord{EnvID: "snake-v0", Policy: "greedy", GridSize: 40, Episodes: 4, Successes: 4})

	rate, err = store.BestSuccessRate("snake-v0", "random")
	if err != nil {
		t.Fatalf("BestSuccessRate() failed: %v", err)
	}
	if math.Abs(rate-0.75) > 1e-9 {
		t.Errorf("Expected best rate 0.75, got %v", rate)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunRecord{EnvID: "snake-v0", Policy: "random", GridSize: 40, Episodes: 1})
	store.SaveRun(RunRecord{EnvID: "snake-small-v0", Policy: "random", GridSize: 10, Episodes: 1})

	if err := store.ClearRuns("snake-v0"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].EnvID != "snake-small-v0" {
		t.Errorf("Expected only snake-small-v0 to remain, got %+v", runs)
	}
}
