package telemetry

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "stats.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRoundTripsRunHistory(t *testing.T) {
	s := openTestStore(t)
	runID := uuid.NewString()
	started := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	if err := s.BeginRun(runID, 42, started); err != nil {
		t.Fatalf("BeginRun: %v", err)
	}

	want := []SecondStats{
		{Second: 1, Tick: 60, Creatures: 495, AvgSpeed: 1, AvgSize: 50, AvgEnergy: 98, AvgHunger: 98, AvgThirst: 98, Berries: 135},
		{Second: 2, Tick: 120, Creatures: 495, AvgEnergy: 96, ThirstP10: 60.5, Drinks: 3, Meals: 2, FailedMeals: 1, ClaimsRefused: 7},
	}
	if err := s.SaveStats(runID, want); err != nil {
		t.Fatalf("SaveStats: %v", err)
	}

	got, err := s.RunStats(runID)
	if err != nil {
		t.Fatalf("RunStats: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	runs, err := s.Runs()
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 || runs[0].ID != runID || runs[0].Seed != 42 || runs[0].Seconds != 2 {
		t.Errorf("runs = %+v", runs)
	}
	if !runs[0].StartedAt().Equal(started) {
		t.Errorf("started = %v, want %v", runs[0].StartedAt(), started)
	}
}

func TestStoreRejectsDuplicateSecond(t *testing.T) {
	s := openTestStore(t)
	runID := uuid.NewString()
	if err := s.BeginRun(runID, 1, time.Now()); err != nil {
		t.Fatal(err)
	}

	rows := []SecondStats{{Second: 1}, {Second: 1}}
	if err := s.SaveStats(runID, rows); err == nil {
		t.Fatal("expected duplicate (run, second) to fail")
	}

	// The failed batch was rolled back as a whole.
	got, err := s.RunStats(runID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("rows after rollback = %d, want 0", len(got))
	}
}

func TestStoreSaveEmptyIsNoop(t *testing.T) {
	s := openTestStore(t)
	if err := s.SaveStats("missing", nil); err != nil {
		t.Errorf("SaveStats(nil) = %v", err)
	}
}
