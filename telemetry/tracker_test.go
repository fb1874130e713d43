package telemetry

import (
	"math"
	"testing"
)

func TestTrackerRecordsMeans(t *testing.T) {
	tr := NewTracker()
	tr.Add(Sample{Speed: 1, Size: 40, Energy: 100, Hunger: 80, Thirst: 60})
	tr.Add(Sample{Speed: 3, Size: 60, Energy: 90, Hunger: 40, Thirst: 70})

	stats, ok := tr.Record(60, 12, Outcomes{Drinks: 2, Meals: 1, FailedMeals: 1, ClaimsRefused: 4})
	if !ok {
		t.Fatal("Record returned ok=false with samples")
	}

	checks := []struct {
		name string
		got  float64
		want float64
	}{
		{"avg_speed", stats.AvgSpeed, 2},
		{"avg_size", stats.AvgSize, 50},
		{"avg_energy", stats.AvgEnergy, 95},
		{"avg_hunger", stats.AvgHunger, 60},
		{"avg_thirst", stats.AvgThirst, 65},
		{"hunger_std", stats.HungerStd, 20},
		{"thirst_p10", stats.ThirstP10, 60},
	}
	for _, c := range checks {
		if math.Abs(c.got-c.want) > 0.001 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}

	if stats.Second != 1 || stats.Tick != 60 || stats.Creatures != 2 || stats.Berries != 12 {
		t.Errorf("header fields = %+v", stats)
	}
	if stats.Drinks != 2 || stats.Meals != 1 || stats.FailedMeals != 1 || stats.ClaimsRefused != 4 {
		t.Errorf("outcomes not copied: %+v", stats)
	}
}

func TestTrackerEmptyPopulationRecordsNothing(t *testing.T) {
	tr := NewTracker()

	if _, ok := tr.Record(60, 0, Outcomes{}); ok {
		t.Error("empty second was recorded")
	}
	if len(tr.History()) != 0 {
		t.Errorf("history = %d entries, want 0", len(tr.History()))
	}

	// The second counter still advances.
	tr.Add(Sample{Energy: 1})
	stats, ok := tr.Record(120, 0, Outcomes{})
	if !ok || stats.Second != 2 {
		t.Errorf("second = %d ok=%v, want 2 true", stats.Second, ok)
	}
}

func TestTrackerResetsBetweenSeconds(t *testing.T) {
	tr := NewTracker()
	tr.Add(Sample{Energy: 100})
	tr.Add(Sample{Energy: 100})
	tr.Record(60, 0, Outcomes{})

	tr.Add(Sample{Energy: 10})
	stats, _ := tr.Record(120, 0, Outcomes{})

	if stats.Creatures != 1 || stats.AvgEnergy != 10 {
		t.Errorf("second window leaked samples: %+v", stats)
	}
	if len(tr.History()) != 2 || tr.Second() != 2 {
		t.Errorf("history=%d second=%d, want 2 and 2", len(tr.History()), tr.Second())
	}
}
