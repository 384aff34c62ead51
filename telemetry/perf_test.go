package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/meadow/systems"
)

func newTestCollector(window int) *PerfCollector {
	return NewPerfCollector(window, systems.NewPassRegistry())
}

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := newTestCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartDay()
		pc.StartPass(systems.PassProducers)
		time.Sleep(100 * time.Microsecond)
		pc.StartPass(systems.PassDistributors)
		time.Sleep(200 * time.Microsecond)
		pc.EndDay()
	}

	stats := pc.Stats()
	if stats.AvgDay <= 0 {
		t.Error("expected positive average day duration")
	}
	if len(stats.Passes) != len(systems.NewPassRegistry().IDs()) {
		t.Errorf("tracked %d passes, want one per registered pass", len(stats.Passes))
	}

	prod, ok := stats.Pass(systems.PassProducers)
	if !ok || prod.Avg <= 0 {
		t.Errorf("producers pass = %+v, want positive average", prod)
	}
	if prod.Name != "Producers" || prod.Category != "entities" {
		t.Errorf("producers metadata = %q/%q", prod.Name, prod.Category)
	}
	if _, ok := stats.Pass("unknown"); ok {
		t.Error("unexpected timing for an unregistered pass")
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := newTestCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartDay()
		pc.StartPass(systems.PassProducers)
		time.Sleep(10 * time.Microsecond)
		pc.EndDay()
	}

	stats := pc.Stats()
	if stats.AvgDay <= 0 {
		t.Error("expected positive average day duration after window filled")
	}
	if stats.DaysPerSecond <= 0 {
		t.Error("expected positive days per second")
	}
	if stats.MinDay > stats.AvgDay || stats.AvgDay > stats.MaxDay {
		t.Errorf("min/avg/max out of order: %v %v %v", stats.MinDay, stats.AvgDay, stats.MaxDay)
	}
}

func TestPerfCollector_PassPercentages(t *testing.T) {
	pc := newTestCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartDay()
		pc.StartPass(systems.PassFood)
		time.Sleep(10 * time.Microsecond)
		pc.StartPass(systems.PassProducers)
		time.Sleep(500 * time.Microsecond)
		pc.EndDay()
	}

	stats := pc.Stats()
	food, _ := stats.Pass(systems.PassFood)
	prod, _ := stats.Pass(systems.PassProducers)
	if prod.Pct <= food.Pct {
		t.Errorf("expected producers (%v%%) > food (%v%%)", prod.Pct, food.Pct)
	}
	if stats.CategoryPct["entities"] <= stats.CategoryPct["resources"] {
		t.Errorf("category shares = %v", stats.CategoryPct)
	}
	if stats.CategoryPct["environment"] != 0 {
		t.Errorf("environment share = %v, want 0 for an untimed pass", stats.CategoryPct["environment"])
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	stats := newTestCollector(10).Stats()

	if stats.AvgDay != 0 {
		t.Error("expected zero avg day duration for empty collector")
	}
	if stats.Passes != nil {
		t.Error("expected no pass timings for empty collector")
	}
	if stats.CategoryPct == nil {
		t.Error("expected non-nil CategoryPct map")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	pc := newTestCollector(4)
	for i := 0; i < 4; i++ {
		pc.StartDay()
		pc.StartPass(systems.PassProducers)
		time.Sleep(50 * time.Microsecond)
		pc.StartPass(systems.PassPollen)
		pc.EndDay()
	}

	row := pc.Stats().ToCSV(120)
	if row.WindowEnd != 120 {
		t.Errorf("WindowEnd = %d, want 120", row.WindowEnd)
	}
	if row.ProducersPct <= 0 {
		t.Errorf("ProducersPct = %v, want > 0", row.ProducersPct)
	}
	if row.EntitiesPct < row.ProducersPct {
		t.Errorf("EntitiesPct = %v, want at least ProducersPct %v", row.EntitiesPct, row.ProducersPct)
	}
	if row.SeasonPct != 0 {
		t.Errorf("SeasonPct = %v, want 0 for an untimed pass", row.SeasonPct)
	}
}
