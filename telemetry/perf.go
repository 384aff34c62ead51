package telemetry

import (
	"log/slog"
	"time"

	"github.com/pthm-cable/meadow/systems"
)

// PerfSample holds the timings of one simulation day, one slot per pass.
type PerfSample struct {
	Day    time.Duration
	Passes []time.Duration
}

// PerfCollector keeps per-pass timings over a rolling window of days.
type PerfCollector struct {
	registry *systems.PassRegistry
	ids      []string
	slot     map[string]int

	ring  []PerfSample
	next  int
	count int

	current   []time.Duration
	dayStart  time.Time
	passStart time.Time
	active    int // slot of the running pass, -1 between passes
}

// NewPerfCollector creates a collector over the passes of registry.
func NewPerfCollector(windowSize int, registry *systems.PassRegistry) *PerfCollector {
	if windowSize < 1 {
		windowSize = 30
	}
	ids := registry.IDs()
	slot := make(map[string]int, len(ids))
	for i, id := range ids {
		slot[id] = i
	}
	return &PerfCollector{
		registry: registry,
		ids:      ids,
		slot:     slot,
		ring:     make([]PerfSample, windowSize),
		active:   -1,
	}
}

// StartDay begins timing a new simulation day.
func (p *PerfCollector) StartDay() {
	p.dayStart = time.Now()
	p.current = make([]time.Duration, len(p.ids))
	p.active = -1
}

// StartPass closes the running pass and starts timing id.
// Unknown IDs are timed as part of the day only.
func (p *PerfCollector) StartPass(id string) {
	now := time.Now()
	p.closePass(now)
	p.passStart = now
	if i, ok := p.slot[id]; ok {
		p.active = i
	}
}

func (p *PerfCollector) closePass(now time.Time) {
	if p.active >= 0 {
		p.current[p.active] += now.Sub(p.passStart)
	}
	p.active = -1
}

// EndDay finishes timing the current day and records the sample.
func (p *PerfCollector) EndDay() {
	now := time.Now()
	p.closePass(now)

	p.ring[p.next] = PerfSample{Day: now.Sub(p.dayStart), Passes: p.current}
	p.next = (p.next + 1) % len(p.ring)
	if p.count < len(p.ring) {
		p.count++
	}
}

// PassTiming is the averaged cost of one pass.
type PassTiming struct {
	ID       string
	Name     string
	Category string
	Avg      time.Duration
	Pct      float64 // share of the average day
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgDay        time.Duration
	MinDay        time.Duration
	MaxDay        time.Duration
	DaysPerSecond float64

	Passes      []PassTiming       // in execution order
	CategoryPct map[string]float64 // summed pass shares per category
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{CategoryPct: make(map[string]float64)}
	if p.count == 0 {
		return stats
	}

	var total time.Duration
	sums := make([]time.Duration, len(p.ids))
	for i := 0; i < p.count; i++ {
		s := p.ring[i]
		total += s.Day
		if i == 0 || s.Day < stats.MinDay {
			stats.MinDay = s.Day
		}
		stats.MaxDay = max(stats.MaxDay, s.Day)
		for j, d := range s.Passes {
			sums[j] += d
		}
	}

	n := time.Duration(p.count)
	stats.AvgDay = total / n
	if stats.AvgDay > 0 {
		stats.DaysPerSecond = float64(time.Second) / float64(stats.AvgDay)
	}

	pct := make(map[string]float64, len(p.ids))
	for j, id := range p.ids {
		avg := sums[j] / n
		var share float64
		if stats.AvgDay > 0 {
			share = float64(avg) / float64(stats.AvgDay) * 100
		}
		pct[id] = share
		stats.Passes = append(stats.Passes, PassTiming{
			ID:   id,
			Name: p.registry.GetName(id),
			Avg:  avg,
			Pct:  share,
		})
	}

	for _, category := range []string{"environment", "entities", "resources", "internal"} {
		for _, info := range p.registry.ByCategory(category) {
			stats.CategoryPct[category] += pct[info.ID]
			for i := range stats.Passes {
				if stats.Passes[i].ID == info.ID {
					stats.Passes[i].Category = category
				}
			}
		}
	}

	return stats
}

// Pass returns the timing of one pass, if tracked.
func (s PerfStats) Pass(id string) (PassTiming, bool) {
	for _, t := range s.Passes {
		if t.ID == id {
			return t, true
		}
	}
	return PassTiming{}, false
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_day_us", s.AvgDay.Microseconds()),
		slog.Int64("min_day_us", s.MinDay.Microseconds()),
		slog.Int64("max_day_us", s.MaxDay.Microseconds()),
		slog.Float64("days_per_sec", s.DaysPerSecond),
	}
	for _, t := range s.Passes {
		if t.Pct > 0.1 {
			attrs = append(attrs, slog.Float64(t.ID+"_pct", float64(int(t.Pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd       int     `csv:"window_end"`
	AvgDayUS        int64   `csv:"avg_day_us"`
	MinDayUS        int64   `csv:"min_day_us"`
	MaxDayUS        int64   `csv:"max_day_us"`
	DaysPerSec      float64 `csv:"days_per_sec"`
	SeasonPct       float64 `csv:"season_pct"`
	ProducersPct    float64 `csv:"producers_pct"`
	DistributorsPct float64 `csv:"distributors_pct"`
	CorpsesPct      float64 `csv:"corpses_pct"`
	FoodPct         float64 `csv:"food_pct"`
	PollenPct       float64 `csv:"pollen_pct"`
	TelemetryPct    float64 `csv:"telemetry_pct"`
	EntitiesPct     float64 `csv:"entities_pct"`
	ResourcesPct    float64 `csv:"resources_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int) PerfStatsCSV {
	pct := func(id string) float64 {
		t, _ := s.Pass(id)
		return t.Pct
	}
	return PerfStatsCSV{
		WindowEnd:       windowEnd,
		AvgDayUS:        s.AvgDay.Microseconds(),
		MinDayUS:        s.MinDay.Microseconds(),
		MaxDayUS:        s.MaxDay.Microseconds(),
		DaysPerSec:      s.DaysPerSecond,
		SeasonPct:       pct(systems.PassSeason),
		ProducersPct:    pct(systems.PassProducers),
		DistributorsPct: pct(systems.PassDistributors),
		CorpsesPct:      pct(systems.PassCorpses),
		FoodPct:         pct(systems.PassFood),
		PollenPct:       pct(systems.PassPollen),
		TelemetryPct:    pct(systems.PassTelemetry),
		EntitiesPct:     s.CategoryPct["entities"],
		ResourcesPct:    s.CategoryPct["resources"],
	}
}
