package telemetry

import (
	"testing"

	"github.com/pthm-cable/meadow/components"
)

func TestLifetimeTracker(t *testing.T) {
	lt := NewLifetimeTracker()
	lt.Register(1, 0, components.KindProducer, 0)
	lt.Register(2, 5, components.KindProducer, 3)
	lt.Register(3, 5, components.KindDistributor, 0)

	lt.RecordChild(1)
	lt.RecordPollen(1)
	lt.RecordFood(1)
	lt.RecordDelivery(3)
	lt.UpdateEnergy(1, 0.4)
	lt.UpdateEnergy(1, 0.2)
	lt.RecordChild(99) // untracked is ignored

	s := lt.Get(1)
	if s.Children != 1 || s.PollenProduced != 1 || s.FoodProduced != 1 || s.PeakEnergy != 0.4 {
		t.Errorf("producer stats = %+v", s)
	}
	if lt.Get(3).PollenDelivered != 1 {
		t.Errorf("PollenDelivered = %d, want 1", lt.Get(3).PollenDelivered)
	}
	if lt.MaxGeneration() != 3 || lt.Generation(2) != 3 || lt.Generation(99) != 0 {
		t.Errorf("generation tracking wrong: max=%d", lt.MaxGeneration())
	}

	if got := lt.Remove(2); got == nil || got.BirthDay != 5 {
		t.Fatalf("Remove(2) = %+v", got)
	}
	if lt.Count() != 2 || lt.MaxGeneration() != 0 {
		t.Errorf("after remove: count=%d max=%d", lt.Count(), lt.MaxGeneration())
	}
}
