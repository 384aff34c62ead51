package systems

import (
	"math/rand/v2"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/meadow/components"
	"github.com/pthm-cable/meadow/config"
)

var testCfg *config.Config

func init() {
	testCfg = config.MustLoad("")
}

// newEntities creates n bare entities to stand in as grid occupants.
func newEntities(n int) []ecs.Entity {
	w := ecs.NewWorld()
	posMap := ecs.NewMap[components.Position](w)
	out := make([]ecs.Entity, n)
	for i := range out {
		out[i] = posMap.NewEntity(&components.Position{})
	}
	return out
}

func TestOffsetsExcludeCentre(t *testing.T) {
	tests := []struct {
		r    int
		want int
	}{
		{1, 8},
		{2, 24},
		{3, 48},
		{10, 440},
	}
	for _, tt := range tests {
		offs := Offsets(tt.r)
		if len(offs) != tt.want {
			t.Errorf("len(Offsets(%d)) = %d, want %d", tt.r, len(offs), tt.want)
		}
		for _, o := range offs {
			if o.DX == 0 && o.DY == 0 {
				t.Errorf("Offsets(%d) contains centre", tt.r)
			}
		}
	}
}

func TestShuffledOffsetsDoesNotMutateCache(t *testing.T) {
	before := append([]Offset(nil), Offsets(1)...)
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 5; i++ {
		ShuffledOffsets(rng, 1)
	}
	for i, o := range Offsets(1) {
		if o != before[i] {
			t.Fatalf("Offsets(1) changed after shuffling: %v", Offsets(1))
		}
	}
}

func TestSenseRecordsAndClips(t *testing.T) {
	g := NewWorldGrid(100, 10)
	es := newEntities(4)
	self, prod, dist, pollen := es[0], es[1], es[2], es[3]

	mustPlace(t, g, EntityLayer, components.Occupant{Entity: self, Kind: components.KindDistributor}, 0, 0)
	mustPlace(t, g, EntityLayer, components.Occupant{Entity: prod, Kind: components.KindProducer}, 1, 0)
	mustPlace(t, g, EntityLayer, components.Occupant{Entity: dist, Kind: components.KindDistributor}, 0, 1)
	mustPlace(t, g, ResourceLayer, components.Occupant{Entity: pollen, Resource: components.ResourcePollen}, 1, 1)

	var area components.SensedArea
	Sense(g, &area, self, 0, 0, 1)

	// Corner cell: only 4 of 9 cells are in bounds
	if len(area.Slots) != 4 {
		t.Fatalf("len(Slots) = %d, want 4", len(area.Slots))
	}
	if s, _ := area.At(0, 0); !s.Entity.Empty() {
		t.Errorf("self was recorded: %+v", s.Entity)
	}
	if s, _ := area.At(1, 0); s.Entity.Entity != prod {
		t.Errorf("producer slot = %+v", s.Entity)
	}
	if s, _ := area.At(0, 1); s.Entity.Entity != dist {
		t.Errorf("distributor slot = %+v", s.Entity)
	}
	if s, _ := area.At(1, 1); s.Resource.Resource != components.ResourcePollen {
		t.Errorf("pollen slot = %+v", s.Resource)
	}
}

func TestSenseOverwritesStaleSnapshot(t *testing.T) {
	g := NewWorldGrid(100, 10)
	es := newEntities(2)
	self, food := es[0], es[1]
	mustPlace(t, g, ResourceLayer, components.Occupant{Entity: food, Resource: components.ResourceFood}, 5, 6)

	var area components.SensedArea
	Sense(g, &area, self, 5, 5, 2)
	if area.Count(components.KindNone, components.ResourceFood) != 1 {
		t.Fatal("food not sensed")
	}

	g.Vacate(ResourceLayer, 5, 6)
	Sense(g, &area, self, 5, 5, 2)
	if n := area.Count(components.KindNone, components.ResourceFood); n != 0 {
		t.Errorf("stale food survived resensing: %d", n)
	}
	if len(area.Slots) != 25 {
		t.Errorf("len(Slots) = %d, want 25", len(area.Slots))
	}
}

func TestFindFreeCell(t *testing.T) {
	g := NewWorldGrid(30, 10) // 3x3
	es := newEntities(9)
	rng := rand.New(rand.NewPCG(3, 4))

	// Fill everything except (2,2)
	i := 0
	for gy := 0; gy < 3; gy++ {
		for gx := 0; gx < 3; gx++ {
			if gx == 2 && gy == 2 {
				continue
			}
			mustPlace(t, g, EntityLayer, components.Occupant{Entity: es[i], Kind: components.KindProducer}, gx, gy)
			i++
		}
	}

	x, y, ok := FindFreeCell(g, rng, EntityLayer, 1, 1, 1)
	if !ok || x != 2 || y != 2 {
		t.Errorf("FindFreeCell = (%d,%d,%v), want (2,2,true)", x, y, ok)
	}

	mustPlace(t, g, EntityLayer, components.Occupant{Entity: es[8], Kind: components.KindProducer}, 2, 2)
	if _, _, ok := FindFreeCell(g, rng, EntityLayer, 1, 1, 1); ok {
		t.Error("FindFreeCell found a cell in a full grid")
	}

	// The resource layer is independent
	if _, _, ok := FindFreeCell(g, rng, ResourceLayer, 1, 1, 1); !ok {
		t.Error("resource layer reported full")
	}
}
