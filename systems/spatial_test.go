package systems

import (
	"errors"
	"testing"

	"github.com/pthm-cable/meadow/components"
)

func mustPlace(t *testing.T, g *WorldGrid, l Layer, occ components.Occupant, gx, gy int) {
	t.Helper()
	if err := g.Place(l, occ, gx, gy); err != nil {
		t.Fatalf("Place(%s, %d, %d): %v", l, gx, gy, err)
	}
}

func TestWorldGridPlaceGetVacate(t *testing.T) {
	g := NewWorldGrid(100, 10)
	if g.Size() != 10 {
		t.Fatalf("Size() = %d, want 10", g.Size())
	}
	es := newEntities(2)
	occ := components.Occupant{Entity: es[0], Kind: components.KindProducer}

	mustPlace(t, g, EntityLayer, occ, 3, 4)
	if got := g.Get(EntityLayer, 3, 4); got != occ {
		t.Errorf("Get = %+v, want %+v", got, occ)
	}
	if !g.Get(ResourceLayer, 3, 4).Empty() {
		t.Error("resource layer not independent of entity layer")
	}
	if !g.Holds(EntityLayer, es[0], 3, 4) {
		t.Error("Holds = false")
	}

	prev := g.Vacate(EntityLayer, 3, 4)
	if prev != occ {
		t.Errorf("Vacate returned %+v", prev)
	}
	if !g.IsFree(EntityLayer, 3, 4) {
		t.Error("slot not free after Vacate")
	}
}

func TestWorldGridPlaceOccupied(t *testing.T) {
	g := NewWorldGrid(100, 10)
	es := newEntities(2)
	mustPlace(t, g, ResourceLayer, components.Occupant{Entity: es[0], Resource: components.ResourceFood}, 1, 1)

	err := g.Place(ResourceLayer, components.Occupant{Entity: es[1], Resource: components.ResourcePollen}, 1, 1)
	var occErr *OccupiedSlotError
	if !errors.As(err, &occErr) {
		t.Fatalf("Place on occupied slot: err = %v, want *OccupiedSlotError", err)
	}
	if occErr.Occupant.Entity != es[0] {
		t.Errorf("error reports occupant %+v", occErr.Occupant)
	}
	// Original occupant untouched
	if g.Get(ResourceLayer, 1, 1).Entity != es[0] {
		t.Error("occupied slot was overwritten")
	}
}

func TestWorldGridBounds(t *testing.T) {
	g := NewWorldGrid(100, 10)
	tests := []struct {
		x, y float64
		want bool
	}{
		{0, 0, true},
		{99.9, 99.9, true},
		{100, 0, false},
		{-0.1, 5, false},
	}
	for _, tt := range tests {
		if got := g.InBounds(tt.x, tt.y); got != tt.want {
			t.Errorf("InBounds(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}

	es := newEntities(1)
	var oob *OutOfBoundsError
	if err := g.Place(EntityLayer, components.Occupant{Entity: es[0], Kind: components.KindProducer}, 10, 0); !errors.As(err, &oob) {
		t.Errorf("Place out of bounds: err = %v", err)
	}
	if !g.Get(EntityLayer, -1, 0).Empty() {
		t.Error("out-of-bounds Get not empty")
	}
}

func TestWorldGridToGrid(t *testing.T) {
	g := NewWorldGrid(2500, 10)
	gx, gy := g.ToGrid(components.Position{X: 129.9, Y: 40})
	if gx != 12 || gy != 4 {
		t.Errorf("ToGrid = (%d,%d), want (12,4)", gx, gy)
	}
	if p := g.ToWorld(12, 4); p.X != 120 || p.Y != 40 {
		t.Errorf("ToWorld = %+v, want {120 40}", p)
	}
}

func TestWorldGridFreeCellsAndOccupied(t *testing.T) {
	g := NewWorldGrid(20, 10) // 2x2
	es := newEntities(1)
	mustPlace(t, g, EntityLayer, components.Occupant{Entity: es[0], Kind: components.KindDistributor}, 1, 0)

	free := g.FreeCells(EntityLayer)
	if len(free) != 3 {
		t.Fatalf("len(FreeCells) = %d, want 3", len(free))
	}
	for _, c := range free {
		if c == [2]int{1, 0} {
			t.Error("occupied cell listed as free")
		}
	}
	if n := g.Occupied(EntityLayer); n != 1 {
		t.Errorf("Occupied = %d, want 1", n)
	}

	visited := 0
	g.Each(EntityLayer, func(gx, gy int, occ components.Occupant) {
		visited++
		if gx != 1 || gy != 0 || occ.Entity != es[0] {
			t.Errorf("Each visited (%d,%d) %+v", gx, gy, occ)
		}
	})
	if visited != 1 {
		t.Errorf("Each visited %d slots, want 1", visited)
	}
}
