package main

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/marcador/crossfire/engine/cast"
	"github.com/marcador/crossfire/engine/util"
)

func TestArenaRaycastReturnsNearestTarget(t *testing.T) {
	arena := NewArena(16)
	near := arena.AddTarget("near", mgl32.Vec3{0, 0, 10}, 1, cast.LayerUnits)
	arena.AddTarget("far", mgl32.Vec3{0, 0, 20}, 1, cast.LayerUnits)

	hit, found := arena.Raycast(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 30}, cast.Filter{Layers: cast.LayerAll})
	if !found {
		t.Fatal("no hit found")
	}
	if hit.Target != near.ID {
		t.Errorf("hit target = %s, want the nearer one %s", hit.Target, near.ID)
	}
	if util.Abs(hit.Point.Z()-9) > 0.001 {
		t.Errorf("hit point z = %f, want 9 (sphere surface)", hit.Point.Z())
	}
	if !hit.Normal.ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, 0.001) {
		t.Errorf("hit normal = %v, want facing the ray", hit.Normal)
	}
}

func TestArenaRaycastHonorsFilter(t *testing.T) {
	arena := NewArena(16)
	friendly := arena.AddTarget("friendly", mgl32.Vec3{0, 0, 10}, 1, cast.LayerUnits)
	prop := arena.AddTarget("prop", mgl32.Vec3{0, 0, 15}, 1, cast.LayerProps)
	enemy := arena.AddTarget("enemy", mgl32.Vec3{0, 0, 20}, 1, cast.LayerUnits)

	filter := cast.Filter{
		Layers: cast.LayerUnits,
		Ignore: map[uuid.UUID]struct{}{friendly.ID: {}},
	}
	hit, found := arena.Raycast(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 30}, filter)
	if !found {
		t.Fatal("no hit found")
	}
	if hit.Target == friendly.ID || hit.Target == prop.ID {
		t.Fatalf("filter failed, struck %s", hit.Target)
	}
	if hit.Target != enemy.ID {
		t.Errorf("hit target = %s, want %s", hit.Target, enemy.ID)
	}
}

func TestArenaRaycastMissesOffAxisTargets(t *testing.T) {
	arena := NewArena(16)
	arena.AddTarget("aside", mgl32.Vec3{5, 0, 10}, 1, cast.LayerUnits)

	_, found := arena.Raycast(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 30}, cast.Filter{Layers: cast.LayerAll})
	if found {
		t.Error("ray along the z axis should miss a target 5 units off axis")
	}
}

func TestTargetsNearAppliesNarrowPhase(t *testing.T) {
	arena := NewArena(4)
	inside := arena.AddTarget("inside", mgl32.Vec3{3, 0, 0}, 1, cast.LayerUnits)
	// same broad-phase cell ring, but outside the true radius
	arena.AddTarget("corner", mgl32.Vec3{7, 0, 7}, 1, cast.LayerUnits)

	found := arena.TargetsNear(mgl32.Vec3{0, 0, 0}, 5)
	if len(found) != 1 {
		t.Fatalf("got %d targets, want 1", len(found))
	}
	if found[0].ID != inside.ID {
		t.Errorf("got %s, want %s", found[0].Name, inside.Name)
	}
}

func TestMoveTargetFollowsIndex(t *testing.T) {
	arena := NewArena(8)
	target := arena.AddTarget("walker", mgl32.Vec3{0, 0, 10}, 1, cast.LayerUnits)

	arena.MoveTarget(target.ID, mgl32.Vec3{0, 0, 40})

	if _, found := arena.Raycast(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 15}, cast.Filter{Layers: cast.LayerAll}); found {
		t.Error("ray hit the target's old position")
	}
	hit, found := arena.Raycast(mgl32.Vec3{0, 0, 30}, mgl32.Vec3{0, 0, 15}, cast.Filter{Layers: cast.LayerAll})
	if !found || hit.Target != target.ID {
		t.Error("ray missed the target's new position")
	}
}
