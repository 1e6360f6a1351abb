package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/marcador/crossfire/engine/cast"
	"github.com/marcador/crossfire/engine/spatial"
	"github.com/marcador/crossfire/engine/util"
)

// Target is one shootable object in the demo arena, approximated by a
// bounding sphere.
type Target struct {
	ID       uuid.UUID
	Name     string
	Position mgl32.Vec3
	Radius   float32
	Layer    cast.LayerMask
	Health   int
}

// Arena is the demo world: it owns the targets, keeps them registered in a
// spatial index and answers the scheduler's collision queries with a broad
// phase over that index followed by an exact segment/sphere test.
type Arena struct {
	index     *spatial.Index[uuid.UUID]
	targets   map[uuid.UUID]*Target
	maxRadius float32
}

func NewArena(cellSize float32) *Arena {
	return &Arena{
		index:   spatial.NewIndex[uuid.UUID](cellSize),
		targets: make(map[uuid.UUID]*Target),
	}
}

func (a *Arena) AddTarget(name string, position mgl32.Vec3, radius float32, layer cast.LayerMask) *Target {
	target := &Target{
		ID:       uuid.New(),
		Name:     name,
		Position: position,
		Radius:   radius,
		Layer:    layer,
		Health:   100,
	}
	a.targets[target.ID] = target
	a.index.Insert(target.ID, position)
	if radius > a.maxRadius {
		a.maxRadius = radius
	}
	return target
}

func (a *Arena) MoveTarget(id uuid.UUID, position mgl32.Vec3) {
	target, known := a.targets[id]
	if !known {
		return
	}
	target.Position = position
	a.index.Update(id, position)
}

func (a *Arena) RemoveTarget(id uuid.UUID) {
	delete(a.targets, id)
	a.index.Remove(id)
}

func (a *Arena) GetTarget(id uuid.UUID) *Target {
	return a.targets[id]
}

// TargetsNear is the area-effect query: broad phase via the spatial index,
// then an exact planar distance check to throw out the corner-cell
// candidates the grid over-reports.
func (a *Arena) TargetsNear(point mgl32.Vec3, radius float32) []*Target {
	var result []*Target
	for id, pos := range a.index.GetNearbyWithPositions(point, radius) {
		if util.PlanarDistance(pos, point) > radius {
			continue
		}
		if target, known := a.targets[id]; known {
			result = append(result, target)
		}
	}
	return result
}

// Raycast implements cast.Raycaster. The candidate set comes from the
// spatial index around the segment midpoint, the narrow phase is an exact
// segment/sphere intersection; the nearest eligible hit wins.
func (a *Arena) Raycast(origin, displacement mgl32.Vec3, filter cast.Filter) (cast.Hit, bool) {
	mid := origin.Add(displacement.Mul(0.5))
	searchRadius := displacement.Len()/2 + a.maxRadius

	bestT := float32(2)
	var best cast.Hit
	found := false
	for id := range a.index.GetNearby(mid, searchRadius) {
		target, known := a.targets[id]
		if !known {
			continue
		}
		if filter.Ignores(id) || !filter.Layers.Contains(target.Layer) {
			continue
		}
		t, ok := segmentSphereIntersection(origin, displacement, target.Position, target.Radius)
		if !ok || t >= bestT {
			continue
		}
		point := origin.Add(displacement.Mul(t))
		bestT = t
		found = true
		best = cast.Hit{
			Point:  point,
			Normal: surfaceNormal(point, target.Position),
			Target: id,
		}
	}
	return best, found
}

// segmentSphereIntersection solves |origin + t*displacement - center| = radius
// for the smallest t in [0, 1].
func segmentSphereIntersection(origin, displacement, center mgl32.Vec3, radius float32) (float32, bool) {
	oc := origin.Sub(center)
	a := displacement.Dot(displacement)
	if a == 0 {
		return 0, oc.Len() <= radius
	}
	b := 2 * oc.Dot(displacement)
	c := oc.Dot(oc) - radius*radius
	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := util.Sqrt(discriminant)
	t := (-b - sqrtD) / (2 * a)
	if t < 0 {
		// segment starts inside the sphere
		t = (-b + sqrtD) / (2 * a)
	}
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

func surfaceNormal(point, center mgl32.Vec3) mgl32.Vec3 {
	offset := point.Sub(center)
	if offset.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return offset.Normalize()
}
