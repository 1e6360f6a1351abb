package spatial

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/marcador/crossfire/engine/util"
)

// Cell identifies one bucket of the uniform grid. The grid is planar: it
// buckets by X and Z and ignores Y, matching how the gameplay layer does
// its distance checks.
type Cell struct {
	X int32
	Z int32
}

// Index is a uniform-grid broad phase over a set of tracked entities. It
// answers "what is near this point" as a conservative superset, callers
// are expected to narrow-phase the result with an exact distance check.
//
// Not safe for concurrent use. All mutation and queries belong to the
// single-threaded simulation pass.
type Index[E comparable] struct {
	cellSize   float32
	cells      map[Cell]map[E]struct{}
	entityCell map[E]Cell
	entityPos  map[E]mgl32.Vec3
}

func NewIndex[E comparable](cellSize float32) *Index[E] {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Index[E]{
		cellSize:   cellSize,
		cells:      make(map[Cell]map[E]struct{}),
		entityCell: make(map[E]Cell),
		entityPos:  make(map[E]mgl32.Vec3),
	}
}

func (idx *Index[E]) CellOf(position mgl32.Vec3) Cell {
	return Cell{
		X: int32(util.Floor(position.X() / idx.cellSize)),
		Z: int32(util.Floor(position.Z() / idx.cellSize)),
	}
}

// Insert starts tracking an entity at the given position. Inserting an
// entity that is already tracked behaves like Update.
func (idx *Index[E]) Insert(entity E, position mgl32.Vec3) {
	if _, tracked := idx.entityCell[entity]; tracked {
		idx.Update(entity, position)
		return
	}
	cell := idx.CellOf(position)
	idx.addToCell(entity, cell)
	idx.entityCell[entity] = cell
	idx.entityPos[entity] = position
}

// Remove stops tracking an entity. Removing an untracked entity is a no-op.
// Emptied buckets are kept around, they are cheap and likely to be refilled.
func (idx *Index[E]) Remove(entity E) {
	cell, tracked := idx.entityCell[entity]
	if !tracked {
		return
	}
	delete(idx.cells[cell], entity)
	delete(idx.entityCell, entity)
	delete(idx.entityPos, entity)
}

// Update refreshes an entity's cached position. The entity only changes
// buckets when it actually crossed a cell boundary, which is the uncommon
// case for most movement.
func (idx *Index[E]) Update(entity E, newPosition mgl32.Vec3) {
	oldCell, tracked := idx.entityCell[entity]
	if !tracked {
		idx.Insert(entity, newPosition)
		return
	}
	idx.entityPos[entity] = newPosition
	newCell := idx.CellOf(newPosition)
	if newCell == oldCell {
		return
	}
	delete(idx.cells[oldCell], entity)
	idx.addToCell(entity, newCell)
	idx.entityCell[entity] = newCell
}

// GetNearby returns every tracked entity whose cell lies within
// ceil(radius/cellSize) cells of the query point's cell. The result is a
// superset of the entities truly within radius: nothing within radius is
// missed, but corner cells can contribute entities that are farther out.
func (idx *Index[E]) GetNearby(point mgl32.Vec3, radius float32) map[E]struct{} {
	result := make(map[E]struct{})
	idx.eachNearby(point, radius, func(entity E) {
		result[entity] = struct{}{}
	})
	return result
}

// GetNearbyWithPositions is GetNearby plus the cached position of each
// candidate, so the caller's narrow phase does not need a second lookup.
func (idx *Index[E]) GetNearbyWithPositions(point mgl32.Vec3, radius float32) map[E]mgl32.Vec3 {
	result := make(map[E]mgl32.Vec3)
	idx.eachNearby(point, radius, func(entity E) {
		result[entity] = idx.entityPos[entity]
	})
	return result
}

func (idx *Index[E]) eachNearby(point mgl32.Vec3, radius float32, visit func(entity E)) {
	cellRadius := int32(util.Ceil(util.Abs(radius) / idx.cellSize))
	center := idx.CellOf(point)
	for dz := -cellRadius; dz <= cellRadius; dz++ {
		for dx := -cellRadius; dx <= cellRadius; dx++ {
			bucket := idx.cells[Cell{X: center.X + dx, Z: center.Z + dz}]
			for entity := range bucket {
				visit(entity)
			}
		}
	}
}

// PositionOf returns the last recorded position of a tracked entity.
func (idx *Index[E]) PositionOf(entity E) (mgl32.Vec3, bool) {
	pos, tracked := idx.entityPos[entity]
	return pos, tracked
}

func (idx *Index[E]) Len() int {
	return len(idx.entityCell)
}

// Clear drops all buckets and mappings.
func (idx *Index[E]) Clear() {
	idx.cells = make(map[Cell]map[E]struct{})
	idx.entityCell = make(map[E]Cell)
	idx.entityPos = make(map[E]mgl32.Vec3)
}

func (idx *Index[E]) addToCell(entity E, cell Cell) {
	bucket := idx.cells[cell]
	if bucket == nil {
		bucket = make(map[E]struct{})
		idx.cells[cell] = bucket
	}
	bucket[entity] = struct{}{}
}
