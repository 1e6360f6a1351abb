package cast

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/marcador/crossfire/engine/pool"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidBehavior rejects behaviors with a non-positive segment
	// size or distance budget at Fire time.
	ErrInvalidBehavior = errors.New("cast: invalid behavior")
	// ErrInvalidDirection rejects a zero direction vector at Fire time.
	ErrInvalidDirection = errors.New("cast: direction must not be a zero vector")
	// ErrDeadHandle is reported when a handle no longer refers to an
	// active cast.
	ErrDeadHandle = errors.New("cast: handle does not refer to an active cast")
)

// LayerMask selects which world layers a cast is allowed to strike. The
// world collision collaborator decides what each layer means.
type LayerMask uint32

const (
	LayerTerrain LayerMask = 1 << iota
	LayerUnits
	LayerProps
)

const LayerAll = ^LayerMask(0)

func (m LayerMask) Contains(other LayerMask) bool {
	return m&other != 0
}

// Filter narrows which world objects a cast may strike.
type Filter struct {
	Layers LayerMask
	// Ignore is the auto-ignore set, usually the shooter and friendlies.
	Ignore map[uuid.UUID]struct{}
}

func (f Filter) Ignores(id uuid.UUID) bool {
	_, ignored := f.Ignore[id]
	return ignored
}

// Hit describes one world intersection reported by the Raycaster.
type Hit struct {
	Point  mgl32.Vec3
	Normal mgl32.Vec3
	Target uuid.UUID
}

// Raycaster is the world collision query collaborator. It resolves a ray
// from origin along displacement against the filter and reports the
// nearest eligible intersection. It is authoritative and synchronous.
type Raycaster interface {
	Raycast(origin, displacement mgl32.Vec3, filter Filter) (Hit, bool)
}

// TickSource delivers the per-tick clock signal that drives the scheduler.
// The scheduler subscribes while casts are in flight and cancels its
// subscription as soon as the active set empties.
type TickSource interface {
	Subscribe(fn func(dt float64)) (cancel func())
}

// TokenSource supplies the optional visual token of a cast. *pool.Pool
// satisfies it directly; pool.CloneSource covers the clone-per-cast case.
type TokenSource interface {
	Acquire() pool.Token
	Release(token pool.Token)
}
