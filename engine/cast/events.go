package cast

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/marcador/crossfire/engine/pool"
)

// HitEvent fires when a cast strikes a blocking target. At most one per
// cast lifetime; the cast terminates right after.
type HitEvent struct {
	Cast     *Cast
	Result   Hit
	Velocity mgl32.Vec3
	Token    pool.Token
}

// PiercedEvent fires when a cast passes through a target. Any number per
// cast, never twice for the same target.
type PiercedEvent struct {
	Cast     *Cast
	Result   Hit
	Velocity mgl32.Vec3
	Token    pool.Token
}

// LengthChangedEvent fires once per tick for every cast that survived the
// tick's segment pass.
type LengthChangedEvent struct {
	Cast     *Cast
	Origin   mgl32.Vec3
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Token    pool.Token
}

// TerminatingEvent fires exactly once when a cast leaves the active set,
// whether by hit, range exhaustion or an explicit Terminate call.
type TerminatingEvent struct {
	Cast *Cast
}
