package cast

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/marcador/crossfire/engine/pool"
)

// Cast is one in-flight projectile from Fire to termination. While active
// it is owned exclusively by the scheduler: event handlers may read it but
// must mutate it through the scheduler's handle operations.
type Cast struct {
	owner   any
	payload any

	origin    mgl32.Vec3
	position  mgl32.Vec3
	direction mgl32.Vec3
	velocity  mgl32.Vec3

	// acceleration starts out as the behavior's value and can be
	// overridden per cast via SetAcceleration.
	acceleration mgl32.Vec3

	behavior *Behavior
	token    pool.Token

	runtime  float32
	distance float32
	hitSet   map[uuid.UUID]struct{}

	active bool
	paused bool
}

func (c *Cast) GetOwner() any {
	return c.owner
}

func (c *Cast) GetPayload() any {
	return c.payload
}

func (c *Cast) GetOrigin() mgl32.Vec3 {
	return c.origin
}

func (c *Cast) GetPosition() mgl32.Vec3 {
	return c.position
}

// GetDirection returns the unit vector the cast is travelling along.
func (c *Cast) GetDirection() mgl32.Vec3 {
	return c.direction
}

func (c *Cast) GetVelocity() mgl32.Vec3 {
	return c.velocity
}

func (c *Cast) GetAcceleration() mgl32.Vec3 {
	return c.acceleration
}

func (c *Cast) GetBehavior() *Behavior {
	return c.behavior
}

func (c *Cast) GetToken() pool.Token {
	return c.token
}

// GetRuntime is the accumulated simulated lifetime in seconds.
func (c *Cast) GetRuntime() float32 {
	return c.runtime
}

// GetDistanceCovered is the total distance travelled so far, measured
// against the behavior's MaxDistance budget.
func (c *Cast) GetDistanceCovered() float32 {
	return c.distance
}

func (c *Cast) IsActive() bool {
	return c.active
}

func (c *Cast) IsPaused() bool {
	return c.paused
}

// HasStruck reports whether the cast already hit or pierced the target.
// A struck target is never counted twice.
func (c *Cast) HasStruck(target uuid.UUID) bool {
	_, struck := c.hitSet[target]
	return struck
}
