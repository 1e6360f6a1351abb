package cast

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// Behavior is the immutable configuration shared by a family of casts.
// The scheduler never writes to it, one Behavior value can back any number
// of concurrent casts.
type Behavior struct {
	// Filter decides which world objects are eligible targets.
	Filter Filter
	// MaxDistance is the distance budget before forced termination.
	MaxDistance float32
	// SegmentSize bounds the length of one collision sub-step in world
	// units. Movement longer than this is subdivided, which is what keeps
	// fast casts from tunnelling through thin targets.
	SegmentSize float32
	// Acceleration is added to the velocity once per tick, scaled by dt.
	// Supports gravity drops and homing-style drift.
	Acceleration mgl32.Vec3
	// CanPierce, when set, is asked for every fresh hit whether the cast
	// passes through. A panicking predicate counts as "do not pierce".
	CanPierce func(c *Cast, hit Hit, velocity mgl32.Vec3) bool
	// Tokens optionally supplies a visual token per cast.
	Tokens TokenSource
}

func (b *Behavior) validate() error {
	if b == nil {
		return errors.Wrap(ErrInvalidBehavior, "behavior is nil")
	}
	if b.SegmentSize <= 0 {
		return errors.Wrapf(ErrInvalidBehavior, "segment size must be positive, got %f", b.SegmentSize)
	}
	if b.MaxDistance <= 0 {
		return errors.Wrapf(ErrInvalidBehavior, "max distance must be positive, got %f", b.MaxDistance)
	}
	return nil
}
