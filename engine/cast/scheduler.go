package cast

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/marcador/crossfire/engine/pool"
	"github.com/marcador/crossfire/engine/util"
	"github.com/pkg/errors"
)

// Handle identifies a cast registered with a scheduler. The zero Handle
// never resolves. Handles go stale once their cast has been swept; using a
// stale handle is reported and ignored.
type Handle struct {
	index      int
	generation uint32
}

type slot struct {
	cast       *Cast
	generation uint32
}

// Scheduler owns the set of active casts and advances every non-paused one
// once per tick, in registration order. It subscribes to the tick source
// while casts are in flight and drops the subscription when the active set
// empties, so an idle scheduler costs nothing.
//
// Single-threaded by contract: Fire, the handle operations and Advance must
// all be called from the simulation goroutine.
type Scheduler struct {
	world  Raycaster
	clock  TickSource
	tokens pool.Provider

	slots     []slot
	freeSlots []int
	// order holds the live slot indices in registration order, which is
	// the iteration order of the tick pass.
	order []int

	hit           Signal[HitEvent]
	pierced       Signal[PiercedEvent]
	lengthChanged Signal[LengthChangedEvent]
	terminating   Signal[TerminatingEvent]

	// pending buffers event emissions until the advance pass is done, so
	// handlers can Fire and Terminate freely without invalidating the
	// pass's iteration.
	pending  []func()
	inPass   bool
	draining bool

	cancelTick  func()
	reportError func(err error)
}

// NewScheduler wires the scheduler to its collaborators. clock may be nil
// when the host drives Advance directly; tokens may be nil when no behavior
// carries a token source.
func NewScheduler(world Raycaster, clock TickSource, tokens pool.Provider) *Scheduler {
	return &Scheduler{
		world:  world,
		clock:  clock,
		tokens: tokens,
		reportError: func(err error) {
			util.LogCastError(err.Error())
		},
	}
}

// SetErrorReporter replaces the diagnostics sink for isolated collaborator
// failures and usage errors. A nil reporter silences them.
func (s *Scheduler) SetErrorReporter(fn func(err error)) {
	s.reportError = fn
}

func (s *Scheduler) OnHit(fn func(HitEvent)) (disconnect func()) {
	return s.hit.Connect(fn)
}

func (s *Scheduler) OnPierced(fn func(PiercedEvent)) (disconnect func()) {
	return s.pierced.Connect(fn)
}

func (s *Scheduler) OnLengthChanged(fn func(LengthChangedEvent)) (disconnect func()) {
	return s.lengthChanged.Connect(fn)
}

func (s *Scheduler) OnTerminating(fn func(TerminatingEvent)) (disconnect func()) {
	return s.terminating.Connect(fn)
}

// Fire creates a cast at origin travelling along direction at speed and
// registers it with the scheduler. A malformed behavior or a zero direction
// is rejected here, it never enters the active set.
func (s *Scheduler) Fire(origin, direction mgl32.Vec3, speed float32, behavior *Behavior, owner, payload any) (Handle, error) {
	if err := behavior.validate(); err != nil {
		return Handle{}, err
	}
	if direction.Len() == 0 {
		return Handle{}, errors.Wrapf(ErrInvalidDirection, "fired from %v", origin)
	}
	dir := direction.Normalize()
	c := &Cast{
		owner:        owner,
		payload:      payload,
		origin:       origin,
		position:     origin,
		direction:    dir,
		velocity:     dir.Mul(speed),
		acceleration: behavior.Acceleration,
		behavior:     behavior,
		hitSet:       make(map[uuid.UUID]struct{}),
		active:       true,
	}
	if behavior.Tokens != nil {
		c.token = behavior.Tokens.Acquire()
		s.positionToken(c)
	}

	var index int
	if n := len(s.freeSlots); n > 0 {
		index = s.freeSlots[n-1]
		s.freeSlots = s.freeSlots[:n-1]
		s.slots[index].cast = c
	} else {
		index = len(s.slots)
		s.slots = append(s.slots, slot{cast: c, generation: 1})
	}
	s.order = append(s.order, index)

	if s.cancelTick == nil && s.clock != nil {
		s.cancelTick = s.clock.Subscribe(s.Advance)
	}
	return Handle{index: index, generation: s.slots[index].generation}, nil
}

// Pause skips the cast during the tick pass: no motion, no collision
// checks, the token stays where it is and remains reserved.
func (s *Scheduler) Pause(handle Handle) {
	if c, ok := s.resolveReported(handle, "Pause"); ok {
		c.paused = true
	}
}

func (s *Scheduler) Resume(handle Handle) {
	if c, ok := s.resolveReported(handle, "Resume"); ok {
		c.paused = false
	}
}

// SetVelocity replaces the cast's velocity, taking effect on the next tick.
func (s *Scheduler) SetVelocity(handle Handle, velocity mgl32.Vec3) {
	c, ok := s.resolveReported(handle, "SetVelocity")
	if !ok {
		return
	}
	c.velocity = velocity
	if velocity.Len() > 0 {
		c.direction = velocity.Normalize()
	}
}

// SetAcceleration overrides the behavior's acceleration for this one cast.
func (s *Scheduler) SetAcceleration(handle Handle, acceleration mgl32.Vec3) {
	if c, ok := s.resolveReported(handle, "SetAcceleration"); ok {
		c.acceleration = acceleration
	}
}

// Terminate marks the cast inactive, releases its token and emits
// Terminating. Idempotent: terminating a dead or stale handle is a silent
// no-op. The slot itself is reclaimed by the next housekeeping sweep.
func (s *Scheduler) Terminate(handle Handle) {
	c, ok := s.resolve(handle)
	if !ok {
		return
	}
	s.terminate(c)
	if !s.inPass && !s.draining {
		s.drainEvents()
	}
}

// ActiveCount reports the number of casts that are registered and not yet
// terminated.
func (s *Scheduler) ActiveCount() int {
	count := 0
	for _, index := range s.order {
		if c := s.slots[index].cast; c != nil && c.active {
			count++
		}
	}
	return count
}

// IsSubscribed reports whether the scheduler currently listens to the tick
// source.
func (s *Scheduler) IsSubscribed() bool {
	return s.cancelTick != nil
}

// Advance runs one tick over all active casts. Hosts with a TickSource
// never call this directly, the subscription does.
func (s *Scheduler) Advance(dt float64) {
	s.inPass = true
	delta := float32(dt)
	count := len(s.order)
	for i := 0; i < count; i++ {
		c := s.slots[s.order[i]].cast
		if c == nil || !c.active || c.paused {
			continue
		}
		s.advanceCast(c, delta)
	}
	s.inPass = false
	s.drainEvents()
	s.sweep()
	if len(s.order) == 0 && s.cancelTick != nil {
		s.cancelTick()
		s.cancelTick = nil
	}
}

// advanceCast integrates one cast over one tick, subdividing the motion
// into segments no longer than the behavior's SegmentSize. That bound is
// the anti-tunnelling guarantee: a target thinner than SegmentSize cannot
// fall between two consecutive ray queries.
func (s *Scheduler) advanceCast(c *Cast, dt float32) {
	behavior := c.behavior
	c.velocity = c.velocity.Add(c.acceleration.Mul(dt))
	movement := c.velocity.Mul(dt)
	length := movement.Len()

	segmentCount := 1
	if length > behavior.SegmentSize {
		segmentCount = int(util.Ceil(length / behavior.SegmentSize))
	}
	segmentDelta := movement.Mul(1.0 / float32(segmentCount))

	for seg := 0; seg < segmentCount; seg++ {
		segmentStart := c.position
		hit, found := s.world.Raycast(segmentStart, segmentDelta, behavior.Filter)
		if found && !c.HasStruck(hit.Target) {
			c.hitSet[hit.Target] = struct{}{}
			if s.shouldPierce(c, hit) {
				s.queuePierced(c, hit)
				// pierced targets are transparent: motion continues
				// from the segment start as if nothing was there
				c.position = segmentStart.Add(segmentDelta)
				continue
			}
			c.position = hit.Point
			s.positionToken(c)
			s.queueHit(c, hit)
			s.terminate(c)
			return
		}
		c.position = segmentStart.Add(segmentDelta)
	}

	c.distance += length
	c.runtime += dt
	s.positionToken(c)
	s.queueLengthChanged(c)
	if c.distance >= behavior.MaxDistance {
		s.terminate(c)
	}
}

// shouldPierce asks the behavior's predicate and fails closed: a panicking
// predicate is reported and counts as "stop here".
func (s *Scheduler) shouldPierce(c *Cast, hit Hit) (pierce bool) {
	if c.behavior.CanPierce == nil {
		return false
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			pierce = false
			s.report(errors.Errorf("pierce predicate panicked on target %s: %v", hit.Target, recovered))
		}
	}()
	return c.behavior.CanPierce(c, hit, c.velocity)
}

func (s *Scheduler) terminate(c *Cast) {
	if !c.active {
		return
	}
	c.active = false
	s.queueTerminating(c)
	s.releaseToken(c)
}

func (s *Scheduler) releaseToken(c *Cast) {
	if c.token == nil || c.behavior.Tokens == nil {
		return
	}
	c.behavior.Tokens.Release(c.token)
	c.token = nil
}

func (s *Scheduler) positionToken(c *Cast) {
	if c.token == nil || s.tokens == nil {
		return
	}
	facing := c.direction
	if c.velocity.Len() > 0 {
		facing = c.velocity.Normalize()
	}
	s.tokens.SetTransform(c.token, c.position, facing)
}

func (s *Scheduler) queueHit(c *Cast, hit Hit) {
	event := HitEvent{Cast: c, Result: hit, Velocity: c.velocity, Token: c.token}
	s.pending = append(s.pending, func() {
		s.hit.emit(event, s.reportHandlerPanic)
	})
}

func (s *Scheduler) queuePierced(c *Cast, hit Hit) {
	event := PiercedEvent{Cast: c, Result: hit, Velocity: c.velocity, Token: c.token}
	s.pending = append(s.pending, func() {
		s.pierced.emit(event, s.reportHandlerPanic)
	})
}

func (s *Scheduler) queueLengthChanged(c *Cast) {
	event := LengthChangedEvent{Cast: c, Origin: c.origin, Position: c.position, Velocity: c.velocity, Token: c.token}
	s.pending = append(s.pending, func() {
		s.lengthChanged.emit(event, s.reportHandlerPanic)
	})
}

func (s *Scheduler) queueTerminating(c *Cast) {
	event := TerminatingEvent{Cast: c}
	s.pending = append(s.pending, func() {
		s.terminating.emit(event, s.reportHandlerPanic)
	})
}

// drainEvents dispatches everything queued during the pass. Handlers may
// queue more (by terminating other casts, for example), those emissions are
// picked up within the same drain.
func (s *Scheduler) drainEvents() {
	s.draining = true
	for i := 0; i < len(s.pending); i++ {
		s.pending[i]()
	}
	s.pending = s.pending[:0]
	s.draining = false
}

// sweep reclaims the slots of terminated casts. Removal is deferred to
// here so the tick pass never iterates a mutating collection.
func (s *Scheduler) sweep() {
	live := s.order[:0]
	for _, index := range s.order {
		c := s.slots[index].cast
		if c != nil && c.active {
			live = append(live, index)
			continue
		}
		s.slots[index].cast = nil
		s.slots[index].generation++
		s.freeSlots = append(s.freeSlots, index)
	}
	s.order = live
}

func (s *Scheduler) resolve(handle Handle) (*Cast, bool) {
	if handle.index < 0 || handle.index >= len(s.slots) {
		return nil, false
	}
	sl := s.slots[handle.index]
	if sl.cast == nil || sl.generation != handle.generation || !sl.cast.active {
		return nil, false
	}
	return sl.cast, true
}

func (s *Scheduler) resolveReported(handle Handle, op string) (*Cast, bool) {
	c, ok := s.resolve(handle)
	if !ok {
		s.report(errors.Wrapf(ErrDeadHandle, "%s", op))
	}
	return c, ok
}

func (s *Scheduler) report(err error) {
	if s.reportError != nil {
		s.reportError(err)
	}
}

func (s *Scheduler) reportHandlerPanic(recovered any) {
	s.report(errors.Errorf("event handler panicked: %v", recovered))
}
