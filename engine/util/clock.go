package util

// FixedClock is a tick source that advances its subscribers by a fixed
// timestep every call to Tick. Subscribers are notified in subscription
// order. The cancel function returned by Subscribe is safe to call more
// than once.
type FixedClock struct {
	dt       float64
	handlers map[int]func(dt float64)
	order    []int
	nextID   int
}

func NewFixedClock(dt float64) *FixedClock {
	return &FixedClock{
		dt:       dt,
		handlers: make(map[int]func(dt float64)),
	}
}

func (c *FixedClock) Subscribe(fn func(dt float64)) func() {
	id := c.nextID
	c.nextID++
	c.handlers[id] = fn
	c.order = append(c.order, id)
	return func() {
		delete(c.handlers, id)
	}
}

// Tick advances the clock by one fixed step. Subscriptions made during the
// tick are first notified on the following tick.
func (c *FixedClock) Tick() {
	count := len(c.order)
	for i := 0; i < count; i++ {
		fn, ok := c.handlers[c.order[i]]
		if !ok {
			continue
		}
		fn(c.dt)
	}
	if len(c.handlers) < len(c.order) {
		live := make([]int, 0, len(c.handlers))
		for _, id := range c.order {
			if _, ok := c.handlers[id]; ok {
				live = append(live, id)
			}
		}
		c.order = live
	}
}

func (c *FixedClock) DeltaTime() float64 {
	return c.dt
}

func (c *FixedClock) SubscriberCount() int {
	return len(c.handlers)
}
