package util

import (
	"fmt"
	"math"
	"time"
)

// TickTimer tracks the cost of one repeatedly executed section, usually the
// per-tick simulation pass.
type TickTimer struct {
	name  string
	last  float64
	total float64
	min   float64
	max   float64
	ticks int64
}

func NewTickTimer(name string) *TickTimer {
	return &TickTimer{
		name: name,
		min:  math.MaxFloat64,
		max:  -math.MaxFloat64,
	}
}

// Measure starts a measurement and returns the function that ends it.
func (t *TickTimer) Measure() func() float64 {
	start := time.Now()
	return func() float64 {
		durationInMS := float64(time.Since(start).Microseconds()) / 1000.0
		t.last = durationInMS
		t.total += durationInMS
		t.ticks++
		if durationInMS < t.min {
			t.min = durationInMS
		}
		if durationInMS > t.max {
			t.max = durationInMS
		}
		return durationInMS
	}
}

func (t *TickTimer) Ticks() int64 {
	return t.ticks
}

func (t *TickTimer) String() string {
	if t.ticks == 0 {
		return fmt.Sprintf("%s: no samples", t.name)
	}
	return fmt.Sprintf("%s last: %.3fms, avg: %.3fms, min: %.3fms, max: %.3fms (%d ticks)", t.name, t.last, t.total/float64(t.ticks), t.min, t.max, t.ticks)
}
