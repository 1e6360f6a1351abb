package main

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/marcador/crossfire/engine/cast"
	"github.com/marcador/crossfire/engine/pool"
	"github.com/marcador/crossfire/engine/util"
)

func runSkirmish() {
	clock := util.NewFixedClock(1.0 / 60.0)

	arena := NewArena(16)
	shooter := arena.AddTarget("Marksman", mgl32.Vec3{0, 1, -2}, 0.5, cast.LayerUnits)
	arena.AddTarget("Grunt", mgl32.Vec3{0, 1, 30}, 1, cast.LayerUnits)
	arena.AddTarget("Heavy", mgl32.Vec3{2, 1, 55}, 1.5, cast.LayerUnits)
	arena.AddTarget("Barricade", mgl32.Vec3{0, 1, 80}, 3, cast.LayerProps)

	provider := &tracerProvider{}
	tracers := pool.New(provider, &tracerToken{}, 16, "arena")
	scheduler := cast.NewScheduler(arena, clock, provider)

	scheduler.OnHit(func(event cast.HitEvent) {
		target := arena.GetTarget(event.Result.Target)
		if target == nil {
			return
		}
		target.Health -= 40
		util.LogArenaInfo(fmt.Sprintf("%s hit at %v, health now %d", target.Name, event.Result.Point, target.Health))
		if target.Health <= 0 {
			arena.RemoveTarget(target.ID)
			util.LogArenaInfo(fmt.Sprintf("%s is down", target.Name))
		}
	})
	scheduler.OnPierced(func(event cast.PiercedEvent) {
		target := arena.GetTarget(event.Result.Target)
		if target == nil {
			return
		}
		target.Health -= 25
		util.LogArenaInfo(fmt.Sprintf("%s pierced at %v, health now %d", target.Name, event.Result.Point, target.Health))
	})
	scheduler.OnTerminating(func(event cast.TerminatingEvent) {
		util.LogArenaInfo(fmt.Sprintf("cast %v terminating after %.1f units", event.Cast.GetPayload(), event.Cast.GetDistanceCovered()))
	})

	rifleRound := &cast.Behavior{
		Filter: cast.Filter{
			Layers: cast.LayerUnits | cast.LayerProps,
			Ignore: map[uuid.UUID]struct{}{shooter.ID: {}},
		},
		MaxDistance: 200,
		SegmentSize: 2,
		Tokens:      tracers,
	}
	piercingRound := &cast.Behavior{
		Filter: cast.Filter{
			Layers: cast.LayerUnits | cast.LayerProps,
			Ignore: map[uuid.UUID]struct{}{shooter.ID: {}},
		},
		MaxDistance: 200,
		SegmentSize: 2,
		Tokens:      tracers,
		CanPierce: func(c *cast.Cast, hit cast.Hit, velocity mgl32.Vec3) bool {
			// punches through soft targets, stops on props
			target := arena.GetTarget(hit.Target)
			return target != nil && target.Layer == cast.LayerUnits
		},
	}
	grenade := &cast.Behavior{
		Filter:       cast.Filter{Layers: cast.LayerAll},
		MaxDistance:  150,
		SegmentSize:  1,
		Acceleration: mgl32.Vec3{0, -9.81, 0},
		Tokens:       pool.NewCloneSource(provider, &tracerToken{}, "arena"),
	}

	muzzle := shooter.Position.Add(mgl32.Vec3{0, 0.5, 1})
	mustFire(scheduler.Fire(muzzle, mgl32.Vec3{0, 0, 1}, 400, rifleRound, shooter.ID, "rifle"))
	mustFire(scheduler.Fire(muzzle, mgl32.Vec3{0.05, 0, 1}, 400, piercingRound, shooter.ID, "piercer"))
	mustFire(scheduler.Fire(muzzle, mgl32.Vec3{0, 0.4, 1}, 30, grenade, shooter.ID, "grenade"))

	timer := util.NewTickTimer("tick pass")
	for i := 0; i < 600 && scheduler.ActiveCount() > 0; i++ {
		stop := timer.Measure()
		clock.Tick()
		stop()
	}

	blastPoint := mgl32.Vec3{0, 1, 55}
	for _, target := range arena.TargetsNear(blastPoint, 12) {
		util.LogArenaInfo(fmt.Sprintf("%s caught in the blast radius around %v", target.Name, blastPoint))
	}

	util.LogArenaInfo(timer.String())
	stats := tracers.Stats()
	util.LogArenaInfo(fmt.Sprintf("tracer pool: %d open, %d in use, %d total", stats.Open, stats.InUse, stats.Total))
	tracers.Dispose()
}

func mustFire(handle cast.Handle, err error) cast.Handle {
	if err != nil {
		panic(err)
	}
	return handle
}

func main() {
	runSkirmish()
}
