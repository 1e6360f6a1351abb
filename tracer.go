package main

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/marcador/crossfire/engine/pool"
)

// tracerToken is the headless stand-in for a rendered projectile tracer.
type tracerToken struct {
	id        int
	position  mgl32.Vec3
	facing    mgl32.Vec3
	colliding bool
	container pool.Container
}

// tracerProvider implements pool.Provider (and the colliding toggle)
// without a renderer behind it.
type tracerProvider struct {
	nextID int
	live   int
}

func (p *tracerProvider) Clone(template pool.Token) pool.Token {
	p.nextID++
	p.live++
	return &tracerToken{id: p.nextID}
}

func (p *tracerProvider) SetTransform(token pool.Token, position mgl32.Vec3, facing mgl32.Vec3) {
	tracer := token.(*tracerToken)
	tracer.position = position
	tracer.facing = facing
}

func (p *tracerProvider) Destroy(token pool.Token) {
	p.live--
}

func (p *tracerProvider) SetContainer(token pool.Token, container pool.Container) {
	token.(*tracerToken).container = container
}

func (p *tracerProvider) SetColliding(token pool.Token, colliding bool) {
	token.(*tracerToken).colliding = colliding
}
