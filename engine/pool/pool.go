package pool

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/marcador/crossfire/engine/util"
)

// Token is a visual handle managed by the pool. Tokens are opaque to this
// package, only the provider knows what is behind them. They must be
// comparable, because they key the in-use set.
type Token any

// Container is the logical parent tokens live under, e.g. a scene node.
// Opaque to this package.
type Container any

// Provider creates, places and destroys tokens on behalf of the pool.
type Provider interface {
	Clone(template Token) Token
	SetTransform(token Token, position mgl32.Vec3, facing mgl32.Vec3)
	Destroy(token Token)
	SetContainer(token Token, container Container)
}

// CollisionToggler is implemented by providers whose tokens participate in
// collision. Parked tokens are flagged non-colliding.
type CollisionToggler interface {
	SetColliding(token Token, colliding bool)
}

// ExpansionSize is the batch added when Acquire finds the pool empty.
const ExpansionSize = 8

// parked tokens sit far below the playfield
var parkPosition = mgl32.Vec3{0, -10000, 0}
var parkFacing = mgl32.Vec3{0, 0, 1}

// Pool recycles a fixed-shape set of visual tokens so that firing a cast
// does not create or destroy anything. The pool only ever grows.
type Pool struct {
	provider  Provider
	template  Token
	container Container

	open     []Token
	inUse    map[Token]bool
	total    int
	disposed bool
}

func New(provider Provider, template Token, initialCount int, container Container) *Pool {
	p := &Pool{
		provider:  provider,
		template:  template,
		container: container,
		inUse:     make(map[Token]bool),
	}
	p.expand(initialCount)
	return p
}

func (p *Pool) expand(count int) {
	for i := 0; i < count; i++ {
		token := p.provider.Clone(p.template)
		p.provider.SetContainer(token, p.container)
		p.park(token)
		p.open = append(p.open, token)
		p.total++
	}
}

func (p *Pool) park(token Token) {
	p.provider.SetTransform(token, parkPosition, parkFacing)
	if toggler, ok := p.provider.(CollisionToggler); ok {
		toggler.SetColliding(token, false)
	}
}

// Acquire hands out an open token, growing the pool by ExpansionSize first
// if none is available. Acquire never fails on a live pool.
func (p *Pool) Acquire() Token {
	if p.disposed {
		util.LogPoolError("Acquire called on a disposed pool")
		return nil
	}
	if len(p.open) == 0 {
		util.LogPoolDebug(fmt.Sprintf("pool is empty, expanding by %d", ExpansionSize))
		p.expand(ExpansionSize)
	}
	token := p.open[len(p.open)-1]
	p.open = p.open[:len(p.open)-1]
	p.inUse[token] = true
	if toggler, ok := p.provider.(CollisionToggler); ok {
		toggler.SetColliding(token, true)
	}
	return token
}

// Release parks a checked-out token and returns it to the open set.
// Releasing a token that is not checked out is a caller error: it is
// reported and ignored, the pool state is left untouched.
func (p *Pool) Release(token Token) {
	if !p.inUse[token] {
		util.LogPoolError(fmt.Sprintf("Release called with a token that is not checked out: %v", token))
		return
	}
	delete(p.inUse, token)
	p.park(token)
	p.open = append(p.open, token)
}

// Reassign moves every tracked token, open and in-use, under a new
// container. Used when the owning scene changes.
func (p *Pool) Reassign(container Container) {
	p.container = container
	for _, token := range p.open {
		p.provider.SetContainer(token, container)
	}
	for token := range p.inUse {
		p.provider.SetContainer(token, container)
	}
}

// Dispose destroys every tracked token. The pool is unusable afterwards.
func (p *Pool) Dispose() {
	for _, token := range p.open {
		p.provider.Destroy(token)
	}
	for token := range p.inUse {
		p.provider.Destroy(token)
	}
	p.open = nil
	p.inUse = make(map[Token]bool)
	p.total = 0
	p.disposed = true
}

type Stats struct {
	Open  int
	InUse int
	Total int
}

func (p *Pool) Stats() Stats {
	return Stats{Open: len(p.open), InUse: len(p.inUse), Total: p.total}
}
