package pool

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

type fakeToken struct {
	id        int
	position  mgl32.Vec3
	facing    mgl32.Vec3
	colliding bool
	container Container
	destroyed bool
}

type fakeProvider struct {
	nextID    int
	cloned    int
	destroyed int
}

func (p *fakeProvider) Clone(template Token) Token {
	p.cloned++
	p.nextID++
	return &fakeToken{id: p.nextID}
}

func (p *fakeProvider) SetTransform(token Token, position mgl32.Vec3, facing mgl32.Vec3) {
	fake := token.(*fakeToken)
	fake.position = position
	fake.facing = facing
}

func (p *fakeProvider) Destroy(token Token) {
	p.destroyed++
	token.(*fakeToken).destroyed = true
}

func (p *fakeProvider) SetContainer(token Token, container Container) {
	token.(*fakeToken).container = container
}

func (p *fakeProvider) SetColliding(token Token, colliding bool) {
	token.(*fakeToken).colliding = colliding
}

func TestNewPreallocatesAndParks(t *testing.T) {
	provider := &fakeProvider{}
	p := New(provider, &fakeToken{}, 10, "scene")

	stats := p.Stats()
	if stats.Open != 10 || stats.InUse != 0 || stats.Total != 10 {
		t.Errorf("stats = %+v, want {10 0 10}", stats)
	}
	if provider.cloned != 10 {
		t.Errorf("cloned = %d, want 10", provider.cloned)
	}
	for _, token := range p.open {
		fake := token.(*fakeToken)
		if fake.position != parkPosition {
			t.Errorf("token %d parked at %v, want %v", fake.id, fake.position, parkPosition)
		}
		if fake.colliding {
			t.Errorf("parked token %d still colliding", fake.id)
		}
		if fake.container != Container("scene") {
			t.Errorf("token %d container = %v, want scene", fake.id, fake.container)
		}
	}
}

// 11 acquires against 10 preallocated tokens: the 11th triggers exactly one
// expansion batch.
func TestAcquireExpandsInBatches(t *testing.T) {
	provider := &fakeProvider{}
	p := New(provider, &fakeToken{}, 10, nil)

	for i := 0; i < 11; i++ {
		if token := p.Acquire(); token == nil {
			t.Fatalf("Acquire %d returned nil", i+1)
		}
	}

	stats := p.Stats()
	if stats.Total != 10+ExpansionSize {
		t.Errorf("total = %d, want %d", stats.Total, 10+ExpansionSize)
	}
	if stats.InUse != 11 {
		t.Errorf("in use = %d, want 11", stats.InUse)
	}
	if stats.Open != ExpansionSize-1 {
		t.Errorf("open = %d, want %d", stats.Open, ExpansionSize-1)
	}
}

func TestConservation(t *testing.T) {
	provider := &fakeProvider{}
	p := New(provider, &fakeToken{}, 4, nil)

	var checkedOut []Token
	for i := 0; i < 9; i++ {
		checkedOut = append(checkedOut, p.Acquire())
	}
	for _, token := range checkedOut[:5] {
		p.Release(token)
	}

	stats := p.Stats()
	if stats.Open+stats.InUse != stats.Total {
		t.Errorf("open %d + in use %d != total %d", stats.Open, stats.InUse, stats.Total)
	}
	if stats.Total != provider.cloned {
		t.Errorf("total %d != cloned %d", stats.Total, provider.cloned)
	}
}

func TestReleaseParksAndRecycles(t *testing.T) {
	provider := &fakeProvider{}
	p := New(provider, &fakeToken{}, 1, nil)

	token := p.Acquire()
	fake := token.(*fakeToken)
	p.provider.SetTransform(token, mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 1})
	if !fake.colliding {
		t.Error("acquired token should be colliding")
	}

	p.Release(token)
	if fake.position != parkPosition {
		t.Errorf("released token at %v, want parked at %v", fake.position, parkPosition)
	}
	if fake.colliding {
		t.Error("released token should not be colliding")
	}

	again := p.Acquire()
	if again != token {
		t.Error("released token was not recycled")
	}
}

func TestReleaseNotInUseIsIsolated(t *testing.T) {
	provider := &fakeProvider{}
	p := New(provider, &fakeToken{}, 3, nil)
	p.Acquire()

	before := p.Stats()
	p.Release(&fakeToken{id: 999})
	p.Release(nil)
	after := p.Stats()

	if before != after {
		t.Errorf("stats changed by a bad release: %+v -> %+v", before, after)
	}

	// releasing the same token twice: second release must be a no-op
	token := p.Acquire()
	p.Release(token)
	mid := p.Stats()
	p.Release(token)
	if mid != p.Stats() {
		t.Errorf("double release changed stats: %+v -> %+v", mid, p.Stats())
	}
}

func TestReassignMovesEveryToken(t *testing.T) {
	provider := &fakeProvider{}
	p := New(provider, &fakeToken{}, 3, "old")
	held := p.Acquire()

	p.Reassign("new")

	if held.(*fakeToken).container != Container("new") {
		t.Error("in-use token was not reassigned")
	}
	for _, token := range p.open {
		if token.(*fakeToken).container != Container("new") {
			t.Error("open token was not reassigned")
		}
	}
}

func TestDisposeDestroysEverything(t *testing.T) {
	provider := &fakeProvider{}
	p := New(provider, &fakeToken{}, 5, nil)
	p.Acquire()
	p.Acquire()

	p.Dispose()

	if provider.destroyed != 5 {
		t.Errorf("destroyed = %d, want 5", provider.destroyed)
	}
	stats := p.Stats()
	if stats.Open != 0 || stats.InUse != 0 || stats.Total != 0 {
		t.Errorf("stats after dispose = %+v, want zeros", stats)
	}
	if token := p.Acquire(); token != nil {
		t.Error("Acquire on a disposed pool returned a token")
	}
}

func TestCloneSource(t *testing.T) {
	provider := &fakeProvider{}
	source := NewCloneSource(provider, &fakeToken{}, "scene")

	token := source.Acquire()
	if provider.cloned != 1 {
		t.Errorf("cloned = %d, want 1", provider.cloned)
	}
	if token.(*fakeToken).container != Container("scene") {
		t.Error("cloned token was not parented")
	}

	source.Release(token)
	if provider.destroyed != 1 {
		t.Errorf("destroyed = %d, want 1", provider.destroyed)
	}
	source.Release(nil)
	if provider.destroyed != 1 {
		t.Errorf("destroyed = %d after nil release, want 1", provider.destroyed)
	}
}
