package tangent

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

type BodyId string

func makeBodyId() BodyId {
	return BodyId(uuid.NewString())
}

// AABB is an axis-aligned bounding box in world space.
type AABB struct {
	Min mgl64.Vec2
	Max mgl64.Vec2
}

func (a AABB) Intersects(other AABB) bool {
	if a.Max.X() < other.Min.X() || a.Min.X() > other.Max.X() {
		return false
	}
	if a.Max.Y() < other.Min.Y() || a.Min.Y() > other.Max.Y() {
		return false
	}
	return true
}

// Body is a simulated 2D physical object. A compound body owns a set of
// constituent parts; every part (including a plain body itself) carries a
// back-reference to its root, which is the identity used for listener
// matching.
type Body struct {
	Id    BodyId
	Label string

	Position    mgl64.Vec2
	Velocity    mgl64.Vec2
	HalfExtents mgl64.Vec2

	IsStatic     bool
	GravityScale float64

	parent *Body
	parts  []*Body

	gameObject any
}

// NewBody creates a plain (non-compound) body. The body is its own parent
// and its own single part.
func NewBody(label string, position, halfExtents mgl64.Vec2) *Body {
	b := &Body{
		Id:           makeBodyId(),
		Label:        label,
		Position:     position,
		HalfExtents:  halfExtents,
		GravityScale: 1.0,
	}
	b.parent = b
	b.parts = []*Body{b}
	return b
}

// NewCompoundBody creates a body composed of the given parts. The parts are
// reparented to the new body; collision reporting happens at part level but
// matching resolves every part back to this root.
func NewCompoundBody(label string, parts ...*Body) *Body {
	c := &Body{
		Id:           makeBodyId(),
		Label:        label,
		GravityScale: 1.0,
	}
	c.parent = c
	c.parts = append([]*Body{c}, parts...)

	var min, max mgl64.Vec2
	for i, p := range parts {
		p.parent = c
		bounds := p.Bounds()
		if i == 0 {
			min, max = bounds.Min, bounds.Max
			continue
		}
		min = mgl64.Vec2{math.Min(min.X(), bounds.Min.X()), math.Min(min.Y(), bounds.Min.Y())}
		max = mgl64.Vec2{math.Max(max.X(), bounds.Max.X()), math.Max(max.Y(), bounds.Max.Y())}
	}
	if len(parts) > 0 {
		c.Position = min.Add(max).Mul(0.5)
		c.HalfExtents = max.Sub(min).Mul(0.5)
	}
	return c
}

// Root resolves the canonical matching identity of the body: its outermost
// parent. A plain body and a compound root are their own parent, so the
// resolution is a single pointer read and idempotent.
func (b *Body) Root() *Body {
	if b.parent == nil {
		return b
	}
	return b.parent
}

// Parts returns the constituent parts of the body. For a compound body the
// first entry is the body itself, mirroring how the parts were assembled.
func (b *Body) Parts() []*Body {
	if len(b.parts) == 0 {
		return []*Body{b}
	}
	return b.parts
}

func (b *Body) Bounds() AABB {
	return AABB{
		Min: b.Position.Sub(b.HalfExtents),
		Max: b.Position.Add(b.HalfExtents),
	}
}

// SetGameObject attaches the owning higher-level entity. Only used to
// decorate collision event payloads, never for matching.
func (b *Body) SetGameObject(obj any) {
	b.gameObject = obj
}

func (b *Body) GameObject() any {
	return b.gameObject
}

// Translate moves the body and all of its parts by delta.
func (b *Body) Translate(delta mgl64.Vec2) {
	b.Position = b.Position.Add(delta)
	for _, p := range b.parts {
		if p == b {
			continue
		}
		p.Position = p.Position.Add(delta)
	}
}

// Integrate advances the body by dt under the given gravity. Static bodies
// do not move; parts are carried along by their root.
func (b *Body) Integrate(dt float64, gravity mgl64.Vec2) {
	if b.IsStatic {
		return
	}
	b.Velocity = b.Velocity.Add(gravity.Mul(b.GravityScale * dt))
	b.Translate(b.Velocity.Mul(dt))
}
