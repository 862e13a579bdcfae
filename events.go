package tangent

// CollidePhase identifies the lifecycle moment of a collision between two
// bodies: the step it begins, every step it persists, and the step it ends.
type CollidePhase int

const (
	CollideStart CollidePhase = iota
	CollideActive
	CollideEnd
)

func (p CollidePhase) String() string {
	switch p {
	case CollideStart:
		return "start"
	case CollideActive:
		return "active"
	case CollideEnd:
		return "end"
	}
	return "unknown"
}

// Bus topics published by the world and the scene. The collision core never
// subscribes to these directly; CollisionModule does the wiring.
const (
	EventCollisionStart  = "collisionstart"
	EventCollisionActive = "collisionactive"
	EventCollisionEnd    = "collisionend"

	EventSceneStart    = "scene:start"
	EventSceneShutdown = "scene:shutdown"
	EventSceneDestroy  = "scene:destroy"
)

func (p CollidePhase) topic() string {
	switch p {
	case CollideStart:
		return EventCollisionStart
	case CollideActive:
		return EventCollisionActive
	case CollideEnd:
		return EventCollisionEnd
	}
	return ""
}

// CollisionPair is one collided pair as reported by the physics source. The
// order of BodyA/BodyB is incidental and carries no meaning. For compound
// bodies the pair references the specific colliding parts.
type CollisionPair struct {
	BodyA *Body
	BodyB *Body
}

// CollisionEvent is the payload delivered to collision listeners. BodyA and
// BodyB are the raw bodies exactly as reported (not canonicalized), in the
// order of the original pair. GameObjectA/B are resolved through the scene's
// GameObjectResolver and may be nil.
type CollisionEvent struct {
	BodyA       *Body
	BodyB       *Body
	GameObjectA any
	GameObjectB any
	Pair        CollisionPair
}

// CollisionHandler receives one collision event. ctx is the optional value
// the listener was registered with, nil when none was given.
type CollisionHandler func(ctx any, event CollisionEvent)

// GameObjectResolver maps a raw body to its owning higher-level entity.
// Resolution failures are not errors; a nil result leaves the event payload
// undecorated.
type GameObjectResolver interface {
	Resolve(body *Body) any
}

// bodyGameObjectResolver reads the back-reference attached to the body's
// root. Parts share their root's game object.
type bodyGameObjectResolver struct{}

func (bodyGameObjectResolver) Resolve(body *Body) any {
	if body == nil {
		return nil
	}
	return body.Root().GameObject()
}
