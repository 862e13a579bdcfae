package tangent

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Scene owns the event bus, the optional physics world, and the installed
// modules' state. Lifecycle notifications go out on the bus so that modules
// can tear themselves down without the scene knowing about them.
type Scene struct {
	Name string

	logger     Logger
	bus        *EventBus
	world      *World
	collisions *CollisionListeners
	resolver   GameObjectResolver

	started bool
}

func (s *Scene) Logger() Logger {
	if s.logger == nil {
		return NewNopLogger()
	}
	return s.logger
}

// Events returns the scene's notification bus.
func (s *Scene) Events() *EventBus {
	return s.bus
}

// World returns the physics world, or nil when the scene was built without
// one.
func (s *Scene) World() *World {
	return s.world
}

// Collisions returns the collision listener registry installed by
// CollisionModule, or nil when the module was not installed.
func (s *Scene) Collisions() *CollisionListeners {
	return s.collisions
}

// Resolver returns the game-object resolver used to decorate collision
// event payloads.
func (s *Scene) Resolver() GameObjectResolver {
	if s.resolver == nil {
		return bodyGameObjectResolver{}
	}
	return s.resolver
}

// Start emits the scene start notification. Calling it twice is a no-op.
func (s *Scene) Start() {
	if s.started {
		return
	}
	s.started = true
	s.bus.Emit(EventSceneStart, s)
}

// Step advances the scene's world by dt, publishing collision batches as a
// side effect. A scene without a world steps to nothing.
func (s *Scene) Step(dt float64) {
	if s.world == nil {
		return
	}
	s.world.Step(dt)
}

// Shutdown emits the scene shutdown notification. Installed modules detach
// their subscriptions in response.
func (s *Scene) Shutdown() {
	s.bus.Emit(EventSceneShutdown, s)
}

// Destroy emits the scene destroy notification. Safe to call after
// Shutdown; module teardown is idempotent.
func (s *Scene) Destroy() {
	s.bus.Emit(EventSceneDestroy, s)
}

// SceneDef defines the initial state of a scene.
type SceneDef struct {
	Bodies []BodyDef
}

// BodyDef defines a body instantiation. A def with Parts becomes a compound
// body; Position and HalfExtents are then derived from the parts.
type BodyDef struct {
	Label        string
	Position     mgl64.Vec2
	HalfExtents  mgl64.Vec2
	Velocity     mgl64.Vec2
	IsStatic     bool
	GravityScale float64
	GameObject   any
	Parts        []BodyDef
}

// LoadScene iterates through the SceneDef and spawns bodies into the
// scene's world. Scenes without a world log a warning and load nothing.
func LoadScene(scene *Scene, def *SceneDef) []*Body {
	if scene.World() == nil {
		scene.Logger().Warnf("scene %q has no physics world; SceneDef bodies not spawned", scene.Name)
		return nil
	}

	spawned := make([]*Body, 0, len(def.Bodies))
	for _, bodyDef := range def.Bodies {
		body := spawnBody(bodyDef)
		scene.World().AddBody(body)
		spawned = append(spawned, body)
	}
	return spawned
}

func spawnBody(def BodyDef) *Body {
	var body *Body
	if len(def.Parts) > 0 {
		parts := make([]*Body, 0, len(def.Parts))
		for _, partDef := range def.Parts {
			parts = append(parts, NewBody(partDef.Label, partDef.Position, partDef.HalfExtents))
		}
		body = NewCompoundBody(def.Label, parts...)
	} else {
		body = NewBody(def.Label, def.Position, def.HalfExtents)
	}

	body.Velocity = def.Velocity
	body.IsStatic = def.IsStatic
	if def.GravityScale != 0 {
		body.GravityScale = def.GravityScale
	}
	if def.GameObject != nil {
		body.SetGameObject(def.GameObject)
	}
	return body
}
