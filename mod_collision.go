package tangent

// CollisionModule wires the collision listener core to a scene. On install
// it subscribes the core's dispatch to the world's per-step collision
// topics and its own teardown to the scene's shutdown and destroy topics.
//
// A scene without a physics world gets an inert core: registrations are
// accepted and stored, a single warning is logged, and nothing is ever
// dispatched.
type CollisionModule struct{}

func (CollisionModule) Install(scene *Scene) {
	logger := scene.Logger()
	listeners := NewCollisionListeners(logger, scene.Resolver())
	scene.collisions = listeners

	if scene.World() == nil {
		logger.Warnf("scene %q has no physics world; collision listeners will never fire", scene.Name)
		return
	}

	binder := &collisionBinder{
		listeners: listeners,
		bus:       scene.Events(),
	}
	binder.attach()
}

// collisionBinder holds the bus subscriptions standing between the host
// notifications and the core. It is the only component that knows the bus
// exists; the core is driven purely through Dispatch.
type collisionBinder struct {
	listeners *CollisionListeners
	bus       *EventBus
	subs      []Subscription
	detached  bool
}

func (b *collisionBinder) attach() {
	for _, phase := range []CollidePhase{CollideStart, CollideActive, CollideEnd} {
		b.subs = append(b.subs, b.bus.Subscribe(phase.topic(), func(payload any) {
			pairs, ok := payload.([]CollisionPair)
			if !ok {
				return
			}
			b.listeners.Dispatch(phase, pairs)
		}))
	}
	b.subs = append(b.subs, b.bus.Subscribe(EventSceneShutdown, func(any) { b.teardown() }))
	b.subs = append(b.subs, b.bus.Subscribe(EventSceneDestroy, func(any) { b.teardown() }))
}

// teardown drops every bus subscription and clears the registry. Running it
// twice (shutdown followed by destroy) leaves the same fully detached state.
func (b *collisionBinder) teardown() {
	if b.detached {
		return
	}
	b.detached = true
	for _, sub := range b.subs {
		b.bus.Unsubscribe(sub)
	}
	b.subs = nil
	b.listeners.RemoveAllCollideListeners()
}
