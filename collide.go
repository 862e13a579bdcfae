package tangent

import (
	"reflect"
)

// CollisionListenerConfig describes one registration. ObjectA anchors the
// interest; a nil ObjectB makes the listener a wildcard that matches any
// pair involving ObjectA. Context, when set, is handed back to the callback
// as its first argument on every invocation.
type CollisionListenerConfig struct {
	ObjectA  *Body
	ObjectB  *Body
	Callback CollisionHandler
	Context  any
}

// collisionListener stores the raw registered bodies; canonicalization
// happens at match and removal time so that reparenting a body after
// registration is picked up.
//
// Callback identity for removal is the function's code pointer. Method
// values of the same method and closures built from the same literal share
// a code pointer and therefore count as the same callback.
type collisionListener struct {
	objectA     *Body
	objectB     *Body
	callback    CollisionHandler
	callbackPtr uintptr
	ctx         any
}

// matches reports whether the listener matches the canonical pair (x, y).
// Pair order is irrelevant; a wildcard matching a self-pair still counts as
// a single match.
func (l collisionListener) matches(x, y *Body) bool {
	a := l.objectA.Root()
	if l.objectB == nil {
		return a == x || a == y
	}
	b := l.objectB.Root()
	return (a == x && b == y) || (a == y && b == x)
}

// CollisionListeners is the pair-scoped collision event core: it owns one
// ordered listener sequence per phase and dispatches collided-pair batches
// against them. All calls happen on the host step's execution context; no
// locking, registration order is invocation order.
type CollisionListeners struct {
	logger    Logger
	resolver  GameObjectResolver
	listeners [3][]collisionListener
}

func NewCollisionListeners(logger Logger, resolver GameObjectResolver) *CollisionListeners {
	if logger == nil {
		logger = NewNopLogger()
	}
	if resolver == nil {
		resolver = bodyGameObjectResolver{}
	}
	return &CollisionListeners{
		logger:   logger,
		resolver: resolver,
	}
}

// AddOnCollideStart registers a listener for the step a collision begins.
func (c *CollisionListeners) AddOnCollideStart(cfg CollisionListenerConfig) {
	c.add(CollideStart, cfg)
}

// AddOnCollideActive registers a listener for every step a collision persists.
func (c *CollisionListeners) AddOnCollideActive(cfg CollisionListenerConfig) {
	c.add(CollideActive, cfg)
}

// AddOnCollideEnd registers a listener for the step a collision ends.
func (c *CollisionListeners) AddOnCollideEnd(cfg CollisionListenerConfig) {
	c.add(CollideEnd, cfg)
}

func (c *CollisionListeners) add(phase CollidePhase, cfg CollisionListenerConfig) {
	if cfg.ObjectA == nil || cfg.Callback == nil {
		c.logger.Debugf("collision listener for phase %s ignored: missing ObjectA or Callback", phase)
		return
	}
	c.listeners[phase] = append(c.listeners[phase], collisionListener{
		objectA:     cfg.ObjectA,
		objectB:     cfg.ObjectB,
		callback:    cfg.Callback,
		callbackPtr: reflect.ValueOf(cfg.Callback).Pointer(),
		ctx:         cfg.Context,
	})
}

// RemoveOnCollideStart removes every start-phase listener registered with the
// same bodies and callback. A wildcard removal only removes wildcard entries
// and a specific-pair removal only specific-pair entries. Removing a listener
// that was never added is a no-op.
func (c *CollisionListeners) RemoveOnCollideStart(cfg CollisionListenerConfig) {
	c.remove(CollideStart, cfg)
}

// RemoveOnCollideActive removes matching active-phase listeners.
func (c *CollisionListeners) RemoveOnCollideActive(cfg CollisionListenerConfig) {
	c.remove(CollideActive, cfg)
}

// RemoveOnCollideEnd removes matching end-phase listeners.
func (c *CollisionListeners) RemoveOnCollideEnd(cfg CollisionListenerConfig) {
	c.remove(CollideEnd, cfg)
}

func (c *CollisionListeners) remove(phase CollidePhase, cfg CollisionListenerConfig) {
	if cfg.ObjectA == nil || cfg.Callback == nil {
		return
	}
	a := cfg.ObjectA.Root()
	var b *Body
	if cfg.ObjectB != nil {
		b = cfg.ObjectB.Root()
	}
	ptr := reflect.ValueOf(cfg.Callback).Pointer()

	entries := c.listeners[phase]
	n := 0
	for _, l := range entries {
		if l.callbackPtr == ptr && l.objectA.Root() == a && sameTarget(l.objectB, b) {
			continue
		}
		entries[n] = l
		n++
	}
	for i := n; i < len(entries); i++ {
		entries[i] = collisionListener{}
	}
	c.listeners[phase] = entries[:n]
}

func sameTarget(registered, removed *Body) bool {
	if registered == nil || removed == nil {
		return registered == nil && removed == nil
	}
	return registered.Root() == removed.Root()
}

// RemoveAllCollideListeners clears every listener in all three phases.
func (c *CollisionListeners) RemoveAllCollideListeners() {
	for phase := range c.listeners {
		c.listeners[phase] = nil
	}
}

// ListenerCount reports registered listeners across all phases.
func (c *CollisionListeners) ListenerCount() int {
	total := 0
	for _, entries := range c.listeners {
		total += len(entries)
	}
	return total
}

// Dispatch delivers one phase's batch of collided pairs. For each pair, in
// batch order, every listener registered for the phase is tested in
// registration order and invoked once per matching pair with a payload built
// from the raw (non-canonicalized) bodies.
//
// The listener set is snapshotted when Dispatch begins: listeners removed by
// a callback still fire for the remaining pairs of this batch, and listeners
// added by a callback never observe it. Both kinds of mutation take effect at
// the next Dispatch. Panics from callbacks are not recovered; they abort the
// remaining invocations of the batch.
func (c *CollisionListeners) Dispatch(phase CollidePhase, pairs []CollisionPair) {
	if phase < CollideStart || phase > CollideEnd {
		return
	}
	entries := c.listeners[phase]
	if len(entries) == 0 || len(pairs) == 0 {
		return
	}
	snapshot := append([]collisionListener(nil), entries...)

	for _, pair := range pairs {
		x := pair.BodyA.Root()
		y := pair.BodyB.Root()
		for _, l := range snapshot {
			if !l.matches(x, y) {
				continue
			}
			l.callback(l.ctx, CollisionEvent{
				BodyA:       pair.BodyA,
				BodyB:       pair.BodyB,
				GameObjectA: c.resolver.Resolve(pair.BodyA),
				GameObjectB: c.resolver.Resolve(pair.BodyB),
				Pair:        pair,
			})
		}
	}
}
