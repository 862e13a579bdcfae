package tangent

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

type pairKey struct {
	a BodyId
	b BodyId
}

// makePairKey creates a normalized pair key with consistent ordering
func makePairKey(bodyA, bodyB *Body) pairKey {
	if bodyB.Id < bodyA.Id {
		bodyA, bodyB = bodyB, bodyA
	}
	return pairKey{a: bodyA.Id, b: bodyB.Id}
}

// World is a minimal 2D physics source: it integrates bodies, finds AABB
// overlaps between parts, and publishes one batch per collision phase per
// step on the scene bus. Overlap pairs are tracked across steps to classify
// them as start (new), active (persisting) or end (vanished).
type World struct {
	logger Logger
	bus    *EventBus

	Gravity mgl64.Vec2

	grid   *SpatialHashGrid
	bodies []*Body

	previousPairs map[pairKey]CollisionPair
	currentPairs  map[pairKey]CollisionPair
}

func NewWorld(cfg WorldConfig, bus *EventBus, logger Logger) *World {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &World{
		logger:        logger,
		bus:           bus,
		Gravity:       mgl64.Vec2{cfg.Gravity[0], cfg.Gravity[1]},
		grid:          NewSpatialHashGrid(cfg.CellSize),
		previousPairs: make(map[pairKey]CollisionPair),
		currentPairs:  make(map[pairKey]CollisionPair),
	}
}

// AddBody adds a root body to the world. Parts of compound bodies are
// carried implicitly; do not add them separately.
func (w *World) AddBody(body *Body) {
	w.bodies = append(w.bodies, body)
	w.logger.Debugf("world: added body %q (%s)", body.Label, body.Id)
}

// RemoveBody removes a body and forgets any overlap state involving its
// parts. No end event is emitted for pairs broken by removal.
func (w *World) RemoveBody(body *Body) {
	k := -1
	for i, b := range w.bodies {
		if b == body {
			k = i
			break
		}
	}
	if k != -1 {
		w.bodies = append(w.bodies[:k], w.bodies[k+1:]...)
	}

	for key, pair := range w.previousPairs {
		if pair.BodyA.Root() == body || pair.BodyB.Root() == body {
			delete(w.previousPairs, key)
		}
	}
}

func (w *World) Bodies() []*Body {
	return w.bodies
}

// Step advances the simulation by dt seconds and publishes the resulting
// collision batches. Batches are emitted in start, active, end order; empty
// batches are not published.
func (w *World) Step(dt float64) {
	for _, body := range w.bodies {
		body.Integrate(dt, w.Gravity)
	}

	w.detectOverlaps()

	var start, active, end []CollisionPair
	for key, pair := range w.currentPairs {
		if _, ok := w.previousPairs[key]; ok {
			active = append(active, pair)
		} else {
			start = append(start, pair)
		}
	}
	for key, pair := range w.previousPairs {
		if _, ok := w.currentPairs[key]; !ok {
			end = append(end, pair)
		}
	}
	sortPairs(start)
	sortPairs(active)
	sortPairs(end)

	// Swap for next step and clear current
	w.previousPairs, w.currentPairs = w.currentPairs, w.previousPairs
	clear(w.currentPairs)

	if w.bus == nil {
		return
	}
	if len(start) > 0 {
		w.bus.Emit(EventCollisionStart, start)
	}
	if len(active) > 0 {
		w.bus.Emit(EventCollisionActive, active)
	}
	if len(end) > 0 {
		w.bus.Emit(EventCollisionEnd, end)
	}
}

// detectOverlaps fills currentPairs with every part pair whose AABBs
// intersect. Parts of the same root never pair with each other; the hull
// entry of a compound body is skipped in favor of its parts.
func (w *World) detectOverlaps() {
	w.grid.Clear()

	var parts []*Body
	for _, body := range w.bodies {
		parts = append(parts, collidableParts(body)...)
	}
	for _, p := range parts {
		w.grid.Insert(p)
	}

	for _, p := range parts {
		bounds := p.Bounds()
		for _, q := range w.grid.QueryAABB(bounds) {
			if q == p || q.Root() == p.Root() {
				continue
			}
			key := makePairKey(p, q)
			if _, seen := w.currentPairs[key]; seen {
				continue
			}
			if bounds.Intersects(q.Bounds()) {
				w.currentPairs[key] = CollisionPair{BodyA: p, BodyB: q}
			}
		}
	}
}

// collidableParts returns the bodies the broadphase should index: the body
// itself when plain, its parts without the hull when compound.
func collidableParts(body *Body) []*Body {
	parts := body.Parts()
	if len(parts) > 1 {
		return parts[1:]
	}
	return parts
}

// sortPairs orders a batch by pair key so emission is reproducible across
// runs; pair order within an entry stays as detected.
func sortPairs(pairs []CollisionPair) {
	sort.Slice(pairs, func(i, j int) bool {
		ki := makePairKey(pairs[i].BodyA, pairs[i].BodyB)
		kj := makePairKey(pairs[j].BodyA, pairs[j].BodyB)
		if ki.a != kj.a {
			return ki.a < kj.a
		}
		return ki.b < kj.b
	})
}
