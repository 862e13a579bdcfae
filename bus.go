package tangent

// EventBus is the host-side notification mechanism: a dynamic
// publish/subscribe bus keyed by string topics. Emission is synchronous and
// single-threaded; handlers run in subscription order before Emit returns.
type EventBus struct {
	nextId   uint64
	handlers map[string][]busEntry
}

type busEntry struct {
	id uint64
	fn EventHandler
}

type EventHandler func(payload any)

// Subscription identifies one bus registration for later removal.
type Subscription struct {
	topic string
	id    uint64
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[string][]busEntry),
	}
}

func (b *EventBus) Subscribe(topic string, fn EventHandler) Subscription {
	if fn == nil {
		return Subscription{}
	}
	b.nextId++
	b.handlers[topic] = append(b.handlers[topic], busEntry{id: b.nextId, fn: fn})
	return Subscription{topic: topic, id: b.nextId}
}

// Unsubscribe removes a subscription. Removing one that is already gone is a
// no-op, so teardown paths can fire more than once.
func (b *EventBus) Unsubscribe(sub Subscription) {
	entries := b.handlers[sub.topic]
	for i, e := range entries {
		if e.id == sub.id {
			b.handlers[sub.topic] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// Emit invokes every handler subscribed to topic with the payload. The
// handler list is snapshotted first, so handlers that unsubscribe themselves
// or others during emission still see a consistent pass.
func (b *EventBus) Emit(topic string, payload any) {
	entries := b.handlers[topic]
	if len(entries) == 0 {
		return
	}
	snapshot := append([]busEntry(nil), entries...)
	for _, e := range snapshot {
		e.fn(payload)
	}
}

// SubscriberCount reports how many handlers are registered for topic.
func (b *EventBus) SubscriberCount(topic string) int {
	return len(b.handlers[topic])
}

// TotalSubscribers reports handlers across all topics.
func (b *EventBus) TotalSubscribers() int {
	total := 0
	for _, entries := range b.handlers {
		total += len(entries)
	}
	return total
}
