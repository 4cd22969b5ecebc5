package events

// EventCollector is embedded in aggregates; state transitions record events
// and the application layer drains them after persistence.
type EventCollector struct {
	pending []DomainEvent
}

// Record queues one or more events.
func (c *EventCollector) Record(evts ...DomainEvent) {
	c.pending = append(c.pending, evts...)
}

// Pending reports how many events are queued.
func (c *EventCollector) Pending() int {
	return len(c.pending)
}

// Events returns the queued events without draining them.
func (c *EventCollector) Events() []DomainEvent {
	return c.pending
}

// ClearEvents drains the queue. It returns nil when nothing was recorded.
func (c *EventCollector) ClearEvents() []DomainEvent {
	drained := c.pending
	c.pending = nil
	return drained
}
