package engine

// Queue is the ordered, unbounded multi-producer/single-consumer channel
// between the producers (pacer, chat reader) and the event loop. A pump
// goroutine buffers events in memory so Push never blocks a producer on a
// slow consumer; backpressure is handled by the loop's frame pacing, not
// here.
type Queue struct {
	in  chan Event
	out chan Event
}

// NewQueue creates a queue and starts its pump goroutine.
func NewQueue() *Queue {
	q := &Queue{
		in:  make(chan Event, 64),
		out: make(chan Event),
	}
	go q.pump()
	return q
}

// Push enqueues an event. Safe for concurrent use. Must not be called after
// Close.
func (q *Queue) Push(ev Event) {
	q.in <- ev
}

// Events returns the consumer side. It is closed after Close once all
// buffered events have been delivered.
func (q *Queue) Events() <-chan Event {
	return q.out
}

// Close stops accepting new events. Buffered events are still delivered.
func (q *Queue) Close() {
	close(q.in)
}

func (q *Queue) pump() {
	var buf []Event
	for {
		// Only offer to the consumer when something is buffered.
		var out chan Event
		var next Event
		if len(buf) > 0 {
			out = q.out
			next = buf[0]
		}

		select {
		case ev, ok := <-q.in:
			if !ok {
				for _, rest := range buf {
					q.out <- rest
				}
				close(q.out)
				return
			}
			buf = append(buf, ev)
		case out <- next:
			buf = buf[1:]
		}
	}
}
