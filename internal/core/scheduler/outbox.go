package scheduler

import "sync"

// outbox is an unbounded FIFO between the tick loop and the host.
// push never blocks; run delivers events in push order.
type outbox struct {
	mu     sync.Mutex
	queue  []Event
	closed bool
	signal chan struct{}
	out    chan Event
}

func newOutbox(buffer int) *outbox {
	box := &outbox{
		signal: make(chan struct{}, 1),
		out:    make(chan Event, buffer),
	}
	go box.run()
	return box
}

func (box *outbox) push(events ...Event) {
	if len(events) == 0 {
		return
	}
	box.mu.Lock()
	if box.closed {
		box.mu.Unlock()
		return
	}
	box.queue = append(box.queue, events...)
	box.mu.Unlock()
	box.wake()
}

func (box *outbox) close() {
	box.mu.Lock()
	if box.closed {
		box.mu.Unlock()
		return
	}
	box.closed = true
	box.mu.Unlock()
	box.wake()
}

func (box *outbox) wake() {
	select {
	case box.signal <- struct{}{}:
	default:
	}
}

func (box *outbox) run() {
	defer close(box.out)
	for {
		box.mu.Lock()
		pending := box.queue
		box.queue = nil
		closed := box.closed
		box.mu.Unlock()

		for _, event := range pending {
			box.out <- event
		}
		if len(pending) > 0 {
			continue
		}
		if closed {
			return
		}
		<-box.signal
	}
}
