package session

import (
	"sync"

	"go.uber.org/zap"

	"belote/internal/engine"
)

const notifierBuffer = 64

// notifier delivers observation hooks to one seat's observer in order,
// on its own goroutine, so a slow or panicking observer never blocks
// the orchestration loop. The target can be swapped on reconnection.
type notifier struct {
	seat engine.Seat
	log  *zap.Logger

	mu     sync.Mutex
	target Observer

	ch   chan func(Observer)
	done chan struct{}
}

func newNotifier(seat engine.Seat, target Observer, log *zap.Logger) *notifier {
	n := &notifier{
		seat:   seat,
		log:    log,
		target: target,
		ch:     make(chan func(Observer), notifierBuffer),
		done:   make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *notifier) run() {
	defer close(n.done)
	for ev := range n.ch {
		target := n.current()
		if target == nil {
			continue
		}
		n.deliver(ev, target)
	}
}

func (n *notifier) deliver(ev func(Observer), target Observer) {
	defer func() {
		if r := recover(); r != nil {
			n.log.Warn("observer panicked",
				zap.Stringer("seat", n.seat),
				zap.Any("panic", r))
		}
	}()
	ev(target)
}

func (n *notifier) current() Observer {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target
}

// swap replaces the observer target without disturbing queued events.
func (n *notifier) swap(target Observer) {
	n.mu.Lock()
	n.target = target
	n.mu.Unlock()
}

// publish enqueues an event. When the buffer is full the event is
// dropped rather than blocking the game.
func (n *notifier) publish(ev func(Observer)) {
	select {
	case n.ch <- ev:
	default:
		n.log.Warn("observer queue full, dropping event", zap.Stringer("seat", n.seat))
	}
}

func (n *notifier) close() {
	close(n.ch)
	<-n.done
}
