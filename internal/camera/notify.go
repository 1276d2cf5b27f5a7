package camera

import "sync"

// Notifier fans settings changes out to co-mounted consumers so the live
// view reacts to the tuning panel without a restart. Publish runs the
// callbacks synchronously on the caller's goroutine.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Settings)
}

// Subscribe registers fn and returns its unsubscribe func.
func (n *Notifier) Subscribe(fn func(Settings)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func(Settings))
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Publish delivers st to every subscriber.
func (n *Notifier) Publish(st Settings) {
	n.mu.Lock()
	fns := make([]func(Settings), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()
	for _, fn := range fns {
		fn(st)
	}
}
