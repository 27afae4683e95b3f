// Package watch provides a small observable value used to publish live query
// results. A Value has a single owning writer (the component that created the
// underlying subscription) and any number of subscribers, each receiving
// emissions on its own channel until it cancels or the Value is closed.
package watch

import "sync"

// Value is an observable container for a value of type T.
//
// Exactly one component may call Set; subscribers only read. Subscribers that
// fall behind keep only the most recent emission, which matches the
// full-current-set (not incremental-diff) delivery guarantee of the live
// queries this type fronts.
type Value[T any] struct {
	mu     sync.Mutex
	cur    T
	set    bool
	closed bool
	subs   map[int]chan T
	nextID int
}

// NewValue returns an empty Value with no current emission.
func NewValue[T any]() *Value[T] {
	return &Value[T]{subs: make(map[int]chan T)}
}

// NewValueOf returns a Value whose current emission is already v. New
// subscribers receive v immediately.
func NewValueOf[T any](v T) *Value[T] {
	w := NewValue[T]()
	w.cur = v
	w.set = true
	return w
}

// Get returns the current emission and whether one exists yet.
func (v *Value[T]) Get() (T, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur, v.set
}

// Set publishes a new emission to all subscribers. Only the owning writer may
// call Set. Calling Set on a closed Value is a no-op.
func (v *Value[T]) Set(val T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.cur = val
	v.set = true
	for _, ch := range v.subs {
		send(ch, val)
	}
}

// Subscribe registers a new subscriber. The returned channel first delivers
// the current emission, if any, then every subsequent Set. The cancel
// function detaches the subscriber; the channel is closed when the subscriber
// cancels or the Value is closed.
func (v *Value[T]) Subscribe() (<-chan T, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	ch := make(chan T, 1)
	if v.set {
		ch <- v.cur
	}
	if v.closed {
		close(ch)
		return ch, func() {}
	}

	id := v.nextID
	v.nextID++
	v.subs[id] = ch

	cancel := func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if sub, ok := v.subs[id]; ok {
			delete(v.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// Close detaches and closes all subscriber channels. Subsequent Sets are
// dropped and subsequent Subscribes receive only the final emission.
func (v *Value[T]) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	for id, ch := range v.subs {
		delete(v.subs, id)
		close(ch)
	}
}

// send delivers val without blocking the writer: if the subscriber's buffer
// is full, the stale buffered emission is replaced by the new one.
func send[T any](ch chan T, val T) {
	for {
		select {
		case ch <- val:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
