// Package event provides the change-notification primitive row models use to
// tell a rendering layer to re-pull visible rows.
package event

import "sync"

// Emitter fans a payload-free notification out to subscribed listeners.
// The zero value is not usable; call NewEmitter.
type Emitter struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]func()
}

// NewEmitter creates an empty Emitter.
func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[int]func())}
}

// Subscribe registers fn and returns an unsubscribe function. Handlers run
// synchronously on the notifying goroutine, so they must be quick and must
// not call back into the notifier while holding its locks.
func (e *Emitter) Subscribe(fn func()) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextID
	e.nextID++
	e.handlers[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.handlers, id)
		e.mu.Unlock()
	}
}

// Notify invokes every subscribed handler. The handler set is snapshotted
// first so handlers may unsubscribe themselves.
func (e *Emitter) Notify() {
	e.mu.RLock()
	fns := make([]func(), 0, len(e.handlers))
	for _, fn := range e.handlers {
		fns = append(fns, fn)
	}
	e.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
