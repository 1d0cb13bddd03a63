package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitter_NotifyAndUnsubscribe(t *testing.T) {
	e := NewEmitter()

	var a, b int
	unsubA := e.Subscribe(func() { a++ })
	e.Subscribe(func() { b++ })

	e.Notify()
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)

	unsubA()
	e.Notify()
	assert.Equal(t, 1, a, "unsubscribed handler must not fire")
	assert.Equal(t, 2, b)
}

func TestEmitter_UnsubscribeDuringNotify(t *testing.T) {
	e := NewEmitter()

	var calls int
	var unsub func()
	unsub = e.Subscribe(func() {
		calls++
		unsub()
	})

	e.Notify()
	e.Notify()
	assert.Equal(t, 1, calls)
}

func TestEmitter_ConcurrentNotify(t *testing.T) {
	e := NewEmitter()

	var mu sync.Mutex
	calls := 0
	e.Subscribe(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.Notify()
		}()
	}
	wg.Wait()
	assert.Equal(t, 8, calls)
}
