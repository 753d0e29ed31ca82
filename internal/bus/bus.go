// Package bus is a small typed publish/subscribe mechanism. Handlers are
// grouped by message category and invoked synchronously, in the order they
// subscribed, on the publishing goroutine.
package bus

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Message is anything that reports its bus category.
type Message[K comparable] interface {
	Type() K
}

// Handler receives a published message.
type Handler[M any] func(M)

// Bus dispatches messages of type M by their category K.
type Bus[K comparable, M Message[K]] struct {
	mu       sync.Mutex
	handlers map[K][]Handler[M]
	logger   zerolog.Logger
}

// New creates an empty bus. Handler panics are reported to logger.
func New[K comparable, M Message[K]](logger zerolog.Logger) *Bus[K, M] {
	return &Bus[K, M]{
		handlers: make(map[K][]Handler[M]),
		logger:   logger,
	}
}

// Subscribe appends h to the handlers of category k.
func (b *Bus[K, M]) Subscribe(k K, h Handler[M]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[k] = append(b.handlers[k], h)
}

// Publish delivers m to every handler of its category. The registry lock
// is released before the first handler runs, so handlers may publish or
// subscribe themselves.
func (b *Bus[K, M]) Publish(m M) {
	k := m.Type()

	b.mu.Lock()
	handlers := make([]Handler[M], len(b.handlers[k]))
	copy(handlers, b.handlers[k])
	b.mu.Unlock()

	for i, h := range handlers {
		b.deliver(i, h, m)
	}
}

// Len returns the number of handlers subscribed to k.
func (b *Bus[K, M]) Len(k K) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[k])
}

func (b *Bus[K, M]) deliver(i int, h Handler[M], m M) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error().
				Str("category", fmt.Sprint(m.Type())).
				Int("handler", i).
				Interface("panic", r).
				Msg("bus handler panicked")
		}
	}()
	h(m)
}
