package bridge

import "sync"

// Handler receives decoded messages. Messages are owned by the handler.
type Handler interface {
	HandleMessage(m *Message)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(m *Message)

func (fn HandlerFunc) HandleMessage(m *Message) { fn(m) }

// Mux routes each message to the sink registered for its qualified name,
// or to the fallback when none is. Exactly one sink runs per message.
type Mux struct {
	mu       sync.RWMutex
	routes   map[string]Handler
	fallback Handler
}

// NewMux builds a mux. A nil fallback drops unrouted messages.
func NewMux(fallback Handler) *Mux {
	return &Mux{routes: make(map[string]Handler), fallback: fallback}
}

// Handle registers h for a qualified message name such as "numeric.Msg1".
func (x *Mux) Handle(qualified string, h Handler) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.routes[qualified] = h
}

func (x *Mux) HandleFunc(qualified string, fn func(m *Message)) {
	x.Handle(qualified, HandlerFunc(fn))
}

func (x *Mux) HandleMessage(m *Message) {
	x.mu.RLock()
	h, ok := x.routes[m.QualifiedName()]
	x.mu.RUnlock()
	if !ok {
		h = x.fallback
	}
	if h != nil {
		h.HandleMessage(m)
	}
}
