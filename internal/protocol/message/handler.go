package message

// Handler is the catch-all sink. Concrete message types declare their own
// capability interfaces (for example HandleMsg1(*Msg1)); a handler that
// implements one receives that message there instead of in Handle.
//
// Messages passed to a handler are only valid for the duration of the call.
// Use Clone to retain one.
type Handler interface {
	Handle(m Message)
}

// HandlerFunc adapts a function to the catch-all sink.
type HandlerFunc func(m Message)

func (f HandlerFunc) Handle(m Message) { f(m) }

// Route delivers m to h through the capability interface S when h
// implements it, and to the catch-all otherwise. Exactly one sink runs.
// Generated Dispatch methods call it with a method expression:
//
//	message.Route(h, m, Msg1Handler.HandleMsg1)
func Route[S any, M Message](h Handler, m M, sink func(S, M)) {
	if h == nil {
		return
	}
	if s, ok := any(h).(S); ok {
		sink(s, m)
		return
	}
	h.Handle(m)
}
