package numeric

import "github.com/danmuck/commsbind/internal/protocol/message"

type Msg1Handler interface {
	HandleMsg1(m *Msg1)
}

type Msg2Handler interface {
	HandleMsg2(m *Msg2)
}

type Msg3Handler interface {
	HandleMsg3(m *Msg3)
}

// Handler overrides every message of the schema; Handle only sees
// messages from other schemas routed through the same sink.
type Handler interface {
	message.Handler
	Msg1Handler
	Msg2Handler
	Msg3Handler
}
