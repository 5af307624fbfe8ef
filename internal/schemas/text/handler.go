package text

type Msg1Handler interface {
	HandleMsg1(m *Msg1)
}

type Msg2Handler interface {
	HandleMsg2(m *Msg2)
}

type Msg3Handler interface {
	HandleMsg3(m *Msg3)
}
