// Package numeric is the schema of integer, scaled and floating point
// messages.
package numeric

import (
	"github.com/danmuck/commsbind/internal/protocol/field"
	"github.com/danmuck/commsbind/internal/protocol/message"
	"github.com/danmuck/commsbind/internal/protocol/units"
)

const Namespace = "numeric"

const (
	MsgIdMsg1 message.ID = 1
	MsgIdMsg2 message.ID = 2
	MsgIdMsg3 message.ID = 3
)

var (
	msg1F1 = &field.IntDef[uint32]{Name: "f1", Codec: field.Codec{Width: 3, Endian: field.LittleEndian}}
	msg1F2 = &field.IntDef[uint16]{Name: "f2", Codec: field.Codec{Width: 2}}

	msg2F1 = &field.IntDef[uint32]{
		Name:    "f1",
		Codec:   field.Codec{Width: 4},
		Scaling: field.Ratio{Num: 1, Den: 100},
		Units:   units.Millimeters,
	}
	msg2F2 = &field.IntDef[int16]{
		Name:     "f2",
		Codec:    field.Codec{Width: 2, Endian: field.LittleEndian},
		Ranges:   []field.Range[int16]{{Min: -1000, Max: 1000}},
		Specials: []field.Special[int16]{{Name: "Unknown", Value: -32768}},
		Scaling:  field.Ratio{Num: 1, Den: 10},
		Units:    units.MetersPerSecond,
	}

	msg3F1     = &field.FloatDef[float32]{Name: "f1", Endian: field.LittleEndian, Units: units.Volts}
	msg3F2     = &field.ListDef{Name: "f2", CountPrefix: &field.Codec{Width: 1}, MaxCount: 8}
	msg3F2Elem = &field.IntDef[uint16]{Name: "element", Codec: field.Codec{Width: 2}}
	msg3F3     = &field.IntDef[uint8]{
		Name:     "f3",
		Codec:    field.Codec{Width: 1},
		Default:  0xff,
		Ranges:   []field.Range[uint8]{{Min: 0, Max: 100}},
		Specials: []field.Special[uint8]{{Name: "Unavailable", Value: 0xff}},
	}
)

// Msg1 carries a 24 bit little endian and a 16 bit big endian integer.
type Msg1 struct {
	F1 field.Int[uint32]
	F2 field.Int[uint16]
}

func NewMsg1() *Msg1 {
	return &Msg1{F1: field.NewInt(msg1F1), F2: field.NewInt(msg1F2)}
}

func (m *Msg1) ID() message.ID { return MsgIdMsg1 }
func (m *Msg1) Name() string   { return "Msg1" }

func (m *Msg1) Fields() []field.Member {
	return []field.Member{{Name: "f1", Field: &m.F1}, {Name: "f2", Field: &m.F2}}
}

func (m *Msg1) Dispatch(h message.Handler) { message.Route(h, m, Msg1Handler.HandleMsg1) }
func (m *Msg1) Clone() message.Message     { c := *m; return &c }

// Msg2 carries a distance in hundredths of a millimeter and a signed speed
// in tenths of a meter per second.
type Msg2 struct {
	F1 field.Int[uint32]
	F2 field.Int[int16]
}

func NewMsg2() *Msg2 {
	return &Msg2{F1: field.NewInt(msg2F1), F2: field.NewInt(msg2F2)}
}

func (m *Msg2) ID() message.ID { return MsgIdMsg2 }
func (m *Msg2) Name() string   { return "Msg2" }

func (m *Msg2) Fields() []field.Member {
	return []field.Member{{Name: "f1", Field: &m.F1}, {Name: "f2", Field: &m.F2}}
}

func (m *Msg2) Dispatch(h message.Handler) { message.Route(h, m, Msg2Handler.HandleMsg2) }
func (m *Msg2) Clone() message.Message     { c := *m; return &c }

// Msg3 carries a voltage, a counted list of samples and a percentage that
// may be reported as unavailable.
type Msg3 struct {
	F1 field.Float[float32]
	F2 field.List[field.Int[uint16], *field.Int[uint16]]
	F3 field.Int[uint8]
}

func newMsg3F2Elem() field.Int[uint16] { return field.NewInt(msg3F2Elem) }

func NewMsg3() *Msg3 {
	return &Msg3{
		F1: field.NewFloat(msg3F1),
		F2: field.NewList[field.Int[uint16], *field.Int[uint16]](msg3F2, newMsg3F2Elem),
		F3: field.NewInt(msg3F3),
	}
}

func (m *Msg3) ID() message.ID { return MsgIdMsg3 }
func (m *Msg3) Name() string   { return "Msg3" }

func (m *Msg3) Fields() []field.Member {
	return []field.Member{{Name: "f1", Field: &m.F1}, {Name: "f2", Field: &m.F2}, {Name: "f3", Field: &m.F3}}
}

func (m *Msg3) Dispatch(h message.Handler) { message.Route(h, m, Msg3Handler.HandleMsg3) }

func (m *Msg3) Clone() message.Message {
	c := *m
	c.F2 = field.Copy[field.List[field.Int[uint16], *field.Int[uint16]]](&m.F2)
	return &c
}
