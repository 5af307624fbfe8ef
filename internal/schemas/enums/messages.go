package enums

import (
	"github.com/danmuck/commsbind/internal/protocol/field"
	"github.com/danmuck/commsbind/internal/protocol/message"
)

var (
	msg1F1 = &field.EnumDef[E1]{Name: "f1", Codec: field.Codec{Width: 1}, Values: e1Values}
	msg1F2 = &field.EnumDef[MsgId]{Name: "f2", Codec: field.Codec{Width: 1}, Default: MsgIdM1, Values: msgIdValues}
	msg1F3 = &field.IntDef[uint8]{Name: "f3", Codec: field.Codec{Width: 1}}
	msg1F4 = &field.EnumDef[Msg1F4]{Name: "f4", Codec: field.Codec{Width: 2, Endian: field.LittleEndian}, Default: Msg1F4V2, Values: msg1F4Values}

	msg2F1 = &field.IntDef[uint8]{Name: "f1", Codec: field.Codec{Width: 1}}
	msg2F2 = &field.BitmaskDef[uint8]{
		Name:  "f2",
		Codec: field.Codec{Width: 1},
		Bits:  []field.Bit{{Name: "b0", Index: 0}, {Name: "b1", Index: 1}, {Name: "b3", Index: 3}},
	}
	msg2F3 = &field.BitmaskDef[uint16]{
		Name:           "f3",
		Codec:          field.Codec{Width: 2, Endian: field.LittleEndian},
		Bits:           []field.Bit{{Name: "ready", Index: 0}, {Name: "fault", Index: 15}},
		IgnoreReserved: true,
	}

	msg3F1    = &field.IntDef[uint16]{Name: "f1", Codec: field.Codec{Width: 2}, Default: 0x1234}
	msg3F1Opt = &field.OptionalDef{Name: "f1", DefaultMode: field.Exists}
	msg3F3    = &field.StringDef{Name: "f3", Layout: field.Layout{Storage: field.ZeroTerm}}
	msg3F3Opt = &field.OptionalDef{Name: "f3"}

	msg4Temp  = &field.IntDef[int16]{Name: "value", Codec: field.Codec{Width: 2}}
	msg4Label = &field.StringDef{Name: "text", Layout: field.Layout{Storage: field.Prefixed, Prefix: field.Codec{Width: 1}}}
	msg4Raw   = &field.DataDef{Name: "data", Layout: field.Layout{Storage: field.Remaining}}
	msg4F2    = &field.VariantDef{
		Name: "f2",
		Key:  field.Codec{Width: 1},
		Cases: []field.VariantCase{
			{Name: "temp", Key: 1, New: func() field.Field {
				v := field.NewInt(msg4Temp)
				b := field.NewBundle("temp", field.Member{Name: "value", Field: &v})
				return &b
			}},
			{Name: "label", Key: 2, New: func() field.Field {
				s := field.NewString(msg4Label)
				b := field.NewBundle("label", field.Member{Name: "text", Field: &s})
				return &b
			}},
			{Name: "raw", Any: true, New: func() field.Field {
				d := field.NewData(msg4Raw)
				b := field.NewBundle("raw", field.Member{Name: "data", Field: &d})
				return &b
			}},
		},
	}
)

// Msg1 carries enumerations with schema, message id and field scoped types.
type Msg1 struct {
	F1 field.Enum[E1]
	F2 field.Enum[MsgId]
	F3 field.Int[uint8]
	F4 field.Enum[Msg1F4]
}

func NewMsg1() *Msg1 {
	return &Msg1{
		F1: field.NewEnum(msg1F1),
		F2: field.NewEnum(msg1F2),
		F3: field.NewInt(msg1F3),
		F4: field.NewEnum(msg1F4),
	}
}

func (m *Msg1) ID() message.ID { return message.ID(MsgIdM1) }
func (m *Msg1) Name() string   { return "Msg1" }

func (m *Msg1) Fields() []field.Member {
	return []field.Member{
		{Name: "f1", Field: &m.F1},
		{Name: "f2", Field: &m.F2},
		{Name: "f3", Field: &m.F3},
		{Name: "f4", Field: &m.F4},
	}
}

func (m *Msg1) Dispatch(h message.Handler) { message.Route(h, m, Msg1Handler.HandleMsg1) }
func (m *Msg1) Clone() message.Message     { c := *m; return &c }

// Msg2 carries a counter and two bitmasks, the second ignoring reserved bits.
type Msg2 struct {
	F1 field.Int[uint8]
	F2 field.Bitmask[uint8]
	F3 field.Bitmask[uint16]
}

func NewMsg2() *Msg2 {
	return &Msg2{F1: field.NewInt(msg2F1), F2: field.NewBitmask(msg2F2), F3: field.NewBitmask(msg2F3)}
}

func (m *Msg2) ID() message.ID { return message.ID(MsgIdM2) }
func (m *Msg2) Name() string   { return "Msg2" }

func (m *Msg2) Fields() []field.Member {
	return []field.Member{{Name: "f1", Field: &m.F1}, {Name: "f2", Field: &m.F2}, {Name: "f3", Field: &m.F3}}
}

func (m *Msg2) Dispatch(h message.Handler) { message.Route(h, m, Msg2Handler.HandleMsg2) }
func (m *Msg2) Clone() message.Message     { c := *m; return &c }

// Msg3 carries an optional value that exists by default, a variable width
// length and a trailing optional label.
type Msg3 struct {
	F1 field.Optional[field.Int[uint16], *field.Int[uint16]]
	F2 Length
	F3 field.Optional[field.String, *field.String]
}

func NewMsg3() *Msg3 {
	return &Msg3{
		F1: field.NewOptional[field.Int[uint16], *field.Int[uint16]](msg3F1Opt, field.NewInt(msg3F1)),
		F2: NewLength(),
		F3: field.NewOptional[field.String, *field.String](msg3F3Opt, field.NewString(msg3F3)),
	}
}

func (m *Msg3) ID() message.ID { return message.ID(MsgIdM3) }
func (m *Msg3) Name() string   { return "Msg3" }

func (m *Msg3) Fields() []field.Member {
	return []field.Member{{Name: "f1", Field: &m.F1}, {Name: "f2", Field: &m.F2}, {Name: "f3", Field: &m.F3}}
}

func (m *Msg3) Dispatch(h message.Handler) { message.Route(h, m, Msg3Handler.HandleMsg3) }
func (m *Msg3) Clone() message.Message     { c := *m; return &c }

// Msg4 carries a packed status and a reading whose layout is selected by a
// leading key. Unknown keys decode as raw octets.
type Msg4 struct {
	F1 Status
	F2 field.Variant
}

func NewMsg4() *Msg4 {
	return &Msg4{F1: NewStatus(), F2: field.NewVariant(msg4F2)}
}

func (m *Msg4) ID() message.ID { return message.ID(MsgIdM4) }
func (m *Msg4) Name() string   { return "Msg4" }

func (m *Msg4) Fields() []field.Member {
	return []field.Member{{Name: "f1", Field: &m.F1}, {Name: "f2", Field: &m.F2}}
}

// Reading returns the named member of the selected reading case.
func (m *Msg4) Reading(name string) (field.Field, bool) {
	b, ok := m.F2.Body().(*field.Bundle)
	if !ok {
		return nil, false
	}
	return b.Member(name)
}

func (m *Msg4) Dispatch(h message.Handler) { message.Route(h, m, Msg4Handler.HandleMsg4) }

func (m *Msg4) Clone() message.Message {
	c := *m
	c.F2 = field.Copy(&m.F2)
	return &c
}
