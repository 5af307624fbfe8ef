// Package text is the schema of string and opaque data messages.
package text

import (
	"github.com/danmuck/commsbind/internal/protocol/field"
	"github.com/danmuck/commsbind/internal/protocol/message"
)

const Namespace = "text"

const (
	MsgIdMsg1 message.ID = 1
	MsgIdMsg2 message.ID = 2
	MsgIdMsg3 message.ID = 3
)

var u8Prefix = field.Codec{Width: 1}

var (
	msg1F1 = &field.StringDef{Name: "f1", Layout: field.Layout{Storage: field.Fixed, Size: 5}}
	msg1F2 = &field.StringDef{Name: "f2", Layout: field.Layout{Storage: field.ZeroTerm}}
	msg1F3 = &field.StringDef{Name: "f3", Layout: field.Layout{Storage: field.Prefixed, Prefix: u8Prefix}}

	msg2F1 = &field.DataDef{Name: "f1", Layout: field.Layout{Storage: field.Fixed, Size: 5}}
	msg2F2 = &field.DataDef{Name: "f2", Layout: field.Layout{Storage: field.Prefixed, Prefix: u8Prefix}}
	msg2F3 = &field.DataDef{Name: "f3", Layout: field.Layout{Storage: field.Remaining}}

	msg3F1     = &field.StringDef{Name: "f1", Layout: field.Layout{Storage: field.Prefixed, Prefix: field.Codec{Width: 2, Endian: field.LittleEndian}}, Default: "untitled", MaxLength: 64}
	msg3F2     = &field.ListDef{Name: "f2"}
	msg3F2Elem = &field.StringDef{Name: "element", Layout: field.Layout{Storage: field.Prefixed, Prefix: u8Prefix}, MaxLength: 32}
)

// Msg1 carries one string in each storage mode.
type Msg1 struct {
	F1 field.String
	F2 field.String
	F3 field.String
}

func NewMsg1() *Msg1 {
	return &Msg1{F1: field.NewString(msg1F1), F2: field.NewString(msg1F2), F3: field.NewString(msg1F3)}
}

func (m *Msg1) ID() message.ID { return MsgIdMsg1 }
func (m *Msg1) Name() string   { return "Msg1" }

func (m *Msg1) Fields() []field.Member {
	return []field.Member{{Name: "f1", Field: &m.F1}, {Name: "f2", Field: &m.F2}, {Name: "f3", Field: &m.F3}}
}

func (m *Msg1) Dispatch(h message.Handler) { message.Route(h, m, Msg1Handler.HandleMsg1) }
func (m *Msg1) Clone() message.Message     { c := *m; return &c }

// Msg2 carries fixed, prefixed and trailing opaque data.
type Msg2 struct {
	F1 field.Data
	F2 field.Data
	F3 field.Data
}

func NewMsg2() *Msg2 {
	return &Msg2{F1: field.NewData(msg2F1), F2: field.NewData(msg2F2), F3: field.NewData(msg2F3)}
}

func (m *Msg2) ID() message.ID { return MsgIdMsg2 }
func (m *Msg2) Name() string   { return "Msg2" }

func (m *Msg2) Fields() []field.Member {
	return []field.Member{{Name: "f1", Field: &m.F1}, {Name: "f2", Field: &m.F2}, {Name: "f3", Field: &m.F3}}
}

func (m *Msg2) Dispatch(h message.Handler) { message.Route(h, m, Msg2Handler.HandleMsg2) }

func (m *Msg2) Clone() message.Message {
	return &Msg2{
		F1: field.Copy[field.Data](&m.F1),
		F2: field.Copy[field.Data](&m.F2),
		F3: field.Copy[field.Data](&m.F3),
	}
}

// Msg3 carries a title and the tags that fill the rest of the payload.
type Msg3 struct {
	F1 field.String
	F2 field.List[field.String, *field.String]
}

func newMsg3F2Elem() field.String { return field.NewString(msg3F2Elem) }

func NewMsg3() *Msg3 {
	return &Msg3{
		F1: field.NewString(msg3F1),
		F2: field.NewList[field.String, *field.String](msg3F2, newMsg3F2Elem),
	}
}

func (m *Msg3) ID() message.ID { return MsgIdMsg3 }
func (m *Msg3) Name() string   { return "Msg3" }

func (m *Msg3) Fields() []field.Member {
	return []field.Member{{Name: "f1", Field: &m.F1}, {Name: "f2", Field: &m.F2}}
}

func (m *Msg3) Dispatch(h message.Handler) { message.Route(h, m, Msg3Handler.HandleMsg3) }

func (m *Msg3) Clone() message.Message {
	c := *m
	c.F2 = field.Copy[field.List[field.String, *field.String]](&m.F2)
	return &c
}

// AddTag appends a tag to F2.
func (m *Msg3) AddTag(tag string) {
	e := newMsg3F2Elem()
	e.SetValue(tag)
	m.F2.Append(e)
}
