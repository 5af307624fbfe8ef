// Package enums is the schema of enumeration, bitmask and optional field
// messages.
package enums

import "github.com/danmuck/commsbind/internal/protocol/field"

const Namespace = "enums"

// E1 is a plain enumeration.
type E1 uint8

const (
	E1V1 E1 = 0
	E1V2 E1 = 1
	E1V3 E1 = 5
)

var e1Values = []field.EnumValue[E1]{{Name: "V1", Value: E1V1}, {Name: "V2", Value: E1V2}, {Name: "V3", Value: E1V3}}

// MsgId enumerates the message identifiers of the schema. M5 is reserved
// for a message not defined here.
type MsgId uint8

const (
	MsgIdM1 MsgId = 1
	MsgIdM2 MsgId = 2
	MsgIdM3 MsgId = 3
	MsgIdM4 MsgId = 4
	MsgIdM5 MsgId = 5
)

var msgIdValues = []field.EnumValue[MsgId]{
	{Name: "m1", Value: MsgIdM1},
	{Name: "m2", Value: MsgIdM2},
	{Name: "m3", Value: MsgIdM3},
	{Name: "m4", Value: MsgIdM4},
	{Name: "m5", Value: MsgIdM5},
}

// Msg1F4 is the enumeration local to Msg1.f4.
type Msg1F4 int16

const (
	Msg1F4V1 Msg1F4 = -1
	Msg1F4V2 Msg1F4 = 0
	Msg1F4V3 Msg1F4 = 300
)

var msg1F4Values = []field.EnumValue[Msg1F4]{{Name: "V1", Value: Msg1F4V1}, {Name: "V2", Value: Msg1F4V2}, {Name: "V3", Value: Msg1F4V3}}

// Mode is the three bit operating mode packed into Status.
type Mode uint8

const (
	ModeIdle  Mode = 0
	ModeRun   Mode = 1
	ModeFault Mode = 7
)

var modeValues = []field.EnumValue[Mode]{{Name: "Idle", Value: ModeIdle}, {Name: "Run", Value: ModeRun}, {Name: "Fault", Value: ModeFault}}
