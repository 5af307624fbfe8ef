package text

import (
	"github.com/danmuck/commsbind/internal/protocol/checksum"
	"github.com/danmuck/commsbind/internal/protocol/field"
	"github.com/danmuck/commsbind/internal/protocol/frame"
	"github.com/danmuck/commsbind/internal/protocol/message"
	"github.com/danmuck/commsbind/internal/protocol/schema"
)

var Registry = message.MustRegistry(
	func() message.Message { return NewMsg1() },
	func() message.Message { return NewMsg2() },
	func() message.Message { return NewMsg3() },
)

// Frame is SIZE(u16) | ID(u8) | PAYLOAD.
var Frame = frame.Must(schema.Qualify(Namespace, "Frame"), Registry,
	frame.Size{Field: field.Codec{Width: 2}},
	frame.ID{Field: field.Codec{Width: 1}},
	frame.Payload{},
)

// SafeFrame is SIZE(u16 le) | CRC-16(u16) | ID(u8) | PAYLOAD, with the
// checksum ahead of the id and payload it covers.
var SafeFrame = frame.Must(schema.Qualify(Namespace, "SafeFrame"), Registry,
	frame.Size{Field: field.Codec{Width: 2, Endian: field.LittleEndian}},
	frame.ChecksumPrefix{Field: field.Codec{Width: 2}, Alg: checksum.CRC16},
	frame.ID{Field: field.Codec{Width: 1}},
	frame.Payload{},
)

func Schema() schema.Schema {
	return schema.Schema{Namespace: Namespace, Registry: Registry, Frames: []*frame.Frame{Frame, SafeFrame}}
}
