package enums

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
	func() message.Message { return NewMsg4() },
)

// Frame is SYNC("E") | SIZE(u16 le) | ID(u8) | PAYLOAD | SUM(u8), with the
// checksum covering the size, id and payload.
var Frame = frame.Must(schema.Qualify(Namespace, "Frame"), Registry,
	frame.Sync{Literal: []byte("E")},
	frame.Checksum{Field: field.Codec{Width: 1}, Alg: checksum.Sum},
	frame.Size{Field: field.Codec{Width: 2, Endian: field.LittleEndian}},
	frame.ID{Field: field.Codec{Width: 1}},
	frame.Payload{},
)

func Schema() schema.Schema {
	return schema.Schema{Namespace: Namespace, Registry: Registry, Frames: []*frame.Frame{Frame}}
}
