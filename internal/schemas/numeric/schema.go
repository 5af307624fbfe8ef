package numeric

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

// Frame is SYNC(ab cd) | SIZE(u16) | ID(u8) | PAYLOAD | CRC-CCITT(u16),
// with the checksum covering everything from the sync literal on.
var Frame = frame.Must(schema.Qualify(Namespace, "Frame"), Registry,
	frame.Sync{Name: "sync", Literal: []byte{0xab, 0xcd}},
	frame.Checksum{Name: "checksum", Field: field.Codec{Width: 2}, Alg: checksum.CRCCCITT, From: "sync"},
	frame.Size{Name: "size", Field: field.Codec{Width: 2}},
	frame.ID{Name: "id", Field: field.Codec{Width: 1}},
	frame.Payload{Name: "data"},
)

func Schema() schema.Schema {
	return schema.Schema{Namespace: Namespace, Registry: Registry, Frames: []*frame.Frame{Frame}}
}
