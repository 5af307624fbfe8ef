// Package schemas lists the generated protocol schemas shipped with the
// module.
package schemas

import (
	"github.com/danmuck/commsbind/internal/protocol/schema"
	"github.com/danmuck/commsbind/internal/schemas/enums"
	"github.com/danmuck/commsbind/internal/schemas/numeric"
	"github.com/danmuck/commsbind/internal/schemas/text"
)

func All() []schema.Schema {
	return []schema.Schema{enums.Schema(), numeric.Schema(), text.Schema()}
}
