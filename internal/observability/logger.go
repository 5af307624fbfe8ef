package observability

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// FrameLogger returns the current global logger tagged with a frame name.
// Frames are built at package init, before logging is configured, so
// callers resolve it at log time.
func FrameLogger(frame string) *zerolog.Logger {
	l := log.With().Str("frame", frame).Logger()
	return &l
}
