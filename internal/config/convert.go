package config

import "github.com/danmuck/commsbind/internal/protocol/frame"

// Limits maps the tool settings onto frame limits. Zero keeps the default.
func (c ToolConfig) Limits() frame.Limits {
	l := frame.DefaultLimits()
	if c.MaxFrameBytes > 0 {
		l.MaxFrameBytes = c.MaxFrameBytes
	}
	return l
}
