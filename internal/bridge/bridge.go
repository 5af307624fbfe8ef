package bridge

import (
	"github.com/danmuck/commsbind/internal/protocol/schema"
)

// Bridge resolves qualified names against a catalog of schemas.
type Bridge struct {
	catalog *schema.Catalog
}

func New(schemas ...schema.Schema) (*Bridge, error) {
	c, err := schema.NewCatalog(schemas...)
	if err != nil {
		return nil, err
	}
	return &Bridge{catalog: c}, nil
}

func (b *Bridge) Catalog() *schema.Catalog { return b.catalog }

// NewMessage builds a message with schema defaults, e.g. "text.Msg1".
func (b *Bridge) NewMessage(qualified string) (*Message, error) {
	m, ns, err := b.catalog.NewMessage(qualified)
	if err != nil {
		return nil, err
	}
	return wrap(ns, m), nil
}

// Frame returns the frame registered under a qualified name, e.g.
// "numeric.Frame".
func (b *Bridge) Frame(qualified string) (*Frame, error) {
	f, err := b.catalog.Frame(qualified)
	if err != nil {
		return nil, err
	}
	ns, _, err := schema.Split(qualified)
	if err != nil {
		return nil, err
	}
	return &Frame{namespace: ns, f: f}, nil
}
