package message

import (
	"fmt"
	"slices"

	"github.com/danmuck/commsbind/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Factory builds a message populated with schema defaults.
type Factory func() Message

// Registry maps ids to factories. It is immutable after construction and
// safe for concurrent use.
type Registry struct {
	factories map[ID]Factory
	names     map[string]ID
	ids       []ID
}

// NewRegistry indexes factories by the id and name of the message each
// one builds. Duplicate ids or names are rejected.
func NewRegistry(factories ...Factory) (*Registry, error) {
	r := &Registry{
		factories: make(map[ID]Factory, len(factories)),
		names:     make(map[string]ID, len(factories)),
	}
	for _, f := range factories {
		m := f()
		if prev, ok := r.factories[m.ID()]; ok {
			return nil, fmt.Errorf("message: duplicate id %d (%s, %s)", m.ID(), prev().Name(), m.Name())
		}
		if _, ok := r.names[m.Name()]; ok {
			return nil, fmt.Errorf("message: duplicate name %s", m.Name())
		}
		r.factories[m.ID()] = f
		r.names[m.Name()] = m.ID()
		r.ids = append(r.ids, m.ID())
	}
	slices.Sort(r.ids)
	log.Trace().Int("messages", len(r.ids)).Msg("message registry built")
	return r, nil
}

// MustRegistry is NewRegistry for package-level schema tables.
func MustRegistry(factories ...Factory) *Registry {
	r, err := NewRegistry(factories...)
	if err != nil {
		panic(err)
	}
	return r
}

// Create returns a fresh message for id.
func (r *Registry) Create(id ID) (Message, error) {
	f, ok := r.factories[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", protocol.ErrUnsupportedMsgID, id)
	}
	return f(), nil
}

// CreateByName returns a fresh message for a schema-local name.
func (r *Registry) CreateByName(name string) (Message, error) {
	id, ok := r.names[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", protocol.ErrUnsupportedMsgID, name)
	}
	return r.factories[id](), nil
}

func (r *Registry) Has(id ID) bool {
	_, ok := r.factories[id]
	return ok
}

// IDs returns the registered ids in ascending order.
func (r *Registry) IDs() []ID { return slices.Clone(r.ids) }

func (r *Registry) Len() int { return len(r.ids) }
