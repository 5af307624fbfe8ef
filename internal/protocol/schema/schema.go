// Package schema describes generated protocol namespaces and indexes them
// by qualified name so identical leaf names in different schemas never
// collide.
package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/danmuck/commsbind/internal/protocol/frame"
	"github.com/danmuck/commsbind/internal/protocol/message"
	"github.com/rs/zerolog/log"
)

var ErrUnknownName = errors.New("schema: unknown name")

// Schema is the generated description of one namespace.
type Schema struct {
	Namespace string
	Registry  *message.Registry
	Frames    []*frame.Frame
}

type ValidationError struct {
	Namespace string
	Name      string
	Reason    string
}

func (e ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("schema: namespace=%s: %s", e.Namespace, e.Reason)
	}
	return fmt.Sprintf("schema: namespace=%s name=%s: %s", e.Namespace, e.Name, e.Reason)
}

// Qualify joins a namespace and a schema-local name.
func Qualify(namespace, name string) string {
	return namespace + "." + name
}

// Split separates a qualified name at its last dot.
func Split(qualified string) (namespace, name string, err error) {
	i := strings.LastIndexByte(qualified, '.')
	if i <= 0 || i == len(qualified)-1 {
		return "", "", fmt.Errorf("%w: %q is not qualified", ErrUnknownName, qualified)
	}
	return qualified[:i], qualified[i+1:], nil
}

// Validate checks that every message builds with valid, uniquely named
// fields and that every frame decodes this schema's messages under its
// namespace.
func Validate(s Schema) error {
	log.Debug().Str("namespace", s.Namespace).Msg("schema.Validate")
	if s.Namespace == "" {
		return ValidationError{Reason: "empty namespace"}
	}
	if s.Registry == nil || s.Registry.Len() == 0 {
		return ValidationError{Namespace: s.Namespace, Reason: "no messages"}
	}
	for _, id := range s.Registry.IDs() {
		m, err := s.Registry.Create(id)
		if err != nil {
			return ValidationError{Namespace: s.Namespace, Reason: err.Error()}
		}
		if err := validateMessage(m); err != "" {
			log.Error().Str("namespace", s.Namespace).Str("message", m.Name()).Msg(err)
			return ValidationError{Namespace: s.Namespace, Name: m.Name(), Reason: err}
		}
	}
	for _, f := range s.Frames {
		ns, _, err := Split(f.Name())
		if err != nil || ns != s.Namespace {
			return ValidationError{Namespace: s.Namespace, Name: f.Name(), Reason: "frame not in namespace"}
		}
		if f.Registry() != s.Registry {
			return ValidationError{Namespace: s.Namespace, Name: f.Name(), Reason: "frame decodes a foreign registry"}
		}
	}
	log.Debug().Str("namespace", s.Namespace).Int("messages", s.Registry.Len()).Int("frames", len(s.Frames)).Msg("schema.Validate ok")
	return nil
}

func validateMessage(m message.Message) string {
	if m.Name() == "" || strings.Contains(m.Name(), ".") {
		return "message name must be non-empty and undotted"
	}
	seen := make(map[string]bool)
	for _, mem := range m.Fields() {
		if mem.Name == "" || seen[mem.Name] {
			return fmt.Sprintf("field name %q empty or repeated", mem.Name)
		}
		seen[mem.Name] = true
	}
	if !message.Valid(m) {
		return "defaults are not valid"
	}
	if !message.Equal(m, m.Clone()) {
		return "clone does not compare equal"
	}
	return ""
}

type messageEntry struct {
	schema *Schema
	name   string
}

// Catalog indexes schemas by namespace, and their messages and frames by
// qualified name. It is immutable after construction.
type Catalog struct {
	schemas  map[string]*Schema
	messages map[string]messageEntry
	frames   map[string]*frame.Frame
}

func NewCatalog(schemas ...Schema) (*Catalog, error) {
	c := &Catalog{
		schemas:  make(map[string]*Schema),
		messages: make(map[string]messageEntry),
		frames:   make(map[string]*frame.Frame),
	}
	for i := range schemas {
		s := &schemas[i]
		if err := Validate(*s); err != nil {
			return nil, err
		}
		if _, dup := c.schemas[s.Namespace]; dup {
			return nil, ValidationError{Namespace: s.Namespace, Reason: "duplicate namespace"}
		}
		c.schemas[s.Namespace] = s
		for _, id := range s.Registry.IDs() {
			m, _ := s.Registry.Create(id)
			c.messages[Qualify(s.Namespace, m.Name())] = messageEntry{schema: s, name: m.Name()}
		}
		for _, f := range s.Frames {
			c.frames[f.Name()] = f
		}
	}
	return c, nil
}

// NewMessage builds a message with schema defaults, e.g. "numeric.Msg1".
func (c *Catalog) NewMessage(qualified string) (message.Message, string, error) {
	e, ok := c.messages[qualified]
	if !ok {
		return nil, "", fmt.Errorf("%w: message %q", ErrUnknownName, qualified)
	}
	m, err := e.schema.Registry.CreateByName(e.name)
	if err != nil {
		return nil, "", err
	}
	return m, e.schema.Namespace, nil
}

func (c *Catalog) Frame(qualified string) (*frame.Frame, error) {
	f, ok := c.frames[qualified]
	if !ok {
		return nil, fmt.Errorf("%w: frame %q", ErrUnknownName, qualified)
	}
	return f, nil
}

// Schema returns the schema registered under namespace.
func (c *Catalog) Schema(namespace string) (Schema, bool) {
	s, ok := c.schemas[namespace]
	if !ok {
		return Schema{}, false
	}
	return *s, true
}

// Namespaces returns the registered namespaces, sorted.
func (c *Catalog) Namespaces() []string { return sortedKeys(c.schemas) }

// MessageNames returns every qualified message name, sorted.
func (c *Catalog) MessageNames() []string { return sortedKeys(c.messages) }

// FrameNames returns every qualified frame name, sorted.
func (c *Catalog) FrameNames() []string { return sortedKeys(c.frames) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
