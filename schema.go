package jsonapi

import (
	"log/slog"
	"maps"
	"slices"

	"github.com/go-openapi/inflect"
)

// TypeHint restricts how an attribute value is represented on the wire.
type TypeHint uint8

const (
	// TypeNone leaves the value as is.
	TypeNone TypeHint = iota
	// TypeDate maps time.Time values to RFC3339 strings on the wire.
	TypeDate
)

// String implements fmt.Stringer.
func (h TypeHint) String() string {
	switch h {
	case TypeNone:
		return ""
	case TypeDate:
		return "date"
	}
	return "unknown"
}

// AttributeDefinition describes a plain-value property.
type AttributeDefinition struct {
	Type TypeHint

	// Default is the default value for this property: either a value or a
	// func() any producer evaluated on each use.
	Default any

	// Get defines a custom getter for this property.
	Get func(value any) any

	// Set defines a custom setter for this property.
	Set func(value any) any

	// Transform is applied only when serializing (ToObject).
	Transform func(value any) any
}

// DefaultValue resolves Default, invoking it when it is a producer.
func (d AttributeDefinition) DefaultValue() (any, bool) { return resolveDefault(d.Default) }

// RelationshipDefinition describes a reference-typed property. It has the
// same shape as AttributeDefinition without the type hint.
type RelationshipDefinition struct {
	Default   any
	Get       func(value any) any
	Set       func(value any) any
	Transform func(value any) any
}

// DefaultValue resolves Default, invoking it when it is a producer.
func (d RelationshipDefinition) DefaultValue() (any, bool) { return resolveDefault(d.Default) }

func resolveDefault(v any) (any, bool) {
	switch f := v.(type) {
	case nil:
		return nil, false
	case func() any:
		return f(), true
	default:
		return v, true
	}
}

// Definition holds attribute and relationship definitions for T, keyed by
// property name in the client naming convention.
type Definition[T any] struct {
	Attributes    map[string]AttributeDefinition
	Relationships map[string]RelationshipDefinition
}

// WithAttribute returns a copy of d with an attribute definition recorded for
// the field identified by key. d itself is left unchanged.
func (d Definition[T]) WithAttribute(key Key[T], def AttributeDefinition) Definition[T] {
	attrs := make(map[string]AttributeDefinition, len(d.Attributes)+1)
	maps.Copy(attrs, d.Attributes)
	attrs[key.Name()] = def
	d.Attributes = attrs
	return d
}

// WithRelationship returns a copy of d with a relationship definition recorded
// for the field identified by key. d itself is left unchanged.
func (d Definition[T]) WithRelationship(key Key[T], def RelationshipDefinition) Definition[T] {
	rels := make(map[string]RelationshipDefinition, len(d.Relationships)+1)
	maps.Copy(rels, d.Relationships)
	rels[key.Name()] = def
	d.Relationships = rels
	return d
}

// Schema holds the declarative shape of the document type T.
//
// A Schema is mutable through Add until Freeze is called. Add mutates the
// attribute and relationship maps one after the other; callers sharing an
// unfrozen Schema across goroutines must serialize access themselves.
type Schema[T any] struct {
	attributes    map[string]AttributeDefinition
	relationships map[string]RelationshipDefinition
	options       Options
	logger        *slog.Logger
	frozen        bool
}

// New constructs a Schema from def. No validation is performed here; use
// Validate or Freeze once all definitions are added.
func New[T any](def Definition[T], opts ...Option) *Schema[T] {
	cfg := config{}
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	s := &Schema[T]{
		attributes:    map[string]AttributeDefinition{},
		relationships: map[string]RelationshipDefinition{},
		options:       cfg.options,
		logger:        cfg.logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s.Add(def)
}

// Add merges def into the schema. Each entry replaces any prior entry with
// the same name (last write wins). It returns the receiver for chaining and
// panics when the schema is frozen.
func (s *Schema[T]) Add(def Definition[T]) *Schema[T] {
	if s.frozen {
		panic("jsonapi.Schema.Add: schema is frozen")
	}
	maps.Copy(s.attributes, def.Attributes)
	maps.Copy(s.relationships, def.Relationships)
	return s
}

// Attribute returns the definition of the named attribute.
func (s *Schema[T]) Attribute(name string) (AttributeDefinition, bool) {
	d, ok := s.attributes[name]
	return d, ok
}

// Relationship returns the definition of the named relationship.
func (s *Schema[T]) Relationship(name string) (RelationshipDefinition, bool) {
	d, ok := s.relationships[name]
	return d, ok
}

// Attributes returns a copy of the attribute definitions.
func (s *Schema[T]) Attributes() map[string]AttributeDefinition { return maps.Clone(s.attributes) }

// Relationships returns a copy of the relationship definitions.
func (s *Schema[T]) Relationships() map[string]RelationshipDefinition {
	return maps.Clone(s.relationships)
}

// AttributeNames returns the attribute names in sorted order.
func (s *Schema[T]) AttributeNames() []string { return slices.Sorted(maps.Keys(s.attributes)) }

// RelationshipNames returns the relationship names in sorted order.
func (s *Schema[T]) RelationshipNames() []string { return slices.Sorted(maps.Keys(s.relationships)) }

// Options returns the schema options with naming conventions defaulted.
func (s *Schema[T]) Options() Options {
	o := s.options
	o.ServerTransform = o.ServerTransform.orDefault()
	o.ClientTransform = o.ClientTransform.orDefault()
	o.Type = s.ResourceType()
	return o
}

// ResourceType returns the JSON:API resource type: the configured Type, or
// the pluralized snake_case name of T ("ArticleComment" -> "article_comments").
func (s *Schema[T]) ResourceType() string {
	if s.options.Type != "" {
		return s.options.Type
	}
	rt := structOf[T]()
	if rt == nil || rt.Name() == "" {
		return ""
	}
	return inflect.Pluralize(inflect.Underscore(rt.Name()))
}

// TransformPropertyName converts propertyName between naming conventions and
// logs unsupported pairs through the schema logger.
func (s *Schema[T]) TransformPropertyName(propertyName string, source, target NameTransformer) string {
	return transformPropertyName(s.logger, propertyName, source, target)
}

// ToServerName converts an in-memory property name to the wire convention.
func (s *Schema[T]) ToServerName(name string) string {
	return s.TransformPropertyName(name, s.options.ClientTransform, s.options.ServerTransform)
}

// ToClientName converts a wire property name to the in-memory convention.
func (s *Schema[T]) ToClientName(name string) string {
	return s.TransformPropertyName(name, s.options.ServerTransform, s.options.ClientTransform)
}

// Validate reports properties declared both as attribute and relationship,
// names that match no field of T (when T is a struct), and unsupported
// option or type hint values.
func (s *Schema[T]) Validate() error {
	var iss Issues
	if !s.options.ServerTransform.Valid() {
		iss = AppendIssues(iss, NewIssue(JoinPointer("options", "serverTransform"), CodeInvalidEnum,
			map[string]string{"value": string(s.options.ServerTransform)}))
	}
	if !s.options.ClientTransform.Valid() {
		iss = AppendIssues(iss, NewIssue(JoinPointer("options", "clientTransform"), CodeInvalidEnum,
			map[string]string{"value": string(s.options.ClientTransform)}))
	}

	var fields map[string]struct{}
	if keys := Keys[T](); keys != nil {
		fields = make(map[string]struct{}, len(keys))
		for _, k := range keys {
			fields[k] = struct{}{}
		}
	}
	for _, name := range s.AttributeNames() {
		path := JoinPointer("attributes", name)
		if _, dup := s.relationships[name]; dup {
			iss = AppendIssues(iss, NewIssue(path, CodeConflict, map[string]string{"key": name}))
		}
		if fields != nil {
			if _, ok := fields[name]; !ok {
				iss = AppendIssues(iss, NewIssue(path, CodeUnknownKey, map[string]string{"key": name}))
			}
		}
		if h := s.attributes[name].Type; h != TypeNone && h != TypeDate {
			iss = AppendIssues(iss, NewIssue(JoinPointer("attributes", name, "type"), CodeInvalidEnum, map[string]string{"value": h.String()}))
		}
	}
	if fields != nil {
		for _, name := range s.RelationshipNames() {
			if _, ok := fields[name]; !ok {
				iss = AppendIssues(iss, NewIssue(JoinPointer("relationships", name), CodeUnknownKey,
					map[string]string{"key": name}))
			}
		}
	}
	if len(iss) > 0 {
		return iss
	}
	return nil
}

// Freeze validates the schema and makes it immutable. A frozen schema may be
// shared by concurrent readers.
func (s *Schema[T]) Freeze() error {
	if s.frozen {
		return nil
	}
	if err := s.Validate(); err != nil {
		return err
	}
	s.frozen = true
	return nil
}

// Frozen reports whether Freeze has succeeded on this schema.
func (s *Schema[T]) Frozen() bool { return s.frozen }
