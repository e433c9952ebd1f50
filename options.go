package jsonapi

import "log/slog"

// Options configures a Schema.
type Options struct {
	// ServerTransform is the naming convention used on the wire.
	ServerTransform NameTransformer
	// ClientTransform is the naming convention of the in-memory document.
	ClientTransform NameTransformer
	// Type is the JSON:API resource type. Derived from T when empty.
	Type string
}

// Option mutates schema configuration during New.
type Option func(*config)

type config struct {
	options Options
	logger  *slog.Logger
}

// WithOptions replaces the whole options record.
func WithOptions(o Options) Option {
	return func(c *config) { c.options = o }
}

// WithServerTransform sets the wire naming convention.
func WithServerTransform(n NameTransformer) Option {
	return func(c *config) { c.options.ServerTransform = n }
}

// WithClientTransform sets the in-memory naming convention.
func WithClientTransform(n NameTransformer) Option {
	return func(c *config) { c.options.ClientTransform = n }
}

// WithType sets the JSON:API resource type.
func WithType(typ string) Option {
	return func(c *config) { c.options.Type = typ }
}

// WithLogger sets the logger used for diagnostics. nil restores slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}
