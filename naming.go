package jsonapi

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// NameTransformer names a property naming convention.
// The zero value selects the default convention (Literal).
type NameTransformer string

const (
	CamelCase NameTransformer = "camelCase"
	SnakeCase NameTransformer = "snake_case"
	Literal   NameTransformer = "literal"
)

// orDefault maps the zero value to Literal.
func (n NameTransformer) orDefault() NameTransformer {
	if n == "" {
		return Literal
	}
	return n
}

// Valid reports whether n is one of the known conventions or the zero value.
func (n NameTransformer) Valid() bool {
	switch n {
	case "", CamelCase, SnakeCase, Literal:
		return true
	}
	return false
}

// ParseNameTransformer converts textual configuration into a NameTransformer.
// An empty string yields Literal.
func ParseNameTransformer(s string) (NameTransformer, error) {
	n := NameTransformer(strings.TrimSpace(s))
	if !n.Valid() {
		iss := NewIssue("/", CodeInvalidEnum, map[string]string{"value": s})
		iss.Hint = "one of camelCase, snake_case, literal"
		return "", Issues{iss}
	}
	return n.orDefault(), nil
}

var (
	_snakeBoundary = regexp.MustCompile(`_([a-z])`)
	_upperLetter   = regexp.MustCompile(`([A-Z])`)
)

// TransformPropertyName converts propertyName from the source naming
// convention to the target one. Unsupported pairs are reported through
// slog.Default and return propertyName unchanged.
func TransformPropertyName(propertyName string, source, target NameTransformer) string {
	return transformPropertyName(slog.Default(), propertyName, source, target)
}

func transformPropertyName(logger *slog.Logger, propertyName string, source, target NameTransformer) string {
	source, target = source.orDefault(), target.orDefault()
	switch {
	case source == SnakeCase && target == CamelCase:
		return _snakeBoundary.ReplaceAllStringFunc(propertyName, func(m string) string {
			return strings.ToUpper(m[1:])
		})
	case source == CamelCase && target == SnakeCase:
		// A leading capital yields a leading underscore ("Name" -> "_name").
		return strings.ToLower(_upperLetter.ReplaceAllString(propertyName, "_$1"))
	case target == Literal || source == target:
		return propertyName
	}
	logger.LogAttrs(context.Background(), slog.LevelWarn, "unsupported property name transformation",
		slog.String("property", propertyName),
		slog.String("from", string(source)),
		slog.String("to", string(target)),
	)
	return propertyName
}
