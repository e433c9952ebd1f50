package schemafile

import (
	json "github.com/goccy/go-json"

	"github.com/stantanasi/jsonapi"
)

// Build constructs a schema for T from f. Extra options are applied after the
// ones derived from the file. The returned schema is not validated; call
// Validate or Freeze once code-side hooks are added.
func Build[T any](f *File, opts ...jsonapi.Option) (*jsonapi.Schema[T], error) {
	var iss jsonapi.Issues
	server, err := jsonapi.ParseNameTransformer(f.Options.ServerTransform)
	if err != nil {
		iss = jsonapi.AppendIssues(iss, rebase(err, jsonapi.JoinPointer("options", "serverTransform"))...)
	}
	client, err := jsonapi.ParseNameTransformer(f.Options.ClientTransform)
	if err != nil {
		iss = jsonapi.AppendIssues(iss, rebase(err, jsonapi.JoinPointer("options", "clientTransform"))...)
	}

	def := jsonapi.Definition[T]{
		Attributes:    make(map[string]jsonapi.AttributeDefinition, len(f.Attributes)),
		Relationships: make(map[string]jsonapi.RelationshipDefinition, len(f.Relationships)),
	}
	for name, a := range f.Attributes {
		hint, ok := parseHint(a.Type)
		if !ok {
			iss = jsonapi.AppendIssues(iss, jsonapi.NewIssue(jsonapi.JoinPointer("attributes", name, "type"),
				jsonapi.CodeInvalidEnum, map[string]string{"value": a.Type}))
			continue
		}
		d := jsonapi.AttributeDefinition{Type: hint}
		if a.HasDefault {
			d.Default = a.Default
		}
		def.Attributes[name] = d
	}
	for name, r := range f.Relationships {
		d := jsonapi.RelationshipDefinition{}
		if r.HasDefault {
			d.Default = r.Default
		}
		def.Relationships[name] = d
	}
	if len(iss) > 0 {
		return nil, iss
	}

	all := []jsonapi.Option{
		jsonapi.WithServerTransform(server),
		jsonapi.WithClientTransform(client),
		jsonapi.WithType(f.Type),
	}
	return jsonapi.New(def, append(all, opts...)...), nil
}

func parseHint(s string) (jsonapi.TypeHint, bool) {
	switch s {
	case "":
		return jsonapi.TypeNone, true
	case "date":
		return jsonapi.TypeDate, true
	}
	return jsonapi.TypeNone, false
}

func rebase(err error, path string) jsonapi.Issues {
	iss, ok := jsonapi.AsIssues(err)
	if !ok {
		return jsonapi.Issues{{Path: path, Code: jsonapi.CodeParseError, Message: err.Error(), Cause: err}}
	}
	out := make(jsonapi.Issues, len(iss))
	for i, it := range iss {
		it.Path = path
		out[i] = it
	}
	return out
}

// Export describes s as a File. Default producers and code-side hooks have no
// declarative form and are omitted.
func Export[T any](s *jsonapi.Schema[T]) *File {
	o := s.Options()
	f := &File{
		Type: o.Type,
		Options: Options{
			ServerTransform: string(o.ServerTransform),
			ClientTransform: string(o.ClientTransform),
		},
		Attributes:    map[string]Attribute{},
		Relationships: map[string]Relationship{},
	}
	for name, d := range s.Attributes() {
		a := Attribute{Type: d.Type.String()}
		a.Default, a.HasDefault = literalDefault(d.Default)
		f.Attributes[name] = a
	}
	for name, d := range s.Relationships() {
		r := Relationship{}
		r.Default, r.HasDefault = literalDefault(d.Default)
		f.Relationships[name] = r
	}
	return f
}

func literalDefault(v any) (any, bool) {
	switch v.(type) {
	case nil, func() any:
		return nil, false
	}
	return v, true
}

// JSON renders f as indented JSON with sorted keys.
func (f *File) JSON() ([]byte, error) {
	return json.MarshalIndent(f.toMap(), "", "  ")
}

func (f *File) toMap() map[string]any {
	m := map[string]any{}
	if f.Type != "" {
		m["type"] = f.Type
	}
	opts := map[string]any{}
	if f.Options.ServerTransform != "" {
		opts["serverTransform"] = f.Options.ServerTransform
	}
	if f.Options.ClientTransform != "" {
		opts["clientTransform"] = f.Options.ClientTransform
	}
	if len(opts) > 0 {
		m["options"] = opts
	}
	if len(f.Attributes) > 0 {
		attrs := make(map[string]any, len(f.Attributes))
		for name, a := range f.Attributes {
			p := map[string]any{}
			if a.Type != "" {
				p["type"] = a.Type
			}
			if a.HasDefault {
				p["default"] = a.Default
			}
			attrs[name] = p
		}
		m["attributes"] = attrs
	}
	if len(f.Relationships) > 0 {
		rels := make(map[string]any, len(f.Relationships))
		for name, r := range f.Relationships {
			p := map[string]any{}
			if r.HasDefault {
				p["default"] = r.Default
			}
			rels[name] = p
		}
		m["relationships"] = rels
	}
	return m
}
