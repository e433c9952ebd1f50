// Package schemafile loads schema definitions and options from YAML or JSON
// documents and exports schemas back to JSON.
//
// A schema file only carries declarative data (type hints, literal defaults,
// naming conventions and the resource type); getters, setters and transforms
// are added in code with Schema.Add.
//
//	type: articles
//	options:
//	  serverTransform: snake_case
//	  clientTransform: camelCase
//	attributes:
//	  title: {}
//	  createdAt: {type: date}
//	  views: {default: 0}
//	relationships:
//	  author: {}
//	  comments: {default: []}
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/stantanasi/jsonapi"
)

// File is the decoded form of a schema file.
type File struct {
	Type          string
	Options       Options
	Attributes    map[string]Attribute
	Relationships map[string]Relationship
}

// Options mirrors jsonapi.Options in textual form.
type Options struct {
	ServerTransform string
	ClientTransform string
}

// Attribute is a declarative attribute definition.
type Attribute struct {
	Type       string // "" or "date"
	Default    any
	HasDefault bool // distinguishes `default: null` from an absent default
}

// Relationship is a declarative relationship definition.
type Relationship struct {
	Default    any
	HasDefault bool
}

// ReadFile reads and decodes the schema file at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	return Load(data)
}

// Load decodes a schema file. Input whose first non-space byte is '{' is
// decoded as JSON, anything else as YAML.
func Load(data []byte) (*File, error) {
	var root any
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &root); err != nil {
			return nil, parseIssue(err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&root); err != nil && !errors.Is(err, io.EOF) {
			return nil, parseIssue(err)
		}
	}
	if root == nil {
		return &File{}, nil
	}
	m := yamlAnyToStringMap(root)
	if m == nil {
		return nil, jsonapi.Issues{jsonapi.NewIssue("/", jsonapi.CodeInvalidType, nil)}
	}
	return decodeFile(m)
}

func parseIssue(err error) error {
	iss := jsonapi.NewIssue("/", jsonapi.CodeParseError, nil)
	iss.Cause = err
	return jsonapi.Issues{iss}
}

func decodeFile(m map[string]any) (*File, error) {
	f := &File{}
	var iss jsonapi.Issues
	for k, v := range m {
		switch k {
		case "type":
			s, ok := v.(string)
			if !ok {
				iss = jsonapi.AppendIssues(iss, typeIssue(jsonapi.JoinPointer(k)))
				continue
			}
			f.Type = s
		case "options":
			opts, ok := asMap(v)
			if !ok {
				iss = jsonapi.AppendIssues(iss, typeIssue(jsonapi.JoinPointer(k)))
				continue
			}
			f.Options, iss = decodeOptions(opts, iss)
		case "attributes":
			f.Attributes, iss = decodeProperties(k, v, iss, func(p map[string]any, a *Attribute) error {
				if t, ok := p["type"]; ok {
					s, ok := t.(string)
					if !ok {
						return errBadType
					}
					a.Type = s
				}
				a.Default, a.HasDefault = p["default"]
				return nil
			})
		case "relationships":
			var rels map[string]Attribute
			rels, iss = decodeProperties(k, v, iss, func(p map[string]any, a *Attribute) error {
				a.Default, a.HasDefault = p["default"]
				return nil
			})
			if rels != nil {
				f.Relationships = make(map[string]Relationship, len(rels))
				for name, a := range rels {
					f.Relationships[name] = Relationship{Default: a.Default, HasDefault: a.HasDefault}
				}
			}
		default:
			iss = jsonapi.AppendIssues(iss, jsonapi.NewIssue(jsonapi.JoinPointer(k), jsonapi.CodeUnknownKey,
				map[string]string{"key": k}))
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return f, nil
}

var errBadType = errors.New("schemafile: type must be a string")

func decodeOptions(m map[string]any, iss jsonapi.Issues) (Options, jsonapi.Issues) {
	var o Options
	for k, v := range m {
		s, ok := v.(string)
		if !ok {
			iss = jsonapi.AppendIssues(iss, typeIssue(jsonapi.JoinPointer("options", k)))
			continue
		}
		switch k {
		case "serverTransform":
			o.ServerTransform = s
		case "clientTransform":
			o.ClientTransform = s
		default:
			iss = jsonapi.AppendIssues(iss, jsonapi.NewIssue(jsonapi.JoinPointer("options", k), jsonapi.CodeUnknownKey,
				map[string]string{"key": k}))
		}
	}
	return o, iss
}

// decodeProperties decodes a name -> definition mapping. A null definition
// is treated as an empty one.
func decodeProperties(section string, v any, iss jsonapi.Issues, fill func(map[string]any, *Attribute) error) (map[string]Attribute, jsonapi.Issues) {
	props, ok := asMap(v)
	if !ok {
		return nil, jsonapi.AppendIssues(iss, typeIssue(jsonapi.JoinPointer(section)))
	}
	out := make(map[string]Attribute, len(props))
	for name, raw := range props {
		var p map[string]any
		if raw != nil {
			if p, ok = asMap(raw); !ok {
				iss = jsonapi.AppendIssues(iss, typeIssue(jsonapi.JoinPointer(section, name)))
				continue
			}
		}
		var a Attribute
		if err := fill(p, &a); err != nil {
			it := typeIssue(jsonapi.JoinPointer(section, name, "type"))
			it.Cause = err
			iss = jsonapi.AppendIssues(iss, it)
			continue
		}
		out[name] = a
	}
	return out, iss
}

func typeIssue(path string) jsonapi.Issue {
	return jsonapi.NewIssue(path, jsonapi.CodeInvalidType, nil)
}

func asMap(v any) (map[string]any, bool) {
	if v == nil {
		return map[string]any{}, true
	}
	m := yamlAnyToStringMap(v)
	return m, m != nil
}

// yamlAnyToStringMap converts YAML-decoded values (which may contain map[any]any)
// into JSON-like map[string]any recursively. Non-map roots return nil.
func yamlAnyToStringMap(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = yamlNormalizeValue(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = yamlNormalizeValue(vv)
		}
		return out
	default:
		return nil
	}
}

func yamlNormalizeValue(v any) any {
	switch t := v.(type) {
	case map[string]any, map[any]any:
		return yamlAnyToStringMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = yamlNormalizeValue(t[i])
		}
		return arr
	default:
		return v
	}
}
