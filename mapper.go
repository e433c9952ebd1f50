package jsonapi

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"

	"github.com/stantanasi/jsonapi/codec"
	"github.com/stantanasi/jsonapi/i18n"
)

var (
	_dateCodec = codec.TimeRFC3339()
	_anyCodec  = codec.Identity[any]()
)

// GetValue applies the Get hook of the named property to raw. Properties
// without a hook return raw unchanged.
func (s *Schema[T]) GetValue(name string, raw any) any {
	if d, ok := s.attributes[name]; ok && d.Get != nil {
		return d.Get(raw)
	}
	if d, ok := s.relationships[name]; ok && d.Get != nil {
		return d.Get(raw)
	}
	return raw
}

// SetValue applies the Set hook of the named property to v. Properties
// without a hook return v unchanged.
func (s *Schema[T]) SetValue(name string, v any) any {
	if d, ok := s.attributes[name]; ok && d.Set != nil {
		return d.Set(v)
	}
	if d, ok := s.relationships[name]; ok && d.Set != nil {
		return d.Set(v)
	}
	return v
}

// ToObject converts in-memory property values into their wire form: the
// Transform hook runs, date attributes become RFC3339 strings and names are
// converted to the server convention. Properties without a definition are
// renamed and copied as is. Two properties that map to the same wire name
// are a conflict issue.
func (s *Schema[T]) ToObject(ctx context.Context, values map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(values))
	origin := make(map[string]string, len(values))
	var iss Issues
	for _, name := range slices.Sorted(maps.Keys(values)) {
		v := values[name]
		key := s.ToServerName(name)
		if prev, dup := origin[key]; dup {
			iss = AppendIssues(iss, collisionIssue(key, prev, name))
			continue
		}
		origin[key] = name
		var hint TypeHint
		if d, ok := s.attributes[name]; ok {
			hint = d.Type
			if d.Transform != nil {
				v = d.Transform(v)
			}
		} else if d, ok := s.relationships[name]; ok && d.Transform != nil {
			v = d.Transform(v)
		}
		wv, err := encodeValue(ctx, hint, v)
		if err != nil {
			iss = AppendIssues(iss, valueIssue(name, err))
			continue
		}
		out[key] = wv
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return out, nil
}

// FromObject converts wire property values into their in-memory form: names
// are converted to the client convention, date attributes are parsed and
// defined properties missing from wire receive their default. Two wire keys
// that map to the same property name are a conflict issue.
func (s *Schema[T]) FromObject(ctx context.Context, wire map[string]any) (map[string]any, error) {
	d, err := s.FromObjectWithMeta(ctx, wire)
	if err != nil {
		return nil, err
	}
	return d.Values, nil
}

// FromObjectWithMeta is FromObject that also records, per property, whether
// it was seen, null or defaulted.
func (s *Schema[T]) FromObjectWithMeta(ctx context.Context, wire map[string]any) (Decoded, error) {
	n := len(wire) + len(s.attributes) + len(s.relationships)
	d := Decoded{Values: make(map[string]any, n), Presence: make(PresenceMap, n)}
	origin := make(map[string]string, len(wire))
	var iss Issues
	for _, key := range slices.Sorted(maps.Keys(wire)) {
		v := wire[key]
		name := s.ToClientName(key)
		if prev, dup := origin[name]; dup {
			iss = AppendIssues(iss, collisionIssue(name, prev, key))
			continue
		}
		origin[name] = key
		var hint TypeHint
		if a, ok := s.attributes[name]; ok {
			hint = a.Type
		}
		dv, err := decodeValue(ctx, hint, v)
		if err != nil {
			iss = AppendIssues(iss, valueIssue(name, err))
			continue
		}
		d.Values[name] = dv
		p := PresenceSeen
		if v == nil {
			p |= PresenceWasNull
		}
		d.Presence[name] = p
	}
	if len(iss) > 0 {
		return Decoded{}, iss
	}
	for name, a := range s.attributes {
		applyDefault(d, name, a.DefaultValue)
	}
	for name, r := range s.relationships {
		applyDefault(d, name, r.DefaultValue)
	}
	return d, nil
}

func applyDefault(d Decoded, name string, resolve func() (any, bool)) {
	if _, seen := d.Values[name]; seen {
		return
	}
	if v, ok := resolve(); ok {
		d.Values[name] = v
		d.Presence[name] |= PresenceDefaultApplied
	}
}

// ToObjectPreserving is ToObject over d.Values that leaves out properties
// whose value only comes from a default, so that a round trip does not
// send values the server never provided.
func (s *Schema[T]) ToObjectPreserving(ctx context.Context, d Decoded) (map[string]any, error) {
	values := make(map[string]any, len(d.Values))
	for name, v := range d.Values {
		if d.DefaultApplied(name) && !d.Seen(name) {
			continue
		}
		values[name] = v
	}
	return s.ToObject(ctx, values)
}

func encodeValue(ctx context.Context, hint TypeHint, v any) (any, error) {
	if hint == TypeDate {
		switch t := v.(type) {
		case time.Time:
			return _dateCodec.Encode(ctx, t)
		case *time.Time:
			if t == nil {
				return nil, nil
			}
			return _dateCodec.Encode(ctx, *t)
		}
	}
	return _anyCodec.Encode(ctx, v)
}

func decodeValue(ctx context.Context, hint TypeHint, v any) (any, error) {
	if hint == TypeDate && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, errNotAString
		}
		return _dateCodec.Decode(ctx, s)
	}
	return _anyCodec.Decode(ctx, v)
}

var errNotAString = errors.New("jsonapi: date attribute must be a string")

func valueIssue(name string, err error) Issue {
	code := CodeInvalidFormat
	if errors.Is(err, errNotAString) {
		code = CodeInvalidType
	}
	iss := NewIssue(JoinPointer(name), code, map[string]string{"key": name})
	iss.Cause = err
	return iss
}

// collisionIssue reports two input keys that map to the same property name.
func collisionIssue(name, first, second string) Issue {
	data := map[string]string{"key": name, "first": first, "second": second}
	iss := NewIssue(JoinPointer(name), CodeConflict, data)
	iss.Message = i18n.T("name_collision", data)
	return iss
}
