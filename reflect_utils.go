package jsonapi

import (
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// property name.
// Priority: jsonapi:"name,..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if jt := sf.Tag.Get("jsonapi"); jt != "" {
		if name, _, _ := strings.Cut(jt, ","); name != "" {
			return name
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if name, _, _ := strings.Cut(jt, ","); name != "" {
			return name
		}
	}
	return sf.Name
}

// structOf returns the struct type behind T (dereferencing one pointer level),
// or nil when T is not a struct.
func structOf[T any]() reflect.Type {
	rt := reflect.TypeFor[T]()
	if rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt.Kind() != reflect.Struct {
		return nil
	}
	return rt
}
