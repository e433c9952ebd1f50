package jsonapi

import (
	"reflect"
	"sort"
)

// Key identifies a top-level property of the document type T by its property
// name. Obtain it via KeyOf to ensure compile-time linkage to the struct field.
type Key[T any] struct {
	name string
}

// Name returns the property name associated with this key.
func (k Key[T]) Name() string { return k.name }

// String implements fmt.Stringer.
func (k Key[T]) String() string { return k.name }

// KeyOf builds a Key for a top-level field of T.
// The selector must return the address of a top-level field, e.g.:
//
//	KeyOf(func(a *Article) *string { return &a.Title })
//
// This guarantees compile-time errors if the field is renamed/removed.
func KeyOf[T any, F any](selector func(*T) *F) Key[T] {
	if selector == nil {
		panic("jsonapi.KeyOf: selector must not be nil")
	}
	var zero T
	// Get pointer to selected field within zero value of T
	fp := reflect.ValueOf(selector(&zero)).Pointer()

	rv := reflect.ValueOf(&zero).Elem()
	if rv.Kind() != reflect.Struct {
		panic("jsonapi.KeyOf: T must be a struct type")
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		fv := rv.Field(i)
		if !sf.IsExported() || !fv.CanAddr() {
			continue
		}
		if fv.Addr().Pointer() == fp {
			name := ResolveStructKey(sf)
			if name == "" || name == "-" {
				panic("jsonapi.KeyOf: selected field is disabled")
			}
			return Key[T]{name: name}
		}
	}
	panic("jsonapi.KeyOf: selector must return address of a top-level field of T")
}

// Keys lists the property names of all exported, enabled top-level fields of
// T in sorted order. It returns nil when T is not a struct.
func Keys[T any]() []string {
	rt := structOf[T]()
	if rt == nil {
		return nil
	}
	out := make([]string, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if name := ResolveStructKey(sf); name != "" && name != "-" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
