// Package jsonapi provides a declarative schema layer for mapping model types
// onto JSON:API resources.
//
// A Schema records, per property of a document type T, how attributes and
// relationships are read, written, defaulted and serialized, together with the
// naming conventions used on the wire (server) and in memory (client):
//
//	s := jsonapi.New(jsonapi.Definition[Article]{}.
//		WithAttribute(jsonapi.KeyOf(func(a *Article) *string { return &a.Title }), jsonapi.AttributeDefinition{}).
//		WithAttribute(jsonapi.KeyOf(func(a *Article) *time.Time { return &a.CreatedAt }), jsonapi.AttributeDefinition{Type: jsonapi.TypeDate}),
//		jsonapi.WithServerTransform(jsonapi.SnakeCase),
//		jsonapi.WithClientTransform(jsonapi.CamelCase),
//	)
//	if err := s.Freeze(); err != nil { ... }
//
//	wire, err := s.ToObject(ctx, values)   // createdAt -> created_at, time -> RFC3339
//	values, err = s.FromObject(ctx, wire)  // created_at -> createdAt, defaults applied
//
// Design policy:
//   - Keep the public API in the root package; codecs live under codec/, schema
//     files under schemafile/ and the CLI under cmd/jsonapi-schema.
//   - Schemas are permissive while being built (Add merges with last-write-wins)
//     and checked once by Validate/Freeze.
//   - Name transformation never fails; unsupported convention pairs are logged.
package jsonapi
