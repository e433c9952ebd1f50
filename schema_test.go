package jsonapi_test

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stantanasi/jsonapi"
)

type article struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `jsonapi:"createdAt"`
	Author    *person   `json:"author,omitempty"`
	Comments  []string  `json:"comments"`
	Internal  string    `json:"-"`
	secret    string
}

type person struct {
	FirstName string `json:"firstName"`
}

func TestNew_EmptyDefinition(t *testing.T) {
	s := jsonapi.New(jsonapi.Definition[article]{})

	assert.Empty(t, s.Attributes())
	assert.Empty(t, s.Relationships())
	assert.Equal(t, jsonapi.Literal, s.Options().ServerTransform)
	assert.Equal(t, jsonapi.Literal, s.Options().ClientTransform)
	assert.False(t, s.Frozen())
}

func TestNew_StoresDefinitionAndOptions(t *testing.T) {
	s := jsonapi.New(jsonapi.Definition[article]{
		Attributes: map[string]jsonapi.AttributeDefinition{
			"title": {Default: ""},
		},
		Relationships: map[string]jsonapi.RelationshipDefinition{
			"author": {},
		},
	}, jsonapi.WithServerTransform(jsonapi.SnakeCase), jsonapi.WithClientTransform(jsonapi.CamelCase))

	assert.Equal(t, []string{"title"}, s.AttributeNames())
	assert.Equal(t, []string{"author"}, s.RelationshipNames())
	assert.Equal(t, jsonapi.SnakeCase, s.Options().ServerTransform)
	assert.Equal(t, jsonapi.CamelCase, s.Options().ClientTransform)
}

func TestNew_WithOptionsRecord(t *testing.T) {
	s := jsonapi.New(jsonapi.Definition[article]{}, jsonapi.WithOptions(jsonapi.Options{
		ServerTransform: jsonapi.SnakeCase,
		Type:            "posts",
	}))

	o := s.Options()
	assert.Equal(t, jsonapi.SnakeCase, o.ServerTransform)
	assert.Equal(t, jsonapi.Literal, o.ClientTransform)
	assert.Equal(t, "posts", o.Type)
}

func TestAdd_LastWriteWins(t *testing.T) {
	s := jsonapi.New(jsonapi.Definition[article]{
		Attributes: map[string]jsonapi.AttributeDefinition{"title": {Default: ""}},
	})
	got := s.Add(jsonapi.Definition[article]{
		Attributes: map[string]jsonapi.AttributeDefinition{"title": {Default: "x"}},
	})

	assert.Same(t, s, got)
	def, ok := s.Attribute("title")
	require.True(t, ok)
	assert.Equal(t, "x", def.Default)
}

func TestAdd_ChainedMergeReplacesWholeDefinition(t *testing.T) {
	s := jsonapi.New(jsonapi.Definition[article]{}).
		Add(jsonapi.Definition[article]{
			Attributes: map[string]jsonapi.AttributeDefinition{
				"title":     {Default: "a"},
				"createdAt": {Type: jsonapi.TypeDate},
			},
			Relationships: map[string]jsonapi.RelationshipDefinition{"author": {Default: "p1"}},
		}).
		Add(jsonapi.Definition[article]{
			Attributes:    map[string]jsonapi.AttributeDefinition{"createdAt": {Default: "later"}},
			Relationships: map[string]jsonapi.RelationshipDefinition{"comments": {}},
		})

	title, _ := s.Attribute("title")
	assert.Equal(t, "a", title.Default)

	// shallow merge: the second definition replaces the type hint too
	createdAt, _ := s.Attribute("createdAt")
	assert.Equal(t, jsonapi.TypeNone, createdAt.Type)
	assert.Equal(t, "later", createdAt.Default)

	assert.Equal(t, []string{"author", "comments"}, s.RelationshipNames())
}

func TestAdd_DoesNotAliasCallerMaps(t *testing.T) {
	attrs := map[string]jsonapi.AttributeDefinition{"title": {}}
	s := jsonapi.New(jsonapi.Definition[article]{Attributes: attrs})

	attrs["body"] = jsonapi.AttributeDefinition{}
	assert.Equal(t, []string{"title"}, s.AttributeNames())

	copied := s.Attributes()
	copied["other"] = jsonapi.AttributeDefinition{}
	_, ok := s.Attribute("other")
	assert.False(t, ok)
}

func TestDefinition_TypedKeys(t *testing.T) {
	def := jsonapi.Definition[article]{}.
		WithAttribute(jsonapi.KeyOf(func(a *article) *string { return &a.Title }), jsonapi.AttributeDefinition{}).
		WithAttribute(jsonapi.KeyOf(func(a *article) *time.Time { return &a.CreatedAt }), jsonapi.AttributeDefinition{Type: jsonapi.TypeDate}).
		WithRelationship(jsonapi.KeyOf(func(a *article) **person { return &a.Author }), jsonapi.RelationshipDefinition{})

	s := jsonapi.New(def)
	assert.Equal(t, []string{"createdAt", "title"}, s.AttributeNames())
	assert.Equal(t, []string{"author"}, s.RelationshipNames())
	require.NoError(t, s.Validate())
}

func TestDefinition_BranchesDoNotShareMaps(t *testing.T) {
	title := jsonapi.KeyOf(func(a *article) *string { return &a.Title })
	body := jsonapi.KeyOf(func(a *article) *string { return &a.Body })
	created := jsonapi.KeyOf(func(a *article) *time.Time { return &a.CreatedAt })
	author := jsonapi.KeyOf(func(a *article) **person { return &a.Author })
	comments := jsonapi.KeyOf(func(a *article) *[]string { return &a.Comments })

	base := jsonapi.Definition[article]{}.
		WithAttribute(title, jsonapi.AttributeDefinition{}).
		WithRelationship(author, jsonapi.RelationshipDefinition{})
	d1 := base.WithAttribute(body, jsonapi.AttributeDefinition{}).
		WithRelationship(comments, jsonapi.RelationshipDefinition{})
	d2 := base.WithAttribute(created, jsonapi.AttributeDefinition{Type: jsonapi.TypeDate})

	names := func(d jsonapi.Definition[article]) ([]string, []string) {
		s := jsonapi.New(d)
		return s.AttributeNames(), s.RelationshipNames()
	}
	cases := []struct {
		name      string
		def       jsonapi.Definition[article]
		wantAttrs []string
		wantRels  []string
	}{
		{"base", base, []string{"title"}, []string{"author"}},
		{"d1", d1, []string{"body", "title"}, []string{"author", "comments"}},
		{"d2", d2, []string{"createdAt", "title"}, []string{"author"}},
	}
	for _, tc := range cases {
		attrs, rels := names(tc.def)
		if !slices.Equal(attrs, tc.wantAttrs) {
			t.Fatalf("%s: attributes = %v, want %v", tc.name, attrs, tc.wantAttrs)
		}
		if !slices.Equal(rels, tc.wantRels) {
			t.Fatalf("%s: relationships = %v, want %v", tc.name, rels, tc.wantRels)
		}
	}
}

func TestDefaultValue(t *testing.T) {
	calls := 0
	d := jsonapi.AttributeDefinition{Default: func() any { calls++; return calls }}

	v1, ok := d.DefaultValue()
	require.True(t, ok)
	v2, _ := d.DefaultValue()
	assert.Equal(t, 1, v1)
	assert.Equal(t, 2, v2)

	_, ok = jsonapi.AttributeDefinition{}.DefaultValue()
	assert.False(t, ok)

	v, ok := jsonapi.RelationshipDefinition{Default: []string{}}.DefaultValue()
	require.True(t, ok)
	assert.Equal(t, []string{}, v)
}

func TestValidate_Conflict(t *testing.T) {
	s := jsonapi.New(jsonapi.Definition[article]{
		Attributes:    map[string]jsonapi.AttributeDefinition{"author": {}},
		Relationships: map[string]jsonapi.RelationshipDefinition{"author": {}},
	})

	iss, ok := jsonapi.AsIssues(s.Validate())
	require.True(t, ok)
	require.Len(t, iss, 1)
	assert.Equal(t, jsonapi.CodeConflict, iss[0].Code)
	assert.Equal(t, "/attributes/author", iss[0].Path)
	assert.Equal(t, "author", iss[0].Params["key"])
}

func TestValidate_UnknownKeys(t *testing.T) {
	s := jsonapi.New(jsonapi.Definition[article]{
		Attributes: map[string]jsonapi.AttributeDefinition{
			"title":    {},
			"Internal": {},
			"secret":   {},
		},
		Relationships: map[string]jsonapi.RelationshipDefinition{"editor": {}},
	})

	iss, ok := jsonapi.AsIssues(s.Validate())
	require.True(t, ok)
	paths := make([]string, 0, len(iss))
	for _, it := range iss {
		assert.Equal(t, jsonapi.CodeUnknownKey, it.Code)
		paths = append(paths, it.Path)
	}
	assert.Equal(t, []string{"/attributes/Internal", "/attributes/secret", "/relationships/editor"}, paths)
}

func TestValidate_MapDocumentSkipsFieldCheck(t *testing.T) {
	s := jsonapi.New(jsonapi.Definition[map[string]any]{
		Attributes: map[string]jsonapi.AttributeDefinition{"anything": {}},
	})
	assert.NoError(t, s.Validate())
}

func TestValidate_InvalidOptionsAndHint(t *testing.T) {
	s := jsonapi.New(jsonapi.Definition[article]{
		Attributes: map[string]jsonapi.AttributeDefinition{"title": {Type: jsonapi.TypeHint(9)}},
	}, jsonapi.WithServerTransform("kebab-case"), jsonapi.WithClientTransform("PascalCase"))

	iss, ok := jsonapi.AsIssues(s.Validate())
	require.True(t, ok)
	require.Len(t, iss, 3)
	assert.Equal(t, "/options/serverTransform", iss[0].Path)
	assert.Equal(t, "/options/clientTransform", iss[1].Path)
	assert.Equal(t, "/attributes/title/type", iss[2].Path)
	for _, it := range iss {
		assert.Equal(t, jsonapi.CodeInvalidEnum, it.Code)
	}
	assert.Contains(t, iss.Error(), "invalid_enum at /options/serverTransform")
}

func TestFreeze(t *testing.T) {
	s := jsonapi.New(jsonapi.Definition[article]{
		Attributes: map[string]jsonapi.AttributeDefinition{"title": {}},
	})
	require.NoError(t, s.Freeze())
	assert.True(t, s.Frozen())
	require.NoError(t, s.Freeze())

	assert.Panics(t, func() {
		s.Add(jsonapi.Definition[article]{Attributes: map[string]jsonapi.AttributeDefinition{"body": {}}})
	})
}

func TestFreeze_RejectsConflict(t *testing.T) {
	s := jsonapi.New(jsonapi.Definition[article]{
		Attributes:    map[string]jsonapi.AttributeDefinition{"comments": {}},
		Relationships: map[string]jsonapi.RelationshipDefinition{"comments": {}},
	})
	require.Error(t, s.Freeze())
	assert.False(t, s.Frozen())

	// still mutable after a failed freeze
	assert.NotPanics(t, func() { s.Add(jsonapi.Definition[article]{}) })
}

func TestResourceType(t *testing.T) {
	type ArticleComment struct{}

	assert.Equal(t, "comments", jsonapi.New(jsonapi.Definition[Comment]{}).ResourceType())
	assert.Equal(t, "article_comments", jsonapi.New(jsonapi.Definition[ArticleComment]{}).ResourceType())
	assert.Equal(t, "comments", jsonapi.New(jsonapi.Definition[*Comment]{}).ResourceType())
	assert.Equal(t, "people", jsonapi.New(jsonapi.Definition[Comment]{}, jsonapi.WithType("people")).ResourceType())
	assert.Equal(t, "", jsonapi.New(jsonapi.Definition[map[string]any]{}).ResourceType())
}

type Comment struct {
	Body string `json:"body"`
}

func TestIssues_ErrorSummary(t *testing.T) {
	iss := jsonapi.Issues{
		{Code: "a", Path: "/1"}, {Code: "b", Path: "/2"}, {Code: "c", Path: "/3"}, {Code: "d", Path: "/4"},
	}
	assert.Equal(t, "a at /1; b at /2; c at /3; ... (total 4)", iss.Error())
	assert.Equal(t, "", jsonapi.Issues{}.Error())

	_, ok := jsonapi.AsIssues(nil)
	assert.False(t, ok)
}

func TestJoinPointer(t *testing.T) {
	assert.Equal(t, "/", jsonapi.JoinPointer())
	assert.Equal(t, "/attributes/title", jsonapi.JoinPointer("attributes", "title"))
	assert.Equal(t, "/attributes/a~1b~0c", jsonapi.JoinPointer("attributes", "a/b~c"))
}
