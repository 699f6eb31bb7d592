package executor

import (
	"testing"

	language "github.com/venkatd/absinthe/internal/language"
	schema "github.com/venkatd/absinthe/internal/schema"
)

// mustParseQuery parses q, failing the test immediately on a syntax error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	doc, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", q, err)
	}
	return doc
}

// newSchemaWithQueryType builds a schema around one Query type, pre-seeded
// with the builtin scalars the coercion tests lean on.
func newSchemaWithQueryType(query *schema.Type, additional ...*schema.Type) *schema.Schema {
	sch := schema.NewSchema("")
	for _, t := range schema.BuiltinTypes() {
		sch.AddType(t)
	}
	if query != nil {
		sch.SetQueryType(query.Name)
		sch.AddType(query)
	}
	for _, t := range additional {
		sch.AddType(t)
	}
	return sch
}

func newObjectType(name string, fields ...*schema.Field) *schema.Type {
	t := schema.NewType(name, schema.TypeKindObject, "")
	for _, field := range fields {
		t.AddField(field)
	}
	return t
}

func newInputType(name string, fields ...*schema.InputValue) *schema.Type {
	t := schema.NewType(name, schema.TypeKindInputObject, "")
	for _, field := range fields {
		t.AddInputField(field)
	}
	return t
}

func newEnumType(name string, members ...string) *schema.Type {
	t := schema.NewType(name, schema.TypeKindEnum, "")
	for _, member := range members {
		t.AddEnumValue(schema.NewEnumValue(member, ""))
	}
	return t
}
