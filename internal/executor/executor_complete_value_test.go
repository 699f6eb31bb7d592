package executor

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	schema "github.com/venkatd/absinthe/internal/schema"
)

// Pattern: Result comparison
func TestCompleteValue_NonNullPropagation_Result(t *testing.T) {
	t.Run("Resolver returns null", func(t *testing.T) {
		sch := newSchemaWithQueryType(
			newObjectType("Query", schema.NewField("obj", "", schema.NamedType("Obj"))),
			newObjectType("Obj", schema.NewField("a", "", schema.NonNullType(schema.NamedType("String")))),
		)
		rt := NewMockRuntime(map[string]MockResolver{
			"Query.obj": NewMockValueResolver(map[string]any{}),
			"Obj.a":     NewMockValueResolver(nil),
		})
		exec := NewExecutor(rt, sch)
		doc := mustParseQuery(t, "{ obj { a } }")

		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

		wantRes := &ExecutionResult{
			Data: map[string]any{"obj": nil},
			Errors: []GraphQLError{
				{Message: "Cannot return null for non-nullable field obj.a", Path: Path{"obj", "a"}},
			},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Resolver error nulls the parent without stacking", func(t *testing.T) {
		sch := newSchemaWithQueryType(
			newObjectType("Query", schema.NewField("obj", "", schema.NamedType("Obj"))),
			newObjectType("Obj", schema.NewField("a", "", schema.NonNullType(schema.NamedType("String")))),
		)
		rt := NewMockRuntime(map[string]MockResolver{
			"Query.obj": NewMockValueResolver(map[string]any{}),
			"Obj.a":     NewMockErrorResolver(fmt.Errorf("boom")),
		})
		exec := NewExecutor(rt, sch)
		doc := mustParseQuery(t, "{ obj { a } }")

		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

		wantRes := &ExecutionResult{
			Data: map[string]any{"obj": nil},
			Errors: []GraphQLError{
				{Message: "Field `a': boom", Path: Path{"obj", "a"}},
			},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Root non-null nulls the whole data", func(t *testing.T) {
		sch := newSchemaWithQueryType(
			newObjectType("Query", schema.NewField("a", "", schema.NonNullType(schema.NamedType("String")))),
		)
		rt := NewMockRuntime(map[string]MockResolver{
			"Query.a": NewMockValueResolver(nil),
		})
		exec := NewExecutor(rt, sch)
		doc := mustParseQuery(t, "{ a }")

		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

		wantRes := &ExecutionResult{
			Errors: []GraphQLError{
				{Message: "Cannot return null for non-nullable field a", Path: Path{"a"}},
			},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})
}

// Pattern: Result comparison
func TestCompleteValue_ListNullability_Result(t *testing.T) {
	t.Run("Nullable elements hold nulls", func(t *testing.T) {
		sch := newSchemaWithQueryType(
			newObjectType("Query", schema.NewField("names", "", schema.ListType(schema.NamedType("String")))),
		)
		rt := NewMockRuntime(map[string]MockResolver{
			"Query.names": NewMockValueResolver([]any{"a", nil, "c"}),
		})
		exec := NewExecutor(rt, sch)
		doc := mustParseQuery(t, "{ names }")

		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

		wantRes := &ExecutionResult{
			Data:   map[string]any{"names": []any{"a", nil, "c"}},
			Errors: []GraphQLError{},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Non-null element nulls the list", func(t *testing.T) {
		sch := newSchemaWithQueryType(
			newObjectType("Query", schema.NewField("names", "", schema.ListType(schema.NonNullType(schema.NamedType("String"))))),
		)
		rt := NewMockRuntime(map[string]MockResolver{
			"Query.names": NewMockValueResolver([]any{"a", nil}),
		})
		exec := NewExecutor(rt, sch)
		doc := mustParseQuery(t, "{ names }")

		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

		wantRes := &ExecutionResult{
			Data: map[string]any{"names": nil},
			Errors: []GraphQLError{
				{Message: "Cannot return null for non-nullable field names[1]", Path: Path{"names", 1}},
			},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Non-list resolver value", func(t *testing.T) {
		sch := newSchemaWithQueryType(
			newObjectType("Query", schema.NewField("names", "", schema.ListType(schema.NamedType("String")))),
		)
		rt := NewMockRuntime(map[string]MockResolver{
			"Query.names": NewMockValueResolver(42),
		})
		exec := NewExecutor(rt, sch)
		doc := mustParseQuery(t, "{ names }")

		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

		wantRes := &ExecutionResult{
			Data: map[string]any{"names": nil},
			Errors: []GraphQLError{
				{Message: "Expected list value, got int", Path: Path{"names"}},
			},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Typed string slice works as a list source", func(t *testing.T) {
		sch := newSchemaWithQueryType(
			newObjectType("Query", schema.NewField("names", "", schema.ListType(schema.NamedType("String")))),
		)
		rt := NewMockRuntime(map[string]MockResolver{
			"Query.names": NewMockValueResolver([]string{"a", "b"}),
		})
		exec := NewExecutor(rt, sch)
		doc := mustParseQuery(t, "{ names }")

		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

		wantRes := &ExecutionResult{
			Data:   map[string]any{"names": []any{"a", "b"}},
			Errors: []GraphQLError{},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})
}

// Pattern: Result comparison
func TestCompleteValue_LeafSerialization_Result(t *testing.T) {
	t.Run("Serialize failure becomes a located error", func(t *testing.T) {
		sch := newSchemaWithQueryType(
			newObjectType("Query", schema.NewField("n", "", schema.NamedType("Int"))),
		)
		rt := NewMockRuntime(map[string]MockResolver{
			"Query.n": NewMockValueResolver("abc"),
		})
		exec := NewExecutor(rt, sch)
		doc := mustParseQuery(t, "{ n }")

		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

		wantRes := &ExecutionResult{
			Data: map[string]any{"n": nil},
			Errors: []GraphQLError{
				{Message: "cannot serialize abc (string) as Int", Path: Path{"n"}},
			},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Enum output must be a member", func(t *testing.T) {
		sch := newSchemaWithQueryType(
			newObjectType("Query", schema.NewField("c", "", schema.NamedType("Color"))),
			newEnumType("Color", "RED", "GREEN"),
		)
		rt := NewMockRuntime(map[string]MockResolver{
			"Query.c": NewMockValueResolver("PURPLE"),
		})
		exec := NewExecutor(rt, sch)
		doc := mustParseQuery(t, "{ c }")

		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

		wantRes := &ExecutionResult{
			Data: map[string]any{"c": nil},
			Errors: []GraphQLError{
				{Message: "value PURPLE is not a member of enum Color", Path: Path{"c"}},
			},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Input object is not an output type", func(t *testing.T) {
		sch := newSchemaWithQueryType(
			newObjectType("Query", schema.NewField("c", "", schema.NamedType("ContactInput"))),
			newInputType("ContactInput", schema.NewInputValue("name", "", schema.NamedType("String"))),
		)
		rt := NewMockRuntime(map[string]MockResolver{
			"Query.c": NewMockValueResolver(map[string]any{"name": "Ada"}),
		})
		exec := NewExecutor(rt, sch)
		doc := mustParseQuery(t, "{ c }")

		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

		wantRes := &ExecutionResult{
			Data: map[string]any{"c": nil},
			Errors: []GraphQLError{
				{Message: "Cannot complete value of unexpected type: ContactInput", Path: Path{"c"}},
			},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Typed nil pointer completes as null", func(t *testing.T) {
		sch := newSchemaWithQueryType(
			newObjectType("Query", schema.NewField("s", "", schema.NamedType("String"))),
		)
		rt := NewMockRuntime(map[string]MockResolver{
			"Query.s": NewMockValueResolver((*string)(nil)),
		})
		exec := NewExecutor(rt, sch)
		doc := mustParseQuery(t, "{ s }")

		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

		wantRes := &ExecutionResult{
			Data:   map[string]any{"s": nil},
			Errors: []GraphQLError{},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})
}
