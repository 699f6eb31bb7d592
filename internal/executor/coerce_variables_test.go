package executor

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	schema "github.com/venkatd/absinthe/internal/schema"
)

func contactSchema() *schema.Schema {
	contact := newInputType("ContactInput",
		schema.NewInputValue("name", "", schema.NonNullType(schema.NamedType("String"))),
		schema.NewInputValue("email", "", schema.NamedType("String")),
	)
	return newSchemaWithQueryType(newObjectType("Query",
		schema.NewField("register", "", schema.NamedType("String")).
			AddArgument(schema.NewInputValue("contact", "", schema.NonNullType(schema.NamedType("ContactInput")))),
	), contact)
}

// Pattern: Calls comparison
func TestVariables_LiteralEquivalence_Calls(t *testing.T) {
	sch := contactSchema()
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.register": NewMockValueResolver("done"),
	})
	exec := NewExecutor(rt, sch)

	litDoc := mustParseQuery(t, `{ register(contact: {name: "Ada", email: "ada@x.io", extra: 1}) }`)
	exec.ExecuteRequest(context.Background(), litDoc, "", nil, nil)

	varDoc := mustParseQuery(t, `query($c: ContactInput!) { register(contact: $c) }`)
	exec.ExecuteRequest(context.Background(), varDoc, "", map[string]any{
		"c": map[string]any{"name": "Ada", "email": "ada@x.io", "extra": float64(1)},
	}, nil)

	calls := rt.GetCalls()
	require.Len(t, calls, 2)
	if diff := cmp.Diff(calls[0].Args, calls[1].Args); diff != "" {
		t.Fatalf("literal and variable coercion disagree (-literal +variable):\n%s", diff)
	}
	want := map[string]any{"contact": map[string]any{"name": "Ada", "email": "ada@x.io"}}
	if diff := cmp.Diff(want, calls[0].Args); diff != "" {
		t.Fatalf("coerced args mismatch (-want +got):\n%s", diff)
	}
}

// Pattern: Result comparison
func TestVariables_DeclarationDefault_Result(t *testing.T) {
	sch := contactSchema()
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.register": func(ctx context.Context, src any, args map[string]any) (any, error) {
			contact := args["contact"].(map[string]any)
			return contact["name"], nil
		},
	})
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, `query($c: ContactInput = {name: "Default"}) { register(contact: $c) }`)

	t.Run("unsupplied variable takes its declaration default", func(t *testing.T) {
		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)
		wantRes := &ExecutionResult{Data: map[string]any{"register": "Default"}, Errors: []GraphQLError{}}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("supplied variable wins over the default", func(t *testing.T) {
		gotRes := exec.ExecuteRequest(context.Background(), doc, "", map[string]any{
			"c": map[string]any{"name": "Ada"},
		}, nil)
		wantRes := &ExecutionResult{Data: map[string]any{"register": "Ada"}, Errors: []GraphQLError{}}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})
}

// Pattern: Result comparison
func TestVariables_MissingRequired_Result(t *testing.T) {
	sch := contactSchema()
	rt := NewMockRuntime(nil)
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, `query($c: ContactInput!) { register(contact: $c) }`)

	gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)

	wantRes := &ExecutionResult{
		Data: map[string]any{"register": nil},
		Errors: []GraphQLError{{
			Message: "Field `register': contact: variable $c of required type ContactInput! was not provided",
			Path:    Path{"register"},
		}},
	}
	if diff := cmp.Diff(wantRes, gotRes); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
	require.Empty(t, rt.GetCalls(), "resolver must not run without its required variable")
}

// Pattern: Result comparison
func TestVariables_NullForNonNull_Result(t *testing.T) {
	sch := contactSchema()
	rt := NewMockRuntime(nil)
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, `query($c: ContactInput!) { register(contact: $c) }`)

	gotRes := exec.ExecuteRequest(context.Background(), doc, "", map[string]any{"c": nil}, nil)

	wantRes := &ExecutionResult{
		Data: map[string]any{"register": nil},
		Errors: []GraphQLError{{
			Message: "Field `register': contact: variable $c of non-null type ContactInput! must not be null",
			Path:    Path{"register"},
		}},
	}
	if diff := cmp.Diff(wantRes, gotRes); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

// Pattern: Result comparison
func TestVariables_Undeclared_Result(t *testing.T) {
	sch := newSchemaWithQueryType(newObjectType("Query",
		schema.NewField("greet", "", schema.NamedType("String")).
			AddArgument(schema.NewInputValue("shout", "", schema.NamedType("Boolean")).SetDefault(false)),
		schema.NewField("get", "", schema.NamedType("String")).
			AddArgument(schema.NewInputValue("id", "", schema.NonNullType(schema.NamedType("ID")))),
	))
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.greet": func(ctx context.Context, src any, args map[string]any) (any, error) {
			if args["shout"].(bool) {
				return "YES", nil
			}
			return "NO", nil
		},
		"Query.get": NewMockValueResolver("thing"),
	})
	exec := NewExecutor(rt, sch)

	t.Run("nullable context treats it as absent", func(t *testing.T) {
		doc := mustParseQuery(t, "{ greet(shout: $nope) }")
		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)
		wantRes := &ExecutionResult{Data: map[string]any{"greet": "NO"}, Errors: []GraphQLError{}}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("non-null context reports the missing declaration", func(t *testing.T) {
		doc := mustParseQuery(t, "{ get(id: $nope) }")
		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)
		wantRes := &ExecutionResult{
			Data: map[string]any{"get": nil},
			Errors: []GraphQLError{{
				Message: "Field `get': id: variable $nope is not declared by the operation",
				Path:    Path{"get"},
			}},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})
}

// Pattern: Result comparison
func TestVariables_EnumPaths_Result(t *testing.T) {
	sch := newSchemaWithQueryType(newObjectType("Query",
		schema.NewField("paint", "", schema.NamedType("Color")).
			AddArgument(schema.NewInputValue("c", "", schema.NonNullType(schema.NamedType("Color")))),
	), newEnumType("Color", "RED", "GREEN", "BLUE"))
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.paint": func(ctx context.Context, src any, args map[string]any) (any, error) {
			return args["c"], nil
		},
	})
	exec := NewExecutor(rt, sch)
	varDoc := mustParseQuery(t, "query($c: Color!) { paint(c: $c) }")

	t.Run("variable member arrives as a plain string", func(t *testing.T) {
		gotRes := exec.ExecuteRequest(context.Background(), varDoc, "", map[string]any{"c": "GREEN"}, nil)
		wantRes := &ExecutionResult{Data: map[string]any{"paint": "GREEN"}, Errors: []GraphQLError{}}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown member via variable", func(t *testing.T) {
		gotRes := exec.ExecuteRequest(context.Background(), varDoc, "", map[string]any{"c": "PURPLE"}, nil)
		wantRes := &ExecutionResult{
			Data: map[string]any{"paint": nil},
			Errors: []GraphQLError{{
				Message: "Field `paint': c: PURPLE is not a member of enum Color",
				Path:    Path{"paint"},
			}},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("bare literal member accepted", func(t *testing.T) {
		doc := mustParseQuery(t, "{ paint(c: BLUE) }")
		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)
		wantRes := &ExecutionResult{Data: map[string]any{"paint": "BLUE"}, Errors: []GraphQLError{}}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("quoted literal rejected", func(t *testing.T) {
		doc := mustParseQuery(t, `{ paint(c: "BLUE") }`)
		gotRes := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)
		wantRes := &ExecutionResult{
			Data: map[string]any{"paint": nil},
			Errors: []GraphQLError{{
				Message: "Field `paint': c: expected a member of enum Color, got \"BLUE\"",
				Path:    Path{"paint"},
			}},
		}
		if diff := cmp.Diff(wantRes, gotRes); diff != "" {
			t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
		}
	})
}

// Pattern: Result comparison
func TestVariables_ScalarMismatch_Result(t *testing.T) {
	sch := newSchemaWithQueryType(newObjectType("Query",
		schema.NewField("echo", "", schema.NamedType("Int")).
			AddArgument(schema.NewInputValue("count", "", schema.NonNullType(schema.NamedType("Int")))),
	))
	rt := NewMockRuntime(nil)
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, "query($count: Int!) { echo(count: $count) }")

	gotRes := exec.ExecuteRequest(context.Background(), doc, "", map[string]any{"count": "42"}, nil)

	require.Len(t, gotRes.Errors, 1)
	require.Contains(t, gotRes.Errors[0].Message, "cannot coerce")
	require.Contains(t, gotRes.Errors[0].Message, "Field `echo'")
}

// Pattern: Calls comparison
func TestVariables_SharedAcrossPositions_Calls(t *testing.T) {
	sch := newSchemaWithQueryType(newObjectType("Query",
		schema.NewField("a", "", schema.NamedType("String")).
			AddArgument(schema.NewInputValue("id", "", schema.NamedType("ID"))),
		schema.NewField("b", "", schema.NamedType("String")).
			AddArgument(schema.NewInputValue("tag", "", schema.NamedType("String"))),
	))
	rt := NewMockRuntime(map[string]MockResolver{
		"Query.a": NewMockValueResolver("A"),
		"Query.b": NewMockValueResolver("B"),
	})
	exec := NewExecutor(rt, sch)
	doc := mustParseQuery(t, `query($v: String) { a(id: $v) b(tag: $v) }`)

	exec.ExecuteRequest(context.Background(), doc, "", map[string]any{"v": "x1"}, nil)

	calls := rt.GetCalls()
	require.Len(t, calls, 2)
	require.Equal(t, map[string]any{"id": "x1"}, calls[0].Args)
	require.Equal(t, map[string]any{"tag": "x1"}, calls[1].Args)
}
