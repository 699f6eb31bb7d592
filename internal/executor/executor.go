package executor

import (
	"context"
	"fmt"
	"reflect"

	language "github.com/venkatd/absinthe/internal/language"
	schema "github.com/venkatd/absinthe/internal/schema"
)

// PathElement is one segment of a response path: a field's response key
// (string) or a list index (int).
type PathElement any

// Path locates a value inside the response data tree.
type Path []PathElement

// appendPath returns a new path with element appended. The input is never
// mutated; sibling fields extend the same parent path independently.
func appendPath(path Path, element PathElement) Path {
	next := make(Path, len(path), len(path)+1)
	copy(next, path)
	return append(next, element)
}

// Executor evaluates parsed query documents against a schema, delegating
// field resolution to a Runtime. A single Executor is safe for concurrent
// use; each request gets its own execution state.
type Executor struct {
	runtime Runtime
	schema  *schema.Schema
}

func NewExecutor(runtime Runtime, schema *schema.Schema) *Executor {
	return &Executor{runtime: runtime, schema: schema}
}

// ExecuteRequest runs one operation from document and returns the response
// data together with any field errors collected along the way. Request
// errors (unknown operation, missing root type) produce a result with no
// data at all. initialValue becomes the source value for root field
// resolvers.
//
// Variables are not coerced up front. Each $reference is resolved where it
// appears, against the type expected at that position, so the same variable
// may feed positions of different types within one operation.
func (e *Executor) ExecuteRequest(
	ctx context.Context,
	document *language.QueryDocument,
	operationName string,
	variableValues map[string]any,
	initialValue any,
) *ExecutionResult {
	operation := getOperation(document, operationName)
	if operation == nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: "operation not found"}}}
	}

	var rootType *schema.Type
	switch operation.Operation {
	case language.Query:
		rootType = e.schema.GetQueryType()
	case language.Mutation:
		rootType = e.schema.GetMutationType()
	case language.Subscription:
		return &ExecutionResult{Errors: []GraphQLError{{Message: "subscription operations are not supported"}}}
	default:
		return &ExecutionResult{Errors: []GraphQLError{{Message: fmt.Sprintf("unsupported operation type: %s", operation.Operation)}}}
	}
	if rootType == nil {
		return &ExecutionResult{Errors: []GraphQLError{{Message: fmt.Sprintf("root type not found for %s operation", operation.Operation)}}}
	}

	state := &executionState{
		runtime:   e.runtime,
		schema:    e.schema,
		document:  document,
		variables: newVariableResolver(operation.VariableDefinitions, variableValues),
		errors:    []GraphQLError{},
	}
	data := state.executeSelectionSet(ctx, rootType, operation.SelectionSet, initialValue, nil)

	result := &ExecutionResult{Errors: state.errors}
	if data != nil {
		result.Data = data
	}
	return result
}

func getOperation(document *language.QueryDocument, operationName string) *language.OperationDefinition {
	return document.Operations.ForName(operationName)
}

// executionState carries one request's mutable pieces: the error list and
// the variable resolver. Execution is single-threaded per request, so plain
// appends suffice.
type executionState struct {
	runtime   Runtime
	schema    *schema.Schema
	document  *language.QueryDocument
	variables *variableResolver
	errors    []GraphQLError
}

func (s *executionState) addError(err GraphQLError) {
	s.errors = append(s.errors, err)
}

// hasErrorAtPath reports whether an error was already recorded at path or
// below it. Non-null propagation uses this to avoid stacking a "cannot
// return null" error on top of the failure that caused the null.
func (s *executionState) hasErrorAtPath(path Path) bool {
	for _, err := range s.errors {
		if len(err.Path) < len(path) {
			continue
		}
		match := true
		for i, element := range path {
			if err.Path[i] != element {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// executeSelectionSet resolves every field in the set against source and
// assembles the response object. It returns nil when a non-null field
// resolved to null, propagating the null to the parent.
func (s *executionState) executeSelectionSet(ctx context.Context, objectType *schema.Type, selectionSet language.SelectionSet, source any, path Path) map[string]any {
	grouped := s.collectFields(objectType, selectionSet)
	result := make(map[string]any, len(grouped.fields))
	for _, group := range grouped.orderedFields() {
		responseKey := group.ResponseName
		fields := group.Fields
		fieldName := fields[0].Name
		fieldPath := appendPath(path, responseKey)

		if fieldName == "__typename" {
			result[responseKey] = objectType.Name
			continue
		}
		fieldDef := objectType.Field(fieldName)
		if fieldDef == nil {
			s.addError(GraphQLError{
				Message: fmt.Sprintf("Cannot query field '%s' on type '%s'", fieldName, objectType.Name),
				Path:    fieldPath,
			})
			continue
		}

		value := s.executeField(ctx, objectType, fieldDef, fields, source, fieldPath)
		if isNullish(value) && schema.IsNonNull(fieldDef.Type) {
			return nil
		}
		result[responseKey] = value
	}
	return result
}

// executeField coerces the field's arguments, invokes the resolver, and
// completes the returned value. Argument coercion failures merge into one
// field error and suppress the resolver call entirely.
func (s *executionState) executeField(ctx context.Context, objectType *schema.Type, fieldDef *schema.Field, fields []*language.Field, source any, path Path) any {
	args, failures := coerceArgumentValues(s.schema, fieldDef, fields[0].Arguments, s.variables)
	if len(failures) > 0 {
		s.addError(fieldError(fieldDef.Name, failures, path))
		return nil
	}

	resolved, err := s.runtime.ResolveField(ctx, objectType.Name, fieldDef.Name, source, args)
	if err != nil {
		s.addError(GraphQLError{
			Message: fmt.Sprintf("Field `%s': %s", fieldDef.Name, err.Error()),
			Path:    path,
		})
		return nil
	}
	return s.completeValue(ctx, fieldDef.Type, fields, resolved, path)
}

// completeValue shapes a resolved value according to its declared type:
// serialize scalars, check enum membership, recurse into lists and child
// selection sets, and enforce non-null.
func (s *executionState) completeValue(ctx context.Context, t *schema.TypeRef, fields []*language.Field, result any, path Path) any {
	if t.Kind == schema.TypeRefKindNonNull {
		completed := s.completeValue(ctx, t.OfType, fields, result, path)
		if isNullish(completed) {
			if !s.hasErrorAtPath(path) {
				s.addError(GraphQLError{
					Message: fmt.Sprintf("Cannot return null for non-nullable field %s", pathString(path)),
					Path:    path,
				})
			}
			return nil
		}
		return completed
	}

	if isNullish(result) {
		return nil
	}

	if t.Kind == schema.TypeRefKindList {
		return s.completeListValue(ctx, t.OfType, fields, result, path)
	}

	named := s.schema.Types[schema.GetNamedType(t)]
	if named == nil {
		s.addError(GraphQLError{Message: fmt.Sprintf("Unknown type: %s", schema.GetNamedType(t)), Path: path})
		return nil
	}

	switch named.Kind {
	case schema.TypeKindScalar:
		serialized, err := named.Scalar.Serialize(result)
		if err != nil {
			s.addError(GraphQLError{Message: err.Error(), Path: path})
			return nil
		}
		return serialized

	case schema.TypeKindEnum:
		name, ok := result.(string)
		if !ok || !named.HasEnumValue(name) {
			s.addError(GraphQLError{
				Message: fmt.Sprintf("value %v is not a member of enum %s", result, named.Name),
				Path:    path,
			})
			return nil
		}
		return name

	case schema.TypeKindObject:
		sub := mergeSelectionSets(fields)
		value := s.executeSelectionSet(ctx, named, sub, result, path)
		if value == nil {
			return nil
		}
		return value

	default:
		s.addError(GraphQLError{
			Message: fmt.Sprintf("Cannot complete value of unexpected type: %s", named.Name),
			Path:    path,
		})
		return nil
	}
}

// completeListValue completes each element of a resolved list. Any Go slice
// or array works as a list source. An element failing a non-null inner type
// nulls the whole list.
func (s *executionState) completeListValue(ctx context.Context, inner *schema.TypeRef, fields []*language.Field, result any, path Path) any {
	rv := reflect.ValueOf(result)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		s.addError(GraphQLError{Message: fmt.Sprintf("Expected list value, got %T", result), Path: path})
		return nil
	}
	out := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		item := rv.Index(i).Interface()
		completed := s.completeValue(ctx, inner, fields, item, appendPath(path, i))
		if isNullish(completed) && inner.Kind == schema.TypeRefKindNonNull {
			return nil
		}
		out[i] = completed
	}
	return out
}

// mergeSelectionSets concatenates the sub-selections of every field in a
// group so a child object is executed once with all requested fields.
func mergeSelectionSets(fields []*language.Field) language.SelectionSet {
	var merged language.SelectionSet
	for _, field := range fields {
		merged = append(merged, field.SelectionSet...)
	}
	return merged
}

// isNullish treats nil interfaces and typed nils (pointers, maps, slices)
// the same way, so a resolver returning (*T)(nil) completes as null.
func isNullish(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
