package executor

import (
	"fmt"
	"sort"
	"strings"
)

// FailureKind classifies an argument coercion failure.
type FailureKind string

const (
	FailureMissingRequiredVariable FailureKind = "MissingRequiredVariable"
	FailureValueRequired           FailureKind = "ValueRequired"
	FailureScalarCoercionFailed    FailureKind = "ScalarCoercionFailed"
	FailureInvalidEnumValue        FailureKind = "InvalidEnumValue"
	FailureShapeMismatch           FailureKind = "ShapeMismatch"
)

// CoercionFailure is one argument-level coercion failure. Path addresses the
// failing position relative to the field's argument list (argument name,
// list indices, input-object field names). Failures are plain values:
// collected and reported, never raised.
type CoercionFailure struct {
	Path   Path
	Kind   FailureKind
	Reason string
}

func (f CoercionFailure) String() string {
	if len(f.Path) == 0 {
		return f.Reason
	}
	return pathString(f.Path) + ": " + f.Reason
}

// fieldError merges a field's coercion failures into the single user-visible
// error reported for that field. The path locates the field in the response.
func fieldError(fieldName string, failures []CoercionFailure, path Path) GraphQLError {
	reasons := make([]string, len(failures))
	for i, f := range failures {
		reasons[i] = f.String()
	}
	return GraphQLError{
		Message: fmt.Sprintf("Field `%s': %s", fieldName, strings.Join(reasons, "; ")),
		Path:    path,
	}
}

// pathString renders a path as "contacts[1].email": names joined with dots,
// list indices in brackets.
func pathString(path Path) string {
	var b strings.Builder
	for i, elem := range path {
		switch v := elem.(type) {
		case string:
			if i > 0 {
				b.WriteString(".")
			}
			b.WriteString(v)
		case int:
			fmt.Fprintf(&b, "[%d]", v)
		}
	}
	return b.String()
}

// ArgumentMismatchError is the defensive error a resolver returns when an
// argument it requires is missing from the argument map — the coercer omits
// declared arguments the request never supplied rather than inventing null
// entries for them. The message renders the map the resolver did receive.
type ArgumentMismatchError struct {
	Args map[string]any
}

func (e *ArgumentMismatchError) Error() string {
	return fmt.Sprintf("Got %s instead", renderArgs(e.Args))
}

// renderArgs renders an argument map as %{key: value, ...} with sorted keys;
// an empty map renders as %{}.
func renderArgs(args map[string]any) string {
	if len(args) == 0 {
		return "%{}"
	}
	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %v", k, args[k]))
	}
	return "%{" + strings.Join(parts, ", ") + "}"
}
