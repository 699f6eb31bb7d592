package jsonrt

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/venkatd/absinthe/internal/executor"
)

// Runtime implements executor.Runtime over a JSON data tree. It backs the
// dev server: root fields resolve against the document's top-level object,
// nested fields against whatever map the parent field produced.
//
// Data contract:
//   - Sources are the map[string]any / []any / scalar shapes produced by
//     encoding/json. A missing key resolves to nil, which the executor
//     renders as GraphQL null (or propagates, for Non-Null fields).
//   - Arguments filter: a list value keeps the elements whose entries equal
//     every argument, an object value passes only when it matches them all,
//     and scalar values ignore arguments entirely. Numbers compare by value,
//     so a coerced Int argument matches the document's float64 form.
//   - The data's shape must match the field types; the executor reports any
//     mismatch during value completion.
type Runtime struct {
	root map[string]any
}

var _ executor.Runtime = (*Runtime)(nil)

func NewRuntime(root map[string]any) executor.Runtime {
	return &Runtime{root: root}
}

// Load reads a JSON document from path and returns its top-level object.
func Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse data file %s: %w", path, err)
	}
	return root, nil
}

// ResolveField looks the field up on its source map. Lookup is structural:
// the GraphQL type name plays no part, and no I/O happens here.
func (r *Runtime) ResolveField(ctx context.Context, objectType string, field string, source any, args map[string]any) (any, error) {
	_ = ctx
	_ = objectType

	m, ok := source.(map[string]any)
	if source == nil {
		m, ok = r.root, true
	}
	if !ok {
		return nil, nil
	}
	value, ok := m[field]
	if !ok {
		return nil, nil
	}
	if len(args) == 0 {
		return value, nil
	}
	return filterValue(value, args), nil
}

// filterValue applies the field's arguments to the looked-up value. Lists
// narrow to the matching elements, single objects pass or become nil, and
// anything else is returned unchanged.
func filterValue(value any, args map[string]any) any {
	switch v := value.(type) {
	case []any:
		out := make([]any, 0, len(v))
		for _, elem := range v {
			m, ok := elem.(map[string]any)
			if !ok {
				continue
			}
			if matches(m, args) {
				out = append(out, elem)
			}
		}
		return out
	case map[string]any:
		if matches(v, args) {
			return v
		}
		return nil
	default:
		return value
	}
}

func matches(m map[string]any, args map[string]any) bool {
	for name, want := range args {
		got, ok := m[name]
		if !ok || !looseEqual(got, want) {
			return false
		}
	}
	return true
}

// looseEqual compares a document value against a coerced argument. All
// numeric forms compare by value: encoding/json decodes numbers as float64
// while coercion produces int64 for Int.
func looseEqual(a, b any) bool {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok || bok {
		return aok && bok && af == bf
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
