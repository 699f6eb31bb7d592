package executor

import (
	"fmt"

	language "github.com/venkatd/absinthe/internal/language"
	schema "github.com/venkatd/absinthe/internal/schema"
)

// coerceArgumentValues coerces one field's supplied arguments against its
// declared argument definitions. It returns the argument map handed to the
// resolver plus every coercion failure, which the caller merges into a
// single field error.
//
// The loop walks declared arguments in declaration order. A declared
// argument the request never supplied takes its default when one is
// declared; otherwise the key is omitted from the map — even for Non-Null
// argument types. Required-key presence for literal-omitted arguments is a
// query-validation concern, and resolvers defend with ArgumentMismatchError;
// non-null enforcement here applies to every position a value was actually
// supplied for (explicit nulls, unsupplied required variables, and missing
// required input-object fields inside a supplied object all fail).
// Arguments supplied in the query but not declared on the field are ignored.
func coerceArgumentValues(
	sch *schema.Schema,
	fieldDef *schema.Field,
	arguments language.ArgumentList,
	vars *variableResolver,
) (map[string]any, []CoercionFailure) {
	supplied := make(map[string]RawValue, len(arguments))
	for _, arg := range arguments {
		if fieldDef.Argument(arg.Name) == nil {
			continue
		}
		supplied[arg.Name] = normalizeValue(arg.Value)
	}

	coerced := make(map[string]any)
	var failures []CoercionFailure
	for _, argDef := range fieldDef.Arguments {
		raw, ok := supplied[argDef.Name]
		if !ok {
			if argDef.HasDefault {
				coerced[argDef.Name] = argDef.Default
			}
			continue
		}
		value, present, fs := coerceRaw(sch, argDef.Type, raw, vars, Path{argDef.Name})
		if len(fs) > 0 {
			failures = append(failures, fs...)
			continue
		}
		if !present {
			// The supplied value resolved to nothing (an unsupplied nullable
			// variable): the position is absent, so the default still applies.
			if argDef.HasDefault {
				coerced[argDef.Name] = argDef.Default
			}
			continue
		}
		coerced[argDef.Name] = value
	}
	return coerced, failures
}

// variableResolver resolves variable references lazily at their use sites,
// so each reference coerces against the expected type of the position where
// it appears rather than a single up-front pass.
type variableResolver struct {
	definitions language.VariableDefinitionList
	values      map[string]any
}

func newVariableResolver(definitions language.VariableDefinitionList, values map[string]any) *variableResolver {
	return &variableResolver{definitions: definitions, values: values}
}

// lookup returns the externally supplied value for a variable, un-coerced.
func (r *variableResolver) lookup(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// resolve produces the coerced value for a variable reference against the
// contextual expected type t. present is false when the variable was neither
// supplied nor defaulted: the position is then absent, which the caller
// treats like an unsupplied literal.
func (r *variableResolver) resolve(sch *schema.Schema, name string, t *schema.TypeRef, path Path) (any, bool, []CoercionFailure) {
	def := r.definitions.ForName(name)
	if def == nil {
		if schema.IsNonNull(t) {
			return nil, false, []CoercionFailure{{
				Path:   path,
				Kind:   FailureMissingRequiredVariable,
				Reason: fmt.Sprintf("variable $%s is not declared by the operation", name),
			}}
		}
		return nil, false, nil
	}
	if value, ok := r.values[name]; ok {
		if value == nil && schema.IsNonNull(t) {
			return nil, false, []CoercionFailure{{
				Path:   path,
				Kind:   FailureValueRequired,
				Reason: fmt.Sprintf("variable $%s of non-null type %s must not be null", name, t.String()),
			}}
		}
		value, fs := coerceInput(sch, t, value, path)
		return value, true, fs
	}
	if def.DefaultValue != nil {
		return coerceRaw(sch, t, normalizeValue(def.DefaultValue), r, path)
	}
	if schema.IsNonNull(t) {
		return nil, false, []CoercionFailure{{
			Path:   path,
			Kind:   FailureMissingRequiredVariable,
			Reason: fmt.Sprintf("variable $%s of required type %s was not provided", name, t.String()),
		}}
	}
	return nil, false, nil
}

// coerceRaw coerces a normalized query literal against t. This is the
// syntactic input path: enum members must be bare words, quoted strings do
// not coerce to enums, and variable references resolve here against t.
//
// present reports whether the position produced a value at all: explicit
// null is a value, an unsupplied nullable variable is not. When failures are
// returned the other results are meaningless.
func coerceRaw(sch *schema.Schema, t *schema.TypeRef, raw RawValue, vars *variableResolver, path Path) (any, bool, []CoercionFailure) {
	if v, ok := raw.(rawVariable); ok {
		return vars.resolve(sch, v.name, t, path)
	}
	if _, ok := raw.(rawAbsent); ok {
		if schema.IsNonNull(t) {
			return nil, false, []CoercionFailure{{Path: path, Kind: FailureValueRequired, Reason: "no value provided"}}
		}
		return nil, false, nil
	}

	if schema.IsNonNull(t) {
		if _, ok := raw.(rawNull); ok {
			return nil, false, []CoercionFailure{{
				Path:   path,
				Kind:   FailureValueRequired,
				Reason: fmt.Sprintf("null provided for non-null type %s", t.String()),
			}}
		}
		return coerceRaw(sch, schema.Unwrap(t), raw, vars, path)
	}

	if _, ok := raw.(rawNull); ok {
		return nil, true, nil
	}

	if schema.IsList(t) {
		list, ok := raw.(rawList)
		if !ok {
			// A single value never promotes to a one-element list.
			return nil, false, []CoercionFailure{{
				Path:   path,
				Kind:   FailureShapeMismatch,
				Reason: fmt.Sprintf("expected a list for type %s, got %s", t.String(), describeRaw(raw)),
			}}
		}
		inner := schema.Unwrap(t)
		out := make([]any, len(list.items))
		var failures []CoercionFailure
		for i, item := range list.items {
			v, present, fs := coerceRaw(sch, inner, item, vars, appendPath(path, i))
			if len(fs) > 0 {
				failures = append(failures, fs...)
				continue
			}
			if !present {
				out[i] = nil
				continue
			}
			out[i] = v
		}
		if len(failures) > 0 {
			return nil, false, failures
		}
		return out, true, nil
	}

	named := sch.Types[schema.GetNamedType(t)]
	if named == nil {
		return nil, false, []CoercionFailure{{
			Path:   path,
			Kind:   FailureShapeMismatch,
			Reason: fmt.Sprintf("unknown type %s", schema.GetNamedType(t)),
		}}
	}

	switch named.Kind {
	case schema.TypeKindScalar:
		plain, ok := scalarLiteral(raw, vars)
		if !ok {
			return nil, false, []CoercionFailure{{
				Path:   path,
				Kind:   FailureShapeMismatch,
				Reason: fmt.Sprintf("expected %s value, got %s", named.Name, describeRaw(raw)),
			}}
		}
		parsed, err := named.Scalar.Parse(plain)
		if err != nil {
			return nil, false, []CoercionFailure{{Path: path, Kind: FailureScalarCoercionFailed, Reason: err.Error()}}
		}
		return parsed, true, nil

	case schema.TypeKindEnum:
		word, ok := raw.(rawEnum)
		if !ok {
			return nil, false, []CoercionFailure{{
				Path:   path,
				Kind:   FailureInvalidEnumValue,
				Reason: fmt.Sprintf("expected a member of enum %s, got %s", named.Name, describeRaw(raw)),
			}}
		}
		if !named.HasEnumValue(word.name) {
			return nil, false, []CoercionFailure{{
				Path:   path,
				Kind:   FailureInvalidEnumValue,
				Reason: fmt.Sprintf("%s is not a member of enum %s", word.name, named.Name),
			}}
		}
		return word.name, true, nil

	case schema.TypeKindInputObject:
		obj, ok := raw.(rawObject)
		if !ok {
			return nil, false, []CoercionFailure{{
				Path:   path,
				Kind:   FailureShapeMismatch,
				Reason: fmt.Sprintf("expected an object for input %s, got %s", named.Name, describeRaw(raw)),
			}}
		}
		out := make(map[string]any, len(named.InputFields))
		var failures []CoercionFailure
		for _, fieldDef := range named.InputFields {
			fieldPath := appendPath(path, fieldDef.Name)
			fraw, suppliedField := obj.fields[fieldDef.Name]
			if !suppliedField {
				if fieldDef.HasDefault {
					out[fieldDef.Name] = fieldDef.Default
					continue
				}
				if schema.IsNonNull(fieldDef.Type) {
					failures = append(failures, CoercionFailure{
						Path:   fieldPath,
						Kind:   FailureValueRequired,
						Reason: fmt.Sprintf("required field '%s' was not provided", fieldDef.Name),
					})
				}
				continue
			}
			v, present, fs := coerceRaw(sch, fieldDef.Type, fraw, vars, fieldPath)
			if len(fs) > 0 {
				failures = append(failures, fs...)
				continue
			}
			if !present {
				if fieldDef.HasDefault {
					out[fieldDef.Name] = fieldDef.Default
				}
				continue
			}
			out[fieldDef.Name] = v
		}
		// Keys in the literal that name no declared field are dropped.
		if len(failures) > 0 {
			return nil, false, failures
		}
		return out, true, nil

	default:
		return nil, false, []CoercionFailure{{
			Path:   path,
			Kind:   FailureShapeMismatch,
			Reason: fmt.Sprintf("type %s cannot be used as an input", named.Name),
		}}
	}
}

// coerceInput coerces a JSON-shaped value against t. This is the structural
// input path variables take after decoding: enum members arrive as plain
// strings, numbers as float64, objects as map[string]any. It applies the
// same rules as coerceRaw — no singleton-list promotion, defaults only for
// missing keys, unknown keys dropped, per-position failure collection.
func coerceInput(sch *schema.Schema, t *schema.TypeRef, value any, path Path) (any, []CoercionFailure) {
	if schema.IsNonNull(t) {
		if value == nil {
			return nil, []CoercionFailure{{
				Path:   path,
				Kind:   FailureValueRequired,
				Reason: fmt.Sprintf("null provided for non-null type %s", t.String()),
			}}
		}
		return coerceInput(sch, schema.Unwrap(t), value, path)
	}
	if value == nil {
		return nil, nil
	}

	if schema.IsList(t) {
		items, ok := value.([]any)
		if !ok {
			return nil, []CoercionFailure{{
				Path:   path,
				Kind:   FailureShapeMismatch,
				Reason: fmt.Sprintf("expected a list for type %s, got %T", t.String(), value),
			}}
		}
		inner := schema.Unwrap(t)
		out := make([]any, len(items))
		var failures []CoercionFailure
		for i, item := range items {
			v, fs := coerceInput(sch, inner, item, appendPath(path, i))
			if len(fs) > 0 {
				failures = append(failures, fs...)
				continue
			}
			out[i] = v
		}
		if len(failures) > 0 {
			return nil, failures
		}
		return out, nil
	}

	named := sch.Types[schema.GetNamedType(t)]
	if named == nil {
		return nil, []CoercionFailure{{
			Path:   path,
			Kind:   FailureShapeMismatch,
			Reason: fmt.Sprintf("unknown type %s", schema.GetNamedType(t)),
		}}
	}

	switch named.Kind {
	case schema.TypeKindScalar:
		parsed, err := named.Scalar.Parse(value)
		if err != nil {
			return nil, []CoercionFailure{{Path: path, Kind: FailureScalarCoercionFailed, Reason: err.Error()}}
		}
		return parsed, nil

	case schema.TypeKindEnum:
		name, ok := value.(string)
		if !ok {
			return nil, []CoercionFailure{{
				Path:   path,
				Kind:   FailureInvalidEnumValue,
				Reason: fmt.Sprintf("expected a member of enum %s, got %v (%T)", named.Name, value, value),
			}}
		}
		if !named.HasEnumValue(name) {
			return nil, []CoercionFailure{{
				Path:   path,
				Kind:   FailureInvalidEnumValue,
				Reason: fmt.Sprintf("%s is not a member of enum %s", name, named.Name),
			}}
		}
		return name, nil

	case schema.TypeKindInputObject:
		m, ok := value.(map[string]any)
		if !ok {
			return nil, []CoercionFailure{{
				Path:   path,
				Kind:   FailureShapeMismatch,
				Reason: fmt.Sprintf("expected an object for input %s, got %T", named.Name, value),
			}}
		}
		out := make(map[string]any, len(named.InputFields))
		var failures []CoercionFailure
		for _, fieldDef := range named.InputFields {
			fieldPath := appendPath(path, fieldDef.Name)
			fv, suppliedField := m[fieldDef.Name]
			if !suppliedField {
				if fieldDef.HasDefault {
					out[fieldDef.Name] = fieldDef.Default
					continue
				}
				if schema.IsNonNull(fieldDef.Type) {
					failures = append(failures, CoercionFailure{
						Path:   fieldPath,
						Kind:   FailureValueRequired,
						Reason: fmt.Sprintf("required field '%s' was not provided", fieldDef.Name),
					})
				}
				continue
			}
			v, fs := coerceInput(sch, fieldDef.Type, fv, fieldPath)
			if len(fs) > 0 {
				failures = append(failures, fs...)
				continue
			}
			out[fieldDef.Name] = v
		}
		if len(failures) > 0 {
			return nil, failures
		}
		return out, nil

	default:
		return nil, []CoercionFailure{{
			Path:   path,
			Kind:   FailureShapeMismatch,
			Reason: fmt.Sprintf("type %s cannot be used as an input", named.Name),
		}}
	}
}

// scalarLiteral reduces a literal to the plain Go value handed to a scalar's
// Parse function: int64, float64, string, bool, nil, []any or
// map[string]any. Bare enum words do not reduce — a word targeting a scalar
// type is a shape mismatch, reported by the caller. Variables nested inside
// a complex scalar literal pass through un-coerced; the scalar owns their
// interpretation.
func scalarLiteral(raw RawValue, vars *variableResolver) (any, bool) {
	switch r := raw.(type) {
	case rawInt:
		return r.value, true
	case rawFloat:
		return r.value, true
	case rawString:
		return r.value, true
	case rawBool:
		return r.value, true
	case rawNull:
		return nil, true
	case rawVariable:
		v, _ := vars.lookup(r.name)
		return v, true
	case rawList:
		items := make([]any, len(r.items))
		for i, item := range r.items {
			v, ok := scalarLiteral(item, vars)
			if !ok {
				return nil, false
			}
			items[i] = v
		}
		return items, true
	case rawObject:
		m := make(map[string]any, len(r.fields))
		for k, v := range r.fields {
			pv, ok := scalarLiteral(v, vars)
			if !ok {
				return nil, false
			}
			m[k] = pv
		}
		return m, true
	default:
		return nil, false
	}
}
