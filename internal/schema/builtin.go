package schema

import (
	"fmt"
	"math"
	"strconv"
)

// Builtin scalar types. Parse accepts the plain Go shapes produced by query
// literals and JSON-decoded variables; cross-type coercion is rejected, so a
// string never parses as Int and a number never parses as String.

var IntType = &Type{
	Name:        "Int",
	Kind:        TypeKindScalar,
	Description: "The `Int` scalar type represents non-fractional signed whole numeric values.",
	Scalar:      &ScalarDef{Parse: parseInt, Serialize: serializeInt},
}

var FloatType = &Type{
	Name:        "Float",
	Kind:        TypeKindScalar,
	Description: "The `Float` scalar type represents signed double-precision fractional values.",
	Scalar:      &ScalarDef{Parse: parseFloat, Serialize: serializeFloat},
}

var StringType = &Type{
	Name:        "String",
	Kind:        TypeKindScalar,
	Description: "The `String` scalar type represents textual data, represented as UTF-8 character sequences.",
	Scalar:      &ScalarDef{Parse: parseString, Serialize: serializeString},
}

var BooleanType = &Type{
	Name:        "Boolean",
	Kind:        TypeKindScalar,
	Description: "The `Boolean` scalar type represents `true` or `false`.",
	Scalar:      &ScalarDef{Parse: parseBoolean, Serialize: serializeBoolean},
}

var IDType = &Type{
	Name:        "ID",
	Kind:        TypeKindScalar,
	Description: "The `ID` scalar type represents a unique identifier, often used to refetch an object or as a key for caching.",
	Scalar:      &ScalarDef{Parse: parseID, Serialize: serializeID},
}

// BuiltinTypes returns the five builtin scalars. BuildFromSDL registers them
// automatically; schemas assembled through the builder API add them as
// needed.
func BuiltinTypes() []*Type {
	return []*Type{IntType, FloatType, StringType, BooleanType, IDType}
}

// IsBuiltin reports whether name is one of the five builtin scalar names.
func IsBuiltin(name string) bool {
	switch name {
	case "Int", "Float", "String", "Boolean", "ID":
		return true
	}
	return false
}

func parseInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return intInRange(int64(v))
	case int32:
		return int64(v), nil
	case int64:
		return intInRange(v)
	case float64:
		if math.Trunc(v) != v {
			return nil, fmt.Errorf("cannot coerce %v (%T) to Int", value, value)
		}
		return intInRange(int64(v))
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to Int", value, value)
}

func intInRange(v int64) (any, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return nil, fmt.Errorf("cannot coerce %v to Int: out of range", v)
	}
	return v, nil
}

func serializeInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if math.Trunc(v) == v {
			return int64(v), nil
		}
	}
	return nil, fmt.Errorf("cannot serialize %v (%T) as Int", value, value)
}

func parseFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to Float", value, value)
}

func serializeFloat(value any) (any, error) {
	return parseFloat(value)
}

func parseString(value any) (any, error) {
	if v, ok := value.(string); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to String", value, value)
}

func serializeString(value any) (any, error) {
	if v, ok := value.(string); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot serialize %v (%T) as String", value, value)
}

func parseBoolean(value any) (any, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to Boolean", value, value)
}

func serializeBoolean(value any) (any, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot serialize %v (%T) as Boolean", value, value)
}

// ID accepts strings and whole numbers; numbers normalize to their decimal
// string form.
func parseID(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		if math.Trunc(v) == v {
			return strconv.FormatInt(int64(v), 10), nil
		}
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to ID", value, value)
}

func serializeID(value any) (any, error) {
	if v, err := parseID(value); err == nil {
		return v, nil
	}
	return nil, fmt.Errorf("cannot serialize %v (%T) as ID", value, value)
}
