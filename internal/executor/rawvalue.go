package executor

import (
	"strconv"

	language "github.com/venkatd/absinthe/internal/language"
)

// RawValue is the pre-coercion representation of an argument value: the
// parser's literal shapes reduced to a closed set of cases the coercer can
// switch over exhaustively. Variable references stay references — they are
// resolved during coercion, where the expected type at the reference's
// nesting level is known. rawAbsent marks a position the query never
// supplied, which is distinct from an explicit null literal.
type RawValue interface{ isRawValue() }

type (
	rawInt      struct{ value int64 }
	rawFloat    struct{ value float64 }
	rawString   struct{ value string }
	rawBool     struct{ value bool }
	rawEnum     struct{ name string }
	rawNull     struct{}
	rawAbsent   struct{}
	rawVariable struct{ name string }
	rawList     struct{ items []RawValue }
	rawObject   struct{ fields map[string]RawValue }
)

func (rawInt) isRawValue()      {}
func (rawFloat) isRawValue()    {}
func (rawString) isRawValue()   {}
func (rawBool) isRawValue()     {}
func (rawEnum) isRawValue()     {}
func (rawNull) isRawValue()     {}
func (rawAbsent) isRawValue()   {}
func (rawVariable) isRawValue() {}
func (rawList) isRawValue()     {}
func (rawObject) isRawValue()   {}

// normalizeValue translates a parsed literal into its RawValue form. Pure,
// structural translation: no variable resolution, no type checking.
func normalizeValue(value *language.Value) RawValue {
	if value == nil {
		return rawAbsent{}
	}
	switch value.Kind {
	case language.Variable:
		return rawVariable{name: value.Raw}
	case language.IntValue:
		iv, _ := strconv.ParseInt(value.Raw, 10, 64)
		return rawInt{value: iv}
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return rawFloat{value: fv}
	case language.StringValue, language.BlockValue:
		return rawString{value: value.Raw}
	case language.BooleanValue:
		return rawBool{value: value.Raw == "true"}
	case language.NullValue:
		return rawNull{}
	case language.EnumValue:
		return rawEnum{name: value.Raw}
	case language.ListValue:
		items := make([]RawValue, len(value.Children))
		for i, c := range value.Children {
			items[i] = normalizeValue(c.Value)
		}
		return rawList{items: items}
	case language.ObjectValue:
		fields := make(map[string]RawValue, len(value.Children))
		for _, c := range value.Children {
			fields[c.Name] = normalizeValue(c.Value)
		}
		return rawObject{fields: fields}
	default:
		return rawNull{}
	}
}

// describeRaw renders a RawValue for error messages.
func describeRaw(raw RawValue) string {
	switch r := raw.(type) {
	case rawInt:
		return strconv.FormatInt(r.value, 10)
	case rawFloat:
		return strconv.FormatFloat(r.value, 'g', -1, 64)
	case rawString:
		return strconv.Quote(r.value)
	case rawBool:
		return strconv.FormatBool(r.value)
	case rawEnum:
		return "enum value " + r.name
	case rawNull:
		return "null"
	case rawList:
		return "a list"
	case rawObject:
		return "an object"
	case rawVariable:
		return "$" + r.name
	default:
		return "no value"
	}
}
