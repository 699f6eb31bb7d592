// Package schema holds the executable type model the executor coerces and
// completes values against. The model is a closed set of kinds — scalar,
// enum, object, input object — plus List and NonNull wrappers expressed as
// TypeRef, so coercion can switch exhaustively over every case.
//
// A Schema is mutable while it is being assembled (builder methods, scalar
// registration) and must be treated as immutable once execution starts; the
// executor shares it read-only across concurrent requests.
package schema

// Schema is the complete executable schema.
type Schema struct {
	QueryType    string
	MutationType string
	Types        map[string]*Type // all named types keyed by name
	Description  string
}

// GetQueryType returns the root query type (may be nil if absent).
func (s *Schema) GetQueryType() *Type { return s.Types[s.QueryType] }

// GetMutationType returns the root mutation type (may be nil if absent).
func (s *Schema) GetMutationType() *Type { return s.Types[s.MutationType] }

// Type is a named type: object, scalar, enum, or input object.
type Type struct {
	Name        string
	Kind        TypeKind
	Description string
	Fields      []*Field      // for OBJECT, in declaration order
	EnumValues  []*EnumValue  // for ENUM
	InputFields []*InputValue // for INPUT_OBJECT, in declaration order
	Scalar      *ScalarDef    // for SCALAR
}

// Field looks up an output field by name.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// InputField looks up an input-object field by name.
func (t *Type) InputField(name string) *InputValue {
	for _, f := range t.InputFields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// HasEnumValue reports whether name is a declared member of the enum.
func (t *Type) HasEnumValue(name string) bool {
	for _, v := range t.EnumValues {
		if v.Name == name {
			return true
		}
	}
	return false
}

// Field represents a field on an object type.
type Field struct {
	Name              string
	Description       string
	Type              *TypeRef
	Arguments         []*InputValue // in declaration order
	IsDeprecated      bool
	DeprecationReason string
}

// Argument looks up a declared argument by name.
func (f *Field) Argument(name string) *InputValue {
	for _, a := range f.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// TypeKind represents the kind of a named type.
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// ParseFunc converts an external input value — a query literal reduced to a
// plain Go value, or a JSON-decoded variable value — into the scalar's
// internal representation. Returning an error rejects the input; the error
// text is surfaced to the client, so it should describe the value, not the
// implementation.
type ParseFunc func(value any) (any, error)

// SerializeFunc converts the scalar's internal representation into a
// JSON-safe response value.
type SerializeFunc func(value any) (any, error)

// ScalarDef carries the conversion functions supplied by the schema author.
// Parse and Serialize must both be non-nil and total over the shapes they
// accept; they are trusted but fallible.
type ScalarDef struct {
	Parse     ParseFunc
	Serialize SerializeFunc
}

// TypeRef references a type, possibly wrapped in List or NonNull.
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // for LIST and NON_NULL
	Named  string   // for NAMED
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == TypeRefKindNonNull
}

func (t *TypeRef) IsList() bool {
	if t == nil {
		return false
	}
	if t.Kind == TypeRefKindList {
		return true
	}
	return t.Kind == TypeRefKindNonNull && t.OfType != nil && t.OfType.Kind == TypeRefKindList
}

func (t *TypeRef) Unwrap() *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

func (t *TypeRef) GetNamedType() string {
	current := t
	for current != nil {
		if current.Named != "" {
			return current.Named
		}
		current = current.OfType
	}
	return ""
}

// String renders the reference in SDL notation, e.g. "[Int!]!".
func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypeRefKindNonNull:
		return t.OfType.String() + "!"
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	default:
		return t.Named
	}
}

// EnumValue is one symbolic member of an enum type.
type EnumValue struct {
	Name              string
	Description       string
	IsDeprecated      bool
	DeprecationReason string
}

// InputValue declares a field argument or an input-object field. Default is
// the declared default in structural form (a plain Go value); HasDefault
// distinguishes "no default" from an explicit null default.
type InputValue struct {
	Name              string
	Description       string
	Type              *TypeRef
	Default           any
	HasDefault        bool
	IsDeprecated      bool
	DeprecationReason string
}

// NonNullType wraps t in a NonNull reference. Wrapping an already non-null
// reference returns it unchanged; NonNull never nests.
func NonNullType(t *TypeRef) *TypeRef {
	if t != nil && t.Kind == TypeRefKindNonNull {
		return t
	}
	return &TypeRef{Kind: TypeRefKindNonNull, OfType: t}
}

func ListType(t *TypeRef) *TypeRef   { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }

// IsNonNull reports whether the type is wrapped with Non-Null.
func IsNonNull(t *TypeRef) bool { return t != nil && t.IsNonNull() }

// IsList reports whether the type is (or is wrapped by) a list type.
func IsList(t *TypeRef) bool { return t != nil && t.IsList() }

// Unwrap removes one layer of Non-Null or List wrapping and returns the inner type.
func Unwrap(t *TypeRef) *TypeRef { return t.Unwrap() }

// GetNamedType returns the innermost named type for the given reference.
func GetNamedType(t *TypeRef) string { return t.GetNamedType() }
