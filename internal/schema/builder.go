package schema

// NewSchema creates an empty schema.
func NewSchema(description string) *Schema {
	return &Schema{
		Types:       map[string]*Type{},
		Description: description,
	}
}

func (s *Schema) SetQueryType(name string) *Schema {
	s.QueryType = name
	return s
}

func (s *Schema) SetMutationType(name string) *Schema {
	s.MutationType = name
	return s
}

// AddType registers a named type, replacing any previous type with the same name.
func (s *Schema) AddType(t *Type) *Schema {
	s.Types[t.Name] = t
	return s
}

// NewType creates a named type of the given kind. Scalar types start with
// passthrough conversion functions; use NewScalar to attach real ones.
func NewType(name string, kind TypeKind, description string) *Type {
	t := &Type{Name: name, Kind: kind, Description: description}
	if kind == TypeKindScalar {
		t.Scalar = passthroughScalar()
	}
	return t
}

// NewScalar creates a scalar type with the given conversion functions.
func NewScalar(name string, description string, parse ParseFunc, serialize SerializeFunc) *Type {
	t := NewType(name, TypeKindScalar, description)
	t.Scalar = &ScalarDef{Parse: parse, Serialize: serialize}
	return t
}

func (t *Type) AddField(f *Field) *Type {
	t.Fields = append(t.Fields, f)
	return t
}

func (t *Type) AddEnumValue(v *EnumValue) *Type {
	t.EnumValues = append(t.EnumValues, v)
	return t
}

func (t *Type) AddInputField(v *InputValue) *Type {
	t.InputFields = append(t.InputFields, v)
	return t
}

func NewField(name string, description string, typ *TypeRef) *Field {
	return &Field{Name: name, Description: description, Type: typ}
}

func (f *Field) AddArgument(a *InputValue) *Field {
	f.Arguments = append(f.Arguments, a)
	return f
}

func (f *Field) Deprecate(reason string) *Field {
	f.IsDeprecated = true
	f.DeprecationReason = reason
	return f
}

func NewInputValue(name string, description string, typ *TypeRef) *InputValue {
	return &InputValue{Name: name, Description: description, Type: typ}
}

// SetDefault declares a default in structural form: a plain Go value of the
// shape the coercer produces (int64, float64, string, bool, []any,
// map[string]any, or nil). An explicit nil default is distinct from no
// default at all.
func (v *InputValue) SetDefault(def any) *InputValue {
	v.Default = def
	v.HasDefault = true
	return v
}

func (v *InputValue) Deprecate(reason string) *InputValue {
	v.IsDeprecated = true
	v.DeprecationReason = reason
	return v
}

func NewEnumValue(name string, description string) *EnumValue {
	return &EnumValue{Name: name, Description: description}
}

func (e *EnumValue) Deprecate(reason string) *EnumValue {
	e.IsDeprecated = true
	e.DeprecationReason = reason
	return e
}

// passthroughScalar returns conversion functions that accept any value
// unchanged. Scalars declared without conversion functions behave as opaque
// JSON passthrough.
func passthroughScalar() *ScalarDef {
	identity := func(value any) (any, error) { return value, nil }
	return &ScalarDef{Parse: identity, Serialize: identity}
}
