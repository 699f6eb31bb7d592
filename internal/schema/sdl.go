package schema

import (
	"fmt"
	"sort"
	"strconv"

	language "github.com/venkatd/absinthe/internal/language"
)

// BuildOption configures BuildFromSDL.
type BuildOption func(*buildConfig)

type buildConfig struct {
	scalars map[string]*ScalarDef
}

// WithScalar registers conversion functions for a scalar declared in the
// SDL. Scalars declared without a registration behave as passthrough.
func WithScalar(name string, parse ParseFunc, serialize SerializeFunc) BuildOption {
	return func(cfg *buildConfig) {
		cfg.scalars[name] = &ScalarDef{Parse: parse, Serialize: serialize}
	}
}

// BuildFromSDL parses an SDL document and returns the corresponding Schema.
// The builtin scalars are always available. Interface and union definitions
// are rejected; so are subscription roots.
func BuildFromSDL(sdl string, opts ...BuildOption) (*Schema, error) {
	cfg := &buildConfig{scalars: map[string]*ScalarDef{}}
	for _, opt := range opts {
		opt(cfg)
	}

	doc, err := language.ParseSchema("schema.graphql", sdl)
	if err != nil {
		return nil, err
	}

	s := NewSchema("")
	for _, t := range BuiltinTypes() {
		s.AddType(t)
	}

	for _, def := range doc.Definitions {
		switch def.Kind {
		case language.Object:
			s.AddType(buildObject(def))
		case language.Enum:
			s.AddType(buildEnum(def))
		case language.InputObject:
			s.AddType(buildInput(def))
		case language.Scalar:
			if IsBuiltin(def.Name) {
				return nil, fmt.Errorf("cannot redeclare builtin scalar %q", def.Name)
			}
			s.AddType(buildScalar(def, cfg))
		default:
			return nil, fmt.Errorf("unsupported definition kind %s for type %q", def.Kind, def.Name)
		}
	}

	for _, schemaDef := range doc.Schema {
		if schemaDef.Description != "" {
			s.Description = schemaDef.Description
		}
		for _, opType := range schemaDef.OperationTypes {
			switch opType.Operation {
			case language.Query:
				s.SetQueryType(opType.Type)
			case language.Mutation:
				s.SetMutationType(opType.Type)
			default:
				return nil, fmt.Errorf("%s roots are not supported", opType.Operation)
			}
		}
	}
	if len(doc.Schema) == 0 {
		if _, ok := s.Types["Query"]; ok {
			s.SetQueryType("Query")
		}
		if _, ok := s.Types["Mutation"]; ok {
			s.SetMutationType("Mutation")
		}
	}

	if err := validate(s); err != nil {
		return nil, err
	}
	return s, nil
}

func buildObject(def *language.Definition) *Type {
	t := NewType(def.Name, TypeKindObject, def.Description)
	for _, fd := range def.Fields {
		f := NewField(fd.Name, fd.Description, TypeRefFromAST(fd.Type))
		if reason, ok := deprecation(fd.Directives); ok {
			f.Deprecate(reason)
		}
		for _, ad := range fd.Arguments {
			iv := NewInputValue(ad.Name, ad.Description, TypeRefFromAST(ad.Type))
			if ad.DefaultValue != nil {
				iv.SetDefault(goValueFromLiteral(ad.DefaultValue))
			}
			f.AddArgument(iv)
		}
		t.AddField(f)
	}
	return t
}

func buildEnum(def *language.Definition) *Type {
	t := NewType(def.Name, TypeKindEnum, def.Description)
	for _, ev := range def.EnumValues {
		v := NewEnumValue(ev.Name, ev.Description)
		if reason, ok := deprecation(ev.Directives); ok {
			v.Deprecate(reason)
		}
		t.AddEnumValue(v)
	}
	return t
}

func buildInput(def *language.Definition) *Type {
	t := NewType(def.Name, TypeKindInputObject, def.Description)
	for _, fd := range def.Fields {
		iv := NewInputValue(fd.Name, fd.Description, TypeRefFromAST(fd.Type))
		if fd.DefaultValue != nil {
			iv.SetDefault(goValueFromLiteral(fd.DefaultValue))
		}
		if reason, ok := deprecation(fd.Directives); ok {
			iv.Deprecate(reason)
		}
		t.AddInputField(iv)
	}
	return t
}

func buildScalar(def *language.Definition, cfg *buildConfig) *Type {
	t := NewType(def.Name, TypeKindScalar, def.Description)
	if sd, ok := cfg.scalars[def.Name]; ok {
		t.Scalar = sd
	}
	return t
}

func deprecation(dirs language.DirectiveList) (string, bool) {
	for _, d := range dirs {
		if d.Name != "deprecated" {
			continue
		}
		for _, arg := range d.Arguments {
			if arg.Name == "reason" {
				return arg.Value.Raw, true
			}
		}
		return "", true
	}
	return "", false
}

// TypeRefFromAST converts a parsed type expression into a TypeRef.
func TypeRefFromAST(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		return NonNullType(TypeRefFromAST(&language.Type{NamedType: t.NamedType, Elem: t.Elem}))
	}
	if t.NamedType != "" {
		return NamedType(t.NamedType)
	}
	if t.Elem != nil {
		return ListType(TypeRefFromAST(t.Elem))
	}
	return nil
}

// goValueFromLiteral converts a constant SDL value into its structural form:
// int64, float64, string, bool, []any, map[string]any, or nil. Enum members
// become their member name.
func goValueFromLiteral(value *language.Value) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.IntValue:
		iv, _ := strconv.ParseInt(value.Raw, 10, 64)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.EnumValue:
		return value.Raw
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = goValueFromLiteral(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any)
		for _, f := range value.Children {
			m[f.Name] = goValueFromLiteral(f.Value)
		}
		return m
	default:
		return nil
	}
}

func validate(s *Schema) error {
	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := s.Types[name]
		switch t.Kind {
		case TypeKindObject:
			for _, f := range t.Fields {
				if err := checkRef(s, f.Type, t.Name, f.Name, false); err != nil {
					return err
				}
				for _, a := range f.Arguments {
					if err := checkRef(s, a.Type, t.Name, f.Name+"("+a.Name+":)", true); err != nil {
						return err
					}
				}
			}
		case TypeKindInputObject:
			for _, f := range t.InputFields {
				if err := checkRef(s, f.Type, t.Name, f.Name, true); err != nil {
					return err
				}
			}
		}
	}

	if s.QueryType != "" {
		root := s.Types[s.QueryType]
		if root == nil {
			return fmt.Errorf("query root %q is not defined", s.QueryType)
		}
		if root.Kind != TypeKindObject {
			return fmt.Errorf("query root %q must be an object type", s.QueryType)
		}
	}
	if s.MutationType != "" {
		root := s.Types[s.MutationType]
		if root == nil {
			return fmt.Errorf("mutation root %q is not defined", s.MutationType)
		}
		if root.Kind != TypeKindObject {
			return fmt.Errorf("mutation root %q must be an object type", s.MutationType)
		}
	}
	return nil
}

func checkRef(s *Schema, ref *TypeRef, owner, member string, wantInput bool) error {
	named := GetNamedType(ref)
	t, ok := s.Types[named]
	if !ok {
		return fmt.Errorf("undefined type %q referenced by %s.%s", named, owner, member)
	}
	if wantInput && t.Kind == TypeKindObject {
		return fmt.Errorf("object type %q cannot be used as an input for %s.%s", named, owner, member)
	}
	if !wantInput && t.Kind == TypeKindInputObject {
		return fmt.Errorf("input object %q cannot be used as an output for %s.%s", named, owner, member)
	}
	return nil
}
