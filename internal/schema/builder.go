package schema

import (
	"fmt"
	"sort"

	language "github.com/hanpama/querygen/internal/language"
)

// BuildFromSDL parses an SDL document and builds the client-side Schema.
// The schema is assumed valid; this performs no validation beyond parsing.
func BuildFromSDL(name, sdl string) (*Schema, error) {
	doc, err := language.ParseSchema(name, sdl)
	if err != nil {
		return nil, fmt.Errorf("parse schema %s: %w", name, err)
	}

	s := &Schema{Types: make(map[string]*Type)}
	for scalarName, scalar := range builtinScalars {
		s.Types[scalarName] = scalar
	}

	defs := append(language.DefinitionList{}, doc.Definitions...)
	defs = append(defs, doc.Extensions...)
	for _, def := range defs {
		if existing := s.Types[def.Name]; existing != nil && builtinScalars[def.Name] == nil {
			mergeDefinition(existing, def)
			continue
		}
		s.Types[def.Name] = buildType(def)
	}

	// Interface possible types are derived from the object side.
	populatePossibleTypes(s)

	s.QueryType = pickRootType(s, "Query")
	s.MutationType = pickRootType(s, "Mutation")
	s.SubscriptionType = pickRootType(s, "Subscription")
	schemaDefs := append(doc.Schema, doc.SchemaExtension...)
	for _, sd := range schemaDefs {
		s.Description = sd.Description
		for _, opType := range sd.OperationTypes {
			switch opType.Operation {
			case language.Query:
				s.QueryType = opType.Type
			case language.Mutation:
				s.MutationType = opType.Type
			case language.Subscription:
				s.SubscriptionType = opType.Type
			}
		}
	}
	return s, nil
}

func buildType(def *language.Definition) *Type {
	t := &Type{
		Name:        def.Name,
		Kind:        buildKind(def.Kind),
		Description: def.Description,
	}
	mergeDefinition(t, def)
	return t
}

func mergeDefinition(t *Type, def *language.Definition) {
	t.Interfaces = append(t.Interfaces, def.Interfaces...)
	switch def.Kind {
	case language.Object, language.Interface:
		for _, fd := range def.Fields {
			t.Fields = append(t.Fields, buildField(fd))
		}
	case language.InputObject:
		for _, fd := range def.Fields {
			t.InputFields = append(t.InputFields, &InputValue{
				Name:         fd.Name,
				Description:  fd.Description,
				Type:         buildTypeRef(fd.Type),
				DefaultValue: buildDefault(fd.DefaultValue),
			})
		}
	case language.Enum:
		for _, ev := range def.EnumValues {
			t.EnumValues = append(t.EnumValues, &EnumValue{
				Name:        ev.Name,
				Description: ev.Description,
			})
		}
	case language.Union:
		t.PossibleTypes = append(t.PossibleTypes, def.Types...)
	}
}

func buildField(fd *language.FieldDefinition) *Field {
	f := &Field{
		Name:        fd.Name,
		Description: fd.Description,
		Type:        buildTypeRef(fd.Type),
	}
	for _, arg := range fd.Arguments {
		f.Arguments = append(f.Arguments, &InputValue{
			Name:         arg.Name,
			Description:  arg.Description,
			Type:         buildTypeRef(arg.Type),
			DefaultValue: buildDefault(arg.DefaultValue),
		})
	}
	return f
}

func buildKind(kind language.DefinitionKind) TypeKind {
	switch kind {
	case language.Object:
		return TypeKindObject
	case language.Interface:
		return TypeKindInterface
	case language.Union:
		return TypeKindUnion
	case language.Enum:
		return TypeKindEnum
	case language.InputObject:
		return TypeKindInputObject
	default:
		return TypeKindScalar
	}
}

// buildTypeRef converts the parser's type node, where non-null is a flag on
// the node, into the wrapper representation used everywhere else.
func buildTypeRef(t *language.Type) *TypeRef {
	if t == nil {
		return nil
	}
	if t.NonNull {
		inner := *t
		inner.NonNull = false
		return NonNullType(buildTypeRef(&inner))
	}
	if t.Elem != nil {
		return ListType(buildTypeRef(t.Elem))
	}
	return NamedType(t.NamedType)
}

func buildDefault(v *language.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func populatePossibleTypes(s *Schema) {
	for _, t := range s.Types {
		if t.Kind != TypeKindObject {
			continue
		}
		for _, ifaceName := range t.Interfaces {
			iface := s.Types[ifaceName]
			if iface == nil || iface.Kind != TypeKindInterface {
				continue
			}
			iface.PossibleTypes = append(iface.PossibleTypes, t.Name)
		}
	}
	for _, t := range s.Types {
		if t.Kind == TypeKindInterface {
			sort.Strings(t.PossibleTypes)
		}
	}
}

func pickRootType(s *Schema, name string) string {
	if t := s.Types[name]; t != nil && t.Kind == TypeKindObject {
		return name
	}
	return ""
}
