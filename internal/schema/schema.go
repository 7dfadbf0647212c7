package schema

import language "github.com/hanpama/querygen/internal/language"

// Schema is the client-side view of a parsed GraphQL schema.
type Schema struct {
	QueryType        string
	MutationType     string
	SubscriptionType string
	Types            map[string]*Type // All named types keyed by name
	Description      string
}

// GetType returns the named type, or nil when the schema does not define it.
func (s *Schema) GetType(name string) *Type { return s.Types[name] }

// RootType returns the root object type for the given operation kind.
// It may be nil when the schema declares no such root.
func (s *Schema) RootType(op language.Operation) *Type {
	switch op {
	case language.Mutation:
		return s.Types[s.MutationType]
	case language.Subscription:
		return s.Types[s.SubscriptionType]
	default:
		return s.Types[s.QueryType]
	}
}

// Type is a named GraphQL type (object, interface, union, scalar, enum, input)
type Type struct {
	Name          string
	Kind          TypeKind
	Description   string
	Fields        []*Field      // For OBJECT and INTERFACE
	Interfaces    []string      // For OBJECT and INTERFACE
	PossibleTypes []string      // For INTERFACE and UNION
	EnumValues    []*EnumValue  // For ENUM
	InputFields   []*InputValue // For INPUT_OBJECT
}

// Field returns the field declaration with the given name, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// InputField returns the input field declaration with the given name, or nil.
func (t *Type) InputField(name string) *InputValue {
	for _, f := range t.InputFields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Field represents a field on an object or interface
type Field struct {
	Name        string
	Description string
	Type        *TypeRef
	Arguments   []*InputValue
}

// TypeKind represents the kind of GraphQL type
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// TypeRef represents a reference to a type (can be wrapped)
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // For List and NonNull
	Named  string   // For named types
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

// Unwrap removes one layer of Non-Null or List wrapping.
func (t *TypeRef) Unwrap() *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

// NamedType returns the innermost named type for the given reference.
func (t *TypeRef) NamedType() string {
	current := t
	for current != nil {
		if current.Named != "" {
			return current.Named
		}
		current = current.OfType
	}
	return ""
}

func (t *TypeRef) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypeRefKindNamed:
		return t.Named
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	case TypeRefKindNonNull:
		return t.OfType.String() + "!"
	default:
		return ""
	}
}

type EnumValue struct {
	Name        string
	Description string
}

type InputValue struct {
	Name         string
	Description  string
	Type         *TypeRef
	DefaultValue string // GraphQL literal, empty when absent
}

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(name string) *TypeRef  { return &TypeRef{Kind: TypeRefKindNamed, Named: name} }
