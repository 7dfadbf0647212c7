package gen

import (
	language "github.com/hanpama/querygen/internal/language"
	"github.com/hanpama/querygen/internal/refs"
	"github.com/hanpama/querygen/internal/schema"
)

// TypeExpr is a symbolic Go type expression mirroring GraphQL nullability
// and list semantics: nullable positions become pointers, lists become
// slices. It stays symbolic until rendering so that a terminal name may be a
// forward reference to a type emitted later in the file.
type TypeExpr struct {
	Kind   TypeExprKind
	OfType *TypeExpr // For Pointer and Slice
	Name   string    // For Named
}

type TypeExprKind string

const (
	TypeExprKindNamed   TypeExprKind = "NAMED"
	TypeExprKindPointer TypeExprKind = "POINTER"
	TypeExprKindSlice   TypeExprKind = "SLICE"
)

func namedExpr(name string) *TypeExpr {
	return &TypeExpr{Kind: TypeExprKindNamed, Name: name}
}

func pointerExpr(of *TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: TypeExprKindPointer, OfType: of}
}

func sliceExpr(of *TypeExpr) *TypeExpr {
	return &TypeExpr{Kind: TypeExprKindSlice, OfType: of}
}

func (t *TypeExpr) String() string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case TypeExprKindNamed:
		return t.Name
	case TypeExprKindPointer:
		return "*" + t.OfType.String()
	case TypeExprKindSlice:
		return "[]" + t.OfType.String()
	default:
		return ""
	}
}

// IsPointer reports whether the expression's outermost layer is a pointer.
func (t *TypeExpr) IsPointer() bool {
	return t != nil && t.Kind == TypeExprKindPointer
}

// resolveOutputType converts a schema type reference into a Go type
// expression. The nullability flag starts true, flips to false directly
// under a NonNull wrapper and resets to true when descending into a list's
// element type; wrapping inverts the unwrap order as the recursion unwinds.
//
// When overwriteFinal is non-empty, the terminal named type is replaced with
// that name. This is how collapse decisions forward to a fragment's type or
// substitute a freshly synthesized nested type; the name is symbolic and may
// be defined later in emission order. Without an overwrite, only scalars and
// enums are legal terminals in output position.
func (b *builder) resolveOutputType(t *schema.TypeRef, nullable bool, overwriteFinal string, pos *language.Position) (*TypeExpr, error) {
	switch t.Kind {
	case schema.TypeRefKindNonNull:
		return b.resolveOutputType(t.OfType, false, overwriteFinal, pos)
	case schema.TypeRefKindList:
		elem, err := b.resolveOutputType(t.OfType, true, overwriteFinal, pos)
		if err != nil {
			return nil, err
		}
		return wrapNullable(sliceExpr(elem), nullable), nil
	}

	if overwriteFinal != "" {
		return wrapNullable(namedExpr(overwriteFinal), nullable), nil
	}
	def := b.schema.GetType(t.Named)
	if def == nil {
		return nil, &refs.UnknownTypeError{TypeName: t.Named, Pos: pos}
	}
	switch def.Kind {
	case schema.TypeKindScalar:
		goType, err := b.scalarGoType(def.Name, pos)
		if err != nil {
			return nil, err
		}
		return wrapNullable(namedExpr(goType), nullable), nil
	case schema.TypeKindEnum:
		return wrapNullable(namedExpr(styleTypeName(def.Name)), nullable), nil
	case schema.TypeKindInputObject:
		return wrapNullable(namedExpr(styleTypeName(def.Name)), nullable), nil
	default:
		return nil, &refs.UnknownTypeError{TypeName: def.Name, Pos: pos}
	}
}

// resolveVariableType converts a variable declaration's AST type into a Go
// type expression. Same nullability semantics as resolveOutputType; only
// scalars, enums and input objects are legal terminals here.
func (b *builder) resolveVariableType(t *language.Type, nullable bool) (*TypeExpr, error) {
	if t.NonNull {
		inner := *t
		inner.NonNull = false
		return b.resolveVariableType(&inner, false)
	}
	if t.Elem != nil {
		elem, err := b.resolveVariableType(t.Elem, true)
		if err != nil {
			return nil, err
		}
		return wrapNullable(sliceExpr(elem), nullable), nil
	}

	def := b.schema.GetType(t.NamedType)
	if def == nil {
		return nil, &refs.UnknownTypeError{TypeName: t.NamedType, Pos: t.Position}
	}
	switch def.Kind {
	case schema.TypeKindScalar:
		goType, err := b.scalarGoType(def.Name, t.Position)
		if err != nil {
			return nil, err
		}
		return wrapNullable(namedExpr(goType), nullable), nil
	case schema.TypeKindEnum, schema.TypeKindInputObject:
		return wrapNullable(namedExpr(styleTypeName(def.Name)), nullable), nil
	default:
		return nil, &refs.UnknownTypeError{TypeName: def.Name, Pos: t.Position}
	}
}

func wrapNullable(t *TypeExpr, nullable bool) *TypeExpr {
	if nullable {
		return pointerExpr(t)
	}
	return t
}
