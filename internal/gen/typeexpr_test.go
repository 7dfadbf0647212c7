package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	language "github.com/hanpama/querygen/internal/language"
	"github.com/hanpama/querygen/internal/schema"
)

func typeExprBuilder(t *testing.T) *builder {
	t.Helper()
	s, err := schema.BuildFromSDL("test.graphql", `
		scalar DateTime

		enum PetKind { DOG CAT }

		input PetFilter { kind: PetKind }

		type Query { ok: Boolean }
	`)
	require.NoError(t, err)
	return &builder{schema: s, opts: Options{Scalars: map[string]string{"DateTime": "string"}}}
}

func TestResolveOutputTypeNullability(t *testing.T) {
	b := typeExprBuilder(t)

	str := schema.NamedType("String")
	cases := []struct {
		name string
		ref  *schema.TypeRef
		want string
	}{
		{"nullable scalar", str, "*string"},
		{"non-null scalar", schema.NonNullType(str), "string"},
		{"non-null list of non-null", schema.NonNullType(schema.ListType(schema.NonNullType(str))), "[]string"},
		{"nullable list of nullable", schema.ListType(str), "*[]*string"},
		{"non-null list of nullable", schema.NonNullType(schema.ListType(str)), "[]*string"},
		{"nullable list of non-null", schema.ListType(schema.NonNullType(str)), "*[]string"},
		{"nested lists", schema.ListType(schema.NonNullType(schema.ListType(schema.NonNullType(schema.NamedType("Int"))))), "*[][]int64"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expr, err := b.resolveOutputType(tc.ref, true, "", nil)
			require.NoError(t, err)
			require.Equal(t, tc.want, expr.String())
		})
	}
}

func TestResolveOutputTypeEnumAndOverwrite(t *testing.T) {
	b := typeExprBuilder(t)

	expr, err := b.resolveOutputType(schema.NonNullType(schema.NamedType("PetKind")), true, "", nil)
	require.NoError(t, err)
	require.Equal(t, "PetKind", expr.String())

	// The overwrite replaces the terminal name but keeps the wrapping.
	expr, err = b.resolveOutputType(schema.NonNullType(schema.ListType(schema.NamedType("PetKind"))), true, "GetPetPet", nil)
	require.NoError(t, err)
	require.Equal(t, "[]*GetPetPet", expr.String())
}

func TestResolveOutputTypeCustomScalar(t *testing.T) {
	b := typeExprBuilder(t)

	expr, err := b.resolveOutputType(schema.NamedType("DateTime"), true, "", nil)
	require.NoError(t, err)
	require.Equal(t, "*string", expr.String())

	b.opts.Scalars = nil
	_, err = b.resolveOutputType(schema.NamedType("DateTime"), true, "", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no Go type mapping")
}

func TestResolveVariableType(t *testing.T) {
	b := typeExprBuilder(t)

	cases := []struct {
		name string
		typ  *language.Type
		want string
	}{
		{"required scalar", language.NonNullType(language.NamedType("ID")), "string"},
		{"optional scalar", language.NamedType("Int"), "*int64"},
		{"input object", language.NonNullType(language.NamedType("PetFilter")), "PetFilter"},
		{"list of required enums", language.NonNullType(language.ListType(language.NonNullType(language.NamedType("PetKind")))), "[]PetKind"},
		{"optional list", language.ListType(language.NamedType("String")), "*[]*string"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expr, err := b.resolveVariableType(tc.typ, true)
			require.NoError(t, err)
			require.Equal(t, tc.want, expr.String())
		})
	}
}

func TestTypeExprIsPointer(t *testing.T) {
	require.True(t, pointerExpr(namedExpr("string")).IsPointer())
	require.False(t, sliceExpr(namedExpr("string")).IsPointer())
	require.False(t, namedExpr("string").IsPointer())
}
