package schema

import (
	"testing"

	"github.com/stretchr/testify/require"

	language "github.com/hanpama/querygen/internal/language"
)

const testSDL = `
"A point in time."
scalar DateTime

enum PetKind {
  DOG
  CAT
}

interface Node {
  id: ID!
}

type Pet implements Node {
  id: ID!
  name: String!
  kind: PetKind!
  friends: [Pet!]
}

type Owner implements Node {
  id: ID!
  pets: [Pet!]!
}

union SearchResult = Pet | Owner

input PetFilter {
  kind: PetKind
  limit: Int = 10
}

type Query {
  pet(id: ID!): Pet
}

type Mutation {
  renamePet(id: ID!, name: String!): Pet!
}
`

func build(t *testing.T, sdl string) *Schema {
	t.Helper()
	s, err := BuildFromSDL("test.graphql", sdl)
	require.NoError(t, err)
	return s
}

func TestBuildRootTypes(t *testing.T) {
	s := build(t, testSDL)

	require.Equal(t, "Query", s.QueryType)
	require.Equal(t, "Mutation", s.MutationType)
	require.Empty(t, s.SubscriptionType)

	require.Equal(t, "Query", s.RootType(language.Query).Name)
	require.Equal(t, "Mutation", s.RootType(language.Mutation).Name)
	require.Nil(t, s.RootType(language.Subscription))
}

func TestBuildSchemaBlockOverridesRoots(t *testing.T) {
	s := build(t, `
		schema {
			query: Root
		}
		type Root {
			ok: Boolean
		}
	`)
	require.Equal(t, "Root", s.QueryType)
	require.NotNil(t, s.RootType(language.Query))
}

func TestBuildTypeKinds(t *testing.T) {
	s := build(t, testSDL)

	require.Equal(t, TypeKindObject, s.GetType("Pet").Kind)
	require.Equal(t, TypeKindInterface, s.GetType("Node").Kind)
	require.Equal(t, TypeKindUnion, s.GetType("SearchResult").Kind)
	require.Equal(t, TypeKindEnum, s.GetType("PetKind").Kind)
	require.Equal(t, TypeKindInputObject, s.GetType("PetFilter").Kind)
	require.Equal(t, TypeKindScalar, s.GetType("DateTime").Kind)
	require.Nil(t, s.GetType("Dinosaur"))
}

func TestBuiltinScalarsSeeded(t *testing.T) {
	s := build(t, `type Query { ok: Boolean }`)
	for _, name := range []string{"Int", "Float", "String", "Boolean", "ID"} {
		st := s.GetType(name)
		require.NotNil(t, st, "missing builtin scalar %s", name)
		require.Equal(t, TypeKindScalar, st.Kind)
	}
}

func TestBuildTypeRefWrapping(t *testing.T) {
	s := build(t, testSDL)

	pet := s.GetType("Pet")
	require.Equal(t, "ID!", pet.Field("id").Type.String())
	require.Equal(t, "[Pet!]", pet.Field("friends").Type.String())
	require.Equal(t, "Pet", pet.Field("friends").Type.NamedType())

	owner := s.GetType("Owner")
	require.Equal(t, "[Pet!]!", owner.Field("pets").Type.String())
	require.True(t, owner.Field("pets").Type.IsNonNull())
}

func TestBuildPossibleTypes(t *testing.T) {
	s := build(t, testSDL)

	require.Equal(t, []string{"Owner", "Pet"}, s.GetType("Node").PossibleTypes)
	require.Equal(t, []string{"Pet", "Owner"}, s.GetType("SearchResult").PossibleTypes)
}

func TestBuildInputDefaults(t *testing.T) {
	s := build(t, testSDL)

	filter := s.GetType("PetFilter")
	require.Equal(t, "10", filter.InputField("limit").DefaultValue)
	require.Empty(t, filter.InputField("kind").DefaultValue)
	require.Nil(t, filter.InputField("missing"))
}

func TestBuildTypeExtensions(t *testing.T) {
	s := build(t, `
		type Query { ok: Boolean }
		extend type Query { more: Int }
	`)
	q := s.GetType("Query")
	require.NotNil(t, q.Field("ok"))
	require.NotNil(t, q.Field("more"))
}

func TestRenderRoundTrips(t *testing.T) {
	s := build(t, testSDL)
	sdl := Render(s)

	// Rendered SDL parses back into an equivalent schema.
	again := build(t, sdl)
	require.Equal(t, s.QueryType, again.QueryType)
	require.Equal(t, TypeKindUnion, again.GetType("SearchResult").Kind)
	require.Equal(t, "[Pet!]", again.GetType("Pet").Field("friends").Type.String())
	require.Equal(t, "10", again.GetType("PetFilter").InputField("limit").DefaultValue)

	require.Contains(t, sdl, "type Pet implements Node")
	require.Contains(t, sdl, "union SearchResult = Pet | Owner")
	// Builtins are not re-declared.
	require.NotContains(t, sdl, "scalar String")
}
