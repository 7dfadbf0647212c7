package language

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	doc, err := ParseQuery("q.graphql", `
		query GetPet($id: ID!) {
			pet(id: $id) { id ...PetParts }
		}
		fragment PetParts on Pet { name }
	`)
	require.NoError(t, err)
	require.Len(t, doc.Operations, 1)
	require.Len(t, doc.Fragments, 1)

	op := doc.Operations[0]
	require.Equal(t, "GetPet", op.Name)
	require.Equal(t, Query, op.Operation)
	require.Len(t, op.VariableDefinitions, 1)
	require.True(t, op.VariableDefinitions[0].Type.NonNull)
}

func TestParseQuerySyntaxError(t *testing.T) {
	_, err := ParseQuery("q.graphql", `query { pet( }`)
	require.Error(t, err)
}

func TestParseSchema(t *testing.T) {
	doc, err := ParseSchema("s.graphql", `
		type Query { pet: Pet }
		type Pet { id: ID! }
	`)
	require.NoError(t, err)
	require.Len(t, doc.Definitions, 2)
}

func TestFormatQueryRoundTrips(t *testing.T) {
	source := `
		query GetPet($id: ID!) {
			pet(id: $id) { id ...PetParts }
		}
		fragment PetParts on Pet { name }
	`
	doc, err := ParseQuery("q.graphql", source)
	require.NoError(t, err)

	formatted := FormatQuery(doc)
	require.Contains(t, formatted, "query GetPet")
	require.Contains(t, formatted, "fragment PetParts on Pet")

	// Formatted output parses back to the same shape.
	again, err := ParseQuery("formatted.graphql", formatted)
	require.NoError(t, err)
	require.Len(t, again.Operations, 1)
	require.Len(t, again.Fragments, 1)
}
