package gen

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	language "github.com/hanpama/querygen/internal/language"
	"github.com/hanpama/querygen/internal/refs"
	"github.com/hanpama/querygen/internal/schema"
)

const genTestSDL = `
scalar DateTime

enum PetKind {
  DOG
  CAT
}

type Pet {
  id: ID!
  "The pet's call name."
  name: String!
  kind: PetKind!
  bornAt: DateTime
  friends: [Pet!]
}

type Owner {
  id: ID!
  name: String!
  pets: [Pet!]!
}

union SearchResult = Pet | Owner

input NestedFilter {
  limit: Int = 10
}

input PetFilter {
  kind: PetKind
  nested: NestedFilter
}

type Query {
  "Look up a single pet."
  pet(id: ID!): Pet
  owner(id: ID!): Owner
  pets(filter: PetFilter): [Pet!]!
  petCount: Int!
  search(term: String!): [SearchResult!]!
}

type Mutation {
  renamePet(id: ID!, name: String!): Pet!
}

type Subscription {
  petUpdated(id: ID!): Pet!
}
`

func genTestBuilder(t *testing.T) *builder {
	t.Helper()
	s, err := schema.BuildFromSDL("test.graphql", genTestSDL)
	require.NoError(t, err)
	return &builder{
		schema: s,
		opts:   Options{PackageName: "petapi", Collapse: true, FuncPrefix: "Do", Scalars: map[string]string{"DateTime": "string"}},
	}
}

func generate(t *testing.T, query string, opts Options) string {
	t.Helper()
	s, err := schema.BuildFromSDL("test.graphql", genTestSDL)
	require.NoError(t, err)
	doc, err := language.ParseQuery("query.graphql", query)
	require.NoError(t, err)
	result, err := Generate(context.Background(), s, doc, opts)
	require.NoError(t, err)
	return string(result.Source)
}

func defaultOpts() Options {
	return Options{
		PackageName: "petapi",
		Collapse:    true,
		FuncPrefix:  "Do",
		Scalars:     map[string]string{"DateTime": "string"},
	}
}

func TestGenerateCollapsedQuery(t *testing.T) {
	src := generate(t, `
		query GetPet($id: ID!) {
			pet(id: $id) {
				id
				name
				kind
			}
		}
	`, defaultOpts())

	require.Contains(t, src, "package petapi")
	require.Contains(t, src, "type GetPet struct {")
	require.Contains(t, src, "type GetPetPet struct {")
	require.Contains(t, src, "const GetPetDocument = `")
	require.Contains(t, src, "func DoGetPet(ctx context.Context, client Executor, id string) (*GetPetPet, error)")
	require.Contains(t, src, "return resp.Pet, nil")
	require.Contains(t, src, "Returns: *GetPetPet")
	// The schema description of the selected field surfaces in the doc
	// comment.
	require.Contains(t, src, "Look up a single pet.")
}

func TestGenerateWithoutCollapse(t *testing.T) {
	opts := defaultOpts()
	opts.Collapse = false
	src := generate(t, `
		query GetPet($id: ID!) {
			pet(id: $id) { id }
		}
	`, opts)

	require.Contains(t, src, "func DoGetPet(ctx context.Context, client Executor, id string) (*GetPet, error)")
	require.Contains(t, src, "return &resp, nil")
}

func TestGenerateMultiFieldNeverCollapses(t *testing.T) {
	src := generate(t, `
		query Overview {
			petCount
			owner(id: "1") { id }
		}
	`, defaultOpts())

	require.Contains(t, src, "func DoOverview(ctx context.Context, client Executor) (*Overview, error)")
	require.Contains(t, src, "type OverviewOwner struct {")
}

func TestGenerateFragments(t *testing.T) {
	src := generate(t, `
		query GetPet($id: ID!) {
			pet(id: $id) { ...PetParts }
		}
		fragment PetParts on Pet {
			id
			name
			friends { name }
		}
	`, defaultOpts())

	// The sole spread collapses straight to the fragment's type, which is
	// emitted later in the file.
	require.Contains(t, src, "func DoGetPet(ctx context.Context, client Executor, id string) (*PetParts, error)")
	require.Contains(t, src, "type PetParts struct {")
	require.Contains(t, src, "type PetPartsFriends struct {")
	// The document constant carries the fragment along.
	require.Contains(t, src, "fragment PetParts on Pet")
}

func TestGenerateFragmentEmbedding(t *testing.T) {
	src := generate(t, `
		query GetPet($id: ID!) {
			pet(id: $id) {
				...PetParts
				kind
			}
		}
		fragment PetParts on Pet { id name }
	`, defaultOpts())

	// Spread next to plain fields embeds the fragment type.
	require.Contains(t, src, "\tPetParts\n")
	require.Contains(t, src, "type GetPetPet struct {")
}

func TestGenerateAliases(t *testing.T) {
	src := generate(t, `
		query Compare {
			first: pet(id: "1") { name }
			second: pet(id: "2") { name }
		}
	`, defaultOpts())

	require.Contains(t, src, "type CompareFirst struct {")
	require.Contains(t, src, "type CompareSecond struct {")
	require.Contains(t, src, "`json:\"first\"`")
	require.Contains(t, src, "`json:\"second\"`")
}

func TestGenerateUnderscoreAliasCollapse(t *testing.T) {
	src := generate(t, `
		query GetPet {
			_best: pet(id: "1") { id name }
		}
	`, defaultOpts())

	// The collapsed return type and the synthesized struct share one name.
	require.Contains(t, src, "type GetPetBest struct {")
	require.Contains(t, src, "func DoGetPet(ctx context.Context, client Executor) (*GetPetBest, error)")
	require.Contains(t, src, "return resp.Best, nil")
	require.Contains(t, src, "`json:\"_best\"`")
	require.NotContains(t, src, "GetPet_best")
}

func TestGenerateSpreadInsideInlineFragment(t *testing.T) {
	src := generate(t, `
		query Search($term: String!) {
			search(term: $term) {
				... on Pet { ...PetBits }
			}
		}
		fragment PetBits on Pet { id name }
	`, defaultOpts())

	// The spread behind the type condition embeds the fragment type, and the
	// fragment itself is emitted.
	require.Contains(t, src, "\tPetBits\n")
	require.Contains(t, src, "type PetBits struct {")
}

func TestGenerateConflictingBranchFields(t *testing.T) {
	s, err := schema.BuildFromSDL("test.graphql", genTestSDL)
	require.NoError(t, err)
	doc, err := language.ParseQuery("query.graphql", `
		query Search($term: String!) {
			search(term: $term) {
				... on Pet { id: kind }
				... on Owner { id }
			}
		}
	`)
	require.NoError(t, err)
	_, err = Generate(context.Background(), s, doc, defaultOpts())
	require.Error(t, err)
	require.Contains(t, err.Error(), `conflicting selections for "Id"`)
}

func TestGenerateRepeatedFieldMergesOnce(t *testing.T) {
	src := generate(t, `
		query Compare {
			petCount
			pet(id: "1") { name }
			pet(id: "1") { name }
		}
	`, defaultOpts())

	// An agreeing repeated selection deduplicates the field and its child
	// struct.
	require.Equal(t, 1, strings.Count(src, "type ComparePet struct {"))
	require.Equal(t, 1, strings.Count(src, "`json:\"pet\"`"))
}

func TestGenerateEnumsAndInputs(t *testing.T) {
	src := generate(t, `
		query ListPets($filter: PetFilter) {
			pets(filter: $filter) { id kind }
		}
	`, defaultOpts())

	require.Contains(t, src, "type PetKind string")
	require.Contains(t, src, `PetKindDog PetKind = "DOG"`)
	require.Contains(t, src, `PetKindCat PetKind = "CAT"`)
	require.Contains(t, src, "type PetFilter struct {")
	// Transitively reached input object.
	require.Contains(t, src, "type NestedFilter struct {")
	require.Contains(t, src, "Defaults to 10.")
	// Optional variable arrives as a pointer.
	require.Contains(t, src, "func DoListPets(ctx context.Context, client Executor, filter *PetFilter) ([]ListPetsPets, error)")
}

func TestGenerateUnions(t *testing.T) {
	src := generate(t, `
		query Search($term: String!) {
			search(term: $term) {
				__typename
				... on Pet { name kind }
				... on Owner { name }
			}
		}
	`, defaultOpts())

	require.Contains(t, src, "type SearchSearch struct {")
	require.Contains(t, src, "Typename string")
	require.Contains(t, src, "`json:\"__typename\"`")
	// Type-conditioned fields are forced nullable.
	require.Contains(t, src, "*PetKind")
	require.Contains(t, src, "`json:\"kind\"`")
}

func TestGenerateSubscription(t *testing.T) {
	src := generate(t, `
		subscription Watch($id: ID!) {
			petUpdated(id: $id) { id name }
		}
	`, defaultOpts())

	require.Contains(t, src, "type Subscriber interface {")
	require.Contains(t, src, "func DoWatch(ctx context.Context, client Subscriber, id string, handle func(WatchPetUpdated) error) error")
	require.Contains(t, src, "json.Unmarshal")
	require.NotContains(t, src, "type Executor interface {")
}

func TestGenerateMutation(t *testing.T) {
	src := generate(t, `
		mutation Rename($id: ID!, $name: String!) {
			renamePet(id: $id, name: $name) { id name }
		}
	`, defaultOpts())

	require.Contains(t, src, "func DoRename(ctx context.Context, client Executor, id string, name string) (RenameRenamePet, error)")
	require.Contains(t, src, "var zero RenameRenamePet")
}

func TestGenerateAnonymousOperationFails(t *testing.T) {
	s, err := schema.BuildFromSDL("test.graphql", genTestSDL)
	require.NoError(t, err)
	doc, err := language.ParseQuery("query.graphql", `{ petCount }`)
	require.NoError(t, err)
	_, err = Generate(context.Background(), s, doc, defaultOpts())
	require.Error(t, err)
	require.Contains(t, err.Error(), "anonymous operations")
}

func TestGenerateEmptyDocumentIsSoft(t *testing.T) {
	s, err := schema.BuildFromSDL("test.graphql", genTestSDL)
	require.NoError(t, err)
	result, err := Generate(context.Background(), s, &language.QueryDocument{}, defaultOpts())
	require.NoError(t, err)
	require.Empty(t, result.Source)
}

func TestGenerateRegistrySnapshot(t *testing.T) {
	s, err := schema.BuildFromSDL("test.graphql", genTestSDL)
	require.NoError(t, err)
	doc, err := language.ParseQuery("query.graphql", `
		query ListPets($filter: PetFilter) {
			pets(filter: $filter) { id kind }
		}
	`)
	require.NoError(t, err)
	result, err := Generate(context.Background(), s, doc, defaultOpts())
	require.NoError(t, err)

	want := refs.Snapshot{
		Objects:   []string{"Pet"},
		Fragments: []string{},
		Enums:     []string{"PetKind"},
		Inputs:    []string{"NestedFilter", "PetFilter"},
		Scalars:   []string{"ID", "Int"},
	}
	if diff := cmp.Diff(want, result.Registry); diff != "" {
		t.Errorf("registry mismatch (-want +got):\n%s", diff)
	}
}
