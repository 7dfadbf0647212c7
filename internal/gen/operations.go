package gen

import (
	"fmt"

	language "github.com/hanpama/querygen/internal/language"
)

type documentConst struct {
	Name string
	Doc  string
	Text string
}

// buildOperations emits the wrapper struct and the document constant for
// every operation, in document order. The wrapper is generated even for
// collapsing operations: the generated function indexes into it to project
// the collapsed field.
func (b *builder) buildOperations() error {
	for _, op := range b.doc.Operations {
		if op.Name == "" {
			return fmt.Errorf("anonymous operations are not supported%s", positionSuffix(op.Position))
		}
		root := b.schema.RootType(op.Operation)
		if root == nil {
			return fmt.Errorf("schema has no root type for %s operations%s", op.Operation, positionSuffix(op.Position))
		}

		name := styleOperationName(op)
		doc := fmt.Sprintf("%s is the typed response of the %s %s.", name, op.Name, op.Operation)
		if err := b.buildSelectionStruct(name, doc, root, op.SelectionSet); err != nil {
			return err
		}

		b.documents = append(b.documents, &documentConst{
			Name: name + "Document",
			Doc:  fmt.Sprintf("%sDocument is the GraphQL source of the %s %s.", name, op.Name, op.Operation),
			Text: b.operationDocument(op),
		})
	}
	return nil
}

// operationDocument renders the operation source together with every
// fragment it transitively spreads, so the constant is executable on its
// own.
func (b *builder) operationDocument(op *language.OperationDefinition) string {
	spreads := map[string]bool{}
	collectSpreads(op.SelectionSet, spreads)

	var fragments language.FragmentDefinitionList
	for {
		grew := false
		for _, frag := range b.doc.Fragments {
			if !spreads[frag.Name] {
				continue
			}
			before := len(spreads)
			collectSpreads(frag.SelectionSet, spreads)
			if len(spreads) > before {
				grew = true
			}
		}
		if !grew {
			break
		}
	}
	for _, frag := range b.doc.Fragments {
		if spreads[frag.Name] {
			fragments = append(fragments, frag)
		}
	}

	return language.FormatQuery(&language.QueryDocument{
		Operations: language.OperationList{op},
		Fragments:  fragments,
	})
}

func collectSpreads(selections language.SelectionSet, into map[string]bool) {
	for _, sel := range selections {
		switch sub := sel.(type) {
		case *language.Field:
			collectSpreads(sub.SelectionSet, into)
		case *language.FragmentSpread:
			into[sub.Name] = true
		case *language.InlineFragment:
			collectSpreads(sub.SelectionSet, into)
		}
	}
}
