package gen

import (
	"fmt"

	language "github.com/hanpama/querygen/internal/language"
	"github.com/hanpama/querygen/internal/refs"
)

// buildFragments emits one struct per registered fragment. Fragments are
// registered by spreads, so a registered name without a definition in the
// document set is a broken reference and fails the run.
func (b *builder) buildFragments() error {
	for _, name := range b.reg.Fragments() {
		def := b.fragmentDefinition(name)
		if def == nil {
			return fmt.Errorf("fragment %q is spread but never defined", name)
		}
		cond := b.schema.GetType(def.TypeCondition)
		if cond == nil {
			return &refs.UnknownTypeError{TypeName: def.TypeCondition, Pos: def.Position}
		}
		doc := fmt.Sprintf("%s is the %s fragment on %s.", styleTypeName(name), name, def.TypeCondition)
		if err := b.buildSelectionStruct(styleTypeName(name), doc, cond, def.SelectionSet); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) fragmentDefinition(name string) *language.FragmentDefinition {
	for _, frag := range b.doc.Fragments {
		if frag.Name == name {
			return frag
		}
	}
	return nil
}
