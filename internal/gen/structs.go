package gen

import (
	"fmt"

	language "github.com/hanpama/querygen/internal/language"
	"github.com/hanpama/querygen/internal/refs"
	"github.com/hanpama/querygen/internal/schema"
)

type structDecl struct {
	Name   string
	Doc    string
	Embeds []string
	Fields []structField
}

type structField struct {
	Name string
	Type *TypeExpr
	Tag  string // JSON response key
	Doc  string
}

// buildSelectionStruct synthesizes the struct for a selection set against a
// composite type and appends it to the output, followed by any child structs
// it spawned. Child structs are named by concatenating the parent name with
// the styled field name or alias. Selecting the same response key twice is
// fine when both selections agree; two branches producing different types or
// tags under one key is a conflict and fails the run.
func (b *builder) buildSelectionStruct(name, doc string, def *schema.Type, selections language.SelectionSet) error {
	d := &structDecl{Name: name, Doc: doc}
	byName := map[string]structField{}
	embeds := map[string]bool{}
	var children []func() error

	addField := func(f structField, pos *language.Position) (bool, error) {
		if prev, ok := byName[f.Name]; ok {
			if prev.Tag != f.Tag || prev.Type.String() != f.Type.String() {
				return false, fmt.Errorf("conflicting selections for %q in %s: %s and %s%s",
					f.Name, name, prev.Type.String(), f.Type.String(), positionSuffix(pos))
			}
			return false, nil
		}
		byName[f.Name] = f
		d.Fields = append(d.Fields, f)
		return true, nil
	}
	addEmbed := func(typeName string) {
		if !embeds[typeName] {
			embeds[typeName] = true
			d.Embeds = append(d.Embeds, typeName)
		}
	}

	var addInline func(frag *language.InlineFragment) error
	addInline = func(frag *language.InlineFragment) error {
		cond := b.schema.GetType(frag.TypeCondition)
		if cond == nil {
			return &refs.UnknownTypeError{TypeName: frag.TypeCondition, Pos: frag.Position}
		}
		for _, condSel := range frag.SelectionSet {
			switch sub := condSel.(type) {
			case *language.Field:
				if sub.Name == typenameField {
					continue
				}
				fieldDef := cond.Field(sub.Name)
				if fieldDef == nil {
					return fmt.Errorf("type %q has no field %q%s", cond.Name, sub.Name, positionSuffix(sub.Position))
				}
				// Fields behind a type condition are only present when the
				// concrete type matches, so they are forced nullable.
				field, child, err := b.buildStructField(name, sub, fieldDef, true)
				if err != nil {
					return err
				}
				added, err := addField(field, sub.Position)
				if err != nil {
					return err
				}
				if added && child != nil {
					children = append(children, child)
				}
			case *language.FragmentSpread:
				addEmbed(styleTypeName(sub.Name))
			case *language.InlineFragment:
				if err := addInline(sub); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, sel := range selections {
		switch sub := sel.(type) {
		case *language.Field:
			if sub.Name == typenameField {
				if _, err := addField(structField{Name: "Typename", Type: namedExpr("string"), Tag: typenameField}, sub.Position); err != nil {
					return err
				}
				continue
			}
			fieldDef := def.Field(sub.Name)
			if fieldDef == nil {
				if def.Kind == schema.TypeKindUnion {
					// Plain fields other than __typename are invalid on a
					// union; not recovered, matching the walker.
					continue
				}
				return fmt.Errorf("type %q has no field %q%s", def.Name, sub.Name, positionSuffix(sub.Position))
			}
			field, child, err := b.buildStructField(name, sub, fieldDef, false)
			if err != nil {
				return err
			}
			added, err := addField(field, sub.Position)
			if err != nil {
				return err
			}
			if added && child != nil {
				children = append(children, child)
			}
		case *language.FragmentSpread:
			addEmbed(styleTypeName(sub.Name))
		case *language.InlineFragment:
			if err := addInline(sub); err != nil {
				return err
			}
		}
	}

	b.structs = append(b.structs, d)
	for _, build := range children {
		if err := build(); err != nil {
			return err
		}
	}
	return nil
}

// buildStructField resolves one selected field into a struct field. When the
// selection spawns a child struct, the build closure is returned instead of
// run so the caller can drop it if the field deduplicates away.
func (b *builder) buildStructField(parentName string, field *language.Field, fieldDef *schema.Field, forceNullable bool) (structField, func() error, error) {
	target := fieldTarget(field)
	goName := styleFieldName(target)

	overwrite := ""
	var child func() error
	if len(field.SelectionSet) > 0 {
		if spread, ok := soleFragmentSpread(field.SelectionSet); ok {
			// A lone fragment spread forwards to the fragment's type instead
			// of synthesizing a wrapper struct.
			overwrite = styleTypeName(spread.Name)
		} else {
			childName := nestedTypeName(parentName, goName)
			childDef := b.schema.GetType(fieldDef.Type.NamedType())
			if childDef == nil {
				return structField{}, nil, &refs.UnknownTypeError{TypeName: fieldDef.Type.NamedType(), Pos: field.Position}
			}
			childDoc := fmt.Sprintf("%s is the selection of %s.%s.", childName, parentName, target)
			childSelections := field.SelectionSet
			child = func() error {
				return b.buildSelectionStruct(childName, childDoc, childDef, childSelections)
			}
			overwrite = childName
		}
	}

	expr, err := b.resolveOutputType(fieldDef.Type, true, overwrite, field.Position)
	if err != nil {
		return structField{}, nil, err
	}
	if forceNullable && !expr.IsPointer() {
		expr = pointerExpr(expr)
	}
	return structField{Name: goName, Type: expr, Tag: target, Doc: fieldDef.Description}, child, nil
}

func soleFragmentSpread(selections language.SelectionSet) (*language.FragmentSpread, bool) {
	if len(selections) != 1 {
		return nil, false
	}
	spread, ok := selections[0].(*language.FragmentSpread)
	return spread, ok
}
