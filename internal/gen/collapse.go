package gen

import (
	"fmt"

	language "github.com/hanpama/querygen/internal/language"
	"github.com/hanpama/querygen/internal/refs"
)

// IsCollapsable reports whether an operation's return type may skip the
// synthesized wrapper. An operation with an empty selection set is malformed:
// every operation must select at least one field.
func IsCollapsable(op *language.OperationDefinition) (bool, error) {
	if len(op.SelectionSet) == 0 {
		return false, &refs.MalformedSelectionError{Operation: op.Name, Pos: op.Position}
	}
	return len(op.SelectionSet) == 1, nil
}

// resolveReturnType computes the generated function's return type for an
// operation. When not collapsing it is always a pointer to the operation's
// wrapper type. When collapsing, the sole top-level field determines the
// shape: no sub-selection resolves the field's scalar or enum type directly;
// a sole fragment-spread child forwards to the fragment's generated type
// (forward references are fine, names stay symbolic until rendering);
// anything else synthesizes a nested type from the operation name and the
// field name or alias, styled the same way as the struct the selection
// synthesizes so the two names cannot drift apart.
func (b *builder) resolveReturnType(op *language.OperationDefinition, collapse bool) (*TypeExpr, error) {
	opName := styleOperationName(op)
	if !collapse {
		return pointerExpr(namedExpr(opName)), nil
	}

	field, ok := op.SelectionSet[0].(*language.Field)
	if !ok || field.Name == typenameField {
		return pointerExpr(namedExpr(opName)), nil
	}
	root := b.schema.RootType(op.Operation)
	if root == nil {
		return nil, fmt.Errorf("schema has no root type for %s operations%s", op.Operation, positionSuffix(op.Position))
	}
	fieldDef := root.Field(field.Name)
	if fieldDef == nil {
		return nil, fmt.Errorf("type %q has no field %q%s", root.Name, field.Name, positionSuffix(field.Position))
	}

	if len(field.SelectionSet) == 0 {
		return b.resolveOutputType(fieldDef.Type, true, "", field.Position)
	}
	if len(field.SelectionSet) == 1 {
		if spread, ok := field.SelectionSet[0].(*language.FragmentSpread); ok {
			return b.resolveOutputType(fieldDef.Type, true, styleTypeName(spread.Name), field.Position)
		}
	}
	return b.resolveOutputType(fieldDef.Type, true, nestedTypeName(opName, styleFieldName(fieldTarget(field))), field.Position)
}

// returnTypeLabel is the display-string projection of resolveReturnType,
// used in generated doc comments. Both are projections of the same decision
// and must agree for any operation/collapse pair, so the label is rendered
// from the resolved expression rather than recomputed.
func (b *builder) returnTypeLabel(op *language.OperationDefinition, collapse bool) (string, error) {
	expr, err := b.resolveReturnType(op, collapse)
	if err != nil {
		return "", err
	}
	return expr.String(), nil
}
