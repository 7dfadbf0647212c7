package gen

import (
	"fmt"

	language "github.com/hanpama/querygen/internal/language"
)

type funcDecl struct {
	Name         string
	Doc          []string
	Params       []funcParam
	ReturnType   string // empty for subscriptions
	Subscription bool
	HandlerType  string // subscription event type
	WrapperName  string
	DocumentName string
	Collapse     bool
	ProjectField string // wrapper field projected when collapsing
}

type funcParam struct {
	Name    string
	Type    string
	GQLName string
}

// buildFuncs synthesizes one typed function per operation. Required
// variables (non-null without a default) become leading parameters; the rest
// follow as pointer-typed optionals. The collapse decision picks the return
// type and the response field projection.
func (b *builder) buildFuncs() error {
	for _, op := range b.doc.Operations {
		collapsable, err := IsCollapsable(op)
		if err != nil {
			return err
		}
		collapse := b.opts.Collapse && collapsable

		d := &funcDecl{
			Name:         b.opts.FuncPrefix + styleOperationName(op),
			WrapperName:  styleOperationName(op),
			DocumentName: styleOperationName(op) + "Document",
			Subscription: op.Operation == language.Subscription,
			Collapse:     collapse,
		}

		if collapse {
			if field, ok := op.SelectionSet[0].(*language.Field); ok && field.Name != typenameField {
				d.ProjectField = styleFieldName(fieldTarget(field))
			} else {
				d.Collapse = false
			}
		}

		returnExpr, err := b.resolveReturnType(op, d.Collapse)
		if err != nil {
			return err
		}
		if d.Subscription {
			d.HandlerType = returnExpr.String()
		} else {
			d.ReturnType = returnExpr.String()
		}

		required, optional := splitVariables(op.VariableDefinitions)
		for _, v := range required {
			expr, err := b.resolveVariableType(v.Type, true)
			if err != nil {
				return err
			}
			d.Params = append(d.Params, funcParam{
				Name:    styleParamName(v.Variable),
				Type:    expr.String(),
				GQLName: v.Variable,
			})
		}
		for _, v := range optional {
			expr, err := b.resolveVariableType(v.Type, true)
			if err != nil {
				return err
			}
			if !expr.IsPointer() {
				expr = pointerExpr(expr)
			}
			d.Params = append(d.Params, funcParam{
				Name:    styleParamName(v.Variable),
				Type:    expr.String(),
				GQLName: v.Variable,
			})
		}

		doc, err := b.funcDoc(d, op, required, optional)
		if err != nil {
			return err
		}
		d.Doc = doc

		b.funcs = append(b.funcs, d)
	}
	return nil
}

// splitVariables separates required variables (non-null, no default) from
// optional ones, preserving declaration order within each group.
func splitVariables(vars language.VariableDefinitionList) (required, optional language.VariableDefinitionList) {
	for _, v := range vars {
		if v.Type.NonNull && v.DefaultValue == nil {
			required = append(required, v)
		} else {
			optional = append(optional, v)
		}
	}
	return required, optional
}

// funcDoc builds the doc comment: operation header, field descriptions from
// the schema, the argument list, and the return type label. The label is the
// string projection of the same collapse decision as the return type, so the
// two cannot drift apart.
func (b *builder) funcDoc(d *funcDecl, op *language.OperationDefinition, required, optional language.VariableDefinitionList) ([]string, error) {
	lines := []string{fmt.Sprintf("%s executes the %s %s.", d.Name, op.Name, op.Operation)}

	root := b.schema.RootType(op.Operation)
	var fieldDocs []string
	for _, sel := range op.SelectionSet {
		field, ok := sel.(*language.Field)
		if !ok || field.Name == typenameField {
			continue
		}
		fieldDef := root.Field(field.Name)
		if fieldDef != nil && fieldDef.Description != "" {
			fieldDocs = append(fieldDocs, fmt.Sprintf("%s: %s", fieldTarget(field), fieldDef.Description))
		}
	}
	if len(fieldDocs) > 0 {
		lines = append(lines, "")
		lines = append(lines, fieldDocs...)
	}

	if len(required)+len(optional) > 0 {
		lines = append(lines, "", "Arguments:")
		for _, v := range required {
			lines = append(lines, fmt.Sprintf("  - %s (%s)", styleParamName(v.Variable), typeLabel(v.Type)))
		}
		for _, v := range optional {
			label := fmt.Sprintf("  - %s (%s, optional", styleParamName(v.Variable), typeLabel(v.Type))
			if v.DefaultValue != nil {
				label += fmt.Sprintf(", defaults to %s", v.DefaultValue.String())
			}
			lines = append(lines, label+")")
		}
	}

	label, err := b.returnTypeLabel(op, d.Collapse)
	if err != nil {
		return nil, err
	}
	if d.Subscription {
		lines = append(lines, "", fmt.Sprintf("Events: %s", label))
	} else {
		lines = append(lines, "", fmt.Sprintf("Returns: %s", label))
	}
	return lines, nil
}

// typeLabel renders a variable's GraphQL type for doc comments.
func typeLabel(t *language.Type) string {
	if t.Elem != nil {
		label := "[" + typeLabel(t.Elem) + "]"
		if t.NonNull {
			label += "!"
		}
		return label
	}
	label := t.NamedType
	if t.NonNull {
		label += "!"
	}
	return label
}
