package gen

import (
	"fmt"

	"github.com/hanpama/querygen/internal/schema"
)

// buildInputs emits one struct per registered input object. Input field
// types recurse through the same type expression engine as outputs; nested
// input objects and enums referenced here were already registered by the
// variable walk.
func (b *builder) buildInputs() error {
	for _, name := range b.reg.Inputs() {
		def := b.schema.GetType(name)
		if def == nil || def.Kind != schema.TypeKindInputObject {
			return fmt.Errorf("input object %q is not defined in the schema", name)
		}
		d := &structDecl{
			Name: styleTypeName(name),
			Doc:  def.Description,
		}
		if d.Doc == "" {
			d.Doc = fmt.Sprintf("%s is the %s input object from the schema.", d.Name, name)
		}
		for _, field := range def.InputFields {
			expr, err := b.resolveOutputType(field.Type, true, "", nil)
			if err != nil {
				return err
			}
			doc := field.Description
			if field.DefaultValue != "" {
				if doc != "" {
					doc += " "
				}
				doc += fmt.Sprintf("Defaults to %s.", field.DefaultValue)
			}
			d.Fields = append(d.Fields, structField{
				Name: styleFieldName(field.Name),
				Type: expr,
				Tag:  field.Name,
				Doc:  doc,
			})
		}
		b.inputs = append(b.inputs, d)
	}
	return nil
}
