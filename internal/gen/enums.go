package gen

import (
	"fmt"

	"github.com/hanpama/querygen/internal/schema"
)

type enumDecl struct {
	Name   string
	Doc    string
	Values []enumValue
}

type enumValue struct {
	Name string // Go constant name
	Raw  string // GraphQL enum value
	Doc  string
}

func (b *builder) buildEnums() error {
	for _, name := range b.reg.Enums() {
		def := b.schema.GetType(name)
		if def == nil || def.Kind != schema.TypeKindEnum {
			return fmt.Errorf("enum %q is not defined in the schema", name)
		}
		d := &enumDecl{
			Name: styleTypeName(name),
			Doc:  def.Description,
		}
		if d.Doc == "" {
			d.Doc = fmt.Sprintf("%s is the %s enum from the schema.", d.Name, name)
		}
		for _, val := range def.EnumValues {
			d.Values = append(d.Values, enumValue{
				Name: styleEnumValueName(name, val.Name),
				Raw:  val.Name,
				Doc:  val.Description,
			})
		}
		b.enums = append(b.enums, d)
	}
	return nil
}
