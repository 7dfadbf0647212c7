package schema

import (
	"sort"
	"strings"
)

// Render produces SDL from the Schema.
// Deterministic ordering: type names sorted lexicographically.
func Render(s *Schema) string {
	if s == nil {
		return ""
	}
	var b strings.Builder

	typeNames := make([]string, 0, len(s.Types))
	for name, typ := range s.Types {
		if builtinScalars[name] == typ {
			continue
		}
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	for _, name := range typeNames {
		typ := s.Types[name]
		switch typ.Kind {
		case TypeKindScalar:
			renderScalar(&b, typ)
		case TypeKindEnum:
			renderEnum(&b, typ)
		case TypeKindInputObject:
			renderInputObject(&b, typ)
		case TypeKindObject:
			renderCompositeType(&b, "type", typ)
		case TypeKindInterface:
			renderCompositeType(&b, "interface", typ)
		case TypeKindUnion:
			renderUnion(&b, typ)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderDescription(b *strings.Builder, desc string) {
	if desc == "" {
		return
	}
	b.WriteString("\"\"\"\n")
	b.WriteString(strings.ReplaceAll(desc, "\"", "\\\""))
	b.WriteString("\n\"\"\"\n")
}

func renderScalar(b *strings.Builder, typ *Type) {
	renderDescription(b, typ.Description)
	b.WriteString("scalar ")
	b.WriteString(typ.Name)
	b.WriteString("\n\n")
}

func renderEnum(b *strings.Builder, typ *Type) {
	renderDescription(b, typ.Description)
	b.WriteString("enum ")
	b.WriteString(typ.Name)
	b.WriteString(" {\n")
	for _, val := range typ.EnumValues {
		renderDescription(b, val.Description)
		b.WriteString("  ")
		b.WriteString(val.Name)
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderInputObject(b *strings.Builder, typ *Type) {
	renderDescription(b, typ.Description)
	b.WriteString("input ")
	b.WriteString(typ.Name)
	b.WriteString(" {\n")
	for _, field := range typ.InputFields {
		renderDescription(b, field.Description)
		b.WriteString("  ")
		b.WriteString(field.Name)
		b.WriteString(": ")
		b.WriteString(field.Type.String())
		if field.DefaultValue != "" {
			b.WriteString(" = ")
			b.WriteString(field.DefaultValue)
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n\n")
}

func renderCompositeType(b *strings.Builder, keyword string, typ *Type) {
	renderDescription(b, typ.Description)
	b.WriteString(keyword)
	b.WriteString(" ")
	b.WriteString(typ.Name)
	if len(typ.Interfaces) > 0 {
		b.WriteString(" implements ")
		b.WriteString(strings.Join(typ.Interfaces, " & "))
	}
	b.WriteString(" {\n")
	for _, field := range typ.Fields {
		renderField(b, field)
	}
	b.WriteString("}\n\n")
}

func renderUnion(b *strings.Builder, typ *Type) {
	renderDescription(b, typ.Description)
	b.WriteString("union ")
	b.WriteString(typ.Name)
	b.WriteString(" = ")
	b.WriteString(strings.Join(typ.PossibleTypes, " | "))
	b.WriteString("\n\n")
}

func renderField(b *strings.Builder, field *Field) {
	renderDescription(b, field.Description)
	b.WriteString("  ")
	b.WriteString(field.Name)
	if len(field.Arguments) > 0 {
		b.WriteString("(")
		for i, arg := range field.Arguments {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(arg.Name)
			b.WriteString(": ")
			b.WriteString(arg.Type.String())
			if arg.DefaultValue != "" {
				b.WriteString(" = ")
				b.WriteString(arg.DefaultValue)
			}
		}
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(field.Type.String())
	b.WriteString("\n")
}
