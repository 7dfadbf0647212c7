package gen

import (
	"strings"

	language "github.com/hanpama/querygen/internal/language"
)

// typenameField is the introspection meta field usable on any selection.
const typenameField = "__typename"

// styleOperationName produces the wrapper type name for an operation.
func styleOperationName(op *language.OperationDefinition) string {
	return capitalize(op.Name)
}

// styleTypeName produces the generated Go name for a schema-named type
// (enum, input object) or a fragment.
func styleTypeName(graphQLName string) string {
	return capitalize(graphQLName)
}

// nestedTypeName synthesizes the name of a child struct from its enclosing
// type name and the selected field (or alias).
func nestedTypeName(parent, fieldName string) string {
	return parent + capitalize(fieldName)
}

// styleEnumValueName produces the constant name for an enum value,
// e.g. ("PetKind", "DOG") -> "PetKindDog".
func styleEnumValueName(enumName, valueName string) string {
	parts := strings.Split(strings.ToLower(valueName), "_")
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return styleTypeName(enumName) + strings.Join(parts, "")
}

// styleFieldName produces the exported struct field name for a GraphQL
// field or input value name.
func styleFieldName(graphQLName string) string {
	return capitalize(strings.TrimLeft(graphQLName, "_"))
}

// styleParamName produces the Go parameter name for a GraphQL variable.
func styleParamName(graphQLName string) string {
	name := lowerFirst(graphQLName)
	if reservedWords[name] {
		return name + "Arg"
	}
	return name
}

// fieldTarget returns the response key a field resolves under: the alias
// when present, the field name otherwise.
func fieldTarget(field *language.Field) string {
	if field.Alias != "" && field.Alias != field.Name {
		return field.Alias
	}
	return field.Name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

var reservedWords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}
