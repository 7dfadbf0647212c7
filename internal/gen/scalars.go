package gen

import (
	"fmt"

	language "github.com/hanpama/querygen/internal/language"
)

// builtinScalarTypes maps the built-in GraphQL scalars to their Go host types.
var builtinScalarTypes = map[string]string{
	"Int":     "int64",
	"Float":   "float64",
	"String":  "string",
	"Boolean": "bool",
	"ID":      "string",
}

// scalarGoType resolves the Go host type for a GraphQL scalar. Custom
// scalars must be mapped through Options.Scalars; an unmapped custom scalar
// is a generation-time failure.
func (b *builder) scalarGoType(name string, pos *language.Position) (string, error) {
	if goType, ok := b.opts.Scalars[name]; ok {
		return goType, nil
	}
	if goType, ok := builtinScalarTypes[name]; ok {
		return goType, nil
	}
	return "", fmt.Errorf("scalar %q has no Go type mapping; use -scalar %s=<GoType>%s", name, name, positionSuffix(pos))
}

func positionSuffix(pos *language.Position) string {
	if pos == nil {
		return ""
	}
	name := ""
	if pos.Src != nil {
		name = pos.Src.Name
	}
	return fmt.Sprintf(" %s:%d:%d", name, pos.Line, pos.Column)
}
