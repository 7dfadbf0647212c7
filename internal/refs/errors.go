package refs

import (
	"fmt"

	language "github.com/hanpama/querygen/internal/language"
)

// UnknownTypeError reports a type appearing in a position the generator has
// no handler for, e.g. a composite type in a variable declaration. It aborts
// the generation run.
type UnknownTypeError struct {
	TypeName string
	Pos      *language.Position
}

func (e *UnknownTypeError) Error() string {
	msg := fmt.Sprintf("unknown type %q in unsupported position", e.TypeName)
	return msg + position(e.Pos)
}

// MalformedSelectionError reports an operation without a selection set.
// Every operation must select at least one field.
type MalformedSelectionError struct {
	Operation string
	Pos       *language.Position
}

func (e *MalformedSelectionError) Error() string {
	msg := fmt.Sprintf("operation %q has no selection set", e.Operation)
	return msg + position(e.Pos)
}

func position(pos *language.Position) string {
	if pos == nil {
		return ""
	}
	name := ""
	if pos.Src != nil {
		name = pos.Src.Name
	}
	return fmt.Sprintf(" %s:%d:%d", name, pos.Line, pos.Column)
}
