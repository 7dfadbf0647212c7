package refs

import (
	"fmt"

	language "github.com/hanpama/querygen/internal/language"
	"github.com/hanpama/querygen/internal/schema"
)

// Collect walks every fragment and operation in doc and returns the registry
// of all named types they transitively reference. It fails fast on the first
// structural error; no partial registry escapes a failed run.
func Collect(s *schema.Schema, doc *language.QueryDocument) (*Registry, error) {
	c := &collector{schema: s, reg: NewRegistry()}

	for _, frag := range doc.Fragments {
		if err := c.collectFragment(frag); err != nil {
			return nil, err
		}
	}
	for _, op := range doc.Operations {
		if err := c.collectOperation(op); err != nil {
			return nil, err
		}
	}
	c.closeOverInputs()
	return c.reg, nil
}

type collector struct {
	schema *schema.Schema
	reg    *Registry
}

func (c *collector) collectFragment(frag *language.FragmentDefinition) error {
	cond := c.schema.GetType(frag.TypeCondition)
	if cond == nil {
		return &UnknownTypeError{TypeName: frag.TypeCondition, Pos: frag.Position}
	}
	return c.walkChildren(cond, frag.SelectionSet)
}

func (c *collector) collectOperation(op *language.OperationDefinition) error {
	root := c.schema.RootType(op.Operation)
	if root == nil {
		return fmt.Errorf("schema has no root type for %s operations%s", op.Operation, position(op.Position))
	}
	for _, v := range op.VariableDefinitions {
		if err := c.collectVariableType(v.Type); err != nil {
			return err
		}
	}
	return c.walkChildren(root, op.SelectionSet)
}

// walkField dispatches on the resolved kind of the declared type, not on the
// selection syntax. NonNull and List wrappers are consumed one layer per
// recursive call; the terminal case is a named type.
func (c *collector) walkField(node *language.Field, t *schema.TypeRef) error {
	switch t.Kind {
	case schema.TypeRefKindNonNull, schema.TypeRefKindList:
		return c.walkField(node, t.OfType)
	}

	def := c.schema.GetType(t.Named)
	if def == nil {
		return &UnknownTypeError{TypeName: t.Named, Pos: node.Position}
	}
	switch def.Kind {
	case schema.TypeKindUnion:
		return c.walkUnion(node)
	case schema.TypeKindInterface, schema.TypeKindObject:
		c.reg.RegisterType(def.Name)
		return c.walkChildren(def, node.SelectionSet)
	case schema.TypeKindScalar:
		c.reg.RegisterScalar(def.Name)
		return nil
	case schema.TypeKindEnum:
		c.reg.RegisterEnum(def.Name)
		return nil
	default:
		return &UnknownTypeError{TypeName: def.Name, Pos: node.Position}
	}
}

// walkUnion handles a selection against a union type. Only fragment spreads
// and inline fragments are legal children here; a plain field other than
// __typename is invalid input and is not recovered.
func (c *collector) walkUnion(node *language.Field) error {
	for _, sel := range node.SelectionSet {
		switch sub := sel.(type) {
		case *language.FragmentSpread:
			c.reg.RegisterFragment(sub.Name)
		case *language.InlineFragment:
			if err := c.walkInlineFragment(sub); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkChildren recurses into a selection set against an object or interface
// type. Fragment spreads register by name and stop: the spread fragment's own
// definition is collected independently, so cyclic fragment references cannot
// recurse here.
func (c *collector) walkChildren(def *schema.Type, selections language.SelectionSet) error {
	for _, sel := range selections {
		switch sub := sel.(type) {
		case *language.Field:
			if sub.Name == typenameField {
				continue
			}
			fieldDef := def.Field(sub.Name)
			if fieldDef == nil {
				return fmt.Errorf("type %q has no field %q%s", def.Name, sub.Name, position(sub.Position))
			}
			if err := c.walkField(sub, fieldDef.Type); err != nil {
				return err
			}
		case *language.FragmentSpread:
			c.reg.RegisterFragment(sub.Name)
		case *language.InlineFragment:
			if err := c.walkInlineFragment(sub); err != nil {
				return err
			}
		}
	}
	return nil
}

// walkInlineFragment resolves the type condition and recurses into the
// fragment's selections against that concrete type. Spreads and further
// inline fragments inside the condition are handled like any other
// selection-set children.
func (c *collector) walkInlineFragment(frag *language.InlineFragment) error {
	cond := c.schema.GetType(frag.TypeCondition)
	if cond == nil {
		return &UnknownTypeError{TypeName: frag.TypeCondition, Pos: frag.Position}
	}
	c.reg.RegisterType(cond.Name)
	return c.walkChildren(cond, frag.SelectionSet)
}

// collectVariableType resolves a variable declaration's type to its named
// type by unwrapping NonNull and List layers. Only scalars, enums and input
// objects are legal in this position.
func (c *collector) collectVariableType(t *language.Type) error {
	if t.NonNull {
		inner := *t
		inner.NonNull = false
		return c.collectVariableType(&inner)
	}
	if t.Elem != nil {
		return c.collectVariableType(t.Elem)
	}

	def := c.schema.GetType(t.NamedType)
	if def == nil {
		return &UnknownTypeError{TypeName: t.NamedType, Pos: t.Position}
	}
	switch def.Kind {
	case schema.TypeKindScalar:
		c.reg.RegisterScalar(def.Name)
	case schema.TypeKindInputObject:
		c.reg.RegisterInput(def.Name)
	case schema.TypeKindEnum:
		c.reg.RegisterEnum(def.Name)
	default:
		return &UnknownTypeError{TypeName: def.Name, Pos: t.Position}
	}
	return nil
}

// closeOverInputs expands the registry to the transitive closure of input
// object references: an input's fields may reach further inputs, enums and
// scalars that no variable declaration names directly.
func (c *collector) closeOverInputs() {
	queue := c.reg.Inputs()
	visited := make(map[string]bool, len(queue))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if visited[name] {
			continue
		}
		visited[name] = true

		def := c.schema.GetType(name)
		if def == nil || def.Kind != schema.TypeKindInputObject {
			continue
		}
		for _, field := range def.InputFields {
			inner := c.schema.GetType(field.Type.NamedType())
			if inner == nil {
				continue
			}
			switch inner.Kind {
			case schema.TypeKindScalar:
				c.reg.RegisterScalar(inner.Name)
			case schema.TypeKindEnum:
				c.reg.RegisterEnum(inner.Name)
			case schema.TypeKindInputObject:
				c.reg.RegisterInput(inner.Name)
				queue = append(queue, inner.Name)
			}
		}
	}
}

const typenameField = "__typename"
