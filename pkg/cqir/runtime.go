package cqir

// Children is the selection array of a node.
// Flatten is set when a FragmentReference participates, the runtime then concatenates the resolved arrays.
type Children struct {
	Selections []Child
	Flatten    bool
}

// FragmentReference is replaced at run time by the value of the substitution slot Slot
type FragmentReference struct {
	Slot string
}

// Substitution is a reference to a variable of an enclosing parametrized fragment
type Substitution struct {
	Name string
}

// CreateFragment constructs Fragment at run time, binding Variables as substitution parameters
type CreateFragment struct {
	Fragment  *Fragment
	Variables []string
}

// Fields returns the fields of the selection array, ignoring fragments and references
func (c *Children) Fields() []*Field {
	if c == nil {
		return nil
	}
	var fields []*Field
	for _, selection := range c.Selections {
		if field, ok := selection.(*Field); ok {
			fields = append(fields, field)
		}
	}
	return fields
}

// Field returns the first field named fieldName
func (c *Children) Field(fieldName string) (*Field, bool) {
	for _, field := range c.Fields() {
		if field.FieldName == fieldName {
			return field, true
		}
	}
	return nil, false
}
