package document

// Selection is one of *Field, *FragmentSpread or *InlineFragment.
// The set is closed, consumers switch over the three types.
type Selection interface {
	isSelection()
	Pos() Position
}

func (*Field) isSelection()          {}
func (*FragmentSpread) isSelection() {}
func (*InlineFragment) isSelection() {}

func (f *Field) Pos() Position          { return f.Position }
func (f *FragmentSpread) Pos() Position { return f.Position }
func (f *InlineFragment) Pos() Position { return f.Position }

// SelectionSet as specified in:
// http://facebook.github.io/graphql/draft/#SelectionSet
type SelectionSet []Selection

// Fields returns the fields of the set, ignoring fragments
func (s SelectionSet) Fields() []*Field {
	var fields []*Field
	for _, selection := range s {
		if field, ok := selection.(*Field); ok {
			fields = append(fields, field)
		}
	}
	return fields
}

// Field as specified in:
// http://facebook.github.io/graphql/draft/#Field
type Field struct {
	Alias        string
	Name         string
	Arguments    ArgumentList
	Directives   DirectiveList
	SelectionSet SelectionSet
	Position     Position
}

// ResponseKey is the alias if present, the name otherwise
func (f *Field) ResponseKey() string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// FragmentSpread as specified in:
// http://facebook.github.io/graphql/draft/#FragmentSpread
type FragmentSpread struct {
	Name       string
	Directives DirectiveList
	Position   Position
}

// InlineFragment as specified in:
// http://facebook.github.io/graphql/draft/#InlineFragment
// An empty TypeCondition means the fragment applies to the enclosing type.
type InlineFragment struct {
	TypeCondition string
	Directives    DirectiveList
	SelectionSet  SelectionSet
	Position      Position
}
