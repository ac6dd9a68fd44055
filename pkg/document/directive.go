package document

// Directive as specified in:
// http://facebook.github.io/graphql/draft/#Directive
type Directive struct {
	Name      string
	Arguments ArgumentList
	Position  Position
}

// DirectiveList is an ordered list of directives
type DirectiveList []*Directive

// ForName returns the first directive named name or nil
func (l DirectiveList) ForName(name string) *Directive {
	for _, directive := range l {
		if directive.Name == name {
			return directive
		}
	}
	return nil
}

// Argument as specified in:
// http://facebook.github.io/graphql/draft/#Argument
type Argument struct {
	Name     string
	Value    Value
	Position Position
}

// ArgumentList is an ordered list of arguments
type ArgumentList []*Argument

// ForName returns the argument named name or nil
func (l ArgumentList) ForName(name string) *Argument {
	for _, argument := range l {
		if argument.Name == name {
			return argument
		}
	}
	return nil
}

// IsVariable reports whether the argument is bound to a variable
func (a *Argument) IsVariable() bool {
	_, ok := a.Value.(*Variable)
	return ok
}
