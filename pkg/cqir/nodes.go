package cqir

type Query struct {
	Name      string
	Type      string
	FieldName string
	// Calls holds at most one Call, the identifying argument
	Calls      []*Call
	Children   *Children
	Directives []*Directive
	Metadata   Metadata
}

type Mutation struct {
	Name         string
	ResponseType string
	Calls        []*Call
	Children     *Children
	Directives   []*Directive
	Metadata     Metadata
}

// Subscription has the same shape as a Mutation
type Subscription struct {
	Name         string
	ResponseType string
	Calls        []*Call
	Children     *Children
	Directives   []*Directive
	Metadata     Metadata
}

type Fragment struct {
	Name       string
	Type       string
	ID         string
	Children   *Children
	Directives []*Directive
	Metadata   Metadata
}

type Field struct {
	Alias      string
	FieldName  string
	Type       string
	Calls      []*Call
	Children   *Children
	Directives []*Directive
	Metadata   Metadata
}

type Call struct {
	Name     string
	Metadata Metadata
	Value    Argument
}

type CallVariable struct {
	CallVariableName string
}

// CallValue wraps a literal. Literal is nil, bool, string, json.Number, []interface{} or ObjectLiteral.
type CallValue struct {
	CallValue interface{}
}

type Directive struct {
	Name string
	Args []*DirectiveArgument
}

type DirectiveArgument struct {
	Name  string
	Value Argument
}

// ArgumentList is a list argument, each item serialized on its own
type ArgumentList []Argument

// ObjectLiteral keeps the source order of object fields
type ObjectLiteral []ObjectLiteralField

type ObjectLiteralField struct {
	Name  string
	Value interface{}
}

func (*Query) Kind() Kind        { return KindQuery }
func (*Mutation) Kind() Kind     { return KindMutation }
func (*Subscription) Kind() Kind { return KindSubscription }
func (*Fragment) Kind() Kind     { return KindFragment }
func (*Field) Kind() Kind        { return KindField }
func (*Call) Kind() Kind         { return KindCall }
func (*CallVariable) Kind() Kind { return KindCallVariable }
func (*CallValue) Kind() Kind    { return KindCallValue }
func (*Directive) Kind() Kind    { return KindDirective }

func (*Query) isNode()        {}
func (*Mutation) isNode()     {}
func (*Subscription) isNode() {}
func (*Fragment) isNode()     {}
func (*Field) isNode()        {}
func (*Call) isNode()         {}
func (*CallVariable) isNode() {}
func (*CallValue) isNode()    {}
func (*Directive) isNode()    {}

func (*Query) isRoot()          {}
func (*Mutation) isRoot()       {}
func (*Subscription) isRoot()   {}
func (*Fragment) isRoot()       {}
func (*CreateFragment) isRoot() {}

func (q *Query) RootName() string          { return q.Name }
func (m *Mutation) RootName() string       { return m.Name }
func (s *Subscription) RootName() string   { return s.Name }
func (f *Fragment) RootName() string       { return f.Name }
func (c *CreateFragment) RootName() string { return c.Fragment.Name }

func (*Field) isChild()             {}
func (*Fragment) isChild()          {}
func (*FragmentReference) isChild() {}

func (*CallVariable) isArgument() {}
func (*CallValue) isArgument()    {}
func (*Substitution) isArgument() {}
func (ArgumentList) isArgument()  {}
