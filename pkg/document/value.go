package document

// Value as specified in:
// http://facebook.github.io/graphql/draft/#Value
// The set of implementations is closed.
type Value interface {
	isValue()
	Pos() Position
}

// Variable is a reference like $first
type Variable struct {
	Name     string
	Position Position
}

// IntValue keeps the raw token, conversion happens when printing
type IntValue struct {
	Raw      string
	Position Position
}

type FloatValue struct {
	Raw      string
	Position Position
}

// StringValue holds the already unescaped content of a string or block string
type StringValue struct {
	Value    string
	Block    bool
	Position Position
}

type BooleanValue struct {
	Value    bool
	Position Position
}

type NullValue struct {
	Position Position
}

type EnumValue struct {
	Value    string
	Position Position
}

type ListValue struct {
	Values   []Value
	Position Position
}

type ObjectValue struct {
	Fields   []*ObjectField
	Position Position
}

// ObjectField as specified in:
// http://facebook.github.io/graphql/draft/#ObjectField
type ObjectField struct {
	Name     string
	Value    Value
	Position Position
}

// ForName returns the field named name or nil
func (o *ObjectValue) ForName(name string) *ObjectField {
	for _, field := range o.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

func (*Variable) isValue()     {}
func (*IntValue) isValue()     {}
func (*FloatValue) isValue()   {}
func (*StringValue) isValue()  {}
func (*BooleanValue) isValue() {}
func (*NullValue) isValue()    {}
func (*EnumValue) isValue()    {}
func (*ListValue) isValue()    {}
func (*ObjectValue) isValue()  {}

func (v *Variable) Pos() Position     { return v.Position }
func (v *IntValue) Pos() Position     { return v.Position }
func (v *FloatValue) Pos() Position   { return v.Position }
func (v *StringValue) Pos() Position  { return v.Position }
func (v *BooleanValue) Pos() Position { return v.Position }
func (v *NullValue) Pos() Position    { return v.Position }
func (v *EnumValue) Pos() Position    { return v.Position }
func (v *ListValue) Pos() Position    { return v.Position }
func (v *ObjectValue) Pos() Position  { return v.Position }

// Variables returns the names of all variables referenced by value, in order of appearance
func Variables(value Value) []string {
	var names []string
	collectVariables(value, &names)
	return names
}

func collectVariables(value Value, names *[]string) {
	switch v := value.(type) {
	case *Variable:
		*names = append(*names, v.Name)
	case *ListValue:
		for _, item := range v.Values {
			collectVariables(item, names)
		}
	case *ObjectValue:
		for _, field := range v.Fields {
			collectVariables(field.Value, names)
		}
	}
}
