package document

import (
	"bytes"
	"io"
	"strconv"
)

// Print writes the canonical single line text of definition to out.
// Two definitions that only differ in whitespace, comments or block string style print identically.
func Print(definition *Definition, out io.Writer) error {
	p := printer{out: out}
	p.printDefinition(definition)
	return p.err
}

// PrintString is Print into a string
func PrintString(definition *Definition) (string, error) {
	buf := &bytes.Buffer{}
	err := Print(definition, buf)
	return buf.String(), err
}

type printer struct {
	out io.Writer
	err error
}

func (p *printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.out, s)
}

func (p *printer) printDefinition(definition *Definition) {
	p.write(definition.Kind.String())
	if definition.Name != "" {
		p.write(" ")
		p.write(definition.Name)
	}
	if definition.Kind == DefinitionKindFragment {
		p.write(" on ")
		p.write(definition.TypeCondition)
	}
	if len(definition.VariableDefinitions) != 0 {
		p.write("(")
		for i, variable := range definition.VariableDefinitions {
			if i != 0 {
				p.write(", ")
			}
			p.write("$")
			p.write(variable.Name)
			p.write(": ")
			p.write(variable.Type)
			if variable.DefaultValue != nil {
				p.write(" = ")
				p.printValue(variable.DefaultValue)
			}
		}
		p.write(")")
	}
	p.printDirectives(definition.Directives)
	p.write(" ")
	p.printSelectionSet(definition.SelectionSet)
}

func (p *printer) printSelectionSet(set SelectionSet) {
	p.write("{")
	for i, selection := range set {
		if i != 0 {
			p.write(" ")
		}
		switch s := selection.(type) {
		case *Field:
			if s.Alias != "" {
				p.write(s.Alias)
				p.write(": ")
			}
			p.write(s.Name)
			p.printArguments(s.Arguments)
			p.printDirectives(s.Directives)
			if len(s.SelectionSet) != 0 {
				p.write(" ")
				p.printSelectionSet(s.SelectionSet)
			}
		case *FragmentSpread:
			p.write("...")
			p.write(s.Name)
			p.printDirectives(s.Directives)
		case *InlineFragment:
			p.write("...")
			if s.TypeCondition != "" {
				p.write(" on ")
				p.write(s.TypeCondition)
			}
			p.printDirectives(s.Directives)
			p.write(" ")
			p.printSelectionSet(s.SelectionSet)
		}
	}
	p.write("}")
}

func (p *printer) printDirectives(directives DirectiveList) {
	for _, directive := range directives {
		p.write(" @")
		p.write(directive.Name)
		p.printArguments(directive.Arguments)
	}
}

func (p *printer) printArguments(arguments ArgumentList) {
	if len(arguments) == 0 {
		return
	}
	p.write("(")
	for i, argument := range arguments {
		if i != 0 {
			p.write(", ")
		}
		p.write(argument.Name)
		p.write(": ")
		p.printValue(argument.Value)
	}
	p.write(")")
}

func (p *printer) printValue(value Value) {
	switch v := value.(type) {
	case *Variable:
		p.write("$")
		p.write(v.Name)
	case *IntValue:
		p.write(v.Raw)
	case *FloatValue:
		p.write(v.Raw)
	case *StringValue:
		p.write(strconv.Quote(v.Value))
	case *BooleanValue:
		p.write(strconv.FormatBool(v.Value))
	case *NullValue:
		p.write("null")
	case *EnumValue:
		p.write(v.Value)
	case *ListValue:
		p.write("[")
		for i, item := range v.Values {
			if i != 0 {
				p.write(", ")
			}
			p.printValue(item)
		}
		p.write("]")
	case *ObjectValue:
		p.write("{")
		for i, field := range v.Fields {
			if i != 0 {
				p.write(", ")
			}
			p.write(field.Name)
			p.write(": ")
			p.printValue(field.Value)
		}
		p.write("}")
	}
}
