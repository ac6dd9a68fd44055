package document

import (
	"errors"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/wundergraph/cqir/pkg/operationreport"
)

// Parse parses all executable definitions of source, in source order.
// name is used as the source name in positions and may be empty.
func Parse(name, source string) ([]*Definition, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: name, Input: source})
	if err != nil {
		return nil, convertParseError(err)
	}
	return FromQueryDocument(doc)
}

// ParseDefinition parses a source that must contain exactly one definition
func ParseDefinition(source string) (*Definition, error) {
	definitions, err := Parse("", source)
	if err != nil {
		return nil, err
	}
	if len(definitions) != 1 {
		return nil, operationreport.ErrDefinitionCount(len(definitions))
	}
	return definitions[0], nil
}

// FromQueryDocument converts a parsed gqlparser document into definitions ordered by position
func FromQueryDocument(doc *ast.QueryDocument) ([]*Definition, error) {
	definitions := make([]*Definition, 0, len(doc.Operations)+len(doc.Fragments))
	for _, operation := range doc.Operations {
		definition, err := convertOperation(operation)
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, definition)
	}
	for _, fragment := range doc.Fragments {
		definitions = append(definitions, convertFragment(fragment))
	}
	sort.SliceStable(definitions, func(i, j int) bool {
		left, right := definitions[i].Position, definitions[j].Position
		if left.Line != right.Line {
			return left.Line < right.Line
		}
		return left.Column < right.Column
	})
	return definitions, nil
}

func convertParseError(err error) error {
	var gqlErr *gqlerror.Error
	if !errors.As(err, &gqlErr) {
		return operationreport.ErrParseFailure(err.Error())
	}
	locations := make([]operationreport.Location, 0, len(gqlErr.Locations))
	for _, location := range gqlErr.Locations {
		locations = append(locations, operationreport.LocationFrom(location.Line, location.Column))
	}
	return operationreport.ErrParseFailure(gqlErr.Message, locations...)
}

func convertOperation(operation *ast.OperationDefinition) (*Definition, error) {
	definition := &Definition{
		Name:         operation.Name,
		Directives:   convertDirectives(operation.Directives),
		SelectionSet: convertSelectionSet(operation.SelectionSet),
		Position:     convertPosition(operation.Position),
	}
	switch operation.Operation {
	case ast.Query:
		definition.Kind = DefinitionKindQuery
	case ast.Mutation:
		definition.Kind = DefinitionKindMutation
	case ast.Subscription:
		definition.Kind = DefinitionKindSubscription
	default:
		return nil, operationreport.ErrParseFailure("unknown operation type: " + string(operation.Operation))
	}
	for _, variable := range operation.VariableDefinitions {
		variableDefinition := &VariableDefinition{
			Name:     variable.Variable,
			Position: convertPosition(variable.Position),
		}
		if variable.Type != nil {
			variableDefinition.Type = variable.Type.String()
		}
		if variable.DefaultValue != nil {
			variableDefinition.DefaultValue = convertValue(variable.DefaultValue)
		}
		definition.VariableDefinitions = append(definition.VariableDefinitions, variableDefinition)
	}
	return definition, nil
}

func convertFragment(fragment *ast.FragmentDefinition) *Definition {
	return &Definition{
		Kind:          DefinitionKindFragment,
		Name:          fragment.Name,
		TypeCondition: fragment.TypeCondition,
		Directives:    convertDirectives(fragment.Directives),
		SelectionSet:  convertSelectionSet(fragment.SelectionSet),
		Position:      convertPosition(fragment.Position),
	}
}

func convertSelectionSet(set ast.SelectionSet) SelectionSet {
	if len(set) == 0 {
		return nil
	}
	out := make(SelectionSet, 0, len(set))
	for _, selection := range set {
		switch s := selection.(type) {
		case *ast.Field:
			out = append(out, &Field{
				Alias:        aliasOf(s),
				Name:         s.Name,
				Arguments:    convertArguments(s.Arguments),
				Directives:   convertDirectives(s.Directives),
				SelectionSet: convertSelectionSet(s.SelectionSet),
				Position:     convertPosition(s.Position),
			})
		case *ast.FragmentSpread:
			out = append(out, &FragmentSpread{
				Name:       s.Name,
				Directives: convertDirectives(s.Directives),
				Position:   convertPosition(s.Position),
			})
		case *ast.InlineFragment:
			out = append(out, &InlineFragment{
				TypeCondition: s.TypeCondition,
				Directives:    convertDirectives(s.Directives),
				SelectionSet:  convertSelectionSet(s.SelectionSet),
				Position:      convertPosition(s.Position),
			})
		}
	}
	return out
}

// gqlparser fills Alias with Name when no alias was written
func aliasOf(field *ast.Field) string {
	if field.Alias == field.Name {
		return ""
	}
	return field.Alias
}

func convertDirectives(directives ast.DirectiveList) DirectiveList {
	if len(directives) == 0 {
		return nil
	}
	out := make(DirectiveList, 0, len(directives))
	for _, directive := range directives {
		out = append(out, &Directive{
			Name:      directive.Name,
			Arguments: convertArguments(directive.Arguments),
			Position:  convertPosition(directive.Position),
		})
	}
	return out
}

func convertArguments(arguments ast.ArgumentList) ArgumentList {
	if len(arguments) == 0 {
		return nil
	}
	out := make(ArgumentList, 0, len(arguments))
	for _, argument := range arguments {
		out = append(out, &Argument{
			Name:     argument.Name,
			Value:    convertValue(argument.Value),
			Position: convertPosition(argument.Position),
		})
	}
	return out
}

func convertValue(value *ast.Value) Value {
	position := convertPosition(value.Position)
	switch value.Kind {
	case ast.Variable:
		return &Variable{Name: value.Raw, Position: position}
	case ast.IntValue:
		return &IntValue{Raw: value.Raw, Position: position}
	case ast.FloatValue:
		return &FloatValue{Raw: value.Raw, Position: position}
	case ast.StringValue:
		return &StringValue{Value: value.Raw, Position: position}
	case ast.BlockValue:
		return &StringValue{Value: value.Raw, Block: true, Position: position}
	case ast.BooleanValue:
		return &BooleanValue{Value: value.Raw == "true", Position: position}
	case ast.NullValue:
		return &NullValue{Position: position}
	case ast.EnumValue:
		return &EnumValue{Value: value.Raw, Position: position}
	case ast.ListValue:
		list := &ListValue{Position: position}
		for _, child := range value.Children {
			list.Values = append(list.Values, convertValue(child.Value))
		}
		return list
	default:
		object := &ObjectValue{Position: position}
		for _, child := range value.Children {
			object.Fields = append(object.Fields, &ObjectField{
				Name:     child.Name,
				Value:    convertValue(child.Value),
				Position: convertPosition(child.Position),
			})
		}
		return object
	}
}

func convertPosition(position *ast.Position) Position {
	if position == nil {
		return Position{}
	}
	out := Position{
		Line:   position.Line,
		Column: position.Column,
	}
	if position.Src != nil {
		out.Source = position.Src.Name
	}
	return out
}
