package printer

import (
	"encoding/json"
	"strconv"

	"github.com/wundergraph/cqir/pkg/cqir"
	"github.com/wundergraph/cqir/pkg/document"
	"github.com/wundergraph/cqir/pkg/operationreport"
	"github.com/wundergraph/cqir/pkg/schema"
)

func (s *printState) printCalls(field *document.Field, definition *schema.FieldDefinition) ([]*cqir.Call, error) {
	if len(field.Arguments) == 0 {
		return nil, nil
	}
	calls := make([]*cqir.Call, 0, len(field.Arguments))
	for _, argument := range field.Arguments {
		argumentDefinition, ok := definition.DeclaredArgument(argument.Name)
		if !ok {
			return nil, operationreport.ErrUnknownArgument(argument.Name, field.Name, location(argument.Position))
		}
		call, err := s.printArgument(argument, argumentDefinition)
		if err != nil {
			return nil, err
		}
		calls = append(calls, call)
	}
	return calls, nil
}

// printArgument annotates the argument type only where the runtime cannot infer it from the value
func (s *printState) printArgument(argument *document.Argument, definition *schema.ArgumentDefinition) (*cqir.Call, error) {
	metadata := cqir.Metadata{}
	if argumentType := definition.Type; argumentType.IsEnum() || argumentType.IsInputObject() || argumentType.IsCustomScalar() {
		metadata["type"] = argumentType.NameWithModifiers()
	}
	value, err := s.printArgumentValue(argument.Value)
	if err != nil {
		return nil, err
	}
	return &cqir.Call{
		Name:     argument.Name,
		Metadata: metadata,
		Value:    value,
	}, nil
}

func (s *printState) printArgumentValue(value document.Value) (cqir.Argument, error) {
	if variable, ok := value.(*document.Variable); ok {
		return s.printVariable(variable.Name), nil
	}
	return s.printValue(value)
}

// printVariable prints a substitution for names bound by the enclosing code, a CallVariable otherwise
func (s *printState) printVariable(name string) cqir.Argument {
	if s.isSubstitutionParameter(name) {
		return &cqir.Substitution{Name: name}
	}
	return &cqir.CallVariable{CallVariableName: name}
}

// printValue prints lists item by item, any other literal as one CallValue
func (s *printState) printValue(value document.Value) (cqir.Argument, error) {
	if list, ok := value.(*document.ListValue); ok {
		out := make(cqir.ArgumentList, 0, len(list.Values))
		for _, item := range list.Values {
			printed, err := s.printArgumentValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, printed)
		}
		return out, nil
	}
	literal, err := s.literal(value)
	if err != nil {
		return nil, err
	}
	return &cqir.CallValue{CallValue: literal}, nil
}

// literal converts a value into its plain form, variables nested in objects or lists print as variables
func (s *printState) literal(value document.Value) (interface{}, error) {
	switch v := value.(type) {
	case *document.Variable:
		return s.printVariable(v.Name), nil
	case *document.IntValue:
		return number(v.Raw, v.Position)
	case *document.FloatValue:
		return number(v.Raw, v.Position)
	case *document.StringValue:
		return v.Value, nil
	case *document.BooleanValue:
		return v.Value, nil
	case *document.NullValue:
		return nil, nil
	case *document.EnumValue:
		return v.Value, nil
	case *document.ListValue:
		out := make([]interface{}, 0, len(v.Values))
		for _, item := range v.Values {
			literal, err := s.literal(item)
			if err != nil {
				return nil, err
			}
			out = append(out, literal)
		}
		return out, nil
	case *document.ObjectValue:
		out := make(cqir.ObjectLiteral, 0, len(v.Fields))
		for _, field := range v.Fields {
			literal, err := s.literal(field.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, cqir.ObjectLiteralField{Name: field.Name, Value: literal})
		}
		return out, nil
	default:
		return nil, operationreport.ErrInvalidLiteral("unknown value", location(value.Pos()))
	}
}

func number(raw string, position document.Position) (json.Number, error) {
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return "", operationreport.ErrInvalidLiteral(raw, location(position))
	}
	return json.Number(raw), nil
}

// printDirectives prints every directive except @relay, which only contributes metadata
func (s *printState) printDirectives(directives document.DirectiveList) ([]*cqir.Directive, error) {
	var printed []*cqir.Directive
	for _, directive := range directives {
		if directive.Name == relayDirective {
			continue
		}
		out := &cqir.Directive{
			Name: directive.Name,
			Args: make([]*cqir.DirectiveArgument, 0, len(directive.Arguments)),
		}
		for _, argument := range directive.Arguments {
			value, err := s.printArgumentValue(argument.Value)
			if err != nil {
				return nil, err
			}
			out.Args = append(out.Args, &cqir.DirectiveArgument{Name: argument.Name, Value: value})
		}
		printed = append(printed, out)
	}
	return printed, nil
}

// printRelayDirectiveMetadata copies the scalar arguments of @relay, except variables
func (s *printState) printRelayDirectiveMetadata(directives document.DirectiveList) (cqir.Metadata, error) {
	relay := directives.ForName(relayDirective)
	if relay == nil {
		return nil, nil
	}
	metadata := cqir.Metadata{}
	for _, argument := range relay.Arguments {
		if variable, ok := argument.Value.(*document.Variable); ok {
			return nil, operationreport.ErrVariableInRelayDirective(variable.Name, argument.Name, location(argument.Position))
		}
		if argument.Name == relayArgumentVariables {
			continue
		}
		literal, err := s.literal(argument.Value)
		if err != nil {
			return nil, err
		}
		metadata[argument.Name] = literal
	}
	return metadata, nil
}

// ArgumentValue serializes a value the way call arguments are printed.
// Variables named in substitutionParameters become substitutions.
func ArgumentValue(value document.Value, substitutionParameters ...string) (cqir.Argument, error) {
	state := &printState{substitutionParameters: make(map[string]struct{}, len(substitutionParameters))}
	for _, name := range substitutionParameters {
		state.substitutionParameters[name] = struct{}{}
	}
	return state.printArgumentValue(value)
}

// Literal converts a value into the plain form used inside CallValue, e.g. for default values
func Literal(value document.Value) (interface{}, error) {
	state := &printState{substitutionParameters: map[string]struct{}{}}
	return state.literal(value)
}
