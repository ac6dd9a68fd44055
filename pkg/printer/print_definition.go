package printer

import (
	"github.com/wundergraph/cqir/pkg/cqir"
	"github.com/wundergraph/cqir/pkg/document"
	"github.com/wundergraph/cqir/pkg/operationreport"
	"github.com/wundergraph/cqir/pkg/schema"
	"github.com/wundergraph/cqir/pkg/validation"
)

// rootField returns the field an operation selects on its root type
func (s *printState) rootField() (*document.Field, error) {
	if s.validate() {
		if err := validation.RootFieldCount(s.definition); err != nil {
			return nil, err
		}
	}
	fields := s.definition.SelectionSet.Fields()
	if len(fields) == 0 {
		return nil, operationreport.ErrMissingRootField(s.definition.Name, location(s.definition.Position))
	}
	return fields[0], nil
}

func (s *printState) rootFieldDefinition(rootType schema.Type, field *document.Field) (*schema.FieldDefinition, error) {
	definition, ok := rootType.FieldDefinition(field.Name)
	if !ok {
		return nil, operationreport.ErrUnknownField(field.Name, rootType.Name(), location(field.Position))
	}
	return definition, nil
}

func (s *printState) printQuery() (cqir.Root, error) {
	queryType, ok := s.schema.QueryType()
	if !ok {
		return nil, operationreport.ErrMissingRootType("query", location(s.definition.Position))
	}
	rootField, err := s.rootField()
	if err != nil {
		return nil, err
	}
	fieldDefinition, err := s.rootFieldDefinition(queryType, rootField)
	if err != nil {
		return nil, err
	}
	if err := validation.QueryRootFieldArity(rootField); err != nil {
		return nil, err
	}
	rootFieldType := fieldDefinition.Type

	requisites, idFragment := s.requisites(rootFieldType, rootField.SelectionSet)
	children, err := s.printSelections(rootField.SelectionSet, rootFieldType, requisites, idFragment, false)
	if err != nil {
		return nil, err
	}

	metadata := cqir.Metadata{}
	if rootFieldType.IsList() {
		metadata["isPlural"] = true
	}
	if rootFieldType.IsAbstract() {
		metadata["isAbstract"] = true
	}

	var calls []*cqir.Call
	if len(rootField.Arguments) == 1 {
		argument := rootField.Arguments[0]
		argumentDefinition, ok := fieldDefinition.DeclaredArgument(argument.Name)
		if !ok {
			return nil, operationreport.ErrUnknownArgument(argument.Name, rootField.Name, location(argument.Position))
		}
		value, err := s.printArgumentValue(argument.Value)
		if err != nil {
			return nil, err
		}
		argumentType := argumentDefinition.Type.NameWithModifiers()
		metadata["identifyingArgName"] = argument.Name
		metadata["identifyingArgType"] = argumentType
		calls = []*cqir.Call{{
			Name:     argument.Name,
			Metadata: cqir.Metadata{"type": argumentType},
			Value:    value,
		}}
	}

	directives, err := s.printDirectives(append(append(document.DirectiveList{}, s.definition.Directives...), rootField.Directives...))
	if err != nil {
		return nil, err
	}

	return &cqir.Query{
		Name:       s.definition.Name,
		Type:       rootFieldType.Name(),
		FieldName:  rootField.Name,
		Calls:      calls,
		Children:   children,
		Directives: directives,
		Metadata:   metadata,
	}, nil
}

// operation holds what mutations and subscriptions print identically
type operation struct {
	responseType string
	calls        []*cqir.Call
	children     *cqir.Children
	directives   []*cqir.Directive
	metadata     cqir.Metadata
}

func (s *printState) printOperation(rootType schema.Type, clientIDField string) (*operation, error) {
	rootField, err := s.rootField()
	if err != nil {
		return nil, err
	}
	fieldDefinition, err := s.rootFieldDefinition(rootType, rootField)
	if err != nil {
		return nil, err
	}
	if err := validation.MutationField(rootField, fieldDefinition, s.options.InputArgumentName); err != nil {
		return nil, err
	}
	responseType := fieldDefinition.Type

	requisites, idFragment := s.requisites(responseType, rootField.SelectionSet)
	if responseType.HasField(clientIDField) {
		requisites = requisites.with(clientIDField)
	}
	children, err := s.printSelections(rootField.SelectionSet, responseType, requisites, idFragment, false)
	if err != nil {
		return nil, err
	}

	metadata := cqir.Metadata{
		"inputType": fieldDefinition.Arguments[0].Type.NameWithModifiers(),
	}

	directives, err := s.printDirectives(append(append(document.DirectiveList{}, s.definition.Directives...), rootField.Directives...))
	if err != nil {
		return nil, err
	}

	return &operation{
		responseType: responseType.Name(),
		calls: []*cqir.Call{{
			Name:     rootField.Name,
			Metadata: cqir.Metadata{},
			Value:    s.printVariable(s.options.InputArgumentName),
		}},
		children:   children,
		directives: directives,
		metadata:   metadata,
	}, nil
}

func (s *printState) printMutation() (cqir.Root, error) {
	mutationType, ok := s.schema.MutationType()
	if !ok {
		return nil, operationreport.ErrMissingRootType("mutation", location(s.definition.Position))
	}
	op, err := s.printOperation(mutationType, s.names.ClientMutationID)
	if err != nil {
		return nil, err
	}
	return &cqir.Mutation{
		Name:         s.definition.Name,
		ResponseType: op.responseType,
		Calls:        op.calls,
		Children:     op.children,
		Directives:   op.directives,
		Metadata:     op.metadata,
	}, nil
}

func (s *printState) printSubscription() (cqir.Root, error) {
	subscriptionType, ok := s.schema.SubscriptionType()
	if !ok {
		return nil, operationreport.ErrMissingRootType("subscription", location(s.definition.Position))
	}
	op, err := s.printOperation(subscriptionType, s.names.ClientSubscriptionID)
	if err != nil {
		return nil, err
	}
	return &cqir.Subscription{
		Name:         s.definition.Name,
		ResponseType: op.responseType,
		Calls:        op.calls,
		Children:     op.children,
		Directives:   op.directives,
		Metadata:     op.metadata,
	}, nil
}

// printFragmentDefinition prints a named fragment.
// @relay(variables: [...]) wraps it into a CreateFragment binding the listed variables as substitutions.
func (s *printState) printFragmentDefinition() (cqir.Root, error) {
	fragmentType, ok := s.schema.Type(s.definition.TypeCondition)
	if !ok {
		return nil, operationreport.ErrUnknownType(s.definition.TypeCondition, location(s.definition.Position))
	}

	var variables []string
	if relay := s.definition.Directives.ForName(relayDirective); relay != nil {
		if pattern := relay.Arguments.ForName(relayArgumentPattern); pattern != nil {
			value, ok := pattern.Value.(*document.BooleanValue)
			s.pattern = ok && value.Value
		}
		if argument := relay.Arguments.ForName(relayArgumentVariables); argument != nil {
			var err error
			if variables, err = relayVariables(argument); err != nil {
				return nil, err
			}
			for _, name := range variables {
				s.substitutionParameters[name] = struct{}{}
			}
		}
	}

	fragment, err := s.printFragment(s.definition.SelectionSet, fragmentType, s.definition.Directives, false)
	if err != nil {
		return nil, err
	}
	if variables == nil {
		return fragment, nil
	}
	fragment.Metadata["isTrackingEnabled"] = true
	return &cqir.CreateFragment{Fragment: fragment, Variables: variables}, nil
}

func relayVariables(argument *document.Argument) ([]string, error) {
	list, ok := argument.Value.(*document.ListValue)
	if !ok {
		return nil, operationreport.ErrInvalidRelayArgument(relayArgumentVariables, "a list of strings", location(argument.Position))
	}
	variables := make([]string, 0, len(list.Values))
	for _, item := range list.Values {
		name, ok := item.(*document.StringValue)
		if !ok {
			return nil, operationreport.ErrInvalidRelayArgument(relayArgumentVariables, "a list of strings", location(item.Pos()))
		}
		variables = append(variables, name.Value)
	}
	return variables, nil
}

// printFragment prints the named fragment or an inline fragment, both named after the enclosing definition
func (s *printState) printFragment(selections document.SelectionSet, fragmentType schema.Type, directives document.DirectiveList, generated bool) (*cqir.Fragment, error) {
	id := s.fragmentID()
	requisites, idFragment := s.requisites(fragmentType, selections)
	children, err := s.printSelections(selections, fragmentType, requisites, idFragment, generated)
	if err != nil {
		return nil, err
	}

	metadata := cqir.Metadata{}
	if fragmentType.IsAbstract() {
		metadata["isAbstract"] = true
	}
	relayMetadata, err := s.printRelayDirectiveMetadata(directives)
	if err != nil {
		return nil, err
	}
	metadata.Merge(relayMetadata)

	printedDirectives, err := s.printDirectives(directives)
	if err != nil {
		return nil, err
	}

	return &cqir.Fragment{
		Name:       s.definition.Name,
		Type:       fragmentType.Name(),
		ID:         id,
		Children:   children,
		Directives: printedDirectives,
		Metadata:   metadata,
	}, nil
}

// RelayVariables returns the names a fragment definition lists in @relay(variables: [...]), nil if there are none
func RelayVariables(definition *document.Definition) ([]string, error) {
	if definition.Kind != document.DefinitionKindFragment {
		return nil, nil
	}
	relay := definition.Directives.ForName(relayDirective)
	if relay == nil {
		return nil, nil
	}
	argument := relay.Arguments.ForName(relayArgumentVariables)
	if argument == nil {
		return nil, nil
	}
	return relayVariables(argument)
}
