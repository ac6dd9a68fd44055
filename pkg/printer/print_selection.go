package printer

import (
	"github.com/wundergraph/cqir/pkg/cqir"
	"github.com/wundergraph/cqir/pkg/document"
	"github.com/wundergraph/cqir/pkg/operationreport"
	"github.com/wundergraph/cqir/pkg/schema"
	"github.com/wundergraph/cqir/pkg/validation"
)

// printSelections prints fields first, then inline fragments and fragment references in source order,
// then the generated id fragment. It returns nil for an empty selection.
func (s *printState) printSelections(selections document.SelectionSet, parentType schema.Type, requisites requisiteFields,
	idFragment *document.InlineFragment, generated bool) (*cqir.Children, error) {

	var (
		fields    []*document.Field
		fragments []cqir.Child
		flatten   bool
	)

	for _, selection := range selections {
		switch sel := selection.(type) {
		case *document.Field:
			fields = append(fields, sel)
		case *document.FragmentSpread:
			if len(sel.Directives) != 0 {
				return nil, operationreport.ErrUnsupportedSpreadDirective(sel.Directives[0].Name, sel.Name, location(sel.Directives[0].Position))
			}
			fragments = append(fragments, &cqir.FragmentReference{Slot: sel.Name})
			flatten = true
		case *document.InlineFragment:
			fragmentType := parentType
			if sel.TypeCondition != "" {
				var ok bool
				if fragmentType, ok = s.schema.Type(sel.TypeCondition); !ok {
					return nil, operationreport.ErrUnknownType(sel.TypeCondition, location(sel.Position))
				}
			}
			fragment, err := s.printFragment(sel.SelectionSet, fragmentType, sel.Directives, generated)
			if err != nil {
				return nil, err
			}
			fragments = append(fragments, fragment)
		default:
			return nil, operationreport.ErrUnsupportedSelection("unknown selection type", location(selection.Pos()))
		}
	}

	if idFragment != nil {
		nodeType, ok := s.schema.Type(idFragment.TypeCondition)
		if !ok {
			return nil, operationreport.ErrUnknownType(idFragment.TypeCondition, location(idFragment.Position))
		}
		fragment, err := s.printFragment(idFragment.SelectionSet, nodeType, idFragment.Directives, true)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, fragment)
	}

	printedFields, err := s.printFields(fields, parentType, requisites, generated)
	if err != nil {
		return nil, err
	}

	if len(printedFields) == 0 && len(fragments) == 0 {
		return nil, nil
	}

	children := &cqir.Children{
		Selections: make([]cqir.Child, 0, len(printedFields)+len(fragments)),
		Flatten:    flatten,
	}
	for _, field := range printedFields {
		children.Selections = append(children.Selections, field)
	}
	children.Selections = append(children.Selections, fragments...)
	return children, nil
}

// printFields prints the requested fields, then every requisite field that was not requested
func (s *printState) printFields(fields []*document.Field, parentType schema.Type, requisites requisiteFields, generated bool) ([]*cqir.Field, error) {
	if parentType.IsConnection() && parentType.HasField(s.names.PageInfo) {
		for _, field := range fields {
			if field.Name == s.names.Edges {
				requisites = requisites.with(s.names.PageInfo)
				break
			}
		}
	}

	requested := make(map[string]struct{}, len(fields))
	printed := make([]*cqir.Field, 0, len(fields)+len(requisites))

	for _, field := range fields {
		requested[field.Name] = struct{}{}
		out, err := s.printField(field, parentType, requisites.has(field.Name), false, generated)
		if err != nil {
			return nil, err
		}
		printed = append(printed, out)
	}

	for _, name := range requisites {
		if _, ok := requested[name]; ok {
			continue
		}
		out, err := s.printField(parentType.GenerateField(name), parentType, true, true, generated)
		if err != nil {
			return nil, err
		}
		printed = append(printed, out)
	}

	return printed, nil
}

func (s *printState) printField(field *document.Field, parentType schema.Type, isRequisite, isGenerated, generatedDefinition bool) (*cqir.Field, error) {
	definition, ok := parentType.FieldDefinition(field.Name)
	if !ok {
		return nil, operationreport.ErrUnknownField(field.Name, parentType.Name(), location(field.Position))
	}
	fieldType := definition.Type
	validate := s.validate() && !generatedDefinition && !isGenerated

	if validate {
		if err := validation.NodeField(field, definition, parentType, s.names); err != nil {
			return nil, err
		}
	}

	metadata := cqir.Metadata{}
	requisites, idFragment := s.identity(fieldType, field.SelectionSet)

	if fieldType.CanHaveSubselections() {
		metadata["canHaveSubselections"] = true
	}
	if identifying, ok := fieldType.IdentifyingFieldDefinition(); ok {
		metadata["inferredRootCallName"] = inferredRootCallName
		metadata["inferredPrimaryKey"] = identifying.Name
	}

	switch {
	case fieldType.IsConnection():
		if definition.HasDeclaredArgument("first") || definition.HasDeclaredArgument("last") {
			if validate {
				if err := validation.ConnectionArguments(field); err != nil {
					return nil, err
				}
				if err := validation.ConnectionSubfields(field, fieldType, s.names, s.pattern); err != nil {
					return nil, err
				}
			}
			metadata["isConnection"] = true
			if definition.HasDeclaredArgument("find") {
				metadata["isFindable"] = true
			}
		}
	case fieldType.IsConnectionPageInfo():
		requisites = requisites.with(s.names.HasNextPage).with(s.names.HasPreviousPage)
	case fieldType.IsConnectionEdge():
		requisites = requisites.with(s.names.Cursor).with(s.names.Node)
	}

	if fieldType.IsAbstract() {
		metadata["isAbstract"] = true
		requisites = requisites.with(s.names.TypeName)
	}
	if fieldType.IsList() {
		metadata["isPlural"] = true
	}
	if isGenerated {
		metadata["isGenerated"] = true
	}
	if isRequisite {
		metadata["isRequisite"] = true
	}

	children, err := s.printSelections(field.SelectionSet, fieldType, requisites, idFragment, generatedDefinition)
	if err != nil {
		return nil, err
	}

	calls, err := s.printCalls(field, definition)
	if err != nil {
		return nil, err
	}

	directives, err := s.printDirectives(field.Directives)
	if err != nil {
		return nil, err
	}

	relayMetadata, err := s.printRelayDirectiveMetadata(field.Directives)
	if err != nil {
		return nil, err
	}
	metadata.Merge(relayMetadata)

	return &cqir.Field{
		Alias:      field.Alias,
		FieldName:  field.Name,
		Type:       fieldType.Name(),
		Calls:      calls,
		Children:   children,
		Directives: directives,
		Metadata:   metadata,
	}, nil
}
