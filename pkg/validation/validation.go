// Package validation holds the structural rules a definition must satisfy before it is printed.
//
// Every rule is a pure function returning nil or an operationreport.ExternalError.
// This is not full GraphQL validation, only the subset the runtime conventions depend on.
package validation

import (
	"github.com/wundergraph/cqir/pkg/document"
	"github.com/wundergraph/cqir/pkg/operationreport"
	"github.com/wundergraph/cqir/pkg/schema"
)

const (
	argumentFirst  = "first"
	argumentLast   = "last"
	argumentBefore = "before"
	argumentAfter  = "after"
	argumentFind   = "find"

	nodeFieldName = "node"
)

// RootFieldCount requires operations to select exactly one root field
func RootFieldCount(definition *document.Definition) error {
	if !definition.Kind.IsOperation() || len(definition.SelectionSet) == 1 {
		return nil
	}
	return operationreport.ErrTooManyRootFields(len(definition.SelectionSet), definition.Kind.String(), definition.Name, location(definition.Position))
}

// QueryRootFieldArity allows at most one argument on a query root field.
// That argument becomes the identifying argument of the query.
func QueryRootFieldArity(field *document.Field) error {
	if len(field.Arguments) <= 1 {
		return nil
	}
	return operationreport.ErrInvalidRootFieldArity(field.Name, location(field.Position))
}

// ConnectionArguments rejects pagination argument combinations the runtime cannot page with,
// unless all of the combined arguments are variables
func ConnectionArguments(field *document.Field) error {
	first := field.Arguments.ForName(argumentFirst)
	last := field.Arguments.ForName(argumentLast)
	before := field.Arguments.ForName(argumentBefore)
	after := field.Arguments.ForName(argumentAfter)

	if !bothVariables(first, last) {
		return operationreport.ErrConflictingPaginationArguments(field.Name,
			[]string{"first: <count>", "last: <count>"},
			"`(first: <count>)`, `(last: <count>)`, or `(first: $<var>, last: $<var>)`",
			location(field.Position))
	}
	if !bothVariables(first, before) {
		return operationreport.ErrConflictingPaginationArguments(field.Name,
			[]string{"before: <cursor>", "first: <count>"},
			"`(after: <cursor>, first: <count>)`, `(before: <cursor>, last: <count>)`, or `(before: $<var>, first: $<var>)`",
			location(field.Position))
	}
	if !bothVariables(last, after) {
		return operationreport.ErrConflictingPaginationArguments(field.Name,
			[]string{"after: <cursor>", "last: <count>"},
			"`(after: <cursor>, first: <count>)`, `(before: <cursor>, last: <count>)`, or `(after: $<var>, last: $<var>)`",
			location(field.Position))
	}
	return nil
}

// bothVariables is true unless both arguments are present and one of them is a literal
func bothVariables(a, b *document.Argument) bool {
	if a == nil || b == nil {
		return true
	}
	return a.IsVariable() && b.IsVariable()
}

// ConnectionSubfields checks the fields selected on a connection, directly or through inline fragments.
// edges and pageInfo need a pagination or find argument unless the definition is a pattern.
// A list of the connection's node type next to edges is rejected in favor of edges { node }.
func ConnectionSubfields(field *document.Field, connection schema.Type, names schema.FieldNames, pattern bool) error {
	nodeType, ok := connection.ConnectionNodeType()
	if !ok {
		return nil
	}
	paginated := pattern ||
		field.Arguments.ForName(argumentFind) != nil ||
		field.Arguments.ForName(argumentFirst) != nil ||
		field.Arguments.ForName(argumentLast) != nil

	for _, subfield := range Subfields(field.SelectionSet) {
		if subfield.Name == names.Edges || subfield.Name == names.PageInfo {
			if !paginated {
				return operationreport.ErrMissingPaginationArgument(subfield.Name, field.Name, location(subfield.Position))
			}
			continue
		}
		definition, ok := connection.FieldDefinition(subfield.Name)
		if !ok {
			continue
		}
		if definition.Type.IsList() && definition.Type.Name() == nodeType.Name() {
			return operationreport.ErrUseEdgesNodeInstead(subfield.Name, field.Name, names.Edges, names.Node, location(subfield.Position))
		}
	}
	return nil
}

// Subfields returns the fields of set including those nested in inline fragments, fragment spreads are not followed
func Subfields(set document.SelectionSet) []*document.Field {
	var fields []*document.Field
	for _, selection := range set {
		switch s := selection.(type) {
		case *document.Field:
			fields = append(fields, s)
		case *document.InlineFragment:
			fields = append(fields, Subfields(s.SelectionSet)...)
		case *document.FragmentSpread:
		}
	}
	return fields
}

// MutationField requires the schema field of a mutation or subscription to declare exactly one argument named inputArgumentName
// and the applied field to supply at most one argument
func MutationField(field *document.Field, definition *schema.FieldDefinition, inputArgumentName string) error {
	if len(definition.Arguments) != 1 {
		return operationreport.ErrWrongMutationArgumentCount(definition.Name, len(definition.Arguments), inputArgumentName, location(field.Position))
	}
	if definition.Arguments[0].Name != inputArgumentName {
		return operationreport.ErrWrongMutationArgumentName(definition.Name, definition.Arguments[0].Name, inputArgumentName, location(field.Position))
	}
	if len(field.Arguments) > 1 {
		return operationreport.ErrTooManyMutationArguments(len(field.Arguments), field.Name, inputArgumentName, location(field.Position))
	}
	return nil
}

// NodeField rejects a node(id:) field declared anywhere but on the query type
func NodeField(field *document.Field, definition *schema.FieldDefinition, parent schema.Type, names schema.FieldNames) error {
	if field.Name != nodeFieldName || parent.IsQueryType() || len(definition.Arguments) != 1 {
		return nil
	}
	argument := definition.Arguments[0]
	if argument.Name != names.ID {
		return nil
	}
	return operationreport.ErrMisplacedNodeField(argument.Name, argument.Type.NameWithModifiers(), parent.Name(), location(field.Position))
}

func location(position document.Position) operationreport.Location {
	return operationreport.LocationFrom(position.Line, position.Column)
}
