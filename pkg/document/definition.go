// Package document holds the executable definitions consumed by the compiler.
//
// A Definition is produced once by Parse and treated as immutable afterwards.
// Stages that rewrite a definition (see package normalization) build a new tree.
package document

import "strconv"

// DefinitionKind tells which executable definition a Definition holds
type DefinitionKind int

const (
	DefinitionKindUnknown DefinitionKind = iota
	DefinitionKindQuery
	DefinitionKindMutation
	DefinitionKindSubscription
	DefinitionKindFragment
)

func (d DefinitionKind) String() string {
	switch d {
	case DefinitionKindQuery:
		return "query"
	case DefinitionKindMutation:
		return "mutation"
	case DefinitionKindSubscription:
		return "subscription"
	case DefinitionKindFragment:
		return "fragment"
	default:
		return "String() not implemented for DefinitionKind: " + strconv.Itoa(int(d))
	}
}

// IsOperation is true for queries, mutations and subscriptions
func (d DefinitionKind) IsOperation() bool {
	return d == DefinitionKindQuery || d == DefinitionKindMutation || d == DefinitionKindSubscription
}

// Definition is either an OperationDefinition or a FragmentDefinition as specified in:
// http://facebook.github.io/graphql/draft/#ExecutableDefinition
type Definition struct {
	Kind                DefinitionKind
	Name                string
	TypeCondition       string
	VariableDefinitions []*VariableDefinition
	Directives          DirectiveList
	SelectionSet        SelectionSet
	Position            Position
}

// VariableDefinition as specified in:
// http://facebook.github.io/graphql/draft/#VariableDefinition
type VariableDefinition struct {
	Name         string
	Type         string
	DefaultValue Value
	Position     Position
}

// Position points into the source the definition was parsed from.
// Line and Column start at 1, the zero value means unknown.
type Position struct {
	Line   int
	Column int
	Source string
}

func (p Position) IsKnown() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if !p.IsKnown() {
		return "<unknown>"
	}
	out := strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
	if p.Source != "" {
		out = p.Source + ":" + out
	}
	return out
}
