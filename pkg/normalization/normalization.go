// Package normalization rewrites a raw definition into the shape the printer expects.
//
// Normalize extracts @argumentDefinitions, drops @connection, replaces fragment spreads
// with substitution slots and collects every referenced variable.
package normalization

import (
	"strconv"

	"github.com/wundergraph/cqir/pkg/document"
	"github.com/wundergraph/cqir/pkg/operationreport"
)

const (
	ArgumentDefinitionsDirective = "argumentDefinitions"
	ArgumentsDirective           = "arguments"
	ConnectionDirective          = "connection"
	RelayDirective               = "relay"

	maskArgument = "mask"
)

// Slot is a named placeholder for a fragment spread, resolved to a runtime value outside the printed tree
type Slot struct {
	// Name is the fragment name, or <fragment>_args<N> for spreads carrying @arguments
	Name         string
	FragmentName string
	// Arguments is nil unless the spread carries @arguments
	Arguments *document.ObjectValue
	Masked    bool
	Position  document.Position
}

type Result struct {
	Definition *document.Definition
	// Slots in order of first appearance
	Slots []Slot
	// Variables are the names of all referenced variables in order of first appearance
	Variables []string
	// ArgumentDefinitions are the formal arguments declared with @argumentDefinitions, nil if absent
	ArgumentDefinitions document.ArgumentList
}

// Slot returns the slot named name
func (r *Result) Slot(name string) (Slot, bool) {
	for _, slot := range r.Slots {
		if slot.Name == name {
			return slot, true
		}
	}
	return Slot{}, false
}

// Normalize rewrites definition without modifying it.
// All counters live in the returned Result, consecutive calls are independent.
func Normalize(definition *document.Definition) (*Result, error) {
	n := &normalizer{
		argumentCounters: map[string]int{},
		slotIndex:        map[string]int{},
		variableIndex:    map[string]struct{}{},
	}
	return n.normalize(definition)
}

type normalizer struct {
	result           Result
	argumentCounters map[string]int
	slotIndex        map[string]int
	variableIndex    map[string]struct{}
}

func (n *normalizer) normalize(definition *document.Definition) (*Result, error) {
	out := &document.Definition{
		Kind:                definition.Kind,
		Name:                definition.Name,
		TypeCondition:       definition.TypeCondition,
		VariableDefinitions: definition.VariableDefinitions,
		Position:            definition.Position,
	}

	var argumentDefinitions *document.Directive
	for _, directive := range definition.Directives {
		if directive.Name != ArgumentDefinitionsDirective {
			continue
		}
		if argumentDefinitions != nil {
			return nil, operationreport.ErrDuplicateArgumentDefinitions(definition.Name, location(directive.Position))
		}
		argumentDefinitions = directive
	}
	if argumentDefinitions != nil {
		n.result.ArgumentDefinitions = argumentDefinitions.Arguments
	}

	out.Directives = n.directives(definition.Directives, ArgumentDefinitionsDirective)

	selectionSet, err := n.selectionSet(definition.SelectionSet)
	if err != nil {
		return nil, err
	}
	out.SelectionSet = selectionSet
	n.result.Definition = out

	result := n.result
	return &result, nil
}

func (n *normalizer) selectionSet(set document.SelectionSet) (document.SelectionSet, error) {
	if set == nil {
		return nil, nil
	}
	out := make(document.SelectionSet, 0, len(set))
	for _, selection := range set {
		switch s := selection.(type) {
		case *document.Field:
			field, err := n.field(s)
			if err != nil {
				return nil, err
			}
			out = append(out, field)
		case *document.InlineFragment:
			directives := n.directives(s.Directives)
			selections, err := n.selectionSet(s.SelectionSet)
			if err != nil {
				return nil, err
			}
			out = append(out, &document.InlineFragment{
				TypeCondition: s.TypeCondition,
				Directives:    directives,
				SelectionSet:  selections,
				Position:      s.Position,
			})
		case *document.FragmentSpread:
			spread, err := n.fragmentSpread(s)
			if err != nil {
				return nil, err
			}
			out = append(out, spread)
		}
	}
	return out, nil
}

func (n *normalizer) field(field *document.Field) (*document.Field, error) {
	n.arguments(field.Arguments)
	directives := n.directives(field.Directives)
	selections, err := n.selectionSet(field.SelectionSet)
	if err != nil {
		return nil, err
	}
	return &document.Field{
		Alias:        field.Alias,
		Name:         field.Name,
		Arguments:    field.Arguments,
		Directives:   directives,
		SelectionSet: selections,
		Position:     field.Position,
	}, nil
}

// directives drops @connection and the named directives, recording variables of the kept ones
func (n *normalizer) directives(directives document.DirectiveList, drop ...string) document.DirectiveList {
	if len(directives) == 0 {
		return nil
	}
	out := make(document.DirectiveList, 0, len(directives))
Outer:
	for _, directive := range directives {
		if directive.Name == ConnectionDirective {
			continue
		}
		for _, name := range drop {
			if directive.Name == name {
				continue Outer
			}
		}
		n.arguments(directive.Arguments)
		out = append(out, directive)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (n *normalizer) fragmentSpread(spread *document.FragmentSpread) (*document.FragmentSpread, error) {
	slot := Slot{
		Name:         spread.Name,
		FragmentName: spread.Name,
		Masked:       true,
		Position:     spread.Position,
	}

	switch len(spread.Directives) {
	case 0:
	case 1:
		directive := spread.Directives[0]
		switch directive.Name {
		case ArgumentsDirective:
			slot.Arguments = n.argumentBindings(directive.Arguments)
			n.argumentCounters[spread.Name]++
			slot.Name = spread.Name + "_args" + strconv.Itoa(n.argumentCounters[spread.Name])
		case RelayDirective:
			masked, err := maskOf(spread, directive)
			if err != nil {
				return nil, err
			}
			slot.Masked = masked
		default:
			return nil, operationreport.ErrUnsupportedSpreadDirective(directive.Name, spread.Name, location(directive.Position))
		}
	default:
		return nil, operationreport.ErrConflictingSpreadDirectives(spread.Name, location(spread.Directives[1].Position))
	}

	n.addSlot(slot)

	return &document.FragmentSpread{
		Name:     slot.Name,
		Position: spread.Position,
	}, nil
}

func maskOf(spread *document.FragmentSpread, directive *document.Directive) (bool, error) {
	masked := true
	for _, argument := range directive.Arguments {
		if argument.Name != maskArgument {
			return false, operationreport.ErrInvalidMaskArgument(spread.Name, argument.Name, location(argument.Position))
		}
		value, ok := argument.Value.(*document.BooleanValue)
		if !ok {
			return false, operationreport.ErrInvalidRelayArgument(maskArgument, "a boolean literal", location(argument.Position))
		}
		masked = value.Value
	}
	return masked, nil
}

func (n *normalizer) argumentBindings(arguments document.ArgumentList) *document.ObjectValue {
	n.arguments(arguments)
	bindings := &document.ObjectValue{
		Fields: make([]*document.ObjectField, 0, len(arguments)),
	}
	for _, argument := range arguments {
		bindings.Fields = append(bindings.Fields, &document.ObjectField{
			Name:     argument.Name,
			Value:    argument.Value,
			Position: argument.Position,
		})
	}
	return bindings
}

// addSlot keeps the first position of a slot name, a later spread of the same name sets its mask
func (n *normalizer) addSlot(slot Slot) {
	if i, ok := n.slotIndex[slot.Name]; ok {
		n.result.Slots[i].Masked = slot.Masked
		return
	}
	n.slotIndex[slot.Name] = len(n.result.Slots)
	n.result.Slots = append(n.result.Slots, slot)
}

func (n *normalizer) arguments(arguments document.ArgumentList) {
	for _, argument := range arguments {
		for _, name := range document.Variables(argument.Value) {
			if _, ok := n.variableIndex[name]; ok {
				continue
			}
			n.variableIndex[name] = struct{}{}
			n.result.Variables = append(n.result.Variables, name)
		}
	}
}

func location(position document.Position) operationreport.Location {
	return operationreport.LocationFrom(position.Line, position.Column)
}
