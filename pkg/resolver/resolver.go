//go:generate mockgen -self_package=github.com/wundergraph/cqir/pkg/resolver -destination=scope_mock_test.go -package=resolver . Scope

// Package resolver turns the substitution slots of a normalized definition into runtime initializers.
//
// A masked slot becomes a FragmentLookup on the generated accessor of the fragment's module.
// An unmasked slot becomes a FragmentContent reading the printed fragment directly.
package resolver

import (
	"regexp"

	"github.com/wundergraph/cqir/pkg/cqir"
	"github.com/wundergraph/cqir/pkg/normalization"
	"github.com/wundergraph/cqir/pkg/operationreport"
	"github.com/wundergraph/cqir/pkg/printer"
)

// DefaultProperty is the property of fragments named without a _property suffix
const DefaultProperty = "data"

var fragmentNameRegex = regexp.MustCompile(`^([a-zA-Z][a-zA-Z0-9]*)(?:_([a-zA-Z][_a-zA-Z0-9]*))?$`)

type BindingKind int

const (
	BindingUnknown BindingKind = iota
	// BindingImported is a name bound by an import
	BindingImported
	// BindingLocal is a name declared in the enclosing source
	BindingLocal
)

func (b BindingKind) String() string {
	switch b {
	case BindingImported:
		return "imported"
	case BindingLocal:
		return "local"
	default:
		return "unknown"
	}
}

// Scope answers which names are bound where the compiled definition lives
type Scope interface {
	LookupBinding(name string) (BindingKind, bool)
}

// MapScope is a Scope backed by a map
type MapScope map[string]BindingKind

func (m MapScope) LookupBinding(name string) (BindingKind, bool) {
	kind, ok := m[name]
	return kind, ok
}

// FragmentNameParts splits `Module_property` into its parts, the property defaults to "data"
func FragmentNameParts(fragmentName string) (module, property string, err error) {
	match := fragmentNameRegex.FindStringSubmatch(fragmentName)
	if match == nil || match[2] == DefaultProperty {
		return "", "", operationreport.ErrInvalidFragmentName(fragmentName, operationreport.Location{})
	}
	module, property = match[1], match[2]
	if property == "" {
		property = DefaultProperty
	}
	return module, property, nil
}

// Resolve creates one initializer per slot, in slot order.
// Variables in fragment arguments named in substitutionParameters print as substitutions.
func Resolve(slots []normalization.Slot, scope Scope, substitutionParameters []string) ([]Initializer, error) {
	initializers := make([]Initializer, 0, len(slots))
	for _, slot := range slots {
		initializer, err := resolveSlot(slot, scope, substitutionParameters)
		if err != nil {
			return nil, err
		}
		initializers = append(initializers, initializer)
	}
	return initializers, nil
}

func resolveSlot(slot normalization.Slot, scope Scope, substitutionParameters []string) (Initializer, error) {
	location := operationreport.LocationFrom(slot.Position.Line, slot.Position.Column)

	module, property, err := FragmentNameParts(slot.FragmentName)
	if err != nil {
		return nil, operationreport.ErrInvalidFragmentName(slot.FragmentName, location)
	}

	moduleKind, moduleBound := scope.LookupBinding(module)
	_, propertyBound := scope.LookupBinding(property)
	if !moduleBound && !propertyBound {
		return nil, operationreport.ErrUnresolvedFragmentReference(module, property, slot.FragmentName, location)
	}

	if !slot.Masked {
		return &FragmentContent{
			Slot:          slot.Name,
			Module:        module,
			Property:      property,
			LocalProperty: propertyBound,
		}, nil
	}

	lookup := &FragmentLookup{
		Slot:     slot.Name,
		Module:   module,
		Property: property,
		// a locally declared module may be the component itself rather than its container
		CheckContainer: moduleKind == BindingLocal,
	}
	if slot.Arguments != nil {
		arguments, err := printer.ArgumentValue(slot.Arguments, substitutionParameters...)
		if err != nil {
			return nil, err
		}
		lookup.Arguments = arguments
	}
	return lookup, nil
}

// Initializer is *FragmentLookup or *FragmentContent
type Initializer interface {
	SlotName() string
	MarshalJSON() ([]byte, error)
	isInitializer()
}

// FragmentLookup fetches the fragment Property from the generated accessor of Module
type FragmentLookup struct {
	Slot     string
	Module   string
	Property string
	// CheckContainer reads Module.__container__ first, falling back to Module
	CheckContainer bool
	// Arguments is nil for spreads without @arguments
	Arguments cqir.Argument
}

// FragmentContent reads the printed fragment directly.
// With LocalProperty the fragment is bound to Property, otherwise Module.Property is read with a fallback.
type FragmentContent struct {
	Slot          string
	Module        string
	Property      string
	LocalProperty bool
}

func (f *FragmentLookup) SlotName() string  { return f.Slot }
func (f *FragmentContent) SlotName() string { return f.Slot }

func (*FragmentLookup) isInitializer()  {}
func (*FragmentContent) isInitializer() {}

func (f *FragmentLookup) MarshalJSON() ([]byte, error) {
	return cqir.Marshal(struct {
		Kind           string        `json:"kind"`
		Slot           string        `json:"slot"`
		Module         string        `json:"module"`
		Property       string        `json:"property"`
		CheckContainer bool          `json:"checkContainer"`
		Arguments      cqir.Argument `json:"arguments"`
	}{"FragmentLookup", f.Slot, f.Module, f.Property, f.CheckContainer, f.Arguments})
}

func (f *FragmentContent) MarshalJSON() ([]byte, error) {
	return cqir.Marshal(struct {
		Kind          string `json:"kind"`
		Slot          string `json:"slot"`
		Module        string `json:"module"`
		Property      string `json:"property"`
		LocalProperty bool   `json:"localProperty"`
	}{"FragmentContent", f.Slot, f.Module, f.Property, f.LocalProperty})
}
