// Package artifact bundles a printed CQIR tree with everything a runtime needs to use it:
// the kind of definition, its formal arguments and the initializers of its substitution slots.
package artifact

import (
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v2"

	"github.com/wundergraph/cqir/pkg/cqir"
	"github.com/wundergraph/cqir/pkg/document"
	"github.com/wundergraph/cqir/pkg/normalization"
	"github.com/wundergraph/cqir/pkg/operationreport"
	"github.com/wundergraph/cqir/pkg/printer"
	"github.com/wundergraph/cqir/pkg/resolver"
)

type Kind string

const (
	KindFragmentDefinition  Kind = "FragmentDefinition"
	KindOperationDefinition Kind = "OperationDefinition"
)

type ArgumentKind string

const (
	// ArgumentKindLocal is declared by the definition itself
	ArgumentKindLocal ArgumentKind = "LocalArgument"
	// ArgumentKindRoot is provided by the operation a fragment is spread into
	ArgumentKindRoot ArgumentKind = "RootArgument"
)

const (
	argumentDefinitionType         = "type"
	argumentDefinitionDefaultValue = "defaultValue"
)

type ArgumentDefinition struct {
	Kind ArgumentKind `json:"kind"`
	Name string       `json:"name"`
	// Type is empty for root arguments
	Type         string      `json:"type"`
	DefaultValue interface{} `json:"defaultValue"`
}

type Artifact struct {
	Kind Kind
	Name string
	// Operation is query, mutation or subscription, empty for fragments
	Operation           string
	ArgumentDefinitions []*ArgumentDefinition
	Node                cqir.Root
	Substitutions       []resolver.Initializer
}

// Assemble builds the artifact of one compiled definition.
// Operations must be named, their arguments are the declared variables.
// Fragment arguments are the variables a fragment references,
// local when declared with @argumentDefinitions and root arguments otherwise.
func Assemble(definition *document.Definition, normalized *normalization.Result, root cqir.Root, initializers []resolver.Initializer) (*Artifact, error) {
	artifact := &Artifact{
		Name:          definition.Name,
		Node:          root,
		Substitutions: initializers,
	}
	if artifact.Substitutions == nil {
		artifact.Substitutions = []resolver.Initializer{}
	}

	var err error
	switch {
	case definition.Kind.IsOperation():
		if definition.Name == "" {
			return nil, operationreport.ErrMissingName(definition.Kind.String(), operationreport.LocationFrom(definition.Position.Line, definition.Position.Column))
		}
		artifact.Kind = KindOperationDefinition
		artifact.Operation = definition.Kind.String()
		artifact.ArgumentDefinitions, err = operationArguments(definition)
	case definition.Kind == document.DefinitionKindFragment:
		artifact.Kind = KindFragmentDefinition
		artifact.ArgumentDefinitions, err = fragmentArguments(normalized)
	default:
		return nil, operationreport.ErrUnsupportedSelection("definition of kind "+definition.Kind.String(), operationreport.LocationFrom(definition.Position.Line, definition.Position.Column))
	}
	if err != nil {
		return nil, err
	}
	return artifact, nil
}

func operationArguments(definition *document.Definition) ([]*ArgumentDefinition, error) {
	out := make([]*ArgumentDefinition, 0, len(definition.VariableDefinitions))
	for _, variable := range definition.VariableDefinitions {
		argument := &ArgumentDefinition{
			Kind: ArgumentKindLocal,
			Name: variable.Name,
			Type: variable.Type,
		}
		if variable.DefaultValue != nil {
			defaultValue, err := printer.Literal(variable.DefaultValue)
			if err != nil {
				return nil, err
			}
			argument.DefaultValue = defaultValue
		}
		out = append(out, argument)
	}
	return out, nil
}

func fragmentArguments(normalized *normalization.Result) ([]*ArgumentDefinition, error) {
	out := make([]*ArgumentDefinition, 0, len(normalized.Variables))
	for _, name := range normalized.Variables {
		declared := normalized.ArgumentDefinitions.ForName(name)
		if declared == nil {
			out = append(out, &ArgumentDefinition{Kind: ArgumentKindRoot, Name: name})
			continue
		}
		argument := &ArgumentDefinition{Kind: ArgumentKindLocal, Name: name}
		object, ok := declared.Value.(*document.ObjectValue)
		if !ok {
			return nil, operationreport.ErrInvalidLiteral("@"+normalization.ArgumentDefinitionsDirective+" argument `"+name+"`",
				operationreport.LocationFrom(declared.Position.Line, declared.Position.Column))
		}
		for _, field := range object.Fields {
			switch field.Name {
			case argumentDefinitionType:
				typeName, ok := field.Value.(*document.StringValue)
				if !ok {
					return nil, operationreport.ErrInvalidLiteral("type of argument `"+name+"`",
						operationreport.LocationFrom(declared.Position.Line, declared.Position.Column))
				}
				argument.Type = typeName.Value
			case argumentDefinitionDefaultValue:
				defaultValue, err := printer.Literal(field.Value)
				if err != nil {
					return nil, err
				}
				argument.DefaultValue = defaultValue
			}
		}
		out = append(out, argument)
	}
	return out, nil
}

// MarshalJSON keeps the envelope fields in a fixed order
func (a *Artifact) MarshalJSON() ([]byte, error) {
	out := []byte(`{}`)
	var err error
	if out, err = sjson.SetBytes(out, "kind", string(a.Kind)); err != nil {
		return nil, err
	}
	if out, err = sjson.SetBytes(out, "name", a.Name); err != nil {
		return nil, err
	}
	if a.Operation != "" {
		if out, err = sjson.SetBytes(out, "operation", a.Operation); err != nil {
			return nil, err
		}
	}
	raw := []struct {
		path  string
		value interface{}
	}{
		{"argumentDefinitions", a.argumentDefinitions()},
		{"node", a.Node},
		{"substitutions", a.Substitutions},
	}
	for _, field := range raw {
		data, err := cqir.Marshal(field.value)
		if err != nil {
			return nil, err
		}
		if out, err = sjson.SetRawBytes(out, field.path, data); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (a *Artifact) argumentDefinitions() []*ArgumentDefinition {
	if a.ArgumentDefinitions == nil {
		return []*ArgumentDefinition{}
	}
	return a.ArgumentDefinitions
}

// JSON is the indented form of MarshalJSON
func (a *Artifact) JSON() ([]byte, error) {
	return cqir.MarshalIndent(a)
}

// YAML renders the JSON form as YAML, keeping key order
func (a *Artifact) YAML() ([]byte, error) {
	data, err := cqir.Marshal(a)
	if err != nil {
		return nil, err
	}
	var ordered yaml.MapSlice
	if err := yaml.Unmarshal(data, &ordered); err != nil {
		return nil, err
	}
	return yaml.Marshal(ordered)
}
