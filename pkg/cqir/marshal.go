package cqir

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownLiteral = errors.New("cqir: unknown literal type")

func (q *Query) MarshalJSON() ([]byte, error) {
	return marshal(struct {
		Kind       Kind         `json:"kind"`
		Name       string       `json:"name"`
		Type       string       `json:"type"`
		FieldName  string       `json:"fieldName"`
		Calls      []*Call      `json:"calls"`
		Children   *Children    `json:"children"`
		Directives []*Directive `json:"directives"`
		Metadata   Metadata     `json:"metadata"`
	}{KindQuery, q.Name, q.Type, q.FieldName, q.Calls, q.Children, q.Directives, q.Metadata})
}

type operation struct {
	Kind         Kind         `json:"kind"`
	Name         string       `json:"name"`
	ResponseType string       `json:"responseType"`
	Calls        []*Call      `json:"calls"`
	Children     *Children    `json:"children"`
	Directives   []*Directive `json:"directives"`
	Metadata     Metadata     `json:"metadata"`
}

func (m *Mutation) MarshalJSON() ([]byte, error) {
	return marshal(operation{KindMutation, m.Name, m.ResponseType, m.Calls, m.Children, m.Directives, m.Metadata})
}

func (s *Subscription) MarshalJSON() ([]byte, error) {
	return marshal(operation{KindSubscription, s.Name, s.ResponseType, s.Calls, s.Children, s.Directives, s.Metadata})
}

func (f *Fragment) MarshalJSON() ([]byte, error) {
	return marshal(struct {
		Kind       Kind         `json:"kind"`
		Name       string       `json:"name"`
		Type       string       `json:"type"`
		ID         string       `json:"id"`
		Children   *Children    `json:"children"`
		Directives []*Directive `json:"directives"`
		Metadata   Metadata     `json:"metadata"`
	}{KindFragment, f.Name, f.Type, f.ID, f.Children, f.Directives, f.Metadata})
}

func (f *Field) MarshalJSON() ([]byte, error) {
	return marshal(struct {
		Kind       Kind         `json:"kind"`
		Alias      string       `json:"alias,omitempty"`
		FieldName  string       `json:"fieldName"`
		Type       string       `json:"type"`
		Calls      []*Call      `json:"calls"`
		Children   *Children    `json:"children"`
		Directives []*Directive `json:"directives"`
		Metadata   Metadata     `json:"metadata"`
	}{KindField, f.Alias, f.FieldName, f.Type, f.Calls, f.Children, f.Directives, f.Metadata})
}

func (c *Call) MarshalJSON() ([]byte, error) {
	return marshal(struct {
		Kind     Kind     `json:"kind"`
		Name     string   `json:"name"`
		Metadata Metadata `json:"metadata"`
		Value    Argument `json:"value"`
	}{KindCall, c.Name, c.Metadata, c.Value})
}

func (c *CallVariable) MarshalJSON() ([]byte, error) {
	return marshal(struct {
		Kind             Kind   `json:"kind"`
		CallVariableName string `json:"callVariableName"`
	}{KindCallVariable, c.CallVariableName})
}

func (c *CallValue) MarshalJSON() ([]byte, error) {
	if err := checkLiteral(c.CallValue); err != nil {
		return nil, err
	}
	return marshal(struct {
		Kind      Kind        `json:"kind"`
		CallValue interface{} `json:"callValue"`
	}{KindCallValue, c.CallValue})
}

func (d *Directive) MarshalJSON() ([]byte, error) {
	args := d.Args
	if args == nil {
		args = []*DirectiveArgument{}
	}
	return marshal(struct {
		Kind Kind                 `json:"kind"`
		Name string               `json:"name"`
		Args []*DirectiveArgument `json:"args"`
	}{KindDirective, d.Name, args})
}

func (d *DirectiveArgument) MarshalJSON() ([]byte, error) {
	return marshal(struct {
		Name  string   `json:"name"`
		Value Argument `json:"value"`
	}{d.Name, d.Value})
}

func (l ArgumentList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return marshal([]Argument(l))
}

func (o ObjectLiteral) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.WriteByte('{')
	for i, field := range o {
		if i != 0 {
			buf.WriteByte(',')
		}
		key, err := marshal(field.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if err := checkLiteral(field.Value); err != nil {
			return nil, err
		}
		value, err := marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Children) MarshalJSON() ([]byte, error) {
	selections := c.Selections
	if selections == nil {
		selections = []Child{}
	}
	if !c.Flatten {
		return marshal(selections)
	}
	return marshal(struct {
		Flatten []Child `json:"$flatten"`
	}{selections})
}

func (f *FragmentReference) MarshalJSON() ([]byte, error) {
	return marshal(struct {
		Fragment string `json:"$fragment"`
	}{f.Slot})
}

func (s *Substitution) MarshalJSON() ([]byte, error) {
	return marshal(struct {
		Var string `json:"$var"`
	}{s.Name})
}

func (c *CreateFragment) MarshalJSON() ([]byte, error) {
	variables := make(ObjectLiteral, 0, len(c.Variables))
	for _, name := range c.Variables {
		variables = append(variables, ObjectLiteralField{Name: name, Value: &Substitution{Name: name}})
	}
	return marshal(struct {
		CreateFragment *Fragment     `json:"$createFragment"`
		Variables      ObjectLiteral `json:"$variables"`
	}{c.Fragment, variables})
}

// checkLiteral rejects values that would not serialize to a stable form
func checkLiteral(value interface{}) error {
	switch v := value.(type) {
	case nil, bool, string, json.Number, ObjectLiteral, *CallVariable, *Substitution:
		return nil
	case []interface{}:
		for _, item := range v {
			if err := checkLiteral(item); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownLiteral, value)
	}
}
