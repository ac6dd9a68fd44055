// Package cqir defines the concrete query intermediate representation,
// the tagged tree the client runtime uses to execute, cache and normalize a query.
//
// Every node serializes to JSON with a "kind" discriminator. Output is deterministic:
// struct fields keep a fixed order and Metadata keys are sorted.
package cqir

import (
	"bytes"
	"encoding/json"
)

type Kind string

const (
	KindQuery        Kind = "Query"
	KindMutation     Kind = "Mutation"
	KindSubscription Kind = "Subscription"
	KindFragment     Kind = "Fragment"
	KindField        Kind = "Field"
	KindCall         Kind = "Call"
	KindCallVariable Kind = "CallVariable"
	KindCallValue    Kind = "CallValue"
	KindDirective    Kind = "Directive"
)

// Node is implemented by the nine node kinds
type Node interface {
	Kind() Kind
	isNode()
}

// Root is the printed form of a definition: *Query, *Mutation, *Subscription, *Fragment or *CreateFragment
type Root interface {
	json.Marshaler
	RootName() string
	isRoot()
}

// Child is an element of a selection array: *Field, *Fragment or *FragmentReference
type Child interface {
	json.Marshaler
	isChild()
}

// Argument is the value of a Call: *CallVariable, *CallValue, *Substitution or ArgumentList
type Argument interface {
	json.Marshaler
	isArgument()
}

// Metadata marshals with sorted keys. A nil Metadata marshals as {}.
type Metadata map[string]interface{}

func (m Metadata) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return marshal(map[string]interface{}(m))
}

// Merge copies other into m, keys of other win
func (m Metadata) Merge(other Metadata) {
	for key, value := range other {
		m[key] = value
	}
}

// Marshal serializes a node without escaping HTML characters
func Marshal(v interface{}) ([]byte, error) {
	return marshal(v)
}

// MarshalIndent is Marshal with two space indentation
func MarshalIndent(v interface{}) ([]byte, error) {
	data, err := marshal(v)
	if err != nil {
		return nil, err
	}
	out := &bytes.Buffer{}
	if err := json.Indent(out, data, "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

func marshal(v interface{}) ([]byte, error) {
	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
