package cqir

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Document is a compiled definition in the form generated code embeds
type Document struct {
	Kind string
	Name string
	// Operation is empty for fragments
	Operation           string
	ArgumentDefinitions json.RawMessage
	Node                json.RawMessage
	Substitutions       []*SlotInitializer
}

// SlotInitializer fills one substitution slot of Node at run time.
// Kind is FragmentLookup or FragmentContent.
type SlotInitializer struct {
	Slot           string
	Kind           string
	Module         string
	Property       string
	CheckContainer bool
	LocalProperty  bool
	// Arguments is empty unless the spread carried @arguments
	Arguments json.RawMessage
}

// Substitution returns the initializer of slot or nil
func (d *Document) Substitution(slot string) *SlotInitializer {
	for _, initializer := range d.Substitutions {
		if initializer.Slot == slot {
			return initializer
		}
	}
	return nil
}

// NodeKind is the kind of the root CQIR node
func (d *Document) NodeKind() string {
	return gjson.GetBytes(d.Node, "kind").String()
}

// Get reads a value of Node with a gjson path
func (d *Document) Get(path string) gjson.Result {
	return gjson.GetBytes(d.Node, path)
}
