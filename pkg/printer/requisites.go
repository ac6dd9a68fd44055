package printer

import (
	"github.com/wundergraph/cqir/pkg/document"
	"github.com/wundergraph/cqir/pkg/schema"
)

// requisiteFields is the ordered set of field names one node must select.
// It is passed by value through the descent and never shared between nodes.
type requisiteFields []string

func (r requisiteFields) has(name string) bool {
	for _, field := range r {
		if field == name {
			return true
		}
	}
	return false
}

func (r requisiteFields) with(name string) requisiteFields {
	if r.has(name) {
		return r
	}
	out := make(requisiteFields, len(r), len(r)+1)
	copy(out, r)
	return append(out, name)
}

// identity returns id as requisite for types that have it,
// and a generated `... on Node { id }` for types that may implement Node and do not select one already.
// Nothing is generated when Node itself has no id field.
func (s *printState) identity(typ schema.Type, selections document.SelectionSet) (requisiteFields, *document.InlineFragment) {
	if typ.HasField(s.names.ID) {
		return requisiteFields{s.names.ID}, nil
	}
	if typ.Name() == schema.NodeInterface || !typ.MayImplement(schema.NodeInterface) {
		return nil, nil
	}
	if node, ok := s.schema.Type(schema.NodeInterface); !ok || !node.HasField(s.names.ID) {
		return nil, nil
	}
	for _, selection := range selections {
		if inline, ok := selection.(*document.InlineFragment); ok && inline.TypeCondition == schema.NodeInterface {
			return nil, nil
		}
	}
	return nil, typ.GenerateIDFragment()
}

// requisites are the identity and __typename requirements every printed node of typ shares
func (s *printState) requisites(typ schema.Type, selections document.SelectionSet) (requisiteFields, *document.InlineFragment) {
	requisites, idFragment := s.identity(typ, selections)
	if typ.IsAbstract() {
		requisites = requisites.with(s.names.TypeName)
	}
	return requisites, idFragment
}
