package schema

import "github.com/iancoleman/strcase"

// TypeNameField is the introspection field every composite type resolves
const TypeNameField = "__typename"

// NodeInterface is the interface of globally identifiable objects
const NodeInterface = "Node"

// FieldNames are the well known field names the runtime relies on.
// In snake case mode they are translated from camelCase so that presence checks against the schema match its convention.
type FieldNames struct {
	ID                   string
	Edges                string
	Node                 string
	PageInfo             string
	HasNextPage          string
	HasPreviousPage      string
	Cursor               string
	ClientMutationID     string
	ClientSubscriptionID string
	TypeName             string
}

func NewFieldNames(snakeCase bool) FieldNames {
	convert := func(name string) string {
		if snakeCase {
			return strcase.ToSnake(name)
		}
		return name
	}
	return FieldNames{
		ID:                   convert("id"),
		Edges:                convert("edges"),
		Node:                 convert("node"),
		PageInfo:             convert("pageInfo"),
		HasNextPage:          convert("hasNextPage"),
		HasPreviousPage:      convert("hasPreviousPage"),
		Cursor:               convert("cursor"),
		ClientMutationID:     convert("clientMutationId"),
		ClientSubscriptionID: convert("clientSubscriptionId"),
		TypeName:             TypeNameField,
	}
}
