package gql

import (
	"fmt"

	"github.com/graph-gophers/graphql-go"
)

// NullID 可區分「未提供」與「明確為 null」的 ID 參數
type NullID struct {
	Value *graphql.ID
	Set   bool
}

func (NullID) ImplementsGraphQLType(name string) bool {
	return name == "ID"
}

func (n *NullID) UnmarshalGraphQL(input interface{}) error {
	n.Set = true
	if input == nil {
		return nil
	}

	var id graphql.ID
	if err := id.UnmarshalGraphQL(input); err != nil {
		return fmt.Errorf("wrong type for ID: %T", input)
	}
	n.Value = &id
	return nil
}

func (n *NullID) Nullable() {}
