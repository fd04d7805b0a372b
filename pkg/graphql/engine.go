package graphql

import (
	"context"

	"github.com/graphql-go/graphql"
	"github.com/raywall/feedback-service/feedback"
)

// Lister é a operação de listagem usada pelo resolver de feedbacks.
type Lister interface {
	List(ctx context.Context, p feedback.Params) (*feedback.Page, error)
}

// GraphQLEngine expõe a consulta de feedbacks como schema GraphQL.
type GraphQLEngine struct {
	Schema graphql.Schema
}

func NewGraphQLEngine(svc Lister) (*GraphQLEngine, error) {
	schema, err := buildSchema(svc)
	if err != nil {
		return nil, err
	}
	return &GraphQLEngine{Schema: schema}, nil
}

func (ge *GraphQLEngine) Execute(ctx context.Context, query string, variables map[string]interface{}) *graphql.Result {
	params := graphql.Params{
		Schema:         ge.Schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        ctx,
	}
	return graphql.Do(params)
}
