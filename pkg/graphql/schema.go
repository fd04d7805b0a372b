package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/raywall/feedback-service/feedback"
)

// buildSchema constrói o schema com a query raiz feedbacks.
func buildSchema(svc Lister) (graphql.Schema, error) {
	feedbackType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Feedback",
		Fields: graphql.Fields{
			feedback.FieldID:        recordField(feedback.FieldID),
			feedback.FieldCreatedAt: recordField(feedback.FieldCreatedAt),
			feedback.FieldNota:      recordField(feedback.FieldNota),
			feedback.FieldUrgency:   recordField(feedback.FieldUrgency),
			feedback.FieldDescricao: recordField(feedback.FieldDescricao),
		},
	})

	pageType := graphql.NewObject(graphql.ObjectConfig{
		Name: "FeedbackPage",
		Fields: graphql.Fields{
			"count":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"items":     &graphql.Field{Type: graphql.NewList(feedbackType)},
			"nextToken": &graphql.Field{Type: graphql.String},
			"startDate": &graphql.Field{Type: graphql.String},
			"endDate":   &graphql.Field{Type: graphql.String},
			"urgency":   &graphql.Field{Type: graphql.String},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"feedbacks": &graphql.Field{
				Type: pageType,
				Args: graphql.FieldConfigArgument{
					feedback.ParamStartDate: &graphql.ArgumentConfig{Type: graphql.String},
					feedback.ParamEndDate:   &graphql.ArgumentConfig{Type: graphql.String},
					feedback.ParamUrgency:   &graphql.ArgumentConfig{Type: graphql.String},
					feedback.ParamNextToken: &graphql.ArgumentConfig{Type: graphql.String},
					feedback.ParamPageSize:  &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: feedbacksResolver(svc),
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query})
}

func recordField(name string) *graphql.Field {
	return &graphql.Field{
		Type:    graphql.String,
		Resolve: recordResolver(name),
	}
}
