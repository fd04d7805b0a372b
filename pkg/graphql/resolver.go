package graphql

import (
	"strconv"

	"github.com/graphql-go/graphql"
	"github.com/raywall/feedback-service/feedback"
)

// feedbacksResolver converte os argumentos em Params e executa uma página
// da consulta.
func feedbacksResolver(svc Lister) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		values := make(map[string]string, len(p.Args))
		for name, arg := range p.Args {
			switch v := arg.(type) {
			case string:
				values[name] = v
			case int:
				values[name] = strconv.Itoa(v)
			}
		}

		params, err := feedback.ParseParams(values)
		if err != nil {
			return nil, err
		}

		page, err := svc.List(p.Context, params)
		if err != nil {
			return nil, err
		}
		return pageResult(page), nil
	}
}

func pageResult(page *feedback.Page) map[string]interface{} {
	items := make([]interface{}, len(page.Items))
	for i, rec := range page.Items {
		items[i] = rec
	}

	var next interface{}
	if page.NextToken != nil {
		next = page.NextToken.String()
	}

	return map[string]interface{}{
		"count":     page.Count,
		"items":     items,
		"nextToken": next,
		"startDate": page.StartDate,
		"endDate":   page.EndDate,
		"urgency":   page.Urgency,
	}
}

// recordResolver lê um atributo do registro. Valores ausentes ou nulos
// resolvem para null; os demais usam a forma textual do relatório.
func recordResolver(name string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		rec, ok := p.Source.(feedback.Record)
		if !ok {
			return nil, nil
		}
		v, ok := rec.Get(name)
		if !ok || v == nil {
			return nil, nil
		}
		return feedback.Display(v), nil
	}
}
