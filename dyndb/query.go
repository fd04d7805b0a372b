// Copyright 2025 Raywall Malheiros de Souza
// Licensed under the Mozilla Public License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	https://www.mozilla.org/en-US/MPL/2.0/
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package dyndb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// ErrMissingKeyCondition é retornado por Exec quando nenhuma condição de
// chave foi informada.
var ErrMissingKeyCondition = errors.New("dyndb: query requires a key condition")

// === MÉTODOS FLUENTES ===

func (qb *QueryBuilder[T]) KeyEqual(key string, value any) *QueryBuilder[T] {
	return qb.andKey(expression.KeyEqual(expression.Key(key), expression.Value(value)))
}

// KeyBetween restringe a sort key ao intervalo [lower, upper], inclusivo nas
// duas pontas.
func (qb *QueryBuilder[T]) KeyBetween(key string, lower, upper any) *QueryBuilder[T] {
	return qb.andKey(expression.Key(key).Between(expression.Value(lower), expression.Value(upper)))
}

func (qb *QueryBuilder[T]) FilterEqual(field string, value any) *QueryBuilder[T] {
	cond := expression.Equal(expression.Name(field), expression.Value(value))
	if qb.filterCond == nil {
		qb.filterCond = &cond
	} else {
		tmp := qb.filterCond.And(cond)
		qb.filterCond = &tmp
	}
	return qb
}

func (qb *QueryBuilder[T]) Limit(n int32) *QueryBuilder[T] {
	qb.limit = &n
	return qb
}

// StartAfter usa o token como ExclusiveStartKey. Um token nil começa do
// início do intervalo.
func (qb *QueryBuilder[T]) StartAfter(token *Token) *QueryBuilder[T] {
	qb.lastKey = token.startKey()
	return qb
}

func (qb *QueryBuilder[T]) ScanForward(forward bool) *QueryBuilder[T] {
	qb.scanForward = &forward
	return qb
}

func (qb *QueryBuilder[T]) andKey(cond expression.KeyConditionBuilder) *QueryBuilder[T] {
	if qb.keyCond == nil {
		qb.keyCond = &cond
	} else {
		tmp := qb.keyCond.And(cond)
		qb.keyCond = &tmp
	}
	return qb
}

// Exec executa uma única chamada de Query e devolve a página bruta.
func (qb *QueryBuilder[T]) Exec(ctx context.Context) (*Page, error) {
	if qb.keyCond == nil {
		return nil, ErrMissingKeyCondition
	}

	builder := expression.NewBuilder().WithKeyCondition(*qb.keyCond)
	if qb.filterCond != nil {
		builder = builder.WithFilter(*qb.filterCond)
	}

	expr, err := builder.Build()
	if err != nil {
		return nil, err
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(qb.store.cfg.TableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     qb.limit,
		ScanIndexForward:          qb.scanForward,
		ExclusiveStartKey:         qb.lastKey,
	}

	out, err := qb.store.client.Query(ctx, input)
	if err != nil {
		return nil, err
	}

	next, err := newToken(out.LastEvaluatedKey)
	if err != nil {
		return nil, err
	}

	return &Page{
		Items:        out.Items,
		Count:        out.Count,
		ScannedCount: out.ScannedCount,
		Next:         next,
	}, nil
}
