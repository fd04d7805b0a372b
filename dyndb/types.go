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

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoDBClient interface para abstrair o cliente DynamoDB do SDK da AWS.
//
// Contém apenas as operações usadas pelo Store, o que permite substituir o
// cliente real por um mock nos testes.
type DynamoDBClient interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Store é a interface principal e genérica para interagir com uma tabela.
//
// O tipo genérico `T` é a struct Go usada nas escritas. As leituras devolvem
// os itens brutos para que o chamador os decodifique com Decode.
type Store[T any] interface {
	// Put item (upsert).
	Put(ctx context.Context, item T) error
	// BatchWrite grava vários itens em lotes de até 25 operações.
	BatchWrite(ctx context.Context, puts []T) error
	// Query inicia o QueryBuilder[T] para construir uma consulta.
	Query() *QueryBuilder[T]
	// Config devolve a configuração da tabela.
	Config() TableConfig[T]
}

// TableConfig é a configuração da tabela DynamoDB associada ao Store.
//
// O tipo genérico `T` é usado apenas para inferência e não armazena dados.
type TableConfig[T any] struct {
	TableName string `env:"TABLE_NAME"`
	HashKey   string `env:"DYNAMODB_HASH_KEY" envDefault:"pk"`
	SortKey   string `env:"DYNAMODB_SORT_KEY" envDefault:"createdAt"`
}

// QueryBuilder é o builder fluente para operações Query.
//
// Contém o estado interno da consulta antes da sua execução.
type QueryBuilder[T any] struct {
	store       *dynamoStore[T]
	keyCond     *expression.KeyConditionBuilder
	filterCond  *expression.ConditionBuilder
	limit       *int32
	lastKey     map[string]types.AttributeValue
	scanForward *bool
}

// Page é o resultado de uma única chamada de Query.
type Page struct {
	// Items na ordem devolvida pelo DynamoDB.
	Items []map[string]types.AttributeValue
	// Count é a quantidade de itens após o filtro.
	Count int32
	// ScannedCount é a quantidade de itens avaliados antes do filtro.
	ScannedCount int32
	// Next é nil quando não há mais páginas.
	Next *Token
}
