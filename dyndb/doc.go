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
//
// Package dyndb fornece uma abstração genérica sobre o AWS DynamoDB Go SDK (v2)
// para tabelas particionadas consultadas por intervalo de sort key.
//
// Visão Geral:
// O pacote oferece a interface `Store[T]` para escritas tipadas (Put e
// BatchWrite) e o `QueryBuilder[T]`, que monta consultas fluentes sobre as
// Expression Builders do SDK e executa UMA chamada de Query por vez.
//
// Funcionalidades Principais:
// - Builder Fluente: `Query().KeyEqual(...).KeyBetween(...).FilterEqual(...).Exec(...)`.
// - Paginação Opaca: a `LastEvaluatedKey` vira um `Token` que o chamador só
//   pode devolver intacto (`StartAfter`) ou transportar como string (`ParseToken`).
// - Decodificação: `Decode` converte um `types.AttributeValue` no tipo soma
//   `Value` (String, Number, Bool, Null, List, Map ou Unknown) sem nunca falhar.
// - Mocks Integrados: `MockDynamoClient` para testes unitários.
//
// Exemplo de Query paginada:
//
//	store := dyndb.New(client, dyndb.TableConfig[Item]{TableName: "feedbacks", HashKey: "pk", SortKey: "createdAt"})
//
//	page, err := store.Query().
//		KeyEqual("pk", "FEEDBACK").
//		KeyBetween("createdAt", "2025-01-01T00:00:00Z", "2025-01-31T23:59:59Z").
//		FilterEqual("urgency", "alta").
//		Limit(100).
//		StartAfter(previous.Next).
//		Exec(ctx)
//
//	for _, item := range page.Items {
//		fields := dyndb.PlainItem(item)
//		_ = fields
//	}
//
// Configuração:
// O Store é configurado via `TableConfig[T]` ou, se o nome da tabela estiver
// vazio, pelas variáveis TABLE_NAME, DYNAMODB_HASH_KEY e DYNAMODB_SORT_KEY.
package dyndb
