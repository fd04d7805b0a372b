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
// Package feedback define o registro de feedback armazenado no DynamoDB e o
// motor de consulta paginada sobre a partição única "FEEDBACK".
//
// O Engine executa UMA página por chamada: o intervalo de createdAt é
// inclusivo nas duas pontas, o filtro de urgência é de igualdade exata e o
// token de continuação devolvido deve ser repassado intacto para obter a
// próxima página. A ausência de token (nil) indica que não há mais páginas.
//
// Exemplo:
//
//	engine := feedback.NewEngine(store, feedback.Config{PageSize: 50})
//
//	page, err := engine.Query(ctx, feedback.Params{Urgency: feedback.UrgencyAlta})
//	for err == nil && page.NextToken != nil {
//		page, err = engine.Query(ctx, feedback.Params{Urgency: feedback.UrgencyAlta, NextToken: page.NextToken})
//	}
package feedback
