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
package feedback

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/raywall/feedback-service/dyndb"
)

// Nomes dos parâmetros aceitos na query string e nos argumentos GraphQL.
const (
	ParamStartDate = "startDate"
	ParamEndDate   = "endDate"
	ParamUrgency   = "urgency"
	ParamNextToken = "nextToken"
	ParamPageSize  = "pageSize"
)

// ParseParams monta Params a partir de valores textuais. Chaves ausentes ou
// vazias usam os padrões do Engine.
func ParseParams(values map[string]string) (Params, error) {
	p := Params{
		StartDate: strings.TrimSpace(values[ParamStartDate]),
		EndDate:   strings.TrimSpace(values[ParamEndDate]),
		Urgency:   strings.TrimSpace(values[ParamUrgency]),
	}

	token, err := ParseToken(values[ParamNextToken])
	if err != nil {
		return Params{}, err
	}
	p.NextToken = token

	if raw := strings.TrimSpace(values[ParamPageSize]); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return Params{}, fmt.Errorf("%w: pageSize must be a positive integer, got %q", ErrInvalidInput, raw)
		}
		p.PageSize = size
	}

	return p, nil
}

// ParseToken decodifica um nextToken recebido do cliente. Um token
// inválido é erro de entrada.
func ParseToken(s string) (*dyndb.Token, error) {
	token, err := dyndb.ParseToken(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return token, nil
}
