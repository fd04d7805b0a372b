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
	"encoding/json"
	"fmt"
	"strconv"
)

// Identidade da partição e nomes dos atributos.
const (
	PartitionValue = "FEEDBACK"

	FieldPK        = "pk"
	FieldCreatedAt = "createdAt"
	FieldNota      = "nota"
	FieldUrgency   = "urgency"
	FieldDescricao = "descricao"
	FieldID        = "id"
)

// Rótulos de urgência reconhecidos pelo relatório.
const (
	UrgencyAlta  = "alta"
	UrgencyMedia = "media"
	UrgencyBaixa = "baixa"
)

// Intervalo padrão quando as datas não são informadas.
const (
	DefaultStartDate = "2020-01-01T00:00:00Z"
	DefaultEndDate   = "2030-12-31T23:59:59Z"
	DefaultPageSize  = 100
)

// Record é um feedback decodificado: cada atributo já convertido para um
// valor Go simples (string, bool, nil, []any ou map[string]any).
type Record map[string]any

// Get devolve o valor do campo e se ele está presente.
func (r Record) Get(field string) (any, bool) {
	v, ok := r[field]
	return v, ok
}

// Item é a forma tipada usada para gravar feedbacks (seed e testes locais).
type Item struct {
	PK        string `dynamodbav:"pk" json:"-" yaml:"-"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt" yaml:"createdAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	ID        string `dynamodbav:"id,omitempty" json:"id,omitempty" yaml:"id,omitempty"`
	Nota      string `dynamodbav:"nota,omitempty" json:"nota,omitempty" yaml:"nota,omitempty" validate:"omitempty,numeric"`
	Urgency   string `dynamodbav:"urgency,omitempty" json:"urgency,omitempty" yaml:"urgency,omitempty" validate:"omitempty,oneof=alta media baixa"`
	Descricao string `dynamodbav:"descricao,omitempty" json:"descricao,omitempty" yaml:"descricao,omitempty"`
}

// Display formata um valor decodificado para exibição em texto.
// Valores ausentes ou nulos viram o literal "null".
func Display(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
