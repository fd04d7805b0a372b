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
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Value é o resultado da decodificação de um types.AttributeValue.
//
// É um tipo soma fechado: as únicas variantes são String, Number, Bool, Null,
// List, Map e Unknown. Use um type switch para inspecionar a variante.
type Value interface {
	// Plain converte o valor para tipos Go simples (string, bool, nil,
	// []any, map[string]any), prontos para serialização JSON.
	Plain() any
	isValue()
}

// String é um atributo do tipo S.
type String string

// Number é um atributo do tipo N. O texto decimal é preservado como veio do
// DynamoDB, sem conversão para ponto flutuante.
type Number string

// Bool é um atributo do tipo BOOL.
type Bool bool

// Null é um atributo NULL com valor true.
type Null struct{}

// List é um atributo L não vazio.
type List []Value

// Map é um atributo M não vazio.
type Map map[string]Value

// Unknown guarda a representação textual de um atributo sem variante
// reconhecida (listas e mapas vazios, NULL=false, binários e conjuntos).
type Unknown string

func (String) isValue()  {}
func (Number) isValue()  {}
func (Bool) isValue()    {}
func (Null) isValue()    {}
func (List) isValue()    {}
func (Map) isValue()     {}
func (Unknown) isValue() {}

func (v String) Plain() any  { return string(v) }
func (v Number) Plain() any  { return string(v) }
func (v Bool) Plain() any    { return bool(v) }
func (Null) Plain() any      { return nil }
func (v Unknown) Plain() any { return string(v) }

func (v List) Plain() any {
	out := make([]any, len(v))
	for i, item := range v {
		out[i] = item.Plain()
	}
	return out
}

func (v Map) Plain() any {
	out := make(map[string]any, len(v))
	for k, item := range v {
		out[k] = item.Plain()
	}
	return out
}

// Decode converte um AttributeValue em Value. Nunca falha.
//
// A ordem de resolução é fixa: S, N, BOOL, L não vazia, M não vazio, NULL=true.
// Qualquer outro caso cai na representação textual (Unknown). Listas e mapas
// vazios são tratados como ausentes e também caem nesse fallback.
func Decode(av types.AttributeValue) Value {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return String(v.Value)
	case *types.AttributeValueMemberN:
		return Number(v.Value)
	case *types.AttributeValueMemberBOOL:
		return Bool(v.Value)
	case *types.AttributeValueMemberL:
		if len(v.Value) > 0 {
			list := make(List, len(v.Value))
			for i, item := range v.Value {
				list[i] = Decode(item)
			}
			return list
		}
	case *types.AttributeValueMemberM:
		if len(v.Value) > 0 {
			return Map(DecodeItem(v.Value))
		}
	case *types.AttributeValueMemberNULL:
		if v.Value {
			return Null{}
		}
	}
	return Unknown(describe(av))
}

// DecodeItem decodifica todos os atributos de um item.
func DecodeItem(item map[string]types.AttributeValue) map[string]Value {
	out := make(map[string]Value, len(item))
	for k, v := range item {
		out[k] = Decode(v)
	}
	return out
}

// PlainItem decodifica um item direto para valores Go simples.
func PlainItem(item map[string]types.AttributeValue) map[string]any {
	out := make(map[string]any, len(item))
	for k, v := range item {
		out[k] = Decode(v).Plain()
	}
	return out
}

// describe gera a representação textual usada pelo fallback de Decode.
func describe(av types.AttributeValue) string {
	switch v := av.(type) {
	case nil:
		return "AttributeValue()"
	case *types.AttributeValueMemberL:
		return "AttributeValue(L=[])"
	case *types.AttributeValueMemberM:
		return "AttributeValue(M={})"
	case *types.AttributeValueMemberNULL:
		return fmt.Sprintf("AttributeValue(NULL=%t)", v.Value)
	case *types.AttributeValueMemberB:
		return fmt.Sprintf("AttributeValue(B=%d bytes)", len(v.Value))
	case *types.AttributeValueMemberSS:
		return "AttributeValue(SS=[" + strings.Join(v.Value, ", ") + "])"
	case *types.AttributeValueMemberNS:
		return "AttributeValue(NS=[" + strings.Join(v.Value, ", ") + "])"
	case *types.AttributeValueMemberBS:
		return fmt.Sprintf("AttributeValue(BS=%d items)", len(v.Value))
	default:
		return fmt.Sprintf("AttributeValue(%T)", av)
	}
}
