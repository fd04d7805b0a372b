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
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ErrInvalidToken é retornado quando um token de paginação não pode ser
// decodificado.
var ErrInvalidToken = errors.New("dyndb: invalid pagination token")

// Token é o marcador opaco de continuação de uma Query.
//
// O conteúdo (a LastEvaluatedKey do DynamoDB) não é exposto: o chamador só
// pode recebê-lo de uma página e devolvê-lo intacto para pedir a próxima.
type Token struct {
	key map[string]types.AttributeValue
	raw string
}

// keyAttr preserva o tipo de cada atributo de chave (S, N ou B).
type keyAttr struct {
	S *string `json:"S,omitempty"`
	N *string `json:"N,omitempty"`
	B []byte  `json:"B,omitempty"`
}

// newToken cria o token a partir da LastEvaluatedKey. Retorna nil quando
// a chave está vazia, indicando que não há mais páginas.
func newToken(lastKey map[string]types.AttributeValue) (*Token, error) {
	if len(lastKey) == 0 {
		return nil, nil
	}

	envelope := make(map[string]keyAttr, len(lastKey))
	for name, av := range lastKey {
		switch v := av.(type) {
		case *types.AttributeValueMemberS:
			s := v.Value
			envelope[name] = keyAttr{S: &s}
		case *types.AttributeValueMemberN:
			n := v.Value
			envelope[name] = keyAttr{N: &n}
		case *types.AttributeValueMemberB:
			envelope[name] = keyAttr{B: v.Value}
		default:
			return nil, fmt.Errorf("dyndb: unsupported key attribute %q (%T)", name, av)
		}
	}

	b, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("dyndb: encode token: %w", err)
	}

	return &Token{key: lastKey, raw: base64.RawURLEncoding.EncodeToString(b)}, nil
}

// ParseToken reconstrói um Token a partir da forma textual devolvida por
// Token.String. Uma string vazia resulta em nil (início do intervalo).
func ParseToken(s string) (*Token, error) {
	if s == "" {
		return nil, nil
	}

	data, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	var envelope map[string]keyAttr
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if len(envelope) == 0 {
		return nil, fmt.Errorf("%w: empty key", ErrInvalidToken)
	}

	key := make(map[string]types.AttributeValue, len(envelope))
	for name, attr := range envelope {
		switch {
		case attr.S != nil:
			key[name] = &types.AttributeValueMemberS{Value: *attr.S}
		case attr.N != nil:
			key[name] = &types.AttributeValueMemberN{Value: *attr.N}
		case attr.B != nil:
			key[name] = &types.AttributeValueMemberB{Value: attr.B}
		default:
			return nil, fmt.Errorf("%w: attribute %q has no type", ErrInvalidToken, name)
		}
	}

	return &Token{key: key, raw: s}, nil
}

// String retorna a forma textual (base64 URL-safe) do token.
func (t *Token) String() string {
	if t == nil {
		return ""
	}
	return t.raw
}

// MarshalJSON serializa o token como string JSON.
func (t Token) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.raw)
}

// UnmarshalJSON aceita a string produzida por MarshalJSON.
func (t *Token) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if s == "" {
		*t = Token{}
		return nil
	}
	parsed, err := ParseToken(s)
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}

// startKey devolve a ExclusiveStartKey correspondente ao token.
func (t *Token) startKey() map[string]types.AttributeValue {
	if t == nil || len(t.key) == 0 {
		return nil
	}
	return t.key
}
