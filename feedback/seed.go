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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/raywall/feedback-service/dyndb"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ReadSeed lê uma lista de feedbacks em YAML ou JSON.
func ReadSeed(r io.Reader) ([]Item, error) {
	var items []Item
	if err := yaml.NewDecoder(r).Decode(&items); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("feedback: decoding seed: %w", err)
	}
	return items, nil
}

// Seeder grava feedbacks na tabela, usado para popular ambientes locais.
type Seeder struct {
	store    dyndb.Store[Item]
	validate *validator.Validate
}

func NewSeeder(store dyndb.Store[Item]) *Seeder {
	return &Seeder{store: store, validate: validator.New()}
}

// Seed valida e grava os itens. Itens sem id recebem um ULID e todos são
// gravados na partição FEEDBACK.
func (s *Seeder) Seed(ctx context.Context, items []Item) (int, error) {
	prepared := make([]Item, 0, len(items))
	var errs []error

	for i, item := range items {
		item.PK = PartitionValue
		if item.ID == "" {
			item.ID = ulid.Make().String()
		}
		if err := s.validate.Struct(item); err != nil {
			errs = append(errs, fmt.Errorf("item %d: %w", i, err))
			continue
		}
		prepared = append(prepared, item)
	}

	if len(errs) > 0 {
		return 0, fmt.Errorf("%w: %w", ErrInvalidInput, errors.Join(errs...))
	}

	if err := s.store.BatchWrite(ctx, prepared); err != nil {
		return 0, err
	}

	zerolog.Ctx(ctx).Info().Int("count", len(prepared)).Msg("feedbacks seeded")
	return len(prepared), nil
}
