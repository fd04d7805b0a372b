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
	"math"

	"github.com/raywall/feedback-service/dyndb"
	"github.com/rs/zerolog"
)

var (
	// ErrInvalidInput indica parâmetros de consulta inválidos (erro do cliente).
	ErrInvalidInput = errors.New("feedback: invalid input")
	// ErrQueryFailed envolve falhas devolvidas pelo DynamoDB.
	ErrQueryFailed = errors.New("feedback: query failed")
)

// Config controla os padrões do Engine.
type Config struct {
	PageSize     int    `env:"DEFAULT_PAGE_SIZE" envDefault:"100" validate:"gt=0"`
	DefaultStart string `env:"FEEDBACK_DEFAULT_START" envDefault:"2020-01-01T00:00:00Z"`
	DefaultEnd   string `env:"FEEDBACK_DEFAULT_END" envDefault:"2030-12-31T23:59:59Z"`
}

// Params são os parâmetros de uma chamada de Query.
type Params struct {
	StartDate string       `json:"startDate,omitempty"`
	EndDate   string       `json:"endDate,omitempty"`
	Urgency   string       `json:"urgency,omitempty"`
	NextToken *dyndb.Token `json:"nextToken,omitempty"`
	// PageSize zero usa o padrão configurado.
	PageSize int `json:"pageSize,omitempty"`
}

// Page é o resultado de uma chamada de Query.
type Page struct {
	Count     int          `json:"count"`
	Items     []Record     `json:"items"`
	NextToken *dyndb.Token `json:"nextToken"`
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
	Urgency   string       `json:"urgency"`
}

// Engine executa consultas paginadas na partição de feedbacks.
type Engine struct {
	store dyndb.Store[Item]
	cfg   Config
}

// NewEngine cria o Engine. Campos zerados de cfg recebem os padrões.
func NewEngine(store dyndb.Store[Item], cfg Config) *Engine {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.DefaultStart == "" {
		cfg.DefaultStart = DefaultStartDate
	}
	if cfg.DefaultEnd == "" {
		cfg.DefaultEnd = DefaultEndDate
	}
	return &Engine{store: store, cfg: cfg}
}

// Query executa uma página da consulta por intervalo.
//
// As datas não são validadas aqui; se o DynamoDB rejeitar o intervalo, o
// erro volta envolvido em ErrQueryFailed.
func (e *Engine) Query(ctx context.Context, p Params) (*Page, error) {
	size := p.PageSize
	switch {
	case size < 0, size > math.MaxInt32:
		return nil, fmt.Errorf("%w: pageSize must be a positive integer, got %d", ErrInvalidInput, size)
	case size == 0:
		size = e.cfg.PageSize
	}

	start, end := p.StartDate, p.EndDate
	if start == "" {
		start = e.cfg.DefaultStart
	}
	if end == "" {
		end = e.cfg.DefaultEnd
	}

	table := e.store.Config()
	q := e.store.Query().
		KeyEqual(table.HashKey, PartitionValue).
		KeyBetween(table.SortKey, start, end).
		Limit(int32(size)).
		StartAfter(p.NextToken)
	if p.Urgency != "" {
		q = q.FilterEqual(FieldUrgency, p.Urgency)
	}

	zerolog.Ctx(ctx).Debug().
		Str("start", start).
		Str("end", end).
		Str("urgency", p.Urgency).
		Int("page_size", size).
		Bool("continuation", p.NextToken != nil).
		Msg("querying feedbacks")

	raw, err := q.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrQueryFailed, err)
	}

	items := make([]Record, 0, len(raw.Items))
	for _, item := range raw.Items {
		items = append(items, Record(dyndb.PlainItem(item)))
	}

	return &Page{
		Count:     len(items),
		Items:     items,
		NextToken: raw.Next,
		StartDate: start,
		EndDate:   end,
		Urgency:   p.Urgency,
	}, nil
}

// All percorre todas as páginas a partir de p e devolve os registros na
// ordem do DynamoDB.
func (e *Engine) All(ctx context.Context, p Params) ([]Record, error) {
	var out []Record
	for {
		page, err := e.Query(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, page.Items...)
		if page.NextToken == nil {
			return out, nil
		}
		p.NextToken = page.NextToken
	}
}
